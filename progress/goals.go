package progress

import (
	"github.com/kamstrup/intmap"
	"github.com/zucenko/gemblocks/model"
)

// Goals counts collected gems against a level's stone goal.
// Gems that are not part of the goal are never counted.
type Goals struct {
	required  *intmap.Map[model.GemID, int]
	collected *intmap.Map[model.GemID, int]
	order     []model.GemID
}

func NewGoals(stoneGoal map[model.GemID]int) *Goals {
	g := &Goals{
		required:  intmap.New[model.GemID, int](len(stoneGoal)),
		collected: intmap.New[model.GemID, int](len(stoneGoal)),
	}
	def := model.LevelDefinition{StoneGoal: stoneGoal}
	for _, id := range def.GoalGems() {
		g.required.Put(id, stoneGoal[id])
		g.collected.Put(id, 0)
		g.order = append(g.order, id)
	}
	return g
}

func (g *Goals) Tracked(gem model.GemID) bool {
	return g.collected.Has(gem)
}

func (g *Goals) Collect(gem model.GemID) bool {
	n, ok := g.collected.Get(gem)
	if !ok {
		return false
	}
	g.collected.Put(gem, n+1)
	return true
}

// CollectAll returns how many of gems were counted.
func (g *Goals) CollectAll(gems []model.GemID) int {
	n := 0
	for _, gem := range gems {
		if g.Collect(gem) {
			n++
		}
	}
	return n
}

func (g *Goals) Collected(gem model.GemID) int {
	n, _ := g.collected.Get(gem)
	return n
}

func (g *Goals) Met() bool {
	met := true
	g.required.ForEach(func(gem model.GemID, need int) bool {
		if g.Collected(gem) < need {
			met = false
		}
		return met
	})
	return met
}

func (g *Goals) Progress() []model.GoalProgress {
	out := make([]model.GoalProgress, 0, len(g.order))
	for _, gem := range g.order {
		need, _ := g.required.Get(gem)
		out = append(out, model.GoalProgress{Gem: gem, Collected: g.Collected(gem), Required: need})
	}
	return out
}
