package progress

import (
	"context"
	"github.com/zucenko/gemblocks/model"
)

const DEFAULT_REWARD = 50

// Tracker evaluates level completion for the running level.
// With no level definition (endless mode) nothing ever completes.
type Tracker struct {
	Wallet   *Wallet
	PowerUps *PowerUps

	def      *model.LevelDefinition
	goals    *Goals
	complete bool
}

func NewTracker(w *Wallet, costs Costs) *Tracker {
	return &Tracker{
		Wallet:   w,
		PowerUps: NewPowerUps(costs),
		goals:    NewGoals(nil),
	}
}

func (t *Tracker) Reset(def *model.LevelDefinition) {
	t.def = def
	t.complete = false
	t.PowerUps.Disarm()
	if def == nil {
		t.goals = NewGoals(nil)
		return
	}
	t.goals = NewGoals(def.StoneGoal)
}

func (t *Tracker) Goals() *Goals {
	return t.goals
}

func (t *Tracker) Complete() bool {
	return t.complete
}

// Credit counts the gems that belong to the goal.
func (t *Tracker) Credit(gems []model.GemID) int {
	return t.goals.CollectAll(gems)
}

// CheckLevelComplete pays the reward the first time both the score goal and
// every stone goal are met.
func (t *Tracker) CheckLevelComplete(ctx context.Context, score int) (bool, error) {
	if t.def == nil || t.complete {
		return false, nil
	}
	if score < t.def.ScoreGoal || !t.goals.Met() {
		return false, nil
	}
	t.complete = true
	reward := t.def.CurrencyReward
	if reward == 0 {
		reward = DEFAULT_REWARD
	}
	return true, t.Wallet.Add(ctx, reward)
}
