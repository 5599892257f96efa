package model

import (
	"fmt"
	"sort"
)

type Mode int

const (
	MODE_ENDLESS Mode = iota
	MODE_LEVELS
)

func (m Mode) Name() string {
	switch m {
	case MODE_ENDLESS:
		return "endless"
	case MODE_LEVELS:
		return "levels"
	default:
		return fmt.Sprintf("n/a:%d", m)
	}
}

func (m Mode) Valid() bool {
	return m == MODE_ENDLESS || m == MODE_LEVELS
}

func ParseMode(s string) (Mode, bool) {
	switch s {
	case "endless":
		return MODE_ENDLESS, true
	case "levels":
		return MODE_LEVELS, true
	}
	return MODE_ENDLESS, false
}

// LevelDefinition is generated once per level number and shared read-only.
// StartGrid must be cloned before it is played on.
type LevelDefinition struct {
	Level          int           `json:"level"`
	GridSize       int           `json:"grid_size"`
	ScoreGoal      int           `json:"score_goal"`
	CurrencyReward int           `json:"currency_reward"`
	StoneGoal      map[GemID]int `json:"stone_goal"`
	StartGrid      Grid          `json:"-"`
	Blocks         []BlockDraw   `json:"blocks"`
	// Unplaced counts goal gems the generator found no free cell for.
	Unplaced int `json:"unplaced,omitempty"`
}

// GoalGems lists the stone goal ids in ascending order.
func (d LevelDefinition) GoalGems() []GemID {
	ids := make([]GemID, 0, len(d.StoneGoal))
	for id := range d.StoneGoal {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type GoalProgress struct {
	Gem       GemID
	Collected int
	Required  int
}

func (p GoalProgress) Met() bool {
	return p.Collected >= p.Required
}
