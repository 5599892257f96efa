package model

import "fmt"

type ServerMessage struct {
	Snapshots []Snapshot
	Previews  []Preview
	Events    []Event
}

// Snapshot is everything a renderer needs after a mutating operation.
type Snapshot struct {
	Mode      Mode
	Level     int
	State     string
	Grid      Grid
	Hand      []Block
	Score     int
	ScoreGoal int
	Currency  int
	BombArmed bool
	Dragging  string
	Goals     []GoalProgress
}

type Preview struct {
	BlockID  string
	Row, Col int
	Valid    bool
}

type EventKind int

const (
	EV_INIT EventKind = iota + 1
	EV_PLACED
	EV_LINES
	EV_BOMB
	EV_SWAP
	EV_BOMB_ARMED
	EV_BOMB_DISARMED
	EV_LEVEL_COMPLETE
	EV_GAME_OVER
	EV_REJECTED
)

func (k EventKind) Name() string {
	switch k {
	case EV_INIT:
		return "init"
	case EV_PLACED:
		return "placed"
	case EV_LINES:
		return "lines"
	case EV_BOMB:
		return "bomb"
	case EV_SWAP:
		return "swap"
	case EV_BOMB_ARMED:
		return "bomb_armed"
	case EV_BOMB_DISARMED:
		return "bomb_disarmed"
	case EV_LEVEL_COMPLETE:
		return "level_complete"
	case EV_GAME_OVER:
		return "game_over"
	case EV_REJECTED:
		return "rejected"
	default:
		return fmt.Sprintf("n/a:%d", k)
	}
}

type Event struct {
	Kind   EventKind
	Points int
	Rows   []int
	Cols   []int
	Gems   []GemID
}
