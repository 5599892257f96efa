package model

import "fmt"

type Action int

const (
	ACT_MODE Action = iota + 1
	ACT_BEGIN_DRAG
	ACT_DRAG_TARGET
	ACT_END_DRAG
	ACT_CANCEL_DRAG
	ACT_TAP
	ACT_SWAP
	ACT_BOMB
	ACT_RESTART
	ACT_NEXT_LEVEL
	ACT_SNAPSHOT
)

func (a Action) Name() string {
	switch a {
	case ACT_MODE:
		return "mode"
	case ACT_BEGIN_DRAG:
		return "begin_drag"
	case ACT_DRAG_TARGET:
		return "drag_target"
	case ACT_END_DRAG:
		return "end_drag"
	case ACT_CANCEL_DRAG:
		return "cancel_drag"
	case ACT_TAP:
		return "tap"
	case ACT_SWAP:
		return "swap"
	case ACT_BOMB:
		return "bomb"
	case ACT_RESTART:
		return "restart"
	case ACT_NEXT_LEVEL:
		return "next_level"
	case ACT_SNAPSHOT:
		return "snapshot"
	default:
		return fmt.Sprintf("n/a:%d", a)
	}
}

// ClientMessage is one input event. Row/Col are grid coordinates already
// hit-tested by the client.
type ClientMessage struct {
	Action  Action
	Mode    Mode
	BlockID string
	Row     int
	Col     int
}
