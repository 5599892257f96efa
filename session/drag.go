package session

import "fmt"

type DragState int

const (
	DRAG_IDLE DragState = iota
	DRAG_ACTIVE
)

func (s DragState) Name() string {
	switch s {
	case DRAG_IDLE:
		return "IDLE"
	case DRAG_ACTIVE:
		return "DRAGGING"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

// Drag tracks the single block being dragged. Only one drag can be live,
// a second begin is ignored until the first ends or is cancelled.
type Drag struct {
	state   DragState
	blockID string

	// last grid cell hovered, if any
	row, col  int
	hasTarget bool
}

func (d *Drag) Begin(blockID string) bool {
	if d.state == DRAG_ACTIVE {
		return false
	}
	*d = Drag{state: DRAG_ACTIVE, blockID: blockID}
	return true
}

func (d *Drag) Target(row, col int) {
	if d.state != DRAG_ACTIVE {
		return
	}
	d.row, d.col, d.hasTarget = row, col, true
}

func (d *Drag) LeaveGrid() {
	d.hasTarget = false
}

// End resets to idle and returns the dragged block id.
func (d *Drag) End() (string, bool) {
	if d.state != DRAG_ACTIVE {
		return "", false
	}
	id := d.blockID
	*d = Drag{}
	return id, true
}

func (d *Drag) Cancel() {
	*d = Drag{}
}

func (d *Drag) State() DragState {
	return d.state
}

func (d *Drag) BlockID() string {
	return d.blockID
}

func (d *Drag) LastTarget() (int, int, bool) {
	return d.row, d.col, d.hasTarget
}
