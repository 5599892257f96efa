package session

import (
	"context"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/gemblocks/board"
	"github.com/zucenko/gemblocks/level"
	"github.com/zucenko/gemblocks/model"
	"github.com/zucenko/gemblocks/progress"
	"math/rand/v2"
)

const HAND_SIZE = 3

type State int

const (
	PLAYING State = iota + 1
	LEVEL_COMPLETE
	GAME_OVER
)

func (s State) Name() string {
	switch s {
	case PLAYING:
		return "PLAYING"
	case LEVEL_COMPLETE:
		return "LEVEL_COMPLETE"
	case GAME_OVER:
		return "GAME_OVER"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

// Controller runs one player's game. It is not safe for concurrent use:
// the owner feeds it events one at a time.
type Controller struct {
	levels  *level.Cache
	tracker *progress.Tracker
	rng     *rand.Rand
	log     *log.Entry

	mode   model.Mode
	level  int
	def    *model.LevelDefinition
	board  *board.Board
	hand   []model.Block
	cursor int
	score  int
	state  State
	drag   Drag
	nextID int
	events []model.Event
}

// New returns a controller with an empty endless board and no hand;
// call SelectMode or Init before playing.
func New(levels *level.Cache, tracker *progress.Tracker, rng *rand.Rand) *Controller {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Controller{
		levels:  levels,
		tracker: tracker,
		rng:     rng,
		log:     log.NewEntry(log.StandardLogger()),
		mode:    model.MODE_ENDLESS,
		level:   1,
		board:   board.New(model.ENDLESS_GRID_SIZE),
		state:   PLAYING,
	}
}

func (c *Controller) SetLogger(entry *log.Entry) {
	c.log = entry
}

// SelectMode switches mode and starts its first level. Unknown modes are
// refused and the running game is left alone.
func (c *Controller) SelectMode(ctx context.Context, mode model.Mode) bool {
	if !mode.Valid() {
		c.emit(model.Event{Kind: model.EV_REJECTED})
		c.log.WithField("mode", mode.Name()).Warn("SelectMode unknown mode")
		return false
	}
	c.mode = mode
	c.Init(ctx, 1)
	return true
}

// Init starts levelNumber in the current mode. Endless mode ignores the number.
func (c *Controller) Init(ctx context.Context, levelNumber int) {
	c.score = 0
	c.state = PLAYING
	c.cursor = 0
	c.drag.Cancel()
	if err := c.tracker.Wallet.Load(ctx); err != nil {
		c.log.WithError(err).Warn("Controller.Init currency load failed, keeping balance")
	}

	if c.mode == model.MODE_LEVELS {
		def := c.levels.Get(levelNumber)
		c.def = &def
		c.level = def.Level
		c.board = board.FromGrid(def.StartGrid)
	} else {
		c.def = nil
		c.level = 1
		c.board = board.New(model.ENDLESS_GRID_SIZE)
	}
	c.tracker.Reset(c.def)
	c.refill()

	c.emit(model.Event{Kind: model.EV_INIT})
	c.log.WithFields(log.Fields{
		"mode":  c.mode.Name(),
		"level": c.level,
		"grid":  c.board.Size(),
	}).Info("Controller.Init")
}

func (c *Controller) Restart(ctx context.Context) {
	c.Init(ctx, c.level)
}

// NextLevel advances only from a completed level.
func (c *Controller) NextLevel(ctx context.Context) bool {
	if c.mode != model.MODE_LEVELS || c.state != LEVEL_COMPLETE {
		return false
	}
	c.Init(ctx, c.level+1)
	return true
}

func (c *Controller) newBlock(shape model.ShapeID, gems []model.GemAttachment) model.Block {
	c.nextID++
	return model.Block{
		ID:    fmt.Sprintf("block-%d", c.nextID),
		Shape: shape,
		Gems:  gems,
	}
}

// refill replaces the hand: next sequence entries while a level has any
// left, otherwise HAND_SIZE random shapes.
func (c *Controller) refill() {
	c.hand = make([]model.Block, 0, HAND_SIZE)
	if c.def != nil && c.cursor < len(c.def.Blocks) {
		end := min(c.cursor+HAND_SIZE, len(c.def.Blocks))
		for _, draw := range c.def.Blocks[c.cursor:end] {
			if _, ok := model.ShapeByID(draw.Shape); !ok {
				c.log.WithField("shape", draw.Shape).Warn("refill unknown shape in block sequence")
				continue
			}
			c.hand = append(c.hand, c.newBlock(draw.Shape, draw.Gems))
		}
		c.cursor = end
		if len(c.hand) > 0 {
			return
		}
	}
	for i := 0; i < HAND_SIZE; i++ {
		c.hand = append(c.hand, c.newBlock(model.ShapeID(c.rng.IntN(int(model.ShapeCount))), nil))
	}
}

func (c *Controller) findBlock(id string) int {
	for i, b := range c.hand {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// BeginDrag picks up a hand block. Refused while a bomb is armed,
// while another drag is live, or after the game ended.
func (c *Controller) BeginDrag(blockID string) bool {
	if c.state != PLAYING || c.tracker.PowerUps.Armed() {
		return false
	}
	if c.findBlock(blockID) < 0 {
		return false
	}
	return c.drag.Begin(blockID)
}

// UpdateDragTarget moves the drag over (row, col) and reports whether a
// drop there would be legal.
func (c *Controller) UpdateDragTarget(row, col int) bool {
	if c.drag.State() != DRAG_ACTIVE {
		return false
	}
	idx := c.findBlock(c.drag.BlockID())
	if idx < 0 {
		c.drag.Cancel()
		return false
	}
	c.drag.Target(row, col)
	return c.board.IsValidPlacement(c.hand[idx], row, col)
}

// LeaveGrid marks the drag as hovering outside the board.
func (c *Controller) LeaveGrid() {
	c.drag.LeaveGrid()
}

// EndDrag drops the dragged block at (row, col). An illegal drop cancels
// the drag and leaves grid and hand untouched.
func (c *Controller) EndDrag(ctx context.Context, row, col int) bool {
	id, ok := c.drag.End()
	if !ok || c.state != PLAYING {
		return false
	}
	idx := c.findBlock(id)
	if idx < 0 {
		return false
	}
	block := c.hand[idx]
	points, ok := c.board.Place(block, row, col)
	if !ok {
		c.emit(model.Event{Kind: model.EV_REJECTED})
		return false
	}
	c.hand = append(c.hand[:idx], c.hand[idx+1:]...)
	c.score += points
	c.emit(model.Event{Kind: model.EV_PLACED, Points: points})
	c.endTurn(ctx)
	return true
}

// EndDragAtLastTarget drops on the last hovered cell, or cancels when the
// pointer was released off the board.
func (c *Controller) EndDragAtLastTarget(ctx context.Context) bool {
	row, col, ok := c.drag.LastTarget()
	if !ok {
		c.CancelDrag()
		return false
	}
	return c.EndDrag(ctx, row, col)
}

func (c *Controller) CancelDrag() {
	c.drag.Cancel()
}

// endTurn runs after a successful placement:
// clears, goal check, refill when the hand is empty, game over check.
func (c *Controller) endTurn(ctx context.Context) {
	res := c.board.CheckLineClears()
	if res.Lines() > 0 {
		c.score += res.Points
		c.tracker.Credit(res.Gems)
		c.emit(model.Event{
			Kind:   model.EV_LINES,
			Points: res.Points,
			Rows:   res.Rows,
			Cols:   res.Cols,
			Gems:   res.Gems,
		})
	}
	if c.checkLevelComplete(ctx) {
		return
	}
	if len(c.hand) == 0 {
		c.refill()
	}
	c.checkGameOver()
}

func (c *Controller) checkLevelComplete(ctx context.Context) bool {
	done, err := c.tracker.CheckLevelComplete(ctx, c.score)
	if err != nil {
		c.log.WithError(err).Warn("checkLevelComplete currency save failed")
	}
	if !done {
		return false
	}
	c.state = LEVEL_COMPLETE
	c.drag.Cancel()
	c.tracker.PowerUps.Disarm()
	c.emit(model.Event{Kind: model.EV_LEVEL_COMPLETE})
	c.log.WithFields(log.Fields{
		"level":    c.level,
		"score":    c.score,
		"currency": c.tracker.Wallet.Balance(),
	}).Info("level complete")
	return true
}

func (c *Controller) checkGameOver() {
	if !c.board.IsGameOver(c.hand) {
		return
	}
	c.state = GAME_OVER
	c.drag.Cancel()
	c.emit(model.Event{Kind: model.EV_GAME_OVER, Points: c.score})
	c.log.WithFields(log.Fields{
		"mode":  c.mode.Name(),
		"level": c.level,
		"score": c.score,
	}).Info("game over")
}

// Swap buys a fresh hand.
func (c *Controller) Swap(ctx context.Context) bool {
	if c.state != PLAYING {
		return false
	}
	ok, err := c.tracker.PowerUps.BuySwap(ctx, c.tracker.Wallet)
	if err != nil {
		c.log.WithError(err).Warn("Swap currency save failed")
	}
	if !ok {
		c.emit(model.Event{Kind: model.EV_REJECTED})
		return false
	}
	c.drag.Cancel()
	c.refill()
	c.emit(model.Event{Kind: model.EV_SWAP})
	c.checkGameOver()
	return true
}

// ToggleBomb arms a bomb when affordable, or disarms an armed one.
// It returns whether a bomb is armed afterwards.
func (c *Controller) ToggleBomb(ctx context.Context) bool {
	if c.state != PLAYING {
		return false
	}
	wasArmed := c.tracker.PowerUps.Armed()
	armed, err := c.tracker.PowerUps.ToggleBomb(ctx, c.tracker.Wallet)
	if err != nil {
		c.log.WithError(err).Warn("ToggleBomb currency save failed")
	}
	switch {
	case wasArmed:
		c.emit(model.Event{Kind: model.EV_BOMB_DISARMED})
	case armed:
		c.drag.Cancel()
		c.emit(model.Event{Kind: model.EV_BOMB_ARMED})
	default:
		c.emit(model.Event{Kind: model.EV_REJECTED})
	}
	return armed
}

// TapCell detonates an armed bomb at (row, col). Without an armed bomb,
// or off the board, it does nothing.
func (c *Controller) TapCell(ctx context.Context, row, col int) bool {
	if c.state != PLAYING || !c.tracker.PowerUps.Armed() || !c.board.InBounds(row, col) {
		return false
	}
	res := c.board.Bomb(row, col)
	c.tracker.PowerUps.Disarm()
	c.score += res.Points
	c.tracker.Credit(res.Gems)
	c.emit(model.Event{Kind: model.EV_BOMB, Points: res.Points, Gems: res.Gems})
	c.checkLevelComplete(ctx)
	return true
}

func (c *Controller) emit(ev model.Event) {
	c.events = append(c.events, ev)
}

// DrainEvents returns and forgets the events recorded since the last call.
func (c *Controller) DrainEvents() []model.Event {
	evs := c.events
	c.events = nil
	return evs
}

func (c *Controller) Mode() model.Mode {
	return c.mode
}

func (c *Controller) Level() int {
	return c.level
}

func (c *Controller) Score() int {
	return c.score
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Currency() int {
	return c.tracker.Wallet.Balance()
}

func (c *Controller) BombArmed() bool {
	return c.tracker.PowerUps.Armed()
}

func (c *Controller) Dragging() string {
	return c.drag.BlockID()
}

func (c *Controller) Grid() model.Grid {
	return c.board.Grid()
}

// Cursor is the index of the next block sequence entry.
func (c *Controller) Cursor() int {
	return c.cursor
}

func (c *Controller) Goals() []model.GoalProgress {
	return c.tracker.Goals().Progress()
}

func (c *Controller) Hand() []model.Block {
	out := make([]model.Block, len(c.hand))
	copy(out, c.hand)
	return out
}

// Definition is the running level, nil in endless mode.
func (c *Controller) Definition() *model.LevelDefinition {
	return c.def
}

func (c *Controller) Snapshot() model.Snapshot {
	snap := model.Snapshot{
		Mode:      c.mode,
		Level:     c.level,
		State:     c.state.Name(),
		Grid:      c.board.Grid(),
		Hand:      c.Hand(),
		Score:     c.score,
		Currency:  c.Currency(),
		BombArmed: c.BombArmed(),
		Dragging:  c.Dragging(),
		Goals:     c.Goals(),
	}
	if c.def != nil {
		snap.ScoreGoal = c.def.ScoreGoal
	}
	return snap
}
