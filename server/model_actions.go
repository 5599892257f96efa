package server

import (
	"context"
	"encoding/gob"
	"errors"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/gemblocks/level"
	"github.com/zucenko/gemblocks/model"
	"github.com/zucenko/gemblocks/progress"
	"github.com/zucenko/gemblocks/session"
	"github.com/zucenko/gemblocks/store"
	"net"
	"net/http"
	"time"
)

const (
	EVENTS_BUFFER   = 32
	MESSAGES_BUFFER = 10
)

// NewGameServer serves games on levels, persisting currency in st.
// maxSessions <= 0 means no limit.
func NewGameServer(levels *level.Cache, st store.CurrencyStore, costs progress.Costs, maxSessions int) *GameServer {
	return &GameServer{
		Levels:       levels,
		Store:        st,
		Costs:        costs,
		MaxSessions:  maxSessions,
		GameSessions: make(map[int32]*GameSession),
		GameRequests: make(chan GameRequest),
		Finished:     make(chan int32, 1),
		Upgrader:     &websocket.Upgrader{},
	}
}

// Sessions is the number of live game sessions.
func (s *GameServer) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("HandleHttpCall connection received")

		gcas := make(chan GameContextAwaiting, 1)
		select {
		case s.GameRequests <- GameRequest{GameContextAwaiting: gcas}:
		case <-time.After(timeout):
			log.Warn("HandleHttpCall GameRequests timed out")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
			if gca.ResponseCode != GAME_READY {
				log.WithField("code", gca.ResponseCode).Warn("HandleHttpCall refused")
				w.WriteHeader(gca.ResponseCode.ToHttp())
				return
			}
		case <-time.After(timeout):
			log.Warn("HandleHttpCall GameContextAwaiting timed out")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already replied to the client
			log.WithError(err).Warn("HandleHttpCall websocket upgrade")
			gca.GameSession.Errors <- err
			return
		}
		defer con.Close()

		gameOver := make(chan struct{})
		select {
		case gca.GameSession.PlayerConnectRequests <- PlayerConnectRequest{
			Con:      con,
			GameOver: gameOver}:
		case <-time.After(timeout):
			log.Warn("HandleHttpCall PlayerConnectRequests timed out")
			gca.GameSession.Errors <- errors.New("player connect timed out")
			return
		}

		log.WithField("session", gca.GameSession.Id).Info("HandleHttpCall waiting for game over")
		<-gameOver
	}
}

// Loop owns the session registry until ctx is done.
func (s *GameServer) Loop(ctx context.Context) {
	log.Info("GameServer.Loop starting")
	for {
		select {
		case <-ctx.Done():
			log.Info("GameServer.Loop stopped")
			return
		case id := <-s.Finished:
			delete(s.GameSessions, id)
			s.setCount(len(s.GameSessions))
			log.WithField("session", id).Info("GameServer.Loop session finished")
		case gameReq := <-s.GameRequests:
			if s.MaxSessions > 0 && len(s.GameSessions) >= s.MaxSessions {
				gameReq.GameContextAwaiting <- GameContextAwaiting{ResponseCode: GAME_FULL}
				continue
			}
			gs := s.newGameSession()
			s.GameSessions[gs.Id] = gs
			s.setCount(len(s.GameSessions))
			go gs.Loop(ctx)
			gameReq.GameContextAwaiting <- GameContextAwaiting{
				ResponseCode: GAME_READY,
				GameSession:  gs,
			}
		}
	}
}

func (s *GameServer) setCount(n int) {
	s.mu.Lock()
	s.count = n
	s.mu.Unlock()
}

func (s *GameServer) newGameSession() *GameSession {
	s.nextId++
	tracker := progress.NewTracker(progress.NewWallet(s.Store), s.Costs)
	ctl := session.New(s.Levels, tracker, nil)
	ctl.SetLogger(log.WithField("session", s.nextId))
	log.WithField("session", s.nextId).Info("create GameSession")
	return &GameSession{
		Id:                    s.nextId,
		State:                 GS_NEW,
		Controller:            ctl,
		Errors:                make(chan error, 2),
		Events:                make(chan PlayerEvent, EVENTS_BUFFER),
		PlayerConnectRequests: make(chan PlayerConnectRequest),
		finished:              s.Finished,
	}
}

// Loop applies player events to the controller one at a time, in arrival
// order, until the connection fails or ctx is done.
func (gs *GameSession) Loop(ctx context.Context) {
	logger := log.WithField("session", gs.Id)
	logger.Info("GameSession.Loop start")
	defer func() {
		if gs.PlayerSession != nil {
			close(gs.PlayerSession.MessagesToSend)
			close(gs.PlayerSession.GameOver)
		}
		select {
		case gs.finished <- gs.Id:
		case <-ctx.Done():
		}
		logger.WithField("state", gs.State.Name()).Info("GameSession.Loop end")
	}()
	for {
		select {
		case <-ctx.Done():
			gs.State = GS_OVER
			return
		case pcr := <-gs.PlayerConnectRequests:
			gs.addPlayer(pcr.Con, pcr.GameOver)
			gs.State = GS_PLAY
			gs.PlayerSession.State = PS_PLAY
			gs.Controller.SelectMode(ctx, model.MODE_ENDLESS)
			gs.send(gs.snapshotMessage())
		case err := <-gs.Errors:
			gs.State = GS_ERR
			if gs.PlayerSession != nil {
				gs.PlayerSession.State = PS_ERR
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				gs.State = GS_OVER
				gs.PlayerSession.State = PS_OVER
				logger.Info("GameSession.Loop player left")
			} else {
				logger.WithError(err).Warn("GameSession.Loop killing session")
			}
			return
		case pe := <-gs.Events:
			gs.send(gs.Turn(ctx, pe.Message))
		}
	}
}

func (gs *GameSession) send(mes model.ServerMessage) {
	select {
	case gs.PlayerSession.MessagesToSend <- mes:
	default:
		log.WithField("session", gs.Id).Warn("GameSession.send dropping message, MessagesToSend full")
	}
}

func (gs *GameSession) snapshotMessage() model.ServerMessage {
	return model.ServerMessage{
		Snapshots: []model.Snapshot{gs.Controller.Snapshot()},
		Events:    gs.Controller.DrainEvents(),
	}
}

// Turn applies one client message. Drag hovers answer with a placement
// preview only; everything else answers with a snapshot and the events
// it caused.
func (gs *GameSession) Turn(ctx context.Context, cm model.ClientMessage) model.ServerMessage {
	ctl := gs.Controller
	switch cm.Action {
	case model.ACT_DRAG_TARGET:
		if !ctl.Grid().InBounds(cm.Row, cm.Col) {
			ctl.LeaveGrid()
			return model.ServerMessage{Previews: []model.Preview{{BlockID: ctl.Dragging(), Row: cm.Row, Col: cm.Col}}}
		}
		valid := ctl.UpdateDragTarget(cm.Row, cm.Col)
		return model.ServerMessage{Previews: []model.Preview{{
			BlockID: ctl.Dragging(),
			Row:     cm.Row,
			Col:     cm.Col,
			Valid:   valid,
		}}}
	case model.ACT_MODE:
		ctl.SelectMode(ctx, cm.Mode)
	case model.ACT_BEGIN_DRAG:
		ctl.BeginDrag(cm.BlockID)
	case model.ACT_END_DRAG:
		ctl.EndDragAtLastTarget(ctx)
	case model.ACT_CANCEL_DRAG:
		ctl.CancelDrag()
	case model.ACT_TAP:
		ctl.TapCell(ctx, cm.Row, cm.Col)
	case model.ACT_SWAP:
		ctl.Swap(ctx)
	case model.ACT_BOMB:
		ctl.ToggleBomb(ctx)
	case model.ACT_RESTART:
		ctl.Restart(ctx)
	case model.ACT_NEXT_LEVEL:
		ctl.NextLevel(ctx)
	case model.ACT_SNAPSHOT:
	default:
		log.WithFields(log.Fields{
			"session": gs.Id,
			"action":  cm.Action.Name(),
		}).Warn("GameSession.Turn unknown action")
	}
	return gs.snapshotMessage()
}

func (gs *GameSession) addPlayer(
	conn *websocket.Conn,
	gameOver chan struct{},
) {
	ps := &PlayerSession{
		State:          PS_NEW,
		Id:             gs.Id,
		GameSession:    gs,
		Conn:           conn,
		GameOver:       gameOver,
		MessagesToSend: make(chan model.ServerMessage, MESSAGES_BUFFER),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ps.DebugLastPing = time.Now()
			ps.DebugPings++
			var netErr net.Error
			if errors.Is(err, websocket.ErrCloseSent) {
				return nil
			} else if errors.As(err, &netErr) && netErr.Timeout() {
				return nil
			}
			return err
		})
	gs.PlayerSession = ps
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
}

func (ps *PlayerSession) LoopChannelRead() {
	logger := log.WithField("session", ps.Id)
	logger.Debug("LoopChannelRead started")
	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			ps.GameSession.Errors <- err
			break
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			logger.WithError(err).Warn("LoopChannelRead cant decode")
			ps.GameSession.Errors <- err
			break
		}
		ps.DebugLastMessage = time.Now()
		ps.DebugInMessages++
		logger.WithField("action", cm.Action.Name()).Debug("LoopChannelRead")

		// blocks while the session is busy; GameOver closes when it ends
		select {
		case ps.GameSession.Events <- PlayerEvent{Player: ps.Id, Message: cm}:
		case <-ps.GameOver:
			logger.Debug("LoopChannelRead session ended")
			return
		}
	}
	logger.Debug("LoopChannelRead ended")
}

// LoopChannelWrite sends until MessagesToSend is closed or a write fails.
func (ps *PlayerSession) LoopChannelWrite() {
	logger := log.WithField("session", ps.Id)
	logger.Debug("LoopChannelWrite started")
	for mes := range ps.MessagesToSend {
		w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
		if err != nil {
			logger.WithError(err).Warn("LoopChannelWrite cant get writer")
			ps.GameSession.Errors <- err
			break
		}
		if err := gob.NewEncoder(w).Encode(mes); err != nil {
			logger.WithError(err).Warn("LoopChannelWrite cant encode")
			ps.GameSession.Errors <- err
			break
		}
		if err := w.Close(); err != nil {
			logger.WithError(err).Warn("LoopChannelWrite cant flush")
			ps.GameSession.Errors <- err
			break
		}
		ps.DebugOutMessages++
	}
	logger.Debug("LoopChannelWrite ended")
}
