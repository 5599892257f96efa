package server

import (
	"github.com/gorilla/websocket"
	"github.com/zucenko/gemblocks/level"
	"github.com/zucenko/gemblocks/model"
	"github.com/zucenko/gemblocks/progress"
	"github.com/zucenko/gemblocks/session"
	"github.com/zucenko/gemblocks/store"
	"sync"
	"time"
)

type GameServer struct {
	Levels      *level.Cache
	Store       store.CurrencyStore
	Costs       progress.Costs
	MaxSessions int

	GameSessions map[int32]*GameSession
	GameRequests chan GameRequest
	Finished     chan int32
	Upgrader     *websocket.Upgrader

	nextId int32
	// count mirrors len(GameSessions) for readers outside Loop
	mu    sync.RWMutex
	count int
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_PLAY
	GS_ERR
	GS_OVER
)

// GameSession is one player's game. Only Loop touches Controller.
type GameSession struct {
	Id                    int32
	State                 GameSessionState
	Controller            *session.Controller
	PlayerSession         *PlayerSession
	Errors                chan error
	Events                chan PlayerEvent
	PlayerConnectRequests chan PlayerConnectRequest
	finished              chan<- int32
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
)

type PlayerSession struct {
	State       PlayerSessionState
	Id          int32
	GameSession *GameSession
	Conn        *websocket.Conn
	GameOver    chan struct{}

	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}
