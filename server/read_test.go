package server

import (
	"encoding/gob"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/gemblocks/model"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestReadLoopWaitsForBusySession(t *testing.T) {
	gs := &GameSession{
		Id:     1,
		Errors: make(chan error, 2),
		Events: make(chan PlayerEvent, 1),
	}
	gameOver := make(chan struct{})
	done := make(chan struct{})
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		ps := &PlayerSession{Id: 1, GameSession: gs, Conn: conn, GameOver: gameOver}
		ps.LoopChannelRead()
		close(done)
	}))
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	write := func(row int) error {
		w, err := conn.NextWriter(websocket.BinaryMessage)
		if err != nil {
			return err
		}
		if err := gob.NewEncoder(w).Encode(model.ClientMessage{Action: model.ACT_DRAG_TARGET, Row: row}); err != nil {
			return err
		}
		return w.Close()
	}
	const sent = 5
	for i := 0; i < sent; i++ {
		require.NoError(t, write(i))
	}
	// nobody drains Events yet, so the reader sits on a full buffer
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < sent; i++ {
		select {
		case pe := <-gs.Events:
			require.Equal(t, i, pe.Message.Row)
		case <-time.After(2 * time.Second):
			t.Fatalf("event %d never arrived", i)
		}
	}

	close(gameOver)
	// one fills the buffer again, the next finds it full
	require.NoError(t, write(sent))
	_ = write(sent + 1)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reader kept running after the session ended")
	}
}
