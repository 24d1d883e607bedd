package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ChicagoDave/massing/pkg/events"
)

const (
	streamBuffer = 256
	writeTimeout = 5 * time.Second
)

// handleEventStream upgrades to a websocket and forwards every event emitted
// after the upgrade as a JSON text message. With ?replay=1 the retained log is
// sent first. Client messages are read and discarded; a read error ends the
// stream.
func (s *Server) handleEventStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sid := fmt.Sprintf("W%d", s.nextID.Add(1))
	s.log.Printf("ws %s connected from %s", sid, r.RemoteAddr)
	defer s.log.Printf("ws %s disconnected", sid)

	// Subscribe before taking the replay snapshot so nothing falls between
	// the two; seq filters the overlap.
	ch, unsubscribe := s.editor.Events().Subscribe(streamBuffer)
	defer unsubscribe()

	var sent uint64
	if r.URL.Query().Get("replay") != "" {
		for _, ev := range s.editor.Events().Events() {
			if err := writeEvent(conn, ev); err != nil {
				return
			}
			sent = ev.Seq
		}
	}

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-readDone:
			return
		case <-s.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"),
				time.Now().Add(time.Second))
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if ev.Seq <= sent {
				continue
			}
			if err := writeEvent(conn, ev); err != nil {
				return
			}
			sent = ev.Seq
		}
	}
}

func writeEvent(conn *websocket.Conn, ev events.Event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(ev)
}
