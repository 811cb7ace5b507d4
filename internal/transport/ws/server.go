// Package ws is the front-end gateway. Each connection owns an independent
// simulation instance: its own state and RNG, never shared. The engine stays
// single-threaded per instance; the gateway only translates wire envelopes
// to typed commands and events back to wire records.
package ws

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	persistlog "guildhall.quest/internal/persistence/log"
	"guildhall.quest/internal/protocol"
	"guildhall.quest/internal/sim/guild"
)

// StepSink receives the replay record of every step a session performs.
type StepSink interface {
	WriteStep(persistlog.StepEntry) error
}

// SaveSink persists a session's final state when its connection ends. The
// draw position pairs with the state so the log tail stays replayable.
type SaveSink interface {
	WriteSave(st guild.State, draws uint64)
}

type Server struct {
	cfg   guild.Config
	seed  int64
	log   *log.Logger
	sink  StepSink // may be nil
	saves SaveSink // may be nil

	upgrader websocket.Upgrader
}

func NewServer(cfg guild.Config, seed int64, sink StepSink, saves SaveSink, logger *log.Logger) *Server {
	return &Server{
		cfg:   cfg,
		seed:  seed,
		log:   logger,
		sink:  sink,
		saves: saves,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

type session struct {
	state guild.State
	rng   *guild.RNG
	step  uint64
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sess := &session{
			state: guild.NewState(s.cfg, s.seed),
			rng:   guild.NewRNG(s.seed),
		}
		defer func() {
			// A session that never accepted a command leaves nothing worth
			// keeping.
			if s.saves != nil && sess.state.Meta.Revision > 0 {
				s.saves.WriteSave(sess.state, sess.rng.Draws())
			}
		}()

		for {
			_ = conn.SetReadDeadline(time.Now().Add(10 * time.Minute))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			cmd, err := protocol.DecodeCommand(msg)
			if err != nil {
				s.writeReject(conn, 0, err.Error())
				continue
			}

			next, events := guild.Step(s.cfg, sess.state, cmd, sess.rng)
			sess.state = next
			sess.step++

			evJSON, err := protocol.EncodeEvents(events)
			if err != nil {
				s.log.Printf("encode events: %v", err)
				return
			}
			if s.sink != nil {
				cmdJSON, _ := protocol.EncodeCommand(cmd)
				_ = s.sink.WriteStep(persistlog.StepEntry{
					Step:    sess.step,
					Day:     next.Meta.Day,
					Command: cmdJSON,
					Events:  evJSON,
					Digest:  guild.StateDigest(next),
				})
			}

			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, evJSON); err != nil {
				return
			}
		}
	}
}

func (s *Server) writeReject(conn *websocket.Conn, cmd uint64, detail string) {
	b, err := protocol.EncodeEvents([]guild.Event{
		guild.Rejected{Cmd: cmd, Code: guild.ErrBadRequest, Detail: detail},
	})
	if err != nil {
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}
