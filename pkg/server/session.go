package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/faxui/fax"
	"github.com/faxui/fax/pkg/fdom"
	"github.com/faxui/fax/pkg/protocol"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
)

// Session owns one websocket connection and the Root mounted for it.
// Updates to the root are serialized by the root's own update lock, so
// mutation frames can originate from the read loop or from an
// application goroutine (a search callback firing after its timer);
// either way they are pushed through the root's OnUpdate hook the
// moment the pass completes.
type Session struct {
	id     string
	conn   *websocket.Conn
	root   *fax.Root
	logger *slog.Logger

	metrics *Metrics
	tracer  trace.Tracer

	seqMu   sync.Mutex
	writeMu sync.Mutex
	seq     uint64

	closeOnce sync.Once
	done      chan struct{}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Root returns the control tree mounted for this session.
func (s *Session) Root() *fax.Root { return s.root }

// Close shuts the connection down. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
		s.metrics.activeSessions.Dec()
		s.logger.Info("session closed", "session", s.id)
	})
}

// ReadLoop reads frames until the connection drops. Event frames are
// dispatched through the delegation registry; the mutations the
// handlers produce are flushed back as one Mutations frame per event.
func (s *Session) ReadLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "session", s.id, "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Error("frame decode error", "session", s.id, "error", err)
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame)

		case protocol.FrameControl:
			s.handleControlFrame(frame)

		default:
			s.logger.Warn("unknown frame type", "session", s.id, "type", frame.Type)
		}
	}
}

// handleEventFrame decodes a host event and dispatches it. Any
// mutations the handler produces reach the client through
// pushMutations, whether the handler updated synchronously or deferred
// the update to another goroutine.
func (s *Session) handleEventFrame(frame *protocol.Frame) {
	ev, err := protocol.DecodeEvent(frame)
	if err != nil {
		s.metrics.eventErrors.WithLabelValues("decode").Inc()
		s.logger.Error("event decode error", "session", s.id, "error", err)
		return
	}

	_, span := s.tracer.Start(context.Background(), "fax.dispatch",
		trace.WithAttributes(
			attribute.String("fax.session", s.id),
			attribute.String("fax.node", ev.NodeID),
			attribute.String("fax.event_type", ev.Type),
		))

	start := time.Now()
	handled := s.root.Dispatch(ev)
	s.metrics.reconcileDuration.Observe(time.Since(start).Seconds())
	s.metrics.eventsTotal.WithLabelValues(ev.Type).Inc()

	span.SetAttributes(attribute.Bool("fax.handled", handled != ""))
	span.SetStatus(codes.Ok, "")
	span.End()
}

// pushMutations streams one update pass to the client. Installed as
// the root's OnUpdate hook, so it runs on whichever goroutine
// completed the pass; send serializes the actual write.
func (s *Session) pushMutations(muts []fdom.Mutation) {
	select {
	case <-s.done:
		return
	default:
	}
	s.metrics.mutationsTotal.Add(float64(len(muts)))
	if err := s.send(protocol.EncodeMutations(muts, s.nextSeq())); err != nil {
		s.metrics.eventErrors.WithLabelValues("send").Inc()
		s.logger.Error("mutation send failed", "session", s.id, "error", err)
	}
}

// handleControlFrame echoes pings.
func (s *Session) handleControlFrame(frame *protocol.Frame) {
	reply := &protocol.Frame{Type: protocol.FrameControl, Seq: frame.Seq, Payload: frame.Payload}
	if err := s.send(reply.Encode()); err != nil {
		s.logger.Error("control reply failed", "session", s.id, "error", err)
	}
}

// send writes one binary message under the write mutex.
func (s *Session) send(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (s *Session) nextSeq() uint64 {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()
	s.seq++
	return s.seq
}
