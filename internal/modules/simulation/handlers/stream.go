package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"nhooyr.io/websocket"

	"github.com/vantez/engine/internal/domain"
	"github.com/vantez/engine/internal/httputil"
	"github.com/vantez/engine/internal/modules/simulation"
)

const (
	// MessageBand carries one simulated step
	MessageBand = "band"
	// MessageDone closes a run
	MessageDone = "done"
	// MessageError reports a rejected request
	MessageError = "error"

	streamReadTimeout  = 30 * time.Second
	streamWriteTimeout = 10 * time.Second
)

// StreamMessage is one frame sent to a streaming client
type StreamMessage struct {
	Type  string                 `json:"type" msgpack:"type"`
	Band  *domain.SimulationBand `json:"band,omitempty" msgpack:"band,omitempty"`
	Run   *simulation.Run        `json:"run,omitempty" msgpack:"run,omitempty"`
	Error string                 `json:"error,omitempty" msgpack:"error,omitempty"`
}

// streamConn writes frames as JSON text or MessagePack binary
type streamConn struct {
	conn   *websocket.Conn
	binary bool
}

func (s *streamConn) send(ctx context.Context, msg StreamMessage) error {
	var (
		data []byte
		err  error
		typ  = websocket.MessageText
	)
	if s.binary {
		typ = websocket.MessageBinary
		data, err = msgpack.Marshal(msg)
	} else {
		data, err = json.Marshal(msg)
	}
	if err != nil {
		return fmt.Errorf("encode %s message: %w", msg.Type, err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()
	return s.conn.Write(writeCtx, typ, data)
}

// HandleStream handles GET /api/simulations/stream.
// The client sends one JSON request, then receives a band message per step
// followed by a done message carrying the run summary. Append
// ?format=msgpack to receive binary MessagePack frames.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to accept websocket")
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	out := &streamConn{
		conn:   conn,
		binary: r.URL.Query().Get("format") == "msgpack",
	}

	req, err := readRequest(ctx, conn)
	if err != nil {
		h.log.Debug().Err(err).Msg("Rejected stream request")
		_ = out.send(ctx, StreamMessage{Type: MessageError, Error: err.Error()})
		conn.Close(websocket.StatusPolicyViolation, "invalid request")
		return
	}

	run, err := h.simulator.Stream(ctx, req, func(band domain.SimulationBand) error {
		return out.send(ctx, StreamMessage{Type: MessageBand, Band: &band})
	})
	if err != nil {
		if run == nil {
			_ = out.send(ctx, StreamMessage{Type: MessageError, Error: err.Error()})
			conn.Close(websocket.StatusPolicyViolation, "invalid request")
			return
		}
		h.log.Debug().Err(err).Str("run_id", run.RunID).Msg("Stream ended early")
		return
	}

	summary := *run
	summary.Bands = nil
	if err := out.send(ctx, StreamMessage{Type: MessageDone, Run: &summary}); err != nil {
		h.log.Debug().Err(err).Str("run_id", run.RunID).Msg("Failed to send done message")
		return
	}

	conn.Close(websocket.StatusNormalClosure, "")
}

func readRequest(ctx context.Context, conn *websocket.Conn) (simulation.Request, error) {
	var req simulation.Request

	readCtx, cancel := context.WithTimeout(ctx, streamReadTimeout)
	defer cancel()

	msgType, data, err := conn.Read(readCtx)
	if err != nil {
		return req, fmt.Errorf("read request: %w", err)
	}
	if msgType != websocket.MessageText {
		return req, errors.New("request must be a JSON text message")
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("invalid request: %w", err)
	}
	if err := httputil.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}
