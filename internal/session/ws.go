package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"example.com/mastermind/internal/httpapi"
	"example.com/mastermind/internal/mastermind"
)

// handleWS attaches a client to a waiting session: GET /ws/{id}.
// The server sends guesses; the client answers each with feedback.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDFromPath("/ws/", r.URL.Path)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid session id")
		return
	}
	sess, ok := s.svc.Get(id)
	if !ok {
		httpapi.WriteError(w, http.StatusNotFound, "not_found", ErrNotFound.Error())
		return
	}

	userID, _ := httpapi.UserIDFromContext(r.Context())
	if err := sess.claim(userID); err != nil {
		switch {
		case errors.Is(err, ErrForbidden) && userID == "":
			httpapi.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		case errors.Is(err, ErrForbidden):
			httpapi.WriteError(w, http.StatusForbidden, "forbidden", err.Error())
		default:
			httpapi.WriteError(w, http.StatusConflict, "conflict", err.Error())
		}
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		sess.release()
		return
	}

	cc := newClientConn(ws)
	go cc.writeLoop()

	cc.Send(TypeState, sess.state())

	oracle := newConnOracle(cc, s.svc.cfg.FeedbackTimeout)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		report, err := s.svc.Play(ctx, sess, oracle)
		if err != nil {
			cc.Send(TypeFailed, ErrorPayload{Code: Outcome(err), Message: err.Error()})
		} else {
			cc.Send(TypeSolved, SolvedPayload{Rounds: len(report.Rounds), Solution: report.Solution.String()})
		}
		cc.Close()
	}()

	// reader loop
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			break
		}
		s.handleMessage(cc, oracle, sess.Length, data)
	}

	cancel()
	<-done
}

func (s *Server) handleMessage(cc *ClientConn, oracle *connOracle, length int, data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		cc.SendError("bad_json", "invalid json")
		return
	}

	var resp mastermind.Response
	switch env.Type {
	case TypeFeedback:
		var p FeedbackPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			cc.SendError("bad_input", "invalid payload")
			return
		}
		fb := mastermind.Feedback{Positions: p.Positions, Colors: p.Colors}
		if !fb.Valid(length) {
			cc.SendError("invalid_feedback", fmt.Sprintf("feedback %s is impossible for length %d", fb, length))
			return
		}
		resp = mastermind.FeedbackResponse(fb)

	case TypeConfirm:
		resp = mastermind.SolvedResponse

	case TypeAbort:
		resp = mastermind.AbortedResponse

	default:
		cc.SendError("unknown_type", "unknown message type")
		return
	}

	if err := oracle.deliver(resp); err != nil {
		cc.SendError("not_awaiting", err.Error())
	}
}
