package session

import (
	"encoding/json"
	"time"

	"example.com/mastermind/internal/mastermind"
)

// Envelope WS envelope: {"type":"...","payload":{...}}
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// server -> client
const (
	TypeState  = "state"
	TypeGuess  = "guess"
	TypeSolved = "solved"
	TypeFailed = "failed"
	TypeError  = "error"
)

// client -> server
const (
	TypeFeedback = "feedback"
	TypeConfirm  = "solved"
	TypeAbort    = "abort"
)

type FeedbackPayload struct {
	Positions int `json:"positions"`
	Colors    int `json:"colors"`
}

type GuessPayload struct {
	Round     int    `json:"round"`
	Guess     string `json:"guess"`
	Remaining int    `json:"remaining"`
}

type SolvedPayload struct {
	Rounds   int    `json:"rounds"`
	Solution string `json:"solution"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StatePayload struct {
	SessionID string              `json:"sessionId"`
	Length    int                 `json:"length"`
	Strategy  mastermind.Strategy `json:"strategy"`
	Status    Status              `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	Colors    []string            `json:"colors"`
}

type CreateRequest struct {
	Length   int    `json:"length"`
	Strategy string `json:"strategy"`
}

type CreateResponse struct {
	SessionID string              `json:"sessionId"`
	Length    int                 `json:"length"`
	Strategy  mastermind.Strategy `json:"strategy"`
	WSPath    string              `json:"wsPath"`
}

type SolveRequest struct {
	Secret   string `json:"secret"`
	Strategy string `json:"strategy"`
}

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
