package session

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/mastermind/internal/auth"
	"example.com/mastermind/internal/httpapi"
	"example.com/mastermind/internal/mastermind"
)

type testEnv struct {
	ts      *httptest.Server
	svc     *Service
	auth    *auth.Service
	records *memRecords
}

func newTestEnv(t *testing.T, cfg Config) *testEnv {
	t.Helper()
	authSvc := auth.NewService([]byte("test-secret"))
	recs := &memRecords{}
	svc := NewService(cfg, nil, recs, nil)

	mux := http.NewServeMux()
	NewServer(svc, httpapi.OptionalAuth(authSvc), nil).RegisterRoutes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, svc: svc, auth: authSvc, records: recs}
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := e.auth.Sign(userID, time.Hour)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) post(t *testing.T, path string, body any, token string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req, err := http.NewRequest(http.MethodPost, e.ts.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) create(t *testing.T, req CreateRequest, token string) CreateResponse {
	t.Helper()
	resp := e.post(t, "/api/sessions", req, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out CreateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) dial(t *testing.T, path string, hdr http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(e.ts.URL, "http") + path
	return websocket.DefaultDialer.Dial(url, hdr)
}

func readEnvelope(t *testing.T, ws *websocket.Conn) Envelope {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func send(t *testing.T, ws *websocket.Conn, typ string, payload any) {
	t.Helper()
	require.NoError(t, ws.WriteJSON(Envelope{Type: typ, Payload: mustJSON(payload)}))
}

// playAsOracle answers every guess by scoring it against secret until the
// session ends, and returns the final envelope.
func playAsOracle(t *testing.T, ws *websocket.Conn, secret mastermind.Combination) (Envelope, int) {
	t.Helper()
	guesses := 0
	for {
		env := readEnvelope(t, ws)
		if env.Type != TypeGuess {
			return env, guesses
		}
		guesses++

		var g GuessPayload
		require.NoError(t, json.Unmarshal(env.Payload, &g))
		require.Equal(t, guesses, g.Round)

		guess, err := mastermind.ParseCombination(g.Guess)
		require.NoError(t, err)
		fb, err := mastermind.Score(guess, secret)
		require.NoError(t, err)

		if fb.Solved(len(secret)) {
			send(t, ws, TypeConfirm, nil)
			continue
		}
		send(t, ws, TypeFeedback, FeedbackPayload{Positions: fb.Positions, Colors: fb.Colors})
	}
}

func TestWS_SolveOverSocket(t *testing.T) {
	env := newTestEnv(t, testConfig())

	strategies := []string{"B", "i", "K"}
	for _, st := range strategies {
		t.Run(st, func(t *testing.T) {
			created := env.create(t, CreateRequest{Length: 3, Strategy: st}, "")
			require.Equal(t, "/ws/"+created.SessionID, created.WSPath)

			ws, _, err := env.dial(t, created.WSPath, nil)
			require.NoError(t, err)
			defer ws.Close()

			first := readEnvelope(t, ws)
			require.Equal(t, TypeState, first.Type)
			var state StatePayload
			require.NoError(t, json.Unmarshal(first.Payload, &state))
			assert.Equal(t, StatusPlaying, state.Status)
			assert.Len(t, state.Colors, mastermind.NumColors)

			secret, err := mastermind.ParseCombination("POR")
			require.NoError(t, err)

			last, guesses := playAsOracle(t, ws, secret)
			require.Equal(t, TypeSolved, last.Type, string(last.Payload))

			var solved SolvedPayload
			require.NoError(t, json.Unmarshal(last.Payload, &solved))
			assert.Equal(t, "P O R", solved.Solution)
			assert.Equal(t, guesses, solved.Rounds)
		})
	}

	rows := env.records.all()
	require.Len(t, rows, len(strategies))
	for _, r := range rows {
		assert.Equal(t, "solved", r.Outcome)
	}
}

func TestWS_Endpoint_Errors(t *testing.T) {
	env := newTestEnv(t, testConfig())

	owned := env.create(t, CreateRequest{}, env.token(t, "owner"))
	busy := env.create(t, CreateRequest{}, "")

	// hold the busy session
	holder, _, err := env.dial(t, busy.WSPath, nil)
	require.NoError(t, err)
	defer holder.Close()
	require.Equal(t, TypeState, readEnvelope(t, holder).Type)

	cases := []struct {
		name     string
		path     string
		token    string
		wantCode int
	}{
		{name: "bad_missing", path: "/ws/", wantCode: http.StatusBadRequest},
		{name: "bad_not_uuid", path: "/ws/abc123", wantCode: http.StatusBadRequest},
		{name: "bad_extra_segment", path: owned.WSPath + "/x", wantCode: http.StatusBadRequest},
		{name: "not_found", path: "/ws/7c9e6679-7425-40de-944b-e07fc1f90ae7", wantCode: http.StatusNotFound},
		{name: "owned_anonymous", path: owned.WSPath, wantCode: http.StatusUnauthorized},
		{name: "owned_other_user", path: owned.WSPath, token: env.token(t, "intruder"), wantCode: http.StatusForbidden},
		{name: "invalid_token", path: owned.WSPath, token: "garbage", wantCode: http.StatusUnauthorized},
		{name: "busy", path: busy.WSPath, wantCode: http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hdr := http.Header{}
			if tc.token != "" {
				hdr.Set("Authorization", "Bearer "+tc.token)
			}
			ws, resp, err := env.dial(t, tc.path, hdr)
			if err == nil {
				_ = ws.Close()
				t.Fatalf("expected dial error, got nil")
			}
			if resp == nil {
				t.Fatalf("expected HTTP response with status %d, got nil resp (err=%v)", tc.wantCode, err)
			}
			if resp.StatusCode != tc.wantCode {
				t.Fatalf("status=%d, want %d (err=%v)", resp.StatusCode, tc.wantCode, err)
			}
		})
	}

	t.Run("owner_via_query_token", func(t *testing.T) {
		ws, _, err := env.dial(t, owned.WSPath+"?token="+env.token(t, "owner"), nil)
		require.NoError(t, err)
		defer ws.Close()
		require.Equal(t, TypeState, readEnvelope(t, ws).Type)
	})
}

func TestWS_ProtocolErrors(t *testing.T) {
	env := newTestEnv(t, testConfig())
	created := env.create(t, CreateRequest{Length: 4, Strategy: "minimax"}, "")

	ws, _, err := env.dial(t, created.WSPath, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.Equal(t, TypeState, readEnvelope(t, ws).Type)
	guess := readEnvelope(t, ws)
	require.Equal(t, TypeGuess, guess.Type)

	var g GuessPayload
	require.NoError(t, json.Unmarshal(guess.Payload, &g))
	assert.Equal(t, "Y Y B B", g.Guess)
	assert.Equal(t, 1296, g.Remaining)

	expectError := func(code string) {
		t.Helper()
		env := readEnvelope(t, ws)
		require.Equal(t, TypeError, env.Type)
		var p ErrorPayload
		require.NoError(t, json.Unmarshal(env.Payload, &p))
		assert.Equal(t, code, p.Code)
	}

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("{not json")))
	expectError("bad_json")

	send(t, ws, "rematch", nil)
	expectError("unknown_type")

	send(t, ws, TypeFeedback, FeedbackPayload{Positions: 3, Colors: 1})
	expectError("invalid_feedback")

	send(t, ws, TypeFeedback, FeedbackPayload{Positions: 5, Colors: 0})
	expectError("invalid_feedback")

	// the guess is still pending after rejected input
	send(t, ws, TypeFeedback, FeedbackPayload{Positions: 1, Colors: 1})
	next := readEnvelope(t, ws)
	require.Equal(t, TypeGuess, next.Type)
	require.NoError(t, json.Unmarshal(next.Payload, &g))
	assert.Equal(t, 2, g.Round)
	assert.Less(t, g.Remaining, 1296)

	send(t, ws, TypeAbort, nil)
	last := readEnvelope(t, ws)
	require.Equal(t, TypeFailed, last.Type)
	var p ErrorPayload
	require.NoError(t, json.Unmarshal(last.Payload, &p))
	assert.Equal(t, "aborted", p.Code)

	require.Eventually(t, func() bool { return len(env.records.all()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "aborted", env.records.all()[0].Outcome)
}

func TestWS_FeedbackTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.FeedbackTimeout = 50 * time.Millisecond
	env := newTestEnv(t, cfg)
	created := env.create(t, CreateRequest{Length: 2}, "")

	ws, _, err := env.dial(t, created.WSPath, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.Equal(t, TypeState, readEnvelope(t, ws).Type)
	require.Equal(t, TypeGuess, readEnvelope(t, ws).Type)

	last := readEnvelope(t, ws)
	require.Equal(t, TypeFailed, last.Type)
	var p ErrorPayload
	require.NoError(t, json.Unmarshal(last.Payload, &p))
	assert.Equal(t, "timeout", p.Code)
}

func TestHTTP_SolveAndCreate(t *testing.T) {
	env := newTestEnv(t, testConfig())

	resp := env.post(t, "/api/solve", SolveRequest{Secret: "YBGR", Strategy: "K"}, env.token(t, "u9"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		Length   int    `json:"length"`
		Strategy string `json:"strategy"`
		State    string `json:"state"`
		Solution string `json:"solution"`
		Rounds   []struct {
			Guess string `json:"guess"`
		} `json:"rounds"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 4, report.Length)
	assert.Equal(t, "minimax", report.Strategy)
	assert.Equal(t, "solved", report.State)
	assert.Equal(t, "Y B G R", report.Solution)
	require.NotEmpty(t, report.Rounds)
	assert.Equal(t, "Y Y B B", report.Rounds[0].Guess)

	rows := env.records.all()
	require.Len(t, rows, 1)
	assert.Equal(t, "u9", rows[0].UserID)

	cases := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"solve bad secret", "/api/solve", SolveRequest{Secret: "YXZ"}, http.StatusBadRequest},
		{"solve bad length", "/api/solve", SolveRequest{Secret: "YBGRPOY"}, http.StatusBadRequest},
		{"solve bad strategy", "/api/solve", SolveRequest{Secret: "YB", Strategy: "random"}, http.StatusBadRequest},
		{"create bad length", "/api/sessions", CreateRequest{Length: 9}, http.StatusBadRequest},
		{"create bad strategy", "/api/sessions", CreateRequest{Strategy: "x"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.post(t, tc.path, tc.body, "")
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}

	t.Run("get session state", func(t *testing.T) {
		created := env.create(t, CreateRequest{Length: 5, Strategy: "filtered"}, "")
		resp, err := http.Get(env.ts.URL + "/api/sessions/" + created.SessionID)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var st StatePayload
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
		assert.Equal(t, created.SessionID, st.SessionID)
		assert.Equal(t, 5, st.Length)
		assert.Equal(t, mastermind.StrategyFiltered, st.Strategy)
		assert.Equal(t, StatusWaiting, st.Status)
	})
}
