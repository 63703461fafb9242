package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecard-vn/ecard/internal/domains/dtos"
	"github.com/ecard-vn/ecard/internal/engine"
	"github.com/ecard-vn/ecard/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *server {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return &server{
		config: Config{WaitingTTL: 5 * time.Minute},
		engine: engine.NewMatchEngine(store, 5*time.Minute),
	}
}

func doRequest(t *testing.T, s *server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleJoinMatchFlow(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/join-match",
		map[string]string{"user_id": "alice", "username": "Alice"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[dtos.JoinMatchResponse](t, rec)
	assert.Equal(t, dtos.JoinStatusWaiting, resp.Status)

	rec = doRequest(t, s, http.MethodPost, "/api/join-match",
		map[string]string{"user_id": "bob", "username": "Bob"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody[dtos.JoinMatchResponse](t, rec)
	assert.Equal(t, dtos.JoinStatusJoined, resp.Status)
	assert.NotEmpty(t, resp.MatchId)
	assert.Equal(t, "Alice", resp.Player1)
	assert.Equal(t, "Bob", resp.Player2)
}

func TestHandleJoinMatchValidation(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/api/join-match",
		map[string]string{"username": "Alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "Missing user_id or username", body["error"])
}

func TestHandlePlayCard(t *testing.T) {
	s := newTestServer(t)
	matchId := pairTestMatch(t, s)

	rec := doRequest(t, s, http.MethodPost, "/api/play-card",
		map[string]string{"match_id": matchId, "user_id": "alice", "card": "Citizen"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[dtos.PlayCardResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Len(t, resp.GameState.Player1.Played, 1)
}

func TestHandlePlayCardErrors(t *testing.T) {
	s := newTestServer(t)
	matchId := pairTestMatch(t, s)

	rec := doRequest(t, s, http.MethodPost, "/api/play-card",
		map[string]string{"match_id": "missing", "user_id": "alice", "card": "Citizen"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/play-card",
		map[string]string{"match_id": matchId, "user_id": "alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Only one Slave in hand.
	doRequest(t, s, http.MethodPost, "/api/play-card",
		map[string]string{"match_id": matchId, "user_id": "alice", "card": "Slave"})
	rec = doRequest(t, s, http.MethodPost, "/api/play-card",
		map[string]string{"match_id": matchId, "user_id": "alice", "card": "Slave"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "Card not in hand", body["error"])
}

func TestHandleCheckMatch(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/check-match/alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[dtos.CheckMatchResponse](t, rec)
	assert.False(t, resp.Found)

	matchId := pairTestMatch(t, s)
	rec = doRequest(t, s, http.MethodGet, "/api/check-match/alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody[dtos.CheckMatchResponse](t, rec)
	require.True(t, resp.Found)
	assert.Equal(t, matchId, resp.Match.Id)
}

func TestHandleGameStateNotFound(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/game-state/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleLeaveMatch(t *testing.T) {
	s := newTestServer(t)
	matchId := pairTestMatch(t, s)

	rec := doRequest(t, s, http.MethodPost, "/api/leave-match",
		map[string]string{"match_id": matchId, "user_id": "alice"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/game-state/"+matchId, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCleanup(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/api/cleanup", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[dtos.CleanupResponse](t, rec)
	assert.Equal(t, 0, resp.Cleaned)
}

func pairTestMatch(t *testing.T, s *server) string {
	t.Helper()
	doRequest(t, s, http.MethodPost, "/api/join-match",
		map[string]string{"user_id": "alice", "username": "Alice"})
	rec := doRequest(t, s, http.MethodPost, "/api/join-match",
		map[string]string{"user_id": "bob", "username": "Bob"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[dtos.JoinMatchResponse](t, rec)
	require.Equal(t, dtos.JoinStatusJoined, resp.Status)
	return resp.MatchId
}
