package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pebblelab/pebble-journal/internal/journal"
	"github.com/pebblelab/pebble-journal/internal/model"
)

type stubSaver struct {
	saved []string
	err   error
	last  *model.Entry
}

func (s *stubSaver) SaveResources(ctx context.Context, e *model.Entry, dir string) ([]string, error) {
	s.last = e
	return s.saved, s.err
}

func newTestRouter(capacity int, saver ResourceSaver) http.Handler {
	j := journal.New(capacity, false, zerolog.Nop())
	return NewRouter(NewJournalHandler(j, saver, "resources"))
}

func entryBody(t *testing.T, id, entryType, response string) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"entry": map[string]any{
			"_id":        id,
			"userId":     "user-1",
			"createdOn":  "2024-03-01T10:15:00Z",
			"modifiedOn": "2024-03-01T10:15:00Z",
			"archived":   false,
			"type":       entryType,
			"title":      "t",
			"data":       map[string]any{},
			"utterance":  map[string]any{"prompt": "p", "intention": "NOTE"},
		},
		"response": response,
	})
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func doRequest(h http.Handler, method, path string, body *bytes.Buffer) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCreateEntry(t *testing.T) {
	h := newTestRouter(5, &stubSaver{})

	rr := doRequest(h, "POST", "/api/entries", entryBody(t, "e1", "note", ""))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var e model.Entry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e))
	assert.Equal(t, "e1", e.ID)
	assert.Equal(t, model.TypeNote, e.Type)
}

func TestCreateEntry_UnknownTypeRejected(t *testing.T) {
	h := newTestRouter(5, &stubSaver{})

	rr := doRequest(h, "POST", "/api/entries", entryBody(t, "e1", "unknown-xyz", ""))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = doRequest(h, "GET", "/api/entries", nil)
	var list struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Equal(t, 0, list.Count)
}

func TestCreateEntry_InvalidJSON(t *testing.T) {
	h := newTestRouter(5, &stubSaver{})
	rr := doRequest(h, "POST", "/api/entries", bytes.NewBufferString("{nope"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEntryLookups(t *testing.T) {
	h := newTestRouter(5, &stubSaver{})
	require.Equal(t, http.StatusNotFound, doRequest(h, "GET", "/api/entries/last", nil).Code)

	require.Equal(t, http.StatusCreated, doRequest(h, "POST", "/api/entries", entryBody(t, "e1", "note", "")).Code)
	require.Equal(t, http.StatusCreated, doRequest(h, "POST", "/api/entries", entryBody(t, "e2", "note", "")).Code)

	rr := doRequest(h, "GET", "/api/entries/last", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var e model.Entry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e))
	assert.Equal(t, "e2", e.ID)

	assert.Equal(t, http.StatusOK, doRequest(h, "GET", "/api/entries/e1", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(h, "GET", "/api/entries/missing", nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(h, "GET", "/api/entries/index/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(h, "GET", "/api/entries/index/7", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, "GET", "/api/entries/index/x", nil).Code)
}

func TestCreateTextEntry_RecordsInteraction(t *testing.T) {
	h := newTestRouter(5, &stubSaver{})

	body, err := json.Marshal(map[string]string{"text": "hello", "response": "hi there"})
	require.NoError(t, err)
	rr := doRequest(h, "POST", "/api/entries/text", bytes.NewBuffer(body))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doRequest(h, "GET", "/api/interactions/last", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var it model.Interaction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &it))
	assert.Equal(t, "hello", it.Utterance)
	assert.Equal(t, "hi there", it.Response)
}

func TestInteractionsStayDecoupled(t *testing.T) {
	h := newTestRouter(5, &stubSaver{})

	require.Equal(t, http.StatusCreated, doRequest(h, "POST", "/api/entries", entryBody(t, "e1", "note", "")).Code)

	rr := doRequest(h, "GET", "/api/interactions", nil)
	var list struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Equal(t, 0, list.Count)
	assert.Equal(t, http.StatusNotFound, doRequest(h, "GET", "/api/interactions/last", nil).Code)
}

func TestSaveEntryResources(t *testing.T) {
	saver := &stubSaver{saved: []string{"resources/e1_a.jpg"}}
	h := newTestRouter(5, saver)

	require.Equal(t, http.StatusCreated, doRequest(h, "POST", "/api/entries", entryBody(t, "e1", "vision", "")).Code)

	rr := doRequest(h, "POST", "/api/entries/e1/resources", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var out struct {
		Saved []string `json:"saved"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Count)
	require.NotNil(t, saver.last)
	assert.Equal(t, "e1", saver.last.ID)

	assert.Equal(t, http.StatusNotFound, doRequest(h, "POST", "/api/entries/missing/resources", nil).Code)
}

func TestSaveEntryResources_SaverError(t *testing.T) {
	h := newTestRouter(5, &stubSaver{err: errors.New("signed url count mismatch")})

	require.Equal(t, http.StatusCreated, doRequest(h, "POST", "/api/entries", entryBody(t, "e1", "vision", "")).Code)
	assert.Equal(t, http.StatusInternalServerError, doRequest(h, "POST", "/api/entries/e1/resources", nil).Code)
}

func TestHealth(t *testing.T) {
	h := newTestRouter(1, &stubSaver{})
	assert.Equal(t, http.StatusOK, doRequest(h, "GET", "/health", nil).Code)
}
