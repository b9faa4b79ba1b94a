package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-user-accounts/internal/application"
)

type recorded struct {
	method string
	path   string
	query  url.Values
	body   []byte
}

func fakeES(t *testing.T, reply func(w http.ResponseWriter, r *http.Request)) (*UserIndex, func() []recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		seen []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		seen = append(seen, recorded{method: r.Method, path: r.URL.Path, query: r.URL.Query(), body: b})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		reply(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := NewClient([]string{srv.URL}, "", "")
	require.NoError(t, err)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewUserIndex(es, "users", logger), func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), seen...)
	}
}

func TestIndexPutsDocumentByID(t *testing.T) {
	idx, seen := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err := idx.Index(context.Background(), application.UserOutput{
		ID: "u-1", Name: "Maria Silva", Email: "maria@example.com", Status: "ACTIVE",
		CreatedAt: created, UpdatedAt: created,
	})
	require.NoError(t, err)

	reqs := seen()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPut, reqs[0].method)
	assert.Equal(t, "/users/_doc/u-1", reqs[0].path)
	assert.Equal(t, "external_gte", reqs[0].query.Get("version_type"))
	assert.Equal(t, strconv.FormatInt(created.UnixNano(), 10), reqs[0].query.Get("version"))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(reqs[0].body, &doc))
	assert.Equal(t, "maria@example.com", doc["email"])
	assert.NotContains(t, doc, "password")
}

func TestIndexReportsErrorStatus(t *testing.T) {
	idx, _ := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad"}`))
	})

	err := idx.Index(context.Background(), application.UserOutput{ID: "u-1"})
	assert.Error(t, err)
}

func TestIndexIgnoresOlderProjection(t *testing.T) {
	idx, _ := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"type":"version_conflict_engine_exception"},"status":409}`))
	})

	err := idx.Index(context.Background(), application.UserOutput{ID: "u-1", UpdatedAt: time.Now()})
	assert.NoError(t, err)
}

func TestRemoveIgnoresMissingDocument(t *testing.T) {
	idx, seen := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})

	require.NoError(t, idx.Remove(context.Background(), "u-1"))
	assert.Equal(t, http.MethodDelete, seen()[0].method)
}

func TestSearchDecodesHits(t *testing.T) {
	idx, seen := fakeES(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_id":"u-1","_source":{"id":"u-1","name":"Maria Silva","email":"maria@example.com","status":"BLOCKED","created_at":"2024-05-01T12:00:00Z","updated_at":"2024-05-01T12:00:00Z"}},
			{"_id":"u-2","_source":{"name":"Maria Souza","email":"souza@example.com","status":"ACTIVE","created_at":"2024-05-02T08:30:00.5Z","updated_at":"2024-05-03T08:30:00Z"}},
			{"_id":"u-3","_source":{"id":"u-3","name":"Maria Broken","email":"broken@example.com","status":"ACTIVE","created_at":"yesterday","updated_at":"2024-05-03T08:30:00Z"}},
			{"_id":"u-4","_source":{"id":"u-4","name":"Maria Partial","email":"partial@example.com","status":"ACTIVE"}}
		]}}`))
	})

	found, err := idx.Search(context.Background(), "maria", 5)
	require.NoError(t, err)

	require.Len(t, found, 2, "documents with unreadable timestamps are skipped")
	assert.Equal(t, "u-1", found[0].ID)
	assert.Equal(t, "Blocked", found[0].StatusDescription)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), found[0].CreatedAt)
	assert.Equal(t, "u-2", found[1].ID, "id falls back to the document id")
	assert.Equal(t, time.Date(2024, 5, 2, 8, 30, 0, 500000000, time.UTC), found[1].CreatedAt)

	var body map[string]any
	require.NoError(t, json.Unmarshal(seen()[0].body, &body))
	assert.EqualValues(t, 5, body["size"])
	assert.Equal(t, "/users/_search", seen()[0].path)
}
