package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(t *testing.T, handlers []gin.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	seen := map[string]string{}
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		seen["request_id"] = c.GetString("request_id")
		seen["real_ip"] = c.GetString("real_ip")
		c.Status(http.StatusNoContent)
	})
	r.Handle(req.Method, "/ping", chain...)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, seen
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w, seen := serve(t, []gin.HandlerFunc{RequestIDMiddleware()}, req)

	assert.NotEmpty(t, seen["request_id"])
	assert.Equal(t, seen["request_id"], w.Header().Get(RequestIDHeader))
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	const id = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, id)
	_, seen := serve(t, []gin.HandlerFunc{RequestIDMiddleware()}, req)
	assert.Equal(t, id, seen["request_id"])

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	_, seen = serve(t, []gin.HandlerFunc{RequestIDMiddleware()}, req)
	assert.NotEqual(t, "<script>", seen["request_id"])
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		peer    string
		xff     string
		want    string
	}{
		{name: "no trusted proxies ignores header", peer: "203.0.113.7:1234", xff: "10.0.0.1", want: "203.0.113.7"},
		{name: "untrusted peer ignores header", trusted: []string{"10.0.0.0/8"}, peer: "203.0.113.7:1234", xff: "10.0.0.1", want: "203.0.113.7"},
		{name: "trusted peer", trusted: []string{"10.0.0.0/8"}, peer: "10.0.0.5:1234", xff: "198.51.100.9", want: "198.51.100.9"},
		{name: "spoofed left-most entry", trusted: []string{"10.0.0.0/8"}, peer: "10.0.0.5:1234", xff: "10.9.9.9, 198.51.100.9", want: "198.51.100.9"},
		{name: "garbage header", trusted: []string{"10.0.0.0/8"}, peer: "10.0.0.5:1234", xff: "nope", want: "10.0.0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			r := gin.New()
			require.NoError(t, r.SetTrustedProxies(tt.trusted))
			r.Use(RealIP())
			r.GET("/users", func(c *gin.Context) { got = c.GetString("real_ip") })

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req.RemoteAddr = tt.peer
			req.Header.Set("X-Forwarded-For", tt.xff)
			r.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRateLimitWithoutRedisPassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/ping", nil)
	w, _ := serve(t, []gin.HandlerFunc{RateLimit(nil, 1, time.Minute, KeyByIPAndPath(), nil)}, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

type memCounter struct {
	hits map[string]int
	err  error
}

func (m *memCounter) Hit(_ context.Context, key string, _ time.Duration) (int, time.Duration, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	m.hits[key]++
	return m.hits[key], 1500 * time.Millisecond, nil
}

func limitedEngine(t *testing.T, counter windowCounter, trusted []string) *gin.Engine {
	t.Helper()
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(trusted))
	r.Use(RealIP())
	r.Use(limit(counter, Limit{
		Max:    1,
		Window: time.Minute,
		Key:    KeyByIPAndPath(),
		Allow:  AnyOf(AllowReads(), AllowPrivateIP()),
	}))
	r.POST("/users", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func post(r http.Handler, peer, xff string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	req.RemoteAddr = peer
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitIgnoresForwardedForFromPublicPeer(t *testing.T) {
	counter := &memCounter{hits: map[string]int{}}
	r := limitedEngine(t, counter, nil)

	first := post(r, "203.0.113.7:1234", "10.0.0.1")
	second := post(r, "203.0.113.7:1234", "10.0.0.2")

	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Reset"))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "2", second.Header().Get("Retry-After"))
	assert.Equal(t, map[string]int{"rl:path:POST:/users:ip:203.0.113.7": 2}, counter.hits)
}

func TestRateLimitTrustedProxy(t *testing.T) {
	counter := &memCounter{hits: map[string]int{}}
	r := limitedEngine(t, counter, []string{"10.0.0.0/8"})

	assert.Equal(t, http.StatusNoContent, post(r, "10.0.0.5:1234", "198.51.100.9").Code)
	assert.Equal(t, http.StatusNoContent, post(r, "10.0.0.5:1234", "198.51.100.10").Code)
	assert.Equal(t, http.StatusTooManyRequests, post(r, "10.0.0.5:1234", "198.51.100.9").Code)

	// internal callers behind the proxy are not counted
	assert.Equal(t, http.StatusNoContent, post(r, "10.0.0.5:1234", "10.1.2.3").Code)
	assert.NotContains(t, counter.hits, "rl:path:POST:/users:ip:10.1.2.3")
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := limitedEngine(t, &memCounter{err: errors.New("redis down")}, nil)

	for i := 0; i < 3; i++ {
		w := post(r, "203.0.113.7:1234", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestAllowFuncs(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/ping", nil)
	c.Set("real_ip", "10.1.2.3")
	assert.True(t, AllowPrivateIP()(c))
	assert.False(t, AllowReads()(c))
	assert.True(t, AnyOf(AllowReads(), AllowPrivateIP())(c))

	c.Set("real_ip", "203.0.113.7")
	assert.False(t, AllowPrivateIP()(c))
	assert.False(t, AnyOf()(c))
}

func TestKeyByIPAndPathUsesRouteTemplate(t *testing.T) {
	var key string
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.Use(RealIP())
	r.PATCH("/users/:id/block", func(c *gin.Context) { key = KeyByIPAndPath()(c) })
	req := httptest.NewRequest(http.MethodPatch, "/users/abc/block", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "rl:path:PATCH:/users/:id/block:ip:192.0.2.1", key)
}
