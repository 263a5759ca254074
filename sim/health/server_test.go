package health

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*State, *Hub, *httptest.Server) {
	t.Helper()
	state := NewState()
	hub := NewHub()
	done := make(chan struct{})
	go hub.Run(done)
	t.Cleanup(func() { close(done) })

	server := NewServer("", state, hub, DefaultAliveWindow)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return state, hub, ts
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer_Readyz_503UntilReady(t *testing.T) {
	state, _, ts := newTestServer(t)

	resp := get(t, ts.URL+"/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	state.SetReady()
	resp = get(t, ts.URL+"/readyz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Healthz_503UntilHeartbeat(t *testing.T) {
	state, _, ts := newTestServer(t)

	resp := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	state.RecordHeartbeat()
	resp = get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Healthz_503WhenHeartbeatStale(t *testing.T) {
	state := NewState()
	state.RecordHeartbeat()

	hub := NewHub()
	done := make(chan struct{})
	go hub.Run(done)
	defer close(done)

	server := NewServer("", state, hub, 50*time.Millisecond)
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	time.Sleep(100 * time.Millisecond)
	resp = get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestServer_Metrics_Served(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp := get(t, ts.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Ws_ReceivesBroadcast(t *testing.T) {
	_, hub, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	// ServeWs hands the connection to the hub through an unbuffered
	// channel; wait for the loop to pick it up before broadcasting.
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 5*time.Millisecond)

	hub.BroadcastState(map[string]int{"queued": 3})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"queued":3}`, string(message))
}
