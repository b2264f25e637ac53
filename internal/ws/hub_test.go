package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeanoNET/PicoPixels/internal/render"
)

func newTestHub(t *testing.T) (*Hub, chan render.Request, *httptest.Server) {
	t.Helper()
	requests := make(chan render.Request, 8)
	hub := NewHub(requests, zerolog.Nop())
	mux := http.NewServeMux()
	hub.Routes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return hub, requests, srv
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestControlRoundTrip(t *testing.T) {
	_, requests, srv := newTestHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/control"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("brightness 9")))

	select {
	case req := <-requests:
		assert.Equal(t, "brightness 9", req.Line)
		req.Reply("brightness 9")
	case <-time.After(time.Second):
		t.Fatal("request not forwarded")
	}

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "brightness 9", string(msg))
}

func TestFrameBroadcast(t *testing.T) {
	hub, _, srv := newTestHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/frames"), nil)
	require.NoError(t, err)
	defer conn.Close()

	// wait for the viewer registration before broadcasting
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.viewers) == 1
	}, time.Second, 10*time.Millisecond)

	pix := make([]uint8, 32*8)
	pix[0] = 15
	hub.BroadcastFrame(32, 8, pix)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got framePayload
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, "frame", got.Type)
	assert.Equal(t, uint64(1), got.ID)
	assert.Equal(t, 32, got.Width)
	assert.Equal(t, 8, got.Height)
	require.Len(t, got.Pixels, 32*8)
	assert.Equal(t, uint8(15), got.Pixels[0])
}

func TestBroadcastDropsStalledViewer(t *testing.T) {
	hub, _, srv := newTestHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/frames"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.viewers) == 1
	}, time.Second, 10*time.Millisecond)

	// the viewer never reads; once the socket buffers fill, the write
	// deadline must fire and the viewer must be pruned rather than
	// holding up the broadcaster (and with it the engine goroutine)
	pix := make([]uint8, 512*1024)
	dropped := false
	for i := 0; i < 100 && !dropped; i++ {
		hub.BroadcastFrame(32, 8, pix)
		hub.mu.Lock()
		dropped = len(hub.viewers) == 0
		hub.mu.Unlock()
	}
	assert.True(t, dropped, "stalled viewer was not dropped")
}

func TestReplyToStalledControlClientReturns(t *testing.T) {
	_, requests, srv := newTestHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/control"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("help")))
	var req render.Request
	select {
	case req = <-requests:
	case <-time.After(time.Second):
		t.Fatal("request not forwarded")
	}

	// the client never reads its replies; every Reply call must still
	// return within the write deadline so the engine goroutine is never
	// wedged on a dead control session
	big := strings.Repeat("x", 64*1024)
	start := time.Now()
	for i := 0; i < 50; i++ {
		req.Reply(big)
	}
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestHealthEndpoint(t *testing.T) {
	_, _, srv := newTestHub(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}
