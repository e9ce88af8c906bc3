package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/browserctl/internal/server"
)

func TestServer_EventsWS_BroadcastsOnNavigate(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t, nil)

	ts := httptest.NewServer(s)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	resp, err := http.Post(ts.URL+"/navigate", "application/json", strings.NewReader(`{"url":"https://example.com"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev server.NavigationEvent
	require.NoError(t, conn.ReadJSON(&ev))

	require.Equal(t, "https://example.com", ev.URL)
	require.Equal(t, "12345", ev.Window)
	require.NotEmpty(t, ev.ID)
}

func TestServer_EventsWS_NoEventOnFailedNavigate(t *testing.T) {
	t.Parallel()
	s, deps := newTestServer(t, nil)

	ts := httptest.NewServer(s)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Validation failure: no event may reach the subscriber.
	resp, err := http.Post(ts.URL+"/navigate", "application/json", strings.NewReader(`{"url":""}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Then a success, which must be the first and only event received.
	resp, err = http.Post(ts.URL+"/navigate", "application/json", strings.NewReader(`{"url":"https://after.example"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev server.NavigationEvent
	require.NoError(t, conn.ReadJSON(&ev))
	require.Equal(t, "https://after.example", ev.URL)

	_, writes := deps.handoff.Slot()
	require.Equal(t, 1, writes)
}
