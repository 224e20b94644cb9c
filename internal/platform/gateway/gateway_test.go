package gateway

import (
	"context"
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

	"cypherbot/internal/platform"
)

var upgrader = websocket.Upgrader{}

// startBridge runs the server side of the socket for one test and returns the
// ws:// URL to dial.
func startBridge(t *testing.T, serve func(conn *websocket.Conn)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		serve(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func runClient(t *testing.T, c *Client) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("client did not shut down")
		}
	})
	return cancel
}

func TestClient_DeliversMessagesToHandler(t *testing.T) {
	url := startBridge(t, func(conn *websocket.Conn) {
		ev, _ := json.Marshal(messageEvent{
			ID:        "m1",
			ChatJID:   "123@g.us",
			SenderJID: "4915550001@s.whatsapp.net",
			Text:      ".ping",
			IsGroup:   true,
		})
		require.NoError(t, conn.WriteJSON(Frame{Type: frameMessage, Data: ev}))

		// Hold the socket open until the client disconnects.
		conn.ReadMessage()
	})

	c := New(url, "", 100, 10, zerolog.Nop())
	got := make(chan *platform.Message, 1)
	c.OnMessage(func(_ context.Context, msg *platform.Message) { got <- msg })
	runClient(t, c)

	select {
	case msg := <-got:
		assert.Equal(t, "m1", msg.ID)
		assert.Equal(t, ".ping", msg.Text)
		assert.True(t, msg.IsGroup)
	case <-time.After(2 * time.Second):
		t.Fatal("handler never received the message")
	}
}

func TestClient_SendTextFrame(t *testing.T) {
	frames := make(chan Frame, 1)
	url := startBridge(t, func(conn *websocket.Conn) {
		var f Frame
		require.NoError(t, conn.ReadJSON(&f))
		frames <- f
		conn.ReadMessage()
	})

	c := New(url, "", 100, 10, zerolog.Nop())
	runClient(t, c)
	waitConnected(t, c)

	require.NoError(t, c.SendText(context.Background(), "123@g.us", "hello"))

	select {
	case f := <-frames:
		assert.Equal(t, frameSendText, f.Type)
		var p sendTextPayload
		require.NoError(t, json.Unmarshal(f.Data, &p))
		assert.Equal(t, "123@g.us", p.ChatJID)
		assert.Equal(t, "hello", p.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("bridge never received the frame")
	}
}

func TestClient_RequestResponseCorrelation(t *testing.T) {
	url := startBridge(t, func(conn *websocket.Conn) {
		var f Frame
		require.NoError(t, conn.ReadJSON(&f))
		require.Equal(t, frameProfileImage, f.Type)
		require.NotEmpty(t, f.ID)

		data, _ := json.Marshal(profileImageResponse{URL: "https://pps.whatsapp.net/full.jpg"})
		require.NoError(t, conn.WriteJSON(Frame{Type: frameResponse, ID: f.ID, Data: data}))
		conn.ReadMessage()
	})

	c := New(url, "", 100, 10, zerolog.Nop())
	runClient(t, c)
	waitConnected(t, c)

	url2, err := c.ProfileImageURL(context.Background(), "4915559999@s.whatsapp.net", platform.QualityFull)
	require.NoError(t, err)
	assert.Equal(t, "https://pps.whatsapp.net/full.jpg", url2)
}

func TestClient_RequestErrorFrame(t *testing.T) {
	url := startBridge(t, func(conn *websocket.Conn) {
		var f Frame
		require.NoError(t, conn.ReadJSON(&f))
		require.NoError(t, conn.WriteJSON(Frame{Type: frameResponse, ID: f.ID, Error: "401: not authorized"}))
		conn.ReadMessage()
	})

	c := New(url, "", 100, 10, zerolog.Nop())
	runClient(t, c)
	waitConnected(t, c)

	_, err := c.ProfileImageURL(context.Background(), "4915559999@s.whatsapp.net", platform.QualityFull)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestClient_WriteWithoutConnection(t *testing.T) {
	c := New("ws://127.0.0.1:1/ws", "", 100, 10, zerolog.Nop())
	err := c.SendText(context.Background(), "123@g.us", "hello")
	require.Error(t, err)
}

func TestBackoffSchedule(t *testing.T) {
	var b backoff

	assert.Equal(t, reconnectMin, b.next())
	assert.Equal(t, 2*reconnectMin, b.next())
	assert.Equal(t, 4*reconnectMin, b.next())

	for i := 0; i < 10; i++ {
		b.next()
	}
	assert.Equal(t, reconnectMax, b.next(), "delay stays capped")

	// A successful session restarts the schedule from the minimum.
	b.reset()
	assert.Equal(t, reconnectMin, b.next())
}

// waitConnected polls until the client has a live socket.
func waitConnected(t *testing.T, c *Client) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		connected := c.conn != nil
		c.mu.Unlock()
		if connected {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("client never connected")
}
