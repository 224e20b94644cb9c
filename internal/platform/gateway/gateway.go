// Package gateway implements platform.Transport over a websocket bridge to the
// messaging platform. The bridge speaks JSON frames; request/response pairs are
// correlated by frame ID. Outbound traffic runs through a token-bucket limiter
// so the bot never bursts faster than the platform tolerates.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"cypherbot/internal/platform"
)

const (
	dialTimeout  = 10 * time.Second
	writeWait    = 10 * time.Second
	requestWait  = 20 * time.Second
	reconnectMin = time.Second
	reconnectMax = 30 * time.Second
)

// Handler receives every decoded chat message. It is called on its own
// goroutine per message; slow handlers must not stall the read pump.
type Handler func(ctx context.Context, msg *platform.Message)

// Client connects to the bridge and implements platform.Transport.
type Client struct {
	url     string
	token   string
	log     zerolog.Logger
	handler Handler

	limiter *rate.Limiter

	mu   sync.Mutex // guards conn writes
	conn *websocket.Conn

	reqID   atomic.Uint64
	pending sync.Map // request id -> chan Frame
}

func New(url, token string, sendRate float64, sendBurst int, log zerolog.Logger) *Client {
	if sendRate <= 0 {
		sendRate = 1
	}
	if sendBurst < 1 {
		sendBurst = 1
	}
	return &Client{
		url:     url,
		token:   token,
		log:     log.With().Str("component", "gateway").Logger(),
		limiter: rate.NewLimiter(rate.Limit(sendRate), sendBurst),
	}
}

// OnMessage sets the chat-message handler. Must be called before Run.
func (c *Client) OnMessage(h Handler) { c.handler = h }

// backoff is the reconnect delay schedule: doubled per failed cycle up to the
// cap, back to the minimum once a session was established.
type backoff struct {
	d time.Duration
}

func (b *backoff) next() time.Duration {
	if b.d == 0 {
		b.d = reconnectMin
	}
	d := b.d
	b.d *= 2
	if b.d > reconnectMax {
		b.d = reconnectMax
	}
	return d
}

func (b *backoff) reset() { b.d = reconnectMin }

// Run dials the bridge and pumps events until ctx is cancelled, reconnecting
// with capped backoff on socket failure.
func (c *Client) Run(ctx context.Context) error {
	var wait backoff
	for {
		established, err := c.connectAndRead(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if established {
			wait.reset()
		}
		delay := wait.next()
		c.log.Warn().Err(err).Dur("retry_in", delay).Msg("gateway connection lost")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// connectAndRead reports whether a session was established so Run can restart
// the backoff schedule after a healthy stretch.
func (c *Client) connectAndRead(ctx context.Context) (bool, error) {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, c.url, header)
	if err != nil {
		return false, fmt.Errorf("dial %s: %w", c.url, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.log.Info().Str("url", c.url).Msg("gateway connected")

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			conn.Close()
			return true, fmt.Errorf("read frame: %w", err)
		}
		c.dispatch(ctx, &frame)
	}
}

func (c *Client) dispatch(ctx context.Context, frame *Frame) {
	switch frame.Type {
	case frameMessage:
		var ev messageEvent
		if err := json.Unmarshal(frame.Data, &ev); err != nil {
			c.log.Warn().Err(err).Msg("bad message event")
			return
		}
		if c.handler == nil {
			return
		}
		msg := &platform.Message{
			ID:                ev.ID,
			ChatJID:           ev.ChatJID,
			SenderJID:         ev.SenderJID,
			QuotedParticipant: ev.QuotedParticipant,
			Text:              ev.Text,
			IsGroup:           ev.IsGroup,
		}
		go c.handler(ctx, msg)

	case frameResponse:
		if ch, ok := c.pending.LoadAndDelete(frame.ID); ok {
			ch.(chan Frame) <- *frame
		}

	default:
		c.log.Debug().Str("type", frame.Type).Msg("ignoring unknown frame")
	}
}

// write marshals and sends one frame, honoring the outbound limiter.
func (c *Client) write(ctx context.Context, frame *Frame) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return errors.New("gateway not connected")
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(frame)
}

func (c *Client) send(ctx context.Context, typ string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.write(ctx, &Frame{Type: typ, Data: data})
}

// request sends a frame with an ID and blocks for its response frame.
func (c *Client) request(ctx context.Context, typ string, payload any, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	id := strconv.FormatUint(c.reqID.Add(1), 10)
	ch := make(chan Frame, 1)
	c.pending.Store(id, ch)
	defer c.pending.Delete(id)

	if err := c.write(ctx, &Frame{Type: typ, ID: id, Data: data}); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(requestWait):
		return fmt.Errorf("%s: gateway response timeout", typ)
	case resp := <-ch:
		if resp.Error != "" {
			return fmt.Errorf("%s: %s", typ, resp.Error)
		}
		if out != nil {
			return json.Unmarshal(resp.Data, out)
		}
		return nil
	}
}
