// Package wstransport carries bridge frames over a single WebSocket
// connection to the host. It multiplexes call/reply correlation and inbound
// event delivery on one read loop.
package wstransport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chatbridge/internal/wire"
)

// ErrClosed is returned for calls issued after Close, and fails pending
// calls when the connection drops.
var ErrClosed = fmt.Errorf("transport closed")

// InboundHandler receives each event frame pushed by the host, in arrival
// order. The read loop invokes it serially. Deliberately an alias so that
// implementations of the façade's Transport interface never have to name
// this package.
type InboundHandler = func(event string, payload json.RawMessage)

type pendingReply struct {
	result json.RawMessage
	err    error
}

// Client is a WebSocket bridge transport.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	logger  zerolog.Logger

	pending   map[uint64]chan pendingReply
	pendingMu sync.Mutex
	nextID    uint64

	handlerMu sync.RWMutex
	handler   InboundHandler

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// Dial connects to the host and starts the read loop.
func Dial(ctx context.Context, url string, logger zerolog.Logger) (*Client, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial host: %w", err)
	}
	c := &Client{
		conn:    conn,
		logger:  logger.With().Str("component", "wstransport").Logger(),
		pending: make(map[uint64]chan pendingReply),
		done:    make(chan struct{}),
	}
	c.wg.Add(1)
	go c.readLoop()
	c.logger.Info().Str("url", url).Msg("connected to host")
	return c, nil
}

// SetInboundHandler registers the single inbound event callback. Must be set
// before events can be delivered; frames arriving earlier are dropped with a
// diagnostic.
func (c *Client) SetInboundHandler(h InboundHandler) {
	c.handlerMu.Lock()
	c.handler = h
	c.handlerMu.Unlock()
}

// Invoke sends a call frame and waits for the matching reply, the context, or
// connection loss.
func (c *Client) Invoke(ctx context.Context, method string, args any) (json.RawMessage, error) {
	select {
	case <-c.done:
		return nil, ErrClosed
	default:
	}

	id := atomic.AddUint64(&c.nextID, 1)
	replyCh := make(chan pendingReply, 1)

	c.pendingMu.Lock()
	c.pending[id] = replyCh
	c.pendingMu.Unlock()

	frame, err := wire.NewCall(id, method, args)
	if err != nil {
		c.dropPending(id)
		return nil, err
	}
	if err := c.write(frame); err != nil {
		c.dropPending(id)
		return nil, err
	}

	select {
	case reply := <-replyCh:
		return reply.result, reply.err
	case <-ctx.Done():
		c.dropPending(id)
		return nil, ctx.Err()
	case <-c.done:
		return nil, ErrClosed
	}
}

// Notify sends a fire-and-forget call frame.
func (c *Client) Notify(method string, args any) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	frame, err := wire.NewNotify(method, args)
	if err != nil {
		return err
	}
	return c.write(frame)
}

// Close tears down the connection and fails every pending call.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
		c.failPending(ErrClosed)
		c.logger.Info().Msg("disconnected from host")
	})
	c.wg.Wait()
	return nil
}

func (c *Client) write(frame *wire.Frame) error {
	data, err := frame.Bytes()
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	err = c.conn.WriteMessage(websocket.TextMessage, data)
	c.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (c *Client) readLoop() {
	defer c.wg.Done()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.logger.Debug().Err(err).Msg("read loop ended")
				c.failPending(fmt.Errorf("connection lost: %w", err))
			}
			return
		}
		frame, err := wire.Parse(data)
		if err != nil {
			c.logger.Warn().Err(err).Msg("malformed frame dropped")
			continue
		}
		switch frame.Kind {
		case wire.KindReply:
			c.settle(frame)
		case wire.KindEvent:
			c.deliver(frame)
		default:
			c.logger.Warn().Str("kind", string(frame.Kind)).Msg("unexpected frame kind from host")
		}
	}
}

func (c *Client) settle(frame *wire.Frame) {
	c.pendingMu.Lock()
	replyCh, ok := c.pending[frame.ID]
	if ok {
		delete(c.pending, frame.ID)
	}
	c.pendingMu.Unlock()
	if !ok {
		c.logger.Debug().Uint64("id", frame.ID).Msg("reply for unknown call dropped")
		return
	}
	reply := pendingReply{result: frame.Result}
	if frame.Error != nil {
		reply.err = frame.Error
	}
	replyCh <- reply
}

func (c *Client) deliver(frame *wire.Frame) {
	c.handlerMu.RLock()
	h := c.handler
	c.handlerMu.RUnlock()
	if h == nil {
		c.logger.Warn().Str("event", frame.Event).Msg("event before handler registered, dropped")
		return
	}
	h(frame.Event, frame.Payload)
}

func (c *Client) dropPending(id uint64) {
	c.pendingMu.Lock()
	delete(c.pending, id)
	c.pendingMu.Unlock()
}

func (c *Client) failPending(err error) {
	c.pendingMu.Lock()
	for id, replyCh := range c.pending {
		replyCh <- pendingReply{err: err}
		delete(c.pending, id)
	}
	c.pendingMu.Unlock()
}
