// Package chatbridge exposes a host-side customer-messaging SDK to Go
// applications. Typed operations are marshalled into generic call frames on
// a single channel to the host; inbound event frames are demultiplexed into
// per-class broadcast streams (see package eventhub).
package chatbridge

import (
	"context"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"chatbridge/eventhub"
	"chatbridge/internal/wire"
	"chatbridge/internal/wstransport"
)

// Transport is the generic channel to the host: call-and-await, fire-and-
// forget, and the single inbound event callback.
type Transport interface {
	Invoke(ctx context.Context, method string, args any) (json.RawMessage, error)
	Notify(method string, args any) error
	SetInboundHandler(h func(event string, payload json.RawMessage))
	Close() error
}

// CallRecorder observes the outcome of outbound calls.
type CallRecorder interface {
	CallFinished(method string, err error)
}

type nopCalls struct{}

func (nopCalls) CallFinished(string, error) {}

const defaultPushDedupSize = 512

type settings struct {
	logger    zerolog.Logger
	stats     eventhub.Stats
	calls     CallRecorder
	buffer    int
	dedupSize int
}

// Option configures a Client.
type Option func(*settings)

// WithLogger sets the client logger. Default is a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithStats attaches event-delivery accounting to the hub.
func WithStats(st eventhub.Stats) Option {
	return func(s *settings) { s.stats = st }
}

// WithCallRecorder attaches outbound-call accounting.
func WithCallRecorder(r CallRecorder) Option {
	return func(s *settings) {
		if r != nil {
			s.calls = r
		}
	}
}

// WithEventBuffer sets the per-subscription channel capacity.
func WithEventBuffer(n int) Option {
	return func(s *settings) { s.buffer = n }
}

// WithPushDedupSize sets how many recently handled push payloads are
// remembered.
func WithPushDedupSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.dedupSize = n
		}
	}
}

// Client is the command façade. All methods are safe for concurrent use.
type Client struct {
	t     Transport
	hub   *eventhub.Hub
	log   zerolog.Logger
	calls CallRecorder
	dedup *lru.Cache[string, struct{}]
}

// New wraps an existing transport. The client registers itself as the
// transport's inbound handler.
func New(t Transport, opts ...Option) (*Client, error) {
	s := settings{
		logger:    zerolog.Nop(),
		calls:     nopCalls{},
		dedupSize: defaultPushDedupSize,
	}
	for _, opt := range opts {
		opt(&s)
	}

	dedup, err := lru.New[string, struct{}](s.dedupSize)
	if err != nil {
		return nil, fmt.Errorf("create push dedup cache: %w", err)
	}

	c := &Client{
		t:     t,
		log:   s.logger.With().Str("component", "chatbridge").Logger(),
		calls: s.calls,
		dedup: dedup,
	}

	hubOpts := []eventhub.Option{}
	if s.stats != nil {
		hubOpts = append(hubOpts, eventhub.WithStats(s.stats))
	}
	if s.buffer > 0 {
		hubOpts = append(hubOpts, eventhub.WithBuffer(s.buffer))
	}
	c.hub = eventhub.New(EventClasses(), deliveryToggler{c}, s.logger, hubOpts...)

	t.SetInboundHandler(func(event string, payload json.RawMessage) {
		c.hub.Dispatch(eventhub.Class(event), payload)
	})
	return c, nil
}

// Dial connects to a host over WebSocket and wraps the connection.
func Dial(ctx context.Context, url string, opts ...Option) (*Client, error) {
	s := settings{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&s)
	}
	t, err := wstransport.Dial(ctx, url, s.logger)
	if err != nil {
		return nil, err
	}
	return New(t, opts...)
}

// Close detaches every event listener and tears down the transport.
func (c *Client) Close() error {
	c.hub.Close()
	return c.t.Close()
}

// deliveryToggler translates hub listener edges into setEventDelivery calls.
type deliveryToggler struct {
	c *Client
}

func (d deliveryToggler) EnableDelivery(class eventhub.Class) error {
	return d.c.t.Notify(wire.MethodSetEventDelivery, map[string]any{"event": string(class), "enable": true})
}

func (d deliveryToggler) DisableDelivery(class eventhub.Class) error {
	return d.c.t.Notify(wire.MethodSetEventDelivery, map[string]any{"event": string(class), "enable": false})
}

// Subscribe attaches a listener to one of the named event streams. The first
// listener for a class turns host-side delivery on; closing the last one
// turns it off.
func (c *Client) Subscribe(class eventhub.Class) (*eventhub.Subscription, error) {
	return c.hub.Subscribe(class)
}

// notify issues a fire-and-forget call. Transport failures are swallowed by
// contract; they are logged and counted, never returned.
func (c *Client) notify(method string, args any) {
	err := c.t.Notify(method, args)
	c.calls.CallFinished(method, err)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Msg("fire-and-forget call failed")
	}
}

// invoke issues a call and awaits the reply.
func (c *Client) invoke(ctx context.Context, method string, args any) (json.RawMessage, error) {
	result, err := c.t.Invoke(ctx, method, args)
	c.calls.CallFinished(method, err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return result, nil
}

// Init initializes the host SDK. Every Config field is sent, defaults
// included, so the host never has to guess at absent fields.
func (c *Client) Init(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("init config: %w", err)
	}
	c.notify(wire.MethodInit, cfg.args())
	return nil
}

// SetUser sets the identity attached to the current session.
func (c *Client) SetUser(u User) {
	c.notify(wire.MethodSetUser, u.args())
}

// GetUser fetches the current identity. Phone fields the host omits come
// back as empty strings.
func (c *Client) GetUser(ctx context.Context) (User, error) {
	raw, err := c.invoke(ctx, wire.MethodGetUser, nil)
	if err != nil {
		return User{}, err
	}
	return decodeUser(raw)
}

// IdentifyUser binds the session to an external ID, optionally restoring a
// previous conversation via restoreID.
func (c *Client) IdentifyUser(externalID, restoreID string) {
	c.notify(wire.MethodIdentifyUser, map[string]any{
		"externalId": externalID,
		"restoreId":  restoreID,
	})
}

// ResetUser clears the current identity and conversation state.
func (c *Client) ResetUser() {
	c.notify(wire.MethodResetUser, nil)
}

// SetUserProperties attaches custom metadata to the current user.
func (c *Client) SetUserProperties(props map[string]string) {
	c.notify(wire.MethodSetUserProperties, map[string]any{"properties": props})
}

// SetUserWithIDToken sets the user from a signed identity token.
func (c *Client) SetUserWithIDToken(token string) {
	c.notify(wire.MethodSetUserWithIDToken, map[string]any{"token": token})
}

// RestoreUserWithIDToken restores a previous user from a signed identity
// token.
func (c *Client) RestoreUserWithIDToken(token string) {
	c.notify(wire.MethodRestoreUserWithIDToken, map[string]any{"token": token})
}

// IDTokenStatus reports the host's view of the identity token. Unknown reply
// values map to TokenNotSet.
func (c *Client) IDTokenStatus(ctx context.Context) (TokenStatus, error) {
	raw, err := c.invoke(ctx, wire.MethodGetIDTokenStatus, nil)
	if err != nil {
		return TokenNotSet, err
	}
	var status string
	if err := json.Unmarshal(raw, &status); err != nil {
		return TokenNotSet, fmt.Errorf("decode token status reply: %w", err)
	}
	return ParseTokenStatus(status), nil
}

// ShowConversations opens the conversation list. Empty options send the bare
// request variant.
func (c *Client) ShowConversations(opts *ConversationOptions) {
	if opts.isEmpty() {
		c.notify(wire.MethodShowConversations, nil)
		return
	}
	c.notify(wire.MethodShowConversationsWithOptions, opts.args())
}

// ShowFAQ opens the FAQ screens. With no filter criteria the bare request is
// sent; with any criterion set, FilterType becomes mandatory and the options
// are rejected before anything reaches the host if it is missing.
func (c *Client) ShowFAQ(opts *FAQOptions) error {
	if !opts.hasFilterCriteria() {
		c.notify(wire.MethodShowFAQ, nil)
		return nil
	}
	if err := opts.validateOptions(); err != nil {
		return err
	}
	c.notify(wire.MethodShowFAQWithOptions, opts.args())
	return nil
}

// GetUnreadCount returns the unread message count, optionally restricted to
// conversations matching tags.
func (c *Client) GetUnreadCount(ctx context.Context, tags ...string) (int, error) {
	var args any
	if len(tags) > 0 {
		args = map[string]any{"tags": tags}
	}
	raw, err := c.invoke(ctx, wire.MethodGetUnreadCount, args)
	if err != nil {
		return 0, err
	}
	var count int
	if err := json.Unmarshal(raw, &count); err != nil {
		return 0, fmt.Errorf("decode unread count reply: %w", err)
	}
	return count, nil
}

// SendMessage posts a message into the conversation identified by tag.
func (c *Client) SendMessage(tag, message string) {
	c.notify(wire.MethodSendMessage, map[string]any{
		"tag":     tag,
		"message": message,
	})
}

// SDKVersion returns the host SDK version string.
func (c *Client) SDKVersion(ctx context.Context) (string, error) {
	raw, err := c.invoke(ctx, wire.MethodGetSDKVersion, nil)
	if err != nil {
		return "", err
	}
	var version string
	if err := json.Unmarshal(raw, &version); err != nil {
		return "", fmt.Errorf("decode sdk version reply: %w", err)
	}
	return version, nil
}

// SetNotificationConfig updates how the host renders push notifications.
func (c *Client) SetNotificationConfig(cfg NotificationConfig) {
	c.notify(wire.MethodSetNotificationConfig, cfg.args())
}

// SetPushRegistrationToken hands the device push token to the host.
func (c *Client) SetPushRegistrationToken(token string) {
	c.notify(wire.MethodSetPushRegistrationToken, map[string]any{"token": token})
}

// IsOwnPushNotification reports whether a raw push payload originates from
// the messaging SDK.
func (c *Client) IsOwnPushNotification(ctx context.Context, payload map[string]any) (bool, error) {
	raw, err := c.invoke(ctx, wire.MethodIsOwnPushNotification, map[string]any{"payload": payload})
	if err != nil {
		return false, err
	}
	var ours bool
	if err := json.Unmarshal(raw, &ours); err != nil {
		return false, fmt.Errorf("decode push ownership reply: %w", err)
	}
	return ours, nil
}

// HandlePushNotification forwards a push payload for the host to display.
// Payloads already seen recently are dropped, so platform double-delivery
// does not surface duplicate notifications.
func (c *Client) HandlePushNotification(payload map[string]any) {
	key := pushDedupKey(payload)
	if key != "" {
		if _, seen := c.dedup.Get(key); seen {
			c.log.Debug().Str("key", key).Msg("duplicate push payload dropped")
			return
		}
		c.dedup.Add(key, struct{}{})
	}
	c.notify(wire.MethodHandlePushNotification, map[string]any{"payload": payload})
}

// NotifyAppLocaleChange tells the host the app locale changed so open
// webviews re-render.
func (c *Client) NotifyAppLocaleChange() {
	c.notify(wire.MethodNotifyAppLocaleChange, nil)
}

// pushDedupKey derives a stable identity for a push payload: an explicit
// notification ID when present, otherwise a hash of the whole payload.
func pushDedupKey(payload map[string]any) string {
	if id, ok := payload["notificationId"].(string); ok && id != "" {
		return "id:" + id
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("hash:%x", hashBytes(raw))
}

// hashBytes is FNV-1a over the payload bytes.
func hashBytes(data []byte) uint64 {
	var hash uint64 = 14695981039346656037
	for _, b := range data {
		hash ^= uint64(b)
		hash *= 1099511628211
	}
	return hash
}
