package wire

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the three frame shapes that travel over the bridge
// channel.
type Kind string

const (
	KindCall  Kind = "call"
	KindReply Kind = "reply"
	KindEvent Kind = "event"
)

// Frame is the single message envelope exchanged with the host. A call with
// ID 0 expects no reply (fire-and-forget). Event frames carry no ID; they are
// pushed by the host and demultiplexed by event name.
type Frame struct {
	Kind    Kind            `json:"kind"`
	ID      uint64          `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Args    json.RawMessage `json:"args,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	Event   string          `json:"event,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Error is the host-reported failure attached to a reply frame.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("host error %d: %s", e.Code, e.Message)
}

// NewCall builds a call frame. args may be nil for argument-less methods.
func NewCall(id uint64, method string, args any) (*Frame, error) {
	f := &Frame{Kind: KindCall, ID: id, Method: method}
	if args != nil {
		raw, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("marshal args for %s: %w", method, err)
		}
		f.Args = raw
	}
	return f, nil
}

// NewNotify builds a fire-and-forget call frame (no ID, no reply expected).
func NewNotify(method string, args any) (*Frame, error) {
	return NewCall(0, method, args)
}

// NewReply builds a successful reply frame for the given call ID.
func NewReply(id uint64, result any) (*Frame, error) {
	f := &Frame{Kind: KindReply, ID: id}
	if result != nil {
		raw, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("marshal result: %w", err)
		}
		f.Result = raw
	}
	return f, nil
}

// NewEvent builds an inbound event frame. Used by tests and loopback hosts;
// real hosts produce these on their side of the channel.
func NewEvent(event string, payload any) (*Frame, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload for %s: %w", event, err)
	}
	return &Frame{Kind: KindEvent, Event: event, Payload: raw}, nil
}

// IsNotification reports whether this call expects no reply.
func (f *Frame) IsNotification() bool {
	return f.Kind == KindCall && f.ID == 0
}

// Validate checks the structural invariants of a decoded frame.
func (f *Frame) Validate() error {
	switch f.Kind {
	case KindCall:
		if f.Method == "" {
			return fmt.Errorf("call frame without method")
		}
	case KindReply:
		if f.ID == 0 {
			return fmt.Errorf("reply frame without id")
		}
	case KindEvent:
		if f.Event == "" {
			return fmt.Errorf("event frame without event name")
		}
	default:
		return fmt.Errorf("unknown frame kind %q", f.Kind)
	}
	return nil
}

// Bytes returns the frame encoded as JSON.
func (f *Frame) Bytes() ([]byte, error) {
	return json.Marshal(f)
}

// Parse decodes and validates a frame.
func Parse(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse frame: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}
