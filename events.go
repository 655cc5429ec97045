package chatbridge

import (
	"chatbridge/eventhub"
	"chatbridge/internal/wire"
)

// Event classes the host can push. The set is closed; the hub drops anything
// else with a diagnostic.
const (
	EventRestoreIDGenerated     = eventhub.Class(wire.EventRestoreIDGenerated)
	EventUserEvents             = eventhub.Class(wire.EventUserEvents)
	EventUnreadCountChanged     = eventhub.Class(wire.EventUnreadCountChanged)
	EventOpenLinkRequested      = eventhub.Class(wire.EventOpenLinkRequested)
	EventLocaleChangedByWebView = eventhub.Class(wire.EventLocaleChangedByWebView)
)

// EventClasses lists every class a client's hub serves.
func EventClasses() []eventhub.Class {
	return []eventhub.Class{
		EventRestoreIDGenerated,
		EventUserEvents,
		EventUnreadCountChanged,
		EventOpenLinkRequested,
		EventLocaleChangedByWebView,
	}
}
