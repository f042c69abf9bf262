package models

// Subscription purposes recognised by the realtime feed. The client's
// subscription registry is keyed by the same values.
const (
	PurposeSelf          = "self"
	PurposeTodayHistory  = "today-history"
	PurposeHistoryWindow = "history-window"
	PurposePartner       = "partner"
)

// Realtime frame operations sent from client to server.
const (
	OpSubscribe   = "subscribe"
	OpUnsubscribe = "unsubscribe"
)

// SubscribeFrame is a client→server frame on the realtime websocket. One
// frame either opens or closes a subscription scope.
type SubscribeFrame struct {
	// Op is OpSubscribe or OpUnsubscribe.
	Op string `json:"op"`

	// Purpose names the scope being (un)subscribed, one of the Purpose*
	// constants. Purposes are unique per connection: re-subscribing a
	// purpose replaces its previous scope.
	Purpose string `json:"purpose"`

	// UserID is the record the scope is attached to.
	UserID string `json:"userId"`

	// Date narrows a history subscription to a single calendar day.
	// Empty for record and window scopes.
	Date string `json:"date,omitempty"`

	// Limit is the window size for a history-window scope. Zero means the
	// server default of 7.
	Limit int `json:"limit,omitempty"`
}

// Change event kinds pushed by the server.
const (
	ChangeRecord  = "record"
	ChangeHistory = "history"
)

// ChangeEvent is a server→client frame describing one committed mutation.
// The writer's own mutations are echoed back like anyone else's: the
// subscription round-trip, not the local write, is the client's source of
// truth in online mode.
type ChangeEvent struct {
	// Kind is ChangeRecord or ChangeHistory.
	Kind string `json:"kind"`

	// Purpose echoes the subscription purpose the event was matched against,
	// so the client can route it without re-deriving scope.
	Purpose string `json:"purpose"`

	// UserID is the owner of the changed document.
	UserID string `json:"userId"`

	// Record carries the full record snapshot for ChangeRecord events.
	Record *WaterRecord `json:"record,omitempty"`

	// Entries carries the affected history rows for ChangeHistory events:
	// a single row for a day-scoped subscription, the re-sorted ascending
	// window for a window subscription.
	Entries []HistoryEntry `json:"entries,omitempty"`
}
