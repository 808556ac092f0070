package engine

// EventKind classifies an event for the UI, matching the floating toast
// colors of the frontend.
type EventKind string

const (
	EventGood    EventKind = "good"
	EventBad     EventKind = "bad"
	EventNeutral EventKind = "neutral"
)

// Event is a notable outcome of a single transition, surfaced to the player
// as transient feedback.
type Event struct {
	Text string    `json:"text"`
	Kind EventKind `json:"kind"`
}

// UI texts for engine events. The frontend renders these verbatim.
const (
	TextNotFood       = "食べ物じゃない！"
	TextPoisoned      = "毒だ...！"
	TextDetoxed       = "解毒した！"
	TextNeedsHealthy  = "健康的な食事が必要..."
	TextStillPoisoned = "毒状態になった"
	TextGainingFat    = "太ってきた！"
	TextGoodBulk      = "いいバルクだ！"
	TextHangover      = "二日酔いだ..."
)
