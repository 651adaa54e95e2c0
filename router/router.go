package router

import "github.com/w-h-a/stockist/intent"

type Action string

const (
	ActionSearch  Action = "search"
	ActionClarify Action = "clarify"
	ActionChat    Action = "chat"
	ActionError   Action = "error"
)

// ConfidenceThreshold is the floor below which any intent is treated
// as unclear and routed to clarification.
const ConfidenceThreshold = 0.6

// Route decides what to do with an intent. Pure function; the order
// is a deliberate tie-break: off-topic short-circuits everything, and
// low confidence overrides an otherwise-valid search intent.
func Route(it intent.Intent) Action {
	if it.IntentType == intent.TypeOffTopic {
		return ActionChat
	}

	if it.NeedsClarification || it.Confidence < ConfidenceThreshold {
		return ActionClarify
	}

	if it.IntentType == intent.TypeProductSearch {
		return ActionSearch
	}

	return ActionChat
}
