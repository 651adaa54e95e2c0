package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/w-h-a/stockist/intent"
)

func TestRoute(t *testing.T) {
	testcases := []struct {
		name string
		it   intent.Intent
		want Action
	}{
		{
			name: "confident-search",
			it:   intent.Intent{IntentType: intent.TypeProductSearch, Confidence: 0.9},
			want: ActionSearch,
		},
		{
			name: "search-below-threshold-clarifies",
			it:   intent.Intent{IntentType: intent.TypeProductSearch, Confidence: 0.4},
			want: ActionClarify,
		},
		{
			name: "search-at-threshold-searches",
			it:   intent.Intent{IntentType: intent.TypeProductSearch, Confidence: 0.6},
			want: ActionSearch,
		},
		{
			name: "needs-clarification-overrides-search",
			it:   intent.Intent{IntentType: intent.TypeProductSearch, Confidence: 0.95, NeedsClarification: true},
			want: ActionClarify,
		},
		{
			name: "off-topic-beats-low-confidence",
			it:   intent.Intent{IntentType: intent.TypeOffTopic, Confidence: 0.2},
			want: ActionChat,
		},
		{
			name: "off-topic-beats-needs-clarification",
			it:   intent.Intent{IntentType: intent.TypeOffTopic, Confidence: 0.95, NeedsClarification: true},
			want: ActionChat,
		},
		{
			name: "greeting-chats",
			it:   intent.Intent{IntentType: intent.TypeGreeting, Confidence: 0.9},
			want: ActionChat,
		},
		{
			name: "general-question-chats",
			it:   intent.Intent{IntentType: intent.TypeGeneralQuestion, Confidence: 0.8},
			want: ActionChat,
		},
		{
			name: "clarification-needed-type-clarifies",
			it:   intent.Intent{IntentType: intent.TypeClarificationNeeded, Confidence: 0.9, NeedsClarification: true},
			want: ActionClarify,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Route(tc.it))
		})
	}
}

func TestRouteIsDeterministic(t *testing.T) {
	it := intent.Intent{IntentType: intent.TypeProductSearch, Confidence: 0.75}

	first := Route(it)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Route(it))
	}
}
