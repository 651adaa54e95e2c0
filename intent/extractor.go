package intent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/w-h-a/stockist/catalogue"
	"github.com/w-h-a/stockist/classifier"
	"github.com/w-h-a/stockist/session"
)

const historyWindow = 5

const systemPromptTemplate = `You are the stock assistant for a small handcrafted fashion boutique specializing in Indian ethnic wear.

Your job is to understand user intent and extract relevant information for product search from our fixed catalogue.

%s

Analyze the user's message and return a JSON object with:
{
  "intent_type": "product_search" | "general_question" | "greeting" | "clarification_needed" | "off_topic",
  "category": "Saree" | "Suit Set" | "Fabric" | "Dupatta" | "Stole" | null,
  "subcategory": "specific subcategory or null",
  "attributes": {
    "color": "color value or null",
    "fabric": "fabric type or null",
    "technique": "technique or null",
    "pattern": "pattern or null",
    "price_min": "minimum price number or null",
    "price_max": "maximum price number or null"
  },
  "search_query": "refined search query text",
  "confidence": 0.0-1.0,
  "needs_clarification": true/false,
  "clarification_question": "question to ask user if needed"
}

Examples:
- "Do you have indigo ajrakh cotton saree under 3000?" -> intent_type: "product_search", category: "Saree", subcategory: "Ajrakh Saree", attributes: {color: "indigo", fabric: "cotton", technique: "ajrakh", price_max: 3000}
- "Show me maheshwari silk in pink" -> intent_type: "product_search", subcategory: "Maheshwari", attributes: {fabric: "silk", color: "pink"}
- "Ajrakh suit set in modal, budget 3-4k" -> intent_type: "product_search", category: "Suit Set", subcategory: "Ajrakh Suit", attributes: {fabric: "modal", price_min: 3000, price_max: 4000}
- "Hello" -> intent_type: "greeting"
- "What's the weather?" -> intent_type: "off_topic"
- "Tell me about fabrics" -> intent_type: "general_question"

Remember: you only help with the boutique's product catalogue. Mark unrelated queries as "off_topic". Always normalize budget text into numeric price_min/price_max.`

// Extractor runs the classification collaborator and turns its output
// into a validated Intent. It never returns an error: any call or
// parse failure degrades to the default intent.
type Extractor struct {
	classifier classifier.Classifier
	system     string
}

func (e *Extractor) Extract(ctx context.Context, sess *session.Session, input string) Intent {
	history := sess.View(historyWindow)

	messages := make([]classifier.Message, 0, len(history))
	for _, turn := range history {
		messages = append(messages, classifier.Message{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	raw, err := e.classifier.Classify(ctx, e.system, messages, input)
	if err != nil {
		slog.ErrorContext(ctx, "intent classification failed", "error", err)
		return Default(input)
	}

	it, err := Parse(raw)
	if err != nil {
		slog.ErrorContext(ctx, "intent parsing failed", "error", err)
		return Default(input)
	}

	if len(it.SearchQuery) == 0 {
		it.SearchQuery = input
	}

	// remembered for later turns; the extractor itself never reads
	// these back
	if it.Attributes != (Attributes{}) {
		sess.SetContext("last_attributes", it.Attributes)
	}
	if len(it.Category) > 0 {
		sess.SetContext("last_category", it.Category)
	}

	return it
}

func NewExtractor(c classifier.Classifier) *Extractor {
	if c == nil {
		panic("classifier is required")
	}

	return &Extractor{
		classifier: c,
		system:     fmt.Sprintf(systemPromptTemplate, catalogue.PromptBlock()),
	}
}
