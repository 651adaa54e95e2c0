package classifier

import "context"

// Message is one turn of conversation context handed to the model.
type Message struct {
	Role    string
	Content string
}

// Classifier turns a user message plus recent history into structured
// JSON matching the intent shape. Implementations must force JSON
// output; callers own parsing and validation.
type Classifier interface {
	Classify(ctx context.Context, system string, history []Message, input string) (string, error)
}
