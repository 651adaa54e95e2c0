package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/stockist/classifier"
	"github.com/w-h-a/stockist/generator"
	memoryindex "github.com/w-h-a/stockist/index/memory"
	"github.com/w-h-a/stockist/intent"
	"github.com/w-h-a/stockist/response"
	"github.com/w-h-a/stockist/search"
	"github.com/w-h-a/stockist/session"
)

type stubClassifier struct {
	raw    string
	err    error
	panics bool
}

func (s *stubClassifier) Classify(ctx context.Context, system string, history []classifier.Message, input string) (string, error) {
	if s.panics {
		panic("classifier blew up")
	}
	return s.raw, s.err
}

type stubGenerator struct {
	reply string
	err   error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, opts ...generator.GenerateOption) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newService(t *testing.T, c classifier.Classifier, g generator.Generator, records ...memoryindex.Record) *Service {
	t.Helper()

	idx := memoryindex.NewIndex()
	idx.Add(records...)

	return New(
		session.NewStore(),
		intent.NewExtractor(c),
		search.NewAdapter(idx),
		response.NewResponder(g),
	)
}

func sareeRecord() memoryindex.Record {
	return memoryindex.Record{
		Id: "prod-001",
		Fields: map[string]any{
			"product_name": "Indigo Dream Ajrakh Saree",
			"category":     "Saree",
			"subcategory":  "Ajrakh Saree",
			"color":        "Indigo",
			"fabric":       "Cotton",
			"technique":    "Ajrakh",
			"price":        2850.0,
			"in_stock":     true,
			"description":  "Hand block printed cotton saree in deep indigo",
		},
	}
}

func TestProcessMessageSearch(t *testing.T) {
	c := &stubClassifier{raw: `{
		"intent_type": "product_search",
		"category": "Saree",
		"attributes": {"color": "indigo", "technique": "ajrakh"},
		"search_query": "indigo ajrakh saree",
		"confidence": 0.92
	}`}
	g := &stubGenerator{reply: "Yes, we have 1 option that matches your request."}

	svc := newService(t, c, g, sareeRecord())

	reply := svc.ProcessMessage(context.Background(), "s1", "Do you have indigo ajrakh sarees?")

	assert.Equal(t, "search", reply.Action)
	assert.Equal(t, g.reply, reply.Response)
	require.Len(t, reply.Products, 1)
	assert.Equal(t, "Indigo Dream Ajrakh Saree", reply.Products[0].Name)
	assert.Equal(t, "₹2,850", reply.Products[0].Price)
	assert.True(t, reply.Products[0].InStock)
	require.NotNil(t, reply.Intent)
	assert.Equal(t, intent.TypeProductSearch, reply.Intent.IntentType)
	assert.Empty(t, reply.Error)
}

func TestProcessMessageSearchNoMatches(t *testing.T) {
	c := &stubClassifier{raw: `{
		"intent_type": "product_search",
		"search_query": "zzz qqq xxx",
		"confidence": 0.9
	}`}
	g := &stubGenerator{reply: "We don't have exactly that."}

	svc := newService(t, c, g, sareeRecord())

	reply := svc.ProcessMessage(context.Background(), "s1", "zzz qqq xxx")

	assert.Equal(t, "search", reply.Action)
	assert.NotNil(t, reply.Products)
	assert.Empty(t, reply.Products)
}

func TestProcessMessageOffTopic(t *testing.T) {
	c := &stubClassifier{raw: `{"intent_type": "off_topic", "search_query": "weather", "confidence": 0.95}`}
	g := &stubGenerator{reply: "should never be used"}

	svc := newService(t, c, g)

	reply := svc.ProcessMessage(context.Background(), "s1", "What's the weather today?")

	assert.Equal(t, "chat", reply.Action)
	assert.Equal(t, response.BoundaryMessage, reply.Response)
	assert.Empty(t, reply.Products)
}

func TestProcessMessageClarify(t *testing.T) {
	c := &stubClassifier{raw: `{
		"intent_type": "clarification_needed",
		"search_query": "something nice",
		"confidence": 0.85,
		"needs_clarification": true,
		"clarification_question": "What type of item are you looking for?"
	}`}

	svc := newService(t, c, &stubGenerator{})

	reply := svc.ProcessMessage(context.Background(), "s1", "I want something nice")

	assert.Equal(t, "clarify", reply.Action)
	assert.Equal(t, "What type of item are you looking for?", reply.Response)
}

func TestProcessMessageClassifierFailureDegrades(t *testing.T) {
	c := &stubClassifier{err: errors.New("llm unavailable")}

	svc := newService(t, c, &stubGenerator{reply: "unused"})

	reply := svc.ProcessMessage(context.Background(), "s1", "show me sarees")

	// the default intent has confidence 0.5, below the routing
	// threshold, so the turn asks for clarification
	assert.Equal(t, "clarify", reply.Action)
	assert.Equal(t, response.GenericClarification, reply.Response)
	assert.Empty(t, reply.Error)
}

func TestProcessMessageRecoversFromPanic(t *testing.T) {
	c := &stubClassifier{panics: true}

	svc := newService(t, c, &stubGenerator{})

	reply := svc.ProcessMessage(context.Background(), "s1", "hello")

	assert.Equal(t, "error", reply.Action)
	assert.Equal(t, apology, reply.Response)
	assert.Contains(t, reply.Error, "classifier blew up")
	assert.Empty(t, reply.Products)

	// the turn is still recorded: one user and one assistant message
	info, ok := svc.SessionInfo("s1")
	require.True(t, ok)
	assert.Equal(t, 2, info.MessageCount)
}

func TestProcessMessageRecordsHistory(t *testing.T) {
	c := &stubClassifier{raw: `{"intent_type": "greeting", "search_query": "hello", "confidence": 0.95}`}
	g := &stubGenerator{reply: "Welcome to the boutique!"}

	svc := newService(t, c, g)

	svc.ProcessMessage(context.Background(), "s1", "hello")
	svc.ProcessMessage(context.Background(), "s1", "hi again")

	info, ok := svc.SessionInfo("s1")
	require.True(t, ok)
	assert.Equal(t, 4, info.MessageCount)
}

func TestClearSession(t *testing.T) {
	c := &stubClassifier{raw: `{"intent_type": "greeting", "search_query": "hello", "confidence": 0.95}`}

	svc := newService(t, c, &stubGenerator{reply: "hi"})

	svc.ProcessMessage(context.Background(), "s1", "hello")
	svc.ClearSession("s1")

	_, ok := svc.SessionInfo("s1")
	assert.False(t, ok)
}

func TestSessionsAreIsolated(t *testing.T) {
	c := &stubClassifier{raw: `{"intent_type": "greeting", "search_query": "hello", "confidence": 0.95}`}

	svc := newService(t, c, &stubGenerator{reply: "hi"})

	svc.ProcessMessage(context.Background(), "a", "hello")
	svc.ProcessMessage(context.Background(), "b", "hello")
	svc.ProcessMessage(context.Background(), "b", "hello again")

	infoA, ok := svc.SessionInfo("a")
	require.True(t, ok)
	infoB, ok := svc.SessionInfo("b")
	require.True(t, ok)

	assert.Equal(t, 2, infoA.MessageCount)
	assert.Equal(t, 4, infoB.MessageCount)
}
