package stockist

import (
	"context"

	"github.com/w-h-a/stockist/classifier"
	"github.com/w-h-a/stockist/generator"
	"github.com/w-h-a/stockist/index"
	"github.com/w-h-a/stockist/intent"
	"github.com/w-h-a/stockist/internal/service/bot"
	"github.com/w-h-a/stockist/response"
	"github.com/w-h-a/stockist/search"
	"github.com/w-h-a/stockist/session"
)

// Reply is the structured outcome of one processed message.
type Reply = bot.Reply

// Assistant is the catalogue retrieval assistant. Collaborators are
// constructed once and injected; substituting stubs in tests is just a
// matter of passing different implementations.
type Assistant struct {
	service *bot.Service
}

func (a *Assistant) ProcessMessage(ctx context.Context, sessionID string, text string) Reply {
	return a.service.ProcessMessage(ctx, sessionID, text)
}

func (a *Assistant) ClearSession(sessionID string) {
	a.service.ClearSession(sessionID)
}

func (a *Assistant) SessionInfo(sessionID string) (session.Info, bool) {
	return a.service.SessionInfo(sessionID)
}

func New(
	c classifier.Classifier,
	g generator.Generator,
	idx index.Index,
	opts ...Option,
) *Assistant {
	options := NewOptions(opts...)

	sessions := session.NewStore(
		session.WithMaxSessions(options.MaxSessions),
		session.WithTTL(options.SessionTTL),
	)

	extractor := intent.NewExtractor(c)

	adapter := search.NewAdapter(
		idx,
		search.WithMetadataFilters(options.MetadataFilters),
		search.WithInStockOnly(options.InStockOnly),
	)

	responder := response.NewResponder(g)

	service := bot.New(
		sessions,
		extractor,
		adapter,
		responder,
		bot.WithTopK(options.TopK),
	)

	return &Assistant{
		service: service,
	}
}
