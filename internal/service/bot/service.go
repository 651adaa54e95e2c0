package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/w-h-a/stockist/intent"
	"github.com/w-h-a/stockist/response"
	"github.com/w-h-a/stockist/router"
	"github.com/w-h-a/stockist/search"
	"github.com/w-h-a/stockist/session"
)

const apology = "I apologize, but I encountered an error processing your request. Please try again."

const chatHistoryWindow = 5

// Reply is the structured outcome of one turn. Action is one of
// search/clarify/chat/error; Intent is attached when extraction
// succeeded, for observability.
type Reply struct {
	Response string           `json:"response"`
	Products []search.Product `json:"products"`
	Action   string           `json:"action"`
	Intent   *intent.Intent   `json:"intent,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// Service orchestrates one request/response cycle:
// Received -> IntentExtracted -> ActionDecided -> Responded.
// Collaborators are injected once at construction; there is no global
// state. Every turn terminates with a valid reply.
type Service struct {
	options   Options
	sessions  *session.Store
	extractor *intent.Extractor
	adapter   *search.Adapter
	responder *response.Responder
}

// ProcessMessage runs one turn. The user message is recorded before
// any fallible step, and exactly one assistant message is recorded on
// every path, the error path included.
func (s *Service) ProcessMessage(ctx context.Context, sessionID string, text string) (reply Reply) {
	sess := s.sessions.GetOrCreate(sessionID)

	// turns within one session never interleave
	sess.Lock()
	defer sess.Unlock()

	sess.Append("user", text)

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "error processing message", "session_id", sessionID, "error", r)
			reply = Reply{
				Response: apology,
				Products: []search.Product{},
				Action:   string(router.ActionError),
				Error:    fmt.Sprintf("%v", r),
			}
		}
		sess.Append("assistant", reply.Response)
	}()

	it := s.extractor.Extract(ctx, sess, text)
	slog.InfoContext(ctx, "extracted intent", "session_id", sessionID, "intent_type", it.IntentType, "confidence", it.Confidence)

	action := router.Route(it)
	slog.InfoContext(ctx, "decided action", "session_id", sessionID, "action", action)

	switch action {
	case router.ActionSearch:
		reply = s.executeSearch(ctx, it)
	case router.ActionClarify:
		reply = Reply{
			Response: s.responder.Clarify(it),
			Products: []search.Product{},
			Action:   string(router.ActionClarify),
			Intent:   &it,
		}
	default:
		reply = Reply{
			Response: s.responder.Chat(ctx, it, text, sess.View(chatHistoryWindow)),
			Products: []search.Product{},
			Action:   string(router.ActionChat),
			Intent:   &it,
		}
	}

	return reply
}

func (s *Service) executeSearch(ctx context.Context, it intent.Intent) Reply {
	filter := search.BuildFilter(it.Category, it.Subcategory, it.Attributes)

	matches := s.adapter.Search(ctx, it.SearchQuery, filter, s.options.TopK)

	products := search.PresentAll(matches)

	return Reply{
		Response: s.responder.Search(ctx, it, products),
		Products: products,
		Action:   string(router.ActionSearch),
		Intent:   &it,
	}
}

func (s *Service) ClearSession(sessionID string) {
	s.sessions.Clear(sessionID)
}

func (s *Service) SessionInfo(sessionID string) (session.Info, bool) {
	return s.sessions.Info(sessionID)
}

func New(
	sessions *session.Store,
	extractor *intent.Extractor,
	adapter *search.Adapter,
	responder *response.Responder,
	opts ...Option,
) *Service {
	if sessions == nil {
		panic("session store is required")
	}

	if extractor == nil {
		panic("extractor is required")
	}

	if adapter == nil {
		panic("adapter is required")
	}

	if responder == nil {
		panic("responder is required")
	}

	return &Service{
		options:   NewOptions(opts...),
		sessions:  sessions,
		extractor: extractor,
		adapter:   adapter,
		responder: responder,
	}
}
