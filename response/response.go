package response

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/w-h-a/stockist/catalogue"
	"github.com/w-h-a/stockist/generator"
	"github.com/w-h-a/stockist/intent"
	"github.com/w-h-a/stockist/search"
	"github.com/w-h-a/stockist/session"
)

const (
	// maxPresented bounds how many matches reach the generator;
	// ranking is preserved, the list is just truncated.
	maxPresented = 5

	chatHistoryWindow = 5

	// BoundaryMessage is returned verbatim for off-topic queries. The
	// generation collaborator is never consulted for these.
	BoundaryMessage = "I'm only able to help with our product catalogue and availability. How can I help you find something from our collection today?"

	// GenericClarification covers intents that need clarifying but
	// carry no question of their own.
	GenericClarification = "I want to help you find the perfect item! Could you provide more details about what you're looking for? For example, the type of clothing, color, fabric, or occasion?"

	greetingFallback = "Welcome! We specialize in handcrafted sarees, suit sets, and fabrics. What can I help you find today?"
)

const searchSystemPrompt = `You are the stock assistant for a handcrafted fashion boutique. Format search results warmly and professionally.

RESPONSE FORMAT RULES:
1. First line: clear answer about match status
   - If good matches: "Yes, we have X options that match your request." or similar
   - If no strong matches: "We don't have exactly that, but here are the closest options I can suggest."
   - If NO matches at all: "I don't see any products matching [criteria] in our current collection."

2. Then list 2-4 best products (max 5) in this format for EACH:
   • [Product Name]
     Category / Fabric / Technique / Color
     Price | Stock Status
     One-line description

3. STRICT RULES:
   - Use ONLY the product data provided
   - DO NOT invent or modify prices, names, fabrics, or stock status
   - Prefer in-stock items unless the user asks for out-of-stock
   - Keep descriptions concise (one line each)
   - Warm, customer-friendly tone for an Indian handcrafted fashion brand`

const chatSystemPromptTemplate = `You are the stock assistant for a small handcrafted fashion boutique.

Your role:
- Greet customers warmly and professionally
- Answer questions about product categories, fabrics, techniques, and the brand
- Guide customers toward searching our catalogue
- Maintain a warm, concise, customer-friendly tone aligned with an Indian handcrafted fashion brand

%s

STRICT RULES:
- DO NOT answer questions unrelated to the boutique's products or Indian handcrafted fashion
- If asked about something off-topic (weather, news, general knowledge), politely say: "I'm only able to help with our product catalogue and availability. How can I help you find something today?"
- Keep responses short (2-3 sentences maximum)
- Encourage customers to ask about specific products`

// Responder turns routed intents and retrieved matches into
// natural-language replies. Generation failures degrade to fixed
// fallback text per branch; they never surface as pipeline errors.
type Responder struct {
	generator  generator.Generator
	chatSystem string
}

// Search produces a grounded reply for retrieval results. Only facts
// from the supplied products reach the generator: the data block below
// is the entire universe the reply may draw on.
func (r *Responder) Search(ctx context.Context, it intent.Intent, products []search.Product) string {
	if len(products) > maxPresented {
		products = products[:maxPresented]
	}

	criteria := describeCriteria(it)

	var prompt string
	if len(products) == 0 {
		prompt = fmt.Sprintf(`User searched for: %s
No matching products were found in our database.

Generate a polite response explaining we don't have that exact item, and suggest they:
1. Try different color/fabric options
2. Browse similar categories
Keep it brief and helpful.`, criteria)
	} else {
		prompt = fmt.Sprintf(`User searched for: %s
Found %d products in our catalogue.

RETRIEVED PRODUCTS FROM DATABASE:
%s

Generate a warm response following the format rules. List 2-4 best matches (prioritize in-stock items).
Use ONLY the exact data provided above. Do not invent details.`, criteria, len(products), dataBlock(products))
	}

	reply, err := r.generator.Generate(
		ctx,
		prompt,
		generator.WithSystem(searchSystemPrompt),
		generator.WithTemperature(0.3),
		generator.WithMaxTokens(500),
	)
	if err != nil {
		slog.ErrorContext(ctx, "search response generation failed", "error", err)
		if len(products) == 0 {
			return fmt.Sprintf("I couldn't find any products matching %s. Would you like to try a different color or style?", criteria)
		}
		return fmt.Sprintf("I found %d items matching your search. Here are the results!", len(products))
	}

	return reply
}

// Clarify passes the intent's own question through verbatim when it
// has one.
func (r *Responder) Clarify(it intent.Intent) string {
	if len(strings.TrimSpace(it.ClarificationQuestion)) > 0 {
		return it.ClarificationQuestion
	}
	return GenericClarification
}

// Chat handles greetings and general questions. Off-topic intents
// short-circuit to the boundary message without touching the
// generator.
func (r *Responder) Chat(ctx context.Context, it intent.Intent, input string, history []session.Turn) string {
	if it.IntentType == intent.TypeOffTopic {
		return BoundaryMessage
	}

	if len(history) > chatHistoryWindow {
		history = history[len(history)-chatHistoryWindow:]
	}

	var sb strings.Builder
	if len(history) > 0 {
		sb.WriteString("Conversation so far:\n")
		for _, turn := range history {
			sb.WriteString(fmt.Sprintf("[%s]: %s\n", turn.Role, turn.Content))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Current customer message:\n")
	sb.WriteString(strings.TrimSpace(input))

	reply, err := r.generator.Generate(
		ctx,
		sb.String(),
		generator.WithSystem(r.chatSystem),
		generator.WithTemperature(0.7),
		generator.WithMaxTokens(150),
	)
	if err != nil {
		slog.ErrorContext(ctx, "chat response generation failed", "error", err)
		return greetingFallback
	}

	return reply
}

// dataBlock flattens products into the only facts the generator is
// allowed to state.
func dataBlock(products []search.Product) string {
	var sb strings.Builder

	for i, p := range products {
		stock := "In Stock"
		if !p.InStock {
			stock = "Out of Stock"
		}
		sb.WriteString(fmt.Sprintf(`Product %d:
- Name: %s
- Category: %s / %s
- Fabric: %s
- Technique: %s
- Color: %s
- Pattern: %s
- Price: %s
- Stock: %s
- Description: %s
`, i+1, p.Name, p.Category, p.Subcategory, p.Fabric, p.Technique, p.Color, p.Pattern, p.Price, stock, p.Description))
	}

	return sb.String()
}

func describeCriteria(it intent.Intent) string {
	var terms []string

	if len(it.Attributes.Color) > 0 {
		terms = append(terms, fmt.Sprintf("color: %s", it.Attributes.Color))
	}
	if len(it.Attributes.Fabric) > 0 {
		terms = append(terms, fmt.Sprintf("fabric: %s", it.Attributes.Fabric))
	}
	if len(it.Attributes.Technique) > 0 {
		terms = append(terms, fmt.Sprintf("technique: %s", it.Attributes.Technique))
	}
	if it.Attributes.PriceMax != nil {
		terms = append(terms, fmt.Sprintf("under %s", search.FormatPrice(*it.Attributes.PriceMax)))
	}

	if len(terms) == 0 {
		if len(it.SearchQuery) > 0 {
			return it.SearchQuery
		}
		return "your request"
	}

	return strings.Join(terms, ", ")
}

func NewResponder(g generator.Generator) *Responder {
	if g == nil {
		panic("generator is required")
	}

	return &Responder{
		generator:  g,
		chatSystem: fmt.Sprintf(chatSystemPromptTemplate, catalogue.PromptBlock()),
	}
}
