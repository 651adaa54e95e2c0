package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/w-h-a/stockist"
	"github.com/w-h-a/stockist/classifier"
	openaiclassifier "github.com/w-h-a/stockist/classifier/openai"
	"github.com/w-h-a/stockist/embedder"
	googleembedder "github.com/w-h-a/stockist/embedder/google"
	openaiembedder "github.com/w-h-a/stockist/embedder/openai"
	"github.com/w-h-a/stockist/generator"
	anthropicgenerator "github.com/w-h-a/stockist/generator/anthropic"
	openaigenerator "github.com/w-h-a/stockist/generator/openai"
	"github.com/w-h-a/stockist/index"
	memoryindex "github.com/w-h-a/stockist/index/memory"
	pineconeindex "github.com/w-h-a/stockist/index/pinecone"
	postgresindex "github.com/w-h-a/stockist/index/postgres"
	"github.com/w-h-a/stockist/server"
	httpserver "github.com/w-h-a/stockist/server/http"
)

type Globals struct {
	// Classifier config
	OpenAIKey       string `help:"API key for OpenAI" env:"OPENAI_API_KEY"`
	ClassifierModel string `help:"Model identifier for intent classification" default:"gpt-4o-mini"`

	// Generator config
	Generator      string `help:"Generation provider" enum:"openai,anthropic" default:"openai"`
	GeneratorModel string `help:"Model identifier for response generation" default:"gpt-4o-mini"`
	AnthropicKey   string `help:"API key for Anthropic" env:"ANTHROPIC_API_KEY"`

	// Index config
	Index         string `help:"Index backend" enum:"pinecone,postgres,memory" default:"pinecone"`
	IndexLocation string `help:"Pinecone host or postgres DSN" env:"INDEX_LOCATION"`
	PineconeKey   string `help:"API key for Pinecone" env:"PINECONE_API_KEY"`
	Namespace     string `help:"Index namespace" env:"PINECONE_NAMESPACE" default:"__default__"`
	CatalogueFile string `help:"Seed file for the in-memory index" type:"path"`

	// Embedder config (postgres index only)
	Embedder      string `help:"Embedding provider" enum:"openai,google" default:"openai"`
	EmbedderModel string `help:"Model identifier for embeddings" default:"text-embedding-3-small"`
	GoogleKey     string `help:"API key for Google" env:"GOOGLE_API_KEY"`

	// Assistant config
	TopK            int    `help:"Number of hits to retrieve per search" default:"10"`
	MetadataFilters bool   `help:"Send structured metadata filters with each search"`
	InStockOnly     bool   `help:"Restrict filtered searches to in-stock items"`
	MaxSessions     int    `help:"Upper bound on resident sessions" default:"1024"`
	SessionTTL      string `help:"Session time-to-live" default:"1h"`
}

type ServeCmd struct {
	Address string `help:"Bind address for the HTTP API" default:":8080"`
}

func (c *ServeCmd) Run(g *Globals) error {
	assistant, err := buildAssistant(g)
	if err != nil {
		return err
	}

	srv := httpserver.NewServer(
		assistant,
		server.WithAddress(c.Address),
		server.WithMiddleware(httpserver.CORS, httpserver.RequestLogger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

type ChatCmd struct {
	SessionID string `help:"Fixed session identifier; generated when empty"`
}

func (c *ChatCmd) Run(g *Globals) error {
	assistant, err := buildAssistant(g)
	if err != nil {
		return err
	}

	sessionID := c.SessionID
	if len(sessionID) == 0 {
		sessionID = uuid.New().String()
	}

	ctx := context.Background()

	fmt.Println("Catalogue assistant. Type a message and press enter; empty input exits.")

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("Error reading input:", err)
			continue
		}
		input = strings.TrimSpace(input)
		if len(input) == 0 {
			fmt.Println("Goodbye!")
			return nil
		}

		reply := assistant.ProcessMessage(ctx, sessionID, input)

		fmt.Printf("[%s] %s\n", reply.Action, reply.Response)
		for _, p := range reply.Products {
			fmt.Printf("  - %s | %s | in stock: %t\n", p.Name, p.Price, p.InStock)
		}
		fmt.Println("---")
	}
}

func buildAssistant(g *Globals) (*stockist.Assistant, error) {
	c := openaiclassifier.NewClassifier(
		classifier.WithApiKey(g.OpenAIKey),
		classifier.WithModel(g.ClassifierModel),
	)

	var gen generator.Generator
	switch g.Generator {
	case "anthropic":
		gen = anthropicgenerator.NewGenerator(
			generator.WithApiKey(g.AnthropicKey),
			generator.WithModel(g.GeneratorModel),
		)
	default:
		gen = openaigenerator.NewGenerator(
			generator.WithApiKey(g.OpenAIKey),
			generator.WithModel(g.GeneratorModel),
		)
	}

	idx, err := buildIndex(g)
	if err != nil {
		return nil, err
	}

	ttl, err := parseTTL(g.SessionTTL)
	if err != nil {
		return nil, err
	}

	assistant := stockist.New(
		c,
		gen,
		idx,
		stockist.WithTopK(g.TopK),
		stockist.WithMetadataFilters(g.MetadataFilters),
		stockist.WithInStockOnly(g.InStockOnly),
		stockist.WithMaxSessions(g.MaxSessions),
		stockist.WithSessionTTL(ttl),
	)

	return assistant, nil
}

func buildIndex(g *Globals) (index.Index, error) {
	switch g.Index {
	case "memory":
		idx := memoryindex.NewIndex()
		if len(g.CatalogueFile) > 0 {
			records, err := loadRecords(g.CatalogueFile)
			if err != nil {
				return nil, err
			}
			idx.Add(records...)
		}
		return idx, nil
	case "postgres":
		var emb embedder.Embedder
		switch g.Embedder {
		case "google":
			emb = googleembedder.NewEmbedder(
				embedder.WithApiKey(g.GoogleKey),
				embedder.WithModel(g.EmbedderModel),
			)
		default:
			emb = openaiembedder.NewEmbedder(
				embedder.WithApiKey(g.OpenAIKey),
				embedder.WithModel(g.EmbedderModel),
			)
		}
		return postgresindex.NewIndex(
			index.WithLocation(g.IndexLocation),
			index.WithEmbedder(emb),
		), nil
	default:
		return pineconeindex.NewIndex(
			index.WithLocation(g.IndexLocation),
			index.WithApiKey(g.PineconeKey),
			index.WithNamespace(g.Namespace),
		), nil
	}
}

func parseTTL(s string) (time.Duration, error) {
	ttl, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid session ttl %q: %w", s, err)
	}
	return ttl, nil
}

func loadRecords(path string) ([]memoryindex.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue file: %w", err)
	}

	var records []memoryindex.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue file: %w", err)
	}

	return records, nil
}

var cli struct {
	Globals

	Serve ServeCmd `cmd:"" default:"withargs" help:"Run the HTTP API"`
	Chat  ChatCmd  `cmd:"" help:"Talk to the assistant from the terminal"`
}

func main() {
	_ = godotenv.Load()

	ktx := kong.Parse(&cli)

	if err := ktx.Run(&cli.Globals); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
