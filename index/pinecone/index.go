package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/w-h-a/stockist/index"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const apiVersion = "2025-01"

type pineconeIndex struct {
	options index.Options
	client  *http.Client
}

func (p *pineconeIndex) Query(ctx context.Context, text string, opts ...index.QueryOption) ([]index.Hit, error) {
	options := index.NewQueryOptions(opts...)

	req := searchRequest{
		Query: searchQuery{
			Inputs: map[string]string{"text": text},
			TopK:   options.TopK,
			Filter: translateFilter(options.Filter),
		},
		Fields: []string{"*"},
	}

	var rsp searchEnvelope

	path := fmt.Sprintf("/records/namespaces/%s/search", url.PathEscape(p.options.Namespace))

	if err := p.do(ctx, http.MethodPost, path, req, &rsp); err != nil {
		return nil, err
	}

	hits := make([]index.Hit, 0, len(rsp.Result.Hits))

	for _, hit := range rsp.Result.Hits {
		hits = append(hits, index.Hit{
			Id:     hit.Id,
			Score:  hit.Score,
			Fields: hit.Fields,
		})
	}

	return hits, nil
}

// translateFilter maps the canonical filter onto Pinecone's metadata
// filter operators. Range bounds on the same field merge into one
// constraint object.
func translateFilter(filter index.Filter) map[string]any {
	if len(filter) == 0 {
		return nil
	}

	translated := map[string]any{}

	for field, cond := range filter {
		constraint := map[string]any{}
		if len(cond.Equals) > 0 {
			constraint["$eq"] = cond.Equals
		}
		if cond.Flag != nil {
			constraint["$eq"] = *cond.Flag
		}
		if cond.Min != nil {
			constraint["$gte"] = *cond.Min
		}
		if cond.Max != nil {
			constraint["$lte"] = *cond.Max
		}
		if len(constraint) > 0 {
			translated[field] = constraint
		}
	}

	if len(translated) == 0 {
		return nil
	}

	return translated
}

func (p *pineconeIndex) do(ctx context.Context, method string, path string, req any, rsp any) error {
	u := p.options.Location + path

	var buf io.Reader
	if req != nil {
		data, err := json.Marshal(req)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, u, buf)
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-Pinecone-Api-Version", apiVersion)

	if len(p.options.ApiKey) > 0 {
		request.Header.Set("Api-Key", p.options.ApiKey)
	}

	response, err := p.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("pinecone http %d: %s", response.StatusCode, string(payload))
	}

	if rsp != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, rsp); err != nil {
			return err
		}
	}

	return nil
}

func NewIndex(opts ...index.Option) index.Index {
	options := index.NewOptions(opts...)

	if len(options.Location) == 0 {
		panic("missing location for pinecone index")
	}

	client := &http.Client{
		Timeout:   15 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	p := &pineconeIndex{
		options: options,
		client:  client,
	}

	return p
}
