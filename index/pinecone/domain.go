package pinecone

type searchRequest struct {
	Query  searchQuery `json:"query"`
	Fields []string    `json:"fields"`
}

type searchQuery struct {
	Inputs map[string]string `json:"inputs"`
	TopK   int               `json:"top_k"`
	Filter map[string]any    `json:"filter,omitempty"`
}

type searchEnvelope struct {
	Result searchResult `json:"result"`
}

type searchResult struct {
	Hits []searchHit `json:"hits"`
}

type searchHit struct {
	Id     string         `json:"_id"`
	Score  float64        `json:"_score"`
	Fields map[string]any `json:"fields"`
}
