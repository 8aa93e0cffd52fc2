package models

// TextNode is a stored document: its text, provenance, and embedding.
// IDs are dense, assigned in insertion order, and stable for the node's lifetime.
type TextNode struct {
	ID         int        `json:"id"`
	Text       string     `json:"text"`
	Source     SourceInfo `json:"source"`
	Embedding  []float32  `json:"embedding"`
	TokenCount int        `json:"token_count"`
}

// KeywordNode is a deduplicated normalized keyword and its embedding.
// At most one node exists per normalized keyword string in a store.
type KeywordNode struct {
	ID        int       `json:"id"`
	Keyword   string    `json:"keyword"`
	Embedding []float32 `json:"embedding"`
}
