package models

// SearchResult is a single text-node hit with its similarity score.
type SearchResult struct {
	Node  *TextNode `json:"node"`
	Score float64   `json:"score"`
}

// KeywordResult is a single keyword-node hit with its score. The score is a
// cosine similarity for vector queries and a matrix weight for relation queries.
type KeywordResult struct {
	Node  *KeywordNode `json:"node"`
	Score float64      `json:"score"`
}
