// Package models defines core data structures for documents, graph nodes, and search results.
package models

// SourceInfo records where a document's text came from. It is pure metadata:
// two documents with identical text but different sources are still distinct inputs.
type SourceInfo struct {
	Filename string `json:"filename" yaml:"filename"`
	// PageNum is the 1-based page number for paginated formats (PDF); nil otherwise.
	PageNum *int `json:"page_num,omitempty" yaml:"page_num,omitempty"`
	// FileType is the lowercase extension without the dot (e.g. "pdf", "txt").
	FileType string `json:"file_type" yaml:"file_type"`
	// ChunkIdx is the 0-based chunk index when the source text was split; nil for unsplit text.
	ChunkIdx *int `json:"chunk_idx,omitempty" yaml:"chunk_idx,omitempty"`
}

// Document is the input to graph construction: raw text plus provenance.
// Documents are consumed during Build and folded into text nodes; they are
// not persisted as such.
type Document struct {
	Text   string     `json:"text"`
	Source SourceInfo `json:"source"`
}
