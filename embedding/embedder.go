// Package embedding provides text embedding generation for the graph store.
package embedding

// Embedder generates fixed-dimension embeddings for text. The graph store
// depends only on this interface, so the deterministic stand-in can be
// replaced with a real model without touching construction or search.
type Embedder interface {
	// Embed returns an embedding for text. Implementations must return
	// vectors of length Dimensions().
	Embed(text string) ([]float32, error)
	// Dimensions returns the embedding dimension.
	Dimensions() int
}
