package embedding

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/hyperjump/musubi/pkg/utils"
)

// Deterministic is a reproducible embedder: the vector is a pure function of
// (text, dimensions, seed), identical across processes and runs. It does not
// model semantic similarity of natural language: similar texts do not get
// similar vectors. It exists as a stand-in where reproducibility matters more
// than meaning.
type Deterministic struct {
	dimensions int
	seed       int64
}

// NewDeterministic returns a deterministic embedder with the given dimension
// and seed. Returns an error if dimensions is not positive.
func NewDeterministic(dimensions int, seed int64) (*Deterministic, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive, got %d", dimensions)
	}
	return &Deterministic{dimensions: dimensions, seed: seed}, nil
}

// Embed derives a per-text seed from an FNV-1a hash of the text mixed with
// the configured seed, draws the vector from a seeded generator, and
// normalizes it to unit L2 norm. A zero-norm draw falls back to the first
// basis vector so cosine scoring never divides by zero.
func (e *Deterministic) Embed(text string) ([]float32, error) {
	h := fnv.New64a()
	// fnv never returns an error
	_, _ = h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64()) ^ e.seed))

	vec := make([]float32, e.dimensions)
	for i := range vec {
		vec[i] = float32(rng.Float64()*2 - 1)
	}
	if !utils.NormalizeL2(vec) {
		vec[0] = 1
	}
	return vec, nil
}

// Dimensions returns the embedding dimension.
func (e *Deterministic) Dimensions() int {
	return e.dimensions
}
