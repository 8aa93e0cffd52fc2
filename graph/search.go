package graph

import (
	"fmt"
	"sort"

	"github.com/hyperjump/musubi/models"
	"github.com/hyperjump/musubi/pkg/utils"
)

// Search returns up to k text nodes most similar to query, by cosine
// similarity, descending. Ties are broken by ascending node ID so results are
// reproducible. If either vector has zero norm the pair scores 0. A query of
// the wrong length fails with a DimensionError and leaves the store
// untouched. k >= Len() returns all nodes; k <= 0 or an empty store returns
// an empty slice.
//
// The scan is O(n*dim) per query with no index acceleration.
func (s *Store) Search(query []float32, k int) ([]models.SearchResult, error) {
	if len(query) != s.cfg.EmbeddingDim {
		return nil, &DimensionError{Got: len(query), Want: s.cfg.EmbeddingDim}
	}
	if k <= 0 || len(s.texts) == 0 {
		return []models.SearchResult{}, nil
	}
	queryNorm := utils.L2Norm(query)
	results := make([]models.SearchResult, len(s.texts))
	for i, node := range s.texts {
		results[i] = models.SearchResult{
			Node:  node,
			Score: cosine(query, queryNorm, node.Embedding),
		}
	}
	sortDescending(results)
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// SearchKeywords returns up to k keyword nodes most similar to query, with
// the same contract as Search.
func (s *Store) SearchKeywords(query []float32, k int) ([]models.KeywordResult, error) {
	if len(query) != s.cfg.EmbeddingDim {
		return nil, &DimensionError{Got: len(query), Want: s.cfg.EmbeddingDim}
	}
	if k <= 0 || len(s.keywords) == 0 {
		return []models.KeywordResult{}, nil
	}
	queryNorm := utils.L2Norm(query)
	results := make([]models.KeywordResult, len(s.keywords))
	for i, node := range s.keywords {
		results[i] = models.KeywordResult{
			Node:  node,
			Score: cosine(query, queryNorm, node.Embedding),
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// RelatedTexts returns up to k text nodes associated with the given keyword,
// ranked by relation matrix weight descending. Columns with zero weight are
// excluded; ties are broken by ascending text node ID.
func (s *Store) RelatedTexts(keywordID, k int) ([]models.SearchResult, error) {
	if keywordID < 0 || keywordID >= len(s.keywords) {
		return nil, fmt.Errorf("keyword id %d out of range [0,%d)", keywordID, len(s.keywords))
	}
	if k <= 0 {
		return []models.SearchResult{}, nil
	}
	row, err := s.rel.Row(keywordID)
	if err != nil {
		return nil, err
	}
	results := make([]models.SearchResult, 0)
	for col, weight := range row {
		if weight > 0 {
			results = append(results, models.SearchResult{
				Node:  s.texts[col],
				Score: float64(weight),
			})
		}
	}
	sortDescending(results)
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// AdjacentKeywords returns up to k keywords that share at least one text with
// the given keyword, ranked by co-occurrence weight descending: the sum over
// shared texts of the smaller of the two keywords' weights. The probe keyword
// is excluded; ties are broken by ascending keyword node ID.
func (s *Store) AdjacentKeywords(keywordID, k int) ([]models.KeywordResult, error) {
	if keywordID < 0 || keywordID >= len(s.keywords) {
		return nil, fmt.Errorf("keyword id %d out of range [0,%d)", keywordID, len(s.keywords))
	}
	if k <= 0 {
		return []models.KeywordResult{}, nil
	}
	base, err := s.rel.Row(keywordID)
	if err != nil {
		return nil, err
	}
	results := make([]models.KeywordResult, 0)
	for id := range s.keywords {
		if id == keywordID {
			continue
		}
		other, err := s.rel.Row(id)
		if err != nil {
			return nil, err
		}
		var shared float64
		for col := range base {
			if base[col] > 0 && other[col] > 0 {
				shared += float64(min(base[col], other[col]))
			}
		}
		if shared > 0 {
			results = append(results, models.KeywordResult{
				Node:  s.keywords[id],
				Score: shared,
			})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// cosine returns the cosine similarity between the query (with precomputed
// norm) and vec, or 0 when either norm is zero.
func cosine(query []float32, queryNorm float64, vec []float32) float64 {
	vecNorm := utils.L2Norm(vec)
	if queryNorm == 0 || vecNorm == 0 {
		return 0
	}
	var dot float64
	for i := range query {
		dot += float64(query[i]) * float64(vec[i])
	}
	return dot / (queryNorm * vecNorm)
}

// sortDescending orders results by score descending. The stable sort keeps
// insertion order among equal scores.
func sortDescending(results []models.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
