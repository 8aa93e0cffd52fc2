// Package graph provides the in-memory graph store: text and keyword nodes
// linked by a relation matrix, with brute-force similarity search and
// single-file persistence.
package graph

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/musubi/config"
	"github.com/hyperjump/musubi/embedding"
	"github.com/hyperjump/musubi/keyword"
	"github.com/hyperjump/musubi/matrix"
	"github.com/hyperjump/musubi/models"
	"github.com/hyperjump/musubi/pkg/utils"
)

// Store owns the text node collection, the keyword node collection, and the
// relation matrix between them. Nodes are append-only: once created they are
// never removed or mutated, only their matrix cells change.
//
// Store is not safe for concurrent use with Build. Callers needing concurrent
// reads must ensure no Build runs for the duration.
type Store struct {
	cfg       config.Config
	embedder  embedding.Embedder
	extractor *keyword.Extractor

	texts    []*models.TextNode
	keywords []*models.KeywordNode
	rel      *matrix.Matrix

	// keywordIndex maps normalized keyword -> keyword node ID (matrix row).
	keywordIndex map[string]int
	// textIndex maps exact text -> text node ID; populated only when
	// cfg.DedupTexts is set.
	textIndex map[string]int

	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a logger for build and query events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithEmbedder replaces the default deterministic embedder. The embedder's
// dimension must match the configured embedding dimension.
func WithEmbedder(e embedding.Embedder) Option {
	return func(s *Store) { s.embedder = e }
}

// New creates an empty store from cfg. Defaults are applied to zero config
// values and the result is validated.
func New(cfg config.Config, opts ...Option) (*Store, error) {
	config.ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	s := &Store{
		cfg:          cfg,
		extractor:    keyword.NewExtractor(cfg.Extraction),
		rel:          matrix.New(),
		keywordIndex: make(map[string]int),
	}
	if cfg.DedupTexts {
		s.textIndex = make(map[string]int)
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.embedder == nil {
		e, err := embedding.NewDeterministic(cfg.EmbeddingDim, cfg.Seed)
		if err != nil {
			return nil, err
		}
		s.embedder = e
	}
	if s.embedder.Dimensions() != cfg.EmbeddingDim {
		return nil, &DimensionError{Got: s.embedder.Dimensions(), Want: cfg.EmbeddingDim}
	}
	return s, nil
}

// Build adds documents to the store, in input order. For each document a text
// node is created and the matrix gains a column; each extracted keyword
// resolves to an existing keyword node or creates one (and a matrix row).
//
// Weighting policy: the cell (keyword row, text column) holds the keyword's
// occurrence count in the document's filtered token stream, accumulated per
// occurrence.
//
// Build is additive: repeated calls append to existing state, never replace
// it. An empty slice is a no-op. A document with empty text still produces a
// text node and contributes no keyword rows. When DedupTexts is configured,
// a document whose exact text already has a node is skipped.
func (s *Store) Build(docs []models.Document) error {
	for i := range docs {
		if err := s.addDocument(&docs[i]); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
	}
	if s.logger != nil && len(docs) > 0 {
		s.logger.Info("graph build complete",
			zap.Int("documents", len(docs)),
			zap.Int("text_nodes", len(s.texts)),
			zap.Int("keyword_nodes", len(s.keywords)))
	}
	return nil
}

func (s *Store) addDocument(doc *models.Document) error {
	if s.textIndex != nil {
		if id, seen := s.textIndex[doc.Text]; seen {
			if s.logger != nil {
				s.logger.Debug("skipping duplicate text",
					zap.Int("existing_id", id),
					zap.String("text", utils.Truncate(doc.Text, 80)))
			}
			return nil
		}
	}

	emb, err := s.embedder.Embed(doc.Text)
	if err != nil {
		return fmt.Errorf("embed text: %w", err)
	}
	node := &models.TextNode{
		ID:         len(s.texts),
		Text:       doc.Text,
		Source:     doc.Source,
		Embedding:  emb,
		TokenCount: len(strings.Fields(doc.Text)),
	}
	s.texts = append(s.texts, node)
	col := s.rel.AddColumn()
	if s.textIndex != nil {
		s.textIndex[doc.Text] = node.ID
	}

	for _, kw := range s.extractor.ExtractCounts(doc.Text) {
		row, ok := s.keywordIndex[kw.Term]
		if !ok {
			kwEmb, err := s.embedder.Embed(kw.Term)
			if err != nil {
				return fmt.Errorf("embed keyword %q: %w", kw.Term, err)
			}
			row = s.rel.AddRow()
			s.keywords = append(s.keywords, &models.KeywordNode{
				ID:        row,
				Keyword:   kw.Term,
				Embedding: kwEmb,
			})
			s.keywordIndex[kw.Term] = row
		}
		if err := s.rel.Add(row, col, float32(kw.Count)); err != nil {
			return fmt.Errorf("relation matrix: %w", err)
		}
	}

	if s.logger != nil {
		s.logger.Debug("text node added",
			zap.Int("id", node.ID),
			zap.String("filename", doc.Source.Filename),
			zap.String("text", utils.Truncate(doc.Text, 80)))
	}
	return nil
}

// EmbedText returns a query vector for text using the store's embedder.
func (s *Store) EmbedText(text string) ([]float32, error) {
	return s.embedder.Embed(text)
}

// Len returns the number of text nodes.
func (s *Store) Len() int {
	return len(s.texts)
}

// KeywordLen returns the number of keyword nodes.
func (s *Store) KeywordLen() int {
	return len(s.keywords)
}

// Config returns the store's configuration.
func (s *Store) Config() config.Config {
	return s.cfg
}

// TextNodes returns the text nodes in insertion order. The slice is a copy;
// the nodes are shared and must not be mutated.
func (s *Store) TextNodes() []*models.TextNode {
	out := make([]*models.TextNode, len(s.texts))
	copy(out, s.texts)
	return out
}

// KeywordNodes returns the keyword nodes in insertion order. The slice is a
// copy; the nodes are shared and must not be mutated.
func (s *Store) KeywordNodes() []*models.KeywordNode {
	out := make([]*models.KeywordNode, len(s.keywords))
	copy(out, s.keywords)
	return out
}

// Matrix returns a row-major copy of the relation matrix.
func (s *Store) Matrix() [][]float32 {
	return s.rel.Dense()
}
