package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/musubi/config"
	"github.com/hyperjump/musubi/matrix"
	"github.com/hyperjump/musubi/models"
)

// snapshotVersion is the persisted format version. Load rejects snapshots
// with a different version.
const snapshotVersion = 1

// snapshot is the persisted form of a store: one JSON document holding the
// configuration, both node collections in insertion order, and the relation
// matrix as a dense row-major table.
type snapshot struct {
	Version      int                   `json:"version"`
	SnapshotID   string                `json:"snapshot_id"`
	CreatedAt    time.Time             `json:"created_at"`
	Config       config.Config         `json:"config"`
	TextNodes    []*models.TextNode    `json:"text_nodes"`
	KeywordNodes []*models.KeywordNode `json:"keyword_nodes"`
	Matrix       matrixSnapshot        `json:"matrix"`
}

type matrixSnapshot struct {
	Rows int         `json:"rows"`
	Cols int         `json:"cols"`
	Data [][]float32 `json:"data"`
}

// Save serializes the full store state to one JSON document at path,
// creating the parent directory if needed. Everything Load needs to
// reconstruct an identical store is included.
func (s *Store) Save(path string) error {
	snap := snapshot{
		Version:      snapshotVersion,
		SnapshotID:   uuid.New().String(),
		CreatedAt:    time.Now().UTC(),
		Config:       s.cfg,
		TextNodes:    s.texts,
		KeywordNodes: s.keywords,
		Matrix: matrixSnapshot{
			Rows: s.rel.Rows(),
			Cols: s.rel.Cols(),
			Data: s.rel.Dense(),
		},
	}
	data, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("snapshot saved",
			zap.String("path", path),
			zap.Int("text_nodes", len(s.texts)),
			zap.Int("keyword_nodes", len(s.keywords)))
	}
	return nil
}

// Load reads a snapshot from path and reconstructs the store it was saved
// from: identical node IDs, text, source info, embeddings, and matrix
// entries. An unreadable file yields a wrapped IO error; malformed or
// inconsistent content yields a ParseError and no store.
func Load(path string, opts ...Option) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &ParseError{Path: path, Reason: "invalid JSON", Err: err}
	}
	if snap.Version != snapshotVersion {
		return nil, parseErrorf(path, "unsupported version %d, expected %d", snap.Version, snapshotVersion)
	}
	dim := snap.Config.EmbeddingDim
	if dim <= 0 {
		return nil, parseErrorf(path, "embedding dimension %d is not positive", dim)
	}
	for i, node := range snap.TextNodes {
		if node == nil {
			return nil, parseErrorf(path, "text node %d is null", i)
		}
		if node.ID != i {
			return nil, parseErrorf(path, "text node at position %d has id %d", i, node.ID)
		}
		if len(node.Embedding) != dim {
			return nil, parseErrorf(path, "text node %d embedding has length %d, expected %d", i, len(node.Embedding), dim)
		}
	}
	seen := make(map[string]struct{}, len(snap.KeywordNodes))
	for i, node := range snap.KeywordNodes {
		if node == nil {
			return nil, parseErrorf(path, "keyword node %d is null", i)
		}
		if node.ID != i {
			return nil, parseErrorf(path, "keyword node at position %d has id %d", i, node.ID)
		}
		if len(node.Embedding) != dim {
			return nil, parseErrorf(path, "keyword node %d embedding has length %d, expected %d", i, len(node.Embedding), dim)
		}
		if _, dup := seen[node.Keyword]; dup {
			return nil, parseErrorf(path, "duplicate keyword %q", node.Keyword)
		}
		seen[node.Keyword] = struct{}{}
	}
	if snap.Matrix.Rows != len(snap.KeywordNodes) {
		return nil, parseErrorf(path, "matrix has %d rows, expected %d keyword rows", snap.Matrix.Rows, len(snap.KeywordNodes))
	}
	if snap.Matrix.Cols != len(snap.TextNodes) {
		return nil, parseErrorf(path, "matrix has %d cols, expected %d text cols", snap.Matrix.Cols, len(snap.TextNodes))
	}
	rel, err := matrix.FromDense(snap.Matrix.Data, snap.Matrix.Rows, snap.Matrix.Cols)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: "invalid matrix table", Err: err}
	}

	s, err := New(snap.Config, opts...)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: "invalid config", Err: err}
	}
	s.texts = snap.TextNodes
	s.keywords = snap.KeywordNodes
	s.rel = rel
	for _, node := range snap.KeywordNodes {
		s.keywordIndex[node.Keyword] = node.ID
	}
	if s.textIndex != nil {
		for _, node := range snap.TextNodes {
			if _, ok := s.textIndex[node.Text]; !ok {
				s.textIndex[node.Text] = node.ID
			}
		}
	}
	if s.logger != nil {
		s.logger.Info("snapshot loaded",
			zap.String("path", path),
			zap.Int("text_nodes", len(s.texts)),
			zap.Int("keyword_nodes", len(s.keywords)))
	}
	return s, nil
}
