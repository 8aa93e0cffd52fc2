// Package loader turns files into documents with source provenance, ready for
// graph construction.
package loader

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/musubi/extract"
	"github.com/hyperjump/musubi/models"
)

// Default chunking values, in words.
const (
	DefaultChunkSize    = 512
	DefaultChunkOverlap = 50
)

// Loader reads files, extracts their text, and splits it into documents
// carrying SourceInfo (filename, page number, file type, chunk index).
// Output order is deterministic: walk order, then page order, then chunk order.
type Loader struct {
	extractor *extract.Extractor
	chunker   *Chunker
	logger    *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets a logger for per-file debug output.
func WithLogger(l *zap.Logger) Option {
	return func(ld *Loader) { ld.logger = l }
}

// NewLoader creates a loader with the given chunk size and overlap (in
// words). Non-positive chunkSize selects the default; a negative overlap is
// treated as zero.
func NewLoader(chunkSize, chunkOverlap int, opts ...Option) *Loader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	ld := &Loader{
		extractor: extract.NewExtractor(),
		chunker:   NewChunker(chunkSize, chunkOverlap),
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// LoadFile extracts path's text and returns its documents. Each page becomes
// one or more documents; pages whose text is empty after preprocessing are
// skipped. ChunkIdx is set only when a page splits into multiple chunks.
func (ld *Loader) LoadFile(path string) ([]models.Document, error) {
	pages, err := ld.extractor.Extract(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	filename := filepath.Base(path)
	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	docs := make([]models.Document, 0, len(pages))
	for _, page := range pages {
		text := Preprocess(page.Text)
		if text == "" {
			continue
		}
		chunks := ld.chunker.Chunk(text)
		for i, chunk := range chunks {
			source := models.SourceInfo{
				Filename: filename,
				PageNum:  page.PageNum,
				FileType: fileType,
			}
			if len(chunks) > 1 {
				idx := i
				source.ChunkIdx = &idx
			}
			docs = append(docs, models.Document{Text: chunk, Source: source})
		}
	}
	if ld.logger != nil {
		ld.logger.Debug("file loaded",
			zap.String("path", path),
			zap.Int("pages", len(pages)),
			zap.Int("documents", len(docs)))
	}
	return docs, nil
}

// LoadDir walks dir and loads every regular file whose extension is in exts
// (case-insensitive, with or without leading dot). An empty exts list loads
// every file. Returns the documents of all loaded files in walk order.
func (ld *Loader) LoadDir(dir string, exts []string) ([]models.Document, error) {
	allowed := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		allowed[e] = struct{}{}
	}

	var docs []models.Document
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if len(allowed) > 0 {
			if _, ok := allowed[strings.ToLower(filepath.Ext(path))]; !ok {
				return nil
			}
		}
		fileDocs, err := ld.LoadFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, fileDocs...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load dir %s: %w", dir, err)
	}
	if ld.logger != nil {
		ld.logger.Info("directory loaded",
			zap.String("dir", dir),
			zap.Int("documents", len(docs)))
	}
	return docs, nil
}
