package graph

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hyperjump/musubi/models"
)

func snapshotPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "graph.json")
}

func TestSaveLoad_roundTrip(t *testing.T) {
	page := 2
	s, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	docs := []models.Document{
		{Text: "cats are great pets", Source: models.SourceInfo{Filename: "pets.pdf", PageNum: &page, FileType: "pdf"}},
		{Text: "dogs are great pets too", Source: src("dogs.txt")},
		{Text: "", Source: src("empty.txt")},
	}
	if err := s.Build(docs); err != nil {
		t.Fatal(err)
	}

	path := snapshotPath(t)
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !reflect.DeepEqual(loaded.TextNodes(), s.TextNodes()) {
		t.Error("text nodes differ after round trip")
	}
	if !reflect.DeepEqual(loaded.KeywordNodes(), s.KeywordNodes()) {
		t.Error("keyword nodes differ after round trip")
	}
	if !reflect.DeepEqual(loaded.Matrix(), s.Matrix()) {
		t.Error("matrix differs after round trip")
	}
	if loaded.Config().EmbeddingDim != s.Config().EmbeddingDim {
		t.Error("config differs after round trip")
	}
}

func TestLoad_storeIsUsable(t *testing.T) {
	s, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Build([]models.Document{{Text: "reload and query me", Source: src("a.txt")}}); err != nil {
		t.Fatal(err)
	}
	path := snapshotPath(t)
	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	// Search works on the loaded store.
	query, err := loaded.EmbedText("reload and query me")
	if err != nil {
		t.Fatal(err)
	}
	results, err := loaded.Search(query, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Node.ID != 0 {
		t.Errorf("got %+v", results)
	}

	// Build is still additive on the loaded store, and keyword dedup
	// carries over (the lookup map is rebuilt on load).
	if err := loaded.Build([]models.Document{{Text: "reload again please", Source: src("b.txt")}}); err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 2 {
		t.Errorf("text nodes = %d, want 2", loaded.Len())
	}
	countReload := 0
	for _, node := range loaded.KeywordNodes() {
		if node.Keyword == "reload" {
			countReload++
		}
	}
	if countReload != 1 {
		t.Errorf("keyword %q has %d nodes after post-load build, want 1", "reload", countReload)
	}
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error")
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		t.Error("missing file should be an IO error, not a ParseError")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestLoad_invalidJSON(t *testing.T) {
	path := snapshotPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

// corruptSnapshot saves a valid store, applies corrupt to the decoded
// snapshot JSON, rewrites it, and returns the Load error.
func corruptSnapshot(t *testing.T, corrupt func(map[string]interface{})) error {
	t.Helper()
	s, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Build([]models.Document{
		{Text: "alpha bravo", Source: src("a.txt")},
		{Text: "bravo charlie", Source: src("b.txt")},
	}); err != nil {
		t.Fatal(err)
	}
	path := snapshotPath(t)
	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	corrupt(raw)
	data, err = json.Marshal(raw)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	_, loadErr := Load(path)
	return loadErr
}

func expectParseError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestLoad_unsupportedVersion(t *testing.T) {
	err := corruptSnapshot(t, func(raw map[string]interface{}) {
		raw["version"] = 99
	})
	expectParseError(t, err)
}

func TestLoad_dimensionMismatchInNode(t *testing.T) {
	err := corruptSnapshot(t, func(raw map[string]interface{}) {
		nodes := raw["text_nodes"].([]interface{})
		node := nodes[0].(map[string]interface{})
		node["embedding"] = []interface{}{0.5, 0.5}
	})
	expectParseError(t, err)
}

func TestLoad_matrixRowCountMismatch(t *testing.T) {
	err := corruptSnapshot(t, func(raw map[string]interface{}) {
		mat := raw["matrix"].(map[string]interface{})
		mat["rows"] = 99
	})
	expectParseError(t, err)
}

func TestLoad_raggedMatrix(t *testing.T) {
	err := corruptSnapshot(t, func(raw map[string]interface{}) {
		mat := raw["matrix"].(map[string]interface{})
		data := mat["data"].([]interface{})
		data[0] = []interface{}{1.0}
	})
	expectParseError(t, err)
}

func TestLoad_duplicateKeyword(t *testing.T) {
	err := corruptSnapshot(t, func(raw map[string]interface{}) {
		nodes := raw["keyword_nodes"].([]interface{})
		a := nodes[0].(map[string]interface{})
		b := nodes[1].(map[string]interface{})
		b["keyword"] = a["keyword"]
	})
	expectParseError(t, err)
}

func TestLoad_nonDenseIDs(t *testing.T) {
	err := corruptSnapshot(t, func(raw map[string]interface{}) {
		nodes := raw["text_nodes"].([]interface{})
		node := nodes[1].(map[string]interface{})
		node["id"] = 7
	})
	expectParseError(t, err)
}

func TestSave_createsParentDirectory(t *testing.T) {
	s, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "nested", "dir", "graph.json")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}
}

func TestSaveLoad_emptyStore(t *testing.T) {
	s, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	path := snapshotPath(t)
	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 0 || loaded.KeywordLen() != 0 {
		t.Errorf("got %d texts, %d keywords", loaded.Len(), loaded.KeywordLen())
	}
	results, err := loaded.Search(make([]float32, 8), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Error("empty loaded store should return no results")
	}
}
