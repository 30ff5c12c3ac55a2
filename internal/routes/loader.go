package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Cause records why a document load produced what it did. The pipelines
// never fail on a bad input file; they degrade to an empty document and the
// cause tells diagnostics (and tests) apart.
type Cause int

const (
	CauseOK Cause = iota
	CauseMissing
	CauseEmpty
	CauseMalformed
	CauseUnreadable
)

func (c Cause) String() string {
	switch c {
	case CauseOK:
		return "ok"
	case CauseMissing:
		return "missing"
	case CauseEmpty:
		return "empty"
	case CauseMalformed:
		return "malformed"
	case CauseUnreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// Document is one parsed metadata JSON file: a mapping from route id to that
// route's detail mapping.
type Document struct {
	Path    string
	Entries map[string]map[string]interface{}
	Cause   Cause
}

func (d Document) Empty() bool { return len(d.Entries) == 0 }

// LoadDocument parses the JSON file at path. Missing, empty and malformed
// files all come back as an empty document with the cause recorded; nothing
// escapes this boundary as an error.
func LoadDocument(path string) Document {
	doc := Document{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			doc.Cause = CauseMissing
			return doc
		}
		fmt.Printf("⚠️  Failed to read %s: %v\n", path, err)
		doc.Cause = CauseUnreadable
		return doc
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		doc.Cause = CauseEmpty
		return doc
	}

	var entries map[string]map[string]interface{}
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		fmt.Printf("⚠️  Failed to decode JSON from %s: %v\n", path, err)
		doc.Cause = CauseMalformed
		return doc
	}
	if len(entries) == 0 {
		doc.Cause = CauseEmpty
		return doc
	}

	doc.Entries = entries
	doc.Cause = CauseOK
	return doc
}

// MergeDocuments overlays same-keyed documents with first-non-empty-wins
// precedence in argument order.
func MergeDocuments(docs ...Document) map[string]map[string]interface{} {
	merged := make(map[string]map[string]interface{})
	for _, doc := range docs {
		for id, detail := range doc.Entries {
			if len(detail) == 0 {
				continue
			}
			if _, ok := merged[id]; !ok {
				merged[id] = detail
			}
		}
	}
	return merged
}

// SourceSet locates the raw metadata under the training and evaluation
// roots. Each document kind has up to three candidates, in precedence order
// build → apply → eval.
type SourceSet struct {
	TrainingDir string
	EvalDir     string
}

func (s SourceSet) RoutePaths() []string {
	return []string{
		filepath.Join(s.TrainingDir, "model_build_inputs", "route_data.json"),
		filepath.Join(s.TrainingDir, "model_apply_inputs", "new_route_data.json"),
		filepath.Join(s.EvalDir, "model_apply_inputs", "eval_route_data.json"),
	}
}

func (s SourceSet) PackagePaths() []string {
	return []string{
		filepath.Join(s.TrainingDir, "model_build_inputs", "package_data.json"),
		filepath.Join(s.TrainingDir, "model_apply_inputs", "new_package_data.json"),
		filepath.Join(s.EvalDir, "model_apply_inputs", "eval_package_data.json"),
	}
}

func (s SourceSet) SequencePaths() []string {
	return []string{
		filepath.Join(s.TrainingDir, "model_build_inputs", "actual_sequences.json"),
		filepath.Join(s.TrainingDir, "model_score_inputs", "new_actual_sequences.json"),
		filepath.Join(s.EvalDir, "model_score_inputs", "eval_actual_sequences.json"),
	}
}

// Inputs holds every loaded document, grouped by kind, precedence order
// preserved.
type Inputs struct {
	RouteDocs    []Document
	PackageDocs  []Document
	SequenceDocs []Document
}

// LoadInputs reads all nine candidate documents.
func LoadInputs(src SourceSet) Inputs {
	return Inputs{
		RouteDocs:    loadAll(src.RoutePaths()),
		PackageDocs:  loadAll(src.PackagePaths()),
		SequenceDocs: loadAll(src.SequencePaths()),
	}
}

func loadAll(paths []string) []Document {
	docs := make([]Document, 0, len(paths))
	for _, p := range paths {
		docs = append(docs, LoadDocument(p))
	}
	return docs
}

// Routes merges the route documents, first-non-empty-wins.
func (in Inputs) Routes() map[string]map[string]interface{} {
	return MergeDocuments(in.RouteDocs...)
}

// Packages merges the package documents, first-non-empty-wins.
func (in Inputs) Packages() map[string]map[string]interface{} {
	return MergeDocuments(in.PackageDocs...)
}

// Sequences merges the sequence documents, first-non-empty-wins.
func (in Inputs) Sequences() map[string]map[string]interface{} {
	return MergeDocuments(in.SequenceDocs...)
}
