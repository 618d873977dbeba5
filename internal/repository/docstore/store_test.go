package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/quorail/docshelf/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func load(t *testing.T, dir string, opts Options) *Store {
	t.Helper()
	store, err := Load(context.Background(), dir, opts, zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return store
}

const policyA = `type: SOP
document_no: "001"
effective_date: "2024-01-01"
document_rev: "1"
title: Access Control
document_code: AC-1
purpose:
  - "control access\n"
revision_history: []
prepared_by: []
reviewed_approved_by: []
`

func TestLoad_SingleDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "policy_a.yml", policyA)

	store := load(t, dir, Options{})

	if store.Len() != 1 {
		t.Fatalf("expected 1 document, got %d", store.Len())
	}

	doc, err := store.Get("policy_a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	purpose, ok := doc.Section("purpose")
	if !ok {
		t.Fatal("purpose section missing")
	}
	b, err := json.Marshal(purpose)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `["control access"]` {
		t.Errorf("purpose = %s, want [\"control access\"] (newline stripped)", b)
	}
}

func TestLoad_SkipsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.yml", "title: ok\n")
	writeFile(t, dir, "broken.yml", "title: [unclosed\n")

	store := load(t, dir, Options{})

	if store.Len() != 1 {
		t.Fatalf("expected 1 document, got %d", store.Len())
	}
	if store.Skipped() != 1 {
		t.Errorf("expected 1 skipped file, got %d", store.Skipped())
	}
	if _, err := store.Get("good"); err != nil {
		t.Errorf("good document missing: %v", err)
	}
	if _, err := store.Get("broken"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound for broken, got %v", err)
	}
}

func TestLoad_IgnoresOtherExtensionsAndDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.yml", "title: ok\n")
	writeFile(t, dir, "notes.txt", "not yaml")
	if err := os.Mkdir(filepath.Join(dir, "nested.yml"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	store := load(t, dir, Options{})

	if store.Len() != 1 {
		t.Fatalf("expected 1 document, got %d", store.Len())
	}
}

func TestLoad_DuplicateNameKeepsFirstFile(t *testing.T) {
	// Both normalize to "report"; sorted order makes report.draft.yml first.
	dir := t.TempDir()
	writeFile(t, dir, "report.draft.yml", "title: draft\n")
	writeFile(t, dir, "report.yml", "title: final\n")

	store := load(t, dir, Options{})

	if store.Len() != 1 {
		t.Fatalf("expected 1 document, got %d", store.Len())
	}
	doc, err := store.Get("report")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	title, _ := doc.Section("title")
	if s, _ := title.AsString(); s != "draft" {
		t.Errorf("title = %q, want %q (lexically first file wins)", s, "draft")
	}
	if store.Skipped() != 1 {
		t.Errorf("expected 1 skipped file, got %d", store.Skipped())
	}
}

func TestLoad_ManyFilesThroughPool(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	for _, n := range names {
		writeFile(t, dir, n+".yml", "title: "+n+"\n")
	}

	store := load(t, dir, Options{Workers: 3})

	if store.Len() != len(names) {
		t.Fatalf("expected %d documents, got %d", len(names), store.Len())
	}
	got := store.Names()
	for i, n := range names {
		if got[i] != n {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], n)
		}
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent"), Options{}, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.yml", "title: ok\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, dir, Options{}, zap.NewNop())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDeriveName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"yml/policy_a.yml", "policy_a"},
		{"policy.b.yml", "policy"},
		{"/abs/path/doc.yml", "doc"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := DeriveName(tt.path); got != tt.want {
			t.Errorf("DeriveName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	dir := t.TempDir()
	store := load(t, dir, Options{})

	_, err := store.Get("unknown_doc")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}
