// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/patent-corpus/pkg/types"
)

func TestTermFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.yaml")
	terms := []string{"cannabis", "hemp"}
	classifications := []string{"A61K31/05"}

	if err := WriteTermFile(path, terms, classifications); err != nil {
		t.Fatalf("WriteTermFile: %v", err)
	}

	tf, err := LoadTermFile(path)
	if err != nil {
		t.Fatalf("LoadTermFile: %v", err)
	}
	if len(tf.Terms) != 2 || tf.Terms[0] != "cannabis" {
		t.Errorf("Terms = %v", tf.Terms)
	}
	if len(tf.Classifications) != 1 || tf.Classifications[0] != "A61K31/05" {
		t.Errorf("Classifications = %v", tf.Classifications)
	}
}

func TestLoadTermFileEmptyTerms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.yaml")
	if err := os.WriteFile(path, []byte("classifications: [A61K31/05]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTermFile(path); err == nil {
		t.Fatal("expected error for term file without terms")
	}
}

func TestLoadTermFileMissing(t *testing.T) {
	if _, err := LoadTermFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyTermFile(t *testing.T) {
	cfg := types.DefaultPipelineConfig()
	ApplyTermFile(&cfg, TermFile{Terms: []string{"hemp"}})

	if len(cfg.Terms) != 1 || cfg.Terms[0] != "hemp" {
		t.Errorf("Terms = %v", cfg.Terms)
	}
	// Classifications keep their defaults when the file omits them.
	if len(cfg.Classifications) == 0 {
		t.Error("Classifications were erased")
	}
}
