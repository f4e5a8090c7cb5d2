// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extractor

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/docstruct/pkg/types"
)

// fakeExtractor returns canned text or an error.
type fakeExtractor struct {
	output string
	err    error
}

func (f *fakeExtractor) Extract(srcPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func TestExtractFile(t *testing.T) {
	docsDir := t.TempDir()
	src := filepath.Join(docsDir, "scan-01.pdf")
	if err := os.WriteFile(src, []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	e := &fakeExtractor{output: "extracted text body"}
	if err := ExtractFile(e, src, docsDir, &log); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(docsDir, "raw", "scan-01.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "extracted text body" {
		t.Errorf("raw output = %q", data)
	}
	if !strings.Contains(log.String(), "extracted: scan-01") {
		t.Errorf("log = %q", log.String())
	}
}

func TestExtractBatch(t *testing.T) {
	docsDir := t.TempDir()
	good := filepath.Join(docsDir, "a.pdf")
	bad := filepath.Join(docsDir, "b.pdf")
	pre := filepath.Join(docsDir, "c.pdf")
	for _, p := range []string{good, bad, pre} {
		if err := os.WriteFile(p, []byte("%PDF"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Pre-existing raw output for c.pdf.
	if err := os.MkdirAll(filepath.Join(docsDir, "raw"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(docsDir, "raw", "c.txt"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	calls := 0
	e := extractorFunc(func(srcPath string) (string, error) {
		calls++
		if srcPath == bad {
			return "", errors.New("conversion crashed")
		}
		return "text", nil
	})

	var log bytes.Buffer
	result := ExtractBatch(e, []string{good, bad, pre}, docsDir, &log)

	if result.Extracted != 1 || result.Failed != 1 || result.Skipped != 1 {
		t.Errorf("result = %+v", result)
	}
	if !result.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
	if calls != 2 {
		t.Errorf("extractor called %d times, want 2 (skipped file must not be extracted)", calls)
	}
	if !strings.Contains(log.String(), "Batch summary: 1 extracted, 1 skipped, 1 failed (total: 3)") {
		t.Errorf("log = %q", log.String())
	}
}

type extractorFunc func(string) (string, error)

func (f extractorFunc) Extract(srcPath string) (string, error) { return f(srcPath) }

func TestNewSelectsBackend(t *testing.T) {
	e, err := New(types.ExtractionConfig{Backend: types.BackendPlain})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := e.(PlainExtractor); !ok {
		t.Errorf("got %T, want PlainExtractor", e)
	}

	if _, err := New(types.ExtractionConfig{Backend: "tesseract"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestPlainExtractor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := PlainExtractor{}.Extract(path)
	if err != nil {
		t.Fatal(err)
	}
	if text != "hello" {
		t.Errorf("text = %q", text)
	}

	if _, err := (PlainExtractor{}).Extract(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

// mockRunner simulates container binary behavior.
type mockRunner struct {
	bins     map[string]bool
	commands map[string]bool
	pipeFn   func(bin string, args []string, stdin io.Reader, stdout io.Writer) error
}

func (m *mockRunner) look(bin string) error {
	if m.bins[bin] {
		return nil
	}
	return errors.New("not found: " + bin)
}

func (m *mockRunner) silent(bin string, args ...string) error {
	key := bin + " " + strings.Join(args, " ")
	if m.commands[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockRunner) piped(bin string, args []string, stdin io.Reader, stdout io.Writer) error {
	if m.pipeFn != nil {
		return m.pipeFn(bin, args, stdin, stdout)
	}
	return nil
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		run      *mockRunner
		wantName string
		wantErr  bool
	}{
		{
			name: "docker preferred",
			run: &mockRunner{
				bins:     map[string]bool{"docker": true, "podman": true},
				commands: map[string]bool{"docker info": true, "podman info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback",
			run: &mockRunner{
				bins:     map[string]bool{"podman": true},
				commands: map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "docker present but not operational",
			run: &mockRunner{
				bins:     map[string]bool{"docker": true, "podman": true},
				commands: map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name:    "neither available",
			run:     &mockRunner{bins: map[string]bool{}, commands: map[string]bool{}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(tt.run)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if rt.Name() != tt.wantName {
				t.Errorf("runtime = %q, want %q", rt.Name(), tt.wantName)
			}
		})
	}
}

func TestMarkitdownExtractor(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(src, []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}

	run := &mockRunner{
		bins:     map[string]bool{"docker": true},
		commands: map[string]bool{"docker info": true, "docker image inspect markitdown:latest": true},
		pipeFn: func(bin string, args []string, stdin io.Reader, stdout io.Writer) error {
			io.Copy(io.Discard, stdin)
			stdout.Write([]byte("converted markdown"))
			return nil
		},
	}
	rt, err := detectRuntime(run)
	if err != nil {
		t.Fatal(err)
	}

	m, err := NewMarkitdownExtractor(rt)
	if err != nil {
		t.Fatal(err)
	}
	text, err := m.Extract(src)
	if err != nil {
		t.Fatal(err)
	}
	if text != "converted markdown" {
		t.Errorf("text = %q", text)
	}
}

func TestMarkitdownImageMissing(t *testing.T) {
	run := &mockRunner{
		bins:     map[string]bool{"docker": true},
		commands: map[string]bool{"docker info": true},
	}
	rt, err := detectRuntime(run)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewMarkitdownExtractor(rt); err == nil {
		t.Error("expected error when image is missing")
	}
}
