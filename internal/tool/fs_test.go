package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func invoke(t *testing.T, tool Tool, args string) string {
	t.Helper()
	out, err := tool.Invoke(context.Background(), json.RawMessage(args))
	if err != nil {
		t.Fatalf("Invoke() error: %v", err)
	}
	return out
}

func TestReadTool(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "file contents here")

	out := invoke(t, Read(), fmt.Sprintf(`{"path":%q}`, path))
	if out != "file contents here" {
		t.Errorf("read = %q", out)
	}
}

func TestReadToolMissingFile(t *testing.T) {
	out := invoke(t, Read(), `{"path":"/nonexistent/file.txt"}`)
	if !strings.Contains(out, "Error reading file") {
		t.Errorf("read missing file = %q, want error message", out)
	}
}

func TestReadToolMalformedArgs(t *testing.T) {
	_, err := Read().Invoke(context.Background(), json.RawMessage(`{"path": 42}`))
	if err == nil {
		t.Fatal("expected decode error for non-string path")
	}
}

func TestLsTool(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "x")
	writeFile(t, dir, "a.txt", "x")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	out := invoke(t, Ls(), fmt.Sprintf(`{"path":%q}`, dir))
	lines := strings.Split(out, "\n")
	want := []string{"f a.txt", "f b.txt", "d sub"}
	if len(lines) != len(want) {
		t.Fatalf("ls returned %d lines, want %d: %q", len(lines), len(want), out)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("ls line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestLsToolRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("sub", "deep.txt"), "x")

	out := invoke(t, Ls(), fmt.Sprintf(`{"path":%q,"depth":2}`, dir))
	if !strings.Contains(out, "deep.txt") {
		t.Errorf("recursive ls missing nested file: %q", out)
	}
}

func TestGlobTool(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main")
	writeFile(t, dir, filepath.Join("pkg", "util.go"), "package pkg")
	writeFile(t, dir, "README.md", "docs")

	out := invoke(t, Glob(), fmt.Sprintf(`{"path":%q,"pattern":"**/*.go"}`, dir))
	if !strings.Contains(out, "main.go") || !strings.Contains(out, "util.go") {
		t.Errorf("glob missing expected matches: %q", out)
	}
	if strings.Contains(out, "README.md") {
		t.Errorf("glob matched non-go file: %q", out)
	}
}

func TestGlobToolInvalidPattern(t *testing.T) {
	out := invoke(t, Glob(), `{"path":".","pattern":"[unclosed"}`)
	if !strings.Contains(out, "Invalid glob pattern") {
		t.Errorf("glob with bad pattern = %q, want rejection", out)
	}
}

func TestGlobFilesRelativeMatching(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("a", "b", "c.txt"), "x")

	matches, err := GlobFiles(dir, "a/**/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("GlobFiles() = %v, want one match", matches)
	}
}
