package sources

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writePrompt записывает YAML-файл промпта в каталог теста.
func writePrompt(t *testing.T, dir, id, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, id+".yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write prompt file: %v", err)
	}
}

// TestFileSourceLoad тестирует загрузку промпта из YAML-файла.
func TestFileSourceLoad(t *testing.T) {
	dir := t.TempDir()
	writePrompt(t, dir, "greeting", `
template: "Hello, {{.name}}!"
config:
  model: "local"
  max_tokens: 100
  temperature: 0.5
  stop:
    - "###"
variables:
  name: "world"
metadata:
  author: "tests"
`)

	source := NewFileSource(dir)
	data, err := source.Load("greeting")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if data.Template != "Hello, {{.name}}!" {
		t.Errorf("Template = %q", data.Template)
	}
	if data.Config.Model != "local" {
		t.Errorf("Config.Model = %q, want 'local'", data.Config.Model)
	}
	if data.Config.MaxTokens != 100 {
		t.Errorf("Config.MaxTokens = %d, want 100", data.Config.MaxTokens)
	}
	if len(data.Config.Stop) != 1 || data.Config.Stop[0] != "###" {
		t.Errorf("Config.Stop = %v, want [###]", data.Config.Stop)
	}
	if data.Variables["name"] != "world" {
		t.Errorf("Variables[name] = %q, want 'world'", data.Variables["name"])
	}
	if data.Metadata["author"] != "tests" {
		t.Errorf("Metadata[author] = %v, want 'tests'", data.Metadata["author"])
	}
}

// TestFileSourceLoadNotFound тестирует ErrNotFound для отсутствующего файла.
func TestFileSourceLoadNotFound(t *testing.T) {
	source := NewFileSource(t.TempDir())

	_, err := source.Load("ghost")
	if err == nil {
		t.Fatal("Load() expected error, got nil")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want wrapped ErrNotFound", err)
	}
}

// TestFileSourceLoadBrokenYAML тестирует ошибку парсинга.
func TestFileSourceLoadBrokenYAML(t *testing.T) {
	dir := t.TempDir()
	writePrompt(t, dir, "broken", "template: [unclosed")

	source := NewFileSource(dir)
	_, err := source.Load("broken")
	if err == nil {
		t.Fatal("Load() expected parse error, got nil")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("parse error must not be ErrNotFound")
	}
}

// TestFileSourceList тестирует перечисление промптов в каталоге.
func TestFileSourceList(t *testing.T) {
	dir := t.TempDir()
	writePrompt(t, dir, "beta", "template: b")
	writePrompt(t, dir, "alpha", "template: a")
	// Не-YAML файлы игнорируются
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	source := NewFileSource(dir)
	ids, err := source.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{"alpha", "beta"}
	if len(ids) != len(want) {
		t.Fatalf("List() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

// TestFileSourceListMissingDir тестирует отсутствующий каталог.
func TestFileSourceListMissingDir(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "does-not-exist"))

	ids, err := source.List()
	if err != nil {
		t.Fatalf("List() error = %v, want nil for missing dir", err)
	}
	if len(ids) != 0 {
		t.Errorf("List() = %v, want empty", ids)
	}
}
