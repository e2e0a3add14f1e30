package sources

import (
	"errors"
	"testing"
)

// TestDefaultSourcePopulate тестирует набор встроенных промптов.
func TestDefaultSourcePopulate(t *testing.T) {
	source := NewDefaultSource()
	source.PopulateDefaults()

	for _, id := range []string{"passthrough", "summarize", "continue_story"} {
		data, err := source.Load(id)
		if err != nil {
			t.Errorf("Load(%q) error = %v", id, err)
			continue
		}
		if data.Template == "" {
			t.Errorf("Load(%q): empty template", id)
		}
	}
}

// TestDefaultSourcePassthrough тестирует сквозной промпт.
func TestDefaultSourcePassthrough(t *testing.T) {
	data := GetDefaultPassthroughPrompt()

	if data.Template != "{{.input}}" {
		t.Errorf("Template = %q, want '{{.input}}'", data.Template)
	}
	if data.Metadata["source"] != "go-default" {
		t.Errorf("Metadata[source] = %v, want 'go-default'", data.Metadata["source"])
	}
}

// TestDefaultSourceAddAndLoad тестирует регистрацию собственного промпта.
func TestDefaultSourceAddAndLoad(t *testing.T) {
	source := NewDefaultSource()
	source.AddPrompt("custom", &PromptData{Template: "custom template"})

	data, err := source.Load("custom")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if data.Template != "custom template" {
		t.Errorf("Template = %q", data.Template)
	}
}

// TestDefaultSourceNotFound тестирует ErrNotFound.
func TestDefaultSourceNotFound(t *testing.T) {
	source := NewDefaultSource()

	_, err := source.Load("ghost")
	if err == nil {
		t.Fatal("Load() expected error, got nil")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want wrapped ErrNotFound", err)
	}
}

// TestDefaultSourceList тестирует сортированное перечисление.
func TestDefaultSourceList(t *testing.T) {
	source := NewDefaultSource()
	source.AddPrompt("zeta", &PromptData{Template: "z"})
	source.AddPrompt("alpha", &PromptData{Template: "a"})

	ids, err := source.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{"alpha", "zeta"}
	if len(ids) != len(want) {
		t.Fatalf("List() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}
