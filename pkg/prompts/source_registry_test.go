package prompts

import (
	"errors"
	"fmt"
	"testing"
)

// stubSource — источник с фиксированным набором промптов для тестов.
type stubSource struct {
	prompts map[string]*PromptFile
	loadErr error // если задана, Load всегда падает этой ошибкой
}

func (s *stubSource) Load(promptID string) (*PromptFile, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	file, ok := s.prompts[promptID]
	if !ok {
		return nil, fmt.Errorf("stub: prompt '%s': %w", promptID, ErrNotFound)
	}
	return file, nil
}

// listableStub — stubSource с перечислением.
type listableStub struct {
	stubSource
	ids []string
}

func (s *listableStub) List() ([]string, error) {
	return s.ids, nil
}

// TestSourceRegistryFallbackChain тестирует порядок опроса источников.
func TestSourceRegistryFallbackChain(t *testing.T) {
	registry := NewSourceRegistry()

	// Первый источник знает только "alpha"
	registry.AddSource(&stubSource{prompts: map[string]*PromptFile{
		"alpha": {Template: "from first"},
	}})
	// Второй знает "alpha" и "beta"
	registry.AddSource(&stubSource{prompts: map[string]*PromptFile{
		"alpha": {Template: "from second"},
		"beta":  {Template: "beta"},
	}})

	// "alpha" приходит из первого источника
	file, err := registry.Load("alpha")
	if err != nil {
		t.Fatalf("Load(alpha) error = %v", err)
	}
	if file.Template != "from first" {
		t.Errorf("Template = %q, want 'from first' (first source wins)", file.Template)
	}

	// "beta" — fallback на второй
	file, err = registry.Load("beta")
	if err != nil {
		t.Fatalf("Load(beta) error = %v", err)
	}
	if file.Template != "beta" {
		t.Errorf("Template = %q, want 'beta'", file.Template)
	}
}

// TestSourceRegistryBrokenSourceSkipped тестирует обход упавшего источника.
func TestSourceRegistryBrokenSourceSkipped(t *testing.T) {
	registry := NewSourceRegistry()

	registry.AddSource(&stubSource{loadErr: errors.New("disk on fire")})
	registry.AddSource(&stubSource{prompts: map[string]*PromptFile{
		"alpha": {Template: "survived"},
	}})

	file, err := registry.Load("alpha")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if file.Template != "survived" {
		t.Errorf("Template = %q, want 'survived'", file.Template)
	}
}

// TestSourceRegistryAllFailed тестирует ошибку когда все источники упали.
func TestSourceRegistryAllFailed(t *testing.T) {
	registry := NewSourceRegistry()
	registry.AddSource(&stubSource{prompts: map[string]*PromptFile{}})

	_, err := registry.Load("ghost")
	if err == nil {
		t.Fatal("Load() expected error, got nil")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want wrapped ErrNotFound", err)
	}
}

// TestSourceRegistryNoSources тестирует пустой реестр.
func TestSourceRegistryNoSources(t *testing.T) {
	registry := NewSourceRegistry()

	if registry.HasSources() {
		t.Error("HasSources() = true for empty registry")
	}
	if _, err := registry.Load("anything"); err == nil {
		t.Error("Load() expected error for empty registry")
	}
}

// TestSourceRegistryListIDs тестирует агрегацию ID с дедупликацией.
func TestSourceRegistryListIDs(t *testing.T) {
	registry := NewSourceRegistry()

	registry.AddSource(&listableStub{ids: []string{"beta", "alpha"}})
	// Источник без List() пропускается
	registry.AddSource(&stubSource{})
	registry.AddSource(&listableStub{ids: []string{"alpha", "gamma"}})

	ids, err := registry.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs() error = %v", err)
	}

	want := []string{"alpha", "beta", "gamma"}
	if len(ids) != len(want) {
		t.Fatalf("ListIDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ListIDs()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}
