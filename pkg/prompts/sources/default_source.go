package sources

import (
	"fmt"
	"sort"
)

// DefaultSource — загрузка встроенных (hardcoded) промптов.
//
// OCP Principle: Fallback source когда YAML файлы недоступны.
// YAML-first философия: файлы приоритетны, defaults — резерв.
type DefaultSource struct {
	// Встроенные промпты (map для простоты расширения)
	prompts map[string]*PromptData
}

// NewDefaultSource создаёт источник с Go defaults.
func NewDefaultSource() *DefaultSource {
	return &DefaultSource{
		prompts: make(map[string]*PromptData),
	}
}

// AddPrompt добавляет встроенный промпт.
func (s *DefaultSource) AddPrompt(id string, file *PromptData) {
	s.prompts[id] = file
}

// Load возвращает встроенный промпт или ErrNotFound.
func (s *DefaultSource) Load(promptID string) (*PromptData, error) {
	file, ok := s.prompts[promptID]
	if !ok {
		return nil, fmt.Errorf("default prompt '%s': %w", promptID, ErrNotFound)
	}
	return file, nil
}

// List возвращает отсортированные ID встроенных промптов.
func (s *DefaultSource) List() ([]string, error) {
	ids := make([]string, 0, len(s.prompts))
	for id := range s.prompts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// PopulateDefaults заполняет источник стандартными промптами.
func (s *DefaultSource) PopulateDefaults() {
	s.AddPrompt("passthrough", GetDefaultPassthroughPrompt())
	s.AddPrompt("summarize", GetDefaultSummarizePrompt())
	s.AddPrompt("continue_story", GetDefaultContinueStoryPrompt())
}

// GetDefaultPassthroughPrompt возвращает промпт-пустышку: вход отдаётся
// модели как есть.
//
// Exported функция для использования в registry factory.
func GetDefaultPassthroughPrompt() *PromptData {
	return &PromptData{
		Template: "{{.input}}",
		Metadata: map[string]any{
			"source":  "go-default",
			"version": "1.0",
		},
	}
}

// GetDefaultSummarizePrompt возвращает дефолтный промпт суммаризации.
func GetDefaultSummarizePrompt() *PromptData {
	return &PromptData{
		Template: `Summarize the following text in a few sentences.

Text:
{{.input}}

Summary:`,
		Config: GenerationConfig{
			Stop: []string{"\n\n"},
		},
		Metadata: map[string]any{
			"source":  "go-default",
			"version": "1.0",
		},
	}
}

// GetDefaultContinueStoryPrompt возвращает дефолтный промпт продолжения текста.
func GetDefaultContinueStoryPrompt() *PromptData {
	return &PromptData{
		Template: `{{.style}} Continue the story naturally from where it stops.

{{.input}}`,
		Variables: map[string]string{
			"style": "You are a fiction writer.",
		},
		Metadata: map[string]any{
			"source":  "go-default",
			"version": "1.0",
		},
	}
}
