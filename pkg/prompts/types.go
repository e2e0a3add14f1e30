package prompts

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/ilkoid/localgen/pkg/prompts/sources"
)

// ErrNotFound возвращается (обёрнутым) когда источник не содержит промпт.
var ErrNotFound = sources.ErrNotFound

// PromptFile — содержимое загруженного промпта.
//
// Используется всеми реализациями PromptSource интерфейса.
type PromptFile struct {
	// Template — текст промпта с плейсхолдерами {{.variable}}
	Template string `yaml:"template"`

	// Config — параметры генерации, привязанные к промпту
	Config PromptConfig `yaml:"config"`

	// Variables — значения переменных шаблона по умолчанию
	Variables map[string]string `yaml:"variables"`

	// Metadata — метаданные промпта
	Metadata map[string]any `yaml:"metadata"`
}

// PromptConfig - настройки генерации для конкретного промпта
type PromptConfig struct {
	Model       string   `yaml:"model"` // Алиас модели из реестра моделей
	MaxTokens   int      `yaml:"max_tokens"`
	Temperature float64  `yaml:"temperature"`
	Stop        []string `yaml:"stop"`
}

// Render подставляет переменные в шаблон промпта и возвращает готовый текст.
//
// vars накладываются поверх Variables из файла: значение вызова побеждает
// значение по умолчанию. Используется text/template, поэтому плейсхолдеры
// пишутся как {{.name}}.
func (pf *PromptFile) Render(vars map[string]string) (string, error) {
	merged := make(map[string]string, len(pf.Variables)+len(vars))
	for k, v := range pf.Variables {
		merged[k] = v
	}
	for k, v := range vars {
		merged[k] = v
	}

	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(pf.Template)
	if err != nil {
		return "", fmt.Errorf("template parse error: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, merged); err != nil {
		return "", fmt.Errorf("template execute error: %w", err)
	}

	return buf.String(), nil
}
