// Package sources содержит реализации источников промптов.
//
// Источники возвращают сырой PromptData и не импортируют pkg/prompts,
// чтобы не создавать циклический импорт. Адаптация к prompts.PromptFile
// происходит в registry factory.
package sources

import "errors"

// ErrNotFound возвращается (обёрнутым), когда источник не содержит промпт.
// Проверяется через errors.Is.
var ErrNotFound = errors.New("prompt not found")

// PromptData — сырые данные промпта без импорта pkg/prompts.
//
// Теги двойные: YAML для file/s3 источников, JSON для database/api.
type PromptData struct {
	// Template — текст промпта с плейсхолдерами {{.variable}}
	Template string `yaml:"template" json:"template"`

	// Config — параметры генерации, привязанные к промпту
	Config GenerationConfig `yaml:"config" json:"config"`

	// Variables — значения переменных шаблона по умолчанию
	Variables map[string]string `yaml:"variables" json:"variables"`

	// Metadata — произвольные метаданные промпта
	Metadata map[string]any `yaml:"metadata" json:"metadata"`
}

// GenerationConfig — настройки генерации для конкретного промпта.
//
// Нулевые значения означают "взять дефолт модели".
type GenerationConfig struct {
	Model       string   `yaml:"model" json:"model"` // Алиас модели из реестра
	MaxTokens   int      `yaml:"max_tokens" json:"max_tokens"`
	Temperature float64  `yaml:"temperature" json:"temperature"`
	Stop        []string `yaml:"stop" json:"stop"` // Стоп-последовательности
}
