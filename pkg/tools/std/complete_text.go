// Package std предоставляет стандартные инструменты для function-calling хостов.
//
// CompleteTextTool — генерация текста через completion endpoint.
package std

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ilkoid/localgen/pkg/component"
	"github.com/ilkoid/localgen/pkg/tools"
)

// CompleteTextTool — инструмент генерации текста.
//
// Оборачивает компонент генерации в контракт "Raw In, String Out":
// JSON-аргументы на входе, текст результата на выходе. Сбои генерации
// приходят текстом сообщения (Request Error / Data Processing Error),
// поэтому function-calling цикл хоста не прерывается.
type CompleteTextTool struct {
	comp *component.TextGeneration
}

// NewCompleteTextTool создает инструмент генерации текста.
//
// Параметры:
//   - comp: собранный компонент генерации
//
// Возвращает инструмент, готовый к регистрации в реестре.
func NewCompleteTextTool(comp *component.TextGeneration) *CompleteTextTool {
	return &CompleteTextTool{comp: comp}
}

// completeTextArgs — аргументы инструмента от хоста.
type completeTextArgs struct {
	Prompt      string            `json:"prompt"`
	PromptID    string            `json:"prompt_id"`
	Variables   map[string]string `json:"variables"`
	Model       string            `json:"model"`
	MaxTokens   int               `json:"max_tokens"`
	Temperature float64           `json:"temperature"`
	Stop        []string          `json:"stop"`
}

// Definition возвращает определение инструмента для function calling.
func (t *CompleteTextTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        "complete_text",
		Description: "Генерирует продолжение текста через локальный completion endpoint. Принимает готовый prompt или prompt_id шаблона с переменными.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prompt": map[string]any{
					"type":        "string",
					"description": "Готовый текст промпта. Побеждает prompt_id.",
				},
				"prompt_id": map[string]any{
					"type":        "string",
					"description": "Имя шаблона из источников промптов (например, 'summarize').",
				},
				"variables": map[string]any{
					"type":        "object",
					"description": "Значения плейсхолдеров шаблона.",
				},
				"model": map[string]any{
					"type":        "string",
					"description": "Алиас модели из реестра. Если не указан, используется модель по умолчанию.",
				},
				"max_tokens": map[string]any{
					"type":        "integer",
					"description": "Лимит длины ответа в токенах.",
				},
				"temperature": map[string]any{
					"type":        "number",
					"description": "Температура сэмплирования (0.0 - детерминированно).",
				},
				"stop": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Стоп-последовательности.",
				},
			},
			"required": []string{},
		},
	}
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
//
// Ошибка возвращается только при невалидных аргументах; сбои самой
// генерации отдаются текстом результата.
func (t *CompleteTextTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	var args completeTextArgs
	if argsJSON != "" {
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return "", fmt.Errorf("invalid complete_text arguments: %w", err)
		}
	}

	if args.Prompt == "" && args.PromptID == "" {
		return "", fmt.Errorf("complete_text requires 'prompt' or 'prompt_id'")
	}

	msg := t.comp.Run(ctx, component.Fields{
		Prompt:      args.Prompt,
		PromptID:    args.PromptID,
		Variables:   args.Variables,
		Model:       args.Model,
		MaxTokens:   args.MaxTokens,
		Temperature: args.Temperature,
		Stop:        args.Stop,
	})

	return msg.Content, nil
}
