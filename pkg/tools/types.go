// Контракт инструментов для function-calling хостов.

package tools

import "context"

// JSONSchema — схема аргументов инструмента (JSON Schema object).
//
// Типизированный алиас вместо interface{}. Форма соответствует
// Function Calling API.
type JSONSchema map[string]any

// ToolDefinition описывает инструмент для function-calling хоста.
type ToolDefinition struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  JSONSchema `json:"parameters"` // JSON Schema объекта аргументов
}

// Tool — контракт, который реализует любой инструмент.
type Tool interface {
	// Definition возвращает описание инструмента для хоста.
	Definition() ToolDefinition

	// Execute выполняет логику инструмента.
	// argsJSON — сырой JSON аргументов от хоста.
	// Контракт "Raw In, String Out": на входе строка, на выходе строка.
	Execute(ctx context.Context, argsJSON string) (string, error)
}
