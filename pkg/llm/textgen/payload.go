package textgen

import (
	"net/http"

	"github.com/ilkoid/localgen/pkg/llm"
)

// BuildHeaders собирает заголовки запроса к completion endpoint.
//
// Content-Type ставится всегда. Authorization добавляется только при
// непустом ключе: локальные серверы обычно работают без авторизации,
// и лишний заголовок им не нужен.
func BuildHeaders(apiKey string) http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	if apiKey != "" {
		headers.Set("Authorization", "Bearer "+apiKey)
	}

	return headers
}

// BuildPayload собирает тело запроса к completion endpoint.
//
// Всегда присутствуют prompt и max_tokens вместе с базовым набором
// sampling-параметров. Опциональные поля:
//   - model: только если задано имя (локальный сервер его игнорирует)
//   - stop: только при непустом списке — пустой "stop" ломает
//     некоторые серверы
//   - Extra: произвольные ключи поверх всего, позволяют переопределить
//     любой параметр или добавить server-specific (seed, mirostat_mode...)
func BuildPayload(prompt string, opts llm.GenerateOptions) map[string]any {
	payload := map[string]any{
		"prompt":             prompt,
		"max_tokens":         opts.MaxTokens,
		"temperature":        opts.Temperature,
		"top_p":              opts.TopP,
		"typical_p":          opts.TypicalP,
		"top_k":              opts.TopK,
		"min_p":              opts.MinP,
		"repetition_penalty": opts.RepetitionPenalty,
	}

	if opts.Model != "" {
		payload["model"] = opts.Model
	}

	if len(opts.Stop) > 0 {
		payload["stop"] = opts.Stop
	}

	// Extra накладывается последним и может переопределить любое поле
	for key, value := range opts.Extra {
		payload[key] = value
	}

	return payload
}
