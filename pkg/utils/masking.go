// Маскирование чувствительных данных перед записью в лог.
//
// Секреты (API-ключи, токены) не должны попадать в лог-файлы даже при
// debug-логировании. Маскирование применяется к HTTP-заголовкам запроса
// и к произвольным JSON-структурам ответа.
package utils

import (
	"net/http"
	"strings"
)

// MaskPlaceholder — чем заменяется замаскированное значение.
const MaskPlaceholder = "***"

// MaskHeaders возвращает копию заголовков, в которой значения из списка
// sensitive заменены на MaskPlaceholder.
//
// Сравнение имён регистронезависимое ("authorization" маскирует
// "Authorization"). Исходные заголовки не изменяются — функция
// безопасна для конкурентного использования.
func MaskHeaders(headers http.Header, sensitive []string) http.Header {
	masked := make(http.Header, len(headers))

	for name, values := range headers {
		if containsFold(sensitive, name) {
			masked[name] = []string{MaskPlaceholder}
			continue
		}
		copied := make([]string, len(values))
		copy(copied, values)
		masked[name] = copied
	}

	return masked
}

// MaskKeys рекурсивно обходит структуру (map/слайсы после json.Unmarshal)
// и заменяет значения перечисленных ключей на MaskPlaceholder.
//
// Ключи сравниваются регистронезависимо на всех уровнях вложенности.
// Пустой список keys — no-op: возвращается копия без изменений.
// Исходные данные не изменяются.
func MaskKeys(data map[string]any, keys []string) map[string]any {
	result := make(map[string]any, len(data))

	for key, value := range data {
		if containsFold(keys, key) {
			result[key] = MaskPlaceholder
			continue
		}

		// Рекурсивно обрабатываем вложенные map и слайсы
		switch v := value.(type) {
		case map[string]any:
			result[key] = MaskKeys(v, keys)
		case []any:
			result[key] = maskSlice(v, keys)
		default:
			result[key] = v
		}
	}

	return result
}

// maskSlice маскирует ключи внутри элементов слайса.
func maskSlice(slice []any, keys []string) []any {
	result := make([]any, 0, len(slice))

	for _, item := range slice {
		switch v := item.(type) {
		case map[string]any:
			result = append(result, MaskKeys(v, keys))
		case []any:
			result = append(result, maskSlice(v, keys))
		default:
			result = append(result, v)
		}
	}

	return result
}

// containsFold проверяет вхождение строки в список без учёта регистра.
func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
