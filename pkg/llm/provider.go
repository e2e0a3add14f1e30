// Интерфейс Провайдера через который работает всё приложение.

package llm

import "context"

// Provider — интерфейс для работы с сервисами текстовой генерации.
//
// Правило 4: Все провайдеры (локальный text-generation сервер, OpenAI,
// zai, deepseek) реализуют этот интерфейс. Остальной код зависит только
// от интерфейса и не знает деталей конкретного API.
//
// Реализации обязаны:
//   - Уважать отмену контекста (Правило 11)
//   - Возвращать ошибки, а не паниковать (Правило 7)
//   - Быть безопасными для конкурентного использования
type Provider interface {
	// Complete отправляет prompt и возвращает сгенерированный текст.
	//
	// Параметры:
	//   - ctx: контекст для отмены и таймаутов
	//   - prompt: текст запроса как есть, без шаблонизации
	//   - opts: параметры генерации поверх значений по умолчанию
	//
	// Возвращает:
	//   - string: текст первого choice ответа (может быть пустым)
	//   - error: типизированная ошибка реализации (транспорт или разбор
	//     ответа); вызывающий различает их через errors.As
	Complete(ctx context.Context, prompt string, opts ...GenerateOption) (string, error)
}
