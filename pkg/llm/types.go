// Базовые типы - определяем универсальный язык общения с completion-сервисами.
package llm

// Role — роль автора сообщения.
type Role string

// Константы ролей для удобства
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message — единица обмена с host-фреймворком.
//
// Компонент всегда возвращает ровно одно Message: текст генерации,
// предупреждение о пустом ответе или описание ошибки. Host не различает
// эти случаи структурно — только по содержимому (контракт компонента).
type Message struct {
	Role    Role   // Кто говорит: system, user, assistant
	Content string // Текстовое содержимое
}

// NewAssistantMessage создаёт сообщение от имени модели.
func NewAssistantMessage(text string) Message {
	return Message{
		Role:    RoleAssistant,
		Content: text,
	}
}
