// Рендер
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m MainModel) View() string {
	if !m.ready {
		return "Initializing UI..."
	}

	// Формируем строку статуса (Header)
	status := fmt.Sprintf(" MODEL: %s | READY ", m.currentModel)
	if m.isProcessing {
		status = fmt.Sprintf(" MODEL: %s | %s GENERATING ", m.currentModel, m.spinner.View())
	}

	// Растягиваем хедер на всю ширину
	header := headerStyle.
		Width(m.viewport.Width).
		Render(status)

	// Разделительная линия
	border := lipgloss.NewStyle().
		Foreground(grayColor).
		Width(m.viewport.Width).
		Render(strings.Repeat("─", 50))

	// Собираем всё вместе: Header + Viewport + Border + Input
	return fmt.Sprintf("%s\n%s\n%s\n%s",
		header,
		m.viewport.View(),
		border,
		m.textarea.View(),
	)
}
