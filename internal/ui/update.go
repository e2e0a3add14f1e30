// Логика — обрабатывает нажатия клавиш, ресайз и результаты генерации.

package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wrap"

	"github.com/ilkoid/localgen/pkg/component"
)

// generationTimeout ограничивает один вызов генерации из TUI.
// Чуть больше HTTP-таймаута клиента (60s), чтобы наружу всегда
// выходила ошибка провайдера, а не обрыв контекста.
const generationTimeout = 90 * time.Second

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	if m.isProcessing {
		m.spinner, spCmd = m.spinner.Update(msg)
	}

	switch msg := msg.(type) {

	// 1. Изменение размера окна терминала
	case tea.WindowSizeMsg:
		headerHeight := 1
		footerHeight := m.textarea.Height() + 2 // + граница

		vpHeight := msg.Height - headerHeight - footerHeight
		if vpHeight < 1 {
			vpHeight = 1
		}
		vpWidth := msg.Width
		if vpWidth < 20 {
			vpWidth = 20
		}

		// wasAtBottom считаем ДО смены размеров, иначе позиция врёт
		wasAtBottom := m.viewport.YOffset+m.viewport.Height >= m.viewport.TotalLineCount()

		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
		m.textarea.SetWidth(msg.Width)

		// Перекладываем лог под новую ширину
		m.viewport.SetContent(wrapLogLines(m.logLines, vpWidth))
		if wasAtBottom {
			m.viewport.GotoBottom()
		} else {
			maxOffset := m.viewport.TotalLineCount() - m.viewport.Height
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.viewport.YOffset > maxOffset {
				m.viewport.YOffset = maxOffset
			}
		}

		m.ready = true

	// 2. Клавиши
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			// Очищаем ввод
			m.textarea.Reset()

			// Служебные команды выполняются синхронно, без сети
			if strings.HasPrefix(input, ":") {
				m.runLocalCommand(input)
				return m, tea.Batch(tiCmd, vpCmd)
			}

			if m.isProcessing {
				m.appendLog(errorMsgStyle("BUSY: ") + "генерация уже идёт, дождитесь ответа")
				return m, tea.Batch(tiCmd, vpCmd, spCmd)
			}

			// Добавляем промпт пользователя в лог
			m.appendLog(userMsgStyle("PROMPT > ") + input)
			m.isProcessing = true

			// Запускаем асинхронную генерацию
			fields := m.fields
			fields.Prompt = input
			return m, tea.Batch(m.spinner.Tick, performGeneration(m.comp, fields))
		}

	// 3. Результат генерации (прилетел асинхронно)
	case generationResultMsg:
		m.isProcessing = false
		label := fmt.Sprintf("LLM [%s] > ", msg.elapsed.Round(time.Millisecond))
		if strings.HasPrefix(msg.text, component.RequestErrorPrefix) ||
			strings.HasPrefix(msg.text, component.DataErrorPrefix) {
			m.appendLog(errorMsgStyle(label) + msg.text)
		} else {
			m.appendLog(llmMsgStyle(label) + msg.text)
		}
		// Возвращаем фокус на ввод
		m.textarea.Focus()
	}

	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

// runLocalCommand обрабатывает служебные команды вида ":model x".
func (m *MainModel) runLocalCommand(input string) {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {

	// === :model <alias> — переключение модели без перезапуска ===
	case ":model":
		if len(args) < 1 {
			m.appendLog(errorMsgStyle("ERROR: ") + "usage: :model <alias>")
			return
		}
		m.fields.Model = args[0]
		m.currentModel = args[0]
		m.appendLog(systemMsgStyle("SYSTEM: ") + fmt.Sprintf("модель переключена на %q", args[0]))

	// === :params — текущие параметры генерации ===
	case ":params":
		m.appendLog(systemMsgStyle("SYSTEM: ") + describeFields(m.fields))

	// === :help ===
	case ":help":
		m.appendLog(systemMsgStyle("SYSTEM: ") +
			"команды: :model <alias>, :params, :help. Всё остальное уходит промптом в LLM.")

	default:
		m.appendLog(errorMsgStyle("ERROR: ") + fmt.Sprintf("неизвестная команда %q, попробуйте :help", cmd))
	}
}

// describeFields собирает краткую сводку параметров генерации для лога.
func describeFields(f component.Fields) string {
	var b strings.Builder

	model := f.Model
	if model == "" {
		model = "(default)"
	}
	b.WriteString("model=" + model)

	if f.MaxTokens > 0 {
		b.WriteString(fmt.Sprintf(" max_tokens=%d", f.MaxTokens))
	}
	if f.Temperature > 0 {
		b.WriteString(fmt.Sprintf(" temperature=%.2f", f.Temperature))
	}
	if len(f.Stop) > 0 {
		b.WriteString(fmt.Sprintf(" stop=%v", f.Stop))
	}
	if f.APIURL != "" {
		b.WriteString(" url=" + f.APIURL)
	}

	return b.String()
}

// appendLog добавляет строку в лог с умной прокруткой: если пользователь
// был внизу — остаёмся внизу, если листал вверх — позицию не трогаем.
func (m *MainModel) appendLog(str string) {
	m.logLines = append(m.logLines, str)

	wasAtBottom := m.viewport.YOffset+m.viewport.Height >= m.viewport.TotalLineCount()
	m.viewport.SetContent(wrapLogLines(m.logLines, m.viewport.Width))
	if wasAtBottom {
		m.viewport.GotoBottom()
	}
}

// wrapLogLines переносит исходные строки лога под ширину вьюпорта.
//
// Строки хранятся без переноса, поэтому при каждом изменении ширины
// лог можно переложить заново без потери длинных строк.
func wrapLogLines(lines []string, width int) string {
	if width < 1 {
		return strings.Join(lines, "\n")
	}

	var wrapped []string
	for _, line := range lines {
		wrapped = append(wrapped, strings.Split(wrap.String(line, width), "\n")...)
	}
	return strings.Join(wrapped, "\n")
}

// performGeneration запускает одну генерацию асинхронно, чтобы не завис UI.
//
// Компонент сам превращает любые сбои в текст сообщения, поэтому команда
// всегда возвращает generationResultMsg.
func performGeneration(comp *component.TextGeneration, fields component.Fields) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
		defer cancel()

		start := time.Now()
		msg := comp.Run(ctx, fields)
		return generationResultMsg{text: msg.Content, elapsed: time.Since(start)}
	}
}
