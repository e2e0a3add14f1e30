// Package ui реализует Model компонент Bubble Tea TUI.
//
// Интерактивная консоль для проверки completion endpoint'ов: каждая
// введённая строка уходит одним запросом генерации, ответ печатается
// в лог. Служебные команды начинаются с ":" (см. :help).
package ui

import (
	"fmt"
	"time"

	"github.com/ilkoid/localgen/pkg/component"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// generationResultMsg — сообщение с результатом генерации.
//
// Компонент никогда не возвращает ошибку наружу: сбои приходят текстом
// с префиксом "Request Error:" / "Data Processing Error:", поэтому
// здесь только текст и длительность вызова.
type generationResultMsg struct {
	text    string
	elapsed time.Duration
}

// MainModel представляет главную модель UI (Bubble Tea Model).
//
// Содержит все компоненты TUI:
//   - viewport: область лога (только для чтения)
//   - textarea: поле ввода промпта
//   - spinner: индикатор работающей генерации
//   - comp: компонент генерации текста
//   - fields: базовые поля генерации; Prompt подставляется из ввода
//     на каждый запрос
//   - logLines: исходные строки лога без переноса — ключ к reflow
//     при изменении размера окна
//
// Мьютексы не нужны: Bubble Tea вызывает Update последовательно,
// асинхронная работа уходит в tea.Cmd и возвращается сообщением.
type MainModel struct {
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	comp   *component.TextGeneration
	fields component.Fields

	// currentModel — имя модели для строки статуса
	currentModel string

	logLines []string

	isProcessing bool
	ready        bool
}

// InitialModel создает начальное состояние UI.
//
// Параметры:
//   - comp: собранный компонент генерации
//   - fields: базовые поля генерации (модель, параметры); поле Prompt
//     игнорируется, его заполняет ввод пользователя
//   - currentModel: имя модели для строки статуса
func InitialModel(comp *component.TextGeneration, fields component.Fields, currentModel string) MainModel {
	// 1. Настройка поля ввода
	ta := textarea.New()
	ta.Placeholder = "Введите промпт (или :help для команд)..."
	ta.Focus()
	ta.Prompt = "┃ "
	ta.CharLimit = 2000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	// 2. Спиннер для индикации генерации
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	// 3. Настройка вьюпорта (лог)
	// Размеры (0,0) обновятся при первом событии WindowSizeMsg.
	// Приветствие кладём в logLines, чтобы reflow переносил и его.
	vp := viewport.New(0, 0)
	welcome := []string{
		systemMsgStyle("Localgen console. Enter отправляет промпт, Esc выходит."),
		systemMsgStyle(fmt.Sprintf("Model: %s", currentModel)),
	}

	return MainModel{
		textarea:     ta,
		viewport:     vp,
		spinner:      sp,
		comp:         comp,
		fields:       fields,
		currentModel: currentModel,
		logLines:     welcome,
		isProcessing: false,
		ready:        false,
	}
}

// Init запускается один раз при старте Bubble Tea программы.
//
// Возвращает команду для запуска мигания курсора в поле ввода.
func (m MainModel) Init() tea.Cmd {
	return textarea.Blink
}
