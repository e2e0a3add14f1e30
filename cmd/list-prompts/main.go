package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ilkoid/localgen/pkg/config"
	"github.com/ilkoid/localgen/pkg/prompts"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Стили ---
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")). // Зеленый
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")) // Розовый
)

// --- Сообщения (Messages) ---
type errMsg error

// promptEntry — одна строка списка: ID плюс краткая сводка шаблона
type promptEntry struct {
	id        string
	model     string
	maxTokens int
	broken    bool // шаблон есть в списке, но не загрузился
}

type contentMsg []promptEntry

// --- Модель ---
type model struct {
	registry *prompts.SourceRegistry
	spinner  spinner.Model
	viewport viewport.Model

	loading bool
	err     error
	ready   bool
}

// Инициализация модели
func initialModel(registry *prompts.SourceRegistry) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		registry: registry,
		spinner:  s,
		loading:  true, // Сразу начинаем загрузку
	}
}

// Init запускает спиннер и команду загрузки
func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		fetchPrompts(m.registry),
	)
}

// Update - обработка событий
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {

	// Нажатие клавиш
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	// Ошибка
	case errMsg:
		m.err = msg
		m.loading = false
		return m, nil

	// Данные загружены
	case contentMsg:
		m.loading = false
		content := formatPromptList(msg)
		m.viewport.SetContent(content)
		return m, nil

	// Ресайз окна
	case tea.WindowSizeMsg:
		headerHeight := 2
		verticalMarginHeight := 2

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-verticalMarginHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - verticalMarginHeight
		}
	}

	// Обновляем компоненты
	if m.loading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View - отрисовка
func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("\n❌ Error: %v\n\nPress 'q' to quit.", m.err)
	}

	header := titleStyle.Render("📜 Prompt Templates")

	if m.loading {
		return fmt.Sprintf("\n %s Scanning prompt sources...\n\n", m.spinner.View())
	}

	return fmt.Sprintf("%s\n%s\n\n(Press 'q' to quit, arrows to scroll)", header, m.viewport.View())
}

// --- Бизнес-логика (Commands) ---

func fetchPrompts(registry *prompts.SourceRegistry) tea.Cmd {
	return func() tea.Msg {
		ids, err := registry.ListIDs()
		if err != nil {
			return errMsg(err)
		}

		// Подгружаем каждый шаблон ради краткой сводки. Битый шаблон
		// не валит список, он просто помечается.
		entries := make([]promptEntry, 0, len(ids))
		for _, id := range ids {
			entry := promptEntry{id: id}
			pf, err := registry.Load(id)
			if err != nil {
				entry.broken = true
			} else {
				entry.model = pf.Config.Model
				entry.maxTokens = pf.Config.MaxTokens
			}
			entries = append(entries, entry)
		}
		return contentMsg(entries)
	}
}

// Форматирование списка в строку для вьюпорта
func formatPromptList(entries []promptEntry) string {
	if len(entries) == 0 {
		return "No prompt templates found."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Total Templates: %d\n\n", len(entries)))

	for _, e := range entries {
		var summary string
		switch {
		case e.broken:
			summary = "(failed to load)"
		case e.model != "" && e.maxTokens > 0:
			summary = fmt.Sprintf("model=%s max_tokens=%d", e.model, e.maxTokens)
		case e.model != "":
			summary = fmt.Sprintf("model=%s", e.model)
		case e.maxTokens > 0:
			summary = fmt.Sprintf("max_tokens=%d", e.maxTokens)
		default:
			summary = "-"
		}

		line := fmt.Sprintf("%s  %-24s  %s\n",
			itemStyle.Render("•"),
			e.id,
			summary,
		)
		b.WriteString(line)
	}
	return b.String()
}

// --- Main ---

func main() {
	// 1. Грузим конфиг (используем наш готовый пакет)
	cfgPath := "config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Config Error: %v", err)
	}

	// 2. Собираем реестр источников промптов
	registry, err := prompts.CreateSourceRegistry(cfg)
	if err != nil {
		log.Fatalf("Prompt Sources Init Error: %v", err)
	}

	// 3. Запускаем
	p := tea.NewProgram(
		initialModel(registry),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
