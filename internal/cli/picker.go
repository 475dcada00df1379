package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hwidmann/taskcanvas/pkg/problem"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TaskListModel - Interactive task selection
// =============================================================================

// taskItem is one selectable row in the task picker.
type taskItem struct {
	number   int
	category string
	viz      string
	preview  string
	include  bool
}

// TaskListModel is the bubbletea model for interactive task selection.
// Tasks start included; space toggles, enter confirms.
type TaskListModel struct {
	Items     []taskItem
	Cursor    int
	Confirmed bool
}

// NewTaskListModel creates a task picker over the tasks of a raw config.
func NewTaskListModel(cfg map[string]any) TaskListModel {
	rawTasks, _ := cfg["tasks"].([]any)
	items := make([]taskItem, 0, len(rawTasks))
	for _, raw := range rawTasks {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		item := taskItem{include: true}
		if n, ok := m["number"].(float64); ok {
			item.number = int(n)
		}
		if c, ok := m["category"].(string); ok {
			item.category = c
		}
		if viz, ok := m["visualization"].(map[string]any); ok {
			item.viz, _ = viz["type"].(string)
		}
		if s, ok := m["solution"].(string); ok {
			item.preview = previewText(s, 48)
			if item.category == "" {
				item.category = string(problem.Classify(s))
			}
		}
		items = append(items, item)
	}
	return TaskListModel{Items: items}
}

func (m TaskListModel) Init() tea.Cmd {
	return nil
}

func (m TaskListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Items)-1 {
			m.Cursor++
		}
	case " ":
		if len(m.Items) > 0 {
			m.Items[m.Cursor].include = !m.Items[m.Cursor].include
		}
	case "a":
		for i := range m.Items {
			m.Items[i].include = true
		}
	case "n":
		for i := range m.Items {
			m.Items[i].include = false
		}
	case "enter":
		m.Confirmed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m TaskListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Tasks"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  n none  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	for i, item := range m.Items {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		mark := "[ ]"
		if item.include {
			mark = "[" + StyleSuccess.Render("x") + "]"
		}

		viz := "—"
		if item.viz != "" {
			viz = item.viz
		}

		line := fmt.Sprintf("%s%s Task %-3d %-7s %-18s %s",
			cursor, mark, item.number, item.category, viz, listDimStyle.Render(item.preview))

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case !item.include:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d selected", m.selectedCount(), len(m.Items))))

	return b.String()
}

func (m TaskListModel) selectedCount() int {
	n := 0
	for _, item := range m.Items {
		if item.include {
			n++
		}
	}
	return n
}

// SelectedNumbers returns the task numbers left included, in display order.
func (m TaskListModel) SelectedNumbers() []int {
	var numbers []int
	for _, item := range m.Items {
		if item.include {
			numbers = append(numbers, item.number)
		}
	}
	return numbers
}

// =============================================================================
// Helpers
// =============================================================================

// pickTasks runs the interactive picker and returns the config reduced to
// the selected tasks. Quitting without confirming keeps the full set.
func pickTasks(cfg map[string]any) (map[string]any, error) {
	model := NewTaskListModel(cfg)
	if len(model.Items) == 0 {
		return cfg, nil
	}

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("task picker: %w", err)
	}
	result, ok := final.(TaskListModel)
	if !ok || !result.Confirmed {
		return cfg, nil
	}

	return filterTasks(cfg, result.SelectedNumbers()), nil
}

// filterTasks returns a shallow copy of cfg with tasks reduced to the given
// numbers, preserving document order.
func filterTasks(cfg map[string]any, numbers []int) map[string]any {
	keep := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		keep[n] = true
	}

	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		out[k] = v
	}

	rawTasks, _ := cfg["tasks"].([]any)
	filtered := make([]any, 0, len(rawTasks))
	for _, raw := range rawTasks {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if n, ok := m["number"].(float64); ok && keep[int(n)] {
			filtered = append(filtered, raw)
		}
	}
	out["tasks"] = filtered
	return out
}

// previewText collapses whitespace and truncates s for list display.
func previewText(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
