package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"poetry2uv/internal/ports"
)

var (
	promptTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	promptSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	promptNormalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	promptDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// choiceListModel is the bubbletea model for picking one of several
// alternative constraints of a dependency.
type choiceListModel struct {
	pkg      string
	options  []string
	cursor   int
	selected int
}

func newChoiceListModel(pkg string, options []string) choiceListModel {
	return choiceListModel{pkg: pkg, options: options, selected: -1}
}

func (m choiceListModel) Init() tea.Cmd {
	return nil
}

func (m choiceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m choiceListModel) View() string {
	var b strings.Builder

	b.WriteString(promptTitleStyle.Render(fmt.Sprintf("Select constraint for %s", m.pkg)))
	b.WriteString("\n")
	b.WriteString(promptDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, option := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%d. %s", cursor, i+1, option)
		if i == m.cursor {
			b.WriteString(promptSelectedStyle.Render(line))
		} else {
			b.WriteString(promptNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// PromptChooser resolves alternative constraints through an interactive
// terminal list. Quitting without a selection is an error, so the
// conversion never guesses on the user's behalf.
type PromptChooser struct{}

func NewPromptChooser() PromptChooser {
	return PromptChooser{}
}

func (c PromptChooser) Choose(ctx context.Context, pkg string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no alternatives to choose from")
	}
	program := tea.NewProgram(newChoiceListModel(pkg, options), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("selection prompt failed").
			WithCause(err)
	}
	model, ok := finalModel.(choiceListModel)
	if !ok || model.selected < 0 {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no selection made for %s", pkg))
	}
	return model.selected, nil
}

var _ ports.ChooserPort = PromptChooser{}
