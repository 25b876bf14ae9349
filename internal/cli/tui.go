package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/basegen/pkg/base"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PickerModel - Interactive style and level selection
// =============================================================================

// pickerChoice holds the result of the interactive picker.
type pickerChoice struct {
	Style  string
	Levels int
}

type pickerPhase int

const (
	phaseStyle pickerPhase = iota
	phaseLevels
)

type styleEntry struct {
	style base.Style
	desc  string
}

var styleEntries = []styleEntry{
	{base.StylePyramid, "single tapered shell from footprint to top"},
	{base.StyleStepped, "stack of shrinking tapered tiers"},
	{base.StyleTower, "wide base topped by a narrower tower"},
}

// PickerModel is the bubbletea model for interactive generation setup.
type PickerModel struct {
	Phase    pickerPhase
	Cursor   int
	Style    base.Style
	Levels   int
	Selected *pickerChoice
}

// NewPickerModel creates a picker starting at the style phase.
func NewPickerModel() PickerModel {
	return PickerModel{Levels: base.MinLevels}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			switch m.Phase {
			case phaseStyle:
				if m.Cursor > 0 {
					m.Cursor--
				}
			case phaseLevels:
				if m.Levels < base.MaxLevels {
					m.Levels++
				}
			}
		case "down", "j":
			switch m.Phase {
			case phaseStyle:
				if m.Cursor < len(styleEntries)-1 {
					m.Cursor++
				}
			case phaseLevels:
				if m.Levels > base.MinLevels {
					m.Levels--
				}
			}
		case "enter":
			switch m.Phase {
			case phaseStyle:
				m.Style = styleEntries[m.Cursor].style
				m.Phase = phaseLevels
			case phaseLevels:
				m.Selected = &pickerChoice{Style: string(m.Style), Levels: m.Levels}
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m PickerModel) View() string {
	var b strings.Builder

	switch m.Phase {
	case phaseStyle:
		b.WriteString(StyleTitle.Render("Select Base Style"))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
		b.WriteString("\n\n")

		for i, entry := range styleEntries {
			cursor := "  "
			if i == m.Cursor {
				cursor = "▸ "
			}
			line := fmt.Sprintf("%s%-10s %s", cursor, entry.style,
				listDimStyle.Render(entry.desc))
			if i == m.Cursor {
				b.WriteString(listSelectedStyle.Render(line))
			} else {
				b.WriteString(listNormalStyle.Render(line))
			}
			b.WriteString("\n")
		}

	case phaseLevels:
		b.WriteString(StyleTitle.Render("Select Levels"))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("↑/↓ adjust  ⏎ confirm  q quit"))
		b.WriteString("\n\n")

		for n := base.MaxLevels; n >= base.MinLevels; n-- {
			cursor := "  "
			if n == m.Levels {
				cursor = "▸ "
			}
			line := fmt.Sprintf("%s%d levels", cursor, n)
			if n == m.Levels {
				b.WriteString(listSelectedStyle.Render(line))
			} else {
				b.WriteString(listNormalStyle.Render(line))
			}
			b.WriteString("\n")
		}

		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  style: %s", m.Style)))
	}

	return b.String()
}

// runPicker runs the interactive picker and returns the user's choice,
// or nil if they quit without selecting.
func runPicker() (*pickerChoice, error) {
	p := tea.NewProgram(NewPickerModel())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("interactive picker: %w", err)
	}
	model, ok := final.(PickerModel)
	if !ok {
		return nil, nil
	}
	return model.Selected, nil
}
