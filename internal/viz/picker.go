package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	menuTitle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuIdleSub = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// PickerItem is one selectable scenario.
type PickerItem struct {
	Name        string
	Description string
	Factory     Factory
}

// Picker lists scenarios and opens the selected one in a Live view.
type Picker struct {
	items  []PickerItem
	cursor int
	opts   LiveOptions
	live   *Live
	err    error
}

func NewPicker(items []PickerItem, opts LiveOptions) *Picker {
	return &Picker{items: items, opts: opts}
}

func (p *Picker) Init() tea.Cmd { return nil }

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			p.live = nil
			return p, nil
		}
		_, cmd := p.live.Update(msg)
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.items) == 0 {
			return p, nil
		}
		item := p.items[p.cursor]
		opts := p.opts
		opts.Title = item.Name
		live, err := NewLive(item.Factory, opts)
		if err != nil {
			p.err = err
			return p, nil
		}
		p.live, p.err = live, nil
		return p, live.Init()
	}
	return p, nil
}

func (p *Picker) View() string {
	if p.live != nil {
		return p.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("NBODY") + "\n    " + menuSub.Render("gravitational n-body simulator") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, item := range p.items {
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-10s", item.Name)), menuDesc.Render(item.Description)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-10s", item.Name)), menuIdleSub.Render(item.Description)))
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(CurrentTheme.Error).Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuIdle.Render(" navigate  ") + menuKey.Render("enter") + menuIdle.Render(" select  ") + menuKey.Render("esc") + menuIdle.Render(" back  ") + menuKey.Render("q") + menuIdle.Render(" quit") + "\n")
	return b.String()
}
