package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "distill.dev/pkg/distill/internal/model"
)

// TUI prints phase summaries like SimpleUI and browses plans with Bubble Tea.
type TUI struct {
	*SimpleUI

	output io.Writer
}

// NewTUI creates a new TUI writing to the command's output.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd), output: cmd.OutOrStdout()}
}

// ViewPlan opens a paginated, per-category plan browser. Plans that fit on
// screen are printed as tables instead.
func (t *TUI) ViewPlan(ctx context.Context, plan *m.Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newPlanModel(plan)

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	if !model.needsPagination() {
		return t.SimpleUI.ViewPlan(ctx, plan)
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	activeTab    = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("10"))
	inactiveTab  = lipgloss.NewStyle().Faint(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

type planKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Quit     key.Binding
}

func (k planKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Quit}
}

func (k planKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.NextTab, k.PrevTab, k.Quit},
	}
}

var planKeys = planKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "u"), key.WithHelp("u", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "d"), key.WithHelp("d", "page down")),
	Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	NextTab:  key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab", "next category")),
	PrevTab:  key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab", "previous category")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// planModel is the Bubble Tea model of the plan browser.
type planModel struct {
	plan     *m.Plan
	tab      int
	offset   int
	height   int
	width    int
	help     help.Model
	quitting bool
}

func newPlanModel(plan *m.Plan) planModel {
	return planModel{plan: plan, help: help.New()}
}

func (pm planModel) Init() tea.Cmd {
	return nil
}

func (pm planModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.height = msg.Height
		pm.width = msg.Width
		pm.help.Width = msg.Width
		pm.offset = min(pm.offset, pm.maxOffset())

		return pm, nil

	case tea.KeyMsg:
		return pm.handleKeyPress(msg)
	}

	return pm, nil
}

func (pm planModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, planKeys.Quit):
		pm.quitting = true
		return pm, tea.Quit

	case key.Matches(msg, planKeys.Down):
		pm.offset = min(pm.offset+1, pm.maxOffset())

	case key.Matches(msg, planKeys.Up):
		pm.offset = max(pm.offset-1, 0)

	case key.Matches(msg, planKeys.PageDown):
		pm.offset = min(pm.offset+pm.itemsPerPage(), pm.maxOffset())

	case key.Matches(msg, planKeys.PageUp):
		pm.offset = max(pm.offset-pm.itemsPerPage(), 0)

	case key.Matches(msg, planKeys.Top):
		pm.offset = 0

	case key.Matches(msg, planKeys.Bottom):
		pm.offset = pm.maxOffset()

	case key.Matches(msg, planKeys.NextTab):
		pm.tab = (pm.tab + 1) % len(m.Categories)
		pm.offset = 0

	case key.Matches(msg, planKeys.PrevTab):
		pm.tab = (pm.tab + len(m.Categories) - 1) % len(m.Categories)
		pm.offset = 0
	}

	return pm, nil
}

func (pm planModel) category() m.Category {
	return m.Categories[pm.tab]
}

func (pm planModel) entries() []m.PlanEntry {
	return pm.plan.Entries[pm.category()]
}

// itemsPerPage reserves 8 lines for title, tabs, column header, footer and help.
func (pm planModel) itemsPerPage() int {
	if pm.height == 0 {
		return 10
	}

	reserved := 8 + len(pm.plan.Warnings)

	return max(pm.height-reserved, 1)
}

func (pm planModel) maxOffset() int {
	return max(len(pm.entries())-pm.itemsPerPage(), 0)
}

// needsPagination reports whether any category is too long for the screen.
func (pm planModel) needsPagination() bool {
	if pm.height == 0 {
		return false
	}

	for _, entries := range pm.plan.Entries {
		if len(entries) > pm.itemsPerPage() {
			return true
		}
	}

	return false
}

func (pm planModel) View() string {
	if pm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("distill plan: %s -> %s", pm.plan.Root, pm.plan.OutputDir)))
	b.WriteString("\n")
	pm.renderTabs(&b)

	entries := pm.entries()
	if len(entries) == 0 {
		b.WriteString(faintStyle.Render("  no files in this category"))
		b.WriteString("\n")
	} else {
		pm.renderEntries(&b, entries)
	}

	for _, w := range pm.plan.Warnings {
		b.WriteString(warningStyle.Render("  ! " + w))
		b.WriteString("\n")
	}

	if pm.needsPagination() {
		b.WriteString("\n")
		b.WriteString(pm.help.View(planKeys))
		b.WriteString("\n")
	}

	return b.String()
}

func (pm planModel) renderTabs(b *strings.Builder) {
	tabs := make([]string, 0, len(m.Categories))

	for i, cat := range m.Categories {
		label := fmt.Sprintf("%s (%d)", cat, len(pm.plan.Entries[cat]))
		if i == pm.tab {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, inactiveTab.Render(label))
		}
	}

	b.WriteString("  " + strings.Join(tabs, "  ") + "\n\n")
}

func (pm planModel) renderEntries(b *strings.Builder, entries []m.PlanEntry) {
	start := pm.offset
	end := len(entries)

	if pm.needsPagination() {
		end = min(start+pm.itemsPerPage(), len(entries))
	}

	fmt.Fprintf(b, "  %8s  %10s  %s\n", "score", "size", "path")

	for _, e := range entries[start:end] {
		fmt.Fprintf(b, "  %8.2f  %10s  %s\n", e.Score, m.FormatBytes(e.Size), e.Path)
	}

	stats := pm.plan.Stats.ByCategory[pm.category()]
	footer := fmt.Sprintf("  %s: %d files, %s | retained %.1f%%", pm.category(), stats.Files, m.FormatBytes(stats.Bytes), pm.plan.Stats.RetainedRatio*100)

	if pm.needsPagination() {
		footer += fmt.Sprintf(" | entries %d-%d of %d", start+1, end, len(entries))
	}

	b.WriteString("\n" + faintStyle.Render(footer) + "\n")
}
