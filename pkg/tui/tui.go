// Package tui renders the navigation model in a terminal and maps keys onto it.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/timebudget/timebudget/pkg/navigation"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	groupStyle     = lipgloss.NewStyle().Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	formLabelStyle = lipgloss.NewStyle().Bold(true)
)

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modeConfirm
)

type refreshMsg struct{}

type Model struct {
	ctx       context.Context
	nav       *navigation.Model
	mode      mode
	form      *form
	status    string
	statusErr bool
}

func New(ctx context.Context, nav *navigation.Model) *Model {
	return &Model{ctx: ctx, nav: nav}
}

func (m *Model) Init() tea.Cmd {
	return func() tea.Msg { return refreshMsg{} }
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.refresh()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			m.updateForm(msg)
		case modeConfirm:
			m.updateConfirm(msg)
		default:
			return m, m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	m.clearStatus()
	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		m.nav.HighlightUp()
	case "down", "j":
		m.nav.HighlightDown()
	case "enter":
		if m.report(m.nav.SelectHighlighted()) {
			m.refresh()
		}
	case "backspace", "esc":
		if m.nav.Back() {
			m.refresh()
		}
	case "r":
		m.nav.Invalidate()
		m.refresh()
	case "l":
		if m.nav.State() == navigation.LoggedOut {
			m.openForm(loginForm(func(userId int) error { return m.nav.Login(m.ctx, userId) }))
		}
	case "n":
		kind := m.nav.CreateKind()
		m.openCreate(kind)
	case "g":
		if m.nav.State() == navigation.Home {
			m.openCreate(navigation.KindGroup)
		}
	case "e":
		item, ok := m.nav.Highlighted()
		if !ok {
			m.report(navigation.ErrNothingHighlighted)
			return nil
		}
		m.openForm(draftForm("Edit "+string(item.Kind), item.Kind, item.Draft, func(d navigation.Draft) error {
			return m.nav.EditHighlighted(m.ctx, d)
		}))
	case "d":
		if _, ok := m.nav.Highlighted(); !ok {
			m.report(navigation.ErrNothingHighlighted)
			return nil
		}
		m.mode = modeConfirm
	}
	return nil
}

func (m *Model) openCreate(kind navigation.Kind) {
	m.openForm(draftForm("New "+string(kind), kind, m.nav.NewDraft(kind), func(d navigation.Draft) error {
		return m.nav.Create(m.ctx, kind, d)
	}))
}

func (m *Model) openForm(f *form) {
	m.form = f
	m.mode = modeForm
}

func (m *Model) updateForm(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeForm()
		m.setStatus("Cancelled.", false)
	case tea.KeyBackspace:
		m.form.erase()
	case tea.KeySpace:
		m.form.typeRunes([]rune{' '})
	case tea.KeyRunes:
		m.form.typeRunes(msg.Runes)
	case tea.KeyEnter:
		if !m.form.last() {
			m.form.field++
			return
		}
		if err := m.form.submit(m.form.values); err != nil {
			m.report(err)
			return
		}
		m.closeForm()
		m.setStatus("Saved.", false)
		m.refresh()
	}
}

func (m *Model) closeForm() {
	m.form = nil
	m.mode = modeBrowse
}

func (m *Model) updateConfirm(msg tea.KeyMsg) {
	m.mode = modeBrowse
	if msg.String() != "y" && msg.String() != "Y" {
		m.setStatus("Not deleted.", false)
		return
	}
	if m.report(m.nav.DeleteHighlighted(m.ctx)) {
		m.setStatus("Deleted.", false)
		m.refresh()
	}
}

func (m *Model) refresh() {
	m.report(m.nav.RefreshListing(m.ctx))
}

// report shows err in the status line and tells whether there was none.
func (m *Model) report(err error) bool {
	if err == nil {
		return true
	}
	m.setStatus(err.Error(), true)
	return false
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status, m.statusErr = text, isErr
}

func (m *Model) clearStatus() {
	m.setStatus("", false)
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title()))
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		m.viewForm(&b)
	default:
		m.viewListing(&b)
	}

	b.WriteString("\n")
	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(m.help()))
	return b.String()
}

func (m *Model) title() string {
	s := m.nav.Selection()
	parts := []string{m.nav.State().String()}
	for _, name := range []string{s.UserName, s.BudgetName, s.GroupName, s.CategoryName} {
		if name != "" {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, " › ")
}

func (m *Model) viewListing(b *strings.Builder) {
	items := m.nav.Items()
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("Nothing here yet."))
		b.WriteString("\n")
		return
	}
	highlight, highlighted := m.nav.HighlightIndex()
	for i, item := range items {
		prefix := "  "
		if highlighted && i == highlight {
			prefix = cursorStyle.Render("> ")
		}
		label := fmt.Sprintf("%s%s #%d  %s", strings.Repeat("  ", item.Depth), item.Kind, item.Id, item.Label)
		if item.Kind == navigation.KindGroup {
			label = groupStyle.Render(label)
		}
		b.WriteString(prefix + label + "\n")
	}
	if m.mode == modeConfirm {
		item, _ := m.nav.Highlighted()
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Delete %s %q and everything it owns? y/N", item.Kind, item.Draft.Name)) + "\n")
	}
}

func (m *Model) viewForm(b *strings.Builder) {
	b.WriteString(formLabelStyle.Render(m.form.title) + "\n")
	for i, label := range m.form.labels {
		if i > m.form.field {
			break
		}
		cursor := ""
		if i == m.form.field {
			cursor = cursorStyle.Render("_")
		}
		b.WriteString(fmt.Sprintf("%s: %s%s\n", label, m.form.values[i], cursor))
	}
}

func (m *Model) help() string {
	if m.mode == modeForm {
		return "enter next/save  esc cancel"
	}
	help := "j/k move  enter open  esc back  n new  e edit  d delete  r refresh  q quit"
	switch m.nav.State() {
	case navigation.LoggedOut:
		help += "  l log in"
	case navigation.Home:
		help += "  g new group"
	}
	return help
}
