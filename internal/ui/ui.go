// Package ui renders the shared snapshot in the terminal. It is a read-only
// view over the store plus the two notification toggles; all data movement
// happens in the engine.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"voidwatch/internal/state"
	"voidwatch/internal/tenno"
)

// Controller is the slice of the engine the presentation layer needs.
type Controller interface {
	SetNotificationPrefs(voidCapture, epicInvasion bool) error
	TestNotification()
}

// Options configure the UI runtime.
type Options struct {
	Store        *state.Store
	Control      Controller
	RefreshEvery time.Duration
}

type view int

const (
	viewFissures view = iota
	viewInvasions
)

type tickMsg time.Time

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	dayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	nightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).BorderForeground(lipgloss.Color("8"))
)

// Model is the bubbletea model. It polls the store on a timer and rebuilds
// its tables from each snapshot; it holds no entity state of its own.
type Model struct {
	store   *state.Store
	control Controller
	keys    keyMap

	refreshEvery time.Duration
	view         view
	fissures     table.Model
	invasions    table.Model
	snapshot     state.Snapshot
	now          time.Time
	err          error
}

// NewModel builds the initial model.
func NewModel(opts Options) Model {
	if opts.RefreshEvery <= 0 {
		opts.RefreshEvery = time.Second
	}

	fissures := table.New(
		table.WithColumns([]table.Column{
			{Title: "Tier", Width: 8},
			{Title: "Mission", Width: 16},
			{Title: "Node", Width: 24},
			{Title: "Ends In", Width: 12},
			{Title: "Flags", Width: 12},
		}),
		table.WithFocused(true),
	)
	invasions := table.New(
		table.WithColumns([]table.Column{
			{Title: "Node", Width: 24},
			{Title: "Rewards", Width: 44},
			{Title: "Active For", Width: 12},
		}),
	)

	return Model{
		store:        opts.Store,
		control:      opts.Control,
		keys:         defaultKeyMap(),
		refreshEvery: opts.RefreshEvery,
		fissures:     fissures,
		invasions:    invasions,
		snapshot:     opts.Store.Snapshot(),
		now:          time.Now(),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg)
		m.snapshot = m.store.Snapshot()
		m.rebuildRows()
		return m, m.tick()

	case tea.WindowSizeMsg:
		height := msg.Height - 6
		if height < 3 {
			height = 3
		}
		m.fissures.SetHeight(height)
		m.invasions.SetHeight(height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			if m.view == viewFissures {
				m.view = viewInvasions
				m.fissures.Blur()
				m.invasions.Focus()
			} else {
				m.view = viewFissures
				m.invasions.Blur()
				m.fissures.Focus()
			}
			return m, nil
		case key.Matches(msg, m.keys.ToggleFissure):
			p := m.store.Prefs()
			m.err = m.control.SetNotificationPrefs(!p.NotifyVoidCapture, p.NotifyEpicInvasion)
			m.snapshot = m.store.Snapshot()
			return m, nil
		case key.Matches(msg, m.keys.ToggleInvasion):
			p := m.store.Prefs()
			m.err = m.control.SetNotificationPrefs(p.NotifyVoidCapture, !p.NotifyEpicInvasion)
			m.snapshot = m.store.Snapshot()
			return m, nil
		case key.Matches(msg, m.keys.TestSound):
			m.control.TestNotification()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.view == viewFissures {
		m.fissures, cmd = m.fissures.Update(msg)
	} else {
		m.invasions, cmd = m.invasions.Update(msg)
	}
	return m, cmd
}

func (m *Model) rebuildRows() {
	fissureRows := make([]table.Row, 0, len(m.snapshot.Fissures))
	for _, f := range m.snapshot.Fissures {
		if f.HasExpired(m.now) {
			continue
		}
		fissureRows = append(fissureRows, table.Row{
			f.Tier.String(),
			f.Mission,
			f.Node.Value,
			FormatDuration(f.TillExpired(m.now)),
			fissureFlags(f),
		})
	}
	m.fissures.SetRows(fissureRows)

	invasionRows := make([]table.Row, 0, len(m.snapshot.Invasions))
	for _, inv := range m.snapshot.Invasions {
		invasionRows = append(invasionRows, table.Row{
			inv.Node.Value,
			inv.Rewards.All(),
			FormatDuration(inv.ActiveDuration(m.now)),
		})
	}
	m.invasions.SetRows(invasionRows)
}

func fissureFlags(f tenno.Fissure) string {
	var flags []string
	if f.Storm {
		flags = append(flags, "storm")
	}
	if f.Hard {
		flags = append(flags, "steel")
	}
	return strings.Join(flags, " ")
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.headerLine()))
	b.WriteString("\n")

	if !m.snapshot.Initialized {
		b.WriteString("\nLoading world state...\n")
	} else if m.view == viewFissures {
		b.WriteString(m.fissures.View())
		b.WriteString("\n")
	} else {
		b.WriteString(m.invasions.View())
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render(m.footerLine()))
	return b.String()
}

func (m Model) headerLine() string {
	parts := []string{titleStyle.Render("voidwatch")}

	cetus := m.snapshot.Cetus
	if !cetus.Expiry.IsZero() {
		if cetus.IsDay(m.now) {
			parts = append(parts, dayStyle.Render("Cetus: day, "+FormatDuration(cetus.TillCycle(m.now))+" left"))
		} else {
			parts = append(parts, nightStyle.Render("Cetus: night, "+FormatDuration(cetus.TillCycle(m.now))+" left"))
		}
	}
	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, "updated "+m.snapshot.LastUpdated.Format("15:04:05"))
	}
	if m.snapshot.LastError != nil {
		parts = append(parts, errorStyle.Render("stale: "+m.snapshot.LastError.Error()))
	}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(m.err.Error()))
	}
	return strings.Join(parts, "   ")
}

func (m Model) footerLine() string {
	p := m.snapshot.Prefs
	label := "fissures"
	if m.view == viewInvasions {
		label = "invasions"
	}
	return fmt.Sprintf(
		"[%s]  tab switch view  f capture alerts: %s  i invasion alerts: %s  s test sound  q quit",
		label, onOff(p.NotifyVoidCapture), onOff(p.NotifyEpicInvasion),
	)
}

// Run blocks until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil || opts.Control == nil {
		return errors.New("ui requires a store and a controller")
	}

	program := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		// Cancellation is the normal shutdown path, not a failure.
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
