package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muurk/luxctl/internal/heatpump"
	"github.com/muurk/luxctl/internal/session"
)

// DefaultRefreshInterval is how often the dashboard re-reads the controller.
const DefaultRefreshInterval = 10 * time.Second

type readMsg struct {
	values []heatpump.Value
	err    error
}

type refreshMsg time.Time

// Model is the bubbletea model for the monitor dashboard.
type Model struct {
	sess     *session.Session
	interval time.Duration

	spin  spinner.Model
	tbl   table.Model
	ready bool

	lastErr    error
	lastUpdate time.Time
}

// New creates a dashboard for an already-connected session.
func New(sess *session.Session, interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	columns := []table.Column{
		{Title: "Idx", Width: 5},
		{Title: "Name", Width: 34},
		{Title: "Value", Width: 12},
		{Title: "Raw", Width: 12},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	return Model{
		sess:     sess,
		interval: interval,
		spin:     sp,
		tbl:      tbl,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.readCmd())
}

// readCmd performs one read cycle off the UI goroutine.
func (m Model) readCmd() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		if err := sess.Read(context.Background()); err != nil {
			return readMsg{err: err}
		}
		return readMsg{values: sess.Calculations.All()}
	}
}

// scheduleRefresh fires after the refresh interval.
func (m Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case readMsg:
		m.lastErr = msg.err
		if msg.err == nil {
			m.ready = true
			m.lastUpdate = time.Now()
			m.tbl.SetRows(buildRows(msg.values))
		}
		return m, m.scheduleRefresh()

	case refreshMsg:
		return m, m.readCmd()

	case tea.WindowSizeMsg:
		m.tbl.SetHeight(msg.Height - 6)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	header := titleStyle.Render("LUXCTL MONITOR — " + m.sess.Addr())

	if !m.ready {
		status := m.spin.View() + " waiting for first read cycle..."
		if m.lastErr != nil {
			status += "\n" + statusErrStyle.Render(m.lastErr.Error())
		}
		return header + "\n\n" + status + "\n"
	}

	status := statusOKStyle.Render(fmt.Sprintf("updated %s", m.lastUpdate.Format("15:04:05")))
	if m.lastErr != nil {
		status = statusErrStyle.Render("read failed: " + m.lastErr.Error())
	}

	footer := footerStyle.Render("↑/↓ scroll · q quit")
	return header + "  " + status + "\n" +
		tableBorderStyle.Render(m.tbl.View()) + "\n" +
		footer + "\n"
}

func buildRows(values []heatpump.Value) []table.Row {
	rows := make([]table.Row, len(values))
	for i, v := range values {
		display := fmt.Sprintf("%d", v.Raw)
		if suffix := v.Unit.String(); suffix != "" {
			display = fmt.Sprintf("%.1f %s", v.Scaled, suffix)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", v.Index),
			v.Name,
			display,
			fmt.Sprintf("%d", v.Raw),
		}
	}
	return rows
}

// Run connects the full-screen dashboard program to the terminal and blocks
// until the user quits.
func Run(sess *session.Session, interval time.Duration) error {
	p := tea.NewProgram(New(sess, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
