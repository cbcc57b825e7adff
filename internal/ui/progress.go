// Package ui renders the terminal progress view for directory runs.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"sqwipt/internal/driver"
)

// maxRows bounds the file list; finished files scroll out first.
const maxRows = 12

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	countStyle   = lipgloss.NewStyle().Faint(true)
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	queuedStyle  = lipgloss.NewStyle().Faint(true)
)

type fileRow struct {
	path   string
	stage  driver.Stage
	status driver.Status
	seq    int // order of the last update, for scrolling
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	phase   driver.Stage
	updates int
	width   int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that follows events until the
// channel is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(workingStyle))
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 60

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.rows[i] = fileRow{path: file, status: driver.StatusQueued}
		m.byPath[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		updated, cmd := m.bar.Update(msg)
		m.bar = updated.(progress.Model)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// next waits for one event on the channel.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		m.phase = ev.Stage
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	m.updates++
	row := &m.rows[i]
	row.stage, row.status, row.seq = ev.Stage, ev.Status, m.updates
	return m.bar.SetPercent(m.fraction())
}

// fraction counts finished files fully and files in progress as half.
func (m *progressModel) fraction() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		switch r.status {
		case driver.StatusDone, driver.StatusError:
			sum++
		case driver.StatusWorking:
			sum += 0.5
		}
	}
	return sum / float64(len(m.rows))
}

func (m *progressModel) counts() (finished, failed int) {
	for _, r := range m.rows {
		switch r.status {
		case driver.StatusDone:
			finished++
		case driver.StatusError:
			finished++
			failed++
		}
	}
	return finished, failed
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var sb strings.Builder

	lead := m.spinner.View()
	if m.done {
		lead = "done:"
	}
	title := m.title
	if label := stageVerb(m.phase); label != "" && !m.done {
		title += " (" + label + ")"
	}
	finished, failed := m.counts()
	summary := fmt.Sprintf("%d/%d", finished, len(m.rows))
	if failed > 0 {
		summary += fmt.Sprintf(", %d with errors", failed)
	}
	fmt.Fprintf(&sb, "%s %s %s\n\n", lead, titleStyle.Render(title), countStyle.Render(summary))

	visible, hidden := m.visibleRows()
	nameWidth := max(m.width-14, 20)
	for _, r := range visible {
		label, style := rowLabel(r)
		fmt.Fprintf(&sb, "  %s %s\n", style.Render(fmt.Sprintf("%9s", label)), truncate(r.path, nameWidth))
	}
	if hidden > 0 {
		sb.WriteString(countStyle.Render(fmt.Sprintf("  ... %d more", hidden)))
		sb.WriteByte('\n')
	}

	sb.WriteByte('\n')
	if m.done {
		sb.WriteString(m.bar.ViewAs(1))
	} else {
		sb.WriteString(m.bar.View())
	}
	sb.WriteByte('\n')
	return sb.String()
}

// visibleRows keeps failed and working files in view and fills the rest with
// the most recently updated ones, preserving input order.
func (m *progressModel) visibleRows() ([]fileRow, int) {
	if len(m.rows) <= maxRows {
		return m.rows, 0
	}
	keep := make([]bool, len(m.rows))
	budget := maxRows
	for i, r := range m.rows {
		if budget > 0 && (r.status == driver.StatusError || r.status == driver.StatusWorking) {
			keep[i] = true
			budget--
		}
	}
	for budget > 0 {
		best := -1
		for i, r := range m.rows {
			if keep[i] {
				continue
			}
			if best < 0 || r.seq > m.rows[best].seq {
				best = i
			}
		}
		keep[best] = true
		budget--
	}
	out := make([]fileRow, 0, maxRows)
	for i, r := range m.rows {
		if keep[i] {
			out = append(out, r)
		}
	}
	return out, len(m.rows) - len(out)
}

func rowLabel(r fileRow) (string, lipgloss.Style) {
	switch r.status {
	case driver.StatusDone:
		return "done", doneStyle
	case driver.StatusError:
		return "error", errorStyle
	case driver.StatusWorking:
		if verb := stageVerb(r.stage); verb != "" {
			return verb, workingStyle
		}
		return "working", workingStyle
	default:
		return "queued", queuedStyle
	}
}

func stageVerb(stage driver.Stage) string {
	switch stage {
	case driver.StageLoad:
		return "loading"
	case driver.StageLex:
		return "lexing"
	case driver.StageParse:
		return "parsing"
	}
	return ""
}

// truncate shortens value to width display cells, marking the cut with "...".
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	default:
		return runewidth.Truncate(value, width, "...")
	}
}
