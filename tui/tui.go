// Package tui provides a Bubble Tea terminal dashboard: two multi-select
// lists (years, types), KPIs, and every chart drawn as horizontal bars.
// Once the terminal size is known the controls stay pinned at the top and
// the charts scroll in a viewport below them.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spektr-org/marquee/engine"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E50914"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	kpiStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 2)

	listStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#6C757D")).
			Padding(0, 1)

	focusedListStyle = listStyle.
				BorderForeground(lipgloss.Color("#E50914"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500")).
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E50914"))
)

const (
	focusYears = iota
	focusTypes
)

const (
	labelWidth  = 24
	minBarWidth = 10
	minListRows = 3
)

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	view engine.RecordView
	opts []engine.Option
	keys keyMap

	years    []int
	types    []string
	selYears map[int]bool
	selTypes map[string]bool

	focus  int
	cursor [2]int

	dash   *engine.Dashboard
	charts viewport.Model

	width  int
	height int
}

// NewModel creates a model with every known year and type selected.
func NewModel(view engine.RecordView, opts ...engine.Option) Model {
	all := engine.DefaultSelection(view)
	m := Model{
		view:     view,
		opts:     opts,
		keys:     defaultKeys(),
		years:    all.Years,
		types:    all.Types,
		selYears: make(map[int]bool, len(all.Years)),
		selTypes: make(map[string]bool, len(all.Types)),
		charts:   viewport.New(0, 0),
		width:    100,
	}
	m.selectAll(focusYears)
	m.selectAll(focusTypes)
	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Selection returns the checked years and types in option order.
func (m Model) Selection() engine.Selection {
	sel := engine.Selection{Years: []int{}, Types: []string{}}
	for _, y := range m.years {
		if m.selYears[y] {
			sel.Years = append(sel.Years, y)
		}
	}
	for _, t := range m.types {
		if m.selTypes[t] {
			sel.Types = append(sel.Types, t)
		}
	}
	return sel
}

// Dashboard returns the dashboard for the current selection.
func (m Model) Dashboard() *engine.Dashboard {
	return m.dash
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			m.focus = 1 - m.focus
			m.layout()

		case key.Matches(msg, m.keys.Up):
			if m.cursor[m.focus] > 0 {
				m.cursor[m.focus]--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor[m.focus] < m.listLen(m.focus)-1 {
				m.cursor[m.focus]++
			}

		case key.Matches(msg, m.keys.PgUp):
			m.charts.SetYOffset(m.charts.YOffset - m.charts.Height)

		case key.Matches(msg, m.keys.PgDown):
			m.charts.SetYOffset(m.charts.YOffset + m.charts.Height)

		case key.Matches(msg, m.keys.Toggle):
			m.toggle()
			m.refresh()

		case key.Matches(msg, m.keys.All):
			m.selectAll(m.focus)
			m.refresh()

		case key.Matches(msg, m.keys.None):
			m.selectNone(m.focus)
			m.refresh()
		}
	}
	return m, nil
}

func (m *Model) listLen(list int) int {
	if list == focusYears {
		return len(m.years)
	}
	return len(m.types)
}

func (m *Model) toggle() {
	i := m.cursor[m.focus]
	if m.focus == focusYears {
		if i < len(m.years) {
			m.selYears[m.years[i]] = !m.selYears[m.years[i]]
		}
		return
	}
	if i < len(m.types) {
		m.selTypes[m.types[i]] = !m.selTypes[m.types[i]]
	}
}

func (m *Model) selectAll(list int) {
	if list == focusYears {
		for _, y := range m.years {
			m.selYears[y] = true
		}
		return
	}
	for _, t := range m.types {
		m.selTypes[t] = true
	}
}

func (m *Model) selectNone(list int) {
	if list == focusYears {
		clear(m.selYears)
		return
	}
	clear(m.selTypes)
}

// refresh re-runs the pipeline for the current selection.
func (m *Model) refresh() {
	m.dash = engine.BuildDashboard(m.view, m.Selection(), m.opts...)
	m.layout()
}

// layout sizes the chart viewport to the rows left under the header.
// It is a no-op until the first WindowSizeMsg.
func (m *Model) layout() {
	if m.height <= 0 {
		return
	}
	// blank separator + help line
	h := m.height - lipgloss.Height(m.header()) - 2
	if h < 1 {
		h = 1
	}
	m.charts.Width = m.width
	m.charts.Height = h
	m.charts.SetContent(m.chartsContent())
}

// ============================================================================
// VIEW
// ============================================================================

// View renders the UI. Before the terminal size is known everything is
// printed in full; afterwards the output never exceeds the window height.
func (m Model) View() string {
	help := dimStyle.Render(m.keys.helpLine())
	if m.height <= 0 {
		return m.header() + "\n\n" + m.chartsContent() + "\n" + help + "\n"
	}

	out := m.header() + "\n\n" + m.charts.View() + "\n" + help
	lines := strings.Split(out, "\n")
	if len(lines) > m.height {
		lines = lines[:m.height]
	}
	return strings.Join(lines, "\n")
}

// header renders the pinned part of the screen: titles, KPIs and lists.
func (m Model) header() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.dash.Title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.dash.Description))
	b.WriteString("\n\n")
	b.WriteString(headingStyle.Render(m.dash.Heading))
	b.WriteString("\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		kpiStyle.Render("Total Titles\n"+engine.FormatInt(m.dash.KPIs.Total)),
		kpiStyle.Render("Movies\n"+engine.FormatInt(m.dash.KPIs.Movies)),
		kpiStyle.Render("TV Shows\n"+engine.FormatInt(m.dash.KPIs.Shows)),
	))
	b.WriteString("\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderList(focusYears, "Year Added"),
		" ",
		m.renderList(focusTypes, "Type"),
	))
	return b.String()
}

// chartsContent renders every chart, separated by blank lines.
func (m Model) chartsContent() string {
	var b strings.Builder
	for i, c := range m.dash.Charts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderBars(c, m.barWidth()))
	}
	return strings.TrimRight(b.String(), "\n")
}

// listRows is how many options each list shows at once.
func (m Model) listRows() int {
	if m.height <= 0 {
		return 0
	}
	rows := (m.height - 12) / 3
	if rows < minListRows {
		return minListRows
	}
	return rows
}

func (m Model) renderList(list int, title string) string {
	var labels []string
	var checked []bool
	if list == focusYears {
		for _, y := range m.years {
			labels = append(labels, strconv.Itoa(y))
			checked = append(checked, m.selYears[y])
		}
	} else {
		for _, t := range m.types {
			labels = append(labels, t)
			checked = append(checked, m.selTypes[t])
		}
	}

	start, end := 0, len(labels)
	if rows := m.listRows(); rows > 0 && len(labels) > rows {
		if c := m.cursor[list]; c >= rows {
			start = c - rows + 1
		}
		end = start + rows
		title += dimStyle.Render(fmt.Sprintf(" %d-%d/%d", start+1, end, len(labels)))
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(title))
	for i := start; i < end; i++ {
		label := labels[i]
		box := "[ ]"
		if checked[i] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, label)
		if m.focus == list && m.cursor[list] == i {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString("\n")
		b.WriteString(line)
	}

	if m.focus == list {
		return focusedListStyle.Render(b.String())
	}
	return listStyle.Render(b.String())
}

func (m Model) barWidth() int {
	w := m.width - labelWidth - 12
	if w < minBarWidth {
		return minBarWidth
	}
	return w
}

// renderBars draws a chart as one horizontal bar per point, scaled to the
// largest value.
func renderBars(c *engine.ChartConfig, width int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(c.Title))
	b.WriteString("\n")

	points := c.Points()
	if len(points) == 0 {
		b.WriteString(dimStyle.Render("  no data"))
		b.WriteString("\n")
		return b.String()
	}

	maxValue := 0.0
	for _, p := range points {
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}

	for _, p := range points {
		n := int(p.Value / maxValue * float64(width))
		if n < 1 {
			n = 1
		}
		label := p.Label
		if r := []rune(label); len(r) > labelWidth {
			label = string(r[:labelWidth-1]) + "…"
		}
		fmt.Fprintf(&b, "  %-*s %s %s\n", labelWidth, label,
			barStyle.Render(strings.Repeat("█", n)), engine.FormatInt(int(p.Value)))
	}
	return b.String()
}

// Run starts the TUI application.
func Run(view engine.RecordView, opts ...engine.Option) error {
	p := tea.NewProgram(NewModel(view, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
