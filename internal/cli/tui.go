package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/tooltipper/pkg/render"
	"github.com/matzehuels/tooltipper/pkg/session"
)

// Rows used by the demo chrome: title and help above the page, status below.
const (
	demoHeaderRows = 2
	demoFooterRows = 1
)

var (
	demoHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	demoStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	demoErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	demoPageStyle   = lipgloss.NewStyle().Foreground(colorWhite)
)

// reloadMsg asks the demo to rebuild its session from the fixture file.
type reloadMsg struct{}

// loader builds a fixture; the demo calls it on start and on every reload.
type loader func() (*session.Fixture, error)

// DemoModel is the bubbletea model for the interactive page. Mouse clicks
// land on the headless document, so tooltips open, close and clamp exactly
// as the library places them.
type DemoModel struct {
	title  string
	load   loader
	logger *log.Logger
	cellW  int
	cellH  int

	sess   *session.Session
	width  int // terminal columns
	height int // terminal rows
	next   int // trigger index for tab
	status string
	err    error
}

// NewDemoModel loads the first session. A fixture that fails to load is an
// error; binding problems are shown in the status line.
func NewDemoModel(title string, load loader, logger *log.Logger, cellW, cellH int) (*DemoModel, error) {
	m := &DemoModel{title: title, load: load, logger: logger, cellW: max(cellW, 1), cellH: max(cellH, 1)}
	if err := m.rebuild(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *DemoModel) rebuild() error {
	f, err := m.load()
	if err != nil {
		return err
	}
	s, err := session.New(f, session.WithLogger(m.logger))
	if s == nil {
		return err
	}
	if m.sess != nil {
		m.sess.Close()
	}
	m.sess = s
	m.next = 0
	m.err = err
	m.status = "loaded " + m.title
	if m.width > 0 {
		m.resizePage()
	}
	return nil
}

func (m *DemoModel) resizePage() {
	rows := max(m.height-demoHeaderRows-demoFooterRows, 1)
	m.sess.Resize(m.width*m.cellW, rows*m.cellH)
}

func (m *DemoModel) Init() tea.Cmd {
	return nil
}

func (m *DemoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.sess.Close()
			return m, tea.Quit
		case "esc":
			m.apply(session.Step{Kind: session.StepOutside})
		case "tab":
			triggers := m.sess.Fixture().Triggers
			if len(triggers) > 0 {
				id := triggers[m.next%len(triggers)].ID
				m.next++
				m.apply(session.Step{Kind: session.StepClick, Target: id})
			}
		case "r":
			m.reload()
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		row := msg.Y - demoHeaderRows
		if row < 0 || row >= m.height-demoHeaderRows-demoFooterRows {
			return m, nil
		}
		id := m.sess.ClickAt(row*m.cellH, msg.X*m.cellW)
		m.err = nil
		m.status = "clicked " + id
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizePage()
	case reloadMsg:
		m.reload()
	}
	return m, nil
}

func (m *DemoModel) apply(step session.Step) {
	if err := m.sess.Apply(step); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = step.String()
}

func (m *DemoModel) reload() {
	if err := m.rebuild(); err != nil {
		m.err = err
		m.logger.Warn("reload failed", "err", err)
	}
}

func (m *DemoModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("tooltipper demo") + " " + StyleDim.Render(m.title))
	b.WriteString("\n")
	b.WriteString(demoHelpStyle.Render("click a trigger  tab next trigger  esc outside click  r reload  q quit"))
	b.WriteString("\n")

	st := m.sess.State()
	page := render.RenderText(st, render.WithCellSize(m.cellW, m.cellH))
	b.WriteString(demoPageStyle.Render(page))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(demoErrorStyle.Render(iconError + " " + firstLine(m.err.Error())))
		return b.String()
	}
	status := m.status
	if p, ok := st.OpenPanel(); ok {
		status += fmt.Sprintf("  %s open at (%d,%d) pointer %d clamp %s",
			p.Name, p.Rect.Top, p.Rect.Left, p.PointerLeft, p.Clamp)
	}
	b.WriteString(demoStatusStyle.Render(status))
	return b.String()
}

// State exposes the current session snapshot.
func (m *DemoModel) State() session.State {
	return m.sess.State()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
