package progress

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bcmr/internal/config"
)

// tuiRenderer is the full-screen bordered renderer: two gradient progress
// bars (total, current-file), a detail line, and a filename line. It owns
// a bubbletea program running on the alt screen; every Renderer method
// sends a message to that program rather than mutating shared state
// directly from the caller's goroutine, so all repaints happen on
// bubbletea's own Update/View cycle.
type tuiRenderer struct {
	guard
	cfg              config.Config
	program          *tea.Program
	started          sync.Once
	doneCh           chan struct{}
	bytesSinceRepaint uint64
	stopSuspendWatch func()
}

func newTuiRenderer(cfg config.Config) *tuiRenderer {
	r := &tuiRenderer{cfg: cfg, doneCh: make(chan struct{})}
	m := tuiModel{styles: newUIStyles(cfg)}
	r.program = tea.NewProgram(m, tea.WithAltScreen())
	r.stopSuspendWatch = watchSuspend(
		func() { r.program.ReleaseTerminal() },
		func() { _ = r.program.RestoreTerminal() },
	)
	go func() {
		_, _ = r.program.Run()
		close(r.doneCh)
	}()
	return r
}

type tuiModel struct {
	state  State
	styles uiStyles
}

type (
	totalItemsMsg  int
	itemDoneMsg    struct{}
	currentFileMsg struct {
		name string
		size uint64
	}
	incCurrentMsg  uint64
	operationMsg   string
	tickMsg        struct{}
)

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		return m, nil
	case totalItemsMsg:
		n := int(v)
		m.state.ItemsTotal = &n
	case itemDoneMsg:
		m.state.ItemsProcessed++
	case currentFileMsg:
		m.state.CurrentFile = v.name
		m.state.CurrentFileSize = v.size
		m.state.CurrentFileProgress = 0
	case incCurrentMsg:
		m.state.CurrentBytes += uint64(v)
		m.state.CurrentFileProgress += uint64(v)
		m.state.RefreshSpeed(nowFn())
	case operationMsg:
		m.state.OperationType = string(v)
	case tickMsg:
		// repaint only; RefreshSpeed already gates on 100ms internally.
		m.state.RefreshSpeed(nowFn())
	case tea.KeyMsg:
		if v.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m tuiModel) View() string {
	s := &m.state
	totalPct := Percent(s.CurrentBytes, s.TotalBytes)
	filePct := Percent(s.CurrentFileProgress, s.CurrentFileSize)

	totalBar := m.styles.gradientBar(totalPct, 40)
	fileBar := m.styles.gradientBar(filePct, 40)

	eta := formatETA(s.EstimateETA())
	detail := fmt.Sprintf("%s / %s   %.2f MiB/s   ETA %s",
		formatBytes(s.CurrentBytes), formatBytes(s.TotalBytes), s.LastSpeed, eta)

	title := orDefault(s.OperationType, "Progress")
	body := fmt.Sprintf("%s\n%s %d%%\n%s\n%s %d%%\n%s",
		m.styles.title.Render(title),
		totalBar, totalPct,
		m.styles.info.Render(detail),
		fileBar, filePct,
		m.styles.info.Render(truncateName(s.CurrentFile, 60)),
	)

	if s.ItemsTotal != nil {
		body += "\n" + m.styles.info.Render(fmt.Sprintf("items %d/%d", s.ItemsProcessed, *s.ItemsTotal))
	}

	return m.styles.box.Render(body)
}

type uiStyles struct {
	box   lipgloss.Style
	title lipgloss.Style
	info  lipgloss.Style
	theme config.ThemeConfig
}

func newUIStyles(cfg config.Config) uiStyles {
	border := borderFor(cfg.Progress.Layout.BoxStyle)
	return uiStyles{
		box: lipgloss.NewStyle().
			Border(border).
			BorderForeground(lipgloss.Color(cfg.Progress.Theme.BorderColor)).
			Padding(0, 1),
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(cfg.Progress.Theme.TitleColor)),
		info:  lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Progress.Theme.TextColor)),
		theme: cfg.Progress.Theme,
	}
}

func borderFor(style string) lipgloss.Border {
	switch style {
	case "single":
		return lipgloss.NormalBorder()
	case "heavy":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

func (u uiStyles) gradientBar(pct, width int) string {
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	var out string
	for i := 0; i < filled; i++ {
		t := 0.0
		if width > 1 {
			t = float64(i) / float64(width-1)
		}
		color := gradientColor(u.theme.BarGradient, t)
		out += lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(u.theme.BarCompleteChar)
	}
	for i := filled; i < width; i++ {
		out += u.theme.BarIncompleteChar
	}
	return out
}

func (r *tuiRenderer) SetTotalItems(total int)             { r.program.Send(totalItemsMsg(total)) }
func (r *tuiRenderer) IncItemsProcessed()                   { r.program.Send(itemDoneMsg{}) }
func (r *tuiRenderer) SetCurrentFile(name string, size uint64) {
	r.program.Send(currentFileMsg{name: name, size: size})
}
// IncCurrent accumulates deltas in bytesSinceRepaint and sends them to the
// running program only once at least 1 MiB has built up, so repaints from
// byte progress happen on 1 MiB boundaries; Finish flushes any remainder so
// the byte totals end exact.
func (r *tuiRenderer) IncCurrent(delta uint64) {
	r.bytesSinceRepaint += delta
	if r.bytesSinceRepaint < oneMiB {
		return
	}
	pending := r.bytesSinceRepaint
	r.bytesSinceRepaint = 0
	r.program.Send(incCurrentMsg(pending))
}
func (r *tuiRenderer) SetOperationType(label string) { r.program.Send(operationMsg(label)) }
func (r *tuiRenderer) Tick()                          { r.program.Send(tickMsg{}) }

func (r *tuiRenderer) Finish() {
	if r.bytesSinceRepaint > 0 {
		r.program.Send(incCurrentMsg(r.bytesSinceRepaint))
		r.bytesSinceRepaint = 0
	}
	r.program.Send(tea.Quit())
	<-r.doneCh
	if r.stopSuspendWatch != nil {
		r.stopSuspendWatch()
	}
}
