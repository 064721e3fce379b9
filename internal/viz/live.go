package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/pendulab/internal/controls"
	"github.com/san-kum/pendulab/internal/interact"
	"github.com/san-kum/pendulab/internal/metrics"
	"github.com/san-kum/pendulab/internal/pendulum"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	trailCapacity   = 200

	// canvasStyle padding: the canvas starts this many cells from the
	// terminal's top-left corner.
	canvasOffsetX = 2
	canvasOffsetY = 1
)

type TickMsg time.Time

type LiveOptions struct {
	FPS    int
	Cols   int
	Rows   int
	Logger *zap.Logger
}

type point struct{ x, y int }

// Live is the terminal host: it is the frame driver, the pointer source
// (terminal mouse), the control surface (keyboard) and the renderer for one
// pendulum. Bubble Tea delivers every message on one goroutine, so the
// controller is never entered concurrently.
type Live struct {
	ctrl          *interact.Controller
	surface       *controls.Surface
	energy        *metrics.Energy
	logger        *zap.Logger
	sliders       []controls.Slider
	canvas        *Canvas
	view          Viewport
	interval      time.Duration
	running       bool
	selected      int
	frames        int
	trail         []point
	energyHistory []float64
	showHelp      bool
}

func NewLive(ctrl *interact.Controller, opts LiveOptions) *Live {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Cols <= 0 {
		opts.Cols = width
	}
	if opts.Rows <= 0 {
		opts.Rows = height
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	p := ctrl.Pendulum()
	return &Live{
		ctrl:          ctrl,
		surface:       controls.NewSurface(p),
		energy:        metrics.NewEnergy(&p.Config),
		logger:        opts.Logger,
		sliders:       controls.Sliders(),
		canvas:        NewCanvas(opts.Cols, opts.Rows),
		view:          FitViewport(opts.Cols, opts.Rows, p.Origin(), maxReach()),
		interval:      time.Second / time.Duration(opts.FPS),
		running:       true,
		trail:         make([]point, 0, trailCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

// maxReach is the farthest a bob edge can get from the pivot with the
// sliders at their limits.
func maxReach() float64 {
	var reach float64
	for _, name := range []string{controls.Length1, controls.Length2, controls.Mass2} {
		s, _ := controls.Lookup(name)
		reach += s.Max
	}
	return reach
}

func (m *Live) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Live) Init() tea.Cmd {
	return m.tick()
}

func (m *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		m.frame()
		return m, m.tick()
	}
	return m, nil
}

func (m *Live) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.surface.Reset()
		m.trail = m.trail[:0]
		m.energyHistory = m.energyHistory[:0]
		m.energy.Reset()
		m.logger.Info("reset")
	case "tab":
		m.selected = (m.selected + 1) % len(m.sliders)
	case "shift+tab":
		m.selected = (m.selected + len(m.sliders) - 1) % len(m.sliders)
	case "up", "k":
		m.nudge(1)
	case "down", "j":
		m.nudge(-1)
	case "pgup":
		m.nudge(10)
	case "pgdown":
		m.nudge(-10)
	case "?":
		m.showHelp = !m.showHelp
	}
	return nil
}

func (m *Live) nudge(steps int) {
	name := m.sliders[m.selected].Name
	v, err := m.surface.Nudge(name, steps)
	if err != nil {
		m.logger.Error("nudge failed", zap.String("control", name), zap.Error(err))
		return
	}
	m.logger.Debug("control changed", zap.String("control", name), zap.Float64("value", v))
}

// pointerAt converts a terminal cell to rendering space.
func (m *Live) pointerAt(x, y int) pendulum.Vec2 {
	return m.view.CellToModel(x-canvasOffsetX, y-canvasOffsetY)
}

func (m *Live) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.ctrl.PointerDown(m.pointerAt(msg.X, msg.Y))
		}
	case tea.MouseActionMotion:
		m.ctrl.PointerMove(m.pointerAt(msg.X, msg.Y))
	case tea.MouseActionRelease:
		m.ctrl.PointerUp()
	}
}

// frame runs one frame of the simulation. User pause stops the frame
// driver; a drag pauses integration inside the controller.
func (m *Live) frame() {
	if !m.running {
		return
	}
	m.ctrl.Frame()
	m.frames++

	p := m.ctrl.Pendulum()
	m.energy.Observe(p.Motion.Vector(), float64(m.frames)*pendulum.FrameDt)
	if e := m.energy.Last(); finite(e) {
		m.energyHistory = append(m.energyHistory, e)
		if len(m.energyHistory) > historyCapacity {
			m.energyHistory = m.energyHistory[1:]
		}
	}

	_, bob2 := p.Bobs()
	if finite(bob2.X) && finite(bob2.Y) {
		x, y := m.view.ToScreen(bob2)
		m.trail = append(m.trail, point{x, y})
		if len(m.trail) > trailCapacity {
			m.trail = m.trail[1:]
		}
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// draw renders the pendulum onto the canvas. Angles that are no longer
// finite are left undrawn; the status line reports them.
func (m *Live) draw() {
	m.canvas.Clear()
	p := m.ctrl.Pendulum()

	for _, pt := range m.trail {
		m.canvas.Set(pt.x, pt.y)
	}

	ox, oy := m.view.ToScreen(p.Origin())
	m.canvas.FillCircle(ox, oy, 1)

	bob1, bob2 := p.Bobs()
	if !p.Motion.Vector().IsValid() {
		return
	}
	b1x, b1y := m.view.ToScreen(bob1)
	b2x, b2y := m.view.ToScreen(bob2)
	if !m.canvas.Near(b1x, b1y) || !m.canvas.Near(b2x, b2y) {
		return
	}

	m.canvas.DrawLine(ox, oy, b1x, b1y)
	m.canvas.DrawLine(b1x, b1y, b2x, b2y)

	r1, r2 := m.view.Length(p.Config.Mass1), m.view.Length(p.Config.Mass2)
	switch m.ctrl.State() {
	case interact.DraggingBob1:
		m.canvas.FillCircle(b1x, b1y, r1)
		m.canvas.DrawCircle(b2x, b2y, r2)
	case interact.DraggingBob2:
		m.canvas.DrawCircle(b1x, b1y, r1)
		m.canvas.FillCircle(b2x, b2y, r2)
	default:
		m.canvas.DrawCircle(b1x, b1y, r1)
		m.canvas.DrawCircle(b2x, b2y, r2)
	}
}

func (m *Live) status() string {
	p := m.ctrl.Pendulum()
	switch {
	case !p.Motion.Vector().IsValid():
		return statusUnknown.Render("UNSTABLE (non-finite state)")
	case m.ctrl.State() == interact.DraggingBob1:
		return statusDrag.Render("DRAG BOB 1")
	case m.ctrl.State() == interact.DraggingBob2:
		return statusDrag.Render("DRAG BOB 2")
	case !m.running:
		return statusPaused.Render("PAUSED")
	default:
		return statusIdle.Render("RUNNING")
	}
}

func (m *Live) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	p := m.ctrl.Pendulum()
	var s strings.Builder
	s.WriteString(headerStyle.Render("DOUBLE PENDULUM") + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", float64(m.frames)*pendulum.FrameDt))
	row("θ1 / ω1", fmt.Sprintf("%+.3f / %+.3f", p.Motion.Theta1, p.Motion.Omega1))
	row("θ2 / ω2", fmt.Sprintf("%+.3f / %+.3f", p.Motion.Theta2, p.Motion.Omega2))
	row("Energy", fmt.Sprintf("%.2f J", m.energy.Last()))

	s.WriteString("\nCONTROLS\n")
	for i, sl := range m.sliders {
		v, _ := m.surface.Value(sl.Name)
		line := fmt.Sprintf("%-9s %s %6.1f %s", sl.Label, SliderBar(v, sl.Min, sl.Max, 10), v, sl.Unit)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.UnsetWidth().Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("─────────────────────\nDrag a bob with the mouse\nSP:Pause R:Reset Q:Quit ?:Help\nTab:Select ↑↓:Adjust PgUp/PgDn:×10"))

	// The canvas always stays at the top-left so mouse cells map the same
	// way whatever the side panel shows.
	panel := s.String()
	if m.showHelp {
		panel = helpBox
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(panel))
}

const helpBox = `╔══════════════════════════════════════╗
║           KEYBOARD & MOUSE           ║
╠══════════════════════════════════════╣
║  Drag     - Grab and move a bob      ║
║  Space    - Pause/Resume frames      ║
║  R        - Reset angles/velocities  ║
║  Tab      - Next control             ║
║  Up/K     - Increase by one step     ║
║  Down/J   - Decrease by one step     ║
║  PgUp/Dn  - Ten steps at a time      ║
║  ?        - Close this help          ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the terminal host with mouse reporting enabled.
func Run(ctrl *interact.Controller, opts LiveOptions) error {
	p := tea.NewProgram(NewLive(ctrl, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
