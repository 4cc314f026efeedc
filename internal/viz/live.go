package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/physics"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	trailCapacity   = 400
	frameRate       = 30
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Factory builds a fresh simulator positioned at t = 0. Live calls it on
// start and on every reset.
type Factory func() (*sim.Simulator, error)

type LiveOptions struct {
	Title string
	// StepsPerFrame is the number of timesteps simulated per frame.
	StepsPerFrame int
	// Trails draws the recent path of every body.
	Trails bool
}

// Live is a bubbletea model that advances a simulator in real time and
// draws the bodies on a braille canvas.
type Live struct {
	factory Factory
	opts    LiveOptions

	sim    *sim.Simulator
	canvas *Canvas
	proj   Projection
	trails [][]point

	energyHistory []float64
	initialEnergy float64
	running       bool
	showHelp      bool
	err           error
}

type point struct{ x, y int }

// NewLive builds the first simulator and frames the view around the
// initial positions.
func NewLive(factory Factory, opts LiveOptions) (*Live, error) {
	if opts.StepsPerFrame <= 0 {
		opts.StepsPerFrame = 1
	}
	if opts.Title == "" {
		opts.Title = "n-body"
	}
	l := &Live{
		factory: factory,
		opts:    opts,
		canvas:  NewCanvas(width, height),
		running: true,
	}
	if err := l.reset(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Live) reset() error {
	s, err := l.factory()
	if err != nil {
		return err
	}
	l.sim = s

	bodies := s.Bodies()
	xs := make([]float64, len(bodies))
	ys := make([]float64, len(bodies))
	for i, b := range bodies {
		xs[i], ys[i] = b.Pos.X, b.Pos.Y
	}
	l.proj = Fit(xs, ys, l.canvas.SubWidth(), l.canvas.SubHeight(), 0.5)

	l.trails = make([][]point, len(bodies))
	l.initialEnergy = physics.Energy(bodies, s.Config().G)
	l.energyHistory = l.energyHistory[:0]
	l.err = nil
	return nil
}

func (l *Live) Init() tea.Cmd {
	return tick()
}

func (l *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return l, tea.Quit
		case " ":
			l.running = !l.running
		case "r":
			if err := l.reset(); err != nil {
				l.err = err
			}
		case "+", "=":
			l.opts.StepsPerFrame *= 2
		case "-", "_":
			if l.opts.StepsPerFrame > 1 {
				l.opts.StepsPerFrame /= 2
			}
		case "z":
			l.proj = l.proj.Zoom(1.25)
			l.clearTrails()
		case "Z":
			l.proj = l.proj.Zoom(0.8)
			l.clearTrails()
		case "c":
			l.clearTrails()
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			l.showHelp = !l.showHelp
		}
	case TickMsg:
		if l.running && l.err == nil {
			l.advance()
		}
		return l, tick()
	}
	return l, nil
}

// advance simulates up to StepsPerFrame timesteps, recording trails and
// energy after each.
func (l *Live) advance() {
	for i := 0; i < l.opts.StepsPerFrame; i++ {
		_, ok, err := l.sim.Next(nil)
		if err != nil {
			l.err = err
			return
		}
		if !ok {
			return
		}
		l.record()
	}
}

func (l *Live) record() {
	bodies := l.sim.Bodies()
	for i, b := range bodies {
		px, py, ok := l.proj.Project(b.Pos.X, b.Pos.Y)
		if !ok || !l.opts.Trails {
			continue
		}
		trail := l.trails[i]
		if n := len(trail); n > 0 && trail[n-1] == (point{px, py}) {
			continue
		}
		trail = append(trail, point{px, py})
		if len(trail) > trailCapacity {
			trail = trail[1:]
		}
		l.trails[i] = trail
	}

	l.energyHistory = append(l.energyHistory, physics.Energy(bodies, l.sim.Config().G))
	if len(l.energyHistory) > historyCapacity {
		l.energyHistory = l.energyHistory[1:]
	}
}

func (l *Live) clearTrails() {
	for i := range l.trails {
		l.trails[i] = l.trails[i][:0]
	}
}

func (l *Live) draw() {
	l.canvas.Clear()
	for _, trail := range l.trails {
		for j := 1; j < len(trail); j++ {
			l.canvas.DrawLine(trail[j-1].x, trail[j-1].y, trail[j].x, trail[j].y)
		}
	}

	for _, b := range l.sim.Bodies() {
		px, py, ok := l.proj.Project(b.Pos.X, b.Pos.Y)
		if !ok {
			continue
		}
		// heavier bodies get a larger marker
		r := 1
		if b.Mass() >= 0.1 {
			r = 2
		}
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				l.canvas.Set(px+dx, py+dy)
			}
		}
	}
}

func (l *Live) status() string {
	switch {
	case l.err != nil:
		return lipgloss.NewStyle().Foreground(CurrentTheme.Error).Bold(true).Render("ERROR")
	case l.sim.Done():
		return StatusDone.Render("COMPLETE")
	case !l.running:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

// driftHistory is the relative energy error of every sample in the
// energy history.
func (l *Live) driftHistory() []float64 {
	out := make([]float64, len(l.energyHistory))
	for i, e := range l.energyHistory {
		out[i] = math.Abs(e-l.initialEnergy) / math.Abs(l.initialEnergy)
	}
	return out
}

func (l *Live) View() string {
	l.draw()
	canvasView := canvasStyle.Foreground(CurrentTheme.Primary).Render(l.canvas.String())

	cfg := l.sim.Config()
	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(l.opts.Title), CurrentTheme.Primary, CurrentTheme.Secondary) + "\n\n")
	s.WriteString(l.status() + "\n\n")

	if len(l.energyHistory) > 1 {
		chart := asciigraph.Plot(l.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	end := cfg.End()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3f / %.3f", l.sim.Time(), end)) + "\n")
	s.WriteString(ProgressBar(math.Min(l.sim.Time()/end, 1), 30) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d (x%d/frame)", l.sim.Steps(), l.opts.StepsPerFrame)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", len(l.trails))) + "\n")
	s.WriteString(labelStyle.Render("Update") + valueStyle.Render(cfg.Update.String()) + "\n")

	if n := len(l.energyHistory); n > 0 {
		energy := l.energyHistory[n-1]
		s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.6f", energy)) + "\n")
		if l.initialEnergy != 0 {
			drift := math.Abs(energy-l.initialEnergy) / math.Abs(l.initialEnergy)
			s.WriteString(labelStyle.Render("Drift") + valueStyle.Render(fmt.Sprintf("%.2e", drift)) + "\n")
			s.WriteString(SparklineChart(l.driftHistory(), 30) + "\n")
		}
	}
	if l.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Error).Width(40).Render(l.err.Error()) + "\n")
	}

	s.WriteString("\n" + Separator(24) + "\n")
	s.WriteString(KeyHint.Render("SP:Pause R:Reset Q:Quit\n+/-:Speed Z/z:Zoom ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if l.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Restart from t = 0       ║
║  Q        - Quit                     ║
║  + / -    - Double/halve speed       ║
║  z / Z    - Zoom in/out              ║
║  C        - Clear trails             ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
