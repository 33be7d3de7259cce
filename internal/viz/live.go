package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
	trailLength     = 120
	trailBodies     = 8
	// Energy is pairwise, so large systems skip it.
	energyLimit = 4096
)

var (
	statsStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	graphStyle = lipgloss.NewStyle().Padding(1, 0)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// LiveConfig controls a live view. Extent is the world radius visible at
// zoom 1.
type LiveConfig struct {
	Title         string
	Method        string
	Dt            float64
	StepsPerFrame int
	Extent        float64
	Theme         string
	GIFPath       string
}

// Snapshot stores a past state for replay.
type Snapshot[V vec.Vector[float64, V]] struct {
	Bodies sim.Bodies[float64, V]
	Time   float64
	Drift  float64
}

// Model integrates a system one frame at a time and draws it.
type Model[V vec.Vector[float64, V]] struct {
	cfg        LiveConfig
	integrator sim.Integrator[float64, V]
	accel      sim.AccelFunc[float64, V]

	bodies  sim.Bodies[float64, V]
	initial sim.Bodies[float64, V]
	t       float64
	energy0 float64

	canvas *Canvas
	camera *Camera
	theme  Theme
	trails [][]r3.Vec

	drift    []float64
	history  []Snapshot[V]
	playHead int

	running   bool
	showHelp  bool
	recording bool
	frames    []*image.Paletted
	status    string
}

func NewModel[V vec.Vector[float64, V]](bodies sim.Bodies[float64, V], integrator sim.Integrator[float64, V], accel sim.AccelFunc[float64, V], cfg LiveConfig) Model[V] {
	if cfg.StepsPerFrame <= 0 {
		cfg.StepsPerFrame = 1
	}
	if cfg.GIFPath == "" {
		cfg.GIFPath = "gravsim.gif"
	}
	if cfg.Extent <= 0 {
		cfg.Extent = extentOf(bodies)
	}
	m := Model[V]{
		cfg:        cfg,
		integrator: integrator,
		accel:      accel,
		bodies:     bodies.Clone(),
		initial:    bodies.Clone(),
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		camera:     NewCamera(cfg.Extent),
		theme:      GetTheme(cfg.Theme),
		trails:     make([][]r3.Vec, min(len(bodies), trailBodies)),
		drift:      make([]float64, 0, historyCapacity),
		history:    make([]Snapshot[V], 0, historyCapacity),
		playHead:   -1,
		running:    true,
	}
	m.energy0 = m.energy()
	return m
}

// extentOf is the largest distance of any body from the origin, padded.
func extentOf[V vec.Vector[float64, V]](bodies sim.Bodies[float64, V]) float64 {
	var r float64
	for _, b := range bodies {
		r = max(r, vec.Norm[float64](b.Pos))
	}
	if r == 0 {
		return 1
	}
	return 1.2 * r
}

func toR3[V vec.Vector[float64, V]](v V) r3.Vec {
	var p [3]float64
	for i := 0; i < min(v.Dim(), 3); i++ {
		p[i] = v.Axis(i)
	}
	return r3.Vec{X: p[0], Y: p[1], Z: p[2]}
}

func (m Model[V]) Init() tea.Cmd {
	return tick()
}

func (m Model[V]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			m.theme = NextTheme(m.theme)
		case "x", "y", "z":
			m.camera.Rotate(msg.String()[0], 0.1)
		case "X", "Y", "Z":
			m.camera.Rotate(strings.ToLower(msg.String())[0], -0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				for i := 0; i < m.cfg.StepsPerFrame; i++ {
					m.step()
				}
				m.record()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model[V]) step() {
	m.integrator.Step(m.bodies, m.accel, m.cfg.Dt)
	m.t += m.cfg.Dt
	for i := range m.trails {
		m.trails[i] = append(m.trails[i], toR3(m.bodies[i].Pos))
		if len(m.trails[i]) > trailLength {
			m.trails[i] = m.trails[i][1:]
		}
	}
}

func (m *Model[V]) energy() float64 {
	if len(m.bodies) > energyLimit {
		return math.NaN()
	}
	return metrics.TotalEnergy(m.bodies)
}

// Drift is the relative total energy change since the start, NaN when not
// tracked.
func (m *Model[V]) Drift() float64 {
	e := m.energy()
	if m.energy0 == 0 {
		return e - m.energy0
	}
	return (e - m.energy0) / math.Abs(m.energy0)
}

func (m *Model[V]) record() {
	d := m.Drift()
	if !math.IsNaN(d) {
		m.drift = append(m.drift, d)
		if len(m.drift) > historyCapacity {
			m.drift = m.drift[1:]
		}
	}
	m.history = append(m.history, Snapshot[V]{Bodies: m.bodies.Clone(), Time: m.t, Drift: d})
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// scrub moves the replay position, pausing live integration.
func (m *Model[V]) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model[V]) reset() {
	m.t = 0
	m.bodies = m.initial.Clone()
	for i := range m.trails {
		m.trails[i] = m.trails[i][:0]
	}
	m.drift = m.drift[:0]
	m.history = m.history[:0]
	m.playHead = -1
	if r, ok := m.integrator.(sim.Resetter); ok {
		r.Reset()
	}
}

// visible returns the bodies and time currently shown.
func (m *Model[V]) visible() (sim.Bodies[float64, V], float64) {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		snap := m.history[m.playHead]
		return snap.Bodies, snap.Time
	}
	return m.bodies, m.t
}

func (m *Model[V]) draw() {
	m.canvas.Clear()
	w, h := m.canvas.PixelSize()
	bodies, _ := m.visible()

	if m.playHead == -1 {
		for _, trail := range m.trails {
			for _, p := range trail {
				if x, y, _, ok := m.camera.Project(p, w, h); ok {
					m.canvas.Set(x, y)
				}
			}
		}
	}
	for _, b := range bodies {
		x, y, _, ok := m.camera.Project(toR3(b.Pos), w, h)
		if !ok {
			continue
		}
		if b.GM > 0 {
			m.canvas.Dot(x, y)
		} else {
			m.canvas.Set(x, y)
		}
	}
}

func (m *Model[V]) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = m.frames[:0]
		m.status = "recording"
		return
	}
	m.recording = false
	if err := m.saveGIF(); err != nil {
		m.status = err.Error()
	} else if len(m.frames) > 0 {
		m.status = "saved " + m.cfg.GIFPath
	}
	m.frames = nil
}

func (m *Model[V]) captureFrame() {
	const dot = 4
	w, h := m.canvas.PixelSize()
	img := image.NewPaletted(image.Rect(0, 0, w*dot, h*dot), color.Palette{color.Black, color.White})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !m.canvas.IsSet(x, y) {
				continue
			}
			for py := 0; py < dot; py++ {
				for px := 0; px < dot; px++ {
					img.SetColorIndex(x*dot+px, y*dot+py, 1)
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model[V]) saveGIF() error {
	if len(m.frames) == 0 {
		return nil
	}
	anim := gif.GIF{}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(m.cfg.GIFPath)
	if err != nil {
		return errors.Wrap(err, "create gif")
	}
	defer f.Close()
	return errors.Wrap(gif.EncodeAll(f, &anim), "encode gif")
}

func (m Model[V]) statusLine() string {
	switch {
	case m.playHead != -1 && len(m.history) > 0:
		back := m.history[m.playHead].Time - m.history[len(m.history)-1].Time
		if m.running {
			return fmt.Sprintf("REPLAYING (%.2f)", back)
		}
		return fmt.Sprintf("REPLAY PAUSED (%.2f)", back)
	case !m.running:
		return "PAUSED"
	case m.recording:
		return "RUNNING ● REC"
	}
	return "RUNNING"
}

func (m Model[V]) View() string {
	m.draw()
	bodies, t := m.visible()

	canvasView := lipgloss.NewStyle().Padding(1, 2).Foreground(m.theme.Bodies).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(Title.Render(strings.ToUpper(m.cfg.Title)) + "\n")
	s.WriteString(m.statusLine() + "\n\n")
	if len(m.drift) > 1 {
		chart := asciigraph.Plot(m.drift, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("energy drift"))
		s.WriteString(graphStyle.Foreground(m.theme.Accent).Render(chart) + "\n\n")
	}
	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.3f", t))
	row("Bodies", fmt.Sprintf("%d", len(bodies)))
	row("Method", m.cfg.Method)
	row("Integrator", m.integrator.Name())
	row("dt", fmt.Sprintf("%g", m.cfg.Dt))
	if len(m.drift) > 0 {
		row("Drift", fmt.Sprintf("%.3e", m.drift[len(m.drift)-1]))
	}
	row("Zoom", fmt.Sprintf("%.2fx", m.camera.Zoom))
	if m.status != "" {
		s.WriteString("\n" + Subtle.Render(m.status) + "\n")
	}
	s.WriteString(KeyHint.Render("\nSP:Pause R:Reset Q:Quit\nT:Theme  G:Record ?:Help\n[ ]:Time-Travel xyz:Rotate"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return Panel.Render(helpText) + "\n\n" + mainView
	}
	return mainView
}

const helpText = `KEYBOARD SHORTCUTS
Space    Pause/Resume
R        Reset
Q        Quit
[ / ]    Rewind / Forward
x y z    Rotate camera (shift reverses)
+ / -    Zoom
G        Toggle GIF recording
T        Cycle themes
?        Toggle this help`
