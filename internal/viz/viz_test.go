package viz

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gravsim/internal/compute"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCanvas(t *testing.T) {
	c := NewCanvas(2, 1)
	w, h := c.PixelSize()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)

	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)
	assert.True(t, c.IsSet(0, 0))
	assert.True(t, c.IsSet(3, 3))
	assert.False(t, c.IsSet(1, 0))
	assert.Equal(t, "⠁⢀\n", c.String())

	c.Clear()
	assert.Equal(t, "⠀⠀\n", c.String())

	c.DrawLine(0, 0, 3, 3)
	for i := 0; i < 4; i++ {
		assert.True(t, c.IsSet(i, i))
	}
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera(1)
	x, y, _, ok := cam.Project(r3.Vec{}, 160, 96)
	require.True(t, ok)
	assert.Equal(t, 80, x)
	assert.Equal(t, 48, y)

	// Up on screen is +y in the world.
	_, y, _, ok = cam.Project(r3.Vec{Y: 0.5}, 160, 96)
	require.True(t, ok)
	assert.Less(t, y, 48)

	_, _, _, ok = cam.Project(r3.Vec{X: 5}, 160, 96)
	assert.False(t, ok)

	cam.Rotate('z', math.Pi/2)
	x, y, _, ok = cam.Project(r3.Vec{X: 0.5}, 160, 96)
	require.True(t, ok)
	assert.Equal(t, 80, x)
	assert.Less(t, y, 48)
}

func TestSparklineAndBar(t *testing.T) {
	assert.Equal(t, "───", Sparkline(nil, 3))
	assert.Equal(t, "▁█", Sparkline([]float64{5, 0, 1}, 2))
	assert.Equal(t, "██░░", ProgressBar(0.5, 4))
	assert.Equal(t, "████", ProgressBar(2, 4))
}

func TestThemes(t *testing.T) {
	assert.Equal(t, ThemeNight, GetTheme("missing"))
	assert.Equal(t, ThemeRetro, NextTheme(ThemeNight))
	assert.Equal(t, ThemeNight, NextTheme(ThemeSunset))
	assert.Len(t, ThemeNames(), len(Themes))
}

func TestTableAndChart(t *testing.T) {
	out := Table([]string{"method", "error"}, [][]string{{"barnes_hut", "1e-3"}})
	assert.Contains(t, out, "barnes_hut")
	assert.Contains(t, out, "method")

	assert.Empty(t, Chart("none", 4, 20))
	assert.Contains(t, Chart("drift", 4, 20, []float64{0, 1, 2}, []float64{2, 1, 0}), "drift")
}

func newTestModel(t *testing.T) Model[vec.Vec2] {
	t.Helper()
	bodies := sim.Bodies[float64, vec.Vec2]{
		{GM: 1},
		{Pos: vec.Vec2{1, 0}, Vel: vec.Vec2{0, 1}, GM: 1e-3},
	}
	integ, err := integrators.ByName[float64, vec.Vec2]("leapfrog")
	require.NoError(t, err)
	accel := sim.New[float64, vec.Vec2](compute.BruteForce[float64, vec.Vec2]{}, integ).Accelerations
	return NewModel(bodies, integ, accel, LiveConfig{
		Title:         "two body",
		Method:        "brute_force",
		Dt:            1e-3,
		StepsPerFrame: 10,
		GIFPath:       filepath.Join(t.TempDir(), "out.gif"),
	})
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model[vec.Vec2], msg tea.Msg) Model[vec.Vec2] {
	next, _ := m.Update(msg)
	return next.(Model[vec.Vec2])
}

func TestModelSteps(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 5; i++ {
		m = update(m, TickMsg{})
	}
	assert.InDelta(t, 0.05, m.t, 1e-12)
	assert.Len(t, m.history, 5)
	assert.Len(t, m.drift, 5)
	assert.Less(t, math.Abs(m.drift[4]), 1e-6)
	assert.Contains(t, m.View(), "TWO BODY")

	m = update(m, key("r"))
	assert.Zero(t, m.t)
	assert.Empty(t, m.history)
	assert.Equal(t, vec.Vec2{1, 0}, m.bodies[1].Pos)
}

func TestModelPauseAndReplay(t *testing.T) {
	m := newTestModel(t)
	m = update(m, TickMsg{})
	m = update(m, TickMsg{})
	m = update(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.running)
	m = update(m, TickMsg{})
	assert.Len(t, m.history, 2)

	m = update(m, key("["))
	assert.Equal(t, 0, m.playHead)
	_, tm := m.visible()
	assert.InDelta(t, 0.01, tm, 1e-12)
	assert.Contains(t, m.View(), "REPLAY PAUSED")

	m = update(m, key("]"))
	m = update(m, key("]"))
	assert.Equal(t, -1, m.playHead)
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelRecording(t *testing.T) {
	m := newTestModel(t)
	m = update(m, key("g"))
	assert.True(t, m.recording)
	m = update(m, TickMsg{})
	m = update(m, TickMsg{})
	assert.Len(t, m.frames, 2)
	m = update(m, key("g"))
	assert.False(t, m.recording)
	assert.True(t, strings.HasPrefix(m.status, "saved"))
	assert.FileExists(t, m.cfg.GIFPath)
}
