package bubbles

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-bubbles/internal/config"
	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/registry"
	"github.com/vovakirdan/tui-bubbles/internal/sim"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	in.Delta = time.Second / 60
	return in
}

func stepN(t *testing.T, g *Game, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if res := g.Step(frame()); res.Err != nil {
			t.Fatalf("step %d: %v", i, res.Err)
		}
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"bubbles", "bubbles_box"} {
		s, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", id, err)
		}
		if s.ID() != id {
			t.Errorf("ID() = %q, expected %q", s.ID(), id)
		}
	}
}

func TestResetPopulates(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))

	st := g.State()
	if st.Population != 15 {
		t.Errorf("Population = %d, expected 15", st.Population)
	}
	if st.Ticks != 0 || st.Paused || st.Speed != 1 {
		t.Errorf("unexpected initial state %+v", st)
	}
}

func TestBoxedVariantUsesBoxTest(t *testing.T) {
	g := NewBoxed()
	g.Reset(testRuntime(1))

	if g.Config().Overlap.Test != "box" {
		t.Errorf("overlap test = %q, expected box", g.Config().Overlap.Test)
	}
	def := config.DefaultBubblesConfig()
	if g.Config().Schedule.Mode != def.Schedule.Mode {
		t.Errorf("schedule = %q, expected the configured %q", g.Config().Schedule.Mode, def.Schedule.Mode)
	}
}

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bubbles.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })
}

func TestBoxedVariantKeepsConfiguredShrinkAndSchedule(t *testing.T) {
	writeConfig(t, "overlap:\n  shrink: 0.4\nschedule:\n  mode: fixed\n")

	cfg, err := LoadConfig("bubbles_box")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Overlap.Test != "box" {
		t.Errorf("overlap test = %q, expected box", cfg.Overlap.Test)
	}
	if cfg.Overlap.Shrink != 0.4 {
		t.Errorf("shrink = %g, expected 0.4 from the file", cfg.Overlap.Shrink)
	}
	if cfg.Schedule.Mode != "fixed" {
		t.Errorf("schedule = %q, expected fixed from the file", cfg.Schedule.Mode)
	}
}

func TestInvalidConfigIsFatal(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative population", "population: -5\n"},
		{"bad yaml", "population: [\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			writeConfig(t, tc.body)

			if _, err := LoadConfig("bubbles"); err == nil {
				t.Error("LoadConfig should reject the file")
			}

			g := New()
			g.Reset(testRuntime(1))
			if g.Err() == nil {
				t.Fatal("Reset should record the config error")
			}
			if g.State().Population != 0 {
				t.Errorf("Population = %d, expected no world", g.State().Population)
			}
			if res := g.Step(frame()); res.Err == nil {
				t.Error("Step should report the config error")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		SetConfigPath(filepath.Join(t.TempDir(), "absent.yaml"))
		t.Cleanup(func() { SetConfigPath("") })

		g := New()
		g.Reset(testRuntime(1))
		if !errors.Is(g.Err(), os.ErrNotExist) {
			t.Errorf("Err() = %v, expected a not-exist error", g.Err())
		}
	})
}

func TestDeterminism(t *testing.T) {
	for _, mk := range []func() *Game{New, NewBoxed} {
		g1, g2 := mk(), mk()
		g1.Reset(testRuntime(12345))
		g2.Reset(testRuntime(12345))

		for i := 0; i < 300; i++ {
			g1.Step(frame())
			g2.Step(frame())

			s1, s2 := g1.Snapshot(), g2.Snapshot()
			if s1.Hash() != s2.Hash() {
				t.Fatalf("%s: diverged at frame %d", g1.ID(), i)
			}
		}
	}
}

func TestResizeKeepsPopulation(t *testing.T) {
	g := New()
	g.Reset(testRuntime(7))
	stepN(t, g, 30)

	before := g.Snapshot()
	g.Resize(120, 40)
	after := g.Snapshot()

	if !reflect.DeepEqual(before.Bodies, after.Bodies) {
		t.Error("Resize should not touch bodies")
	}
	if after.Ticks != before.Ticks {
		t.Errorf("Ticks = %d after resize, expected %d", after.Ticks, before.Ticks)
	}

	stepN(t, g, 1)
	if g.State().Ticks != before.Ticks+1 {
		t.Errorf("simulation did not continue after resize")
	}
	if w, h, _ := g.viewport.Bounds(); w != 1200 || h != 780 {
		t.Errorf("Bounds() = %gx%g, expected 1200x780", w, h)
	}
}

func TestUnsizedViewportIsFatal(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 3})

	res := g.Step(frame())
	if !errors.Is(res.Err, sim.ErrViewportUnavailable) {
		t.Fatalf("Step() error = %v, expected ErrViewportUnavailable", res.Err)
	}
	if !g.ViewportLost() {
		t.Error("ViewportLost() should report the viewport error")
	}

	// The error is sticky.
	if res := g.Step(frame()); res.Err == nil {
		t.Error("second Step() should keep failing")
	}
}

func TestLateSizePopulates(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 3})
	g.Resize(80, 24)

	stepN(t, g, 1)
	if g.State().Population != 15 {
		t.Errorf("Population = %d, expected 15 once the viewport is sized", g.State().Population)
	}
}

func TestPauseStopsTicks(t *testing.T) {
	g := New()
	g.Reset(testRuntime(9))
	stepN(t, g, 5)

	g.Step(frame(core.ActionPause))
	paused := g.Snapshot()
	stepN(t, g, 10)

	if !g.State().Paused {
		t.Fatal("expected paused state")
	}
	after := g.Snapshot()
	if after.Hash() != paused.Hash() {
		t.Error("world changed while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused || g.State().Ticks != paused.Ticks+1 {
		t.Errorf("unpause should resume ticking, state %+v", g.State())
	}
}

func TestSpeedControl(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	g.Step(frame(core.ActionFaster))
	if g.State().Speed != 2 {
		t.Errorf("Speed = %g, expected 2", g.State().Speed)
	}
	for i := 0; i < 10; i++ {
		g.Step(frame(core.ActionSlower))
	}
	if g.State().Speed != speedSteps[0] {
		t.Errorf("Speed = %g, expected floor %g", g.State().Speed, speedSteps[0])
	}
}

func TestRestartReseeds(t *testing.T) {
	g := New()
	g.Reset(testRuntime(11))
	stepN(t, g, 20)
	seed := g.Seed()

	g.Step(frame(core.ActionRestart))
	if g.Seed() == seed {
		t.Error("restart should pick a new seed")
	}
	if st := g.State(); st.Ticks != 0 || st.Population != 15 {
		t.Errorf("restart state = %+v, expected fresh world", st)
	}
}

func TestTooSmallScreenSkipsTicks(t *testing.T) {
	g := New()
	g.Reset(testRuntime(2))
	g.Resize(10, 3)

	if res := g.Step(frame()); res.Err != nil {
		t.Fatalf("Step() error = %v", res.Err)
	}
	if g.State().Ticks != 0 {
		t.Error("too small screen should not tick")
	}

	screen := core.NewScreen(10, 3)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too") {
		t.Errorf("expected too-small message, got:\n%s", screen.String())
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("bubbles_box")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Overlap.Test != "box" {
		t.Errorf("bubbles_box overlap test = %q, expected box", cfg.Overlap.Test)
	}
	if _, err := LoadConfig("pong"); err == nil {
		t.Error("LoadConfig should reject unknown ids")
	}
}
