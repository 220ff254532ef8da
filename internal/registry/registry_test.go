package registry

import (
	"testing"

	"github.com/vovakirdan/tui-bubbles/internal/core"
)

type stubSim struct{ id string }

func (s *stubSim) ID() string { return s.id }
func (s *stubSim) Title() string { return "Stub " + s.id }
func (s *stubSim) Reset(core.RuntimeConfig) {}
func (s *stubSim) Resize(int, int) {}
func (s *stubSim) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubSim) Render(*core.Screen) {}
func (s *stubSim) State() core.RunState { return core.RunState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_b", func() Sim { return &stubSim{id: "stub_b"} })
	Register("stub_a", func() Sim { return &stubSim{id: "stub_a"} })

	if !Exists("stub_a") || Exists("stub_missing") {
		t.Error("Exists() gave wrong answer")
	}

	s, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s.ID() != "stub_a" {
		t.Errorf("ID() = %q, expected stub_a", s.ID())
	}
	if _, err := Create("stub_missing"); err == nil {
		t.Error("Create() should fail for unknown id")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "stub_b" && info.Title != "Stub stub_b" {
			t.Errorf("title = %q", info.Title)
		}
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Fatalf("List() not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Sim { return &stubSim{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Sim { return &stubSim{id: "stub_dup"} })
}
