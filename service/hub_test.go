package service

import (
	"errors"
	"testing"
)

type fakeService struct {
	name     string
	deps     []string
	initErr  error
	startErr error
	log      *[]string
	args     []any
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }

func (f *fakeService) Init(args ...any) error {
	f.args = args
	*f.log = append(*f.log, "init:"+f.name)
	return f.initErr
}

func (f *fakeService) Start() error {
	*f.log = append(*f.log, "start:"+f.name)
	return f.startErr
}

func (f *fakeService) Stop() error {
	*f.log = append(*f.log, "stop:"+f.name)
	return nil
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestHubDependencyOrder verifies dependencies init and start first and stop last
func TestHubDependencyOrder(t *testing.T) {
	var log []string
	h := NewHub()
	_ = h.Register(&fakeService{name: "ssh", deps: []string{"history"}, log: &log})
	_ = h.Register(&fakeService{name: "history", log: &log})
	_ = h.Register(&fakeService{name: "audio", log: &log})

	if err := h.InitAll("cfg"); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	h.StopAll()

	want := []string{
		"init:audio", "init:history", "init:ssh",
		"start:audio", "start:history", "start:ssh",
		"stop:ssh", "stop:history", "stop:audio",
	}
	if !equal(log, want) {
		t.Errorf("Expected %v, got %v", want, log)
	}

	ssh := MustGet[*fakeService](h, "ssh")
	if len(ssh.args) != 1 || ssh.args[0] != "cfg" {
		t.Errorf("Expected init args passed through, got %v", ssh.args)
	}
}

// TestHubRejectsDuplicateAndMissing verifies registration and dependency errors
func TestHubRejectsDuplicateAndMissing(t *testing.T) {
	var log []string
	h := NewHub()
	if err := h.Register(&fakeService{name: "a", log: &log}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := h.Register(&fakeService{name: "a", log: &log}); err == nil {
		t.Error("Expected duplicate registration error")
	}

	_ = h.Register(&fakeService{name: "b", deps: []string{"missing"}, log: &log})
	if err := h.InitAll(); err == nil {
		t.Error("Expected missing dependency error")
	}
}

// TestHubDetectsCycle verifies circular dependencies are rejected
func TestHubDetectsCycle(t *testing.T) {
	var log []string
	h := NewHub()
	_ = h.Register(&fakeService{name: "a", deps: []string{"b"}, log: &log})
	_ = h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log})
	if err := h.InitAll(); err == nil {
		t.Error("Expected cycle error")
	}
}

// TestHubStartRollback verifies a failing Start stops the services started before it
func TestHubStartRollback(t *testing.T) {
	var log []string
	h := NewHub()
	_ = h.Register(&fakeService{name: "a", log: &log})
	_ = h.Register(&fakeService{name: "b", deps: []string{"a"}, startErr: errors.New("boom"), log: &log})

	if err := h.InitAll(); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if err := h.StartAll(); err == nil {
		t.Fatal("Expected start failure")
	}

	want := []string{"init:a", "init:b", "start:a", "start:b", "stop:a"}
	if !equal(log, want) {
		t.Errorf("Expected %v, got %v", want, log)
	}

	// Nothing left to stop
	h.StopAll()
	if len(log) != len(want) {
		t.Errorf("Expected StopAll to be a no-op after rollback, got %v", log)
	}
}

// TestMustGetPanicsOnTypeMismatch verifies the typed accessor guards its cast
func TestMustGetPanicsOnTypeMismatch(t *testing.T) {
	var log []string
	h := NewHub()
	_ = h.Register(&fakeService{name: "a", log: &log})

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on type mismatch")
		}
	}()
	MustGet[*Hub](h, "a")
}
