package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termtris/engine"
	"github.com/lixenwraith/termtris/input"
	"github.com/lixenwraith/termtris/status"
)

// inTempDir runs the test from a scratch directory so logs/ never touches the repo
func inTempDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Failed to enter temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(wd)
		log.SetOutput(io.Discard)
	})
}

// TestSetupLoggingDisabledByDefault verifies that logging is discarded without -debug
func TestSetupLoggingDisabledByDefault(t *testing.T) {
	inTempDir(t)

	logFile := setupLogging(false)
	if logFile != nil {
		t.Error("Expected nil log file when debug=false")
		logFile.Close()
	}
	if output := log.Writer(); output != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", output)
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("Expected no logs directory when debug=false")
	}
}

// TestSetupLoggingEnabledWithDebug verifies the log file is created and written
func TestSetupLoggingEnabledWithDebug(t *testing.T) {
	inTempDir(t)

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	log.Println("Test log message")

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Test log message") {
		t.Errorf("Expected log file to contain the message, got %q", data)
	}

	output := log.Writer()
	if output == os.Stdout || output == os.Stderr {
		t.Error("Log output should not be stdout or stderr")
	}
}

// TestSetupLoggingRotation verifies an oversized log is moved aside
func TestSetupLoggingRotation(t *testing.T) {
	inTempDir(t)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("Failed to write large log file: %v", err)
	}

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected new log file below %d bytes, got %d", maxLogSize, info.Size())
	}
}

// TestPollEventsForwardsKeys verifies key and resize events reach the loop until the screen closes
func TestPollEventsForwardsKeys(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}

	loop := engine.NewLoop(nil, 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runErr := make(chan error, 1)
	go func() { runErr <- loop.Run(ctx) }()

	keys := make(chan input.Key, 4)
	redraws := make(chan struct{}, 4)
	polled := make(chan struct{})
	go func() {
		pollEvents(screen, loop, func(k input.Key) { keys <- k }, func() { redraws <- struct{}{} })
		close(polled)
	}()

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	select {
	case k := <-keys:
		if k.Code != tcell.KeyRune || k.Rune != 'x' {
			t.Errorf("Expected rune x, got %+v", k)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected key to be forwarded")
	}

	screen.SetSize(90, 40)
	screen.PostEvent(tcell.NewEventResize(90, 40))
	select {
	case <-redraws:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected redraw after resize")
	}

	screen.Fini()
	select {
	case <-polled:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected poller to stop after Fini")
	}
	cancel()
	<-runErr
}

// TestReportMetricsStopsWithContext verifies the reporter returns once ctx ends
func TestReportMetricsStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reportMetrics(ctx, status.NewRegistry(), time.Millisecond)
		close(done)
	}()
	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected reporter to stop")
	}
}
