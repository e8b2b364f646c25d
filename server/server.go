// Package server hosts one game per SSH session.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gliderlabs/ssh"

	"github.com/lixenwraith/termtris/config"
	"github.com/lixenwraith/termtris/core"
	"github.com/lixenwraith/termtris/history"
	"github.com/lixenwraith/termtris/input"
	"github.com/lixenwraith/termtris/status"
	"github.com/lixenwraith/termtris/tetris"
)

// shutdownGrace bounds how long Stop waits for sessions to end
const shutdownGrace = 3 * time.Second

// Server is the SSH front end, run as a service.Service
type Server struct {
	hist    *history.Service
	metrics *status.Registry

	cfg          config.ServerConfig
	opts         tetris.Options
	keys         *input.KeyTable
	releaseDelay time.Duration
	store        history.Store

	mu       sync.Mutex
	srv      *ssh.Server
	listener net.Listener
	done     chan struct{}
	err      error

	sessions *atomic.Int64
}

// New creates the server; hist supplies the shared score history
func New(hist *history.Service, metrics *status.Registry) *Server {
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	return &Server{
		hist:     hist,
		metrics:  metrics,
		sessions: metrics.Ints.Get(status.KeySessions),
	}
}

// Name implements service.Service
func (s *Server) Name() string { return "ssh" }

// Dependencies implements service.Service
func (s *Server) Dependencies() []string { return []string{"history"} }

// Init implements service.Service
// args[0]: *config.Config
func (s *Server) Init(args ...any) error {
	if len(args) == 0 {
		return errors.New("ssh: missing config")
	}
	cfg, ok := args[0].(*config.Config)
	if !ok {
		return fmt.Errorf("ssh: expected *config.Config, got %T", args[0])
	}

	keys, err := input.ResolveKeyTable(cfg.Input.KeymapPath)
	if err != nil {
		return fmt.Errorf("ssh: %w", err)
	}

	s.cfg = cfg.Server
	s.opts = tetris.OptionsFrom(cfg)
	s.keys = keys
	s.releaseDelay = cfg.Timing.KeyReleaseDelay()
	s.store = s.hist.Store()
	return nil
}

// Start implements service.Service; it listens and serves in the background
func (s *Server) Start() error {
	if err := EnsureHostKey(s.cfg.HostKeyPath); err != nil {
		return fmt.Errorf("ssh: %w", err)
	}

	srv := &ssh.Server{
		Addr:    s.cfg.Addr,
		Handler: s.handle,
	}
	if err := srv.SetOption(ssh.HostKeyFile(s.cfg.HostKeyPath)); err != nil {
		return fmt.Errorf("ssh: set host key: %w", err)
	}

	l, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("ssh: listen: %w", err)
	}

	s.mu.Lock()
	s.srv = srv
	s.listener = l
	s.done = make(chan struct{})
	s.mu.Unlock()

	log.Printf("ssh: listening on %s", l.Addr())
	core.Go(func() {
		err := srv.Serve(l)
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		s.mu.Lock()
		s.err = err
		close(s.done)
		s.mu.Unlock()
	})
	return nil
}

// Stop implements service.Service; sessions get a short grace period
func (s *Server) Stop() error {
	s.mu.Lock()
	srv, done := s.srv, s.done
	s.srv = nil
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		srv.Close()
	}
	<-done
	return nil
}

// Wait blocks until the server stops serving or ctx ends
// Returns the serve error, nil after a clean shutdown or context end
func (s *Server) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return errors.New("ssh: not started")
	}

	select {
	case <-ctx.Done():
		return nil
	case <-done:
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.err
	}
}

// Addr returns the listening address; nil before Start
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Sessions returns the number of connected players
func (s *Server) Sessions() int {
	return int(s.sessions.Load())
}

// acquire reserves a session slot
func (s *Server) acquire() bool {
	if s.sessions.Add(1) > int64(s.cfg.MaxSessions) {
		s.sessions.Add(-1)
		return false
	}
	return true
}

func (s *Server) release() {
	s.sessions.Add(-1)
}
