package history

import (
	"fmt"
	"log"

	"github.com/lixenwraith/termtris/config"
)

// Service wraps the history store as a service.Service
// An empty path keeps history in memory for the process lifetime
type Service struct {
	store Store
}

// NewService creates the history service
func NewService() *Service {
	return &Service{}
}

// Name implements service.Service
func (s *Service) Name() string { return "history" }

// Dependencies implements service.Service
func (s *Service) Dependencies() []string { return nil }

// Init implements service.Service
// args[0]: *config.Config for the history path
func (s *Service) Init(args ...any) error {
	path := ""
	if len(args) > 0 {
		if cfg, ok := args[0].(*config.Config); ok {
			path = cfg.History.Path
		}
	}
	if path == "" {
		s.store = NewMemoryStore()
		return nil
	}
	s.store = NewFileStore(path)
	return nil
}

// Start implements service.Service
// Reads the file once so a corrupt history fails startup instead of every game over
func (s *Service) Start() error {
	records, err := s.store.List()
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if fs, ok := s.store.(*FileStore); ok {
		log.Printf("history: %d games in %s", len(records), fs.Path())
	}
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error { return nil }

// Store returns the backing store; valid after Init
func (s *Service) Store() Store {
	return s.store
}
