package audio

import (
	"log"

	"github.com/lixenwraith/termtris/config"
)

// Service wraps Player as a service.Service
// A missing speaker degrades to silent mode instead of failing startup
type Service struct {
	player *Player
}

// NewService creates the audio service
func NewService() *Service {
	return &Service{}
}

// Name implements service.Service
func (s *Service) Name() string { return "audio" }

// Dependencies implements service.Service
func (s *Service) Dependencies() []string { return nil }

// Init implements service.Service
// args[0]: *config.Config for the initial mute state and volume
func (s *Service) Init(args ...any) error {
	muted, volume := false, 0.0
	if len(args) > 0 {
		if cfg, ok := args[0].(*config.Config); ok {
			muted, volume = cfg.Audio.Muted, cfg.Audio.Volume
		}
	}
	s.player = NewPlayer(muted, volume)
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if err := s.player.Init(); err != nil {
		log.Printf("audio: %v, continuing without sound", err)
	}
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.player != nil {
		s.player.Close()
	}
	return nil
}

// Player returns the cue player; valid after Init
func (s *Service) Player() *Player {
	return s.player
}
