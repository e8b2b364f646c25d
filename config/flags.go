package config

import (
	"flag"
)

// Flags are the command line overrides
// Only flags the user actually set replace file values
type Flags struct {
	fs *flag.FlagSet

	Path    string
	Debug   bool
	Mute    bool
	Serve   bool
	Addr    string
	HostKey string
	History string
	Keymap  string
}

// RegisterFlags defines the override flags on fs
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Path, "config", "", "TOML config file (default ./"+DefaultFile+" when present)")
	fs.BoolVar(&f.Debug, "debug", false, "Write debug log to logs/")
	fs.BoolVar(&f.Mute, "mute", false, "Start with sound muted")
	fs.BoolVar(&f.Serve, "serve", false, "Run the SSH server instead of a local game")
	fs.StringVar(&f.Addr, "addr", "", "SSH listen address in serve mode")
	fs.StringVar(&f.HostKey, "hostkey", "", "SSH host key path, generated when missing")
	fs.StringVar(&f.History, "history", "", "Score history file")
	fs.StringVar(&f.Keymap, "keymap", "", "TOML keymap merged over the default bindings")
	return f
}

// Apply copies explicitly set flags onto cfg
func (f *Flags) Apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			cfg.Debug = f.Debug
		case "mute":
			cfg.Audio.Muted = f.Mute
		case "serve":
			cfg.Server.Enabled = f.Serve
		case "addr":
			cfg.Server.Addr = f.Addr
		case "hostkey":
			cfg.Server.HostKeyPath = f.HostKey
		case "history":
			cfg.History.Path = f.History
		case "keymap":
			cfg.Input.KeymapPath = f.Keymap
		}
	})
}
