package input

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termtris/toml"
)

// runeAliases name characters that cannot be bare TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// specialKeys names the special keys a keymap may bind
var specialKeys = map[string]tcell.Key{
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"enter":     tcell.KeyEnter,
	"escape":    tcell.KeyEsc,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace2,
	"ctrl_c":    tcell.KeyCtrlC,
}

// LoadKeyConfig parses a TOML keymap into a sparse override table
//
//	[keys]
//	up = "rotate"
//	[runes]
//	space = "soft_drop"
//	x = "none"
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	raw, err := toml.NewParser(data).Parse()
	if err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}

	kt := &KeyTable{Keys: map[tcell.Key]Action{}, Runes: map[rune]Action{}}

	if err := eachBinding(raw, "keys", func(name string, a Action) error {
		k, ok := specialKeys[name]
		if !ok {
			return fmt.Errorf("unknown key %q", name)
		}
		kt.Keys[k] = a
		return nil
	}); err != nil {
		return nil, err
	}

	if err := eachBinding(raw, "runes", func(name string, a Action) error {
		r, ok := runeAliases[name]
		if !ok {
			if utf8.RuneCountInString(name) != 1 {
				return fmt.Errorf("rune binding %q must be a single character", name)
			}
			r, _ = utf8.DecodeRuneInString(name)
		}
		kt.Runes[r] = a
		return nil
	}); err != nil {
		return nil, err
	}

	return kt, nil
}

// LoadKeyFile reads a keymap file and merges it over the defaults
func LoadKeyFile(path string) (*KeyTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	override, err := LoadKeyConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	kt := DefaultKeyTable()
	kt.Merge(override)
	return kt, nil
}

func eachBinding(raw map[string]any, section string, bind func(name string, a Action) error) error {
	data, ok := raw[section]
	if !ok {
		return nil
	}
	table, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("section [%s]: expected table, got %T", section, data)
	}
	for name, v := range table {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("[%s] %s: expected action name, got %T", section, name, v)
		}
		a, ok := ActionByName(s)
		if !ok {
			return fmt.Errorf("[%s] %s: unknown action %q", section, name, s)
		}
		if err := bind(name, a); err != nil {
			return fmt.Errorf("[%s]: %w", section, err)
		}
	}
	return nil
}

// ResolveKeyTable returns the defaults, or the keymap at path merged over them
func ResolveKeyTable(path string) (*KeyTable, error) {
	if path == "" {
		return DefaultKeyTable(), nil
	}
	return LoadKeyFile(path)
}
