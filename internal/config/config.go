package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/1broseidon/tilewm/internal/tiling"
	"gopkg.in/yaml.v3"
)

// Config represents the tilewm configuration.
type Config struct {
	// Enabled controls whether the daemon starts with tiling active.
	// Nil means true.
	Enabled  *bool  `yaml:"enabled,omitempty"`
	LogLevel string `yaml:"log_level"`

	// Display and XAuthority optionally override the X11 connection target.
	Display    string `yaml:"display,omitempty"`
	XAuthority string `yaml:"xauthority,omitempty"`

	Workspaces []string `yaml:"workspaces"`
	// Layouts is the engine cycle order each workspace is built with.
	Layouts []string `yaml:"layouts"`

	GapSize  int `yaml:"gap_size"`
	OuterGap int `yaml:"outer_gap"`

	Tall TallConfig `yaml:"tall"`
	Grid GridConfig `yaml:"grid"`

	IgnoreClasses       []string `yaml:"ignore_classes"`
	ReconcileIntervalMs int      `yaml:"reconcile_interval_ms"`
	TitleMaxLength      int      `yaml:"title_max_length"`

	// Keybindings maps an xgbutil key sequence (e.g. "Mod4-j") to an action.
	Keybindings map[string]string `yaml:"keybindings"`

	// PaletteHotkey opens the command palette; empty disables it.
	PaletteHotkey  string `yaml:"palette_hotkey"`
	PaletteBackend string `yaml:"palette_backend"`
}

// TallConfig holds the primary/stack tunables shared by the tall and wide engines.
type TallConfig struct {
	NumInPrimary     int `yaml:"num_in_primary"`
	PrimaryPercent   int `yaml:"primary_percent"`
	PercentIncrement int `yaml:"percent_increment"`
}

type GridConfig struct {
	FlexibleLastRow *bool `yaml:"flexible_last_row,omitempty"`
}

// Actions understood in keybindings besides the workspace:<name> and move:<name> forms.
var actionNames = []string{
	"focus_next",
	"focus_previous",
	"focus_primary",
	"focus_last",
	"swap_primary",
	"swap_next",
	"swap_previous",
	"next_layout",
	"previous_layout",
	"reset_layout",
	"shrink_primary",
	"expand_primary",
	"increment_primary",
	"decrement_primary",
	"close_focused",
	"relayout",
	"toggle_enabled",
}

// ActionNames returns the plain action names a keybinding may use.
func ActionNames() []string {
	return append([]string(nil), actionNames...)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:   "info",
		Workspaces: append([]string(nil), defaultWorkspaces...),
		Layouts:    []string{"tall", "wide", "full", "grid"},
		Tall: TallConfig{
			NumInPrimary:     1,
			PrimaryPercent:   50,
			PercentIncrement: 3,
		},
		IgnoreClasses:       []string{"Polybar", "Rofi", "Dunst"},
		ReconcileIntervalMs: 2000,
		TitleMaxLength:      54,
		Keybindings:         DefaultKeybindings(defaultWorkspaces),
		PaletteHotkey:       "Mod4-p",
		PaletteBackend:      "auto",
	}
}

var defaultWorkspaces = []string{"one", "two", "three", "four", "five"}

// DefaultKeybindings returns the stock bindings, with Mod4-<n> and Mod4-Shift-<n>
// bound to the first nine of the given workspaces.
func DefaultKeybindings(workspaces []string) map[string]string {
	bindings := map[string]string{
		"Mod4-j":           "focus_next",
		"Mod4-k":           "focus_previous",
		"Mod4-m":           "focus_primary",
		"Mod4-Return":      "swap_primary",
		"Mod4-Shift-j":     "swap_next",
		"Mod4-Shift-k":     "swap_previous",
		"Mod4-space":       "next_layout",
		"Mod4-Shift-space": "previous_layout",
		"Mod4-n":           "reset_layout",
		"Mod4-h":           "shrink_primary",
		"Mod4-l":           "expand_primary",
		"Mod4-comma":       "increment_primary",
		"Mod4-period":      "decrement_primary",
		"Mod4-Shift-c":     "close_focused",
		"Mod4-Shift-t":     "toggle_enabled",
	}
	for i, name := range workspaces {
		if i == 9 {
			break
		}
		bindings[fmt.Sprintf("Mod4-%d", i+1)] = "workspace:" + name
		bindings[fmt.Sprintf("Mod4-Shift-%d", i+1)] = "move:" + name
	}
	return bindings
}

// IsEnabled reports whether tiling starts enabled.
func (c *Config) IsEnabled() bool {
	if c == nil || c.Enabled == nil {
		return true
	}
	return *c.Enabled
}

// IsFlexibleLastRow returns the grid setting with its default applied.
func (g GridConfig) IsFlexibleLastRow() bool {
	if g.FlexibleLastRow == nil {
		return true
	}
	return *g.FlexibleLastRow
}

// LayoutOptions maps the tunables onto engine options.
func (c *Config) LayoutOptions() tiling.LayoutOptions {
	return tiling.LayoutOptions{
		NumInPrimary:    c.Tall.NumInPrimary,
		PrimaryRatio:    float64(c.Tall.PrimaryPercent) / 100,
		RatioIncrement:  float64(c.Tall.PercentIncrement) / 100,
		FlexibleLastRow: c.Grid.IsFlexibleLastRow(),
	}
}

// BuildEngines creates a fresh engine set, in cycle order, for one workspace.
func (c *Config) BuildEngines() ([]tiling.LayoutEngine, error) {
	opts := c.LayoutOptions()
	engines := make([]tiling.LayoutEngine, 0, len(c.Layouts))
	for _, name := range c.Layouts {
		engine, err := tiling.NewLayoutEngine(name, opts)
		if err != nil {
			return nil, err
		}
		engines = append(engines, tiling.WithGaps(engine, c.OuterGap, c.GapSize))
	}
	return engines, nil
}

// IsIgnoredClass reports whether windows of the given WM_CLASS never join a workspace.
func (c *Config) IsIgnoredClass(class string) bool {
	for _, ignored := range c.IgnoreClasses {
		if strings.EqualFold(ignored, class) {
			return true
		}
	}
	return false
}

// SlogLevel converts log_level into a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes the configuration to the standard location.
//
// Note: this marshals the effective config and will not preserve comments from
// the original YAML.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo validates the configuration and writes it to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}

	if len(c.Workspaces) == 0 {
		return &ValidationError{Path: "workspaces", Err: fmt.Errorf("workspaces must not be empty")}
	}
	seen := make(map[string]struct{}, len(c.Workspaces))
	for _, name := range c.Workspaces {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: "workspaces", Err: fmt.Errorf("workspace names must not be empty")}
		}
		if _, dup := seen[name]; dup {
			return &ValidationError{Path: "workspaces", Err: fmt.Errorf("duplicate workspace %q", name)}
		}
		seen[name] = struct{}{}
	}

	if len(c.Layouts) == 0 {
		return &ValidationError{Path: "layouts", Err: fmt.Errorf("layouts must not be empty")}
	}
	for _, name := range c.Layouts {
		if !tiling.IsRegisteredLayout(name) {
			return &ValidationError{Path: "layouts", Err: fmt.Errorf("unknown layout %q (available: %s)", name, strings.Join(tiling.LayoutNames(), ", "))}
		}
	}

	if c.GapSize < 0 {
		return &ValidationError{Path: "gap_size", Err: fmt.Errorf("gap_size must be >= 0")}
	}
	if c.OuterGap < 0 {
		return &ValidationError{Path: "outer_gap", Err: fmt.Errorf("outer_gap must be >= 0")}
	}
	if c.Tall.NumInPrimary < 1 {
		return &ValidationError{Path: "tall.num_in_primary", Err: fmt.Errorf("num_in_primary must be >= 1")}
	}
	if c.Tall.PrimaryPercent < 5 || c.Tall.PrimaryPercent > 95 {
		return &ValidationError{Path: "tall.primary_percent", Err: fmt.Errorf("primary_percent must be between 5 and 95")}
	}
	if c.Tall.PercentIncrement < 1 || c.Tall.PercentIncrement > 50 {
		return &ValidationError{Path: "tall.percent_increment", Err: fmt.Errorf("percent_increment must be between 1 and 50")}
	}
	if c.ReconcileIntervalMs < 100 {
		return &ValidationError{Path: "reconcile_interval_ms", Err: fmt.Errorf("reconcile_interval_ms must be >= 100")}
	}
	if c.TitleMaxLength < 1 {
		return &ValidationError{Path: "title_max_length", Err: fmt.Errorf("title_max_length must be >= 1")}
	}

	for key, action := range c.Keybindings {
		if strings.TrimSpace(key) == "" {
			return &ValidationError{Path: "keybindings", Err: fmt.Errorf("keybindings contains an empty key")}
		}
		if err := c.validateAction(action); err != nil {
			return &ValidationError{Path: "keybindings." + key, Err: err}
		}
	}

	if c.PaletteHotkey != "" {
		if action, taken := c.Keybindings[c.PaletteHotkey]; taken {
			return &ValidationError{Path: "palette_hotkey", Err: fmt.Errorf("%s is already bound to %q", c.PaletteHotkey, action)}
		}
	}
	switch strings.ToLower(c.PaletteBackend) {
	case "", "auto", "rofi", "dmenu":
	default:
		return &ValidationError{Path: "palette_backend", Err: fmt.Errorf("palette_backend must be one of: auto, rofi, dmenu")}
	}
	return nil
}

func (c *Config) validateAction(action string) error {
	if name, ok := strings.CutPrefix(action, "workspace:"); ok {
		return c.validateWorkspaceRef(name)
	}
	if name, ok := strings.CutPrefix(action, "move:"); ok {
		return c.validateWorkspaceRef(name)
	}
	for _, known := range actionNames {
		if action == known {
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", action)
}

func (c *Config) validateWorkspaceRef(name string) error {
	for _, ws := range c.Workspaces {
		if ws == name {
			return nil
		}
	}
	return fmt.Errorf("unknown workspace %q", name)
}
