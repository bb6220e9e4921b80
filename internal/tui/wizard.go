package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/tiling"
)

// ErrAborted is returned when the user leaves the wizard without finishing it.
var ErrAborted = errors.New("aborted")

// InitAnswers holds the wizard's form-bound values. huh binds strings, so numbers
// are converted when the answers are applied.
type InitAnswers struct {
	Workspaces     string
	Layouts        []string
	GapSize        string
	OuterGap       string
	PrimaryPercent string
	ModKey         string
}

// answersFrom seeds the form from an existing configuration.
func answersFrom(cfg *config.Config) InitAnswers {
	return InitAnswers{
		Workspaces:     strings.Join(cfg.Workspaces, ", "),
		Layouts:        append([]string(nil), cfg.Layouts...),
		GapSize:        strconv.Itoa(cfg.GapSize),
		OuterGap:       strconv.Itoa(cfg.OuterGap),
		PrimaryPercent: strconv.Itoa(cfg.Tall.PrimaryPercent),
		ModKey:         "Mod4",
	}
}

// Apply returns a copy of base with the answers applied. Keybindings are
// regenerated for the new workspace list using the chosen modifier.
func (a InitAnswers) Apply(base *config.Config) (*config.Config, error) {
	cfg := cloneConfig(base)
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	cfg.Workspaces = splitNames(a.Workspaces)
	cfg.Layouts = append([]string(nil), a.Layouts...)

	var err error
	if cfg.GapSize, err = parseNonNegative("gap_size", a.GapSize); err != nil {
		return nil, err
	}
	if cfg.OuterGap, err = parseNonNegative("outer_gap", a.OuterGap); err != nil {
		return nil, err
	}
	if cfg.Tall.PrimaryPercent, err = parseNonNegative("primary_percent", a.PrimaryPercent); err != nil {
		return nil, err
	}

	mod := a.ModKey
	if mod == "" {
		mod = "Mod4"
	}
	cfg.Keybindings = make(map[string]string)
	for key, action := range config.DefaultKeybindings(cfg.Workspaces) {
		cfg.Keybindings[mod+strings.TrimPrefix(key, "Mod4")] = action
	}
	if rest, ok := strings.CutPrefix(cfg.PaletteHotkey, "Mod4"); ok {
		cfg.PaletteHotkey = mod + rest
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunInitWizard asks for the main settings, starting from base.
func RunInitWizard(base *config.Config) (*config.Config, error) {
	if base == nil {
		base = config.DefaultConfig()
	}
	answers := answersFrom(base)

	layoutOpts := make([]huh.Option[string], 0)
	for _, name := range tiling.LayoutNames() {
		layoutOpts = append(layoutOpts, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("workspaces").
				Title("Workspaces").
				Description("Comma separated names; Mod-1..9 switch to the first nine").
				Validate(func(s string) error {
					if len(splitNames(s)) == 0 {
						return fmt.Errorf("at least one workspace is required")
					}
					return nil
				}).
				Value(&answers.Workspaces),

			huh.NewMultiSelect[string]().
				Key("layouts").
				Title("Layouts").
				Description("Engines every workspace cycles through").
				Options(layoutOpts...).
				Validate(func(v []string) error {
					if len(v) == 0 {
						return fmt.Errorf("pick at least one layout")
					}
					return nil
				}).
				Value(&answers.Layouts),

			huh.NewSelect[string]().
				Key("mod").
				Title("Modifier").
				Description("Modifier used by the generated keybindings").
				Options(
					huh.NewOption("Super (Mod4)", "Mod4"),
					huh.NewOption("Alt (Mod1)", "Mod1"),
				).
				Value(&answers.ModKey),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("gap_size").
				Title("Gap Size").
				Description("Pixels between tiled windows").
				Validate(numberValidator).
				Value(&answers.GapSize),
			huh.NewInput().
				Key("outer_gap").
				Title("Outer Gap").
				Description("Pixels between windows and the monitor edge").
				Validate(numberValidator).
				Value(&answers.OuterGap),
			huh.NewInput().
				Key("primary_percent").
				Title("Primary Area (%)").
				Description("Share of the monitor given to the primary area of tall and wide").
				Validate(numberValidator).
				Value(&answers.PrimaryPercent),
		),
	).WithShowHelp(true).WithShowErrors(true)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		return nil, err
	}
	return answers.Apply(base)
}

// ConfirmWrite shows the pending change and asks before it is written.
func ConfirmWrite(original, updated *config.Config) (bool, error) {
	diff := RenderDiff(original, updated)
	if diff == "" {
		diff = "no changes"
	}

	confirmed := true
	err := huh.NewConfirm().
		Title("Write configuration?").
		Description(diff).
		Affirmative("Write").
		Negative("Cancel").
		Value(&confirmed).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrAborted
		}
		return false, err
	}
	return confirmed, nil
}

func numberValidator(s string) error {
	_, err := parseNonNegative("value", s)
	return err
}

func parseNonNegative(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must be >= 0", field)
	}
	return n, nil
}

func splitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// cloneConfig creates a deep copy of a Config via YAML round-trip.
func cloneConfig(cfg *config.Config) *config.Config {
	if cfg == nil {
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil
	}
	var clone config.Config
	if err := yaml.Unmarshal(data, &clone); err != nil {
		return nil
	}
	return &clone
}
