package frames

import (
	"io"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/purrgress/purrgress/pkg/errors"
)

// Theme bundles a frame set with the glyphs and cadence a bar needs. BigCat
// themes treat Frames as eye strings for the three-line cat; flat themes
// treat them as whole faces shown inline.
type Theme struct {
	Name      string   `yaml:"name"`
	Frames    []string `yaml:"frames"`
	Modifiers []string `yaml:"modifiers,omitempty"`
	Cadence   int      `yaml:"cadence,omitempty"`
	BigCat    bool     `yaml:"big_cat,omitempty"`
	Head      string   `yaml:"head,omitempty"`
	Fill      string   `yaml:"fill,omitempty"`
	Empty     string   `yaml:"empty,omitempty"`
}

// Spec returns the theme's frame selection spec.
func (t Theme) Spec() FrameSpec {
	cadence := t.Cadence
	if cadence == 0 {
		cadence = DefaultCadence
	}
	return FrameSpec{Frames: t.Frames, Modifiers: t.Modifiers, Cadence: cadence}
}

// Validate checks the theme can drive a session.
func (t Theme) Validate() error {
	if t.Name == "" {
		return errors.Configf("frames", "theme has no name")
	}
	if len(t.Frames) == 0 {
		return errors.Configf("frames", "theme %q has no frames", t.Name)
	}
	if t.Cadence < 0 {
		return errors.Configf("frames", "theme %q has negative cadence %d", t.Name, t.Cadence)
	}
	return nil
}

// withGlyphDefaults fills in the paw-bar glyphs where the theme left them
// empty.
func (t Theme) withGlyphDefaults() Theme {
	if t.Head == "" {
		t.Head = "🐱"
	}
	if t.Fill == "" {
		t.Fill = "🐾"
	}
	if t.Empty == "" {
		t.Empty = "░"
	}
	return t
}

// LoadTheme reads one YAML theme document. The returned theme is already
// validated and glyph-defaulted.
func LoadTheme(r io.Reader) (Theme, error) {
	var t Theme
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return Theme{}, errors.Configf("frames", "theme file is not valid YAML").WithCause(err)
	}
	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t.withGlyphDefaults(), nil
}

var (
	themeMu sync.RWMutex
	themes  = map[string]Theme{}
)

func init() {
	builtin := []Theme{
		{Name: "classic", Frames: EyesClassic, Modifiers: Tails, Cadence: DefaultCadence, BigCat: true},
		{Name: "emoji", Frames: EmojiCats},
		{Name: "kaomoji", Frames: KaomojiFaces},
		{Name: "simple", Frames: SimpleFaces},
	}
	for _, t := range builtin {
		themes[t.Name] = t.withGlyphDefaults()
	}
}

// RegisterTheme adds (or replaces) a theme in the registry.
func RegisterTheme(t Theme) error {
	if err := t.Validate(); err != nil {
		return err
	}
	themeMu.Lock()
	defer themeMu.Unlock()
	themes[t.Name] = t.withGlyphDefaults()
	return nil
}

// GetTheme looks a theme up by name.
func GetTheme(name string) (Theme, bool) {
	themeMu.RLock()
	defer themeMu.RUnlock()
	t, ok := themes[name]
	return t, ok
}

// DefaultTheme returns the classic big-cat theme.
func DefaultTheme() Theme {
	t, _ := GetTheme("classic")
	return t
}

// ThemeNames lists registered themes in sorted order.
func ThemeNames() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
