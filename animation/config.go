package animation

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/thicket/gfx"
)

// ErrInvalidDefinition is wrapped by every Load validation error.
var ErrInvalidDefinition = errors.New("animation: invalid definition")

// FileSpec is the top-level layout of an animation definitions file:
//
//	animations:
//	  walk:
//	    duration: 500ms
//	    start: looping
//	    modifiers:
//	      - type: transform
//	        keyframes: 30
//	        vector: {x: 64, y: 0}
//	      - type: sprite
//	        tiles: [78, 79, 80, 79]
//	        end: 78
type FileSpec struct {
	Animations map[string]AnimationSpec `yaml:"animations"`
}

// AnimationSpec describes one animation.
type AnimationSpec struct {
	Duration  string         `yaml:"duration"`
	Start     string         `yaml:"start"`
	Modifiers []ModifierSpec `yaml:"modifiers"`
}

// ModifierSpec describes one modifier. Only the fields of its Type are read.
type ModifierSpec struct {
	Type      string    `yaml:"type"`
	Keyframes int       `yaml:"keyframes"`
	Vector    *gfx.Vec2 `yaml:"vector"`
	Scale     *float64  `yaml:"scale"`
	Rotation  *float64  `yaml:"rotation"`
	Tiles     []int     `yaml:"tiles"`
	Variant   []int     `yaml:"variant"`
	End       int       `yaml:"end"`
	Target    string    `yaml:"target"`
	Count     int       `yaml:"count"`
	Content   string    `yaml:"content"`
}

// LoadFile reads and parses an animation definitions file.
func LoadFile(path string) (*Animations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("animation: load %s: %w", path, err)
	}
	anims, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return anims, nil
}

// Load parses animation definitions. Configuration mistakes that the code
// constructors would panic on are reported as errors wrapping
// ErrInvalidDefinition.
func Load(data []byte) (*Animations, error) {
	var spec FileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("animation: unmarshal: %w", err)
	}
	anims := NewAnimations(nil)
	for name, as := range spec.Animations {
		a, err := as.build()
		if err != nil {
			return nil, fmt.Errorf("animation %q: %w", name, err)
		}
		anims.Add(name, a)
	}
	return anims, nil
}

func (as AnimationSpec) build() (*Animation, error) {
	var duration time.Duration
	if as.Duration != "" {
		d, err := time.ParseDuration(as.Duration)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: duration %q", ErrInvalidDefinition, as.Duration)
		}
		duration = d
	}
	if len(as.Modifiers) == 0 {
		return nil, fmt.Errorf("%w: no modifiers", ErrInvalidDefinition)
	}

	modifiers := make([]*Modifier, 0, len(as.Modifiers))
	for i, ms := range as.Modifiers {
		m, err := ms.build()
		if err != nil {
			return nil, fmt.Errorf("modifier %d: %w", i, err)
		}
		modifiers = append(modifiers, m)
	}

	switch as.Start {
	case "", "stopped":
		return New(duration, modifiers...), nil
	case "running":
		return NewRunning(duration, modifiers...), nil
	case "looping":
		return NewLooping(duration, modifiers...), nil
	default:
		return nil, fmt.Errorf("%w: start %q", ErrInvalidDefinition, as.Start)
	}
}

func (ms ModifierSpec) build() (*Modifier, error) {
	switch ms.Type {
	case "transform":
		if ms.Keyframes <= 0 {
			return nil, fmt.Errorf("%w: transform keyframes %d", ErrInvalidDefinition, ms.Keyframes)
		}
		return Transform(ms.Keyframes, ms.Vector, ms.Scale, ms.Rotation), nil
	case "sprite":
		if len(ms.Tiles) < 2 {
			return nil, fmt.Errorf("%w: sprite needs at least two tiles", ErrInvalidDefinition)
		}
		if len(ms.Variant) > 0 {
			if len(ms.Variant) != len(ms.Tiles) {
				return nil, fmt.Errorf("%w: sprite variant length %d, want %d", ErrInvalidDefinition, len(ms.Variant), len(ms.Tiles))
			}
			return SpriteWithVariant(ms.Tiles, ms.Variant, ms.End), nil
		}
		return Sprite(ms.Tiles, ms.End), nil
	case "color":
		if ms.Keyframes <= 0 {
			return nil, fmt.Errorf("%w: color keyframes %d", ErrInvalidDefinition, ms.Keyframes)
		}
		target, err := gfx.ParseHex(ms.Target)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
		}
		return Color(ms.Keyframes, target), nil
	case "blink":
		if ms.Count <= 0 {
			return nil, fmt.Errorf("%w: blink count %d", ErrInvalidDefinition, ms.Count)
		}
		return Blink(ms.Count), nil
	case "text":
		if ms.Content == "" {
			return nil, fmt.Errorf("%w: empty text content", ErrInvalidDefinition)
		}
		return Text(ms.Content), nil
	default:
		return nil, fmt.Errorf("%w: unknown modifier type %q", ErrInvalidDefinition, ms.Type)
	}
}
