package state

import (
	"strings"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Control ranges of the pattern settings.
const (
	MinDotSize   = 1
	MaxDotSize   = 10
	MinSpacing   = 4
	MaxSpacing   = 20
	MinThreshold = 0
	MaxThreshold = 255
	MinNoise     = 0.0
	MaxNoise     = 1.0
)

type Rarity string

const (
	Uncommon Rarity = "Uncommon"
	Rare     Rarity = "Rare"
)

// PatternSettings are shared by every card.
type PatternSettings struct {
	DotSize   int     `json:"dotSize"`
	Spacing   int     `json:"spacing"`
	Threshold int     `json:"threshold"`
	Noise     float64 `json:"noise"`
}

// Clamp constrains every field to its control range.
func (p PatternSettings) Clamp() PatternSettings {
	p.DotSize = min(max(p.DotSize, MinDotSize), MaxDotSize)
	p.Spacing = min(max(p.Spacing, MinSpacing), MaxSpacing)
	p.Threshold = min(max(p.Threshold, MinThreshold), MaxThreshold)
	if !(p.Noise >= MinNoise) {
		p.Noise = MinNoise
	}
	if p.Noise > MaxNoise {
		p.Noise = MaxNoise
	}
	return p
}

// CardSettings hold the per-card color and footer text fields.
type CardSettings struct {
	Color    string `json:"color"`
	Rarity   Rarity `json:"rarity"`
	Distance string `json:"distance"`
	Time     string `json:"time"`
	// Pace is only shown when non-empty.
	Pace string `json:"pace,omitempty"`
}

type Settings struct {
	Pattern PatternSettings `json:"pattern"`
	Cards   []CardSettings  `json:"cards"`
}

// DefaultSettings returns the settings shown on first start.
func DefaultSettings() Settings {
	return Settings{
		Pattern: PatternSettings{DotSize: 4, Spacing: 8, Threshold: 128, Noise: 0.2},
		Cards: []CardSettings{
			{Color: "#ff66cc", Rarity: Uncommon, Distance: "21.16km", Time: "01:45:33"},
			{Color: "#ccff00", Rarity: Rare, Distance: "21.19km", Time: "02:17:11", Pace: "05'43"},
		},
	}
}

// NormalizeColor lower-cases a parseable hex color into "#rrggbb". Other
// strings are returned trimmed and unchanged; they render as black.
func NormalizeColor(s string) string {
	s = strings.TrimSpace(s)
	c, err := colorful.Hex(s)
	if err != nil {
		return s
	}
	return c.Hex()
}

type Store struct {
	mu       sync.RWMutex
	settings Settings
	version  uint64
}

func NewStore() *Store {
	return NewStoreWith(DefaultSettings())
}

func NewStoreWith(settings Settings) *Store {
	store := &Store{version: 1}
	store.settings = clone(settings)
	store.settings.Pattern = store.settings.Pattern.Clamp()
	return store
}

// Snapshot returns a copy that is safe to use without the lock.
func (store *Store) Snapshot() Settings {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return clone(store.settings)
}

// Version increases on every mutation.
func (store *Store) Version() uint64 {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.version
}

// UpdatePattern replaces the pattern settings after clamping them and
// returns the stored value.
func (store *Store) UpdatePattern(pattern PatternSettings) PatternSettings {
	pattern = pattern.Clamp()
	store.mu.Lock()
	store.settings.Pattern = pattern
	store.version++
	store.mu.Unlock()
	return pattern
}

// UpdateCard replaces card index i. It reports false when i is out of range.
func (store *Store) UpdateCard(i int, card CardSettings) bool {
	card.Color = NormalizeColor(card.Color)
	store.mu.Lock()
	defer store.mu.Unlock()
	if i < 0 || i >= len(store.settings.Cards) {
		return false
	}
	store.settings.Cards[i] = card
	store.version++
	return true
}

func clone(s Settings) Settings {
	s.Cards = append([]CardSettings(nil), s.Cards...)
	return s
}
