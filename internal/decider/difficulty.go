package decider

import (
	"fmt"
	"strings"
)

// Difficulty is the scalar triple governing exploration-vs-exploitation
// (Alpha), random-play probability (Randomness), and risk sensitivity
// (RiskAwareness).
type Difficulty struct {
	Alpha         float64
	Randomness    float64
	RiskAwareness float64
}

// Canonical difficulty presets, per spec §6.
var (
	Easy   = Difficulty{Alpha: 0.1, Randomness: 0.6, RiskAwareness: 0.1}
	Normal = Difficulty{Alpha: 0.4, Randomness: 0.3, RiskAwareness: 0.2}
	Hard   = Difficulty{Alpha: 0.7, Randomness: 0.0, RiskAwareness: 0.4}
)

// Preset looks up a canonical difficulty by name ("easy", "normal", "hard",
// case-insensitive).
func Preset(name string) (Difficulty, error) {
	switch strings.ToLower(name) {
	case "easy":
		return Easy, nil
	case "normal":
		return Normal, nil
	case "hard":
		return Hard, nil
	default:
		return Difficulty{}, fmt.Errorf("decider: unknown difficulty preset %q", name)
	}
}
