package config

import "fmt"

// DifficultyPreset selects how strong the CPU opponent plays.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Difficulties lists every preset from weakest to strongest.
var Difficulties = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParseDifficulty converts a name into a preset.
// An empty name selects DifficultyNormal.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(name), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (expected easy, normal or hard)", name)
	}
}

// Next returns the following preset, wrapping from hard back to easy.
func (p DifficultyPreset) Next() DifficultyPreset {
	for i, d := range Difficulties {
		if d == p {
			return Difficulties[(i+1)%len(Difficulties)]
		}
	}
	return DifficultyNormal
}

// Label returns a capitalized display name.
func (p DifficultyPreset) Label() string {
	switch p {
	case DifficultyEasy:
		return "Easy"
	case DifficultyHard:
		return "Hard"
	default:
		return "Normal"
	}
}
