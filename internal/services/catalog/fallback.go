package catalog

import "github.com/mcoot/gamehub/internal/model"

// Fallback returns the static catalog shown when the catalog service is
// unreachable. Each call returns a fresh slice.
func Fallback() []model.Game {
	return []model.Game{
		{
			ID:          "game1",
			Title:       "Snake Classic",
			Description: "Navigate the snake to collect food and grow longer without hitting walls or yourself.",
			ImageURL:    model.PlaceholderImage,
			Difficulty:  model.DifficultyEasy,
		},
		{
			ID:          "game2",
			Title:       "Memory Match",
			Description: "Test your memory by matching pairs of cards in this classic concentration game.",
			ImageURL:    model.PlaceholderImage,
			Difficulty:  model.DifficultyMedium,
		},
		{
			ID:          "game3",
			Title:       "Space Shooter",
			Description: "Defend Earth from alien invaders in this action-packed space adventure.",
			ImageURL:    model.PlaceholderImage,
			Difficulty:  model.DifficultyHard,
		},
		{
			ID:          "game4",
			Title:       "Puzzle Master",
			Description: "Solve challenging puzzles and train your brain with this addictive game.",
			ImageURL:    model.PlaceholderImage,
			Difficulty:  model.DifficultyMedium,
		},
	}
}
