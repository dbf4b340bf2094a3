package views

import (
	"net/url"

	"github.com/mcoot/gamehub/internal/model"
)

// SkeletonCount is the number of placeholder cards shown while loading
const SkeletonCount = 4

// Tagline is the subtitle under the greeting
const Tagline = "Your gateway to endless entertainment"

// BadgeClass maps a difficulty to its badge style. Unknown labels get the neutral style.
func BadgeClass(d model.Difficulty) string {
	switch d {
	case model.DifficultyEasy:
		return "bg-green-100 text-green-800"
	case model.DifficultyMedium:
		return "bg-yellow-100 text-yellow-800"
	case model.DifficultyHard:
		return "bg-red-100 text-red-800"
	default:
		return "bg-gray-100 text-gray-800"
	}
}

// PlayPath is the form action that starts a game
func PlayPath(id model.GameID) string {
	return "/games/" + url.PathEscape(string(id)) + "/play"
}

// Greeting returns the heading shown above the catalog
func Greeting(user *model.User) string {
	if user != nil && user.Username != "" {
		return "Ready to play, " + user.Username + "?"
	}
	return "Ready to play, gamer?"
}

// ModalMode is the mode the modal renders in; login when unset
func (m ModalData) ModalMode() model.AuthMode {
	if m.Mode == "" {
		return model.AuthModeLogin
	}
	return m.Mode
}

// ModalTitle is the heading of the auth modal for a mode
func ModalTitle(mode model.AuthMode) string {
	if mode == model.AuthModeSignup {
		return "Create Account"
	}
	return "Sign In"
}

// AuthPath is where the modal form posts
func AuthPath(mode model.AuthMode) string {
	return "/auth/" + string(mode)
}

// SwitchPath requests the other modal mode
func SwitchPath(mode model.AuthMode) string {
	return "/auth/switch?to=" + string(mode.Other())
}

// SwitchPrompt is the question before the mode switch link
func SwitchPrompt(mode model.AuthMode) string {
	if mode == model.AuthModeSignup {
		return "Already have an account?"
	}
	return "Don't have an account?"
}

// SwitchLabel is the text of the mode switch link
func SwitchLabel(mode model.AuthMode) string {
	if mode == model.AuthModeSignup {
		return "Sign In"
	}
	return "Sign Up"
}
