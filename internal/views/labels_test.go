package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/gamehub/internal/model"
)

func TestBadgeClass(t *testing.T) {
	cases := map[model.Difficulty]string{
		model.DifficultyEasy:   "bg-green-100 text-green-800",
		model.DifficultyMedium: "bg-yellow-100 text-yellow-800",
		model.DifficultyHard:   "bg-red-100 text-red-800",
		"Expert":               "bg-gray-100 text-gray-800",
		"":                     "bg-gray-100 text-gray-800",
	}
	for d, want := range cases {
		assert.Equal(t, want, BadgeClass(d), "difficulty %q", d)
	}
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Ready to play, gamer?", Greeting(nil))
	assert.Equal(t, "Ready to play, gamer?", Greeting(&model.User{Email: "a@x.io"}))
	assert.Equal(t, "Ready to play, bob?", Greeting(&model.User{Username: "bob"}))
}

func TestPlayPathEscapesID(t *testing.T) {
	assert.Equal(t, "/games/game1/play", PlayPath("game1"))
	assert.Equal(t, "/games/a%2Fb/play", PlayPath("a/b"))
}

func TestModalLabels(t *testing.T) {
	login := ModalData{}
	assert.Equal(t, model.AuthModeLogin, login.ModalMode())
	assert.Equal(t, "Sign In", ModalTitle(model.AuthModeLogin))
	assert.Equal(t, "/auth/login", AuthPath(model.AuthModeLogin))
	assert.Equal(t, "/auth/switch?to=signup", SwitchPath(model.AuthModeLogin))
	assert.Equal(t, "Don't have an account?", SwitchPrompt(model.AuthModeLogin))
	assert.Equal(t, "Sign Up", SwitchLabel(model.AuthModeLogin))

	assert.Equal(t, "Create Account", ModalTitle(model.AuthModeSignup))
	assert.Equal(t, "/auth/switch?to=login", SwitchPath(model.AuthModeSignup))
	assert.Equal(t, "Already have an account?", SwitchPrompt(model.AuthModeSignup))
	assert.Equal(t, "Sign In", SwitchLabel(model.AuthModeSignup))
}
