package components_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/views"
	"github.com/mcoot/gamehub/internal/web/templates/components"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

var breakout = model.Game{
	ID:          "game1",
	Title:       "Breakout",
	Description: "Smash bricks",
	ImageURL:    "https://img.example.com/breakout.png",
	Difficulty:  model.DifficultyHard,
}

func TestGameCard(t *testing.T) {
	doc := render(t, components.GameCard(breakout))

	card := doc.Find("article.game-card")
	require.Equal(t, 1, card.Length())
	assert.Equal(t, "game1", card.AttrOr("data-game-id", ""))
	assert.Equal(t, "Breakout", card.Find(".game-title").Text())
	assert.Equal(t, "Smash bricks", card.Find(".game-description").Text())

	img := card.Find("img")
	assert.Equal(t, breakout.ImageURL, img.AttrOr("src", ""))
	assert.Equal(t, "Breakout", img.AttrOr("alt", ""))
	assert.Contains(t, img.AttrOr("onerror", ""), model.PlaceholderImage)
	assert.Contains(t, img.AttrOr("onerror", ""), "this.onerror=null")

	form := card.Find("form")
	assert.Equal(t, "/games/game1/play", form.AttrOr("action", ""))
	assert.Equal(t, "/games/game1/play", form.AttrOr("hx-post", ""))
	assert.Equal(t, "Play Now", card.Find("button.play-button").Text())
}

func TestGameCardEscapesText(t *testing.T) {
	g := breakout
	g.Title = `<script>alert(1)</script>`
	doc := render(t, components.GameCard(g))

	assert.Zero(t, doc.Find(".game-title script").Length())
	assert.Equal(t, g.Title, doc.Find(".game-title").Text())
}

func TestDifficultyBadgeClasses(t *testing.T) {
	doc := render(t, components.DifficultyBadge(model.DifficultyEasy))

	badge := doc.Find("span.difficulty-badge")
	assert.Equal(t, "Easy", badge.Text())
	assert.True(t, badge.HasClass("bg-green-100"))
	assert.True(t, badge.HasClass("rounded-full"))
}

func TestCatalogGrid(t *testing.T) {
	t.Run("loading shows skeletons", func(t *testing.T) {
		doc := render(t, components.CatalogGrid(nil, model.CatalogLoading))
		assert.Equal(t, views.SkeletonCount, doc.Find(".skeleton-card").Length())
		assert.Equal(t, "loading", doc.Find("#catalog").AttrOr("data-catalog", ""))
	})

	t.Run("live shows cards", func(t *testing.T) {
		games := []model.Game{breakout, {ID: "game2", Title: "Sudoku", Difficulty: model.DifficultyMedium}}
		doc := render(t, components.CatalogGrid(games, model.CatalogLive))
		assert.Equal(t, 2, doc.Find(".game-card").Length())
		assert.Zero(t, doc.Find(".skeleton-card").Length())
	})
}

func TestHeader(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		doc := render(t, components.Header(nil, true))
		assert.Equal(t, 1, doc.Find(".header-skeleton").Length())
		assert.Zero(t, doc.Find(".sign-in").Length())
	})

	t.Run("signed out", func(t *testing.T) {
		doc := render(t, components.Header(nil, false))
		assert.Equal(t, "/app?auth=login", doc.Find("a.sign-in").AttrOr("href", ""))
		assert.Equal(t, "/app?auth=signup", doc.Find("a.sign-up").AttrOr("href", ""))
		assert.Zero(t, doc.Find(".sign-out").Length())
	})

	t.Run("signed in", func(t *testing.T) {
		user := &model.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
		doc := render(t, components.Header(user, false))
		assert.Equal(t, user.DisplayName(), doc.Find(".user-name").Text())
		assert.Equal(t, "/auth/logout", doc.Find("form").AttrOr("hx-post", ""))
		assert.Equal(t, "Sign Out", doc.Find("button.sign-out").Text())
		assert.Zero(t, doc.Find(".sign-in").Length())
	})
}

func TestFlashNotice(t *testing.T) {
	doc := render(t, components.FlashNotice(&views.Flash{Type: "error", Message: "Nope"}))
	flash := doc.Find(".flash")
	assert.True(t, flash.HasClass("flash-error"))
	assert.Equal(t, "Nope", flash.Text())
	assert.Equal(t, "status", flash.AttrOr("role", ""))

	doc = render(t, components.FlashNotice(nil))
	assert.Zero(t, doc.Find(".flash").Length())
}

func TestAuthModal(t *testing.T) {
	t.Run("closed renders nothing", func(t *testing.T) {
		doc := render(t, components.AuthModal(views.ModalData{}))
		assert.Zero(t, doc.Find("#auth-modal").Length())
	})

	t.Run("login", func(t *testing.T) {
		doc := render(t, components.AuthModal(views.ModalData{Open: true, Email: "a@b.c", SubmitToken: "tok"}))
		modal := doc.Find("#auth-modal")
		assert.Equal(t, "login", modal.AttrOr("data-mode", ""))
		assert.Equal(t, "Sign In", modal.Find(".modal-title").Text())
		assert.Equal(t, "/auth/login", modal.Find("form").AttrOr("hx-post", ""))
		assert.Equal(t, "tok", modal.Find(`input[name="submit_token"]`).AttrOr("value", ""))
		assert.Equal(t, "a@b.c", modal.Find(`input[name="email"]`).AttrOr("value", ""))
		assert.Zero(t, modal.Find(`input[name="username"]`).Length())
		assert.Zero(t, modal.Find(`input[name="confirm_password"]`).Length())
		assert.Equal(t, "/auth/switch?to=signup", modal.Find("a.modal-switch").AttrOr("href", ""))
		assert.Equal(t, "Sign Up", modal.Find("a.modal-switch").Text())
		_, disabled := modal.Find("button.modal-submit").Attr("disabled")
		assert.False(t, disabled)
	})

	t.Run("signup with error", func(t *testing.T) {
		doc := render(t, components.AuthModal(views.ModalData{
			Open:     true,
			Mode:     model.AuthModeSignup,
			Username: "alice",
			Error:    "Passwords do not match",
		}))
		modal := doc.Find("#auth-modal")
		assert.Equal(t, "Create Account", modal.Find(".modal-title").Text())
		assert.Equal(t, "alice", modal.Find(`input[name="username"]`).AttrOr("value", ""))
		assert.Equal(t, 1, modal.Find(`input[name="confirm_password"]`).Length())
		assert.Equal(t, "Passwords do not match", modal.Find(`.modal-error[role="alert"]`).Text())
		assert.Equal(t, "Sign In", modal.Find("a.modal-switch").Text())
	})

	t.Run("loading disables submit", func(t *testing.T) {
		doc := render(t, components.AuthModal(views.ModalData{Open: true, Loading: true}))
		button := doc.Find("button.modal-submit")
		_, disabled := button.Attr("disabled")
		assert.True(t, disabled)
		assert.Equal(t, "Please wait...", button.Text())
	})
}
