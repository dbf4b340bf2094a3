// Package views holds the view models the templ components render.
// They carry plain data and never call services.
package views

import "github.com/mcoot/gamehub/internal/model"

// Flash is a one-shot notice shown above the catalog
type Flash struct {
	Type    string // success, error, info
	Message string
}

// ModalData describes the auth modal
type ModalData struct {
	Open        bool
	Mode        model.AuthMode
	Username    string
	Email       string
	Error       string
	Loading     bool
	SubmitToken string
}

// AppData is everything the catalog page renders
type AppData struct {
	User      *model.User
	Loading   bool
	Games     []model.Game
	Catalog   model.CatalogPhase
	Modal     ModalData
	Flash     *Flash
	LaunchURL string // set once after a successful play
}
