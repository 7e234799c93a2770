// Package handlers contains the HTTP handlers for the Yajna Funds REST API.
// Each handler is a thin translation from request shape to a domain.Store
// call; there is deliberately no business-rule validation beyond structure
// (a contribution is not checked against the remaining goal, for example).
package handlers

import (
	"github.com/rs/zerolog"

	"github.com/yajna-funds/server/internal/domain"
)

// App is the handler container; the store backend behind it is chosen at
// startup.
type App struct {
	Store  domain.Store
	Logger zerolog.Logger
}

func NewApp(store domain.Store, logger zerolog.Logger) *App {
	return &App{Store: store, Logger: logger}
}
