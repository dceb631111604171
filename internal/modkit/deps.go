// Package modkit provides module wiring and core deps
package modkit

import (
	"xferlock/internal/adapters/registrar"
	"xferlock/internal/platform/config"
	"xferlock/internal/platform/i18n"
	"xferlock/internal/platform/logger"
	"xferlock/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log       logger.Logger
	Cfg       config.Conf
	Store     *store.Store
	Registrar *registrar.Client
	Catalog   *i18n.Catalog
}

// Cache returns the shared cache or nil when no store was opened
func (d Deps) Cache() store.Cache {
	if d.Store == nil {
		return nil
	}
	return d.Store.Cache
}

// Messages returns the message catalog, falling back to the built-in one
func (d Deps) Messages() *i18n.Catalog {
	if d.Catalog == nil {
		return i18n.Default()
	}
	return d.Catalog
}
