// Package store persists plugin records. Stores are pure I/O: they enforce the
// same write constraints as the database schema and report infrastructure
// facts through sentinel errors, leaving translation to the service.
package store

import (
	"errors"
	"fmt"

	"pangate/internal/plugin/models"
	"pangate/pkg/platform/sentinel"
)

var (
	// ErrNotFound is returned when no plugin has the requested uid.
	ErrNotFound = sentinel.ErrNotFound

	// ErrConflict is returned when a uid (or id) is already taken.
	ErrConflict = sentinel.ErrConflict

	// ErrCredentialsRequired is returned when a write would violate the
	// credential CHECK constraint. The write is not applied.
	ErrCredentialsRequired = errors.New("check constraint " + models.CredentialsConstraint + " violated")
)

func clone(p *models.Plugin) *models.Plugin {
	c := *p
	return &c
}

func checkWritable(p *models.Plugin) error {
	if p == nil {
		return fmt.Errorf("plugin is required")
	}
	if !p.Credentials().HasCredentials() {
		return ErrCredentialsRequired
	}
	return nil
}
