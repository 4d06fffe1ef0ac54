// Package store defines the persistence contract shared by the GORM-backed
// repositories in internal/db and the in-memory store in internal/memstore.
package store

import (
	"context"
	"errors"

	"github.com/terraincognita07/habitboard/internal/models"
)

// ErrNotFound is returned by every implementation when the addressed record
// does not exist.
var ErrNotFound = errors.New("record not found")

// PersonMutation edits a loaded person in place. Returning an error aborts the
// update and nothing is persisted.
type PersonMutation func(person *models.Person) error

type PersonStore interface {
	// List returns all people ordered by id ascending.
	List(ctx context.Context) ([]models.Person, error)
	Get(ctx context.Context, id uint) (models.Person, error)
	// Create assigns the id and both timestamps.
	Create(ctx context.Context, person *models.Person) error
	// Update loads the person, applies mutate and persists the result with a
	// fresh UpdatedAt. The load-mutate-save cycle is atomic per record.
	Update(ctx context.Context, id uint, mutate PersonMutation) (models.Person, error)
	Delete(ctx context.Context, id uint) error
}

type AnnouncementStore interface {
	// List returns announcements newest first; ties are ordered by id descending.
	List(ctx context.Context) ([]models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement) error
	Delete(ctx context.Context, id uint) error
}

// Backend bundles the stores the HTTP layer depends on.
type Backend struct {
	People        PersonStore
	Announcements AnnouncementStore
}
