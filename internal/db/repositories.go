package db

import (
	"github.com/terraincognita07/habitboard/internal/store"
	"gorm.io/gorm"
)

type Repositories struct {
	People        *PersonRepository
	Announcements *AnnouncementRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		People:        NewPersonRepository(database),
		Announcements: NewAnnouncementRepository(database),
	}
}

func (repos *Repositories) Backend() store.Backend {
	return store.Backend{
		People:        repos.People,
		Announcements: repos.Announcements,
	}
}
