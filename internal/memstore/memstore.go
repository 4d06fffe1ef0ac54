// Package memstore keeps people and announcements in process memory. It
// satisfies the same contract as the GORM repositories and is selected with
// STORAGE=memory.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/terraincognita07/habitboard/internal/models"
	"github.com/terraincognita07/habitboard/internal/store"
)

type Store struct {
	mu                 sync.Mutex
	now                func() time.Time
	people             map[uint]models.Person
	announcements      map[uint]models.Announcement
	nextPersonID       uint
	nextAnnouncementID uint
}

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func New(options ...Option) *Store {
	s := &Store{
		now:                time.Now,
		people:             make(map[uint]models.Person),
		announcements:      make(map[uint]models.Announcement),
		nextPersonID:       1,
		nextAnnouncementID: 1,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Store) Backend() store.Backend {
	return store.Backend{
		People:        &personStore{s},
		Announcements: &announcementStore{s},
	}
}

func clonePerson(person models.Person) models.Person {
	if person.TargetDays != nil {
		days := make([]models.Weekday, len(person.TargetDays))
		copy(days, person.TargetDays)
		person.TargetDays = days
	}
	return person
}

type personStore struct {
	*Store
}

func (s *personStore) List(_ context.Context) ([]models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	people := make([]models.Person, 0, len(s.people))
	for _, person := range s.people {
		people = append(people, clonePerson(person))
	}
	sort.Slice(people, func(i, j int) bool { return people[i].ID < people[j].ID })
	return people, nil
}

func (s *personStore) Get(_ context.Context, id uint) (models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	person, ok := s.people[id]
	if !ok {
		return models.Person{}, store.ErrNotFound
	}
	return clonePerson(person), nil
}

func (s *personStore) Create(_ context.Context, person *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	person.ID = s.nextPersonID
	s.nextPersonID++
	person.CreatedAt = now
	person.UpdatedAt = now
	s.people[person.ID] = clonePerson(*person)
	return nil
}

func (s *personStore) Update(_ context.Context, id uint, mutate store.PersonMutation) (models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.people[id]
	if !ok {
		return models.Person{}, store.ErrNotFound
	}

	working := clonePerson(current)
	if err := mutate(&working); err != nil {
		return models.Person{}, err
	}
	working.ID = current.ID
	working.CreatedAt = current.CreatedAt
	working.UpdatedAt = s.now()

	s.people[id] = working
	return clonePerson(working), nil
}

func (s *personStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.people[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.people, id)
	return nil
}

type announcementStore struct {
	*Store
}

func (s *announcementStore) List(_ context.Context) ([]models.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	announcements := make([]models.Announcement, 0, len(s.announcements))
	for _, announcement := range s.announcements {
		announcements = append(announcements, announcement)
	}
	sort.Slice(announcements, func(i, j int) bool {
		left, right := announcements[i], announcements[j]
		if left.CreatedAt.Equal(right.CreatedAt) {
			return left.ID > right.ID
		}
		return left.CreatedAt.After(right.CreatedAt)
	})
	return announcements, nil
}

func (s *announcementStore) Create(_ context.Context, announcement *models.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	announcement.ID = s.nextAnnouncementID
	s.nextAnnouncementID++
	announcement.CreatedAt = now
	announcement.UpdatedAt = now
	s.announcements[announcement.ID] = *announcement
	return nil
}

func (s *announcementStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.announcements[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.announcements, id)
	return nil
}
