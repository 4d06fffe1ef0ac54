// Package storetest holds the conformance suite every store.Backend
// implementation runs from its own tests.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/habitboard/internal/models"
	"github.com/terraincognita07/habitboard/internal/store"
)

// Factory returns a fresh, empty backend for one subtest.
type Factory func(t *testing.T) store.Backend

func Run(t *testing.T, newBackend Factory) {
	t.Helper()

	t.Run("people list by id ascending", func(t *testing.T) { testPeopleListOrder(t, newBackend(t)) })
	t.Run("people create assigns id and timestamps", func(t *testing.T) { testPeopleCreate(t, newBackend(t)) })
	t.Run("people get missing", func(t *testing.T) { testPeopleGetMissing(t, newBackend(t)) })
	t.Run("people update applies mutation", func(t *testing.T) { testPeopleUpdate(t, newBackend(t)) })
	t.Run("people update aborted by mutation error", func(t *testing.T) { testPeopleUpdateAborted(t, newBackend(t)) })
	t.Run("people update missing", func(t *testing.T) { testPeopleUpdateMissing(t, newBackend(t)) })
	t.Run("people concurrent updates on different fields commute", func(t *testing.T) { testPeopleConcurrentUpdates(t, newBackend(t)) })
	t.Run("people delete twice", func(t *testing.T) { testPeopleDeleteTwice(t, newBackend(t)) })
	t.Run("announcements list newest first", func(t *testing.T) { testAnnouncementsOrder(t, newBackend(t)) })
	t.Run("announcements delete twice", func(t *testing.T) { testAnnouncementsDeleteTwice(t, newBackend(t)) })
}

func newPerson(name string) *models.Person {
	return &models.Person{
		Name:        name,
		Goal:        "read 20 pages",
		Emoji:       models.DefaultPersonEmoji,
		TargetType:  models.TargetSpecificDays,
		TargetDays:  models.TrackedWeekdays(),
		TargetCount: models.DefaultTargetCount,
	}
}

func testPeopleListOrder(t *testing.T, backend store.Backend) {
	ctx := context.Background()
	for _, name := range []string{"Ada", "Grace", "Linus"} {
		require.NoError(t, backend.People.Create(ctx, newPerson(name)))
	}

	people, err := backend.People.List(ctx)
	require.NoError(t, err)
	require.Len(t, people, 3)
	for index := 1; index < len(people); index++ {
		require.Less(t, people[index-1].ID, people[index].ID)
	}
	require.Equal(t, "Ada", people[0].Name)
	require.Equal(t, "Linus", people[2].Name)
}

func testPeopleCreate(t *testing.T, backend store.Backend) {
	ctx := context.Background()
	person := newPerson("Ada")
	require.NoError(t, backend.People.Create(ctx, person))
	require.NotZero(t, person.ID)
	require.False(t, person.CreatedAt.IsZero())
	require.False(t, person.UpdatedAt.IsZero())

	stored, err := backend.People.Get(ctx, person.ID)
	require.NoError(t, err)
	require.Equal(t, person.Name, stored.Name)
	require.Equal(t, models.TrackedWeekdays(), stored.TargetDays)
	require.Equal(t, models.WeeklyProgress{}, stored.WeeklyProgress)
	require.Zero(t, stored.CurrentStreak)
}

func testPeopleGetMissing(t *testing.T, backend store.Backend) {
	_, err := backend.People.Get(context.Background(), 4242)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testPeopleUpdate(t *testing.T, backend store.Backend) {
	ctx := context.Background()
	person := newPerson("Ada")
	require.NoError(t, backend.People.Create(ctx, person))

	updated, err := backend.People.Update(ctx, person.ID, func(current *models.Person) error {
		current.WeeklyProgress.Set(models.Monday, true)
		current.CurrentStreak = 1
		current.Goal = "run 5k"
		return nil
	})
	require.NoError(t, err)
	require.True(t, updated.WeeklyProgress.Monday)
	require.Equal(t, 1, updated.CurrentStreak)
	require.False(t, updated.UpdatedAt.Before(person.UpdatedAt))

	stored, err := backend.People.Get(ctx, person.ID)
	require.NoError(t, err)
	require.Equal(t, "run 5k", stored.Goal)
	require.True(t, stored.WeeklyProgress.Monday)
	require.Equal(t, person.ID, stored.ID)
}

func testPeopleUpdateAborted(t *testing.T, backend store.Backend) {
	ctx := context.Background()
	person := newPerson("Ada")
	require.NoError(t, backend.People.Create(ctx, person))

	errAbort := errors.New("abort")
	_, err := backend.People.Update(ctx, person.ID, func(current *models.Person) error {
		current.Name = "changed"
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	stored, err := backend.People.Get(ctx, person.ID)
	require.NoError(t, err)
	require.Equal(t, "Ada", stored.Name)
}

func testPeopleUpdateMissing(t *testing.T, backend store.Backend) {
	called := false
	_, err := backend.People.Update(context.Background(), 4242, func(*models.Person) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, store.ErrNotFound)
	require.False(t, called)
}

func testPeopleConcurrentUpdates(t *testing.T, backend store.Backend) {
	ctx := context.Background()
	person := newPerson("Ada")
	require.NoError(t, backend.People.Create(ctx, person))

	var wg sync.WaitGroup
	errs := make(chan error, len(models.TrackedWeekdays()))
	for _, day := range models.TrackedWeekdays() {
		wg.Add(1)
		go func(day models.Weekday) {
			defer wg.Done()
			_, err := backend.People.Update(ctx, person.ID, func(current *models.Person) error {
				current.WeeklyProgress.Set(day, true)
				return nil
			})
			errs <- err
		}(day)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := backend.People.Get(ctx, person.ID)
	require.NoError(t, err)
	for _, day := range models.TrackedWeekdays() {
		require.Truef(t, stored.WeeklyProgress.Completed(day), "expected %s to be completed", day)
	}
}

func testPeopleDeleteTwice(t *testing.T, backend store.Backend) {
	ctx := context.Background()
	person := newPerson("Ada")
	require.NoError(t, backend.People.Create(ctx, person))

	require.NoError(t, backend.People.Delete(ctx, person.ID))
	require.ErrorIs(t, backend.People.Delete(ctx, person.ID), store.ErrNotFound)

	_, err := backend.People.Get(ctx, person.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testAnnouncementsOrder(t *testing.T, backend store.Backend) {
	ctx := context.Background()
	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		announcement := &models.Announcement{Title: title, Content: "body", Author: "staff"}
		require.NoError(t, backend.Announcements.Create(ctx, announcement))
		require.NotZero(t, announcement.ID)
		require.False(t, announcement.CreatedAt.IsZero())
		time.Sleep(2 * time.Millisecond)
	}

	announcements, err := backend.Announcements.List(ctx)
	require.NoError(t, err)
	require.Len(t, announcements, 3)
	require.Equal(t, "third", announcements[0].Title)
	require.Equal(t, "second", announcements[1].Title)
	require.Equal(t, "first", announcements[2].Title)
}

func testAnnouncementsDeleteTwice(t *testing.T, backend store.Backend) {
	ctx := context.Background()
	announcement := &models.Announcement{Title: "t", Content: "c", Author: "a", IsImportant: true}
	require.NoError(t, backend.Announcements.Create(ctx, announcement))

	require.NoError(t, backend.Announcements.Delete(ctx, announcement.ID))
	require.ErrorIs(t, backend.Announcements.Delete(ctx, announcement.ID), store.ErrNotFound)

	announcements, err := backend.Announcements.List(ctx)
	require.NoError(t, err)
	require.Empty(t, announcements)
}
