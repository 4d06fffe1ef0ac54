package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/habitboard/internal/memstore"
)

func TestCreateAnnouncementDefaultsAndTrims(t *testing.T) {
	service := NewAnnouncementService(memstore.New().Backend().Announcements)

	announcement, err := service.Create(context.Background(), AnnouncementInput{
		Title:   " Gym closed ",
		Content: "Back on Monday",
		Author:  "Front desk",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if announcement.ID == 0 {
		t.Fatal("expected id to be assigned")
	}
	if announcement.Title != "Gym closed" {
		t.Fatalf("expected trimmed title, got %q", announcement.Title)
	}
	if announcement.IsImportant {
		t.Fatal("expected isImportant to default to false")
	}
}

func TestCreateAnnouncementValidation(t *testing.T) {
	service := NewAnnouncementService(memstore.New().Backend().Announcements)

	tests := []struct {
		input AnnouncementInput
		want  error
	}{
		{input: AnnouncementInput{Content: "c", Author: "a"}, want: ErrAnnouncementTitleRequired},
		{input: AnnouncementInput{Title: "t", Author: "a"}, want: ErrAnnouncementContentRequired},
		{input: AnnouncementInput{Title: "t", Content: "c", Author: " "}, want: ErrAnnouncementAuthorRequired},
		{input: AnnouncementInput{Title: strings.Repeat("t", 201), Content: "c", Author: "a"}, want: ErrAnnouncementTooLong},
	}
	for _, test := range tests {
		_, err := service.Create(context.Background(), test.input)
		if !errors.Is(err, test.want) || !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Create(%+v) expected %v, got %v", test.input, test.want, err)
		}
	}
}

func TestListAnnouncementsNewestFirst(t *testing.T) {
	base := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	service := NewAnnouncementService(memstore.New(memstore.WithClock(clock)).Backend().Announcements)
	ctx := context.Background()

	for _, title := range []string{"t1", "t2", "t3"} {
		if _, err := service.Create(ctx, AnnouncementInput{Title: title, Content: "c", Author: "a"}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	announcements, err := service.List(ctx)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	got := make([]string, 0, len(announcements))
	for _, announcement := range announcements {
		got = append(got, announcement.Title)
	}
	if strings.Join(got, ",") != "t3,t2,t1" {
		t.Fatalf("expected [t3 t2 t1], got %v", got)
	}
}

func TestDeleteAnnouncementMissing(t *testing.T) {
	service := NewAnnouncementService(memstore.New().Backend().Announcements)
	ctx := context.Background()

	announcement, err := service.Create(ctx, AnnouncementInput{Title: "t", Content: "c", Author: "a", IsImportant: true})
	if err != nil {
		t.Fatalf("create announcement: %v", err)
	}
	if err := service.Delete(ctx, announcement.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if err := service.Delete(ctx, announcement.ID); !errors.Is(err, ErrAnnouncementNotFound) {
		t.Fatalf("expected ErrAnnouncementNotFound, got %v", err)
	}
}
