package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/user/project-roster/internal/domain"
	"github.com/user/project-roster/internal/domain/mocks"
)

func TestDirectoryService_SearchUsers(t *testing.T) {
	ctx := context.Background()

	u1 := uuid.New()
	u2 := uuid.New()
	dir := &mocks.MockDirectoryRepository{
		Users: map[uuid.UUID]domain.User{
			u1: {ID: u1, Code: "EMP-01", Name: "Asha Rao", Email: "asha@example.com", Phone: "9876500001"},
			u2: {ID: u2, Code: "EMP-02", Name: "Vik Mehta", Email: "vik@example.com", Role: "Architect"},
		},
	}
	svc := NewDirectoryService(dir)

	t.Run("Matches Substring Case Insensitively", func(t *testing.T) {
		users, err := svc.SearchUsers(ctx, "  ASHA ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(users) != 1 || users[0].ID != u1 {
			t.Fatalf("expected exactly user %s, got %v", u1, users)
		}
	})

	t.Run("Matches Role Of Record", func(t *testing.T) {
		users, err := svc.SearchUsers(ctx, "architect")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(users) != 1 || users[0].ID != u2 {
			t.Fatalf("expected exactly user %s, got %v", u2, users)
		}
	})

	t.Run("No Match Returns Empty Slice", func(t *testing.T) {
		users, err := svc.SearchUsers(ctx, "zzz-no-such-user")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if users == nil || len(users) != 0 {
			t.Fatalf("expected empty non-nil slice, got %v", users)
		}
	})
}
