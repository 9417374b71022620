package usecase

import (
	"context"
	"strings"

	"github.com/user/project-roster/internal/domain"
)

// MaxUserSearchResults caps directory search responses.
const MaxUserSearchResults = 50

type directoryService struct {
	directory domain.DirectoryRepository
}

// NewDirectoryService creates the user directory search service.
func NewDirectoryService(directory domain.DirectoryRepository) DirectoryUseCase {
	return &directoryService{directory: directory}
}

func (s *directoryService) SearchUsers(ctx context.Context, q string) ([]domain.User, error) {
	q = strings.TrimSpace(q)
	users, err := s.directory.SearchUsers(ctx, q, MaxUserSearchResults)
	if err != nil {
		return nil, coerceStorage(err, "search users")
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
