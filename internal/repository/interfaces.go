package repository

import (
	"context"

	"github.com/Kerhoff/GymMembers/internal/models"
)

// MemberRepository defines the interface for member data operations
type MemberRepository interface {
	// List returns every member ordered by name ascending in byte order
	// ("Bob" before "ann"), ties broken by id
	List(ctx context.Context) ([]*models.Member, error)
	GetByID(ctx context.Context, id int64) (*models.Member, error)
	// Create persists a new member and returns it with the assigned id
	Create(ctx context.Context, member *models.Member) (*models.Member, error)
	// Update persists only the fields present in patch and returns the full record
	Update(ctx context.Context, id int64, patch models.MemberPatch) (*models.Member, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}
