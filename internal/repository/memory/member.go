// Package memory provides a process-local MemberRepository with the same
// ordering, uniqueness and not-found behaviour as the postgres one.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Kerhoff/GymMembers/internal/models"
	"github.com/Kerhoff/GymMembers/internal/repository"
)

type memberRepository struct {
	mu      sync.RWMutex
	nextID  int64
	members map[int64]models.Member
}

// NewMemberRepository creates an empty in-memory member repository
func NewMemberRepository() repository.MemberRepository {
	return &memberRepository{nextID: 1, members: make(map[int64]models.Member)}
}

func (r *memberRepository) List(ctx context.Context) ([]*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*models.Member, 0, len(r.members))
	for _, m := range r.members {
		m := m
		members = append(members, &m)
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].Name != members[j].Name {
			return members[i].Name < members[j].Name
		}
		return members[i].ID < members[j].ID
	})
	return members, nil
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok {
		return nil, fmt.Errorf("failed to get member %d: %w", id, repository.ErrNotFound)
	}
	return &m, nil
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) (*models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTakenLocked(member.Email, 0) {
		return nil, fmt.Errorf("failed to create member: %w", repository.ErrConflict)
	}

	created := *member
	created.ID = r.nextID
	r.nextID++
	r.members[created.ID] = created
	return &created, nil
}

func (r *memberRepository) Update(ctx context.Context, id int64, patch models.MemberPatch) (*models.Member, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("failed to update member %d: %w: no fields to update", id, repository.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[id]
	if !ok {
		return nil, fmt.Errorf("failed to update member %d: %w", id, repository.ErrNotFound)
	}
	if patch.Email != nil && r.emailTakenLocked(*patch.Email, id) {
		return nil, fmt.Errorf("failed to update member %d: %w", id, repository.ErrConflict)
	}

	patch.Apply(&m)
	r.members[id] = m
	return &m, nil
}

func (r *memberRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; !ok {
		return fmt.Errorf("failed to delete member %d: %w", id, repository.ErrNotFound)
	}
	delete(r.members, id)
	return nil
}

func (r *memberRepository) Ping(ctx context.Context) error {
	return nil
}

// emailTakenLocked reports whether a member other than exceptID uses email
func (r *memberRepository) emailTakenLocked(email string, exceptID int64) bool {
	for id, m := range r.members {
		if id != exceptID && m.Email == email {
			return true
		}
	}
	return false
}
