package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/Kerhoff/GymMembers/internal/models"
	"github.com/Kerhoff/GymMembers/internal/repository"
)

// uniqueViolation is the SQLSTATE raised for a duplicate members.email
const uniqueViolation pq.ErrorCode = "23505"

const memberColumns = `id, name, email, membership_type, join_date, status`

type memberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a new member repository backed by the given pool
func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	member := &models.Member{}
	err := row.Scan(
		&member.ID,
		&member.Name,
		&member.Email,
		&member.MembershipType,
		&member.JoinDate,
		&member.Status,
	)
	if err != nil {
		return nil, err
	}
	return member, nil
}

// translateError maps driver errors onto the repository sentinels
func translateError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return repository.ErrConflict
	}
	return err
}

func (r *memberRepository) List(ctx context.Context) ([]*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY name COLLATE "C" ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := []*models.Member{}
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	member, err := scanMember(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get member %d: %w", id, translateError(err))
	}
	return member, nil
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) (*models.Member, error) {
	query := `
		INSERT INTO members (name, email, membership_type, join_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + memberColumns

	created, err := scanMember(r.db.QueryRowContext(ctx, query,
		member.Name,
		member.Email,
		member.MembershipType,
		member.JoinDate,
		member.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create member: %w", translateError(err))
	}
	return created, nil
}

// Update builds one parameterized statement covering exactly the fields
// present in patch. Column names come from the fixed list below, never from input.
func (r *memberRepository) Update(ctx context.Context, id int64, patch models.MemberPatch) (*models.Member, error) {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Email != nil {
		set("email", *patch.Email)
	}
	if patch.MembershipType != nil {
		set("membership_type", *patch.MembershipType)
	}
	if patch.JoinDate != nil {
		set("join_date", *patch.JoinDate)
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("failed to update member %d: %w: no fields to update", id, repository.ErrValidation)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE members SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), memberColumns)

	updated, err := scanMember(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to update member %d: %w", id, translateError(err))
	}
	return updated, nil
}

func (r *memberRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete member %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("failed to delete member %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *memberRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
