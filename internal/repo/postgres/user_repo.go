package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dextiii09/pingnewapp/internal/domain/enums"
	"github.com/dextiii09/pingnewapp/internal/domain/model"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// UserPatch carries the partial-update fields a user may change about
// themselves. Nil pointers leave the column untouched.
type UserPatch struct {
	DisplayName *string
	Location    *string
	Tags        []string
	MatchScore  *int
}

const userColumns = `
	id,
	display_name,
	role,
	status,
	verification,
	match_score,
	tags,
	COALESCE(location, ''),
	is_seed,
	created_at
`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.DisplayName,
		&u.Role,
		&u.Status,
		&u.Verification,
		&u.MatchScore,
		&u.Tags,
		&u.Location,
		&u.IsSeed,
		&u.CreatedAt,
	)
	return u, err
}

func (r *UserRepo) Get(ctx context.Context, userID string) (model.User, error) {
	if strings.TrimSpace(userID) == "" {
		return model.User{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return model.User{}, ErrUserNotFound
	}

	u, err := scanUser(r.pool.QueryRow(ctx, `
SELECT `+userColumns+`
FROM users
WHERE id = $1
LIMIT 1
`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}

	return u, nil
}

// ListCandidates returns the active, non-seed discovery pool for a
// role, excluding the viewer, in creation order.
func (r *UserRepo) ListCandidates(ctx context.Context, role enums.Role, excludeID string, limit int) ([]model.User, error) {
	if role == "" {
		return nil, fmt.Errorf("invalid candidate role")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []model.User{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+userColumns+`
FROM users
WHERE
	role = $1
	AND status = $2
	AND id <> $3
	AND is_seed = FALSE
ORDER BY created_at DESC, id DESC
LIMIT $4
`, role, enums.UserStatusActive, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows, limit)
}

// ListSeeds returns curated fallback profiles for a role, skipping any
// ids already present in the feed.
func (r *UserRepo) ListSeeds(ctx context.Context, role enums.Role, excludeIDs []string, limit int) ([]model.User, error) {
	if role == "" {
		return nil, fmt.Errorf("invalid seed role")
	}
	if limit <= 0 {
		limit = 10
	}
	if r.pool == nil {
		return []model.User{}, nil
	}
	if excludeIDs == nil {
		excludeIDs = []string{}
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+userColumns+`
FROM users
WHERE
	role = $1
	AND status = $2
	AND is_seed = TRUE
	AND id <> ALL($3::text[])
ORDER BY created_at DESC, id DESC
LIMIT $4
`, role, enums.UserStatusActive, excludeIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("list seed candidates: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows, limit)
}

func (r *UserRepo) UpdatePartial(ctx context.Context, userID string, patch UserPatch) (model.User, error) {
	if strings.TrimSpace(userID) == "" {
		return model.User{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	u, err := scanUser(r.pool.QueryRow(ctx, `
UPDATE users SET
	display_name = COALESCE($2, display_name),
	location = COALESCE($3, location),
	tags = COALESCE($4, tags),
	match_score = COALESCE($5, match_score)
WHERE id = $1
RETURNING `+userColumns, userID, patch.DisplayName, patch.Location, patch.Tags, patch.MatchScore))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("update user: %w", err)
	}

	return u, nil
}

// BumpMatchScore adjusts the ranking hint after a match; a missing
// score starts from the configured default before the delta applies.
func (r *UserRepo) BumpMatchScore(ctx context.Context, userID string, delta, defaultScore int) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE users
SET match_score = COALESCE(match_score, $3) + $2
WHERE id = $1
`, userID, delta, defaultScore); err != nil {
		return fmt.Errorf("bump match score: %w", err)
	}

	return nil
}

func collectUsers(rows pgx.Rows, capacity int) ([]model.User, error) {
	items := make([]model.User, 0, capacity)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		items = append(items, u)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate users: %w", rows.Err())
	}

	return items, nil
}
