package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/skill-swap-service/internal/domain"
)

// UserFilter captures directory search parameters.
type UserFilter struct {
	Search         string
	Availability   *domain.Availability
	IncludeBanned  bool
	IncludePrivate bool
	Limit          int
	Offset         int
}

// UserRepository defines persistence access for members.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, location, bio, skills_offered, skills_wanted,
        availability, rating, rating_count, role, public, banned, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, password_hash, location, bio, skills_offered, skills_wanted,
            availability, rating, rating_count, role, public, banned)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Location,
		user.Bio,
		user.SkillsOffered,
		user.SkillsWanted,
		user.Availability,
		user.Rating,
		user.RatingCount,
		user.Role,
		user.Public,
		user.Banned,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, email=$2, password_hash=$3, location=$4, bio=$5,
            skills_offered=$6, skills_wanted=$7, availability=$8, rating=$9, rating_count=$10,
            role=$11, public=$12, banned=$13, updated_at=NOW()
        WHERE id=$14`

	cmd, err := r.pool.Exec(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Location,
		user.Bio,
		user.SkillsOffered,
		user.SkillsWanted,
		user.Availability,
		user.Rating,
		user.RatingCount,
		user.Role,
		user.Public,
		user.Banned,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id=$1`, userColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email=$1`, userColumns)
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]domain.User, error) {
	var (
		conditions []string
		args       []any
	)

	if !filter.IncludeBanned {
		conditions = append(conditions, "banned = FALSE")
	}
	if !filter.IncludePrivate {
		conditions = append(conditions, "public = TRUE")
	}
	if filter.Availability != nil {
		args = append(args, *filter.Availability)
		conditions = append(conditions, fmt.Sprintf("availability = $%d", len(args)))
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		args = append(args, "%"+term+"%")
		idx := len(args)
		conditions = append(conditions, fmt.Sprintf(
			`(name ILIKE $%d
              OR EXISTS (SELECT 1 FROM unnest(skills_offered) s WHERE s ILIKE $%d)
              OR EXISTS (SELECT 1 FROM unnest(skills_wanted) s WHERE s ILIKE $%d))`, idx, idx, idx))
	}

	query := fmt.Sprintf(`SELECT %s FROM users`, userColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, query, arg))
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Location,
		&user.Bio,
		&user.SkillsOffered,
		&user.SkillsWanted,
		&user.Availability,
		&user.Rating,
		&user.RatingCount,
		&user.Role,
		&user.Public,
		&user.Banned,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
