package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yajna-funds/server/internal/domain"
)

const userColumns = `id, external_ref, username, email, profile_pic, wallet_address, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.ExternalRef, &u.Username, &u.Email, &u.ProfilePic, &u.WalletAddress, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *Store) GetUserByExternalRef(ctx context.Context, ref string) (*domain.User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE external_ref = $1`, ref)
	return scanUser(row)
}

func (s *Store) CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	row := s.db.QueryRow(ctx, `
INSERT INTO users (external_ref, username, email, profile_pic, wallet_address)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+userColumns+`;
`, in.ExternalRef, in.Username, in.Email, in.ProfilePic, in.WalletAddress)
	u, err := scanUser(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("user with external ref %q: %w", in.ExternalRef, domain.ErrAlreadyExists)
	}
	return u, err
}

func (s *Store) UpdateUser(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	row := s.db.QueryRow(ctx, `
UPDATE users SET
    username = COALESCE($2, username),
    email = COALESCE($3, email),
    profile_pic = COALESCE($4, profile_pic),
    wallet_address = COALESCE($5, wallet_address)
WHERE id = $1
RETURNING `+userColumns+`;
`, id, upd.Username, upd.Email, upd.ProfilePic, upd.WalletAddress)
	return scanUser(row)
}
