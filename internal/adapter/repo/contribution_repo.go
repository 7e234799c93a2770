package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yajna-funds/server/internal/domain"
)

const contributionColumns = `id, user_id, campaign_id, amount::text, transaction_hash, created_at`

func scanContribution(row pgx.Row) (*domain.Contribution, error) {
	var c domain.Contribution
	err := row.Scan(&c.ID, &c.UserID, &c.CampaignID, &c.Amount, &c.TransactionHash, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan contribution: %w", err)
	}
	return &c, nil
}

func (s *Store) GetContribution(ctx context.Context, id int64) (*domain.Contribution, error) {
	row := s.db.QueryRow(ctx, `SELECT `+contributionColumns+` FROM contributions WHERE id = $1`, id)
	return scanContribution(row)
}

func (s *Store) GetContributionsByUser(ctx context.Context, userID int64) ([]domain.Contribution, error) {
	rows, err := s.db.Query(ctx, `SELECT `+contributionColumns+` FROM contributions WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	return collectContributions(rows)
}

func (s *Store) GetContributionsByCampaign(ctx context.Context, campaignID int64) ([]domain.Contribution, error) {
	rows, err := s.db.Query(ctx, `SELECT `+contributionColumns+` FROM contributions WHERE campaign_id = $1 ORDER BY id`, campaignID)
	if err != nil {
		return nil, err
	}
	return collectContributions(rows)
}

func collectContributions(rows pgx.Rows) ([]domain.Contribution, error) {
	defer rows.Close()
	items := make([]domain.Contribution, 0)
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateContribution runs the ledger update and the contribution insert in
// one transaction. The increment is a single UPDATE against the stored
// total, so concurrent contributions to the same campaign serialize at the
// row and cannot lose an update. An unknown campaign or user id aborts the
// whole transaction with ErrNotFound.
func (s *Store) CreateContribution(ctx context.Context, in domain.NewContribution) (*domain.Contribution, error) {
	if _, err := domain.ParseAmount(in.Amount); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin contribution tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
UPDATE campaigns SET current_amount = current_amount + $2::numeric(78,0) WHERE id = $1;
`, in.CampaignID, in.Amount)
	if err != nil {
		return nil, fmt.Errorf("update campaign ledger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("campaign %d: %w", in.CampaignID, domain.ErrNotFound)
	}

	row := tx.QueryRow(ctx, `
INSERT INTO contributions (user_id, campaign_id, amount, transaction_hash)
VALUES ($1, $2, $3::numeric(78,0), $4)
RETURNING `+contributionColumns+`;
`, in.UserID, in.CampaignID, in.Amount, in.TransactionHash)
	c, err := scanContribution(row)
	if isForeignKeyViolation(err) {
		// The campaign row was just updated, so the only FK left is the user.
		return nil, fmt.Errorf("user %d: %w", in.UserID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit contribution tx: %w", err)
	}
	return c, nil
}
