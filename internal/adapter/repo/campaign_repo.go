package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yajna-funds/server/internal/domain"
)

const campaignColumns = `id, user_id, title, description, funding_goal::text, current_amount::text, image, status, created_at, metadata`

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	var meta []byte
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Description, &c.FundingGoal, &c.CurrentAmount, &c.Image, &c.Status, &c.CreatedAt, &meta)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan campaign: %w", err)
	}
	c.Metadata = map[string]any{}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &c.Metadata); err != nil {
			return nil, fmt.Errorf("decode campaign metadata: %w", err)
		}
	}
	return &c, nil
}

func (s *Store) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	row := s.db.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	return scanCampaign(row)
}

func (s *Store) GetCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := s.db.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

func (s *Store) GetCampaignsByUser(ctx context.Context, userID int64) ([]domain.Campaign, error) {
	rows, err := s.db.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

func collectCampaigns(rows pgx.Rows) ([]domain.Campaign, error) {
	defer rows.Close()
	items := make([]domain.Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
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

// CreateCampaign inserts a campaign. current_amount and status come from the
// column defaults ("0", active); client values for them never reach the
// statement.
func (s *Store) CreateCampaign(ctx context.Context, in domain.NewCampaign) (*domain.Campaign, error) {
	if _, err := domain.ParseAmount(in.FundingGoal); err != nil {
		return nil, err
	}
	meta := in.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode campaign metadata: %w", err)
	}
	row := s.db.QueryRow(ctx, `
INSERT INTO campaigns (user_id, title, description, funding_goal, image, metadata)
VALUES ($1, $2, $3, $4::numeric(78,0), $5, $6)
RETURNING `+campaignColumns+`;
`, in.UserID, in.Title, in.Description, in.FundingGoal, in.Image, metaJSON)
	c, err := scanCampaign(row)
	if isForeignKeyViolation(err) {
		return nil, fmt.Errorf("user %d: %w", in.UserID, domain.ErrNotFound)
	}
	return c, err
}

func (s *Store) UpdateCampaign(ctx context.Context, id int64, upd domain.CampaignUpdate) (*domain.Campaign, error) {
	var metaJSON []byte
	if upd.Metadata != nil {
		b, err := json.Marshal(upd.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encode campaign metadata: %w", err)
		}
		metaJSON = b
	}
	row := s.db.QueryRow(ctx, `
UPDATE campaigns SET
    title = COALESCE($2, title),
    description = COALESCE($3, description),
    image = COALESCE($4, image),
    status = COALESCE($5, status),
    metadata = COALESCE($6, metadata)
WHERE id = $1
RETURNING `+campaignColumns+`;
`, id, upd.Title, upd.Description, upd.Image, (*string)(upd.Status), metaJSON)
	return scanCampaign(row)
}
