package domain

import "context"

// Store is the persistence contract shared by the in-memory and PostgreSQL
// backends. Getters return ErrNotFound for missing ids; updates fail with
// ErrNotFound when the target does not exist.
//
// CreateContribution is the one compound operation: it records the
// contribution and adds its amount to the referenced campaign's
// CurrentAmount as a single atomic step. A contribution against a campaign
// that does not exist is rejected with ErrNotFound and nothing is persisted.
type Store interface {
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByExternalRef(ctx context.Context, ref string) (*User, error)
	CreateUser(ctx context.Context, in NewUser) (*User, error)
	UpdateUser(ctx context.Context, id int64, upd UserUpdate) (*User, error)

	GetCampaign(ctx context.Context, id int64) (*Campaign, error)
	GetCampaigns(ctx context.Context) ([]Campaign, error)
	GetCampaignsByUser(ctx context.Context, userID int64) ([]Campaign, error)
	CreateCampaign(ctx context.Context, in NewCampaign) (*Campaign, error)
	UpdateCampaign(ctx context.Context, id int64, upd CampaignUpdate) (*Campaign, error)

	GetContribution(ctx context.Context, id int64) (*Contribution, error)
	GetContributionsByUser(ctx context.Context, userID int64) ([]Contribution, error)
	GetContributionsByCampaign(ctx context.Context, campaignID int64) ([]Contribution, error)
	CreateContribution(ctx context.Context, in NewContribution) (*Contribution, error)
}
