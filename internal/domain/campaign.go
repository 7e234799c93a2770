package domain

import "time"

// CampaignStatus enumerates campaign lifecycle states.
type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// Campaign is a fundraising goal owned by a user. FundingGoal and
// CurrentAmount are decimal strings of minor units (see Amount).
// CurrentAmount is monotonically non-decreasing and only ever moves through
// contribution creation.
type Campaign struct {
	ID            int64          `json:"id"`
	UserID        int64          `json:"userId"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	FundingGoal   string         `json:"fundingGoal"`
	CurrentAmount string         `json:"currentAmount"`
	Image         string         `json:"image"`
	Status        CampaignStatus `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	Metadata      map[string]any `json:"metadata"`
}

// NewCampaign carries the client-suppliable fields for campaign creation.
// CurrentAmount, Status and CreatedAt are server-owned and absent here on
// purpose: a create always starts at "0"/active no matter what the client
// sends.
type NewCampaign struct {
	UserID      int64          `json:"userId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	FundingGoal string         `json:"fundingGoal"`
	Image       string         `json:"image"`
	Metadata    map[string]any `json:"metadata"`
}

// CampaignUpdate is a partial update; nil fields are left untouched.
// CurrentAmount is deliberately not updatable through this path.
type CampaignUpdate struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Image       *string         `json:"image"`
	Status      *CampaignStatus `json:"status"`
	Metadata    map[string]any  `json:"metadata"`
}
