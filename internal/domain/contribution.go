package domain

import "time"

// Contribution is an immutable record of a single pledge toward a campaign.
// TransactionHash is recorded verbatim from the wallet provider and never
// verified server-side.
type Contribution struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	CampaignID      int64     `json:"campaignId"`
	Amount          string    `json:"amount"`
	TransactionHash string    `json:"transactionHash"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewContribution carries the client-suppliable fields for contribution
// creation.
type NewContribution struct {
	UserID          int64  `json:"userId"`
	CampaignID      int64  `json:"campaignId"`
	Amount          string `json:"amount"`
	TransactionHash string `json:"transactionHash"`
}
