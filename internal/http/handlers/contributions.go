package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/yajna-funds/server/internal/domain"
	"github.com/yajna-funds/server/internal/middleware"
)

type createContributionRequest struct {
	UserID          *int64  `json:"userId"`
	CampaignID      *int64  `json:"campaignId"`
	Amount          *string `json:"amount"`
	TransactionHash *string `json:"transactionHash"`
}

func (req *createContributionRequest) validate() []FieldError {
	var errs []FieldError
	if req.UserID == nil || *req.UserID <= 0 {
		errs = append(errs, FieldError{Field: "userId", Message: "userId is required"})
	}
	if req.CampaignID == nil || *req.CampaignID <= 0 {
		errs = append(errs, FieldError{Field: "campaignId", Message: "campaignId is required"})
	}
	if req.Amount == nil {
		errs = append(errs, FieldError{Field: "amount", Message: "amount is required"})
	} else if _, err := domain.ParseAmount(*req.Amount); err != nil {
		errs = append(errs, FieldError{Field: "amount", Message: "amount must be a non-negative integer string"})
	}
	return errs
}

// ContributionsCreate records a contribution and applies the campaign ledger
// update. A contribution naming a campaign or user that does not exist is
// rejected with 404; the transaction hash is stored verbatim and never
// verified against the chain.
func (a *App) ContributionsCreate(w http.ResponseWriter, r *http.Request) {
	var req createContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		a.validationError(w, "Invalid contribution data", errs)
		return
	}

	in := domain.NewContribution{
		UserID:     *req.UserID,
		CampaignID: *req.CampaignID,
		Amount:     *req.Amount,
	}
	if req.TransactionHash != nil {
		in.TransactionHash = *req.TransactionHash
	}

	contribution, err := a.Store.CreateContribution(r.Context(), in)
	if err != nil {
		a.storeError(w, r, err, "Campaign or user not found")
		return
	}

	if country := middleware.CountryFromContext(r.Context()); country != "" {
		a.Logger.Info().
			Int64("campaign_id", contribution.CampaignID).
			Int64("contribution_id", contribution.ID).
			Str("country", country).
			Msg("contribution recorded")
	}

	a.json(w, http.StatusCreated, contribution)
}
