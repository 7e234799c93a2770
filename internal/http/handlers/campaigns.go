package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yajna-funds/server/internal/domain"
)

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	campaigns, err := a.Store.GetCampaigns(r.Context())
	if err != nil {
		a.storeError(w, r, err, "campaign not found")
		return
	}
	a.json(w, http.StatusOK, campaigns)
}

func (a *App) CampaignsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		a.error(w, http.StatusNotFound, "Campaign not found")
		return
	}
	campaign, err := a.Store.GetCampaign(r.Context(), id)
	if err != nil {
		a.storeError(w, r, err, "Campaign not found")
		return
	}
	a.json(w, http.StatusOK, campaign)
}

// createCampaignRequest is the allow-list of client-suppliable fields.
// currentAmount, status and createdAt are absent on purpose: whatever the
// client sends for them never reaches the insert.
type createCampaignRequest struct {
	UserID      *int64         `json:"userId"`
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	FundingGoal *string        `json:"fundingGoal"`
	Image       *string        `json:"image"`
	Metadata    map[string]any `json:"metadata"`
}

func (req *createCampaignRequest) validate() []FieldError {
	var errs []FieldError
	if req.UserID == nil || *req.UserID <= 0 {
		errs = append(errs, FieldError{Field: "userId", Message: "userId is required"})
	}
	if req.Title == nil || *req.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	}
	if req.Description == nil || *req.Description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "description is required"})
	}
	if req.FundingGoal == nil {
		errs = append(errs, FieldError{Field: "fundingGoal", Message: "fundingGoal is required"})
	} else if _, err := domain.ParseAmount(*req.FundingGoal); err != nil {
		errs = append(errs, FieldError{Field: "fundingGoal", Message: "fundingGoal must be a non-negative integer string"})
	}
	return errs
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		a.validationError(w, "Invalid campaign data", errs)
		return
	}

	in := domain.NewCampaign{
		UserID:      *req.UserID,
		Title:       *req.Title,
		Description: *req.Description,
		FundingGoal: *req.FundingGoal,
		Metadata:    req.Metadata,
	}
	if req.Image != nil {
		in.Image = *req.Image
	}

	campaign, err := a.Store.CreateCampaign(r.Context(), in)
	if err != nil {
		a.storeError(w, r, err, "User not found")
		return
	}
	a.json(w, http.StatusCreated, campaign)
}

func (a *App) CampaignContributionsList(w http.ResponseWriter, r *http.Request) {
	// An unparsable id behaves like an id with no contributions.
	id, _ := pathID(r, "id")
	contributions, err := a.Store.GetContributionsByCampaign(r.Context(), id)
	if err != nil {
		a.storeError(w, r, err, "Campaign not found")
		return
	}
	a.json(w, http.StatusOK, contributions)
}
