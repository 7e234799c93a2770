package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yajna-funds/server/internal/domain"
)

func (a *App) UsersGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		a.error(w, http.StatusNotFound, "User not found")
		return
	}
	user, err := a.Store.GetUser(r.Context(), id)
	if err != nil {
		a.storeError(w, r, err, "User not found")
		return
	}
	a.json(w, http.StatusOK, user)
}

func (a *App) UsersGetByExternalRef(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	user, err := a.Store.GetUserByExternalRef(r.Context(), ref)
	if err != nil {
		a.storeError(w, r, err, "User not found")
		return
	}
	a.json(w, http.StatusOK, user)
}

type createUserRequest struct {
	ExternalRef   *string `json:"externalRef"`
	Username      *string `json:"username"`
	Email         *string `json:"email"`
	ProfilePic    *string `json:"profilePic"`
	WalletAddress *string `json:"walletAddress"`
}

func (req *createUserRequest) validate() []FieldError {
	var errs []FieldError
	if req.ExternalRef == nil || *req.ExternalRef == "" {
		errs = append(errs, FieldError{Field: "externalRef", Message: "externalRef is required"})
	}
	if req.Username == nil || *req.Username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "username is required"})
	}
	if req.Email == nil || *req.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	}
	return errs
}

func (a *App) UsersCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		a.validationError(w, "Invalid user data", errs)
		return
	}

	in := domain.NewUser{
		ExternalRef: *req.ExternalRef,
		Username:    *req.Username,
		Email:       *req.Email,
	}
	if req.ProfilePic != nil {
		in.ProfilePic = *req.ProfilePic
	}
	if req.WalletAddress != nil {
		in.WalletAddress = *req.WalletAddress
	}

	user, err := a.Store.CreateUser(r.Context(), in)
	if err != nil {
		a.storeError(w, r, err, "User not found")
		return
	}
	a.json(w, http.StatusCreated, user)
}

func (a *App) UsersUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		a.error(w, http.StatusNotFound, "User not found")
		return
	}
	var upd domain.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	user, err := a.Store.UpdateUser(r.Context(), id, upd)
	if err != nil {
		a.storeError(w, r, err, "User not found")
		return
	}
	a.json(w, http.StatusOK, user)
}

func (a *App) UserContributionsList(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r, "id")
	contributions, err := a.Store.GetContributionsByUser(r.Context(), id)
	if err != nil {
		a.storeError(w, r, err, "User not found")
		return
	}
	a.json(w, http.StatusOK, contributions)
}

func (a *App) UserCampaignsList(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r, "id")
	campaigns, err := a.Store.GetCampaignsByUser(r.Context(), id)
	if err != nil {
		a.storeError(w, r, err, "User not found")
		return
	}
	a.json(w, http.StatusOK, campaigns)
}
