// Package memstore provides the ephemeral, process-lifetime implementation
// of domain.Store. It backs development and tests; nothing survives a
// restart.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yajna-funds/server/internal/domain"
)

// Store keeps every entity in a map keyed by an auto-incrementing int64 id.
// A single mutex guards all state, which also makes the contribution ledger
// update atomic: two concurrent contributions to one campaign can never lose
// an update.
type Store struct {
	mu sync.Mutex

	users         map[int64]domain.User
	campaigns     map[int64]domain.Campaign
	contributions map[int64]domain.Contribution

	nextUserID         int64
	nextCampaignID     int64
	nextContributionID int64

	now func() time.Time
}

func New() *Store {
	return &Store{
		users:              make(map[int64]domain.User),
		campaigns:          make(map[int64]domain.Campaign),
		contributions:      make(map[int64]domain.Contribution),
		nextUserID:         1,
		nextCampaignID:     1,
		nextContributionID: 1,
		now:                time.Now,
	}
}

var _ domain.Store = (*Store)(nil)

func (s *Store) GetUser(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByExternalRef(_ context.Context, ref string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ExternalRef == ref {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) CreateUser(_ context.Context, in domain.NewUser) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.ExternalRef == in.ExternalRef {
			return nil, fmt.Errorf("user with external ref %q: %w", in.ExternalRef, domain.ErrAlreadyExists)
		}
	}
	u := domain.User{
		ID:            s.nextUserID,
		ExternalRef:   in.ExternalRef,
		Username:      in.Username,
		Email:         in.Email,
		ProfilePic:    in.ProfilePic,
		WalletAddress: in.WalletAddress,
		CreatedAt:     s.now(),
	}
	s.nextUserID++
	s.users[u.ID] = u
	return &u, nil
}

func (s *Store) UpdateUser(_ context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.ProfilePic != nil {
		u.ProfilePic = *upd.ProfilePic
	}
	if upd.WalletAddress != nil {
		u.WalletAddress = *upd.WalletAddress
	}
	s.users[id] = u
	return &u, nil
}

func (s *Store) GetCampaign(_ context.Context, id int64) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.Metadata = copyMetadata(c.Metadata)
	return &c, nil
}

func (s *Store) GetCampaigns(_ context.Context) ([]domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Campaign, 0, len(s.campaigns))
	for id := int64(1); id < s.nextCampaignID; id++ {
		if c, ok := s.campaigns[id]; ok {
			c.Metadata = copyMetadata(c.Metadata)
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) GetCampaignsByUser(_ context.Context, userID int64) ([]domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Campaign, 0)
	for id := int64(1); id < s.nextCampaignID; id++ {
		if c, ok := s.campaigns[id]; ok && c.UserID == userID {
			c.Metadata = copyMetadata(c.Metadata)
			out = append(out, c)
		}
	}
	return out, nil
}

// CreateCampaign inserts a campaign. CurrentAmount, Status and CreatedAt are
// always server-assigned so a client can never forge a pre-funded or
// completed campaign. An unknown owner is rejected, matching the foreign key
// the relational backend enforces.
func (s *Store) CreateCampaign(_ context.Context, in domain.NewCampaign) (*domain.Campaign, error) {
	if _, err := domain.ParseAmount(in.FundingGoal); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[in.UserID]; !ok {
		return nil, fmt.Errorf("user %d: %w", in.UserID, domain.ErrNotFound)
	}
	c := domain.Campaign{
		ID:            s.nextCampaignID,
		UserID:        in.UserID,
		Title:         in.Title,
		Description:   in.Description,
		FundingGoal:   in.FundingGoal,
		CurrentAmount: "0",
		Image:         in.Image,
		Status:        domain.CampaignStatusActive,
		CreatedAt:     s.now(),
		Metadata:      copyMetadata(in.Metadata),
	}
	if c.Metadata == nil {
		c.Metadata = map[string]any{}
	}
	s.nextCampaignID++
	s.campaigns[c.ID] = c
	c.Metadata = copyMetadata(c.Metadata)
	return &c, nil
}

func (s *Store) UpdateCampaign(_ context.Context, id int64, upd domain.CampaignUpdate) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	if upd.Image != nil {
		c.Image = *upd.Image
	}
	if upd.Status != nil {
		c.Status = *upd.Status
	}
	if upd.Metadata != nil {
		c.Metadata = copyMetadata(upd.Metadata)
	}
	s.campaigns[id] = c
	c.Metadata = copyMetadata(c.Metadata)
	return &c, nil
}

func (s *Store) GetContribution(_ context.Context, id int64) (*domain.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contributions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (s *Store) GetContributionsByUser(_ context.Context, userID int64) ([]domain.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Contribution, 0)
	for id := int64(1); id < s.nextContributionID; id++ {
		if c, ok := s.contributions[id]; ok && c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) GetContributionsByCampaign(_ context.Context, campaignID int64) ([]domain.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Contribution, 0)
	for id := int64(1); id < s.nextContributionID; id++ {
		if c, ok := s.contributions[id]; ok && c.CampaignID == campaignID {
			out = append(out, c)
		}
	}
	return out, nil
}

// CreateContribution records the contribution and adds its amount to the
// referenced campaign's running total. Both happen under one lock, so the
// ledger can never observe a partial write. An unknown campaign or user id
// rejects the whole operation; nothing is inserted.
func (s *Store) CreateContribution(_ context.Context, in domain.NewContribution) (*domain.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, ok := s.campaigns[in.CampaignID]
	if !ok {
		return nil, fmt.Errorf("campaign %d: %w", in.CampaignID, domain.ErrNotFound)
	}
	if _, ok := s.users[in.UserID]; !ok {
		return nil, fmt.Errorf("user %d: %w", in.UserID, domain.ErrNotFound)
	}
	total, err := domain.AddAmounts(campaign.CurrentAmount, in.Amount)
	if err != nil {
		return nil, err
	}

	c := domain.Contribution{
		ID:              s.nextContributionID,
		UserID:          in.UserID,
		CampaignID:      in.CampaignID,
		Amount:          in.Amount,
		TransactionHash: in.TransactionHash,
		CreatedAt:       s.now(),
	}
	s.nextContributionID++
	s.contributions[c.ID] = c

	campaign.CurrentAmount = total
	s.campaigns[campaign.ID] = campaign

	return &c, nil
}

func copyMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
