package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/yajna-funds/server/internal/domain"
)

func seedCampaign(t *testing.T, s *Store, goal string) *domain.Campaign {
	t.Helper()
	owner, err := s.CreateUser(context.Background(), domain.NewUser{
		ExternalRef: fmt.Sprintf("ext-%d", s.nextUserID),
		Username:    "creator",
		Email:       "creator@example.com",
	})
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	c, err := s.CreateCampaign(context.Background(), domain.NewCampaign{
		UserID:      owner.ID,
		Title:       "Community well",
		Description: "Clean water for the village",
		FundingGoal: goal,
	})
	if err != nil {
		t.Fatalf("CreateCampaign() error: %v", err)
	}
	return c
}

func TestCreateCampaignForcesServerOwnedFields(t *testing.T) {
	s := New()
	c := seedCampaign(t, s, "5000000000000000000")

	if c.CurrentAmount != "0" {
		t.Errorf("CurrentAmount = %q, want \"0\"", c.CurrentAmount)
	}
	if c.Status != domain.CampaignStatusActive {
		t.Errorf("Status = %q, want active", c.Status)
	}
	if c.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestCreateContributionUpdatesLedger(t *testing.T) {
	s := New()
	c := seedCampaign(t, s, "5000000000000000000")

	ctx := context.Background()
	first, err := s.CreateContribution(ctx, domain.NewContribution{
		UserID:          c.UserID,
		CampaignID:      c.ID,
		Amount:          "1000000000000000000",
		TransactionHash: "0xabc",
	})
	if err != nil {
		t.Fatalf("CreateContribution() error: %v", err)
	}
	if _, err := s.CreateContribution(ctx, domain.NewContribution{
		UserID:     c.UserID,
		CampaignID: c.ID,
		Amount:     "500000000000000000",
	}); err != nil {
		t.Fatalf("CreateContribution() error: %v", err)
	}

	got, err := s.GetCampaign(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCampaign() error: %v", err)
	}
	if got.CurrentAmount != "1500000000000000000" {
		t.Errorf("CurrentAmount = %q, want 1500000000000000000", got.CurrentAmount)
	}

	if first.ID == 0 || first.CreatedAt.IsZero() {
		t.Errorf("contribution not fully populated: %+v", first)
	}
}

func TestCreateContributionUnknownCampaignRejected(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.CreateContribution(ctx, domain.NewContribution{
		UserID:     1,
		CampaignID: 99,
		Amount:     "100",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("CreateContribution() error = %v, want ErrNotFound", err)
	}
	// Nothing persisted.
	if _, err := s.GetContribution(ctx, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetContribution() after rejected create = %v, want ErrNotFound", err)
	}
}

func TestCreateContributionUnknownUserRejected(t *testing.T) {
	s := New()
	ctx := context.Background()
	c := seedCampaign(t, s, "1000")

	_, err := s.CreateContribution(ctx, domain.NewContribution{
		UserID:     9999,
		CampaignID: c.ID,
		Amount:     "100",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("CreateContribution() error = %v, want ErrNotFound", err)
	}
	got, err := s.GetCampaign(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCampaign() error: %v", err)
	}
	if got.CurrentAmount != "0" {
		t.Errorf("CurrentAmount after rejected create = %q, want \"0\"", got.CurrentAmount)
	}
}

func TestCreateCampaignUnknownUserRejected(t *testing.T) {
	s := New()

	_, err := s.CreateCampaign(context.Background(), domain.NewCampaign{
		UserID:      9999,
		Title:       "Ghost drive",
		Description: "No such owner",
		FundingGoal: "1000",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("CreateCampaign() error = %v, want ErrNotFound", err)
	}
}

func TestCreateCampaignInvalidFundingGoalRejected(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner, err := s.CreateUser(ctx, domain.NewUser{ExternalRef: "ext-goal"})
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	if _, err := s.CreateCampaign(ctx, domain.NewCampaign{
		UserID:      owner.ID,
		Title:       "Bad goal",
		Description: "Non-numeric target",
		FundingGoal: "lots",
	}); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("CreateCampaign() error = %v, want ErrInvalidAmount", err)
	}
}

func TestCreateContributionInvalidAmountRejected(t *testing.T) {
	s := New()
	c := seedCampaign(t, s, "1000")

	_, err := s.CreateContribution(context.Background(), domain.NewContribution{
		UserID:     c.UserID,
		CampaignID: c.ID,
		Amount:     "1.5",
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("CreateContribution() error = %v, want ErrInvalidAmount", err)
	}
}

func TestConcurrentContributionsDoNotLoseUpdates(t *testing.T) {
	s := New()
	c := seedCampaign(t, s, "0")

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := s.CreateContribution(context.Background(), domain.NewContribution{
				UserID:     c.UserID,
				CampaignID: c.ID,
				Amount:     "1000000000000000000",
			}); err != nil {
				t.Errorf("CreateContribution() error: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := s.GetCampaign(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("GetCampaign() error: %v", err)
	}
	want := "50000000000000000000"
	if got.CurrentAmount != want {
		t.Errorf("CurrentAmount = %q, want %q", got.CurrentAmount, want)
	}
}

func TestUpdateMissingRecordsReturnNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.UpdateUser(ctx, 42, domain.UserUpdate{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateUser() error = %v, want ErrNotFound", err)
	}
	if _, err := s.UpdateCampaign(ctx, 42, domain.CampaignUpdate{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateCampaign() error = %v, want ErrNotFound", err)
	}
}

func TestDuplicateExternalRefRejected(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, domain.NewUser{ExternalRef: "ext-1"}); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	if _, err := s.CreateUser(ctx, domain.NewUser{ExternalRef: "ext-1"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("CreateUser() duplicate error = %v, want ErrAlreadyExists", err)
	}
}

func TestListingsFilterByForeignKey(t *testing.T) {
	s := New()
	ctx := context.Background()
	c1 := seedCampaign(t, s, "100")
	c2 := seedCampaign(t, s, "200")

	for i := 0; i < 3; i++ {
		if _, err := s.CreateContribution(ctx, domain.NewContribution{UserID: c1.UserID, CampaignID: c1.ID, Amount: "10"}); err != nil {
			t.Fatalf("CreateContribution() error: %v", err)
		}
	}
	if _, err := s.CreateContribution(ctx, domain.NewContribution{UserID: c2.UserID, CampaignID: c2.ID, Amount: "10"}); err != nil {
		t.Fatalf("CreateContribution() error: %v", err)
	}

	byCampaign, err := s.GetContributionsByCampaign(ctx, c1.ID)
	if err != nil {
		t.Fatalf("GetContributionsByCampaign() error: %v", err)
	}
	if len(byCampaign) != 3 {
		t.Errorf("contributions for campaign %d = %d, want 3", c1.ID, len(byCampaign))
	}

	byUser, err := s.GetContributionsByUser(ctx, c2.UserID)
	if err != nil {
		t.Fatalf("GetContributionsByUser() error: %v", err)
	}
	if len(byUser) != 1 {
		t.Errorf("contributions for user %d = %d, want 1", c2.UserID, len(byUser))
	}

	campaigns, err := s.GetCampaignsByUser(ctx, c1.UserID)
	if err != nil {
		t.Fatalf("GetCampaignsByUser() error: %v", err)
	}
	if len(campaigns) != 1 || campaigns[0].ID != c1.ID {
		t.Errorf("campaigns for user %d = %+v, want just campaign %d", c1.UserID, campaigns, c1.ID)
	}
}
