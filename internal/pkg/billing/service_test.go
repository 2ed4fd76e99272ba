package billing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/ManuelReschke/LeadFox/app/models"
)

type fakeRepo struct {
	mappings      map[string]string // provider|ref|interval -> internal plan
	accounts      map[string]*models.BillingAccount
	subscriptions []models.BillingSubscription
	settings      map[uint]*models.UserSettings
	events        map[string]*models.BillingWebhookEvent
	nextID        uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		mappings: map[string]string{},
		accounts: map[string]*models.BillingAccount{},
		settings: map[uint]*models.UserSettings{},
		events:   map[string]*models.BillingWebhookEvent{},
	}
}

func (f *fakeRepo) addMapping(provider, ref, interval, plan string) {
	f.mappings[provider+"|"+ref+"|"+interval] = plan
}

func (f *fakeRepo) FindActivePlanMapping(provider, ref, interval string) (*models.BillingPlanMapping, error) {
	plan, ok := f.mappings[provider+"|"+ref+"|"+interval]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.BillingPlanMapping{Provider: provider, ProviderPlanRef: ref, BillingInterval: interval, InternalPlan: plan, IsActive: true}, nil
}

func (f *fakeRepo) UpsertBillingAccount(account *models.BillingAccount) error {
	key := account.Provider + "|" + account.ProviderAccountID
	if existing, ok := f.accounts[key]; ok {
		existing.UserID = account.UserID
		existing.Email = account.Email
		*account = *existing
		return nil
	}
	f.nextID++
	account.ID = f.nextID
	stored := *account
	f.accounts[key] = &stored
	return nil
}

func (f *fakeRepo) GetBillingAccountByProviderAccountID(provider, providerAccountID string) (*models.BillingAccount, error) {
	if account, ok := f.accounts[provider+"|"+providerAccountID]; ok {
		return account, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpsertSubscription(sub *models.BillingSubscription) error {
	for i := range f.subscriptions {
		existing := &f.subscriptions[i]
		if existing.Provider == sub.Provider && existing.ProviderSubscriptionID == sub.ProviderSubscriptionID {
			sub.ID = existing.ID
			*existing = *sub
			return nil
		}
	}
	f.nextID++
	sub.ID = f.nextID
	f.subscriptions = append(f.subscriptions, *sub)
	return nil
}

func (f *fakeRepo) ListSubscriptionsByUser(userID uint) ([]models.BillingSubscription, error) {
	var out []models.BillingSubscription
	for _, sub := range f.subscriptions {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetOrCreateUserSettings(userID uint) (*models.UserSettings, error) {
	if us, ok := f.settings[userID]; ok {
		return us, nil
	}
	f.nextID++
	us := &models.UserSettings{ID: f.nextID, UserID: userID, Plan: "free", SubscriptionStatus: "active"}
	f.settings[userID] = us
	return us, nil
}

func (f *fakeRepo) SaveUserSettings(us *models.UserSettings) error {
	f.settings[us.UserID] = us
	return nil
}

func (f *fakeRepo) CreateWebhookEventIfNotExists(event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error) {
	key := event.Provider + "|" + event.ProviderEventID
	if stored, ok := f.events[key]; ok {
		return false, stored, nil
	}
	f.nextID++
	event.ID = f.nextID
	stored := *event
	f.events[key] = &stored
	return true, &stored, nil
}

func (f *fakeRepo) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	for _, event := range f.events {
		if event.ID == id {
			event.ProcessedAt = &now
			event.ProcessingError = processingError
			return nil
		}
	}
	return fmt.Errorf("webhook event %d not found", id)
}

func TestSyncSubscriptionMapsPlanAndReconciles(t *testing.T) {
	repo := newFakeRepo()
	repo.addMapping("stripe", "price_pro_month", "month", "pro")
	svc := NewService(repo)

	trialEnd := time.Now().Add(14 * 24 * time.Hour).UTC()
	sub, plan, err := svc.SyncSubscription(context.Background(), NormalizedSubscription{
		UserID:                 42,
		Provider:               "stripe",
		ProviderSubscriptionID: "sub_123",
		ProviderPlanRef:        "price_pro_month",
		BillingInterval:        "month",
		Status:                 "trialing",
		TrialEndsAt:            &trialEnd,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.InternalPlan != "pro" {
		t.Fatalf("expected internal plan pro, got %q", sub.InternalPlan)
	}
	if plan != "pro" {
		t.Fatalf("expected effective plan pro, got %q", plan)
	}

	us := repo.settings[42]
	if us == nil || us.Plan != "pro" || us.SubscriptionStatus != "trialing" {
		t.Fatalf("unexpected settings after sync: %+v", us)
	}
	if us.TrialEndsAt == nil || !us.TrialEndsAt.Equal(trialEnd) {
		t.Fatalf("expected trial deadline to be synced, got %v", us.TrialEndsAt)
	}
}

func TestSyncSubscriptionUnmappedPlanFallsBackToFree(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	sub, plan, err := svc.SyncSubscription(context.Background(), NormalizedSubscription{
		UserID:                 7,
		Provider:               "stripe",
		ProviderSubscriptionID: "sub_999",
		ProviderPlanRef:        "price_unknown",
		Status:                 "active",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.InternalPlan != "free" || plan != "free" {
		t.Fatalf("expected free fallback, got internal=%q effective=%q", sub.InternalPlan, plan)
	}
}

func TestReconcileUserPlanPicksBestEntitlingSubscription(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	repo.subscriptions = []models.BillingSubscription{
		{ID: 1, UserID: 9, Provider: "stripe", ProviderSubscriptionID: "sub_a", InternalPlan: "enterprise", Status: "canceled"},
		{ID: 2, UserID: 9, Provider: "stripe", ProviderSubscriptionID: "sub_b", InternalPlan: "pro", Status: "active"},
	}

	plan, err := svc.ReconcileUserPlan(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan != "pro" {
		t.Fatalf("expected canceled enterprise to lose to active pro, got %q", plan)
	}
	if repo.settings[9].SubscriptionStatus != "active" {
		t.Fatalf("expected status from winning subscription, got %q", repo.settings[9].SubscriptionStatus)
	}
}

func TestReconcileUserPlanNoEntitlingSubscriptionsResetsToFree(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	ended := time.Now().Add(-time.Hour)
	repo.settings[3] = &models.UserSettings{ID: 1, UserID: 3, Plan: "enterprise", SubscriptionStatus: "trialing", TrialEndsAt: &ended}
	repo.subscriptions = []models.BillingSubscription{
		{ID: 2, UserID: 3, Provider: "stripe", ProviderSubscriptionID: "sub_c", InternalPlan: "enterprise", Status: "canceled"},
	}

	plan, err := svc.ReconcileUserPlan(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan != "free" {
		t.Fatalf("expected free, got %q", plan)
	}
	us := repo.settings[3]
	if us.Plan != "free" || us.SubscriptionStatus != "active" || us.TrialEndsAt != nil {
		t.Fatalf("expected clean free settings, got %+v", us)
	}
}

func TestRecordWebhookEventIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	in := WebhookEventInput{Provider: "stripe", ProviderEventID: "evt_1", EventType: "customer.subscription.updated", PayloadJSON: "{}", SignatureValid: true}
	created, first, err := svc.RecordWebhookEvent(context.Background(), in)
	if err != nil || !created {
		t.Fatalf("expected first insert to create, err=%v created=%v", err, created)
	}
	created, second, err := svc.RecordWebhookEvent(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatalf("expected duplicate event to be deduplicated")
	}
	if first.ID != second.ID {
		t.Fatalf("expected stored event to be returned on duplicate")
	}
}

func TestRecordWebhookEventHashesMissingEventID(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, event, err := svc.RecordWebhookEvent(context.Background(), WebhookEventInput{Provider: "stripe", PayloadJSON: `{"a":1}`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(event.ProviderEventID) == 0 || event.ProviderEventID[:5] != "hash:" {
		t.Fatalf("expected hashed event id, got %q", event.ProviderEventID)
	}
}
