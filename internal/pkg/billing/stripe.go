package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"gorm.io/gorm"
)

// ProviderStripe is the provider key used in billing tables for Stripe.
const ProviderStripe = "stripe"

// ErrUnlinkedBillingAccount is returned when a subscription event cannot be
// attributed to a local user.
var ErrUnlinkedBillingAccount = errors.New("billing account is not linked to a user")

// VerifyStripeWebhook validates the Stripe-Signature header against the raw
// payload and returns the decoded event.
func VerifyStripeWebhook(payload []byte, sigHeader, secret string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, secret)
}

// stripeSubscription is the slice of the subscription payload this service
// consumes. Decoded from event.Data.Raw rather than the SDK struct so API
// version drift in unrelated fields cannot break webhook handling.
type stripeSubscription struct {
	ID                 string            `json:"id"`
	Customer           string            `json:"customer"`
	Status             string            `json:"status"`
	CancelAtPeriodEnd  bool              `json:"cancel_at_period_end"`
	TrialEnd           int64             `json:"trial_end"`
	CurrentPeriodStart int64             `json:"current_period_start"`
	CurrentPeriodEnd   int64             `json:"current_period_end"`
	Metadata           map[string]string `json:"metadata"`
	Items              struct {
		Data []struct {
			Price struct {
				ID        string `json:"id"`
				Recurring struct {
					Interval string `json:"interval"`
				} `json:"recurring"`
			} `json:"price"`
			CurrentPeriodStart int64 `json:"current_period_start"`
			CurrentPeriodEnd   int64 `json:"current_period_end"`
		} `json:"data"`
	} `json:"items"`
}

type stripeCheckoutSession struct {
	Customer          string            `json:"customer"`
	ClientReferenceID string            `json:"client_reference_id"`
	Metadata          map[string]string `json:"metadata"`
	CustomerDetails   struct {
		Email string `json:"email"`
	} `json:"customer_details"`
}

// HandleStripeEvent routes a verified Stripe event into the billing tables.
// Unknown event types are ignored so Stripe does not retry them forever.
func (s *Service) HandleStripeEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event.Data.Raw)
	case "customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted":
		return s.handleSubscriptionEvent(ctx, event.Data.Raw)
	default:
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(ctx context.Context, raw []byte) error {
	var sess stripeCheckoutSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return fmt.Errorf("decode checkout session: %w", err)
	}

	userID := parseUserRef(sess.ClientReferenceID)
	if userID == 0 {
		userID = parseUserRef(sess.Metadata["user_id"])
	}
	if userID == 0 || sess.Customer == "" {
		return errors.New("checkout session is missing customer or user reference")
	}

	_, err := s.UpsertBillingAccount(ctx, userID, ProviderStripe, sess.Customer, sess.CustomerDetails.Email)
	return err
}

func (s *Service) handleSubscriptionEvent(ctx context.Context, raw []byte) error {
	var sub stripeSubscription
	if err := json.Unmarshal(raw, &sub); err != nil {
		return fmt.Errorf("decode subscription: %w", err)
	}
	if sub.ID == "" {
		return errors.New("subscription payload is missing an id")
	}

	userID, err := s.resolveStripeUser(ctx, sub)
	if err != nil {
		return err
	}

	refs := make([]string, 0, len(sub.Items.Data))
	interval := ""
	periodStart := sub.CurrentPeriodStart
	periodEnd := sub.CurrentPeriodEnd
	for _, item := range sub.Items.Data {
		if item.Price.ID != "" {
			refs = append(refs, item.Price.ID)
		}
		if interval == "" {
			interval = item.Price.Recurring.Interval
		}
		if periodStart == 0 {
			periodStart = item.CurrentPeriodStart
		}
		if periodEnd == 0 {
			periodEnd = item.CurrentPeriodEnd
		}
	}

	planRef, _, err := s.ResolveBestMappedPlan(ctx, ProviderStripe, refs, interval)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	_, _, err = s.SyncSubscription(ctx, NormalizedSubscription{
		UserID:                 userID,
		Provider:               ProviderStripe,
		ProviderSubscriptionID: sub.ID,
		ProviderPlanRef:        planRef,
		BillingInterval:        interval,
		Status:                 sub.Status,
		TrialEndsAt:            unixTime(sub.TrialEnd),
		CurrentPeriodStart:     unixTime(periodStart),
		CurrentPeriodEnd:       unixTime(periodEnd),
		CancelAtPeriodEnd:      sub.CancelAtPeriodEnd,
		RawPayloadJSON:         string(raw),
	})
	return err
}

// resolveStripeUser attributes a subscription to a local user, preferring the
// user_id metadata set at checkout and falling back to the customer linkage.
func (s *Service) resolveStripeUser(ctx context.Context, sub stripeSubscription) (uint, error) {
	if id := parseUserRef(sub.Metadata["user_id"]); id != 0 {
		return id, nil
	}
	if sub.Customer == "" {
		return 0, ErrUnlinkedBillingAccount
	}
	account, err := s.GetBillingAccountByProviderAccountID(ctx, ProviderStripe, sub.Customer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUnlinkedBillingAccount
		}
		return 0, err
	}
	return account.UserID, nil
}

func parseUserRef(raw string) uint {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

func unixTime(v int64) *time.Time {
	if v <= 0 {
		return nil
	}
	t := time.Unix(v, 0).UTC()
	return &t
}
