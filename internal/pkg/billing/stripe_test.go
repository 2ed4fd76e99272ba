package billing

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseStripeSubscriptionPayload(t *testing.T) {
	raw := []byte(`{
		"id": "sub_123",
		"customer": "cus_456",
		"status": "trialing",
		"cancel_at_period_end": false,
		"trial_end": 1767139200,
		"metadata": { "user_id": "42" },
		"items": {
			"data": [
				{
					"price": { "id": "price_pro_month", "recurring": { "interval": "month" } },
					"current_period_start": 1764547200,
					"current_period_end": 1767139200
				}
			]
		}
	}`)

	var sub stripeSubscription
	if err := json.Unmarshal(raw, &sub); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if sub.ID != "sub_123" || sub.Customer != "cus_456" {
		t.Fatalf("unexpected ids: sub=%q customer=%q", sub.ID, sub.Customer)
	}
	if sub.Status != "trialing" {
		t.Fatalf("unexpected status %q", sub.Status)
	}
	if sub.Metadata["user_id"] != "42" {
		t.Fatalf("expected user_id metadata to survive decoding")
	}
	if len(sub.Items.Data) != 1 || sub.Items.Data[0].Price.ID != "price_pro_month" {
		t.Fatalf("unexpected items: %+v", sub.Items)
	}
	if sub.Items.Data[0].Price.Recurring.Interval != "month" {
		t.Fatalf("expected month interval, got %q", sub.Items.Data[0].Price.Recurring.Interval)
	}
}

func TestParseUserRef(t *testing.T) {
	tests := []struct {
		in   string
		want uint
	}{
		{in: "42", want: 42},
		{in: " 7 ", want: 7},
		{in: "", want: 0},
		{in: "abc", want: 0},
		{in: "-1", want: 0},
	}

	for _, tt := range tests {
		if got := parseUserRef(tt.in); got != tt.want {
			t.Fatalf("parseUserRef(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestUnixTime(t *testing.T) {
	if unixTime(0) != nil {
		t.Fatalf("expected zero timestamp to map to nil")
	}
	got := unixTime(1767139200)
	if got == nil || !got.Equal(time.Unix(1767139200, 0).UTC()) {
		t.Fatalf("unexpected timestamp %v", got)
	}
}
