// Package entitlement decides whether a user may download a generated asset
// and describes how the balance changes when they do.
package entitlement

import (
	"fmt"
	"strings"
	"time"

	"igpt/internal/domain"
)

// Subscription is the billing plan attached to an entitlement.
type Subscription string

const (
	SubscriptionFree      Subscription = "free"
	SubscriptionCredits   Subscription = "credits"
	SubscriptionUnlimited Subscription = "unlimited"
)

// ParseSubscription accepts a plan name case-insensitively.
func ParseSubscription(s string) (Subscription, error) {
	switch plan := Subscription(strings.ToLower(strings.TrimSpace(s))); plan {
	case SubscriptionFree, SubscriptionCredits, SubscriptionUnlimited:
		return plan, nil
	}
	return "", fmt.Errorf("plan %q: %w", s, domain.ErrUnsupportedPlan)
}

// Entitlement is a user's download allowance. Version increments on every
// persisted change and guards concurrent updates.
type Entitlement struct {
	UserID       string       `json:"user_id"`
	FreeCredits  int          `json:"free_credits"`
	PaidCredits  int          `json:"paid_credits"`
	Subscription Subscription `json:"subscription"`
	Version      int64        `json:"version"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Unlimited reports whether the entitlement is on the absorbing unlimited plan.
func (e Entitlement) Unlimited() bool {
	return e.Subscription == SubscriptionUnlimited
}

// Balance is the number of remaining credits, ignoring the subscription.
func (e Entitlement) Balance() int {
	return e.FreeCredits + e.PaidCredits
}

// CanConsume reports whether one download may proceed.
func CanConsume(e Entitlement) bool {
	return e.Unlimited() || e.Balance() > 0
}

// Consume draws one credit, free credits first. Unlimited entitlements are
// returned unchanged. Callers must check CanConsume first.
func Consume(e Entitlement) (Entitlement, error) {
	if e.Unlimited() {
		return e, nil
	}
	switch {
	case e.FreeCredits > 0:
		e.FreeCredits--
	case e.PaidCredits > 0:
		e.PaidCredits--
	default:
		return e, fmt.Errorf("user %s: %w", e.UserID, domain.ErrInsufficientCredits)
	}
	return e, nil
}

// Grant adds purchased credits. A free plan becomes a credits plan.
func Grant(e Entitlement, paid int) (Entitlement, error) {
	if paid <= 0 {
		return e, fmt.Errorf("grant %d credits: %w", paid, domain.ErrInvalidRequest)
	}
	e.PaidCredits += paid
	if e.Subscription == SubscriptionFree || e.Subscription == "" {
		e.Subscription = SubscriptionCredits
	}
	return e, nil
}

// Subscribe switches the plan. Credit balances are kept so that leaving the
// unlimited plan restores what the user had.
func Subscribe(e Entitlement, plan Subscription) (Entitlement, error) {
	if _, err := ParseSubscription(string(plan)); err != nil {
		return e, err
	}
	e.Subscription = plan
	return e, nil
}
