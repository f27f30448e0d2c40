package services

import (
	"fmt"

	"shopora-backend/models"
)

// ActorSystem marks transitions driven by the platform itself: the Stripe
// webhook marking orders paid, and the expiry job cancelling stale ones.
const ActorSystem = "system"

// transition is one allowed state change and who may perform it.
type transition struct {
	From  string
	To    string
	Actor string
}

var validTransitions = []transition{
	// The webhook marks a pending order paid.
	{From: models.OrderStatusPending, To: models.OrderStatusPaid, Actor: ActorSystem},
	// A pending order can be abandoned by the buyer, an admin, or the expiry job.
	{From: models.OrderStatusPending, To: models.OrderStatusCancelled, Actor: models.RoleCustomer},
	{From: models.OrderStatusPending, To: models.OrderStatusCancelled, Actor: models.RoleAdmin},
	{From: models.OrderStatusPending, To: models.OrderStatusCancelled, Actor: ActorSystem},
	// Fulfilment moves through the product owner.
	{From: models.OrderStatusPaid, To: models.OrderStatusProcessing, Actor: models.RoleSeller},
	{From: models.OrderStatusPaid, To: models.OrderStatusProcessing, Actor: models.RoleVendor},
	{From: models.OrderStatusPaid, To: models.OrderStatusProcessing, Actor: models.RoleAdmin},
	{From: models.OrderStatusProcessing, To: models.OrderStatusShipped, Actor: models.RoleSeller},
	{From: models.OrderStatusProcessing, To: models.OrderStatusShipped, Actor: models.RoleVendor},
	{From: models.OrderStatusProcessing, To: models.OrderStatusShipped, Actor: models.RoleAdmin},
	// The buyer (or an admin) confirms receipt.
	{From: models.OrderStatusShipped, To: models.OrderStatusDelivered, Actor: models.RoleCustomer},
	{From: models.OrderStatusShipped, To: models.OrderStatusDelivered, Actor: models.RoleAdmin},
	// Only an admin may cancel after payment.
	{From: models.OrderStatusPaid, To: models.OrderStatusCancelled, Actor: models.RoleAdmin},
}

type transitionKey struct {
	From  string
	To    string
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool, len(validTransitions))
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// CanTransition checks whether actor may move an order from one status to
// another.
func CanTransition(from, to, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("invalid transition: %s to %s is not allowed for %s (valid next states: %s)",
		from, to, actor, describeValidFrom(from))
}

// ValidTransitionsFrom returns the reachable next states from a status,
// regardless of actor.
func ValidTransitionsFrom(status string) []string {
	var nexts []string
	seen := map[string]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

func describeValidFrom(status string) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	out := ""
	for i, s := range nexts {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
