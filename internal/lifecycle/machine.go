// Package lifecycle holds the transaction state machine as pure functions.
// Nothing here performs I/O; callers send the resulting Request to the backend.
package lifecycle

import (
	"github.com/GregMSThompson/sharefair-gateway/internal/errs"
	"github.com/GregMSThompson/sharefair-gateway/internal/models"
)

type edge struct {
	from   models.TransactionStatus
	to     models.TransactionStatus
	actors []models.Role
}

var edges = []edge{
	{from: models.StatusPending, to: models.StatusActive, actors: []models.Role{models.RoleOwner}},
	{from: models.StatusPending, to: models.StatusCancelled, actors: []models.Role{models.RoleOwner, models.RoleBorrower}},
	{from: models.StatusActive, to: models.StatusCompleted, actors: []models.Role{models.RoleOwner}},
	{from: models.StatusActive, to: models.StatusDisputed, actors: []models.Role{models.RoleOwner, models.RoleBorrower}},
	{from: models.StatusActive, to: models.StatusCancelled, actors: []models.Role{models.RoleOwner, models.RoleBorrower}},
}

// Request is an approved transition, ready to be sent to the backend.
type Request struct {
	TransactionID string
	From          models.TransactionStatus
	To            models.TransactionStatus
	Role          models.Role
}

// RoleOf derives the actor's role by comparing ids with the record.
func RoleOf(tx models.Transaction, actorID string) models.Role {
	switch {
	case actorID == "":
		return models.RoleNone
	case actorID == tx.OwnerID:
		return models.RoleOwner
	case actorID == tx.BorrowerID:
		return models.RoleBorrower
	default:
		return models.RoleNone
	}
}

func findEdge(from, to models.TransactionStatus) (edge, bool) {
	for _, e := range edges {
		if e.from == from && e.to == to {
			return e, true
		}
	}
	return edge{}, false
}

func (e edge) allows(role models.Role) bool {
	for _, r := range e.actors {
		if r == role {
			return true
		}
	}
	return false
}

// Evaluate decides whether role may move tx to target.
// It returns an *errs.UnauthorizedTransitionError for edges outside the table or roles
// outside the edge's actor set, and an *errs.PaymentRequiredError when a paid
// transaction would be accepted before its payment settled.
func Evaluate(tx models.Transaction, role models.Role, target models.TransactionStatus) (Request, error) {
	e, ok := findEdge(tx.Status, target)
	if !ok {
		return Request{}, errs.NewInvalidTransitionError(string(tx.Status), string(target))
	}
	if !e.allows(role) {
		return Request{}, errs.NewUnauthorizedTransitionError(string(tx.Status), string(target), string(role))
	}
	if target == models.StatusActive && !tx.PaymentSettled() {
		return Request{}, errs.NewPaymentRequiredError(tx.ID)
	}

	return Request{
		TransactionID: tx.ID,
		From:          tx.Status,
		To:            target,
		Role:          role,
	}, nil
}

// Permitted lists every status role may currently request for tx, in table order.
func Permitted(tx models.Transaction, role models.Role) []models.TransactionStatus {
	out := make([]models.TransactionStatus, 0, 3)
	for _, e := range edges {
		if e.from != tx.Status {
			continue
		}
		if _, err := Evaluate(tx, role, e.to); err == nil {
			out = append(out, e.to)
		}
	}
	return out
}

// CanPay reports whether the borrower should be offered the payment flow.
func CanPay(tx models.Transaction, role models.Role) bool {
	return role == models.RoleBorrower &&
		!tx.IsFree &&
		tx.Status == models.StatusPending &&
		!tx.PaymentStatus.Settled()
}

// CanFileDispute reports whether a participant may open a dispute.
func CanFileDispute(tx models.Transaction, role models.Role) bool {
	return role != models.RoleNone && tx.Status == models.StatusActive
}

// CanReview reports whether the review form may be offered, given whether the
// actor already has a review for tx.
func CanReview(tx models.Transaction, role models.Role, reviewed bool) bool {
	return role != models.RoleNone && tx.Status == models.StatusCompleted && !reviewed
}
