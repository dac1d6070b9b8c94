package orders

import (
	"fmt"

	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/roles"
)

type transitionKey struct {
	from models.OrderStatus
	to   models.OrderStatus
}

// legalTransitions is the authoritative edge table of the order lifecycle.
// Every edge carries the set of roles allowed to traverse it; an edge absent
// from the table is illegal for everyone, which also makes completed and
// cancelled terminal.
var legalTransitions = map[transitionKey][]roles.Role{
	{models.OrderStatusDraft, models.OrderStatusPendingApproval}:           {roles.Admin, roles.Manager, roles.Staff},
	{models.OrderStatusDraft, models.OrderStatusCancelled}:                 {roles.Admin, roles.Manager},
	{models.OrderStatusPendingApproval, models.OrderStatusApproved}:        {roles.Admin, roles.Manager},
	{models.OrderStatusPendingApproval, models.OrderStatusRejected}:        {roles.Admin, roles.Manager},
	{models.OrderStatusPendingApproval, models.OrderStatusDraft}:           {roles.Admin, roles.Manager, roles.Staff},
	{models.OrderStatusApproved, models.OrderStatusCompleted}:              {roles.Admin, roles.Manager, roles.Staff},
	{models.OrderStatusApproved, models.OrderStatusRejected}:               {roles.Admin, roles.Manager},
	{models.OrderStatusRejected, models.OrderStatusDraft}:                  {roles.Admin, roles.Manager},
}

// validateTransition checks the edge first, then the caller's role, so an
// illegal edge is always reported as such regardless of who asks.
func validateTransition(from, to models.OrderStatus, role roles.Role) error {
	allowed, ok := legalTransitions[transitionKey{from: from, to: to}]
	if !ok {
		return &custom_error.InvalidTransitionError{From: string(from), To: string(to)}
	}

	for _, r := range allowed {
		if r == role {
			return nil
		}
	}

	return custom_error.NewForbiddenError(
		fmt.Sprintf("role '%s' is not allowed to move an order from '%s' to '%s'", role, from, to),
	)
}
