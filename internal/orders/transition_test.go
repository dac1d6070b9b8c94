package orders

import (
	"testing"

	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/roles"

	"github.com/stretchr/testify/assert"
)

func TestValidateTransitionLegalEdges(t *testing.T) {
	tests := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
		role roles.Role
	}{
		{"staff submits draft", models.OrderStatusDraft, models.OrderStatusPendingApproval, roles.Staff},
		{"manager cancels draft", models.OrderStatusDraft, models.OrderStatusCancelled, roles.Manager},
		{"admin cancels draft", models.OrderStatusDraft, models.OrderStatusCancelled, roles.Admin},
		{"manager approves", models.OrderStatusPendingApproval, models.OrderStatusApproved, roles.Manager},
		{"admin rejects pending", models.OrderStatusPendingApproval, models.OrderStatusRejected, roles.Admin},
		{"staff withdraws to draft", models.OrderStatusPendingApproval, models.OrderStatusDraft, roles.Staff},
		{"staff completes approved", models.OrderStatusApproved, models.OrderStatusCompleted, roles.Staff},
		{"manager rejects approved", models.OrderStatusApproved, models.OrderStatusRejected, roles.Manager},
		{"manager reopens rejected", models.OrderStatusRejected, models.OrderStatusDraft, roles.Manager},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, validateTransition(tt.from, tt.to, tt.role))
		})
	}
}

func TestValidateTransitionIllegalEdges(t *testing.T) {
	tests := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
	}{
		{"draft cannot complete", models.OrderStatusDraft, models.OrderStatusCompleted},
		{"draft cannot approve itself", models.OrderStatusDraft, models.OrderStatusApproved},
		{"pending cannot complete", models.OrderStatusPendingApproval, models.OrderStatusCompleted},
		{"completed is terminal", models.OrderStatusCompleted, models.OrderStatusDraft},
		{"completed cannot complete again", models.OrderStatusCompleted, models.OrderStatusCompleted},
		{"cancelled is terminal", models.OrderStatusCancelled, models.OrderStatusDraft},
		{"rejected cannot approve", models.OrderStatusRejected, models.OrderStatusApproved},
		{"no self loop", models.OrderStatusDraft, models.OrderStatusDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTransition(tt.from, tt.to, roles.Admin)

			var transitionErr *custom_error.InvalidTransitionError
			assert.ErrorAs(t, err, &transitionErr)
		})
	}
}

func TestValidateTransitionRoleGates(t *testing.T) {
	tests := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
		role roles.Role
	}{
		{"staff cannot approve", models.OrderStatusPendingApproval, models.OrderStatusApproved, roles.Staff},
		{"staff cannot reject pending", models.OrderStatusPendingApproval, models.OrderStatusRejected, roles.Staff},
		{"staff cannot cancel draft", models.OrderStatusDraft, models.OrderStatusCancelled, roles.Staff},
		{"staff cannot reject approved", models.OrderStatusApproved, models.OrderStatusRejected, roles.Staff},
		{"staff cannot reopen rejected", models.OrderStatusRejected, models.OrderStatusDraft, roles.Staff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTransition(tt.from, tt.to, tt.role)

			var forbiddenErr *custom_error.ForbiddenError
			assert.ErrorAs(t, err, &forbiddenErr)
		})
	}
}

func TestTerminalStatusesHaveNoOutgoingEdges(t *testing.T) {
	for key := range legalTransitions {
		assert.False(t, key.from.IsTerminal(), "terminal status %s must not have outgoing edges", key.from)
	}
}
