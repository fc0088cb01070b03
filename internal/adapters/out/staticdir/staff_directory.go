// Package staticdir resolves staff roles from a fixed, configuration-driven
// recipient table. It stands in for an external identity system.
package staticdir

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// StaffDirectory maps roles to configured recipient identifiers.
type StaffDirectory struct {
	recipients map[ports.StaffRole][]kernel.UUID
}

// NewStaffDirectory builds a directory from raw UUID strings per role.
// Roles with no valid entries resolve to empty recipient lists.
func NewStaffDirectory(recipientsByRole map[string][]string) (*StaffDirectory, error) {
	recipients := make(map[ports.StaffRole][]kernel.UUID, len(recipientsByRole))

	for role, rawIDs := range recipientsByRole {
		ids := make([]kernel.UUID, 0, len(rawIDs))
		for _, raw := range rawIDs {
			id, err := kernel.UUIDFromString(raw)
			if err != nil {
				return nil, errs.NewValueIsInvalidErrorWithCause("staffRecipients."+role, err)
			}
			ids = append(ids, id)
		}
		recipients[ports.StaffRole(role)] = ids
	}

	return &StaffDirectory{recipients: recipients}, nil
}

// RecipientsByRole returns the configured recipients for the role.
// Unknown roles resolve to an empty list rather than an error.
func (d *StaffDirectory) RecipientsByRole(_ context.Context, role ports.StaffRole) ([]kernel.UUID, error) {
	return d.recipients[role], nil
}
