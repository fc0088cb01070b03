package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
)

// StaffRole names a group of internal notification recipients.
type StaffRole string

// Staff roles the lifecycle notifies.
const (
	RoleWarehouseStaff     StaffRole = "warehouse-staff"
	RoleCustomerServiceRep StaffRole = "customer-service-rep"
)

// StaffDirectory resolves a role to its recipient identifiers.
// Identity and role management belong to an external system; a lookup
// failure is a dependency failure the caller logs and tolerates: missing
// staff recipients never fail an order mutation.
type StaffDirectory interface {
	RecipientsByRole(ctx context.Context, role StaffRole) ([]kernel.UUID, error)
}
