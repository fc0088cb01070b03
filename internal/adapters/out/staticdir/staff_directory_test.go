package staticdir_test

import (
	"context"
	"testing"

	"shipping/internal/adapters/out/staticdir"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStaffDirectory_ResolvesConfiguredRoles(t *testing.T) {
	warehouse1 := kernel.NewUUID()
	warehouse2 := kernel.NewUUID()
	csr := kernel.NewUUID()

	directory, err := staticdir.NewStaffDirectory(map[string][]string{
		string(ports.RoleWarehouseStaff):     {warehouse1.String(), warehouse2.String()},
		string(ports.RoleCustomerServiceRep): {csr.String()},
	})
	require.NoError(t, err)

	recipients, err := directory.RecipientsByRole(context.Background(), ports.RoleWarehouseStaff)
	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{warehouse1, warehouse2}, recipients)

	recipients, err = directory.RecipientsByRole(context.Background(), ports.RoleCustomerServiceRep)
	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{csr}, recipients)
}

func TestNewStaffDirectory_InvalidRecipientID(t *testing.T) {
	_, err := staticdir.NewStaffDirectory(map[string][]string{
		string(ports.RoleWarehouseStaff): {"not-a-uuid"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStaffDirectory_UnknownRole_ReturnsEmptyList(t *testing.T) {
	directory, err := staticdir.NewStaffDirectory(nil)
	require.NoError(t, err)

	recipients, err := directory.RecipientsByRole(context.Background(), "night-shift")
	require.NoError(t, err)
	assert.Empty(t, recipients)
}
