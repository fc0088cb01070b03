package queries_test

import (
	"testing"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetCustomerOrdersQuery_Valid(t *testing.T) {
	customerID := kernel.NewUUID()

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, customerID, query.CustomerID())
}

func TestNewGetCustomerOrdersQuery_EmptyCustomerID(t *testing.T) {
	_, err := queries.NewGetCustomerOrdersQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetCustomerOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetCustomerOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetCustomerOrdersQueryIsNotConstructed)
}
