package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelmart/storefront/pkg/apperror"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		got, err := ParseStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, OrderStatus(s), got)
	}

	for _, s := range []string{"", "Pending", "completed", "canceled", "refunded"} {
		_, err := ParseStatus(s)
		require.Error(t, err, s)
		assert.Equal(t, apperror.CodeInvalid, apperror.Code(err))
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.False(t, StatusShipped.Terminal())
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestShippingAddressValidate(t *testing.T) {
	addr := ShippingAddress{
		FullName: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100",
		Address: "1 Analytical Way", City: "London", State: "LDN",
		PostalCode: "E1 6AN", Country: "UK",
	}
	require.NoError(t, addr.Validate())

	addr.City = ""
	err := addr.Validate()
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalid, apperror.Code(err))
}
