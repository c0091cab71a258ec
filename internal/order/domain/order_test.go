package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Next(t *testing.T) {
	assert.Equal(t, StatusShipped, StatusProcessing.Next())
	assert.Equal(t, StatusDelivered, StatusShipped.Next())
	assert.Equal(t, StatusDelivered, StatusDelivered.Next())
	assert.Equal(t, StatusDelivered, Status("Cancelled").Next())
}

func TestOrder_ProductIDsAndQuantity(t *testing.T) {
	o := &Order{Items: []Item{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 3},
	}}

	assert.Equal(t, []string{"p1", "p2"}, o.ProductIDs())
	assert.Equal(t, 5, o.Quantity())
	assert.Empty(t, (&Order{}).ProductIDs())
}
