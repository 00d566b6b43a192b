package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd_IncrementsExistingEntry(t *testing.T) {
	c := New("u1")
	c.Add("p1", 1)
	c.Add("p1", 2)
	c.Add("p2", 1)

	assert.Len(t, c.Items, 2)
	assert.Equal(t, Item{ProductID: "p1", Quantity: 3}, c.Items[0])
}

func TestSet_OverwritesOrInserts(t *testing.T) {
	c := New("u1")
	c.Add("p1", 5)
	c.Set("p1", 2)
	c.Set("p2", 4)

	assert.Equal(t, Item{ProductID: "p1", Quantity: 2}, c.Items[0])
	assert.Equal(t, Item{ProductID: "p2", Quantity: 4}, c.Items[1])
}

func TestRemove_IsIdempotent(t *testing.T) {
	c := New("u1")
	c.Add("p1", 1)
	c.Remove("p1")
	c.Remove("p1")
	c.Remove("never-added")

	assert.True(t, c.IsEmpty())
}

func TestPrune_DropsNonPositiveQuantities(t *testing.T) {
	c := New("u1")
	c.Add("p1", 1)
	c.Set("p2", 0)
	c.Set("p3", -2)
	c.Prune()

	assert.Len(t, c.Items, 1)
	assert.Equal(t, "p1", c.Items[0].ProductID)
}
