package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusFinished.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, OrderStatus("active").Valid(), "status values are case sensitive")
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusActive.IsTerminal())
	assert.True(t, StatusFinished.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"active to finished", StatusActive, StatusFinished, true},
		{"active to cancelled", StatusActive, StatusCancelled, true},
		{"active to active", StatusActive, StatusActive, false},
		{"finished to active", StatusFinished, StatusActive, false},
		{"finished to cancelled", StatusFinished, StatusCancelled, false},
		{"finished to finished", StatusFinished, StatusFinished, false},
		{"cancelled to active", StatusCancelled, StatusActive, false},
		{"active to unknown", StatusActive, OrderStatus("Shipped"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}
