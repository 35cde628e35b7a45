package handlers

import (
	"testing"

	"backend/internal/models"
)

func TestCanCancelOrder(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{models.OrderStatusPending, true},
		{models.OrderStatusPaid, true},
		{models.OrderStatusShipped, false},
		{models.OrderStatusDelivered, false},
		{models.OrderStatusCancelled, false},
	}
	for _, tc := range tests {
		if got := canCancelOrder(tc.status); got != tc.want {
			t.Fatalf("canCancelOrder(%q) = %v, expected %v", tc.status, got, tc.want)
		}
	}
}
