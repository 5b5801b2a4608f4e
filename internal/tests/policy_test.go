package tests

import (
	"testing"

	"eats-backend/internal/domain"
	"eats-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestCanSeeOrder(t *testing.T) {
	order := &domain.Order{
		ID:         7,
		CustomerID: 1,
		DriverID:   2,
		Restaurant: &domain.Restaurant{ID: 10, OwnerID: 3},
	}

	tests := []struct {
		name     string
		user     *domain.User
		order    *domain.Order
		expected bool
	}{
		{"client_is_customer", &domain.User{ID: 1, Role: domain.RoleClient}, order, true},
		{"client_is_not_customer", &domain.User{ID: 9, Role: domain.RoleClient}, order, false},
		{"driver_is_assigned", &domain.User{ID: 2, Role: domain.RoleDelivery}, order, true},
		{"driver_is_not_assigned", &domain.User{ID: 9, Role: domain.RoleDelivery}, order, false},
		{"owner_owns_restaurant", &domain.User{ID: 3, Role: domain.RoleOwner}, order, true},
		{"owner_does_not_own_restaurant", &domain.User{ID: 9, Role: domain.RoleOwner}, order, false},
		{
			"owner_without_loaded_restaurant",
			&domain.User{ID: 3, Role: domain.RoleOwner},
			&domain.Order{ID: 8, CustomerID: 1, DriverID: 2},
			false,
		},
		{"unknown_role", &domain.User{ID: 1, Role: domain.UserRole("Admin")}, order, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, service.CanSeeOrder(testCase.user, testCase.order))
		})
	}
}

func TestCanUpdateOrder(t *testing.T) {
	owner := &domain.User{ID: 3, Role: domain.RoleOwner}
	driver := &domain.User{ID: 2, Role: domain.RoleDelivery}
	client := &domain.User{ID: 1, Role: domain.RoleClient}

	tests := []struct {
		name     string
		user     *domain.User
		status   domain.OrderStatus
		expected bool
	}{
		{"owner_cooking", owner, domain.StatusCooking, true},
		{"owner_cooked", owner, domain.StatusCooked, true},
		{"owner_picked_up", owner, domain.StatusPickedUp, false},
		{"owner_delivered", owner, domain.StatusDelivered, false},
		{"owner_pending", owner, domain.StatusPending, false},
		{"driver_picked_up", driver, domain.StatusPickedUp, true},
		{"driver_delivered", driver, domain.StatusDelivered, true},
		{"driver_cooking", driver, domain.StatusCooking, false},
		{"driver_cooked", driver, domain.StatusCooked, false},
		{"client_cooking", client, domain.StatusCooking, false},
		{"client_delivered", client, domain.StatusDelivered, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, service.CanUpdateOrder(testCase.user, testCase.status))
		})
	}
}
