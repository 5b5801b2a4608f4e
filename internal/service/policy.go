package service

import "eats-backend/internal/domain"

// CanSeeOrder reports whether user may view order. Each role may only see
// orders it is a party to: clients their own, drivers their assigned ones,
// owners those placed against their restaurants. The order must carry its
// restaurant for the owner check.
func CanSeeOrder(user *domain.User, order *domain.Order) bool {
	switch user.Role {
	case domain.RoleClient:
		return user.ID == order.CustomerID
	case domain.RoleOwner:
		return order.Restaurant != nil && user.ID == order.Restaurant.OwnerID
	case domain.RoleDelivery:
		return user.ID == order.DriverID
	}
	return false
}

// CanUpdateOrder reports whether user's role may move an order to status.
// Clients never may; owners own the kitchen half of the lifecycle, drivers
// the delivery half.
func CanUpdateOrder(user *domain.User, status domain.OrderStatus) bool {
	switch user.Role {
	case domain.RoleOwner:
		return status == domain.StatusCooking || status == domain.StatusCooked
	case domain.RoleDelivery:
		return status == domain.StatusPickedUp || status == domain.StatusDelivered
	}
	return false
}
