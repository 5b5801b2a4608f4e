package service

import "errors"

// Sentinel errors surfaced verbatim in response envelopes. Anything else a
// service returns is reported to callers as a generic "Could not ..." message
// by the HTTP layer.
var (
	ErrEmailTaken    = errors.New("There is a user with that email already")
	ErrUserNotFound  = errors.New("User Not Found")
	ErrWrongPassword = errors.New("Wrong password.")

	ErrRestaurantNotFound = errors.New("Restaurant not found.")
	ErrNotRestaurantOwner = errors.New("You don't own restaurant.")
	ErrUpdateNotOwned     = errors.New("You can't update a restaurant that you don't own.")
	ErrDeleteNotOwned     = errors.New("You can't delete a restaurant that you don't own.")
	ErrCategoryNotFound   = errors.New("Category not found.")
	ErrDishNotFound       = errors.New("Dish not found.")
	ErrDishNotOwned       = errors.New("You can't do that because you don't own restaurant.")

	ErrOrderNotFound   = errors.New("Order not found.")
	ErrCantSeeOrder    = errors.New("You can't see order.")
	ErrCantSeeThat     = errors.New("You can't see that.")
	ErrCantUpdateOrder = errors.New("You can't update order.")
	ErrOrderAdvanced   = errors.New("Order already advanced.")
	ErrOrderTaken      = errors.New("Order already has a driver.")
	ErrBadStatus       = errors.New("Unknown order status.")
)

// IsUserFacing reports whether err carries a message safe to surface to the
// caller unmodified.
func IsUserFacing(err error) bool {
	for _, known := range []error{
		ErrEmailTaken, ErrUserNotFound, ErrWrongPassword,
		ErrRestaurantNotFound, ErrNotRestaurantOwner, ErrUpdateNotOwned,
		ErrDeleteNotOwned, ErrCategoryNotFound, ErrDishNotFound, ErrDishNotOwned,
		ErrOrderNotFound, ErrCantSeeOrder, ErrCantSeeThat, ErrCantUpdateOrder,
		ErrOrderAdvanced, ErrOrderTaken, ErrBadStatus,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
