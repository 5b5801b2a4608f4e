package domain

import "time"

type UserRole string

const (
	RoleClient   UserRole = "Client"
	RoleOwner    UserRole = "Owner"
	RoleDelivery UserRole = "Delivery"
)

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Category struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	CoverImage string `json:"cover_image,omitempty"`
}

type Restaurant struct {
	ID            int        `json:"id"`
	OwnerID       int        `json:"owner_id"`
	CategoryID    int        `json:"category_id,omitempty"`
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	CoverImage    string     `json:"cover_image,omitempty"`
	IsPromoted    bool       `json:"is_promoted"`
	PromotedUntil *time.Time `json:"promoted_until,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	Menu          []Dish     `json:"menu,omitempty"`
}

type DishChoice struct {
	Name  string  `json:"name"`
	Extra float64 `json:"extra,omitempty"`
}

type DishOption struct {
	Name    string       `json:"name"`
	Extra   float64      `json:"extra,omitempty"`
	Choices []DishChoice `json:"choices,omitempty"`
}

type Dish struct {
	ID           int          `json:"id"`
	RestaurantID int          `json:"restaurant_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Price        float64      `json:"price"`
	Photo        string       `json:"photo,omitempty"`
	Options      []DishOption `json:"options,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusCooking   OrderStatus = "Cooking"
	StatusCooked    OrderStatus = "Cooked"
	StatusPickedUp  OrderStatus = "PickedUp"
	StatusDelivered OrderStatus = "Delivered"
)

// ValidStatus reports whether s is one of the five known order statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusCooking, StatusCooked, StatusPickedUp, StatusDelivered:
		return true
	}
	return false
}

type ItemOption struct {
	Name   string `json:"name"`
	Choice string `json:"choice,omitempty"`
}

type OrderItem struct {
	ID      int          `json:"id"`
	OrderID int          `json:"order_id"`
	DishID  int          `json:"dish_id"`
	Options []ItemOption `json:"options,omitempty"`
}

type Order struct {
	ID           int         `json:"id"`
	CustomerID   int         `json:"customer_id"`
	DriverID     int         `json:"driver_id,omitempty"` // zero until a driver takes the order
	RestaurantID int         `json:"restaurant_id"`
	Status       OrderStatus `json:"status"`
	Total        float64     `json:"total"`
	CreatedAt    time.Time   `json:"created_at"`
	Items        []OrderItem `json:"items,omitempty"`

	// Restaurant is loaded alongside the order when the caller needs
	// ownership checks; nil otherwise.
	Restaurant *Restaurant `json:"restaurant,omitempty"`
}

type Payment struct {
	ID            int       `json:"id"`
	TransactionID string    `json:"transaction_id"`
	UserID        int       `json:"user_id"`
	RestaurantID  int       `json:"restaurant_id"`
	CreatedAt     time.Time `json:"created_at"`
}
