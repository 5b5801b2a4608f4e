package service

import (
	"context"
	"time"

	"eats-backend/internal/domain"
)

type UserRepository interface {
	CreateUser(user *domain.User) error
	GetUserByEmail(email string) (*domain.User, error)
	GetUserByID(id int) (*domain.User, error)
	UpdateUser(user *domain.User) error
}

type CategoryRepository interface {
	GetOrCreateCategory(name, slug string) (*domain.Category, error)
	ListCategories() ([]domain.Category, error)
	GetCategoryBySlug(slug string) (*domain.Category, error)
}

type RestaurantRepository interface {
	CreateRestaurant(rest *domain.Restaurant) error
	GetRestaurant(id int) (*domain.Restaurant, error)
	GetRestaurantWithMenu(id int) (*domain.Restaurant, error)
	UpdateRestaurant(rest *domain.Restaurant) error
	DeleteRestaurant(id int) (int64, error)
	ListRestaurantsByOwner(ownerID int) ([]domain.Restaurant, error)
	ListRestaurantsPage(page, pageSize int) ([]domain.Restaurant, int, error)
	SearchRestaurants(query string, page, pageSize int) ([]domain.Restaurant, int, error)
	ListRestaurantsByCategory(categoryID, page, pageSize int) ([]domain.Restaurant, error)
	CountRestaurantsByCategory(categoryID int) (int, error)
	SetPromotion(id int, until time.Time) error
	ClearExpiredPromotions(now time.Time) (int64, error)
}

type DishRepository interface {
	CreateDish(dish *domain.Dish) error
	GetDish(id int) (*domain.Dish, error)
	GetDishWithRestaurant(id int) (*domain.Dish, *domain.Restaurant, error)
	UpdateDish(dish *domain.Dish) error
	DeleteDish(id int) (int64, error)
}

type OrderRepository interface {
	// CreateOrder persists the order and all of its items in one transaction.
	CreateOrder(order *domain.Order) error
	GetOrderWithRestaurant(id int) (*domain.Order, error)
	ListOrdersByCustomer(customerID int, status *domain.OrderStatus) ([]domain.Order, error)
	ListOrdersByDriver(driverID int, status *domain.OrderStatus) ([]domain.Order, error)
	ListOrdersByOwner(ownerID int, status *domain.OrderStatus) ([]domain.Order, error)
	// UpdateOrderStatus advances the order only if its stored status still
	// equals from; returns the number of rows changed.
	UpdateOrderStatus(id int, from, to domain.OrderStatus) (int64, error)
	// AssignDriver sets the driver only if the order has none yet.
	AssignDriver(orderID, driverID int) (int64, error)
	SaveReceipt(orderID int, png []byte) error
	GetReceipt(orderID int) ([]byte, error)
}

type PaymentRepository interface {
	CreatePayment(payment *domain.Payment) error
	ListPaymentsByUser(userID int) ([]domain.Payment, error)
}

// Bus is the injected notification channel: fire-and-forget publish, per-caller
// subscription streams torn down via the returned cancel func.
type Bus interface {
	Publish(ctx context.Context, channel string, event domain.OrderEvent) error
	Subscribe(ctx context.Context, channel string) (<-chan domain.OrderEvent, func(), error)
}

// EventPublisher mirrors lifecycle events to a durable log (Kafka). Optional:
// services treat a nil publisher as a no-op.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

// TokenSigner issues and verifies bearer tokens bound to a user id.
type TokenSigner interface {
	Sign(userID int) (string, error)
	Verify(token string) (int, error)
}

// PaymentGateway charges an external processor and returns a transaction id.
type PaymentGateway interface {
	Charge(amount float64, sourceToken string) (string, error)
}

type UserServiceInterface interface {
	CreateAccount(email, password string, role domain.UserRole) error
	Login(email, password string) (string, error)
	Profile(userID int) (*domain.User, error)
	EditProfile(userID int, email, password string) error
}

type CatalogServiceInterface interface {
	CreateRestaurant(owner *domain.User, input CreateRestaurantInput) error
	UpdateRestaurant(owner *domain.User, input UpdateRestaurantInput) error
	DeleteRestaurant(owner *domain.User, restaurantID int) error
	MyRestaurants(owner *domain.User) ([]domain.Restaurant, error)
	Restaurants(page int) (*RestaurantPage, error)
	Restaurant(restaurantID int) (*domain.Restaurant, error)
	SearchRestaurants(query string, page int) (*RestaurantPage, error)
	AllCategories() ([]CategoryWithCount, error)
	Category(slug string, page int) (*CategoryPage, error)
	CreateDish(owner *domain.User, input CreateDishInput) error
	UpdateDish(owner *domain.User, input UpdateDishInput) error
	DeleteDish(owner *domain.User, dishID int) error
}

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, customer *domain.User, input CreateOrderInput) error
	GetOrders(user *domain.User, status *domain.OrderStatus) ([]domain.Order, error)
	GetOrder(user *domain.User, orderID int) (*domain.Order, error)
	UpdateOrder(ctx context.Context, user *domain.User, orderID int, status domain.OrderStatus) error
	TakeOrder(ctx context.Context, driver *domain.User, orderID int) error
	OrderReceipt(user *domain.User, orderID int) ([]byte, error)
}

type PaymentServiceInterface interface {
	CreatePayment(owner *domain.User, input CreatePaymentInput) error
	GetPayments(owner *domain.User) ([]domain.Payment, error)
	ClearExpiredPromotions() error
}
