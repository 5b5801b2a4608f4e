// Package mocks provides testify mocks for the repository and collaborator
// interfaces in internal/service.
package mocks

import (
	"context"
	"time"

	"eats-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func NewCategoryRepository(t testingT) *CategoryRepository {
	m := &CategoryRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func NewRestaurantRepository(t testingT) *RestaurantRepository {
	m := &RestaurantRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func NewDishRepository(t testingT) *DishRepository {
	m := &DishRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func NewPaymentRepository(t testingT) *PaymentRepository {
	m := &PaymentRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func NewBus(t testingT) *Bus {
	m := &Bus{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func NewPaymentGateway(t testingT) *PaymentGateway {
	m := &PaymentGateway{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func NewReceiptGenerator(t testingT) *ReceiptGenerator {
	m := &ReceiptGenerator{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func NewTokenSigner(t testingT) *TokenSigner {
	m := &TokenSigner{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(user *domain.User) error {
	return m.Called(user).Error(0)
}

func (m *UserRepository) GetUserByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetUserByID(id int) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) UpdateUser(user *domain.User) error {
	return m.Called(user).Error(0)
}

type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) GetOrCreateCategory(name, slug string) (*domain.Category, error) {
	args := m.Called(name, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *CategoryRepository) ListCategories() ([]domain.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *CategoryRepository) GetCategoryBySlug(slug string) (*domain.Category, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

type RestaurantRepository struct {
	mock.Mock
}

func (m *RestaurantRepository) CreateRestaurant(rest *domain.Restaurant) error {
	return m.Called(rest).Error(0)
}

func (m *RestaurantRepository) GetRestaurant(id int) (*domain.Restaurant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *RestaurantRepository) GetRestaurantWithMenu(id int) (*domain.Restaurant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *RestaurantRepository) UpdateRestaurant(rest *domain.Restaurant) error {
	return m.Called(rest).Error(0)
}

func (m *RestaurantRepository) DeleteRestaurant(id int) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RestaurantRepository) ListRestaurantsByOwner(ownerID int) ([]domain.Restaurant, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Restaurant), args.Error(1)
}

func (m *RestaurantRepository) ListRestaurantsPage(page, pageSize int) ([]domain.Restaurant, int, error) {
	args := m.Called(page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Restaurant), args.Int(1), args.Error(2)
}

func (m *RestaurantRepository) SearchRestaurants(query string, page, pageSize int) ([]domain.Restaurant, int, error) {
	args := m.Called(query, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Restaurant), args.Int(1), args.Error(2)
}

func (m *RestaurantRepository) ListRestaurantsByCategory(categoryID, page, pageSize int) ([]domain.Restaurant, error) {
	args := m.Called(categoryID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Restaurant), args.Error(1)
}

func (m *RestaurantRepository) CountRestaurantsByCategory(categoryID int) (int, error) {
	args := m.Called(categoryID)
	return args.Int(0), args.Error(1)
}

func (m *RestaurantRepository) SetPromotion(id int, until time.Time) error {
	return m.Called(id, until).Error(0)
}

func (m *RestaurantRepository) ClearExpiredPromotions(now time.Time) (int64, error) {
	args := m.Called(now)
	return args.Get(0).(int64), args.Error(1)
}

type DishRepository struct {
	mock.Mock
}

func (m *DishRepository) CreateDish(dish *domain.Dish) error {
	return m.Called(dish).Error(0)
}

func (m *DishRepository) GetDish(id int) (*domain.Dish, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dish), args.Error(1)
}

func (m *DishRepository) GetDishWithRestaurant(id int) (*domain.Dish, *domain.Restaurant, error) {
	args := m.Called(id)
	var dish *domain.Dish
	var rest *domain.Restaurant
	if args.Get(0) != nil {
		dish = args.Get(0).(*domain.Dish)
	}
	if args.Get(1) != nil {
		rest = args.Get(1).(*domain.Restaurant)
	}
	return dish, rest, args.Error(2)
}

func (m *DishRepository) UpdateDish(dish *domain.Dish) error {
	return m.Called(dish).Error(0)
}

func (m *DishRepository) DeleteDish(id int) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(order *domain.Order) error {
	return m.Called(order).Error(0)
}

func (m *OrderRepository) GetOrderWithRestaurant(id int) (*domain.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *OrderRepository) ListOrdersByCustomer(customerID int, status *domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(customerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *OrderRepository) ListOrdersByDriver(driverID int, status *domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(driverID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *OrderRepository) ListOrdersByOwner(ownerID int, status *domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(ownerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *OrderRepository) UpdateOrderStatus(id int, from, to domain.OrderStatus) (int64, error) {
	args := m.Called(id, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepository) AssignDriver(orderID, driverID int) (int64, error) {
	args := m.Called(orderID, driverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepository) SaveReceipt(orderID int, png []byte) error {
	return m.Called(orderID, png).Error(0)
}

func (m *OrderRepository) GetReceipt(orderID int) ([]byte, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type PaymentRepository struct {
	mock.Mock
}

func (m *PaymentRepository) CreatePayment(payment *domain.Payment) error {
	return m.Called(payment).Error(0)
}

func (m *PaymentRepository) ListPaymentsByUser(userID int) ([]domain.Payment, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type Bus struct {
	mock.Mock
}

func (m *Bus) Publish(ctx context.Context, channel string, event domain.OrderEvent) error {
	return m.Called(ctx, channel, event).Error(0)
}

func (m *Bus) Subscribe(ctx context.Context, channel string) (<-chan domain.OrderEvent, func(), error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(<-chan domain.OrderEvent), args.Get(1).(func()), args.Error(2)
}

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) Charge(amount float64, sourceToken string) (string, error) {
	args := m.Called(amount, sourceToken)
	return args.String(0), args.Error(1)
}

type TokenSigner struct {
	mock.Mock
}

func (m *TokenSigner) Sign(userID int) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *TokenSigner) Verify(token string) (int, error) {
	args := m.Called(token)
	return args.Int(0), args.Error(1)
}

type ReceiptGenerator struct {
	mock.Mock
}

func (m *ReceiptGenerator) Generate(orderID int) ([]byte, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
