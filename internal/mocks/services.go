package mocks

import (
	"context"

	"eats-backend/internal/domain"
	"eats-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

type UserServiceInterface struct {
	mock.Mock
}

func NewUserServiceInterface(t testingT) *UserServiceInterface {
	m := &UserServiceInterface{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserServiceInterface) CreateAccount(email, password string, role domain.UserRole) error {
	return m.Called(email, password, role).Error(0)
}

func (m *UserServiceInterface) Login(email, password string) (string, error) {
	args := m.Called(email, password)
	return args.String(0), args.Error(1)
}

func (m *UserServiceInterface) Profile(userID int) (*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceInterface) EditProfile(userID int, email, password string) error {
	return m.Called(userID, email, password).Error(0)
}

type CatalogServiceInterface struct {
	mock.Mock
}

func NewCatalogServiceInterface(t testingT) *CatalogServiceInterface {
	m := &CatalogServiceInterface{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CatalogServiceInterface) CreateRestaurant(owner *domain.User, input service.CreateRestaurantInput) error {
	return m.Called(owner, input).Error(0)
}

func (m *CatalogServiceInterface) UpdateRestaurant(owner *domain.User, input service.UpdateRestaurantInput) error {
	return m.Called(owner, input).Error(0)
}

func (m *CatalogServiceInterface) DeleteRestaurant(owner *domain.User, restaurantID int) error {
	return m.Called(owner, restaurantID).Error(0)
}

func (m *CatalogServiceInterface) MyRestaurants(owner *domain.User) ([]domain.Restaurant, error) {
	args := m.Called(owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Restaurant), args.Error(1)
}

func (m *CatalogServiceInterface) Restaurants(page int) (*service.RestaurantPage, error) {
	args := m.Called(page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RestaurantPage), args.Error(1)
}

func (m *CatalogServiceInterface) Restaurant(restaurantID int) (*domain.Restaurant, error) {
	args := m.Called(restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *CatalogServiceInterface) SearchRestaurants(query string, page int) (*service.RestaurantPage, error) {
	args := m.Called(query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RestaurantPage), args.Error(1)
}

func (m *CatalogServiceInterface) AllCategories() ([]service.CategoryWithCount, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.CategoryWithCount), args.Error(1)
}

func (m *CatalogServiceInterface) Category(slug string, page int) (*service.CategoryPage, error) {
	args := m.Called(slug, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CategoryPage), args.Error(1)
}

func (m *CatalogServiceInterface) CreateDish(owner *domain.User, input service.CreateDishInput) error {
	return m.Called(owner, input).Error(0)
}

func (m *CatalogServiceInterface) UpdateDish(owner *domain.User, input service.UpdateDishInput) error {
	return m.Called(owner, input).Error(0)
}

func (m *CatalogServiceInterface) DeleteDish(owner *domain.User, dishID int) error {
	return m.Called(owner, dishID).Error(0)
}

type OrderServiceInterface struct {
	mock.Mock
}

func NewOrderServiceInterface(t testingT) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderServiceInterface) CreateOrder(ctx context.Context, customer *domain.User, input service.CreateOrderInput) error {
	return m.Called(ctx, customer, input).Error(0)
}

func (m *OrderServiceInterface) GetOrders(user *domain.User, status *domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(user, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *OrderServiceInterface) GetOrder(user *domain.User, orderID int) (*domain.Order, error) {
	args := m.Called(user, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *OrderServiceInterface) UpdateOrder(ctx context.Context, user *domain.User, orderID int, status domain.OrderStatus) error {
	return m.Called(ctx, user, orderID, status).Error(0)
}

func (m *OrderServiceInterface) TakeOrder(ctx context.Context, driver *domain.User, orderID int) error {
	return m.Called(ctx, driver, orderID).Error(0)
}

func (m *OrderServiceInterface) OrderReceipt(user *domain.User, orderID int) ([]byte, error) {
	args := m.Called(user, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type PaymentServiceInterface struct {
	mock.Mock
}

func NewPaymentServiceInterface(t testingT) *PaymentServiceInterface {
	m := &PaymentServiceInterface{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PaymentServiceInterface) CreatePayment(owner *domain.User, input service.CreatePaymentInput) error {
	return m.Called(owner, input).Error(0)
}

func (m *PaymentServiceInterface) GetPayments(owner *domain.User) ([]domain.Payment, error) {
	args := m.Called(owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *PaymentServiceInterface) ClearExpiredPromotions() error {
	return m.Called().Error(0)
}
