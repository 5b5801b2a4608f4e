package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"eats-backend/internal/domain"
)

type CreateOrderItemInput struct {
	DishID  int                 `json:"dish_id"`
	Options []domain.ItemOption `json:"options,omitempty"`
}

type CreateOrderInput struct {
	RestaurantID int                    `json:"restaurant_id"`
	Items        []CreateOrderItemInput `json:"items"`
}

type OrderService struct {
	orders      OrderRepository
	restaurants RestaurantRepository
	dishes      DishRepository
	bus         Bus
	events      EventPublisher
	receipts    ReceiptGenerator
}

func NewOrderService(orders OrderRepository, restaurants RestaurantRepository, dishes DishRepository, bus Bus, events EventPublisher, receipts ReceiptGenerator) *OrderService {
	return &OrderService{
		orders:      orders,
		restaurants: restaurants,
		dishes:      dishes,
		bus:         bus,
		events:      events,
		receipts:    receipts,
	}
}

// CreateOrder prices the submitted items against the restaurant's menu and
// persists the order with all items in a single transaction, then announces
// it to the restaurant's owner.
func (s *OrderService) CreateOrder(ctx context.Context, customer *domain.User, input CreateOrderInput) error {
	restaurant, err := s.restaurants.GetRestaurant(input.RestaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("load restaurant: %w", err)
	}

	order := &domain.Order{
		CustomerID:   customer.ID,
		RestaurantID: restaurant.ID,
		Status:       domain.StatusPending,
	}

	for _, item := range input.Items {
		dish, err := s.dishes.GetDish(item.DishID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrDishNotFound
			}
			return fmt.Errorf("load dish %d: %w", item.DishID, err)
		}
		order.Total += priceItem(dish, item.Options)
		order.Items = append(order.Items, domain.OrderItem{
			DishID:  dish.ID,
			Options: item.Options,
		})
	}

	if err := s.orders.CreateOrder(order); err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	if s.receipts != nil {
		if png, err := s.receipts.Generate(order.ID); err != nil {
			log.Printf("[orders] receipt for order %d: %v", order.ID, err)
		} else if err := s.orders.SaveReceipt(order.ID, png); err != nil {
			log.Printf("[orders] store receipt for order %d: %v", order.ID, err)
		}
	}

	s.announce(ctx, domain.NewPendingOrder, order, restaurant.OwnerID)
	return nil
}

// priceItem computes the line total: dish base price plus the extra of every
// submitted option that the dish actually defines, plus the extra of a
// matching choice within that option. Unknown option or choice names are
// ignored.
func priceItem(dish *domain.Dish, selections []domain.ItemOption) float64 {
	total := dish.Price
	for _, sel := range selections {
		for _, opt := range dish.Options {
			if opt.Name != sel.Name {
				continue
			}
			total += opt.Extra
			for _, choice := range opt.Choices {
				if choice.Name == sel.Choice {
					total += choice.Extra
					break
				}
			}
			break
		}
	}
	return total
}

func (s *OrderService) GetOrders(user *domain.User, status *domain.OrderStatus) ([]domain.Order, error) {
	switch user.Role {
	case domain.RoleClient:
		return s.orders.ListOrdersByCustomer(user.ID, status)
	case domain.RoleDelivery:
		return s.orders.ListOrdersByDriver(user.ID, status)
	case domain.RoleOwner:
		return s.orders.ListOrdersByOwner(user.ID, status)
	}
	return nil, nil
}

func (s *OrderService) GetOrder(user *domain.User, orderID int) (*domain.Order, error) {
	order, err := s.orders.GetOrderWithRestaurant(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	if !CanSeeOrder(user, order) {
		return nil, ErrCantSeeOrder
	}
	return order, nil
}

// UpdateOrder moves the order to status after both policy checks pass. The
// write carries the expected current status so a transition that lost a race
// fails with ErrOrderAdvanced instead of silently rewinding the order.
func (s *OrderService) UpdateOrder(ctx context.Context, user *domain.User, orderID int, status domain.OrderStatus) error {
	if !domain.ValidStatus(status) {
		return ErrBadStatus
	}

	order, err := s.orders.GetOrderWithRestaurant(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("load order: %w", err)
	}
	if !CanSeeOrder(user, order) {
		return ErrCantSeeThat
	}
	if !CanUpdateOrder(user, status) {
		return ErrCantUpdateOrder
	}

	changed, err := s.orders.UpdateOrderStatus(orderID, order.Status, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if changed == 0 {
		return ErrOrderAdvanced
	}
	order.Status = status

	if user.Role == domain.RoleOwner && status == domain.StatusCooked {
		s.announce(ctx, domain.NewCookedOrder, order, order.Restaurant.OwnerID)
	}
	s.announce(ctx, domain.NewOrderUpdate, order, order.Restaurant.OwnerID)
	return nil
}

// TakeOrder assigns the driver to an unclaimed order.
func (s *OrderService) TakeOrder(ctx context.Context, driver *domain.User, orderID int) error {
	order, err := s.orders.GetOrderWithRestaurant(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("load order: %w", err)
	}

	changed, err := s.orders.AssignDriver(orderID, driver.ID)
	if err != nil {
		return fmt.Errorf("assign driver: %w", err)
	}
	if changed == 0 {
		return ErrOrderTaken
	}
	order.DriverID = driver.ID

	s.announce(ctx, domain.NewOrderUpdate, order, order.Restaurant.OwnerID)
	return nil
}

func (s *OrderService) OrderReceipt(user *domain.User, orderID int) ([]byte, error) {
	if _, err := s.GetOrder(user, orderID); err != nil {
		return nil, err
	}
	return s.orders.GetReceipt(orderID)
}

// announce publishes to the in-process bus and mirrors the event to the
// durable log. Neither failure aborts the operation that triggered it.
func (s *OrderService) announce(ctx context.Context, channel string, order *domain.Order, ownerID int) {
	event := domain.OrderEvent{
		Channel:      channel,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		OwnerID:      ownerID,
		CustomerID:   order.CustomerID,
		DriverID:     order.DriverID,
		Status:       order.Status,
		Total:        order.Total,
		Timestamp:    time.Now(),
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, channel, event); err != nil {
			log.Printf("[orders] publish %s for order %d: %v", channel, order.ID, err)
		}
	}
	if s.events != nil {
		if err := s.events.PublishOrderEvent(ctx, event); err != nil {
			log.Printf("[orders] kafka mirror %s for order %d: %v", channel, order.ID, err)
		}
	}
}

var _ OrderServiceInterface = (*OrderService)(nil)
