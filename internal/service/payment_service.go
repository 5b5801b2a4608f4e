package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"eats-backend/internal/domain"

	"github.com/google/uuid"
)

// PromotionPeriod is how long a payment promotes a restaurant for.
const PromotionPeriod = 7 * 24 * time.Hour

type CreatePaymentInput struct {
	TransactionID string `json:"transaction_id,omitempty"`
	RestaurantID  int    `json:"restaurant_id"`
	// SourceToken, when set, charges the payment gateway and the resulting
	// charge id replaces TransactionID.
	SourceToken string  `json:"source_token,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
}

type PaymentService struct {
	payments    PaymentRepository
	restaurants RestaurantRepository
	gateway     PaymentGateway
	now         func() time.Time
}

func NewPaymentService(payments PaymentRepository, restaurants RestaurantRepository, gateway PaymentGateway) *PaymentService {
	return &PaymentService{
		payments:    payments,
		restaurants: restaurants,
		gateway:     gateway,
		now:         time.Now,
	}
}

// CreatePayment records a promotion payment for a restaurant the owner owns
// and extends the restaurant's promotion window by seven days from now.
func (s *PaymentService) CreatePayment(owner *domain.User, input CreatePaymentInput) error {
	restaurant, err := s.restaurants.GetRestaurant(input.RestaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("load restaurant: %w", err)
	}
	if restaurant.OwnerID != owner.ID {
		return ErrNotRestaurantOwner
	}

	transactionID := input.TransactionID
	if s.gateway != nil && input.SourceToken != "" {
		transactionID, err = s.gateway.Charge(input.Amount, input.SourceToken)
		if err != nil {
			return fmt.Errorf("charge gateway: %w", err)
		}
	}
	if transactionID == "" {
		transactionID = uuid.NewString()
	}

	payment := &domain.Payment{
		TransactionID: transactionID,
		UserID:        owner.ID,
		RestaurantID:  restaurant.ID,
	}
	if err := s.payments.CreatePayment(payment); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}

	until := s.now().Add(PromotionPeriod)
	if err := s.restaurants.SetPromotion(restaurant.ID, until); err != nil {
		return fmt.Errorf("set promotion: %w", err)
	}
	return nil
}

func (s *PaymentService) GetPayments(owner *domain.User) ([]domain.Payment, error) {
	return s.payments.ListPaymentsByUser(owner.ID)
}

// ClearExpiredPromotions demotes every restaurant whose promotion window has
// elapsed. Safe to run repeatedly.
func (s *PaymentService) ClearExpiredPromotions() error {
	cleared, err := s.restaurants.ClearExpiredPromotions(s.now())
	if err != nil {
		return fmt.Errorf("clear promotions: %w", err)
	}
	if cleared > 0 {
		log.Printf("[payments] cleared %d expired promotions", cleared)
	}
	return nil
}

// RunPromotionSweep runs ClearExpiredPromotions on a ticker until ctx is done.
func (s *PaymentService) RunPromotionSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.ClearExpiredPromotions(); err != nil {
				log.Printf("[payments] promotion sweep: %v", err)
			}
		}
	}
}

var _ PaymentServiceInterface = (*PaymentService)(nil)
