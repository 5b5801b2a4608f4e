package tests

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"eats-backend/internal/domain"
	"eats-backend/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*storage.PostgresRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storage.NewPostgresRepository(db), mock
}

func TestPostgresRepository_UpdateOrderStatus(t *testing.T) {
	t.Run("advances_when_status_matches", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectExec("UPDATE orders SET status").
			WithArgs("Cooked", 7, "Cooking").
			WillReturnResult(sqlmock.NewResult(0, 1))

		changed, err := repo.UpdateOrderStatus(7, domain.StatusCooking, domain.StatusCooked)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), changed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no_rows_when_status_moved", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectExec("UPDATE orders SET status").
			WithArgs("Cooked", 7, "Cooking").
			WillReturnResult(sqlmock.NewResult(0, 0))

		changed, err := repo.UpdateOrderStatus(7, domain.StatusCooking, domain.StatusCooked)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), changed)
	})
}

func TestPostgresRepository_AssignDriver(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec("UPDATE orders SET driver_id").
		WithArgs(2, 7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	changed, err := repo.AssignDriver(7, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ClearExpiredPromotions(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()

	mock.ExpectExec("UPDATE restaurants SET is_promoted = FALSE").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 2))

	cleared, err := repo.ClearExpiredPromotions(now)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), cleared)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetOrCreateCategory(t *testing.T) {
	t.Run("returns_existing_by_slug", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectQuery("SELECT id, name, slug").
			WithArgs("fast-food").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "cover_image"}).
				AddRow(4, "Fast Food", "fast-food", ""))

		category, err := repo.GetOrCreateCategory("Fast Food", "fast-food")
		assert.NoError(t, err)
		assert.Equal(t, 4, category.ID)
	})

	t.Run("inserts_on_miss", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectQuery("SELECT id, name, slug").
			WithArgs("fast-food").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("INSERT INTO categories").
			WithArgs("Fast Food", "fast-food").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))

		category, err := repo.GetOrCreateCategory("Fast Food", "fast-food")
		assert.NoError(t, err)
		assert.Equal(t, 8, category.ID)
		assert.Equal(t, "fast-food", category.Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_CreateOrder(t *testing.T) {
	t.Run("commits_order_and_items_together", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WithArgs(1, 5, "Pending", 10.00).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, time.Now()))
		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs(7, 11, []byte("null")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
		mock.ExpectCommit()

		order := &domain.Order{
			CustomerID:   1,
			RestaurantID: 5,
			Status:       domain.StatusPending,
			Total:        10.00,
			Items:        []domain.OrderItem{{DishID: 11}},
		}
		err := repo.CreateOrder(order)
		assert.NoError(t, err)
		assert.Equal(t, 7, order.ID)
		assert.Equal(t, 7, order.Items[0].OrderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls_back_on_item_failure", func(t *testing.T) {
		repo, mock := setupRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WithArgs(1, 5, "Pending", 10.00).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, time.Now()))
		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs(7, 11, []byte("null")).
			WillReturnError(errors.New("constraint violation"))
		mock.ExpectRollback()

		order := &domain.Order{
			CustomerID:   1,
			RestaurantID: 5,
			Status:       domain.StatusPending,
			Total:        10.00,
			Items:        []domain.OrderItem{{DishID: 11}},
		}
		err := repo.CreateOrder(order)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_ListOrdersByOwner(t *testing.T) {
	repo, mock := setupRepo(t)
	cooked := domain.StatusCooked

	rows := sqlmock.NewRows([]string{"id", "customer_id", "driver_id", "restaurant_id", "status", "total", "created_at"}).
		AddRow(7, 1, 0, 5, "Cooked", 10.00, time.Now()).
		AddRow(9, 2, 0, 6, "Cooked", 4.50, time.Now())

	mock.ExpectQuery("JOIN restaurants r ON").
		WithArgs(3, "Cooked").
		WillReturnRows(rows)

	orders, err := repo.ListOrdersByOwner(3, &cooked)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	// Orders from both of the owner's restaurants come back in one list.
	assert.Equal(t, 5, orders[0].RestaurantID)
	assert.Equal(t, 6, orders[1].RestaurantID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SetPromotion(t *testing.T) {
	repo, mock := setupRepo(t)
	until := time.Now().Add(7 * 24 * time.Hour)

	mock.ExpectExec("UPDATE restaurants SET is_promoted = TRUE").
		WithArgs(until, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.SetPromotion(5, until))
	assert.NoError(t, mock.ExpectationsWereMet())
}
