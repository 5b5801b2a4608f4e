package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"eats-backend/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) CreateUser(user *domain.User) error {
	return r.DB.QueryRow(
		"INSERT INTO users (email, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at",
		user.Email, user.PasswordHash, string(user.Role),
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *PostgresRepository) GetUserByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.DB.QueryRow(
		"SELECT id, email, password_hash, role, created_at FROM users WHERE email = $1",
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetUserByID(id int) (*domain.User, error) {
	var user domain.User
	err := r.DB.QueryRow(
		"SELECT id, email, password_hash, role, created_at FROM users WHERE id = $1",
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) UpdateUser(user *domain.User) error {
	_, err := r.DB.Exec(
		"UPDATE users SET email=$1, password_hash=$2 WHERE id=$3",
		user.Email, user.PasswordHash, user.ID)
	return err
}

func (r *PostgresRepository) GetOrCreateCategory(name, slug string) (*domain.Category, error) {
	var category domain.Category
	err := r.DB.QueryRow(
		"SELECT id, name, slug, COALESCE(cover_image, '') FROM categories WHERE slug = $1",
		slug,
	).Scan(&category.ID, &category.Name, &category.Slug, &category.CoverImage)
	if err == nil {
		return &category, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	category.Name = name
	category.Slug = slug
	err = r.DB.QueryRow(
		"INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id",
		name, slug,
	).Scan(&category.ID)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) ListCategories() ([]domain.Category, error) {
	rows, err := r.DB.Query("SELECT id, name, slug, COALESCE(cover_image, '') FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.CoverImage); err != nil {
			continue
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) GetCategoryBySlug(slug string) (*domain.Category, error) {
	var category domain.Category
	err := r.DB.QueryRow(
		"SELECT id, name, slug, COALESCE(cover_image, '') FROM categories WHERE slug = $1",
		slug,
	).Scan(&category.ID, &category.Name, &category.Slug, &category.CoverImage)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

const restaurantColumns = `id, owner_id, COALESCE(category_id, 0), name, COALESCE(address, ''), COALESCE(cover_image, ''), is_promoted, promoted_until, created_at`

func scanRestaurant(row interface{ Scan(...any) error }) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	var promotedUntil sql.NullTime
	err := row.Scan(&rest.ID, &rest.OwnerID, &rest.CategoryID, &rest.Name, &rest.Address,
		&rest.CoverImage, &rest.IsPromoted, &promotedUntil, &rest.CreatedAt)
	if err != nil {
		return nil, err
	}
	if promotedUntil.Valid {
		rest.PromotedUntil = &promotedUntil.Time
	}
	return &rest, nil
}

func (r *PostgresRepository) CreateRestaurant(rest *domain.Restaurant) error {
	return r.DB.QueryRow(
		"INSERT INTO restaurants (owner_id, category_id, name, address, cover_image) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at",
		rest.OwnerID, rest.CategoryID, rest.Name, rest.Address, rest.CoverImage,
	).Scan(&rest.ID, &rest.CreatedAt)
}

func (r *PostgresRepository) GetRestaurant(id int) (*domain.Restaurant, error) {
	return scanRestaurant(r.DB.QueryRow(
		"SELECT "+restaurantColumns+" FROM restaurants WHERE id = $1", id))
}

func (r *PostgresRepository) GetRestaurantWithMenu(id int) (*domain.Restaurant, error) {
	rest, err := r.GetRestaurant(id)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(`
		SELECT id, restaurant_id, name, COALESCE(description, ''), price, COALESCE(photo, ''), COALESCE(options, '[]'), created_at
		FROM dishes
		WHERE restaurant_id = $1
		ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		dish, err := scanDish(rows)
		if err != nil {
			continue
		}
		rest.Menu = append(rest.Menu, *dish)
	}
	return rest, rows.Err()
}

func (r *PostgresRepository) UpdateRestaurant(rest *domain.Restaurant) error {
	_, err := r.DB.Exec(
		"UPDATE restaurants SET name=$1, address=$2, cover_image=$3, category_id=$4 WHERE id=$5",
		rest.Name, rest.Address, rest.CoverImage, rest.CategoryID, rest.ID)
	return err
}

func (r *PostgresRepository) DeleteRestaurant(id int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM restaurants WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) listRestaurants(query string, args ...any) ([]domain.Restaurant, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			continue
		}
		restaurants = append(restaurants, *rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) ListRestaurantsByOwner(ownerID int) ([]domain.Restaurant, error) {
	return r.listRestaurants(
		"SELECT "+restaurantColumns+" FROM restaurants WHERE owner_id = $1 ORDER BY created_at DESC",
		ownerID)
}

// ListRestaurantsPage orders promoted restaurants first.
func (r *PostgresRepository) ListRestaurantsPage(page, pageSize int) ([]domain.Restaurant, int, error) {
	restaurants, err := r.listRestaurants(
		"SELECT "+restaurantColumns+" FROM restaurants ORDER BY is_promoted DESC, created_at DESC LIMIT $1 OFFSET $2",
		pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRow("SELECT COUNT(*) FROM restaurants").Scan(&total); err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

func (r *PostgresRepository) SearchRestaurants(query string, page, pageSize int) ([]domain.Restaurant, int, error) {
	pattern := "%" + query + "%"
	restaurants, err := r.listRestaurants(
		"SELECT "+restaurantColumns+" FROM restaurants WHERE name ILIKE $1 ORDER BY is_promoted DESC, created_at DESC LIMIT $2 OFFSET $3",
		pattern, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRow("SELECT COUNT(*) FROM restaurants WHERE name ILIKE $1", pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

func (r *PostgresRepository) ListRestaurantsByCategory(categoryID, page, pageSize int) ([]domain.Restaurant, error) {
	return r.listRestaurants(
		"SELECT "+restaurantColumns+" FROM restaurants WHERE category_id = $1 ORDER BY is_promoted DESC, created_at DESC LIMIT $2 OFFSET $3",
		categoryID, pageSize, (page-1)*pageSize)
}

func (r *PostgresRepository) CountRestaurantsByCategory(categoryID int) (int, error) {
	var total int
	err := r.DB.QueryRow("SELECT COUNT(*) FROM restaurants WHERE category_id = $1", categoryID).Scan(&total)
	return total, err
}

func (r *PostgresRepository) SetPromotion(id int, until time.Time) error {
	_, err := r.DB.Exec(
		"UPDATE restaurants SET is_promoted = TRUE, promoted_until = $1 WHERE id = $2",
		until, id)
	return err
}

func (r *PostgresRepository) ClearExpiredPromotions(now time.Time) (int64, error) {
	result, err := r.DB.Exec(
		"UPDATE restaurants SET is_promoted = FALSE, promoted_until = NULL WHERE is_promoted = TRUE AND promoted_until < $1",
		now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanDish(row interface{ Scan(...any) error }) (*domain.Dish, error) {
	var dish domain.Dish
	var options []byte
	err := row.Scan(&dish.ID, &dish.RestaurantID, &dish.Name, &dish.Description,
		&dish.Price, &dish.Photo, &options, &dish.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &dish.Options); err != nil {
			return nil, fmt.Errorf("decode dish options: %w", err)
		}
	}
	return &dish, nil
}

const dishColumns = `id, restaurant_id, name, COALESCE(description, ''), price, COALESCE(photo, ''), COALESCE(options, '[]'), created_at`

func (r *PostgresRepository) CreateDish(dish *domain.Dish) error {
	options, err := json.Marshal(dish.Options)
	if err != nil {
		return fmt.Errorf("encode dish options: %w", err)
	}
	return r.DB.QueryRow(
		"INSERT INTO dishes (restaurant_id, name, description, price, photo, options) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at",
		dish.RestaurantID, dish.Name, dish.Description, dish.Price, dish.Photo, options,
	).Scan(&dish.ID, &dish.CreatedAt)
}

func (r *PostgresRepository) GetDish(id int) (*domain.Dish, error) {
	return scanDish(r.DB.QueryRow(
		"SELECT "+dishColumns+" FROM dishes WHERE id = $1", id))
}

func (r *PostgresRepository) GetDishWithRestaurant(id int) (*domain.Dish, *domain.Restaurant, error) {
	dish, err := r.GetDish(id)
	if err != nil {
		return nil, nil, err
	}
	rest, err := r.GetRestaurant(dish.RestaurantID)
	if err != nil {
		return nil, nil, err
	}
	return dish, rest, nil
}

func (r *PostgresRepository) UpdateDish(dish *domain.Dish) error {
	options, err := json.Marshal(dish.Options)
	if err != nil {
		return fmt.Errorf("encode dish options: %w", err)
	}
	_, err = r.DB.Exec(
		"UPDATE dishes SET name=$1, description=$2, price=$3, photo=$4, options=$5 WHERE id=$6",
		dish.Name, dish.Description, dish.Price, dish.Photo, options, dish.ID)
	return err
}

func (r *PostgresRepository) DeleteDish(id int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM dishes WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// CreateOrder writes the order and every item inside one transaction so a
// failing item never leaves a partial order behind.
func (r *PostgresRepository) CreateOrder(order *domain.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRow(`
		INSERT INTO orders (customer_id, restaurant_id, status, total)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, order.CustomerID, order.RestaurantID, string(order.Status), order.Total).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		options, err := json.Marshal(item.Options)
		if err != nil {
			return fmt.Errorf("encode item options: %w", err)
		}
		if err := tx.QueryRow(`
			INSERT INTO order_items (order_id, dish_id, options)
			VALUES ($1, $2, $3)
			RETURNING id
		`, order.ID, item.DishID, options).Scan(&item.ID); err != nil {
			return err
		}
		item.OrderID = order.ID
	}

	return tx.Commit()
}

const orderColumns = `id, customer_id, COALESCE(driver_id, 0), restaurant_id, status, total, created_at`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(&order.ID, &order.CustomerID, &order.DriverID, &order.RestaurantID,
		&order.Status, &order.Total, &order.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PostgresRepository) GetOrderWithRestaurant(id int) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRow(
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", id))
	if err != nil {
		return nil, err
	}

	rest, err := r.GetRestaurant(order.RestaurantID)
	if err != nil {
		return nil, err
	}
	order.Restaurant = rest

	rows, err := r.DB.Query(
		"SELECT id, order_id, dish_id, COALESCE(options, '[]') FROM order_items WHERE order_id = $1 ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		var options []byte
		if err := rows.Scan(&item.ID, &item.OrderID, &item.DishID, &options); err != nil {
			continue
		}
		if len(options) > 0 {
			json.Unmarshal(options, &item.Options)
		}
		order.Items = append(order.Items, item)
	}
	return order, rows.Err()
}

func (r *PostgresRepository) listOrders(query string, args ...any) ([]domain.Order, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			continue
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) ListOrdersByCustomer(customerID int, status *domain.OrderStatus) ([]domain.Order, error) {
	if status != nil {
		return r.listOrders(
			"SELECT "+orderColumns+" FROM orders WHERE customer_id = $1 AND status = $2 ORDER BY created_at DESC",
			customerID, string(*status))
	}
	return r.listOrders(
		"SELECT "+orderColumns+" FROM orders WHERE customer_id = $1 ORDER BY created_at DESC",
		customerID)
}

func (r *PostgresRepository) ListOrdersByDriver(driverID int, status *domain.OrderStatus) ([]domain.Order, error) {
	if status != nil {
		return r.listOrders(
			"SELECT "+orderColumns+" FROM orders WHERE driver_id = $1 AND status = $2 ORDER BY created_at DESC",
			driverID, string(*status))
	}
	return r.listOrders(
		"SELECT "+orderColumns+" FROM orders WHERE driver_id = $1 ORDER BY created_at DESC",
		driverID)
}

func (r *PostgresRepository) ListOrdersByOwner(ownerID int, status *domain.OrderStatus) ([]domain.Order, error) {
	if status != nil {
		return r.listOrders(`
			SELECT o.id, o.customer_id, COALESCE(o.driver_id, 0), o.restaurant_id, o.status, o.total, o.created_at
			FROM orders o
			JOIN restaurants r ON o.restaurant_id = r.id
			WHERE r.owner_id = $1 AND o.status = $2
			ORDER BY o.created_at DESC`, ownerID, string(*status))
	}
	return r.listOrders(`
		SELECT o.id, o.customer_id, COALESCE(o.driver_id, 0), o.restaurant_id, o.status, o.total, o.created_at
		FROM orders o
		JOIN restaurants r ON o.restaurant_id = r.id
		WHERE r.owner_id = $1
		ORDER BY o.created_at DESC`, ownerID)
}

func (r *PostgresRepository) UpdateOrderStatus(id int, from, to domain.OrderStatus) (int64, error) {
	result, err := r.DB.Exec(
		"UPDATE orders SET status = $1 WHERE id = $2 AND status = $3",
		string(to), id, string(from))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) AssignDriver(orderID, driverID int) (int64, error) {
	result, err := r.DB.Exec(
		"UPDATE orders SET driver_id = $1 WHERE id = $2 AND driver_id IS NULL",
		driverID, orderID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) SaveReceipt(orderID int, png []byte) error {
	_, err := r.DB.Exec("UPDATE orders SET receipt = $1 WHERE id = $2", png, orderID)
	return err
}

func (r *PostgresRepository) GetReceipt(orderID int) ([]byte, error) {
	var png []byte
	if err := r.DB.QueryRow("SELECT receipt FROM orders WHERE id = $1", orderID).Scan(&png); err != nil {
		return nil, err
	}
	return png, nil
}

func (r *PostgresRepository) CreatePayment(payment *domain.Payment) error {
	return r.DB.QueryRow(
		"INSERT INTO payments (transaction_id, user_id, restaurant_id) VALUES ($1, $2, $3) RETURNING id, created_at",
		payment.TransactionID, payment.UserID, payment.RestaurantID,
	).Scan(&payment.ID, &payment.CreatedAt)
}

func (r *PostgresRepository) ListPaymentsByUser(userID int) ([]domain.Payment, error) {
	rows, err := r.DB.Query(
		"SELECT id, transaction_id, user_id, restaurant_id, created_at FROM payments WHERE user_id = $1 ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(&payment.ID, &payment.TransactionID, &payment.UserID, &payment.RestaurantID, &payment.CreatedAt); err != nil {
			continue
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			cover_image TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			owner_id INTEGER NOT NULL REFERENCES users(id),
			category_id INTEGER REFERENCES categories(id),
			name TEXT NOT NULL,
			address TEXT,
			cover_image TEXT,
			is_promoted BOOLEAN NOT NULL DEFAULT FALSE,
			promoted_until TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS dishes (
			id SERIAL PRIMARY KEY,
			restaurant_id INTEGER NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC NOT NULL,
			photo TEXT,
			options JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			customer_id INTEGER NOT NULL REFERENCES users(id),
			driver_id INTEGER REFERENCES users(id),
			restaurant_id INTEGER NOT NULL REFERENCES restaurants(id),
			status TEXT NOT NULL DEFAULT 'Pending',
			total NUMERIC NOT NULL DEFAULT 0,
			receipt BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			dish_id INTEGER NOT NULL REFERENCES dishes(id),
			options JSONB
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id SERIAL PRIMARY KEY,
			transaction_id TEXT NOT NULL,
			user_id INTEGER NOT NULL REFERENCES users(id),
			restaurant_id INTEGER NOT NULL REFERENCES restaurants(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
