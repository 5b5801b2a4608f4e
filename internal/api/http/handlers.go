package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"eats-backend/internal/domain"
	"eats-backend/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Users    service.UserServiceInterface
	Catalog  service.CatalogServiceInterface
	Orders   service.OrderServiceInterface
	Payments service.PaymentServiceInterface
	Bus      service.Bus
	Signer   service.TokenSigner
}

func NewHandler(users service.UserServiceInterface, catalog service.CatalogServiceInterface, orders service.OrderServiceInterface, payments service.PaymentServiceInterface, bus service.Bus, signer service.TokenSigner) *Handler {
	return &Handler{
		Users:    users,
		Catalog:  catalog,
		Orders:   orders,
		Payments: payments,
		Bus:      bus,
		Signer:   signer,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/users", h.createAccount).Methods("POST")
	r.HandleFunc("/api/users/login", h.login).Methods("POST")
	r.HandleFunc("/api/users/me", h.RequireRoles(h.me, RoleAny)).Methods("GET")
	r.HandleFunc("/api/users/me", h.RequireRoles(h.editProfile, RoleAny)).Methods("PUT")
	r.HandleFunc("/api/users/{id}", h.RequireRoles(h.userProfile, RoleAny)).Methods("GET")

	r.HandleFunc("/api/restaurants", h.RequireRoles(h.createRestaurant, domain.RoleOwner)).Methods("POST")
	r.HandleFunc("/api/restaurants", h.restaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/mine", h.RequireRoles(h.myRestaurants, domain.RoleOwner)).Methods("GET")
	r.HandleFunc("/api/restaurants/search", h.searchRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.restaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.RequireRoles(h.updateRestaurant, domain.RoleOwner)).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}", h.RequireRoles(h.deleteRestaurant, domain.RoleOwner)).Methods("DELETE")

	r.HandleFunc("/api/categories", h.allCategories).Methods("GET")
	r.HandleFunc("/api/categories/{slug}", h.category).Methods("GET")

	r.HandleFunc("/api/dishes", h.RequireRoles(h.createDish, domain.RoleOwner)).Methods("POST")
	r.HandleFunc("/api/dishes/{id}", h.RequireRoles(h.updateDish, domain.RoleOwner)).Methods("PUT")
	r.HandleFunc("/api/dishes/{id}", h.RequireRoles(h.deleteDish, domain.RoleOwner)).Methods("DELETE")

	r.HandleFunc("/api/orders", h.RequireRoles(h.createOrder, domain.RoleClient)).Methods("POST")
	r.HandleFunc("/api/orders", h.RequireRoles(h.getOrders, RoleAny)).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.RequireRoles(h.getOrder, RoleAny)).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.RequireRoles(h.updateOrder, RoleAny)).Methods("PUT")
	r.HandleFunc("/api/orders/{id}/take", h.RequireRoles(h.takeOrder, domain.RoleDelivery)).Methods("POST")
	r.HandleFunc("/api/orders/{id}/receipt", h.RequireRoles(h.orderReceipt, RoleAny)).Methods("GET")

	r.HandleFunc("/api/payments", h.RequireRoles(h.createPayment, domain.RoleOwner)).Methods("POST")
	r.HandleFunc("/api/payments", h.RequireRoles(h.getPayments, domain.RoleOwner)).Methods("GET")

	r.HandleFunc("/api/subscriptions/pending-orders", h.RequireRoles(h.pendingOrders, domain.RoleOwner)).Methods("GET")
	r.HandleFunc("/api/subscriptions/cooked-orders", h.RequireRoles(h.cookedOrders, domain.RoleDelivery)).Methods("GET")
	r.HandleFunc("/api/subscriptions/order-updates", h.RequireRoles(h.orderUpdates, RoleAny)).Methods("GET")
}

type envelope struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func respond(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func ok(w http.ResponseWriter, data any) {
	respond(w, http.StatusOK, envelope{Ok: true, Data: data})
}

// fail maps a service error to the uniform envelope: user-facing sentinel
// messages pass through verbatim, anything else collapses to the operation's
// generic fallback so internal detail never leaks.
func fail(w http.ResponseWriter, err error, fallback string) {
	message := fallback
	if service.IsUserFacing(err) {
		message = err.Error()
	}
	respond(w, http.StatusOK, envelope{Ok: false, Error: message})
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "eats-backend",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string          `json:"email"`
		Password string          `json:"password"`
		Role     domain.UserRole `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if input.Email == "" || input.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}
	switch input.Role {
	case domain.RoleClient, domain.RoleOwner, domain.RoleDelivery:
	default:
		http.Error(w, "Unknown role", http.StatusBadRequest)
		return
	}

	if err := h.Users.CreateAccount(input.Email, input.Password, input.Role); err != nil {
		fail(w, err, "Couldn't create account")
		return
	}
	respond(w, http.StatusCreated, envelope{Ok: true})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tokenString, err := h.Users.Login(input.Email, input.Password)
	if err != nil {
		fail(w, err, "Could not log in.")
		return
	}
	ok(w, map[string]string{"token": tokenString})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	ok(w, user)
}

func (h *Handler) userProfile(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	user, err := h.Users.Profile(id)
	if err != nil {
		fail(w, err, "User Not Found")
		return
	}
	ok(w, user)
}

func (h *Handler) editProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	var input struct {
		Email    string `json:"email,omitempty"`
		Password string `json:"password,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Users.EditProfile(user.ID, input.Email, input.Password); err != nil {
		fail(w, err, "Could not update profile.")
		return
	}
	ok(w, nil)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	var input service.CreateRestaurantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Catalog.CreateRestaurant(user, input); err != nil {
		fail(w, err, "Could not create restaurant.")
		return
	}
	respond(w, http.StatusCreated, envelope{Ok: true})
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var input service.UpdateRestaurantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input.RestaurantID = id

	if err := h.Catalog.UpdateRestaurant(user, input); err != nil {
		fail(w, err, "Could not update Restaurant.")
		return
	}
	ok(w, nil)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Catalog.DeleteRestaurant(user, id); err != nil {
		fail(w, err, "Could not delete Restaurant.")
		return
	}
	ok(w, nil)
}

func (h *Handler) myRestaurants(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	restaurants, err := h.Catalog.MyRestaurants(user)
	if err != nil {
		fail(w, err, "Could not find restaurants.")
		return
	}
	ok(w, restaurants)
}

func (h *Handler) restaurants(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	result, err := h.Catalog.Restaurants(page)
	if err != nil {
		fail(w, err, "Could not load restaurants.")
		return
	}
	ok(w, result)
}

func (h *Handler) restaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	result, err := h.Catalog.Restaurant(id)
	if err != nil {
		fail(w, err, "Could not find restaurant.")
		return
	}
	ok(w, result)
}

func (h *Handler) searchRestaurants(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	result, err := h.Catalog.SearchRestaurants(query, page)
	if err != nil {
		fail(w, err, "Could not search Restaurant.")
		return
	}
	ok(w, result)
}

func (h *Handler) allCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.AllCategories()
	if err != nil {
		fail(w, err, "Could not load categories.")
		return
	}
	ok(w, categories)
}

func (h *Handler) category(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	result, err := h.Catalog.Category(slug, page)
	if err != nil {
		fail(w, err, "Could not load Category.")
		return
	}
	ok(w, result)
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	var input service.CreateDishInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Catalog.CreateDish(user, input); err != nil {
		fail(w, err, "Could not create Dish.")
		return
	}
	respond(w, http.StatusCreated, envelope{Ok: true})
}

func (h *Handler) updateDish(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var input service.UpdateDishInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input.DishID = id

	if err := h.Catalog.UpdateDish(user, input); err != nil {
		fail(w, err, "Could not update Dish.")
		return
	}
	ok(w, nil)
}

func (h *Handler) deleteDish(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Catalog.DeleteDish(user, id); err != nil {
		fail(w, err, "Could not delete Dish.")
		return
	}
	ok(w, nil)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	var input service.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if input.RestaurantID <= 0 || len(input.Items) == 0 {
		http.Error(w, "Invalid order payload", http.StatusBadRequest)
		return
	}

	if err := h.Orders.CreateOrder(r.Context(), user, input); err != nil {
		fail(w, err, "Could not create order.")
		return
	}
	ordersCreated.Inc()
	respond(w, http.StatusCreated, envelope{Ok: true})
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var status *domain.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		candidate := domain.OrderStatus(raw)
		if !domain.ValidStatus(candidate) {
			http.Error(w, "Unknown order status", http.StatusBadRequest)
			return
		}
		status = &candidate
	}

	orders, err := h.Orders.GetOrders(user, status)
	if err != nil {
		fail(w, err, "Could not get orders.")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	ok(w, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	order, err := h.Orders.GetOrder(user, id)
	if err != nil {
		fail(w, err, "Could not get order.")
		return
	}
	ok(w, order)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var input struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Orders.UpdateOrder(r.Context(), user, id, input.Status); err != nil {
		fail(w, err, "Could not update order.")
		return
	}
	ok(w, nil)
}

func (h *Handler) takeOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Orders.TakeOrder(r.Context(), user, id); err != nil {
		fail(w, err, "Could not take order.")
		return
	}
	ok(w, nil)
}

func (h *Handler) orderReceipt(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	png, err := h.Orders.OrderReceipt(user, id)
	if err != nil {
		fail(w, err, "Could not get order.")
		return
	}
	if len(png) == 0 {
		http.Error(w, "Receipt not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	var input service.CreatePaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Payments.CreatePayment(user, input); err != nil {
		fail(w, err, "Could not create payment.")
		return
	}
	respond(w, http.StatusCreated, envelope{Ok: true})
}

func (h *Handler) getPayments(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	payments, err := h.Payments.GetPayments(user)
	if err != nil {
		fail(w, err, "Could not load payments.")
		return
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	ok(w, payments)
}
