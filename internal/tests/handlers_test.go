package tests

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "eats-backend/internal/api/http"
	"eats-backend/internal/domain"
	"eats-backend/internal/mocks"
	"eats-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type handlerMocks struct {
	users    *mocks.UserServiceInterface
	catalog  *mocks.CatalogServiceInterface
	orders   *mocks.OrderServiceInterface
	payments *mocks.PaymentServiceInterface
	bus      *mocks.Bus
	signer   *mocks.TokenSigner
}

func setupTestRouter(t *testing.T) (*mux.Router, *handlerMocks) {
	m := &handlerMocks{
		users:    mocks.NewUserServiceInterface(t),
		catalog:  mocks.NewCatalogServiceInterface(t),
		orders:   mocks.NewOrderServiceInterface(t),
		payments: mocks.NewPaymentServiceInterface(t),
		bus:      mocks.NewBus(t),
		signer:   mocks.NewTokenSigner(t),
	}
	handler := httpapi.NewHandler(m.users, m.catalog, m.orders, m.payments, m.bus, m.signer)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, m
}

// expectAuth wires the token "good" to the given user through the middleware.
func (m *handlerMocks) expectAuth(user *domain.User) {
	m.signer.On("Verify", "good").Return(user.ID, nil).Once()
	m.users.On("Profile", user.ID).Return(user, nil).Once()
}

func TestHandler_healthCheck(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"healthy"`)
}

func TestHandler_auth(t *testing.T) {
	client := &domain.User{ID: 1, Role: domain.RoleClient}

	tests := []struct {
		name         string
		prepareMocks func(m *handlerMocks)
		token        string
		expectedCode int
	}{
		{
			name:         "missing_token",
			prepareMocks: func(m *handlerMocks) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "invalid_token",
			prepareMocks: func(m *handlerMocks) {
				m.signer.On("Verify", "bad").Return(0, errors.New("invalid token")).Once()
			},
			token:        "bad",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "wrong_role",
			prepareMocks: func(m *handlerMocks) {
				m.expectAuth(client)
			},
			token:        "good",
			expectedCode: http.StatusForbidden,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)

			// Owner-only route, exercised below with a Client (or no) token.
			req := httptest.NewRequest("POST", "/api/restaurants", bytes.NewBufferString(`{}`))
			if testCase.token != "" {
				req.Header.Set("Authorization", "Bearer "+testCase.token)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_createAccount(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		prepareMocks func(m *handlerMocks)
		expectedCode int
		expectedBody string
	}{
		{
			name:    "success",
			payload: `{"email":"client@eats.dev","password":"secret","role":"Client"}`,
			prepareMocks: func(m *handlerMocks) {
				m.users.On("CreateAccount", "client@eats.dev", "secret", domain.RoleClient).Return(nil).Once()
			},
			expectedCode: http.StatusCreated,
			expectedBody: `"ok":true`,
		},
		{
			name:    "duplicate_email_passes_message_through",
			payload: `{"email":"taken@eats.dev","password":"secret","role":"Client"}`,
			prepareMocks: func(m *handlerMocks) {
				m.users.On("CreateAccount", "taken@eats.dev", "secret", domain.RoleClient).
					Return(service.ErrEmailTaken).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"error":"There is a user with that email already"`,
		},
		{
			name:         "unknown_role",
			payload:      `{"email":"x@eats.dev","password":"secret","role":"Admin"}`,
			prepareMocks: func(m *handlerMocks) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing_fields",
			payload:      `{"email":"","password":"","role":"Client"}`,
			prepareMocks: func(m *handlerMocks) {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)

			req := httptest.NewRequest("POST", "/api/users", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_login(t *testing.T) {
	router, m := setupTestRouter(t)

	m.users.On("Login", "client@eats.dev", "secret").Return("signed-token", nil).Once()

	req := httptest.NewRequest("POST", "/api/users/login", bytes.NewBufferString(`{"email":"client@eats.dev","password":"secret"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"token":"signed-token"`)
}

func TestHandler_createOrder(t *testing.T) {
	client := &domain.User{ID: 1, Role: domain.RoleClient}

	tests := []struct {
		name         string
		payload      string
		prepareMocks func(m *handlerMocks)
		expectedCode int
		expectedBody string
	}{
		{
			name:    "success",
			payload: `{"restaurant_id":5,"items":[{"dish_id":11}]}`,
			prepareMocks: func(m *handlerMocks) {
				m.expectAuth(client)
				m.orders.On("CreateOrder", mock.Anything, client, service.CreateOrderInput{
					RestaurantID: 5,
					Items:        []service.CreateOrderItemInput{{DishID: 11}},
				}).Return(nil).Once()
			},
			expectedCode: http.StatusCreated,
			expectedBody: `"ok":true`,
		},
		{
			name:    "dish_not_found_is_user_facing",
			payload: `{"restaurant_id":5,"items":[{"dish_id":404}]}`,
			prepareMocks: func(m *handlerMocks) {
				m.expectAuth(client)
				m.orders.On("CreateOrder", mock.Anything, client, mock.Anything).
					Return(service.ErrDishNotFound).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"error":"Dish not found."`,
		},
		{
			name:    "internal_error_is_hidden",
			payload: `{"restaurant_id":5,"items":[{"dish_id":11}]}`,
			prepareMocks: func(m *handlerMocks) {
				m.expectAuth(client)
				m.orders.On("CreateOrder", mock.Anything, client, mock.Anything).
					Return(errors.New("pq: connection refused")).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"error":"Could not create order."`,
		},
		{
			name:    "empty_items_rejected",
			payload: `{"restaurant_id":5,"items":[]}`,
			prepareMocks: func(m *handlerMocks) {
				m.expectAuth(client)
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)

			req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(testCase.payload))
			req.Header.Set("Authorization", "Bearer good")
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_getOrders(t *testing.T) {
	owner := &domain.User{ID: 3, Role: domain.RoleOwner}

	t.Run("status_filter_passed_through", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.expectAuth(owner)
		cooked := domain.StatusCooked
		m.orders.On("GetOrders", owner, &cooked).Return([]domain.Order{{ID: 7, Status: cooked}}, nil).Once()

		req := httptest.NewRequest("GET", "/api/orders?status=Cooked", nil)
		req.Header.Set("Authorization", "Bearer good")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"id":7`)
	})

	t.Run("unknown_status_rejected", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.expectAuth(owner)

		req := httptest.NewRequest("GET", "/api/orders?status=Burnt", nil)
		req.Header.Set("Authorization", "Bearer good")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("empty_list_not_null", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.expectAuth(owner)
		m.orders.On("GetOrders", owner, (*domain.OrderStatus)(nil)).Return(nil, nil).Once()

		req := httptest.NewRequest("GET", "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer good")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"data":[]`)
	})
}

func TestHandler_takeOrder(t *testing.T) {
	driver := &domain.User{ID: 2, Role: domain.RoleDelivery}
	router, m := setupTestRouter(t)

	m.expectAuth(driver)
	m.orders.On("TakeOrder", mock.Anything, driver, 7).Return(service.ErrOrderTaken).Once()

	req := httptest.NewRequest("POST", "/api/orders/7/take", nil)
	req.Header.Set("Authorization", "Bearer good")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"error":"Order already has a driver."`)
}

func TestHandler_pendingOrdersStream(t *testing.T) {
	owner := &domain.User{ID: 3, Role: domain.RoleOwner}
	router, m := setupTestRouter(t)

	events := make(chan domain.OrderEvent, 2)
	events <- domain.OrderEvent{Channel: domain.NewPendingOrder, OrderID: 7, OwnerID: 3, Status: domain.StatusPending}
	events <- domain.OrderEvent{Channel: domain.NewPendingOrder, OrderID: 8, OwnerID: 9, Status: domain.StatusPending}
	close(events)

	m.expectAuth(owner)
	m.bus.On("Subscribe", mock.Anything, domain.NewPendingOrder).
		Return((<-chan domain.OrderEvent)(events), func() {}, nil).Once()

	req := httptest.NewRequest("GET", "/api/subscriptions/pending-orders", nil)
	req.Header.Set("Authorization", "Bearer good")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/event-stream", recorder.Header().Get("Content-Type"))
	// The stream keeps the owner's own order and drops the other owner's.
	assert.Contains(t, recorder.Body.String(), `"order_id":7`)
	assert.NotContains(t, recorder.Body.String(), `"order_id":8`)
}

func TestHandler_orderUpdatesStream(t *testing.T) {
	client := &domain.User{ID: 1, Role: domain.RoleClient}

	t.Run("requires_order_id", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.expectAuth(client)

		req := httptest.NewRequest("GET", "/api/subscriptions/order-updates", nil)
		req.Header.Set("Authorization", "Bearer good")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("filters_to_own_order", func(t *testing.T) {
		router, m := setupTestRouter(t)

		events := make(chan domain.OrderEvent, 3)
		events <- domain.OrderEvent{Channel: domain.NewOrderUpdate, OrderID: 7, CustomerID: 1, Status: domain.StatusCooking}
		events <- domain.OrderEvent{Channel: domain.NewOrderUpdate, OrderID: 7, CustomerID: 9, Status: domain.StatusCooked}
		events <- domain.OrderEvent{Channel: domain.NewOrderUpdate, OrderID: 8, CustomerID: 1, Status: domain.StatusCooking}
		close(events)

		m.expectAuth(client)
		m.bus.On("Subscribe", mock.Anything, domain.NewOrderUpdate).
			Return((<-chan domain.OrderEvent)(events), func() {}, nil).Once()

		req := httptest.NewRequest("GET", "/api/subscriptions/order-updates?orderId=7", nil)
		req.Header.Set("Authorization", "Bearer good")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"Cooking"`)
		assert.NotContains(t, recorder.Body.String(), `"order_id":8`)
	})
}
