package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/shelfwise/bookstore/internal/auth"
	"github.com/shelfwise/bookstore/internal/cache"
	"github.com/shelfwise/bookstore/internal/checkout"
	"github.com/shelfwise/bookstore/internal/repository"
	mock_server "github.com/shelfwise/bookstore/internal/server/mocks"
)

type serverFixture struct {
	books      *mock_server.MockBookService
	authors    *mock_server.MockAuthorService
	categories *mock_server.MockCategoryService
	customers  *mock_server.MockAccountService
	admins     *mock_server.MockAccountService
	cart       *mock_server.MockCartService
	cache      *cache.BookCache
	signer     *auth.Signer
	srv        *Server
}

func newServerFixture(t *testing.T) *serverFixture {
	ctrl := gomock.NewController(t)
	f := &serverFixture{
		books:      mock_server.NewMockBookService(ctrl),
		authors:    mock_server.NewMockAuthorService(ctrl),
		categories: mock_server.NewMockCategoryService(ctrl),
		customers:  mock_server.NewMockAccountService(ctrl),
		admins:     mock_server.NewMockAccountService(ctrl),
		cart:       mock_server.NewMockCartService(ctrl),
		signer:     auth.NewSigner("test-secret", time.Hour),
	}
	f.cache = cache.NewBookCache(f.books)
	f.srv = New(Deps{
		Books:      f.books,
		Authors:    f.authors,
		Categories: f.categories,
		Customers:  f.customers,
		Admins:     f.admins,
		Cart:       f.cart,
		BookCache:  f.cache,
		Signer:     f.signer,
		Logger:     zap.NewNop(),
	})
	return f
}

func (f *serverFixture) authCookie(t *testing.T, userID int64, role auth.UserType) *http.Cookie {
	t.Helper()
	token, err := f.signer.Issue(userID, role)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func strPtr(s string) *string { return &s }

func TestLogin(t *testing.T) {
	f := newServerFixture(t)

	customer := &repository.Account{
		ID:        42,
		FirstName: "Rita",
		Email:     "rita@example.com",
		CreatedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	}
	admin := &repository.Account{ID: 7, FirstName: "Sam", Email: "sam@example.com"}

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func()
		expectedStatus int
		expectedBody   string
		expectCookie   bool
	}{
		{
			name:        "customer login",
			requestBody: map[string]interface{}{"email": "rita@example.com", "password": "s3cret"},
			setupMocks: func() {
				f.customers.EXPECT().
					Authenticate(gomock.Any(), "rita@example.com", "s3cret").
					Return(customer, nil)
				f.customers.EXPECT().UserType().Return(auth.UserTypeCustomer)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"user_type":"customer"`,
			expectCookie:   true,
		},
		{
			name:        "falls through to admins",
			requestBody: map[string]interface{}{"email": "sam@example.com", "password": "s3cret"},
			setupMocks: func() {
				f.customers.EXPECT().
					Authenticate(gomock.Any(), "sam@example.com", "s3cret").
					Return(nil, repository.ErrObjectNotFound)
				f.admins.EXPECT().
					Authenticate(gomock.Any(), "sam@example.com", "s3cret").
					Return(admin, nil)
				f.admins.EXPECT().UserType().Return(auth.UserTypeAdmin)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"user_type":"admin"`,
			expectCookie:   true,
		},
		{
			name:        "wrong password",
			requestBody: map[string]interface{}{"email": "rita@example.com", "password": "nope"},
			setupMocks: func() {
				f.customers.EXPECT().
					Authenticate(gomock.Any(), "rita@example.com", "nope").
					Return(nil, auth.ErrUnauthorized)
				f.admins.EXPECT().
					Authenticate(gomock.Any(), "rita@example.com", "nope").
					Return(nil, auth.ErrUnauthorized)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"invalid email or password"`,
		},
		{
			name:        "database failure",
			requestBody: map[string]interface{}{"email": "rita@example.com", "password": "s3cret"},
			setupMocks: func() {
				f.customers.EXPECT().
					Authenticate(gomock.Any(), "rita@example.com", "s3cret").
					Return(nil, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"login failed"`,
		},
		{
			name:           "missing password",
			requestBody:    map[string]interface{}{"email": "rita@example.com"},
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"email and password are required"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			f.srv.login(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.expectedBody)

			var sessionCookie *http.Cookie
			for _, c := range rr.Result().Cookies() {
				if c.Name == auth.CookieName {
					sessionCookie = c
				}
			}
			if tc.expectCookie {
				require.NotNil(t, sessionCookie)
				assert.NotEmpty(t, sessionCookie.Value)
				assert.True(t, sessionCookie.HttpOnly)
			} else {
				assert.Nil(t, sessionCookie)
			}
		})
	}
}

func TestLoginNeverEchoesPassword(t *testing.T) {
	f := newServerFixture(t)
	f.customers.EXPECT().
		Authenticate(gomock.Any(), "rita@example.com", "s3cret").
		Return(&repository.Account{ID: 42, Email: "rita@example.com", Password: "$2a$10$hash"}, nil)
	f.customers.EXPECT().UserType().Return(auth.UserTypeCustomer)

	body := bytes.NewBufferString(`{"email":"rita@example.com","password":"s3cret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	rr := httptest.NewRecorder()

	f.srv.login(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "hash")
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestGetBook(t *testing.T) {
	f := newServerFixture(t)
	router := f.srv.Router()

	published := time.Date(1961, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "book found",
			url:  "/api/books/7",
			setupMocks: func() {
				f.books.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&repository.Book{
					ID:            7,
					Title:         "Solaris",
					Price:         12.50,
					Stock:         3,
					AuthorID:      2,
					CategoryID:    1,
					PublishedDate: &published,
					AuthorName:    strPtr("Stanislaw Lem"),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"author":"Stanislaw Lem"`,
		},
		{
			name: "book not found",
			url:  "/api/books/99",
			setupMocks: func() {
				f.books.EXPECT().GetByID(gomock.Any(), int64(99)).
					Return(nil, repository.ErrObjectNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"book not found"}`,
		},
		{
			name:           "non numeric id does not match the route",
			url:            "/api/books/abc",
			setupMocks:     func() {},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.Contains(t, rr.Body.String(), tc.expectedBody)
			}
		})
	}
}

func TestListBooksUsesCache(t *testing.T) {
	f := newServerFixture(t)
	router := f.srv.Router()

	catalog := []*repository.Book{
		{ID: 1, Title: "Solaris", Price: 12.50},
		{ID: 2, Title: "The Cyberiad", Price: 9.99},
	}

	// One List call loads the cache; subsequent requests must not hit
	// the repository again.
	f.books.EXPECT().List(gomock.Any()).Return(catalog, nil)
	require.NoError(t, f.cache.LoadInitialData(context.Background()))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var payload []bookPayload
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
		require.Len(t, payload, 2)
		assert.Equal(t, "Solaris", payload[0].Title)
		assert.Equal(t, "The Cyberiad", payload[1].Title)
	}
}

func TestListBooksFallsBackToRepository(t *testing.T) {
	f := newServerFixture(t)
	router := f.srv.Router()

	f.books.EXPECT().List(gomock.Any()).Return([]*repository.Book{
		{ID: 1, Title: "Solaris"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"title":"Solaris"`)
}

func TestAdminGate(t *testing.T) {
	f := newServerFixture(t)
	router := f.srv.Router()

	tests := []struct {
		name           string
		cookie         *http.Cookie
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "no cookie",
			cookie:         nil,
			setupMocks:     func() {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"authentication required"}`,
		},
		{
			name:           "garbage token",
			cookie:         &http.Cookie{Name: auth.CookieName, Value: "not-a-jwt"},
			setupMocks:     func() {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid or expired token"}`,
		},
		{
			name:           "customer is not admin",
			cookie:         f.authCookie(t, 42, auth.UserTypeCustomer),
			setupMocks:     func() {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"error":"admin access required"}`,
		},
		{
			name:   "admin deletes and the cache reloads",
			cookie: f.authCookie(t, 7, auth.UserTypeAdmin),
			setupMocks: func() {
				f.books.EXPECT().Delete(gomock.Any(), int64(7)).Return(nil)
				f.books.EXPECT().List(gomock.Any()).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"book deleted"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodDelete, "/api/books/7", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestCreateBook(t *testing.T) {
	f := newServerFixture(t)
	router := f.srv.Router()
	adminCookie := f.authCookie(t, 7, auth.UserTypeAdmin)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "book created",
			requestBody: map[string]interface{}{
				"title":          "Solaris",
				"price":          12.50,
				"stock":          3,
				"author_id":      2,
				"category_id":    1,
				"published_date": "1961-06-01",
			},
			setupMocks: func() {
				f.books.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, book *repository.Book) (int64, error) {
						assert.Equal(t, "Solaris", book.Title)
						assert.Equal(t, 12.50, book.Price)
						require.NotNil(t, book.PublishedDate)
						assert.Equal(t, 1961, book.PublishedDate.Year())
						return 12, nil
					})
				f.books.EXPECT().List(gomock.Any()).Return(nil, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":12`,
		},
		{
			name:           "missing title",
			requestBody:    map[string]interface{}{"price": 12.50},
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"title is required"`,
		},
		{
			name: "bad published date",
			requestBody: map[string]interface{}{
				"title":          "Solaris",
				"published_date": "06/01/1961",
			},
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid published_date, use YYYY-MM-DD"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "/api/books", bytes.NewReader(body))
			req.AddCookie(adminCookie)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.expectedBody)
		})
	}
}

func TestCustomerRegistrationIsPublic(t *testing.T) {
	f := newServerFixture(t)
	router := f.srv.Router()

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "registration succeeds without a session",
			requestBody: map[string]interface{}{
				"first_name": "Rita",
				"email":      "rita@example.com",
				"password":   "s3cret",
			},
			setupMocks: func() {
				f.customers.EXPECT().
					Create(gomock.Any(), gomock.Any(), "s3cret").
					DoAndReturn(func(_ context.Context, account *repository.Account, _ string) (int64, error) {
						assert.Equal(t, "rita@example.com", account.Email)
						assert.Empty(t, account.Password)
						return 42, nil
					})
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":42`,
		},
		{
			name: "missing password",
			requestBody: map[string]interface{}{
				"first_name": "Rita",
				"email":      "rita@example.com",
			},
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"first_name, email and password are required"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.expectedBody)
		})
	}
}

func TestProfile(t *testing.T) {
	f := newServerFixture(t)
	router := f.srv.Router()

	t.Run("customer profile", func(t *testing.T) {
		f.customers.EXPECT().GetByID(gomock.Any(), int64(42)).
			Return(&repository.Account{ID: 42, FirstName: "Rita", Email: "rita@example.com"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.AddCookie(f.authCookie(t, 42, auth.UserTypeCustomer))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"email":"rita@example.com"`)
		assert.Contains(t, rr.Body.String(), `"user_type":"customer"`)
	})

	t.Run("admin profile uses the admin repo", func(t *testing.T) {
		f.admins.EXPECT().GetByID(gomock.Any(), int64(7)).
			Return(&repository.Account{ID: 7, FirstName: "Sam", Email: "sam@example.com"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.AddCookie(f.authCookie(t, 7, auth.UserTypeAdmin))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"user_type":"admin"`)
	})

	t.Run("no session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAddToCart(t *testing.T) {
	f := newServerFixture(t)
	router := f.srv.Router()
	customerCookie := f.authCookie(t, 42, auth.UserTypeCustomer)

	t.Run("quantity defaults to one", func(t *testing.T) {
		f.cart.EXPECT().
			AddToCart(gomock.Any(), auth.Context{UserID: 42, UserType: auth.UserTypeCustomer}, int64(7), 1).
			Return([]checkout.CartItem{{ID: 7, Title: "Solaris", Quantity: 1}}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/cart/add", bytes.NewBufferString(`{"book_id":7}`))
		req.AddCookie(customerCookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"added to cart"`)
		assert.Contains(t, rr.Body.String(), `"title":"Solaris"`)
	})

	t.Run("unknown book", func(t *testing.T) {
		f.cart.EXPECT().
			AddToCart(gomock.Any(), gomock.Any(), int64(99), 2).
			Return(nil, checkout.ErrItemNotFound)

		req := httptest.NewRequest(http.MethodPost, "/api/cart/add", bytes.NewBufferString(`{"book_id":99,"quantity":2}`))
		req.AddCookie(customerCookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCheckoutCart(t *testing.T) {
	f := newServerFixture(t)
	router := f.srv.Router()
	customerCookie := f.authCookie(t, 42, auth.UserTypeCustomer)

	checkoutBody := `{
		"shippingAddress": {"name": "Rita", "street": "1 Main St", "city": "Springfield", "email": "rita@example.com"},
		"paymentMethod": "card"
	}`

	tests := []struct {
		name           string
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "order placed",
			setupMocks: func() {
				f.cart.EXPECT().
					Checkout(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, ac auth.Context, req checkout.Request) (*checkout.Result, error) {
						assert.Equal(t, int64(42), ac.UserID)
						assert.Equal(t, "card", req.PaymentMethod)
						assert.Equal(t, "Rita", req.ShippingAddress.Name)
						return &checkout.Result{
							Order: checkout.Order{
								ID:          "1757500000000123",
								OrderNumber: "ORD-20260830-120000-123",
								Status:      "processing",
								Total:       33.49,
							},
							MailStatus: checkout.MailStatusQueued,
						}, nil
					})
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"mail_status":"queued"`,
		},
		{
			name: "outbox insert failed but the order stands",
			setupMocks: func() {
				f.cart.EXPECT().
					Checkout(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&checkout.Result{
						Order:      checkout.Order{OrderNumber: "ORD-20260830-120001-004"},
						MailStatus: checkout.MailStatusQueueFailed,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"mail_status":"queue_failed"`,
		},
		{
			name: "empty cart",
			setupMocks: func() {
				f.cart.EXPECT().
					Checkout(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, checkout.ErrEmptyCart)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error"`,
		},
		{
			name: "stock conflict",
			setupMocks: func() {
				f.cart.EXPECT().
					Checkout(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, checkout.ErrInsufficientStock)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error"`,
		},
		{
			name: "item deleted mid session",
			setupMocks: func() {
				f.cart.EXPECT().
					Checkout(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, checkout.ErrItemNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error"`,
		},
		{
			name: "unexpected failure",
			setupMocks: func() {
				f.cart.EXPECT().
					Checkout(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("tx aborted"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"checkout failed"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodPost, "/api/cart/checkout", bytes.NewBufferString(checkoutBody))
			req.AddCookie(customerCookie)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.expectedBody)
		})
	}
}

func TestGetOrder(t *testing.T) {
	f := newServerFixture(t)
	router := f.srv.Router()
	customerCookie := f.authCookie(t, 42, auth.UserTypeCustomer)

	t.Run("order found", func(t *testing.T) {
		f.cart.EXPECT().
			OrderByID(gomock.Any(), gomock.Any(), "1757500000000123").
			Return(&checkout.Order{ID: "1757500000000123", OrderNumber: "ORD-20260830-120000-123"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/1757500000000123", nil)
		req.AddCookie(customerCookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"orderNumber":"ORD-20260830-120000-123"`)
	})

	t.Run("order not found", func(t *testing.T) {
		f.cart.EXPECT().
			OrderByID(gomock.Any(), gomock.Any(), "missing").
			Return(nil, repository.ErrObjectNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/missing", nil)
		req.AddCookie(customerCookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"order not found"}`, rr.Body.String())
	})
}

func TestLogout(t *testing.T) {
	f := newServerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rr := httptest.NewRecorder()

	f.srv.logout(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var cleared *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.CookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
