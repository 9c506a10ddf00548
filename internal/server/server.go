package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/shelfwise/bookstore/internal/auth"
	"github.com/shelfwise/bookstore/internal/cache"
	"github.com/shelfwise/bookstore/internal/checkout"
	"github.com/shelfwise/bookstore/internal/repository"
)

//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server

type BookService interface {
	List(ctx context.Context) ([]*repository.Book, error)
	GetByID(ctx context.Context, id int64) (*repository.Book, error)
	Create(ctx context.Context, book *repository.Book) (int64, error)
	Update(ctx context.Context, book *repository.Book) error
	Delete(ctx context.Context, id int64) error
}

type AuthorService interface {
	List(ctx context.Context) ([]*repository.Author, error)
	GetByID(ctx context.Context, id int64) (*repository.Author, error)
	Create(ctx context.Context, author *repository.Author) (int64, error)
	Update(ctx context.Context, author *repository.Author) error
	Delete(ctx context.Context, id int64) error
}

type CategoryService interface {
	List(ctx context.Context) ([]*repository.Category, error)
	GetByID(ctx context.Context, id int64) (*repository.Category, error)
	Create(ctx context.Context, category *repository.Category) (int64, error)
	Update(ctx context.Context, category *repository.Category) error
	Delete(ctx context.Context, id int64) error
}

type AccountService interface {
	List(ctx context.Context) ([]*repository.Account, error)
	GetByID(ctx context.Context, id int64) (*repository.Account, error)
	Create(ctx context.Context, account *repository.Account, plainPassword string) (int64, error)
	Update(ctx context.Context, account *repository.Account) error
	Delete(ctx context.Context, id int64) error
	Authenticate(ctx context.Context, email, password string) (*repository.Account, error)
	UserType() auth.UserType
}

type CartService interface {
	Cart(ctx context.Context, ac auth.Context) ([]checkout.CartItem, error)
	AddToCart(ctx context.Context, ac auth.Context, bookID int64, quantity int) ([]checkout.CartItem, error)
	UpdateQuantity(ctx context.Context, ac auth.Context, bookID int64, quantity int) ([]checkout.CartItem, error)
	RemoveFromCart(ctx context.Context, ac auth.Context, bookID int64) ([]checkout.CartItem, error)
	Orders(ctx context.Context, ac auth.Context) ([]checkout.Order, error)
	OrderByID(ctx context.Context, ac auth.Context, orderID string) (*checkout.Order, error)
	Checkout(ctx context.Context, ac auth.Context, req checkout.Request) (*checkout.Result, error)
}

type Server struct {
	books      BookService
	authors    AuthorService
	categories CategoryService
	customers  AccountService
	admins     AccountService
	cart       CartService
	bookCache  *cache.BookCache
	signer     *auth.Signer
	audit      *AuditManager
	logger     *zap.Logger

	httpServer *http.Server
}

type Deps struct {
	Books      BookService
	Authors    AuthorService
	Categories CategoryService
	Customers  AccountService
	Admins     AccountService
	Cart       CartService
	BookCache  *cache.BookCache
	Signer     *auth.Signer
	Audit      *AuditManager
	Logger     *zap.Logger
}

func New(deps Deps) *Server {
	return &Server{
		books:      deps.Books,
		authors:    deps.Authors,
		categories: deps.Categories,
		customers:  deps.Customers,
		admins:     deps.Admins,
		cart:       deps.Cart,
		bookCache:  deps.BookCache,
		signer:     deps.Signer,
		audit:      deps.Audit,
		logger:     deps.Logger,
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.auditMiddleware)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/logout", s.logout).Methods(http.MethodPost)
	api.Handle("/profile", s.authenticated(s.profile)).Methods(http.MethodGet)

	api.HandleFunc("/books", s.listBooks).Methods(http.MethodGet)
	api.HandleFunc("/books/{id:[0-9]+}", s.getBook).Methods(http.MethodGet)
	api.Handle("/books", s.adminOnly(s.createBook)).Methods(http.MethodPost)
	api.Handle("/books/{id:[0-9]+}", s.adminOnly(s.updateBook)).Methods(http.MethodPut)
	api.Handle("/books/{id:[0-9]+}", s.adminOnly(s.deleteBook)).Methods(http.MethodDelete)

	api.HandleFunc("/authors", s.listAuthors).Methods(http.MethodGet)
	api.HandleFunc("/authors/{id:[0-9]+}", s.getAuthor).Methods(http.MethodGet)
	api.Handle("/authors", s.adminOnly(s.createAuthor)).Methods(http.MethodPost)
	api.Handle("/authors/{id:[0-9]+}", s.adminOnly(s.updateAuthor)).Methods(http.MethodPut)
	api.Handle("/authors/{id:[0-9]+}", s.adminOnly(s.deleteAuthor)).Methods(http.MethodDelete)

	api.HandleFunc("/categories", s.listCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id:[0-9]+}", s.getCategory).Methods(http.MethodGet)
	api.Handle("/categories", s.adminOnly(s.createCategory)).Methods(http.MethodPost)
	api.Handle("/categories/{id:[0-9]+}", s.adminOnly(s.updateCategory)).Methods(http.MethodPut)
	api.Handle("/categories/{id:[0-9]+}", s.adminOnly(s.deleteCategory)).Methods(http.MethodDelete)

	api.Handle("/customers", s.adminOnly(s.listAccounts(s.customers))).Methods(http.MethodGet)
	api.Handle("/customers/{id:[0-9]+}", s.adminOnly(s.getAccount(s.customers))).Methods(http.MethodGet)
	api.HandleFunc("/customers", s.createAccount(s.customers)).Methods(http.MethodPost)
	api.Handle("/customers/{id:[0-9]+}", s.adminOnly(s.updateAccount(s.customers))).Methods(http.MethodPut)
	api.Handle("/customers/{id:[0-9]+}", s.adminOnly(s.deleteAccount(s.customers))).Methods(http.MethodDelete)

	api.Handle("/admins", s.adminOnly(s.listAccounts(s.admins))).Methods(http.MethodGet)
	api.Handle("/admins/{id:[0-9]+}", s.adminOnly(s.getAccount(s.admins))).Methods(http.MethodGet)
	api.Handle("/admins", s.adminOnly(s.createAccount(s.admins))).Methods(http.MethodPost)
	api.Handle("/admins/{id:[0-9]+}", s.adminOnly(s.updateAccount(s.admins))).Methods(http.MethodPut)
	api.Handle("/admins/{id:[0-9]+}", s.adminOnly(s.deleteAccount(s.admins))).Methods(http.MethodDelete)

	api.Handle("/cart", s.authenticated(s.getCart)).Methods(http.MethodGet)
	api.Handle("/cart/add", s.authenticated(s.addToCart)).Methods(http.MethodPost)
	api.Handle("/cart/update", s.authenticated(s.updateCartQuantity)).Methods(http.MethodPost)
	api.Handle("/cart/remove", s.authenticated(s.removeFromCart)).Methods(http.MethodPost)
	api.Handle("/cart/checkout", s.authenticated(s.checkoutCart)).Methods(http.MethodPost)

	api.Handle("/orders", s.authenticated(s.listOrders)).Methods(http.MethodGet)
	api.Handle("/orders/{id}", s.authenticated(s.getOrder)).Methods(http.MethodGet)

	return router
}

func (s *Server) Run(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	s.logger.Info("http server listening", zap.String("addr", addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func parseID(r *http.Request) (int64, error) {
	raw, ok := mux.Vars(r)["id"]
	if !ok {
		return 0, errors.New("missing id")
	}
	return strconv.ParseInt(raw, 10, 64)
}
