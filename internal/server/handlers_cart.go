package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/shelfwise/bookstore/internal/auth"
	"github.com/shelfwise/bookstore/internal/checkout"
	"github.com/shelfwise/bookstore/internal/repository"
)

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	ac, err := auth.FromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	cart, err := s.cart.Cart(r.Context(), ac)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"cart": cart})
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	ac, err := auth.FromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var payload struct {
		BookID   int64 `json:"book_id"`
		Quantity int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}
	cart, err := s.cart.AddToCart(r.Context(), ac, payload.BookID, payload.Quantity)
	if err != nil {
		s.respondCartError(w, err, "failed to add to cart")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"message": "added to cart", "cart": cart})
}

func (s *Server) updateCartQuantity(w http.ResponseWriter, r *http.Request) {
	ac, err := auth.FromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var payload struct {
		BookID   int64 `json:"book_id"`
		Quantity int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cart, err := s.cart.UpdateQuantity(r.Context(), ac, payload.BookID, payload.Quantity)
	if err != nil {
		s.respondCartError(w, err, "failed to update cart")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"message": "cart updated", "cart": cart})
}

func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	ac, err := auth.FromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var payload struct {
		BookID int64 `json:"book_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cart, err := s.cart.RemoveFromCart(r.Context(), ac, payload.BookID)
	if err != nil {
		s.respondCartError(w, err, "failed to remove from cart")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"message": "removed from cart", "cart": cart})
}

func (s *Server) checkoutCart(w http.ResponseWriter, r *http.Request) {
	ac, err := auth.FromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req checkout.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := s.cart.Checkout(r.Context(), ac, req)
	if err != nil {
		s.respondCartError(w, err, "checkout failed")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "order placed",
		"order":       result.Order,
		"mail_status": result.MailStatus,
	})
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	ac, err := auth.FromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	orders, err := s.cart.Orders(r.Context(), ac)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	ac, err := auth.FromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	orderID := mux.Vars(r)["id"]
	order, err := s.cart.OrderByID(r.Context(), ac, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			respondError(w, http.StatusNotFound, "order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// respondCartError maps the checkout error taxonomy onto status codes.
// Stock conflicts are 409 so clients can distinguish them from bad input.
func (s *Server) respondCartError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInvalidCartItem):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, checkout.ErrItemNotFound),
		errors.Is(err, checkout.ErrCartItemMissing),
		errors.Is(err, repository.ErrObjectNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, checkout.ErrInsufficientStock):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, auth.ErrInvalidContext):
		respondError(w, http.StatusUnauthorized, "authentication required")
	default:
		s.logger.Error(fallback, zap.Error(err))
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
