package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shelfwise/bookstore/internal/auth"
	"github.com/shelfwise/bookstore/internal/repository"
)

type accountPayload struct {
	ID        int64  `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	LastLogin string `json:"last_login,omitempty"`
}

// accountResponse strips the password hash before anything leaves the API.
func accountResponse(a *repository.Account) accountPayload {
	p := accountPayload{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Phone:     a.Phone,
		Address:   a.Address,
	}
	if !a.CreatedAt.IsZero() {
		p.CreatedAt = a.CreatedAt.UTC().Format(time.RFC3339)
	}
	if a.LastLogin != nil {
		p.LastLogin = a.LastLogin.UTC().Format(time.RFC3339)
	}
	return p
}

// login checks customers first, then admins, so a shared email resolves
// to the customer role.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Email == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var (
		account *repository.Account
		role    auth.UserType
	)
	for _, repo := range []AccountService{s.customers, s.admins} {
		found, err := repo.Authenticate(r.Context(), payload.Email, payload.Password)
		if err == nil {
			account = found
			role = repo.UserType()
			break
		}
		if !errors.Is(err, repository.ErrObjectNotFound) && !errors.Is(err, auth.ErrUnauthorized) {
			s.logger.Error("login failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "login failed")
			return
		}
	}
	if account == nil {
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := s.signer.Issue(account.ID, role)
	if err != nil {
		s.logger.Error("token issue failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	s.signer.SetCookie(w, token)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "login successful",
		"user_type": string(role),
		"user":      accountResponse(account),
	})
}

func (s *Server) logout(w http.ResponseWriter, _ *http.Request) {
	auth.ClearCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	ac, err := auth.FromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	repo := s.customers
	if ac.UserType == auth.UserTypeAdmin {
		repo = s.admins
	}
	account, err := repo.GetByID(r.Context(), ac.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			respondError(w, http.StatusNotFound, "account not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user_type": string(ac.UserType),
		"user":      accountResponse(account),
	})
}

func (s *Server) listAccounts(repo AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := repo.List(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to list accounts")
			return
		}
		payload := make([]accountPayload, 0, len(accounts))
		for _, a := range accounts {
			payload = append(payload, accountResponse(a))
		}
		respondJSON(w, http.StatusOK, payload)
	}
}

func (s *Server) getAccount(repo AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid account id")
			return
		}
		account, err := repo.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				respondError(w, http.StatusNotFound, "account not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to load account")
			return
		}
		respondJSON(w, http.StatusOK, accountResponse(account))
	}
}

func (s *Server) createAccount(repo AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email"`
			Password  string `json:"password"`
			Phone     string `json:"phone"`
			Address   string `json:"address"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		payload.Email = strings.TrimSpace(payload.Email)
		if payload.Email == "" || payload.Password == "" || payload.FirstName == "" {
			respondError(w, http.StatusBadRequest, "first_name, email and password are required")
			return
		}
		account := &repository.Account{
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Email:     payload.Email,
			Phone:     payload.Phone,
			Address:   payload.Address,
		}
		id, err := repo.Create(r.Context(), account, payload.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to create account")
			return
		}
		respondJSON(w, http.StatusCreated, map[string]interface{}{"message": "account created", "id": id})
	}
}

func (s *Server) updateAccount(repo AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid account id")
			return
		}
		var payload struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email"`
			Phone     string `json:"phone"`
			Address   string `json:"address"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		payload.Email = strings.TrimSpace(payload.Email)
		if payload.Email == "" || payload.FirstName == "" {
			respondError(w, http.StatusBadRequest, "first_name and email are required")
			return
		}
		account := &repository.Account{
			ID:        id,
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Email:     payload.Email,
			Phone:     payload.Phone,
			Address:   payload.Address,
		}
		if err := repo.Update(r.Context(), account); err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				respondError(w, http.StatusNotFound, "account not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to update account")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "account updated"})
	}
}

func (s *Server) deleteAccount(repo AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid account id")
			return
		}
		if err := repo.Delete(r.Context(), id); err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				respondError(w, http.StatusNotFound, "account not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to delete account")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
	}
}
