package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/shelfwise/bookstore/internal/repository"
)

type bookPayload struct {
	ID            int64   `json:"id,omitempty"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	AuthorID      int64   `json:"author_id"`
	CategoryID    int64   `json:"category_id"`
	Image         string  `json:"imageUrl"`
	PublishedDate string  `json:"published_date,omitempty"`
	AuthorName    *string `json:"author,omitempty"`
	CategoryName  *string `json:"category,omitempty"`
}

func bookResponse(b *repository.Book) bookPayload {
	p := bookPayload{
		ID:           b.ID,
		Title:        b.Title,
		Description:  b.Description,
		Price:        b.Price,
		Stock:        b.Stock,
		AuthorID:     b.AuthorID,
		CategoryID:   b.CategoryID,
		Image:        b.Image,
		AuthorName:   b.AuthorName,
		CategoryName: b.CategoryName,
	}
	if b.PublishedDate != nil {
		p.PublishedDate = b.PublishedDate.Format("2006-01-02")
	}
	return p
}

func (p bookPayload) toBook() (*repository.Book, error) {
	if p.Title == "" {
		return nil, errors.New("title is required")
	}
	if p.Price < 0 || p.Stock < 0 {
		return nil, errors.New("price and stock must be non-negative")
	}
	book := &repository.Book{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		AuthorID:    p.AuthorID,
		CategoryID:  p.CategoryID,
		Image:       p.Image,
	}
	if p.PublishedDate != "" {
		date, err := time.Parse("2006-01-02", p.PublishedDate)
		if err != nil {
			return nil, errors.New("invalid published_date, use YYYY-MM-DD")
		}
		book.PublishedDate = &date
	}
	return book, nil
}

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	if cached := s.bookCache.All(); cached != nil {
		payload := make([]bookPayload, 0, len(cached))
		for _, b := range cached {
			payload = append(payload, bookResponse(b))
		}
		respondJSON(w, http.StatusOK, payload)
		return
	}

	books, err := s.books.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list books")
		return
	}
	payload := make([]bookPayload, 0, len(books))
	for _, b := range books {
		payload = append(payload, bookResponse(b))
	}
	respondJSON(w, http.StatusOK, payload)
}

func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid book id")
		return
	}
	book, err := s.books.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			respondError(w, http.StatusNotFound, "book not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load book")
		return
	}
	respondJSON(w, http.StatusOK, bookResponse(book))
}

func (s *Server) createBook(w http.ResponseWriter, r *http.Request) {
	var payload bookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	book, err := payload.toBook()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := s.books.Create(r.Context(), book)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create book")
		return
	}
	s.refreshBookCache(r)
	respondJSON(w, http.StatusCreated, map[string]interface{}{"message": "book created", "id": id})
}

func (s *Server) updateBook(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid book id")
		return
	}
	var payload bookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	book, err := payload.toBook()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	book.ID = id
	if err := s.books.Update(r.Context(), book); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			respondError(w, http.StatusNotFound, "book not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to update book")
		return
	}
	s.refreshBookCache(r)
	respondJSON(w, http.StatusOK, map[string]string{"message": "book updated"})
}

func (s *Server) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid book id")
		return
	}
	if err := s.books.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			respondError(w, http.StatusNotFound, "book not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete book")
		return
	}
	s.refreshBookCache(r)
	respondJSON(w, http.StatusOK, map[string]string{"message": "book deleted"})
}

func (s *Server) refreshBookCache(r *http.Request) {
	if s.bookCache == nil {
		return
	}
	s.bookCache.Invalidate()
	if err := s.bookCache.LoadInitialData(r.Context()); err != nil {
		s.logger.Warn("book cache reload failed", zap.Error(err))
	}
}

func (s *Server) listAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := s.authors.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list authors")
		return
	}
	respondJSON(w, http.StatusOK, authors)
}

func (s *Server) getAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid author id")
		return
	}
	author, err := s.authors.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			respondError(w, http.StatusNotFound, "author not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load author")
		return
	}
	respondJSON(w, http.StatusOK, author)
}

func (s *Server) createAuthor(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
		Bio  string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	id, err := s.authors.Create(r.Context(), &repository.Author{Name: payload.Name, Bio: payload.Bio})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create author")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"message": "author created", "id": id})
}

func (s *Server) updateAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid author id")
		return
	}
	var payload struct {
		Name string `json:"name"`
		Bio  string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	err = s.authors.Update(r.Context(), &repository.Author{ID: id, Name: payload.Name, Bio: payload.Bio})
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			respondError(w, http.StatusNotFound, "author not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to update author")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "author updated"})
}

func (s *Server) deleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid author id")
		return
	}
	if err := s.authors.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			respondError(w, http.StatusNotFound, "author not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete author")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "author deleted"})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	category, err := s.categories.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			respondError(w, http.StatusNotFound, "category not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load category")
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	id, err := s.categories.Create(r.Context(), &repository.Category{Name: payload.Name})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create category")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"message": "category created", "id": id})
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := s.categories.Update(r.Context(), &repository.Category{ID: id, Name: payload.Name}); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			respondError(w, http.StatusNotFound, "category not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to update category")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "category updated"})
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	if err := s.categories.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			respondError(w, http.StatusNotFound, "category not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
