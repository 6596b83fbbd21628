package stubserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/revbook/revbook-client/internal/entities"
)

type bookRequest struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
	ImageURL string `json:"image"`
}

// ListBooks returns one page of the catalog, newest first. Pagination
// is 1-based; out-of-range pages return an empty page, not an error.
func (s *Server) ListBooks(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// bookOrder is append-ordered, so walk it backwards.
	start := (page - 1) * limit
	books := make([]entities.Book, 0, limit)
	for i := len(s.bookOrder) - 1 - start; i >= 0 && len(books) < limit; i-- {
		books = append(books, *s.books[s.bookOrder[i]])
	}

	respondData(c, http.StatusOK, books)
}

func (s *Server) CreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" {
		respondFail(c, http.StatusBadRequest, msgTitleRequired)
		return
	}
	if req.Author == "" {
		respondFail(c, http.StatusBadRequest, msgAuthorRequired)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book := &entities.Book{
		ID:          s.nextBookID,
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Summary:     req.Summary,
		ImageURL:    req.ImageURL,
		OwnerUserID: c.GetUint(contextKeyUserID),
		CreatedAt:   now(),
	}
	s.nextBookID++
	s.books[book.ID] = book
	s.bookOrder = append(s.bookOrder, book.ID)

	s.log.Info().Uint("book_id", book.ID).Str("title", book.Title).Msg("book created")
	respondData(c, http.StatusCreated, *book)
}

func (s *Server) GetBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondFail(c, http.StatusBadRequest, msgBookNotFound)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[uint(id)]
	if !ok {
		respondFail(c, http.StatusNotFound, msgBookNotFound)
		return
	}

	respondData(c, http.StatusOK, *book)
}

// UpdateBook overwrites every supplied field of an existing entry. Only
// the owner may update a book.
func (s *Server) UpdateBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondFail(c, http.StatusBadRequest, msgBookNotFound)
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[uint(id)]
	if !ok {
		respondFail(c, http.StatusNotFound, msgBookNotFound)
		return
	}
	if book.OwnerUserID != c.GetUint(contextKeyUserID) {
		respondFail(c, http.StatusForbidden, msgAuthRequired)
		return
	}

	if req.Title != "" {
		book.Title = req.Title
	}
	if req.Author != "" {
		book.Author = req.Author
	}
	if req.Category != "" {
		book.Category = req.Category
	}
	if req.Summary != "" {
		book.Summary = req.Summary
	}
	if req.ImageURL != "" {
		book.ImageURL = req.ImageURL
	}

	respondData(c, http.StatusOK, *book)
}

// AddReview attaches review notes to a book. The contract's client
// surface only reads reviews, so this exists to seed data.
func (s *Server) AddReview(bookID uint, authorID uint, notes string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[bookID]
	if !ok {
		return false
	}
	review := entities.Review{
		ID:           uint(len(book.Reviews) + 1),
		BookID:       bookID,
		Notes:        notes,
		AuthorUserID: authorID,
		CreatedAt:    now(),
	}
	book.Reviews = append(book.Reviews, review)
	return true
}
