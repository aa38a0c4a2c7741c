package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/schoolshop/internal/domain/book"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBookService 内存版图书服务
type fakeBookService struct {
	books  map[uint]*book.Book
	nextID uint
}

func newFakeBookService() *fakeBookService {
	return &fakeBookService{books: make(map[uint]*book.Book), nextID: 1}
}

func (s *fakeBookService) CreateBook(ctx context.Context, b *book.Book) (*book.Book, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	b.ID = s.nextID
	s.nextID++
	s.books[b.ID] = b
	return b, nil
}

func (s *fakeBookService) GetBookByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (s *fakeBookService) GetBookByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	for _, b := range s.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (s *fakeBookService) UpdateBook(ctx context.Context, id uint, b *book.Book) (*book.Book, error) {
	existing, ok := s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	existing.ApplyUpdate(b)
	return existing, nil
}

func (s *fakeBookService) DeleteBook(ctx context.Context, id uint) error {
	if _, ok := s.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(s.books, id)
	return nil
}

func (s *fakeBookService) ListBooks(ctx context.Context) ([]*book.Book, error) {
	out := make([]*book.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b)
	}
	return out, nil
}

func (s *fakeBookService) ListByGrade(ctx context.Context, grade int) ([]*book.Book, error) {
	if grade < 1 || grade > 12 {
		return nil, book.ErrInvalidGrade
	}
	var out []*book.Book
	for _, b := range s.books {
		if b.Grade == grade {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeBookService) ListBySubject(ctx context.Context, subject string) ([]*book.Book, error) {
	var out []*book.Book
	for _, b := range s.books {
		if b.Subject == subject {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeBookService) ListByBoard(ctx context.Context, board book.Board) ([]*book.Book, error) {
	var out []*book.Book
	for _, b := range s.books {
		if b.Board == board {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeBookService) ListByCategory(ctx context.Context, categoryID uint) ([]*book.Book, error) {
	var out []*book.Book
	for _, b := range s.books {
		if b.CategoryID == categoryID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeBookService) SearchBooks(ctx context.Context, params book.SearchParams) ([]*book.Book, int64, error) {
	out, _ := s.ListBooks(ctx)
	return out, int64(len(out)), nil
}

func (s *fakeBookService) ListLowStock(ctx context.Context, threshold int) ([]*book.Book, error) {
	var out []*book.Book
	for _, b := range s.books {
		if b.Quantity < threshold {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeBookService) ListBestSellers(ctx context.Context, limit int) ([]*book.Book, error) {
	return s.ListBooks(ctx)
}

func (s *fakeBookService) SetStock(ctx context.Context, id uint, quantity int) (*book.Book, error) {
	if quantity < 0 {
		return nil, book.ErrInvalidStock
	}
	b, ok := s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	b.Quantity = quantity
	return b, nil
}

var _ book.Service = (*fakeBookService)(nil)

func setupBookRouter(svc book.Service) *gin.Engine {
	h := NewBookHandler(svc)
	r := gin.New()
	r.POST("/api/books", h.CreateBook)
	r.GET("/api/books/:id", h.GetBook)
	r.GET("/api/books/board/:board", h.ListByBoard)
	r.GET("/api/books/search", h.SearchBooks)
	r.PUT("/api/books/:id/stock", h.UpdateStock)
	return r
}

func performRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBookHandler_CreateBook(t *testing.T) {
	r := setupBookRouter(newFakeBookService())

	w := performRequest(r, http.MethodPost, "/api/books", gin.H{
		"title":    "Mathematics for Class 10",
		"author":   "R.D. Sharma",
		"price":    45000,
		"mrp":      50000,
		"quantity": 20,
		"grade":    10,
		"subject":  "Mathematics",
		"board":    "CBSE",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID          uint   `json:"id"`
			PriceRupees string `json:"price_rupees"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, uint(1), resp.Data.ID)
	assert.Equal(t, "450.00", resp.Data.PriceRupees)
}

func TestBookHandler_CreateBook_MissingFields(t *testing.T) {
	r := setupBookRouter(newFakeBookService())

	w := performRequest(r, http.MethodPost, "/api/books", gin.H{
		"title": "Mathematics for Class 10",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success   bool              `json:"success"`
		ErrorCode string            `json:"error_code"`
		Errors    map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_ERROR", resp.ErrorCode)
	assert.Contains(t, resp.Errors, "author")
	assert.Contains(t, resp.Errors, "price")
}

func TestBookHandler_GetBook_NotFound(t *testing.T) {
	r := setupBookRouter(newFakeBookService())

	w := performRequest(r, http.MethodGet, "/api/books/99", nil)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Success   bool   `json:"success"`
		ErrorCode string `json:"error_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.ErrorCode)
}

func TestBookHandler_GetBook_InvalidID(t *testing.T) {
	r := setupBookRouter(newFakeBookService())

	w := performRequest(r, http.MethodGet, "/api/books/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookHandler_ListByBoard_Invalid(t *testing.T) {
	r := setupBookRouter(newFakeBookService())

	w := performRequest(r, http.MethodGet, "/api/books/board/GCSE", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookHandler_SearchBooks_PageEnvelope(t *testing.T) {
	svc := newFakeBookService()
	_, err := svc.CreateBook(context.Background(), &book.Book{
		Title: "Science for Class 8", Author: "Lakhmir Singh",
		Price: 32000, MRP: 35000, Quantity: 10,
		Grade: 8, Subject: "Science", Board: book.BoardCBSE,
	})
	require.NoError(t, err)

	r := setupBookRouter(svc)
	w := performRequest(r, http.MethodGet, "/api/books/search?keyword=Science&page=0&size=10", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Total      int64 `json:"total"`
			Page       int   `json:"page"`
			Size       int   `json:"size"`
			TotalPages int   `json:"total_pages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(1), resp.Data.Total)
	assert.Equal(t, 10, resp.Data.Size)
	assert.Equal(t, 1, resp.Data.TotalPages)
}

// capturingBookService 记录最近一次搜索参数
type capturingBookService struct {
	*fakeBookService
	lastParams book.SearchParams
}

func (s *capturingBookService) SearchBooks(ctx context.Context, params book.SearchParams) ([]*book.Book, int64, error) {
	s.lastParams = params
	return s.fakeBookService.SearchBooks(ctx, params)
}

// TestBookHandler_SearchBooks_TitleAuthorParams title与author是各自独立的模糊条件
func TestBookHandler_SearchBooks_TitleAuthorParams(t *testing.T) {
	svc := &capturingBookService{fakeBookService: newFakeBookService()}

	r := setupBookRouter(svc)
	w := performRequest(r, http.MethodGet, "/api/books/search?title=Science&author=Lakhmir", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Science", svc.lastParams.Title)
	assert.Equal(t, "Lakhmir", svc.lastParams.Author)
	assert.Empty(t, svc.lastParams.Keyword)

	// 单独传author同样生效
	w = performRequest(r, http.MethodGet, "/api/books/search?author=Sharma", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.lastParams.Title)
	assert.Equal(t, "Sharma", svc.lastParams.Author)
}

func TestBookHandler_UpdateStock(t *testing.T) {
	svc := newFakeBookService()
	created, err := svc.CreateBook(context.Background(), &book.Book{
		Title: "English Grammar", Author: "Wren & Martin",
		Price: 25000, MRP: 28000, Quantity: 5,
		Grade: 6, Subject: "English", Board: book.BoardICSE,
	})
	require.NoError(t, err)

	r := setupBookRouter(svc)
	w := performRequest(r, http.MethodPut, "/api/books/1/stock?quantity=42", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 42, created.Quantity)

	// 缺少quantity参数
	w = performRequest(r, http.MethodPut, "/api/books/1/stock", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
