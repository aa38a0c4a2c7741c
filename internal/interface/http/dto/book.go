package dto

import (
	"github.com/xiebiao/schoolshop/internal/domain/book"
)

// BookRequest HTTP图书创建/更新请求
// 金额字段以派萨(百分之一卢比)整数传递
type BookRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"Mathematics for Class 10"`
	Author      string `json:"author" binding:"required,max=100" example:"R.D. Sharma"`
	Description string `json:"description" binding:"max=5000"`
	Image       string `json:"image" binding:"omitempty,url,max=500"`
	Price       int64  `json:"price" binding:"required,min=1" example:"45000"`
	MRP         int64  `json:"mrp" binding:"required,min=1" example:"50000"`
	Discount    int64  `json:"discount" binding:"min=0" example:"0"`
	Quantity    int    `json:"quantity" binding:"min=0" example:"20"`
	Grade       int    `json:"grade" binding:"required,min=1,max=12" example:"10"`
	Subject     string `json:"subject" binding:"required,max=50" example:"Mathematics"`
	Board       string `json:"board" binding:"required" example:"CBSE"`
	ISBN        string `json:"isbn" binding:"omitempty,max=20" example:"9789352530243"`
	Publisher   string `json:"publisher" binding:"max=100"`
	Edition     string `json:"edition" binding:"max=50"`
	Language    string `json:"language" binding:"max=30" example:"English"`
	CategoryID  uint   `json:"category_id"`
}

// ToEntity 转领域实体
func (r *BookRequest) ToEntity() *book.Book {
	return &book.Book{
		Title:       r.Title,
		Author:      r.Author,
		Description: r.Description,
		Image:       r.Image,
		Price:       r.Price,
		MRP:         r.MRP,
		Discount:    r.Discount,
		Quantity:    r.Quantity,
		Grade:       r.Grade,
		Subject:     r.Subject,
		Board:       book.Board(r.Board),
		ISBN:        r.ISBN,
		Publisher:   r.Publisher,
		Edition:     r.Edition,
		Language:    r.Language,
		CategoryID:  r.CategoryID,
	}
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	Price        int64  `json:"price"`
	PriceRupees  string `json:"price_rupees" example:"450.00"`
	MRP          int64  `json:"mrp"`
	MRPRupees    string `json:"mrp_rupees"`
	Discount     int64  `json:"discount"`
	Quantity     int    `json:"quantity"`
	Grade        int    `json:"grade"`
	Subject      string `json:"subject"`
	Board        string `json:"board"`
	ISBN         string `json:"isbn"`
	Publisher    string `json:"publisher"`
	Edition      string `json:"edition"`
	Language     string `json:"language"`
	CategoryID   uint   `json:"category_id"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// FromBook 领域实体转响应
func FromBook(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Image:       b.Image,
		Price:       b.Price,
		PriceRupees: FormatPriceRupees(b.Price),
		MRP:         b.MRP,
		MRPRupees:   FormatPriceRupees(b.MRP),
		Discount:    b.Discount,
		Quantity:    b.Quantity,
		Grade:       b.Grade,
		Subject:     b.Subject,
		Board:       string(b.Board),
		ISBN:        b.ISBN,
		Publisher:   b.Publisher,
		Edition:     b.Edition,
		Language:    b.Language,
		CategoryID:  b.CategoryID,
		CreatedAt:   formatTime(b.CreatedAt),
		UpdatedAt:   formatTime(b.UpdatedAt),
	}
}

// FromBooks 批量转换
func FromBooks(books []*book.Book) []*BookResponse {
	out := make([]*BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, FromBook(b))
	}
	return out
}

// SearchBooksRequest HTTP图书搜索请求(query参数)
// title与author是独立的模糊条件,可以组合;keyword额外对标题/作者/ISBN做OR匹配
type SearchBooksRequest struct {
	Keyword       string `form:"keyword" binding:"max=100"`
	Title         string `form:"title" binding:"max=200"`
	Author        string `form:"author" binding:"max=100"`
	Grade         int    `form:"grade" binding:"omitempty,min=1,max=12"`
	Subject       string `form:"subject" binding:"max=50"`
	Board         string `form:"board"`
	CategoryID    uint   `form:"categoryId"`
	MinPrice      int64  `form:"minPrice" binding:"min=0"`
	MaxPrice      int64  `form:"maxPrice" binding:"min=0"`
	Page          int    `form:"page" binding:"min=0"`
	Size          int    `form:"size" binding:"omitempty,min=1,max=100"`
	SortBy        string `form:"sortBy"`
	SortDirection string `form:"sortDirection" binding:"omitempty,oneof=asc desc"`
}

// ToParams 转搜索参数
func (r *SearchBooksRequest) ToParams() book.SearchParams {
	return book.SearchParams{
		Keyword:    r.Keyword,
		Title:      r.Title,
		Author:     r.Author,
		Grade:      r.Grade,
		Subject:    r.Subject,
		Board:      book.Board(r.Board),
		CategoryID: r.CategoryID,
		MinPrice:   r.MinPrice,
		MaxPrice:   r.MaxPrice,
		Page:       r.Page,
		Size:       r.Size,
		SortBy:     r.SortBy,
		SortDir:    r.SortDirection,
	}
}
