package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/schoolshop/internal/domain/book"
	"github.com/xiebiao/schoolshop/internal/interface/http/dto"
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
	"github.com/xiebiao/schoolshop/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	svc book.Service
}

// NewBookHandler 创建图书处理器
func NewBookHandler(svc book.Service) *BookHandler {
	return &BookHandler{svc: svc}
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  录入一本教材并上架
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误/ISBN重复"
// @Router       /api/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	created, err := h.svc.CreateBook(c.Request.Context(), req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromBook(created), "Book created successfully")
}

// GetBook 查询图书详情
// @Summary      查询图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.svc.GetBookByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromBook(b), "Book retrieved successfully")
}

// GetBookByISBN 按ISBN查询图书
// @Summary      按ISBN查询图书
// @Tags         图书
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/books/isbn/{isbn} [get]
func (h *BookHandler) GetBookByISBN(c *gin.Context) {
	b, err := h.svc.GetBookByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromBook(b), "Book retrieved successfully")
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	updated, err := h.svc.UpdateBook(c.Request.Context(), id, req.ToEntity())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromBook(updated), "Book updated successfully")
}

// DeleteBook 下架图书
// @Summary      下架图书
// @Description  软删除,历史订单中的快照不受影响
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.svc.DeleteBook(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil, "Book deleted successfully")
}

// ListBooks 查询全部在售图书
// @Summary      查询全部在售图书
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.svc.ListBooks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromBooks(books), "Books retrieved successfully")
}

// ListByGrade 按年级查询图书
// @Summary      按年级查询图书
// @Tags         图书
// @Produce      json
// @Param        grade path int true "年级(1-12)"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      400 {object} response.Response "年级超出范围"
// @Router       /api/books/grade/{grade} [get]
func (h *BookHandler) ListByGrade(c *gin.Context) {
	grade, err := strconv.Atoi(c.Param("grade"))
	if err != nil {
		response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid grade: %s", c.Param("grade")))
		return
	}

	books, err := h.svc.ListByGrade(c.Request.Context(), grade)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromBooks(books), "Books retrieved successfully")
}

// ListBySubject 按学科查询图书
// @Summary      按学科查询图书
// @Tags         图书
// @Produce      json
// @Param        subject path string true "学科"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/books/subject/{subject} [get]
func (h *BookHandler) ListBySubject(c *gin.Context) {
	books, err := h.svc.ListBySubject(c.Request.Context(), c.Param("subject"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromBooks(books), "Books retrieved successfully")
}

// ListByBoard 按教育体系查询图书
// @Summary      按教育体系查询图书
// @Tags         图书
// @Produce      json
// @Param        board path string true "教育体系" Enums(CBSE, ICSE, STATE_BOARD, IGCSE, IB, NCERT)
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      400 {object} response.Response "教育体系无效"
// @Router       /api/books/board/{board} [get]
func (h *BookHandler) ListByBoard(c *gin.Context) {
	board, ok := book.ParseBoard(c.Param("board"))
	if !ok {
		response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid board: %s", c.Param("board")))
		return
	}

	books, err := h.svc.ListByBoard(c.Request.Context(), board)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromBooks(books), "Books retrieved successfully")
}

// ListByCategory 按分类查询图书
// @Summary      按分类查询图书
// @Tags         图书
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/books/category/{id} [get]
func (h *BookHandler) ListByCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	books, err := h.svc.ListByCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromBooks(books), "Books retrieved successfully")
}

// SearchBooks 搜索图书
// @Summary      搜索图书
// @Description  书名、作者可各自模糊匹配并组合,关键词对书名/作者/ISBN做OR匹配,可叠加年级、学科、教育体系、分类、价格区间过滤,分页返回
// @Tags         图书
// @Produce      json
// @Param        keyword query string false "关键词"
// @Param        title query string false "书名(模糊)"
// @Param        author query string false "作者(模糊)"
// @Param        grade query int false "年级"
// @Param        subject query string false "学科(模糊)"
// @Param        board query string false "教育体系"
// @Param        categoryId query int false "分类ID"
// @Param        minPrice query int false "最低价(派萨)"
// @Param        maxPrice query int false "最高价(派萨)"
// @Param        page query int false "页码(从0开始)"
// @Param        size query int false "每页数量(默认10,最大100)"
// @Param        sortBy query string false "排序字段"
// @Param        sortDirection query string false "排序方向" Enums(asc, desc)
// @Success      200 {object} response.Response{data=response.PageData}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var req dto.SearchBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	if req.Board != "" {
		if _, ok := book.ParseBoard(req.Board); !ok {
			response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid board: %s", req.Board))
			return
		}
	}

	params := req.ToParams()
	books, total, err := h.svc.SearchBooks(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, size := params.Page, params.Size
	if size <= 0 {
		size = 10
	}
	response.SuccessWithPage(c, dto.FromBooks(books), total, page, size, "Books retrieved successfully")
}

// ListLowStock 查询低库存图书
// @Summary      查询低库存图书
// @Tags         图书
// @Produce      json
// @Param        threshold query int false "库存阈值(默认10)"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/books/low-stock [get]
func (h *BookHandler) ListLowStock(c *gin.Context) {
	threshold := 10
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid threshold: %s", raw))
			return
		}
		threshold = v
	}

	books, err := h.svc.ListLowStock(c.Request.Context(), threshold)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromBooks(books), "Books retrieved successfully")
}

// ListBestSellers 查询畅销图书
// @Summary      查询畅销图书
// @Description  按已确认/已送达订单中的累计销量排序
// @Tags         图书
// @Produce      json
// @Param        limit query int false "返回数量(默认10)"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/books/bestsellers [get]
func (h *BookHandler) ListBestSellers(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid limit: %s", raw))
			return
		}
		limit = v
	}

	books, err := h.svc.ListBestSellers(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromBooks(books), "Books retrieved successfully")
}

// UpdateStock 设置库存
// @Summary      设置库存
// @Description  将图书库存直接设为指定数量
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        quantity query int true "库存数量"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "数量无效"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/books/{id}/stock [put]
func (h *BookHandler) UpdateStock(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		response.Error(c, apperrors.Newf(apperrors.CodeValidation, "Invalid quantity: %s", c.Query("quantity")))
		return
	}

	b, err := h.svc.SetStock(c.Request.Context(), id, quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromBook(b), "Stock updated successfully")
}
