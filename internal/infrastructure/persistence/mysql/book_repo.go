package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/schoolshop/internal/domain/book"
	apperrors "github.com/xiebiao/schoolshop/pkg/errors"
)

// bookRepository 图书仓储的MySQL实现
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// toBookModel 领域实体转GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Image:       b.Image,
		Price:       b.Price,
		MRP:         b.MRP,
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
		IsActive:    b.Active,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// toBookEntity GORM模型转领域实体
func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:          m.ID,
		Title:       m.Title,
		Author:      m.Author,
		Description: m.Description,
		Image:       m.Image,
		Price:       m.Price,
		MRP:         m.MRP,
		Discount:    m.Discount,
		Quantity:    m.Quantity,
		Grade:       m.Grade,
		Subject:     m.Subject,
		Board:       book.Board(m.Board),
		ISBN:        m.ISBN,
		Publisher:   m.Publisher,
		Edition:     m.Edition,
		Language:    m.Language,
		CategoryID:  m.CategoryID,
		Active:      m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toBookEntities(models []BookModel) []*book.Book {
	out := make([]*book.Book, 0, len(models))
	for i := range models {
		out = append(out, toBookEntity(&models[i]))
	}
	return out
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "Failed to create book")
	}
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找在售图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where("id = ? AND is_active = ?", id, true).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to find book")
	}
	return toBookEntity(&model), nil
}

// FindByISBN 根据ISBN查找在售图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where("isbn = ? AND is_active = ?", isbn, true).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to find book by ISBN")
	}
	return toBookEntity(&model), nil
}

// Update 更新图书
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	err := getDB(ctx, r.db).Model(&BookModel{}).Where("id = ?", b.ID).
		Select("*").Omit("id", "created_at").Updates(model).Error
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "Failed to update book")
	}
	return nil
}

// Delete 下架图书(软删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to delete book")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 查询全部在售图书
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).Where("is_active = ?", true).
		Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list books")
	}
	return toBookEntities(models), nil
}

// ListByGrade 按年级查询
func (r *bookRepository) ListByGrade(ctx context.Context, grade int) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).Where("grade = ? AND is_active = ?", grade, true).
		Order("title ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list books by grade")
	}
	return toBookEntities(models), nil
}

// ListBySubject 按学科模糊查询(大小写无关子串匹配)
func (r *bookRepository) ListBySubject(ctx context.Context, subject string) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).Where("subject LIKE ? AND is_active = ?", likePattern(subject), true).
		Order("title ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list books by subject")
	}
	return toBookEntities(models), nil
}

// ListByBoard 按课程标准查询
func (r *bookRepository) ListByBoard(ctx context.Context, board book.Board) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).Where("board = ? AND is_active = ?", string(board), true).
		Order("title ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list books by board")
	}
	return toBookEntities(models), nil
}

// ListByCategory 按分类查询
func (r *bookRepository) ListByCategory(ctx context.Context, categoryID uint) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("title ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list books by category")
	}
	return toBookEntities(models), nil
}

// bookSortColumns API排序字段到数据库列的白名单映射
// 白名单外的字段一律回退到created_at,防止SQL注入
var bookSortColumns = map[string]string{
	"title":     "title",
	"author":    "author",
	"price":     "price",
	"grade":     "grade",
	"quantity":  "quantity",
	"createdAt": "created_at",
}

// Search 多条件组合搜索
// 零值条件不参与过滤,与各单条件查询行为保持一致
func (r *bookRepository) Search(ctx context.Context, params book.SearchParams) ([]*book.Book, int64, error) {
	query := getDB(ctx, r.db).Model(&BookModel{}).Where("is_active = ?", true)

	if params.Keyword != "" {
		like := likePattern(params.Keyword)
		query = query.Where("title LIKE ? OR author LIKE ? OR isbn LIKE ?", like, like, like)
	}
	if params.Title != "" {
		query = query.Where("title LIKE ?", likePattern(params.Title))
	}
	if params.Author != "" {
		query = query.Where("author LIKE ?", likePattern(params.Author))
	}
	if params.Grade > 0 {
		query = query.Where("grade = ?", params.Grade)
	}
	if params.Subject != "" {
		query = query.Where("subject LIKE ?", likePattern(params.Subject))
	}
	if params.Board != "" {
		query = query.Where("board = ?", string(params.Board))
	}
	if params.CategoryID > 0 {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	if params.MinPrice > 0 {
		query = query.Where("price >= ?", params.MinPrice)
	}
	if params.MaxPrice > 0 {
		query = query.Where("price <= ?", params.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to count books")
	}

	column, ok := bookSortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}
	dir := "ASC"
	if params.SortDir == "desc" || params.SortBy == "" {
		dir = "DESC"
	}

	var models []BookModel
	err := query.Order(fmt.Sprintf("%s %s", column, dir)).
		Offset(params.Page * params.Size).Limit(params.Size).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "Failed to search books")
	}
	return toBookEntities(models), total, nil
}

// ListLowStock 查询库存低于阈值的在售图书
func (r *bookRepository) ListLowStock(ctx context.Context, threshold int) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).Where("quantity < ? AND is_active = ?", threshold, true).
		Order("quantity ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list low stock books")
	}
	return toBookEntities(models), nil
}

// ListBestSellers 按订单明细累计销量倒序查询畅销图书
// 不按订单状态过滤,下过单即计入销量
func (r *bookRepository) ListBestSellers(ctx context.Context, limit int) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).
		Joins("JOIN order_items ON order_items.book_id = books.id").
		Where("books.is_active = ?", true).
		Group("books.id").
		Order("SUM(order_items.quantity) DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to list best sellers")
	}
	return toBookEntities(models), nil
}

// LockByID 悲观锁查询图书
// SELECT FOR UPDATE必须在事务内使用,锁在事务提交时释放
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND is_active = ?", id, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "Failed to lock book")
	}
	return toBookEntity(&model), nil
}

// UpdateStock 原子更新库存
// WHERE条件保证扣减后不为负数,扣减失败即库存不足
// 扣减只针对在售图书;回补(取消订单)对已下架图书同样生效
func (r *bookRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	query := getDB(ctx, r.db).Model(&BookModel{}).
		Where("id = ? AND quantity + ? >= 0", id, delta)
	if delta < 0 {
		query = query.Where("is_active = ?", true)
	}
	result := query.Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "Failed to update stock")
	}
	if result.RowsAffected == 0 {
		// 区分图书不存在与库存不足
		existQuery := getDB(ctx, r.db).Model(&BookModel{}).Where("id = ?", id)
		if delta < 0 {
			existQuery = existQuery.Where("is_active = ?", true)
		}
		var count int64
		if err := existQuery.Count(&count).Error; err != nil {
			return apperrors.Wrap(err, "Failed to check book existence")
		}
		if count == 0 {
			return book.ErrBookNotFound
		}
		return book.ErrInsufficientStock
	}
	return nil
}

// CountActiveByCategory 统计分类下在售图书数量
func (r *bookRepository) CountActiveByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&BookModel{}).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "Failed to count books by category")
	}
	return count, nil
}
