package book

import (
	"time"
)

// Board 教材适用的课程标准（教育委员会）
type Board string

const (
	BoardCBSE       Board = "CBSE"
	BoardICSE       Board = "ICSE"
	BoardStateBoard Board = "STATE_BOARD"
	BoardIGCSE      Board = "IGCSE"
	BoardIB         Board = "IB"
	BoardNCERT      Board = "NCERT"
)

// ParseBoard 解析课程标准，未知值返回false
func ParseBoard(s string) (Board, bool) {
	switch Board(s) {
	case BoardCBSE, BoardICSE, BoardStateBoard, BoardIGCSE, BoardIB, BoardNCERT:
		return Board(s), true
	}
	return "", false
}

// Book 图书实体(聚合根)
// 设计说明:
// 1. 金额使用int64存储"派萨"为单位(1卢比=100派萨,避免浮点数精度问题)
// 2. ISBN可选,非空时在有效记录中唯一(数据库层保证)
// 3. CategoryID为0表示未归类
// 4. Active是软删除标记:下架图书保留记录,仅从有效查询中排除
type Book struct {
	ID          uint
	Title       string
	Author      string
	Description string
	Image       string
	Price       int64 // 售价(派萨)
	MRP         int64 // 标价(派萨)
	Discount    int64 // 折扣金额(派萨)
	Quantity    int   // 在库数量
	Grade       int   // 年级
	Subject     string
	Board       Board
	ISBN        string
	Publisher   string
	Edition     string
	Language    string
	CategoryID  uint
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate 校验业务不变式
// 规则:售价/标价>0,折扣>=0,库存>=0,年级>=1
func (b *Book) Validate() error {
	if b.Title == "" {
		return ErrTitleRequired
	}
	if b.Author == "" {
		return ErrAuthorRequired
	}
	if b.Price <= 0 {
		return ErrInvalidPrice
	}
	if b.MRP <= 0 {
		return ErrInvalidMRP
	}
	if b.Discount < 0 {
		return ErrInvalidDiscount
	}
	if b.Quantity < 0 {
		return ErrInvalidStock
	}
	if b.Grade < 1 {
		return ErrInvalidGrade
	}
	if b.Subject == "" {
		return ErrSubjectRequired
	}
	if _, ok := ParseBoard(string(b.Board)); !ok {
		return ErrInvalidBoard
	}
	return nil
}

// SetStock 设置库存为绝对值
func (b *Book) SetStock(quantity int) error {
	if quantity < 0 {
		return ErrInvalidStock
	}
	b.Quantity = quantity
	b.UpdatedAt = time.Now()
	return nil
}

// ReduceStock 扣减库存(用于订单创建)
// 扣减后库存不能为负数
func (b *Book) ReduceStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if b.Quantity < quantity {
		return ErrInsufficientStock
	}
	b.Quantity -= quantity
	b.UpdatedAt = time.Now()
	return nil
}

// RestoreStock 回补库存(用于订单取消)
func (b *Book) RestoreStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b.Quantity += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// Deactivate 软删除
func (b *Book) Deactivate() {
	b.Active = false
	b.UpdatedAt = time.Now()
}

// ApplyUpdate 用输入实体覆盖可修改字段
// ID、Active、CreatedAt不随更新请求变化
func (b *Book) ApplyUpdate(in *Book) {
	b.Title = in.Title
	b.Author = in.Author
	b.Description = in.Description
	b.Image = in.Image
	b.Price = in.Price
	b.MRP = in.MRP
	b.Discount = in.Discount
	b.Quantity = in.Quantity
	b.Grade = in.Grade
	b.Subject = in.Subject
	b.Board = in.Board
	b.ISBN = in.ISBN
	b.Publisher = in.Publisher
	b.Edition = in.Edition
	b.Language = in.Language
	b.CategoryID = in.CategoryID
	b.UpdatedAt = time.Now()
}
