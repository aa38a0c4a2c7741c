package book

import (
	"testing"
)

func validBook() *Book {
	return &Book{
		Title:    "Mathematics for Class 10",
		Author:   "R.D. Sharma",
		Price:    45000,
		MRP:      50000,
		Quantity: 20,
		Grade:    10,
		Subject:  "Mathematics",
		Board:    BoardCBSE,
		ISBN:     "9789352530243",
	}
}

// TestBook_Validate 测试实体字段校验规则
func TestBook_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Book)
		wantErr error
	}{
		{"合法实体", func(b *Book) {}, nil},
		{"缺少标题", func(b *Book) { b.Title = "" }, ErrTitleRequired},
		{"缺少作者", func(b *Book) { b.Author = "" }, ErrAuthorRequired},
		{"售价为0", func(b *Book) { b.Price = 0 }, ErrInvalidPrice},
		{"标价为负", func(b *Book) { b.MRP = -1 }, ErrInvalidMRP},
		{"折扣为负", func(b *Book) { b.Discount = -100 }, ErrInvalidDiscount},
		{"库存为负", func(b *Book) { b.Quantity = -1 }, ErrInvalidStock},
		{"年级为0", func(b *Book) { b.Grade = 0 }, ErrInvalidGrade},
		{"缺少学科", func(b *Book) { b.Subject = "" }, ErrSubjectRequired},
		{"非法教育体系", func(b *Book) { b.Board = "UNKNOWN" }, ErrInvalidBoard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBook()
			tt.mutate(b)
			if err := b.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, 期望 %v", err, tt.wantErr)
			}
		})
	}
}

// TestBook_ReduceStock 测试库存扣减规则
func TestBook_ReduceStock(t *testing.T) {
	b := validBook()

	// 正常扣减
	if err := b.ReduceStock(5); err != nil {
		t.Fatalf("扣减库存失败: %v", err)
	}
	if b.Quantity != 15 {
		t.Errorf("扣减后库存 = %d, 期望 15", b.Quantity)
	}

	// 库存不足
	if err := b.ReduceStock(100); err != ErrInsufficientStock {
		t.Errorf("超量扣减应返回ErrInsufficientStock, 实际 %v", err)
	}

	// 非法数量
	if err := b.ReduceStock(0); err != ErrInvalidQuantity {
		t.Errorf("数量为0应返回ErrInvalidQuantity, 实际 %v", err)
	}
}

// TestBook_RestoreStock 测试库存回补
func TestBook_RestoreStock(t *testing.T) {
	b := validBook()

	if err := b.RestoreStock(3); err != nil {
		t.Fatalf("回补库存失败: %v", err)
	}
	if b.Quantity != 23 {
		t.Errorf("回补后库存 = %d, 期望 23", b.Quantity)
	}

	if err := b.RestoreStock(-1); err != ErrInvalidQuantity {
		t.Errorf("负数回补应返回ErrInvalidQuantity, 实际 %v", err)
	}
}

// TestParseBoard 测试教育体系解析
func TestParseBoard(t *testing.T) {
	if b, ok := ParseBoard("CBSE"); !ok || b != BoardCBSE {
		t.Errorf("ParseBoard(CBSE) = %v, %v", b, ok)
	}
	if _, ok := ParseBoard("GAOKAO"); ok {
		t.Error("未知体系不应解析成功")
	}
}
