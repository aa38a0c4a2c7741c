package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/xiebiao/schoolshop/internal/domain/book"
)

// TestGenerateOrderNumber 测试订单号格式
func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 30, 15, 123*1e6, time.UTC)

	no := GenerateOrderNumber(now)
	if no != "ORD20260901143015" {
		t.Errorf("订单号 = %s, 期望 ORD20260901143015", no)
	}

	// 带毫秒后缀的订单号仍满足整体格式
	withSuffix := GenerateOrderNumberWithSuffix(now)
	pattern := regexp.MustCompile(`^ORD\d{14}\d{1,3}$`)
	if !pattern.MatchString(withSuffix) {
		t.Errorf("带后缀订单号格式错误: %s", withSuffix)
	}
	if withSuffix != "ORD20260901143015123" {
		t.Errorf("带后缀订单号 = %s, 期望 ORD20260901143015123", withSuffix)
	}
}

// TestNewItemFromBook 测试明细快照
func TestNewItemFromBook(t *testing.T) {
	b := &book.Book{
		ID:      7,
		Title:   "Science for Class 8",
		Author:  "Lakhmir Singh",
		Price:   32000,
		Grade:   8,
		Subject: "Science",
		ISBN:    "9789352530310",
	}

	item := NewItemFromBook(b, 3)
	if item.BookID != 7 || item.Quantity != 3 {
		t.Errorf("明细基本字段错误: %+v", item)
	}
	if item.UnitPrice != 32000 || item.TotalPrice != 96000 {
		t.Errorf("明细金额错误: unit=%d total=%d", item.UnitPrice, item.TotalPrice)
	}
	// 快照字段来自图书当前值
	if item.BookTitle != b.Title || item.BookAuthor != b.Author || item.BookISBN != b.ISBN {
		t.Errorf("图书元数据快照错误: %+v", item)
	}

	// 图书后续改价不影响已生成的明细
	b.Price = 40000
	if item.UnitPrice != 32000 {
		t.Error("明细单价应为下单时快照")
	}
}

// TestOrder_SetTotals 测试金额不变式
func TestOrder_SetTotals(t *testing.T) {
	o := &Order{}
	o.SetTotals(100000, 15000)
	if o.FinalAmount != 85000 {
		t.Errorf("FinalAmount = %d, 期望 85000", o.FinalAmount)
	}
}

// TestOrder_Cancel 测试取消规则
func TestOrder_Cancel(t *testing.T) {
	cancellable := []Status{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped}
	for _, s := range cancellable {
		o := &Order{Status: s}
		if err := o.MarkCancelled(); err != nil {
			t.Errorf("状态 %s 应允许取消, 实际 %v", s, err)
		}
		if o.Status != StatusCancelled {
			t.Errorf("取消后状态 = %s", o.Status)
		}
	}

	blocked := []Status{StatusDelivered, StatusCancelled, StatusReturned}
	for _, s := range blocked {
		o := &Order{Status: s}
		if err := o.MarkCancelled(); err != ErrOrderNotCancellable {
			t.Errorf("状态 %s 不应允许取消, 实际 %v", s, err)
		}
	}
}

// TestOrder_SetStatus 测试状态更新与送达时间
func TestOrder_SetStatus(t *testing.T) {
	o := &Order{Status: StatusShipped}

	if err := o.SetStatus(StatusDelivered); err != nil {
		t.Fatalf("状态更新失败: %v", err)
	}
	if o.DeliveryDate == nil {
		t.Error("置为DELIVERED时应记录送达时间")
	}

	if err := o.SetStatus("LOST"); err != ErrInvalidStatus {
		t.Errorf("未知状态应返回ErrInvalidStatus, 实际 %v", err)
	}
}

// TestOrder_CalculateTotal 测试明细汇总
func TestOrder_CalculateTotal(t *testing.T) {
	o := &Order{
		Items: []OrderItem{
			{TotalPrice: 10000},
			{TotalPrice: 25000},
		},
	}
	if got := o.CalculateTotal(); got != 35000 {
		t.Errorf("CalculateTotal() = %d, 期望 35000", got)
	}
}
