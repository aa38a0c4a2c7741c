package category

import (
	"time"
)

// Type 分类维度
// 同一本书可按年级、学科、类型、课程标准、语言等维度归类
type Type string

const (
	TypeGradeLevel Type = "GRADE_LEVEL"
	TypeSubject    Type = "SUBJECT"
	TypeBookType   Type = "BOOK_TYPE"
	TypeBoard      Type = "BOARD"
	TypeLanguage   Type = "LANGUAGE"
)

// ParseType 解析分类维度,未知值返回false
func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeGradeLevel, TypeSubject, TypeBookType, TypeBoard, TypeLanguage:
		return Type(s), true
	}
	return "", false
}

// Category 图书分类实体
// 名称在有效记录中唯一,DisplayOrder控制前台展示顺序
type Category struct {
	ID           uint
	Name         string
	Description  string
	Type         Type
	DisplayOrder int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate 校验业务不变式
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	if _, ok := ParseType(string(c.Type)); !ok {
		return ErrInvalidType
	}
	if c.DisplayOrder < 0 {
		return ErrInvalidDisplayOrder
	}
	return nil
}

// ApplyUpdate 用输入实体覆盖可修改字段
func (c *Category) ApplyUpdate(in *Category) {
	c.Name = in.Name
	c.Description = in.Description
	c.Type = in.Type
	c.DisplayOrder = in.DisplayOrder
	c.UpdatedAt = time.Now()
}

// Deactivate 软删除
func (c *Category) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
}
