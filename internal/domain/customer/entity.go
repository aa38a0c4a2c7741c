package customer

import (
	"regexp"
	"time"
)

// Type 客户类型
// 除零售个人客户外,学校和机构客户通常按批量采购下单
type Type string

const (
	TypeIndividual  Type = "INDIVIDUAL"
	TypeSchool      Type = "SCHOOL"
	TypeInstitution Type = "INSTITUTION"
	TypeBulkBuyer   Type = "BULK_BUYER"
)

// ParseType 解析客户类型,未知值返回false
func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeIndividual, TypeSchool, TypeInstitution, TypeBulkBuyer:
		return Type(s), true
	}
	return "", false
}

// phoneRegex 手机号格式:可选+前缀,10到15位数字
var phoneRegex = regexp.MustCompile(`^[+]?[0-9]{10,15}$`)

// emailRegex 邮箱格式的宽松校验
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Customer 客户实体
// 邮箱和手机号在有效记录中各自唯一
type Customer struct {
	ID              uint
	Name            string
	Email           string
	Phone           string
	Address         string
	City            string
	State           string
	Pincode         string
	Country         string
	InstitutionName string
	ContactPerson   string
	GSTNumber       string
	Type            Type
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate 校验业务不变式
func (c *Customer) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	if c.Email == "" {
		return ErrEmailRequired
	}
	if !emailRegex.MatchString(c.Email) {
		return ErrInvalidEmail
	}
	if c.Phone == "" {
		return ErrPhoneRequired
	}
	if !phoneRegex.MatchString(c.Phone) {
		return ErrInvalidPhone
	}
	if _, ok := ParseType(string(c.Type)); !ok {
		return ErrInvalidType
	}
	return nil
}

// ApplyUpdate 用输入实体覆盖可修改字段
func (c *Customer) ApplyUpdate(in *Customer) {
	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.City = in.City
	c.State = in.State
	c.Pincode = in.Pincode
	c.Country = in.Country
	c.InstitutionName = in.InstitutionName
	c.ContactPerson = in.ContactPerson
	c.GSTNumber = in.GSTNumber
	c.Type = in.Type
	c.UpdatedAt = time.Now()
}

// Deactivate 软删除
func (c *Customer) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
}
