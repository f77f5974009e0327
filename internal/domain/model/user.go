package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Role は固定の3種類だけ。文字列のtypoを型で防ぐ。
type Role uint8

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleStaff
	RoleAdministrator
)

// AllRoles は roles テーブルに seed する順番
var AllRoles = []Role{RoleCustomer, RoleStaff, RoleAdministrator}

// DBに保存するコード
func (r Role) Code() string {
	switch r {
	case RoleCustomer:
		return "Customer"
	case RoleStaff:
		return "Staff"
	case RoleAdministrator:
		return "Admin"
	default:
		return ""
	}
}

// 表示名。JWTのroleクレームもこちらを使う。
func (r Role) DisplayName() string {
	switch r {
	case RoleCustomer:
		return "Customer"
	case RoleStaff:
		return "Staff"
	case RoleAdministrator:
		return "Administrator"
	default:
		return ""
	}
}

func (r Role) String() string {
	return r.DisplayName()
}

// コードでも表示名でも受け付ける
func ParseRole(s string) (Role, bool) {
	for _, r := range AllRoles {
		if s == r.Code() || s == r.DisplayName() {
			return r, true
		}
	}
	return RoleUnknown, false
}

func (r Role) Value() (driver.Value, error) {
	if r == RoleUnknown {
		return nil, fmt.Errorf("role: unknown role cannot be stored")
	}
	return r.Code(), nil
}

func (r *Role) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("role: unsupported scan type %T", src)
	}

	parsed, ok := ParseRole(s)
	if !ok {
		return fmt.Errorf("role: unknown code %q", s)
	}
	*r = parsed
	return nil
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.DisplayName()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, ok := ParseRole(string(b))
	if !ok {
		return fmt.Errorf("role: unknown role %q", string(b))
	}
	*r = parsed
	return nil
}

// roles テーブル。Role の一覧をそのまま持つ。
type RoleRecord struct {
	ID   string `gorm:"primaryKey;type:varchar(32)"`
	Name string `gorm:"type:varchar(64);not null"`
}

func (RoleRecord) TableName() string {
	return "roles"
}

type User struct {
	ID           string     `gorm:"primaryKey;type:varchar(36)"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	FullName     string     `gorm:"type:varchar(255);not null"`
	Phone        string     `gorm:"type:varchar(30)"`
	BirthDate    *time.Time `gorm:"type:date"`
	Gender       string     `gorm:"type:varchar(20)"`
	RoleID       Role       `gorm:"column:role_id;type:varchar(32);not null;index"`
	RoleName     string     `gorm:"type:varchar(64);not null"`
	IsActive     bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
