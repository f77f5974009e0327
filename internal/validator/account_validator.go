package validator

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"foodstore/internal/usecase"
)

const (
	minPasswordLen   = 6
	// bcryptが扱える上限
	maxPasswordBytes = 72
	maxNameLen       = 255
)

// 数字（先頭+可）9〜15桁
var phonePattern = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

type accountValidator struct {
	now func() time.Time
}

// Usecaseは interface を依存注入
func NewAccountValidator() usecase.AccountValidator {
	return &accountValidator{now: time.Now}
}

// 登録の入力を項目ごとに検証
func (v *accountValidator) ValidateRegister(ctx context.Context, in usecase.RegisterInput) error {
	var errs []string

	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		errs = append(errs, "email: required")
	case !isEmailLike(email):
		errs = append(errs, "email: invalid format")
	}

	if in.Password == "" {
		errs = append(errs, "password: required")
	} else if len([]rune(in.Password)) < minPasswordLen {
		errs = append(errs, "password: must be at least 6 characters")
	} else if len(in.Password) > maxPasswordBytes {
		errs = append(errs, "password: must be at most 72 bytes")
	}

	name := strings.TrimSpace(in.FullName)
	if name == "" {
		errs = append(errs, "full_name: required")
	} else if len([]rune(name)) > maxNameLen {
		errs = append(errs, "full_name: too long")
	}

	// 電話番号と性別は任意
	if phone := strings.TrimSpace(in.Phone); phone != "" && !phonePattern.MatchString(phone) {
		errs = append(errs, "phone: invalid format")
	}
	if in.BirthDate != nil && in.BirthDate.After(v.now()) {
		errs = append(errs, "birth_date: must be in the past")
	}

	if len(errs) > 0 {
		return usecase.NewValidationError("invalid request data", errs)
	}
	return nil
}

// ログインの入力を検証
func (v *accountValidator) ValidateLogin(ctx context.Context, in usecase.LoginInput) error {
	var errs []string

	if strings.TrimSpace(in.Email) == "" {
		errs = append(errs, "email: required")
	}
	if in.Password == "" {
		errs = append(errs, "password: required")
	}

	if len(errs) > 0 {
		return usecase.NewValidationError("invalid request data", errs)
	}
	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}
