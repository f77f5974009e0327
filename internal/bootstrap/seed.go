package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"foodstore/internal/config"
	"foodstore/internal/domain/model"
	"foodstore/internal/repository"
	"foodstore/internal/usecase"
)

const (
	adminFullName = "Admin User"
	adminPhone    = "0123456789"
	adminGender   = "Nam"
)

// 初期管理者の生年月日
var adminBirthDate = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

// Seeder は起動時の初期データ投入。何度実行しても結果は同じ。
type Seeder struct {
	roles  repository.RoleRepository
	users  repository.UserRepository
	hasher usecase.PasswordHasher
	idGen  usecase.IDGenerator
	clock  usecase.Clock
	log    *slog.Logger
}

// DI
func NewSeeder(
	roles repository.RoleRepository,
	users repository.UserRepository,
	hasher usecase.PasswordHasher,
	idGen usecase.IDGenerator,
	clock usecase.Clock,
	log *slog.Logger,
) *Seeder {
	return &Seeder{roles: roles, users: users, hasher: hasher, idGen: idGen, clock: clock, log: log}
}

// Run はロール3種と管理者を入れる
func (s *Seeder) Run(ctx context.Context, cfg config.Config) error {
	if err := s.SeedRoles(ctx); err != nil {
		return err
	}
	return s.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
}

func (s *Seeder) SeedRoles(ctx context.Context) error {
	if err := s.roles.EnsureRoles(ctx, model.AllRoles); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	return nil
}

// 同じemailの管理者がいれば何もしない
func (s *Seeder) SeedAdmin(ctx context.Context, email string, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return errors.New("seed admin: email and password are required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		s.log.DebugContext(ctx, "admin already exists", slog.String("email", email))
		return nil
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("seed admin: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("seed admin: hash: %w", err)
	}

	birth := adminBirthDate
	now := s.clock.Now()
	admin := &model.User{
		ID:           s.idGen.NewID(),
		Email:        email,
		PasswordHash: hashed,
		FullName:     adminFullName,
		Phone:        adminPhone,
		BirthDate:    &birth,
		Gender:       adminGender,
		RoleID:       model.RoleAdministrator,
		RoleName:     model.RoleAdministrator.DisplayName(),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, admin); err != nil {
		// 複数インスタンスが同時に起動した
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("seed admin: %w", err)
	}

	s.log.InfoContext(ctx, "admin seeded", slog.String("email", email))
	return nil
}
