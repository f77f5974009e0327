package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"foodstore/internal/domain/model"
	repo "foodstore/internal/repository"
)

const (
	msgEmailNotFound  = "email does not exist"
	msgWrongPassword  = "incorrect password"
	msgAccountLocked  = "account is locked"
	msgEmailTaken     = "email is already in use"
	msgUserNotFound   = "user not found"
	msgRegistered     = "registration successful"
	msgStaffCreated   = "staff account created"
	msgStatusUpdated  = "status updated"
	msgInvalidRequest = "invalid request data"
)

type RegisterInput struct {
	Email     string
	Password  string
	FullName  string
	Phone     string
	BirthDate *time.Time
	Gender    string
}

type LoginInput struct {
	Email    string
	Password string
}

type UserDTO struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Phone     string     `json:"phone"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Gender    string     `json:"gender"`
	RoleID    string     `json:"role_id"`
	RoleName  string     `json:"role_name"`
	IsActive  bool       `json:"is_active"`
}

type RegisterOutput struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	CartID  string `json:"cart_id,omitempty"`
}

type LoginOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiration"`
	User      UserDTO   `json:"user"`
}

type StatusOutput struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id"`
	IsActive bool   `json:"is_active"`
}

// AccountUsecase は登録・ログイン・ユーザー管理
type AccountUsecase struct {
	tx        repo.TransactionManager
	users     repo.UserRepository
	validator AccountValidator
	hasher    PasswordHasher
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	idGen     IDGenerator
	clock     Clock
	log       *slog.Logger
	audit     *AuditUsecase
}

// DI
func NewAccountUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	validator AccountValidator,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
	log *slog.Logger,
	audit *AuditUsecase,
) *AccountUsecase {
	return &AccountUsecase{
		tx:        tx,
		users:     users,
		validator: validator,
		hasher:    hasher,
		verifier:  verifier,
		issuer:    issuer,
		idGen:     idGen,
		clock:     clock,
		log:       log,
		audit:     audit,
	}
}

// RegisterCustomer は客を登録し、空のカートも同じトランザクションで作る
func (u *AccountUsecase) RegisterCustomer(ctx context.Context, in RegisterInput) (RegisterOutput, error) {
	user, err := u.prepareUser(ctx, in, model.RoleCustomer)
	if err != nil {
		return RegisterOutput{}, err
	}

	cart := model.Cart{ID: u.idGen.NewID(), UserID: user.ID}
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Users().Create(ctx, user); err != nil {
			return err
		}
		return r.Carts().Create(ctx, &cart)
	})
	if err != nil {
		return RegisterOutput{}, u.createError(ctx, err)
	}

	u.log.InfoContext(ctx, "user registered",
		slog.String("action", "register"),
		slog.String("user_id", user.ID),
		slog.String("role", user.RoleID.Code()),
	)
	return RegisterOutput{Message: msgRegistered, UserID: user.ID, CartID: cart.ID}, nil
}

// RegisterStaff は管理者がスタッフを作る（カートなし）
func (u *AccountUsecase) RegisterStaff(ctx context.Context, in RegisterInput) (RegisterOutput, error) {
	user, err := u.prepareUser(ctx, in, model.RoleStaff)
	if err != nil {
		return RegisterOutput{}, err
	}

	if err := u.users.Create(ctx, user); err != nil {
		return RegisterOutput{}, u.createError(ctx, err)
	}

	u.log.InfoContext(ctx, "user registered",
		slog.String("action", "register_staff"),
		slog.String("user_id", user.ID),
		slog.String("role", user.RoleID.Code()),
	)
	return RegisterOutput{Message: msgStaffCreated, UserID: user.ID}, nil
}

// 入力検証→email重複→ハッシュ化まで
func (u *AccountUsecase) prepareUser(ctx context.Context, in RegisterInput, role model.Role) (*model.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)

	if err := u.validator.ValidateRegister(ctx, in); err != nil {
		return nil, err
	}

	existing, err := u.users.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, NewHTTPError(http.StatusConflict, msgEmailTaken)
	}
	if err != nil && !errors.Is(err, repo.ErrUserNotFound) {
		return nil, internalError("db error", err)
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, internalError("internal error", err)
	}

	now := u.clock.Now()
	return &model.User{
		ID:           u.idGen.NewID(),
		Email:        in.Email,
		PasswordHash: hashed,
		FullName:     in.FullName,
		Phone:        strings.TrimSpace(in.Phone),
		BirthDate:    in.BirthDate,
		Gender:       strings.TrimSpace(in.Gender),
		RoleID:       role,
		RoleName:     role.DisplayName(),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *AccountUsecase) createError(ctx context.Context, err error) error {
	// 同時登録でunique違反になった
	if errors.Is(err, repo.ErrDuplicate) {
		return NewHTTPError(http.StatusConflict, msgEmailTaken)
	}
	u.log.ErrorContext(ctx, "register failed", slog.String("action", "register"), slog.Any("error", err))
	return internalError("registration failed", err)
}

// Login はメール→パスワード→有効かどうかの順に確認してトークンを発行する
func (u *AccountUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	in.Email = normalizeEmail(in.Email)
	if err := u.validator.ValidateLogin(ctx, in); err != nil {
		return LoginOutput{}, err
	}

	user, err := u.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repo.ErrUserNotFound) {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, msgEmailNotFound)
	}
	if err != nil {
		return LoginOutput{}, internalError("db error", err)
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, msgWrongPassword)
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, msgAccountLocked)
	}

	token, exp, err := u.issuer.Issue(user, u.clock.Now())
	if err != nil {
		return LoginOutput{}, internalError("internal error", err)
	}

	return LoginOutput{Token: token, ExpiresAt: exp, User: toUserDTO(user)}, nil
}

// ToggleStatus はユーザーの有効/無効を反転する
func (u *AccountUsecase) ToggleStatus(ctx context.Context, actorID string, userID string) (StatusOutput, error) {
	if strings.TrimSpace(userID) == "" {
		return StatusOutput{}, NewValidationError(msgInvalidRequest, []string{"user_id: required"})
	}

	active, err := u.users.ToggleActive(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return StatusOutput{}, NewHTTPError(http.StatusNotFound, msgUserNotFound)
	}
	if err != nil {
		return StatusOutput{}, internalError("db error", err)
	}

	u.log.InfoContext(ctx, "user status changed",
		slog.String("action", "toggle_status"),
		slog.String("user_id", userID),
		slog.Bool("is_active", active),
	)
	u.audit.Record(ctx, AuditEntry{
		ActorUserID:  actorID,
		Action:       model.AuditActionToggleUserStatus,
		ResourceType: model.AuditResourceUser,
		ResourceID:   userID,
		Before:       activeState{IsActive: !active},
		After:        activeState{IsActive: active},
	})
	return StatusOutput{Message: msgStatusUpdated, UserID: userID, IsActive: active}, nil
}

// 管理者を除いた全員
func (u *AccountUsecase) ListStaffAndCustomers(ctx context.Context) ([]UserDTO, error) {
	return u.listByRoles(ctx, model.RoleCustomer, model.RoleStaff)
}

func (u *AccountUsecase) ListCustomers(ctx context.Context) ([]UserDTO, error) {
	return u.listByRoles(ctx, model.RoleCustomer)
}

func (u *AccountUsecase) ListStaff(ctx context.Context) ([]UserDTO, error) {
	return u.listByRoles(ctx, model.RoleStaff)
}

func (u *AccountUsecase) listByRoles(ctx context.Context, roles ...model.Role) ([]UserDTO, error) {
	users, err := u.users.ListByRoles(ctx, roles...)
	if err != nil {
		return []UserDTO{}, internalError("db error", err)
	}

	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		BirthDate: u.BirthDate,
		Gender:    u.Gender,
		RoleID:    u.RoleID.Code(),
		RoleName:  u.RoleID.DisplayName(),
		IsActive:  u.IsActive,
	}
}
