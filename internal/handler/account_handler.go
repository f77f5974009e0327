package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"foodstore/internal/domain/model"
	"foodstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

const birthDateLayout = "2006-01-02"

// /api/account のHTTP
type AccountHandler struct {
	uc    *usecase.AccountUsecase
	audit *usecase.AuditUsecase
}

// DI
func NewAccountHandler(uc *usecase.AccountUsecase, audit *usecase.AuditUsecase) *AccountHandler {
	return &AccountHandler{uc: uc, audit: audit}
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateStatusRequest struct {
	UserID string `json:"user_id"`
}

// 登録・ログインは誰でも、それ以外は管理者だけ
func (h *AccountHandler) RegisterRoutes(api *echo.Group, mw AuthMiddlewares) {
	g := api.Group("/account")
	g.POST("/register", h.register)
	g.POST("/login", h.login)

	admin := mw.For(model.RoleAdministrator)
	g.POST("/register-staff", h.registerStaff, admin...)
	g.GET("/TatCaNhanVien", h.listStaffAndCustomers, admin...)
	g.GET("/TatCaKhachHang", h.listCustomers, admin...)
	g.GET("/TatCaNhanVienBanHang", h.listStaff, admin...)
	g.PUT("/CapNhatTrangThai", h.updateStatus, admin...)
	g.GET("/audit-logs", h.listAuditLogs, admin...)
}

func (h *AccountHandler) register(c echo.Context) error {
	in, err := bindRegister(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.RegisterCustomer(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AccountHandler) registerStaff(c echo.Context) error {
	in, err := bindRegister(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.RegisterStaff(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AccountHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AccountHandler) listStaffAndCustomers(c echo.Context) error {
	out, err := h.uc.ListStaffAndCustomers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AccountHandler) listCustomers(c echo.Context) error {
	out, err := h.uc.ListCustomers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AccountHandler) listStaff(c echo.Context) error {
	out, err := h.uc.ListStaff(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AccountHandler) updateStatus(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	out, err := h.uc.ToggleStatus(c.Request().Context(), actorID, req.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ?action=&resource_type=&resource_id=&actor_id=&limit=&offset=
func (h *AccountHandler) listAuditLogs(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return writeError(c, err)
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.audit.List(c.Request().Context(), usecase.AuditLogQuery{
		ActorUserID:  c.QueryParam("actor_id"),
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
		ResourceID:   c.QueryParam("resource_id"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, usecase.NewValidationError("invalid request data", []string{name + ": must be a non-negative integer"})
	}
	return n, nil
}

func bindRegister(c echo.Context) (usecase.RegisterInput, error) {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return usecase.RegisterInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	in := usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Gender:   req.Gender,
	}

	if s := strings.TrimSpace(req.BirthDate); s != "" {
		d, err := time.Parse(birthDateLayout, s)
		if err != nil {
			return usecase.RegisterInput{}, usecase.NewValidationError("invalid request data", []string{"birth_date: must be YYYY-MM-DD"})
		}
		in.BirthDate = &d
	}
	return in, nil
}
