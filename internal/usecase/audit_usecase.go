package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"foodstore/internal/domain/model"
	repo "foodstore/internal/repository"
)

// AuditUsecase はスタッフ・管理者の操作を監査ログに残す
type AuditUsecase struct {
	logs  repo.AuditLogRepository
	clock Clock
	log   *slog.Logger
}

// DI
func NewAuditUsecase(logs repo.AuditLogRepository, clock Clock, log *slog.Logger) *AuditUsecase {
	return &AuditUsecase{logs: logs, clock: clock, log: log}
}

// Before/AfterはJSONにして保存
type AuditEntry struct {
	ActorUserID  string
	Action       model.AuditAction
	ResourceType model.AuditResourceType
	ResourceID   string
	Before       any
	After        any
}

// 一覧の条件。空文字は条件なし。
type AuditLogQuery struct {
	ActorUserID  string
	Action       string
	ResourceType string
	ResourceID   string
	Limit        int
	Offset       int
}

// Record は書けなくても操作自体は失敗させない。nilなら何もしない。
func (u *AuditUsecase) Record(ctx context.Context, e AuditEntry) {
	if u == nil {
		return
	}

	entry := model.AuditLog{
		ActorUserID:  e.ActorUserID,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		BeforeJSON:   toJSON(e.Before),
		AfterJSON:    toJSON(e.After),
		CreatedAt:    u.clock.Now(),
	}
	if err := u.logs.Create(ctx, entry); err != nil {
		u.log.WarnContext(ctx, "audit log write failed",
			slog.String("action", string(e.Action)),
			slog.String("resource_id", e.ResourceID),
			slog.Any("error", err),
		)
	}
}

func (u *AuditUsecase) List(ctx context.Context, q AuditLogQuery) ([]model.AuditLog, error) {
	filter := repo.AuditLogFilter{Limit: q.Limit, Offset: q.Offset}

	if s := strings.TrimSpace(q.ActorUserID); s != "" {
		filter.ActorUserID = &s
	}
	if s := strings.TrimSpace(q.ResourceID); s != "" {
		filter.ResourceID = &s
	}
	if s := strings.TrimSpace(q.Action); s != "" {
		a := model.AuditAction(strings.ToUpper(s))
		if !validAuditAction(a) {
			return []model.AuditLog{}, NewValidationError(msgInvalidRequest, []string{"action: unknown value"})
		}
		filter.Action = &a
	}
	if s := strings.TrimSpace(q.ResourceType); s != "" {
		rt := model.AuditResourceType(strings.ToLower(s))
		if !validAuditResource(rt) {
			return []model.AuditLog{}, NewValidationError(msgInvalidRequest, []string{"resource_type: unknown value"})
		}
		filter.ResourceType = &rt
	}

	logs, err := u.logs.List(ctx, filter)
	if err != nil {
		return []model.AuditLog{}, internalError("db error", err)
	}
	return logs, nil
}

func validAuditAction(a model.AuditAction) bool {
	switch a {
	case model.AuditActionToggleCategory, model.AuditActionUpdateMenuItem,
		model.AuditActionToggleMenuItem, model.AuditActionToggleUserStatus:
		return true
	}
	return false
}

func validAuditResource(rt model.AuditResourceType) bool {
	switch rt {
	case model.AuditResourceCategory, model.AuditResourceMenuItem, model.AuditResourceUser:
		return true
	}
	return false
}

func toJSON(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

