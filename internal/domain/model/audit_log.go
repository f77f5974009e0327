package model

import "time"

// 分類・料理・ユーザーの状態を変えた操作
type AuditAction string

const (
	AuditActionToggleCategory   AuditAction = "TOGGLE_CATEGORY"
	AuditActionUpdateMenuItem   AuditAction = "UPDATE_MENU_ITEM"
	AuditActionToggleMenuItem   AuditAction = "TOGGLE_MENU_ITEM"
	AuditActionToggleUserStatus AuditAction = "TOGGLE_USER_STATUS"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceCategory AuditResourceType = "category"
	AuditResourceMenuItem AuditResourceType = "menu_item"
	AuditResourceUser     AuditResourceType = "user"
)

// 監査ログ（スタッフ・管理者の操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザー（スタッフ or 管理者）
	ActorUserID string `gorm:"type:varchar(36);not null;index" json:"actor_user_id"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   string            `gorm:"type:varchar(64);not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
