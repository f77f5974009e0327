package repository

import (
	"context"

	"foodstore/internal/domain/model"
	repo "foodstore/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportGormRepository struct {
	db *gorm.DB
}

// DI
func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

var _ repo.ReportRepository = (*ReportGormRepository)(nil)

const revenueExpr = "COALESCE(SUM(invoice_lines.quantity * invoice_lines.unit_price_snapshot), 0)"

// 支払済み請求書の明細だけ
func (r *ReportGormRepository) paidLines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("invoice_lines").
		Joins("join invoices on invoices.id = invoice_lines.invoice_id").
		Where("invoices.status = ?", model.InvoiceStatusPaid)
}

// 総売上（データが無ければ0）
func (r *ReportGormRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}

	if err := r.paidLines(ctx).Select(revenueExpr + " AS total").Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// 料理名ごとの売上（多い順）
func (r *ReportGormRepository) RevenueByItem(ctx context.Context) ([]model.ItemRevenue, error) {
	var rows []model.ItemRevenue

	err := r.paidLines(ctx).
		Select("invoice_lines.item_name_snapshot AS item_name, " + revenueExpr + " AS revenue").
		Group("invoice_lines.item_name_snapshot").
		Order("revenue desc").
		Order("item_name asc").
		Scan(&rows).Error
	if err != nil {
		return []model.ItemRevenue{}, err
	}
	if rows == nil {
		rows = []model.ItemRevenue{}
	}
	return rows, nil
}

// (日, 料理名) ごとの売上
func (r *ReportGormRepository) RevenueByDayAndItem(ctx context.Context, ascending bool, limit int) ([]model.DayItemRevenue, error) {
	var rows []model.DayItemRevenue

	order := "revenue desc"
	if ascending {
		order = "revenue asc"
	}

	tx := r.paidLines(ctx).
		Select("date_trunc('day', invoices.created_at) AS day, invoice_lines.item_name_snapshot AS item_name, " + revenueExpr + " AS revenue").
		Group("day, invoice_lines.item_name_snapshot").
		Order(order).
		Order("day asc").
		Order("item_name asc")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	if err := tx.Scan(&rows).Error; err != nil {
		return []model.DayItemRevenue{}, err
	}
	if rows == nil {
		rows = []model.DayItemRevenue{}
	}
	return rows, nil
}
