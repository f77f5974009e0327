package repository

import (
	"context"

	"foodstore/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 集計はstatus=Paidの請求書だけが対象
type ReportRepository interface {
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	// 売上の多い順
	RevenueByItem(ctx context.Context) ([]model.ItemRevenue, error)
	// (日, 料理名) ごと。ascendingがfalseなら多い順。limit<=0は全件。
	RevenueByDayAndItem(ctx context.Context, ascending bool, limit int) ([]model.DayItemRevenue, error)
}
