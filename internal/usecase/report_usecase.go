package usecase

import (
	"context"
	"strings"

	repo "foodstore/internal/repository"

	"github.com/shopspring/decimal"
)

// 売上レポート（支払済みの請求書だけ）
type ReportUsecase struct {
	reports repo.ReportRepository
}

func NewReportUsecase(reports repo.ReportRepository) *ReportUsecase {
	return &ReportUsecase{reports: reports}
}

const msgNoRevenueData = "no revenue data"

type TotalRevenueDTO struct {
	Total     decimal.Decimal `json:"total"`
	Formatted string          `json:"formatted"`
}

type ItemRevenueDTO struct {
	ItemName  string          `json:"item_name"`
	Revenue   decimal.Decimal `json:"revenue"`
	Formatted string          `json:"formatted"`
}

// dayはdd-MM-yyyy
type DayItemRevenueDTO struct {
	Day       string          `json:"day"`
	ItemName  string          `json:"item_name"`
	Revenue   decimal.Decimal `json:"revenue"`
	Formatted string          `json:"formatted"`
}

// Found=falseならデータなし
type PeakRevenueDTO struct {
	Found     bool            `json:"found"`
	Message   string          `json:"message,omitempty"`
	Day       string          `json:"day,omitempty"`
	ItemName  string          `json:"item_name,omitempty"`
	Revenue   decimal.Decimal `json:"revenue"`
	Formatted string          `json:"formatted"`
}

const dayLayout = "02-01-2006"

func (u *ReportUsecase) TotalRevenue(ctx context.Context) (TotalRevenueDTO, error) {
	total, err := u.reports.TotalRevenue(ctx)
	if err != nil {
		return TotalRevenueDTO{}, internalError("db error", err)
	}
	return TotalRevenueDTO{Total: total, Formatted: FormatVND(total)}, nil
}

func (u *ReportUsecase) RevenueByItem(ctx context.Context) ([]ItemRevenueDTO, error) {
	rows, err := u.reports.RevenueByItem(ctx)
	if err != nil {
		return []ItemRevenueDTO{}, internalError("db error", err)
	}

	out := make([]ItemRevenueDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, ItemRevenueDTO{
			ItemName:  r.ItemName,
			Revenue:   r.Revenue,
			Formatted: FormatVND(r.Revenue),
		})
	}
	return out, nil
}

// (日, 料理名) ごとの売上（多い順）
func (u *ReportUsecase) RevenueByDayAndItem(ctx context.Context) ([]DayItemRevenueDTO, error) {
	rows, err := u.reports.RevenueByDayAndItem(ctx, false, 0)
	if err != nil {
		return []DayItemRevenueDTO{}, internalError("db error", err)
	}

	out := make([]DayItemRevenueDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, DayItemRevenueDTO{
			Day:       r.Day.Format(dayLayout),
			ItemName:  r.ItemName,
			Revenue:   r.Revenue,
			Formatted: FormatVND(r.Revenue),
		})
	}
	return out, nil
}

// 「一番売れた日」は (日, 料理名) の組で一番大きいもの
func (u *ReportUsecase) HighestRevenueDay(ctx context.Context) (PeakRevenueDTO, error) {
	return u.peak(ctx, false)
}

// 「一番売れなかった日」も同じ組で一番小さいもの
func (u *ReportUsecase) LowestRevenueDay(ctx context.Context) (PeakRevenueDTO, error) {
	return u.peak(ctx, true)
}

func (u *ReportUsecase) peak(ctx context.Context, ascending bool) (PeakRevenueDTO, error) {
	rows, err := u.reports.RevenueByDayAndItem(ctx, ascending, 1)
	if err != nil {
		return PeakRevenueDTO{}, internalError("db error", err)
	}
	if len(rows) == 0 {
		return PeakRevenueDTO{
			Found:     false,
			Message:   msgNoRevenueData,
			Revenue:   decimal.Zero,
			Formatted: FormatVND(decimal.Zero),
		}, nil
	}

	r := rows[0]
	return PeakRevenueDTO{
		Found:     true,
		Day:       r.Day.Format(dayLayout),
		ItemName:  r.ItemName,
		Revenue:   r.Revenue,
		Formatted: FormatVND(r.Revenue),
	}, nil
}

// FormatVND は 1234567.4 -> "1,234,567 VNĐ"
func FormatVND(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}

	out := b.String() + " VNĐ"
	if neg {
		return "-" + out
	}
	return out
}
