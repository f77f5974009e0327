package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 料理名ごとの売上
type ItemRevenue struct {
	ItemName string
	Revenue  decimal.Decimal
}

// (日, 料理名) ごとの売上
type DayItemRevenue struct {
	Day      time.Time
	ItemName string
	Revenue  decimal.Decimal
}
