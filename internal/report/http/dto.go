package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/rental-ledger-backend/internal/report"
)

type SummaryResponse struct {
	GeneratedAt       time.Time       `json:"generated_at"`
	ExclusiveTotal    int             `json:"exclusive_total"`
	ExclusiveOccupied int             `json:"exclusive_occupied"`
	PooledTotal       int             `json:"pooled_total"`
	PooledStock       int             `json:"pooled_stock"`
	PooledOutstanding int             `json:"pooled_outstanding"`
	Holders           int             `json:"holders"`
	Owed              decimal.Decimal `json:"owed"`
	Credit            decimal.Decimal `json:"credit"`
}

func NewResponse(s *report.Summary) SummaryResponse {
	return SummaryResponse{
		GeneratedAt:       s.GeneratedAt,
		ExclusiveTotal:    s.ExclusiveTotal,
		ExclusiveOccupied: s.ExclusiveOccupied,
		PooledTotal:       s.PooledTotal,
		PooledStock:       s.PooledStock,
		PooledOutstanding: s.PooledOutstanding,
		Holders:           s.Holders,
		Owed:              s.Owed,
		Credit:            s.Credit,
	}
}
