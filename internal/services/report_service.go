package services

import (
	"butce/internal/period"
	"butce/internal/report"
)

// reportService computes month summaries on top of the ledger.
type reportService struct {
	transactions TransactionServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(transactions TransactionServicer) ReportServicer {
	return &reportService{transactions: transactions}
}

// MonthlySummary returns the owner's transactions dated inside the month
// together with the monthly and all-time balances.
func (s *reportService) MonthlySummary(ownerID uint, year, month int) (*MonthlySummary, error) {
	window, err := period.MonthWindow(year, month)
	if err != nil {
		return nil, err
	}

	txs, err := s.transactions.ListByOwner(ownerID, &window)
	if err != nil {
		return nil, err
	}

	total, err := s.TotalBalance(ownerID)
	if err != nil {
		return nil, err
	}

	return &MonthlySummary{
		Year:           year,
		Month:          month,
		MonthName:      period.MonthName(month),
		Window:         window,
		Transactions:   txs,
		MonthlyBalance: report.Balance(txs),
		TotalBalance:   total,
	}, nil
}

// MemberIncomeReport attributes the month's income to members.
func (s *reportService) MemberIncomeReport(ownerID uint, year, month int) (*MemberReport, error) {
	window, err := period.MonthWindow(year, month)
	if err != nil {
		return nil, err
	}

	txs, err := s.transactions.ListByOwner(ownerID, &window)
	if err != nil {
		return nil, err
	}

	return &MemberReport{
		Year:               year,
		Month:              month,
		MonthName:          period.MonthName(month),
		MemberIncomeReport: report.MemberIncomes(txs),
	}, nil
}

// TotalBalance is the owner's balance across every transaction ever recorded.
func (s *reportService) TotalBalance(ownerID uint) (int64, error) {
	txs, err := s.transactions.ListByOwner(ownerID, nil)
	if err != nil {
		return 0, err
	}
	return report.Balance(txs), nil
}
