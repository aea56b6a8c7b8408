package services

import (
	"testing"

	"butce/internal/testutil"
)

func setupReports(t *testing.T) (*ledgerFixture, ReportServicer) {
	t.Helper()
	f := setupLedger(t)
	return f, NewReportService(f.svc)
}

func TestMonthlySummary(t *testing.T) {
	t.Run("month_and_total_balances", func(t *testing.T) {
		f, svc := setupReports(t)

		mustCreate := func(in TransactionInput) {
			t.Helper()
			_, err := f.svc.CreateTransaction(f.owner.ID, in)
			testutil.AssertNoError(t, err)
		}
		mustCreate(income("1000", "2024-03-15", f.aytun.ID))
		mustCreate(TransactionInput{Type: "expense", Description: "Market", Amount: "250", Date: "2024-03-31", MemberIDs: []uint{f.kinik.ID}})
		mustCreate(income("500", "2024-02-10", f.kandemir.ID))
		mustCreate(TransactionInput{Type: "expense", Description: "Kira", Amount: "100", Date: "2024-04-01", MemberIDs: []uint{f.kinik.ID}})

		summary, err := svc.MonthlySummary(f.owner.ID, 2024, 3)
		testutil.AssertNoError(t, err)

		if len(summary.Transactions) != 2 {
			t.Fatalf("expected 2 transactions in March, got %d", len(summary.Transactions))
		}
		if summary.MonthlyBalance != 75000 {
			t.Errorf("expected monthly balance 75000, got %d", summary.MonthlyBalance)
		}
		if summary.TotalBalance != 115000 {
			t.Errorf("expected total balance 115000, got %d", summary.TotalBalance)
		}
		if summary.MonthName != "Mart" {
			t.Errorf("expected month name Mart, got %s", summary.MonthName)
		}
		if !summary.Window.Start.Equal(testutil.Date(2024, 3, 1)) || !summary.Window.End.Equal(testutil.Date(2024, 3, 31)) {
			t.Errorf("unexpected window %+v", summary.Window)
		}
	})

	t.Run("ignores_other_owners", func(t *testing.T) {
		f, svc := setupReports(t)

		_, err := f.svc.CreateTransaction(f.other.ID, income("999", "2024-03-15", f.aytun.ID))
		testutil.AssertNoError(t, err)

		summary, err := svc.MonthlySummary(f.owner.ID, 2024, 3)
		testutil.AssertNoError(t, err)
		if len(summary.Transactions) != 0 || summary.MonthlyBalance != 0 || summary.TotalBalance != 0 {
			t.Errorf("expected empty summary, got %+v", summary)
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		f, svc := setupReports(t)

		_, err := svc.MonthlySummary(f.owner.ID, 2024, 13)
		testutil.AssertAppError(t, err, "INVALID_PERIOD")

		_, err = svc.MonthlySummary(f.owner.ID, 2024, 0)
		testutil.AssertAppError(t, err, "INVALID_PERIOD")
	})

	t.Run("create_then_delete_restores_balance", func(t *testing.T) {
		f, svc := setupReports(t)

		tx, err := f.svc.CreateTransaction(f.owner.ID, income("1000", "2024-03-15", f.aytun.ID))
		testutil.AssertNoError(t, err)

		summary, err := svc.MonthlySummary(f.owner.ID, 2024, 3)
		testutil.AssertNoError(t, err)
		if summary.MonthlyBalance != 100000 || summary.TotalBalance != 100000 {
			t.Fatalf("expected balances of 100000, got %+v", summary)
		}

		testutil.AssertNoError(t, f.svc.DeleteTransaction(f.owner.ID, tx.ID))

		summary, err = svc.MonthlySummary(f.owner.ID, 2024, 3)
		testutil.AssertNoError(t, err)
		if summary.MonthlyBalance != 0 || summary.TotalBalance != 0 || len(summary.Transactions) != 0 {
			t.Errorf("expected zero balances after delete, got %+v", summary)
		}
	})
}

func TestMemberIncomeReport(t *testing.T) {
	t.Run("full_amount_per_member", func(t *testing.T) {
		f, svc := setupReports(t)

		_, err := f.svc.CreateTransaction(f.owner.ID, income("1000", "2024-03-15", f.aytun.ID, f.kandemir.ID))
		testutil.AssertNoError(t, err)
		_, err = f.svc.CreateTransaction(f.owner.ID, income("200", "2024-03-20", f.aytun.ID))
		testutil.AssertNoError(t, err)
		_, err = f.svc.CreateTransaction(f.owner.ID, TransactionInput{
			Type: "expense", Description: "Fatura", Amount: "300", Date: "2024-03-21", MemberIDs: []uint{f.kinik.ID},
		})
		testutil.AssertNoError(t, err)
		_, err = f.svc.CreateTransaction(f.owner.ID, income("50", "2024-04-02", f.kinik.ID))
		testutil.AssertNoError(t, err)

		rep, err := svc.MemberIncomeReport(f.owner.ID, 2024, 3)
		testutil.AssertNoError(t, err)

		got := rep.AsMap()
		if got["aytun"] != 120000 || got["kandemir"] != 100000 {
			t.Errorf("unexpected member incomes %v", got)
		}
		if _, ok := got["kınık"]; ok {
			t.Error("members with only expenses must not appear")
		}
		if rep.Income != 120000 || rep.Expense != 30000 || rep.Net != 90000 {
			t.Errorf("unexpected totals %+v", rep.Totals)
		}
		if rep.MonthName != "Mart" {
			t.Errorf("expected Mart, got %s", rep.MonthName)
		}
	})

	t.Run("empty_month", func(t *testing.T) {
		f, svc := setupReports(t)

		rep, err := svc.MemberIncomeReport(f.owner.ID, 2024, 3)
		testutil.AssertNoError(t, err)
		if rep.Members == nil || len(rep.Members) != 0 {
			t.Errorf("expected empty non-nil member list, got %v", rep.Members)
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		f, svc := setupReports(t)
		_, err := svc.MemberIncomeReport(f.owner.ID, 2024, -1)
		testutil.AssertAppError(t, err, "INVALID_PERIOD")
	})
}
