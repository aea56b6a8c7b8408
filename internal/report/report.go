// Package report derives read-only summaries from a set of transactions.
// Nothing here touches the database; callers pass in the rows they loaded.
package report

import (
	"sort"

	"butce/internal/models"
)

// Totals holds income, expense and their difference, in minor units.
type Totals struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Net     int64 `json:"net"`
}

// MemberIncome is the income attributed to one member.
type MemberIncome struct {
	Member string `json:"member"`
	Amount int64  `json:"amount"`
}

// MemberIncomeReport is the per-member breakdown for a set of transactions.
type MemberIncomeReport struct {
	Members []MemberIncome `json:"members"`
	Totals
}

// Sum totals income and expense over txs.
func Sum(txs []models.Transaction) Totals {
	var t Totals
	for i := range txs {
		switch txs[i].Type {
		case models.TransactionTypeIncome:
			t.Income += txs[i].Amount
		case models.TransactionTypeExpense:
			t.Expense += txs[i].Amount
		}
	}
	t.Net = t.Income - t.Expense
	return t
}

// Balance is the sum of income minus the sum of expense.
func Balance(txs []models.Transaction) int64 {
	return Sum(txs).Net
}

// MemberIncomes attributes each income transaction's full amount to every
// member tagged on it; a transaction with two members counts twice. The
// result is sorted by member name.
func MemberIncomes(txs []models.Transaction) MemberIncomeReport {
	byName := make(map[string]int64)
	for i := range txs {
		if txs[i].Type != models.TransactionTypeIncome {
			continue
		}
		for _, m := range txs[i].Members {
			byName[m.Name] += txs[i].Amount
		}
	}

	members := make([]MemberIncome, 0, len(byName))
	for name, amount := range byName {
		members = append(members, MemberIncome{Member: name, Amount: amount})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Member < members[j].Member })

	return MemberIncomeReport{Members: members, Totals: Sum(txs)}
}

// AsMap flattens the member breakdown to name -> amount.
func (r MemberIncomeReport) AsMap() map[string]int64 {
	out := make(map[string]int64, len(r.Members))
	for _, m := range r.Members {
		out[m.Member] = m.Amount
	}
	return out
}
