package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"butce/internal/money"
	"butce/internal/services"
)

// ReportHandler serves the per-member income report.
type ReportHandler struct {
	reportService services.ReportServicer
	now           func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, now: time.Now}
}

// MemberIncomeResponse is one row of the report.
type MemberIncomeResponse struct {
	Member     string `json:"member"`
	Amount     int64  `json:"amount"`
	AmountText string `json:"amount_text"`
}

// ReportResponse is the per-member income report for one month. ByMember
// carries the same amounts as Members keyed by member name.
type ReportResponse struct {
	Year         int                    `json:"year"`
	Month        int                    `json:"month"`
	MonthName    string                 `json:"month_name"`
	Members      []MemberIncomeResponse `json:"members"`
	ByMember     map[string]int64       `json:"by_member"`
	TotalIncome  int64                  `json:"total_income"`
	TotalExpense int64                  `json:"total_expense"`
	NetBalance   int64                  `json:"net_balance"`
}

// MemberIncomeReport returns each member's income for a month
// @Summary     Member income report
// @Description Every income transaction counts in full for each member tagged on it
// @Tags        reports
// @Produce     json
// @Param       year  query int false "Year, defaults to the current year"
// @Param       month query int false "Month 1-12, defaults to the current month"
// @Success     200 {object} ReportResponse
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Router      /report [get]
func (h *ReportHandler) MemberIncomeReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parsePeriod(c, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	rep, err := h.reportService.MemberIncomeReport(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows := make([]MemberIncomeResponse, len(rep.Members))
	for i, m := range rep.Members {
		rows[i] = MemberIncomeResponse{Member: m.Member, Amount: m.Amount, AmountText: money.Format(m.Amount)}
	}

	c.JSON(http.StatusOK, ReportResponse{
		Year:         rep.Year,
		Month:        rep.Month,
		MonthName:    rep.MonthName,
		Members:      rows,
		ByMember:     rep.AsMap(),
		TotalIncome:  rep.Income,
		TotalExpense: rep.Expense,
		NetBalance:   rep.Net,
	})
}
