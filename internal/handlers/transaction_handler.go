package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"butce/internal/metrics"
	"butce/internal/models"
	"butce/internal/money"
	"butce/internal/period"
	"butce/internal/services"
)

// LedgerRecorder counts successful ledger writes.
type LedgerRecorder interface {
	LedgerMutation(operation, kind string)
}

// TransactionHandler serves the month view and the transaction forms.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	reportService      services.ReportServicer
	memberService      services.MemberServicer
	recorder           LedgerRecorder
	now                func() time.Time
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(
	transactionService services.TransactionServicer,
	reportService services.ReportServicer,
	memberService services.MemberServicer,
	recorder LedgerRecorder,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		reportService:      reportService,
		memberService:      memberService,
		recorder:           recorder,
		now:                time.Now,
	}
}

// TransactionRequest is the add/edit form. Members are member IDs; the form
// encoding repeats the field (members=1&members=3).
type TransactionRequest struct {
	Type        string `form:"type" json:"type" binding:"required,transaction_type"`
	Description string `form:"description" json:"description" binding:"max=100"`
	Amount      string `form:"amount" json:"amount" binding:"required,amount"`
	Date        string `form:"transaction_date" json:"transaction_date" binding:"required,iso_date"`
	MemberIDs   []uint `form:"members" json:"members" binding:"required,min=1"`
}

func (r *TransactionRequest) input() services.TransactionInput {
	return services.TransactionInput{
		Type:        r.Type,
		Description: r.Description,
		Amount:      r.Amount,
		Date:        r.Date,
		MemberIDs:   r.MemberIDs,
	}
}

// MemberResponse represents a household member in the response
type MemberResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// TransactionResponse represents a transaction in the response. Amount is in
// minor units; AmountText is the same value as a decimal string.
type TransactionResponse struct {
	ID          uint                   `json:"id"`
	Type        models.TransactionType `json:"type"`
	Description string                 `json:"description"`
	Amount      int64                  `json:"amount"`
	AmountText  string                 `json:"amount_text"`
	Date        string                 `json:"transaction_date"`
	Members     []MemberResponse       `json:"members"`
}

// TransactionEnvelope wraps a single transaction for create and edit responses.
type TransactionEnvelope struct {
	Transaction TransactionResponse `json:"transaction"`
}

// EditFormResponse is the edit view: the transaction and the selectable members.
type EditFormResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Members     []MemberResponse    `json:"members"`
}

// MonthResponse is the month view.
type MonthResponse struct {
	Year           int                   `json:"year"`
	Month          int                   `json:"month"`
	MonthName      string                `json:"month_name"`
	Months         []string              `json:"months"`
	Transactions   []TransactionResponse `json:"transactions"`
	MonthlyBalance int64                 `json:"monthly_balance"`
	TotalBalance   int64                 `json:"total_balance"`
	Members        []MemberResponse      `json:"members"`
}

func newMemberResponses(members []models.Member) []MemberResponse {
	out := make([]MemberResponse, len(members))
	for i, m := range members {
		out[i] = MemberResponse{ID: m.ID, Name: m.Name}
	}
	return out
}

func newTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Description: t.Description,
		Amount:      t.Amount,
		AmountText:  money.Format(t.Amount),
		Date:        t.Date.Format(period.DateLayout),
		Members:     newMemberResponses(t.Members),
	}
}

func newTransactionResponses(txs []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i := range txs {
		out[i] = newTransactionResponse(&txs[i])
	}
	return out
}

// Index returns the month view
// @Summary     Month view
// @Description Transactions of one month with the monthly and all-time balances
// @Tags        transactions
// @Produce     json
// @Param       year  query int false "Year, defaults to the current year"
// @Param       month query int false "Month 1-12, defaults to the current month"
// @Success     200 {object} MonthResponse
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      / [get]
func (h *TransactionHandler) Index(c *gin.Context) {
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

	summary, err := h.reportService.MonthlySummary(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	members, err := h.memberService.ListMembers()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MonthResponse{
		Year:           summary.Year,
		Month:          summary.Month,
		MonthName:      summary.MonthName,
		Months:         period.MonthNames(),
		Transactions:   newTransactionResponses(summary.Transactions),
		MonthlyBalance: summary.MonthlyBalance,
		TotalBalance:   summary.TotalBalance,
		Members:        newMemberResponses(members),
	})
}

// CreateTransaction handles the add form
// @Summary     Add a transaction
// @Tags        transactions
// @Accept      json,x-www-form-urlencoded
// @Produce     json
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} TransactionEnvelope "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /add [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		respondWithErrorAndForm(c, bindingError(err), req)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(userID, req.input())
	if err != nil {
		respondWithErrorAndForm(c, err, req)
		return
	}

	h.recorder.LedgerMutation(metrics.OpCreate, string(transaction.Type))
	c.JSON(http.StatusCreated, TransactionEnvelope{Transaction: newTransactionResponse(transaction)})
}

// GetTransaction returns one transaction for the edit form
// @Summary     Edit form
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} EditFormResponse
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /edit/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransaction(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	members, err := h.memberService.ListMembers()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, EditFormResponse{
		Transaction: newTransactionResponse(transaction),
		Members:     newMemberResponses(members),
	})
}

// UpdateTransaction handles the edit form
// @Summary     Edit a transaction
// @Description Replace every field of a transaction, including its member set
// @Tags        transactions
// @Accept      json,x-www-form-urlencoded
// @Produce     json
// @Param       id      path int                true "Transaction ID"
// @Param       request body TransactionRequest true "Transaction details"
// @Success     200 {object} TransactionEnvelope
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /edit/{id} [post]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		respondWithErrorAndForm(c, bindingError(err), req)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, req.input())
	if err != nil {
		respondWithErrorAndForm(c, err, req)
		return
	}

	h.recorder.LedgerMutation(metrics.OpUpdate, string(transaction.Type))
	c.JSON(http.StatusOK, TransactionEnvelope{Transaction: newTransactionResponse(transaction)})
}

// DeleteTransaction removes a transaction
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} MessageResponse
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /delete/{id} [post]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransaction(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.recorder.LedgerMutation(metrics.OpDelete, string(transaction.Type))
	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted"})
}
