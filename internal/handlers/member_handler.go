package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"butce/internal/services"
)

// MemberHandler lists household members and their transactions.
type MemberHandler struct {
	memberService      services.MemberServicer
	transactionService services.TransactionServicer
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService services.MemberServicer, transactionService services.TransactionServicer) *MemberHandler {
	return &MemberHandler{memberService: memberService, transactionService: transactionService}
}

// MembersResponse lists household members.
type MembersResponse struct {
	Members []MemberResponse `json:"members"`
}

// TransactionsResponse lists transactions.
type TransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ListMembers returns the selectable members
// @Summary     List members
// @Tags        members
// @Produce     json
// @Success     200 {object} MembersResponse
// @Router      /members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.memberService.ListMembers()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MembersResponse{Members: newMemberResponses(members)})
}

// MemberTransactions returns the caller's transactions tagged with a member
// @Summary     Transactions of a member
// @Tags        members
// @Produce     json
// @Param       id path int true "Member ID"
// @Success     200 {object} TransactionsResponse
// @Failure     404 {object} ErrorResponse "Member not found"
// @Router      /members/{id}/transactions [get]
func (h *MemberHandler) MemberTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	memberID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	txs, err := h.transactionService.ListByMember(userID, memberID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, TransactionsResponse{Transactions: newTransactionResponses(txs)})
}
