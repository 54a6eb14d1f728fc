package handler

import (
	"net/http"

	"coreshop-storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

type ticketResp struct {
	domain.Ticket
	RemainingLabel string `json:"remainingLabel"`
}

type liveBoardResp struct {
	Tickets  []ticketResp `json:"tickets"`
	Pending  int          `json:"pending"`
	Resolved int          `json:"resolved"`
}

func newTicketResp(t domain.Ticket) ticketResp {
	return ticketResp{Ticket: t, RemainingLabel: t.RemainingLabel()}
}

func newTicketsResp(tickets []domain.Ticket) []ticketResp {
	out := make([]ticketResp, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, newTicketResp(t))
	}
	return out
}

func (h *Handler) Tickets(c *gin.Context) {
	tickets, err := h.svc.Support.List(c.Request.Context(), session(c).ID, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTicketsResp(tickets))
}

func (h *Handler) CreateTicket(c *gin.Context) {
	var req domain.TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid ticket request")
		return
	}

	ticket, err := h.svc.Support.Create(c.Request.Context(), session(c).ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTicketResp(*ticket))
}

func (h *Handler) Ticket(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		badRequest(c, "invalid ticket id")
		return
	}

	ticket, err := h.svc.Support.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTicketResp(*ticket))
}

// LiveTickets returns the session's board with the local countdown applied.
func (h *Handler) LiveTickets(c *gin.Context) {
	tickets := h.svc.Support.Live(session(c).ID)
	c.JSON(http.StatusOK, liveBoardResp{
		Tickets:  newTicketsResp(tickets),
		Pending:  domain.CountByStatus(tickets, domain.TicketPending),
		Resolved: domain.CountByStatus(tickets, domain.TicketResolved),
	})
}
