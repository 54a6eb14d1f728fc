package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicket_Tick(t *testing.T) {
	ticket := Ticket{Status: TicketPending, StatusLabel: "Pending", RemainingSeconds: 2}

	assert.True(t, ticket.Tick())
	assert.Equal(t, 1, ticket.RemainingSeconds)
	assert.Equal(t, TicketPending, ticket.Status)

	assert.True(t, ticket.Tick())
	assert.Equal(t, 0, ticket.RemainingSeconds)
	assert.Equal(t, TicketResolved, ticket.Status)
	assert.Equal(t, "Resolved", ticket.StatusLabel)

	assert.False(t, ticket.Tick())
}

func TestTicket_TickIgnoresNonPending(t *testing.T) {
	ticket := Ticket{Status: TicketInProgress, RemainingSeconds: 30}
	assert.False(t, ticket.Tick())
	assert.Equal(t, 30, ticket.RemainingSeconds)
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "00:00", FormatRemaining(0))
	assert.Equal(t, "00:00", FormatRemaining(-4))
	assert.Equal(t, "01:05", FormatRemaining(65))
	assert.Equal(t, "120:00", FormatRemaining(7200))
}

func TestTicketRequest_Validate(t *testing.T) {
	assert.ErrorIs(t, TicketRequest{Subject: "x"}.Validate(), ErrTicketIncomplete)
	assert.ErrorIs(t, TicketRequest{ProductID: 1}.Validate(), ErrTicketIncomplete)
	assert.NoError(t, TicketRequest{ProductID: 1, Subject: "broken"}.Validate())
}

func TestCountByStatus(t *testing.T) {
	tickets := []Ticket{{Status: TicketPending}, {Status: TicketResolved}, {Status: TicketPending}}
	assert.Equal(t, 2, CountByStatus(tickets, TicketPending))
	assert.Equal(t, 1, CountByStatus(tickets, TicketResolved))
}
