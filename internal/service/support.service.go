package service

import (
	"context"

	"coreshop-storefront/internal/domain"
	"coreshop-storefront/internal/logging"
)

type SupportService interface {
	List(ctx context.Context, sessionKey, status string) ([]domain.Ticket, error)
	Create(ctx context.Context, sessionKey string, req domain.TicketRequest) (*domain.Ticket, error)
	Get(ctx context.Context, id int64) (*domain.Ticket, error)
	// Live returns the session's tickets with their local countdown applied.
	Live(sessionKey string) []domain.Ticket
	Forget(sessionKey string)
}

type supportService struct {
	api   SupportAPI
	board TicketBoard
}

func NewSupportService(api SupportAPI, board TicketBoard) SupportService {
	return &supportService{api: api, board: board}
}

func (s *supportService) List(ctx context.Context, sessionKey, status string) ([]domain.Ticket, error) {
	tickets, err := s.api.Tickets(ctx, status)
	if err != nil {
		return nil, err
	}
	s.board.Replace(sessionKey, tickets)
	return tickets, nil
}

func (s *supportService) Create(ctx context.Context, sessionKey string, req domain.TicketRequest) (*domain.Ticket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ticket, err := s.api.CreateTicket(ctx, req)
	if err != nil {
		return nil, err
	}
	s.board.Prepend(sessionKey, *ticket)
	logging.FromCtx(ctx).Info("support ticket created", "ticket_id", ticket.ID, "product_id", req.ProductID)
	return ticket, nil
}

func (s *supportService) Get(ctx context.Context, id int64) (*domain.Ticket, error) {
	return s.api.Ticket(ctx, id)
}

func (s *supportService) Live(sessionKey string) []domain.Ticket {
	return s.board.Snapshot(sessionKey)
}

func (s *supportService) Forget(sessionKey string) {
	s.board.Drop(sessionKey)
}
