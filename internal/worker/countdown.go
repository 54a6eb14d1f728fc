package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"coreshop-storefront/internal/domain"
	"coreshop-storefront/internal/logging"
)

// Countdown ticks the resolution countdown of each session's support tickets.
// The numbers are for display only; the support API stays authoritative.
type Countdown struct {
	mu       sync.Mutex
	boards   map[string][]domain.Ticket
	interval time.Duration
	logger   *slog.Logger
}

func NewCountdown(interval time.Duration) *Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{
		boards:   make(map[string][]domain.Ticket),
		interval: interval,
		logger:   logging.New("countdown"),
	}
}

func (c *Countdown) Replace(sessionKey string, tickets []domain.Ticket) {
	board := make([]domain.Ticket, len(tickets))
	copy(board, tickets)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.boards[sessionKey] = board
}

func (c *Countdown) Prepend(sessionKey string, ticket domain.Ticket) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.boards[sessionKey] = append([]domain.Ticket{ticket}, c.boards[sessionKey]...)
}

func (c *Countdown) Snapshot(sessionKey string) []domain.Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	board := c.boards[sessionKey]
	out := make([]domain.Ticket, len(board))
	copy(out, board)
	return out
}

func (c *Countdown) Drop(sessionKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.boards, sessionKey)
}

func (c *Countdown) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Info("ticket countdown started", "interval", c.interval.String())

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.tick()
		}
	}
}

// tick advances every board by one step and reports how many tickets changed.
func (c *Countdown) tick() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := 0
	for key, board := range c.boards {
		for i := range board {
			if board[i].Tick() {
				changed++
				if board[i].Status == domain.TicketResolved {
					c.logger.Debug("ticket countdown finished", "session", key, "ticket_id", board[i].ID)
				}
			}
		}
	}
	return changed
}
