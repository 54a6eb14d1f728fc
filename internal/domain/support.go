package domain

import "fmt"

const (
	TicketPending    = "pending"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"

	resolvedLabel = "Resolved"
)

type TicketRequest struct {
	ProductID   int64  `json:"productId"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

func (r TicketRequest) Validate() error {
	if r.ProductID == 0 || r.Subject == "" {
		return ErrTicketIncomplete
	}
	return nil
}

type Ticket struct {
	ID                    int64   `json:"id"`
	ProductID             int64   `json:"productId"`
	ProductName           string  `json:"productName"`
	ProductSKU            string  `json:"productSku"`
	Subject               string  `json:"subject"`
	Description           string  `json:"description"`
	Status                string  `json:"status"`
	StatusLabel           string  `json:"statusLabel"`
	CreatedAt             string  `json:"createdAt"`
	ResolvedAt            *string `json:"resolvedAt"`
	ScheduledResolutionAt string  `json:"scheduledResolutionAt"`
	RemainingSeconds      int     `json:"remainingSeconds"`
}

// Tick advances the local countdown by one second. A pending ticket that
// reaches zero is shown as resolved until the server says otherwise.
// It reports whether anything changed.
func (t *Ticket) Tick() bool {
	if t.Status != TicketPending || t.RemainingSeconds <= 0 {
		return false
	}
	t.RemainingSeconds--
	if t.RemainingSeconds <= 0 {
		t.Status = TicketResolved
		t.StatusLabel = resolvedLabel
	}
	return true
}

func (t Ticket) RemainingLabel() string {
	return FormatRemaining(t.RemainingSeconds)
}

// FormatRemaining renders seconds as mm:ss.
func FormatRemaining(seconds int) string {
	if seconds <= 0 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func CountByStatus(tickets []Ticket, status string) int {
	n := 0
	for _, t := range tickets {
		if t.Status == status {
			n++
		}
	}
	return n
}
