package advisor

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fiplan/goal-tracker/internal/domain"
)

// Tip texts shown when no advice can be produced
const (
	NoTipAvailable = "No tip available"
	TipUnavailable = "Unable to fetch tip"
	NoExpensesTip  = "Add expenses to get personalized tips"
)

// Advisor turns plan figures into one-line tips
type Advisor struct {
	Provider Provider
	Logger   *log.Logger
}

// New creates an advisor. A nil logger uses the default logger.
func New(provider Provider, logger *log.Logger) *Advisor {
	if logger == nil {
		logger = log.Default()
	}
	return &Advisor{Provider: provider, Logger: logger}
}

// IncomeTip asks for one tip to grow passive income. It always returns
// displayable text.
func (a *Advisor) IncomeTip(ctx context.Context, snap domain.Snapshot) string {
	return a.ask(ctx, "income", IncomeTipPrompt(BreakdownFor(snap)))
}

// ExpenseTip asks for one cost-cutting tip. It always returns displayable text.
func (a *Advisor) ExpenseTip(ctx context.Context, expenses []domain.ExpenseItem) string {
	prompt, ok := ExpenseTipPrompt(expenses)
	if !ok {
		return NoExpensesTip
	}
	return a.ask(ctx, "expense", prompt)
}

// Chat forwards a free-form message
func (a *Advisor) Chat(ctx context.Context, message string) (string, error) {
	if a.Provider == nil {
		return "", ErrNoProvider
	}
	return a.Provider.Reply(ctx, message)
}

func (a *Advisor) ask(ctx context.Context, kind, prompt string) string {
	if a.Provider == nil {
		return TipUnavailable
	}
	reply, err := a.Provider.Reply(ctx, prompt)
	if errors.Is(err, ErrEmptyReply) {
		return NoTipAvailable
	}
	if err != nil {
		a.Logger.Error("Error fetching tip", "kind", kind, "error", err)
		return TipUnavailable
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return NoTipAvailable
	}
	a.Logger.Debug("Received tip", "kind", kind, "tip", reply)
	return reply
}
