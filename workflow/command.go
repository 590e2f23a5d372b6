package workflow

import (
	"context"
	"errors"
	"sync"
)

type CommandKind string

const (
	CommandApproveProduct      CommandKind = "approve-product"
	CommandRejectProduct       CommandKind = "reject-product"
	CommandApproveStockRequest CommandKind = "approve-stock-request"
	CommandRejectStockRequest  CommandKind = "reject-stock-request"
	CommandApproveRefund       CommandKind = "approve-refund"
	CommandRejectRefund        CommandKind = "reject-refund"
	CommandUpdateOrderStatus   CommandKind = "update-order-status"
)

// Command is a requested side effect held until the user confirms it.
// Separating "what was requested" from "how it is confirmed" keeps
// the transition logic testable without any dialog harness.
type Command struct {
	Kind    CommandKind
	Payload any
}

var ErrNothingPending = errors.New("workflow: no command awaiting confirmation")

// Confirmer queues at most one command for confirmation and executes
// it through the registered handler when confirmed.
type Confirmer struct {
	mu      sync.Mutex
	pending *Command
	execute func(ctx context.Context, cmd Command) error
}

func NewConfirmer(execute func(ctx context.Context, cmd Command) error) *Confirmer {
	return &Confirmer{execute: execute}
}

// Request stages a command, replacing any previously staged one (the
// dialog shows only the latest request).
func (c *Confirmer) Request(cmd Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = &cmd
}

func (c *Confirmer) Pending() *Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Confirm executes the staged command. The stage is cleared before
// execution so a failed command is not silently re-runnable.
func (c *Confirmer) Confirm(ctx context.Context) error {
	c.mu.Lock()
	cmd := c.pending
	c.pending = nil
	c.mu.Unlock()

	if cmd == nil {
		return ErrNothingPending
	}
	return c.execute(ctx, *cmd)
}

// Cancel drops the staged command without executing it.
func (c *Confirmer) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}
