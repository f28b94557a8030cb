package statemachine

import (
	"context"
	"fmt"

	"github.com/casaledger/casaledger-api/internal/models"

	"github.com/looplab/fsm"
)

// AdvanceFSM wraps a petty-cash advance with its state machine
type AdvanceFSM struct {
	advance *models.PettyCashAdvance
	fsm     *fsm.FSM
}

// NewAdvanceFSM creates a new advance state machine
func NewAdvanceFSM(advance *models.PettyCashAdvance) *AdvanceFSM {
	a := &AdvanceFSM{
		advance: advance,
	}

	a.fsm = fsm.NewFSM(
		advance.Status,
		fsm.Events{
			// open → partially_returned (first partial return or expense)
			{Name: "reconcile", Src: []string{models.AdvanceStatusOpen}, Dst: models.AdvanceStatusPartiallyReturned},

			// open/partially_returned → closed
			{Name: "close", Src: []string{models.AdvanceStatusOpen, models.AdvanceStatusPartiallyReturned}, Dst: models.AdvanceStatusClosed},
		},
		fsm.Callbacks{},
	)

	return a
}

// Reconcile marks the advance as partially returned after the first expense
// or return is registered. A no-op when already in that state.
func (a *AdvanceFSM) Reconcile(ctx context.Context) error {
	if a.advance.Status == models.AdvanceStatusPartiallyReturned {
		return nil
	}
	if err := a.fsm.Event(ctx, "reconcile"); err != nil {
		return fmt.Errorf("failed to reconcile advance: %w", err)
	}
	a.advance.Status = a.fsm.Current()
	return nil
}

// Close transitions the advance to closed. Callers must have verified the
// closing invariant (expenses plus returns equal to the advance) beforehand.
func (a *AdvanceFSM) Close(ctx context.Context) error {
	if !a.advance.MayClose() {
		return fmt.Errorf("advance cannot be closed in current state: %s", a.advance.Status)
	}
	if err := a.fsm.Event(ctx, "close"); err != nil {
		return fmt.Errorf("failed to close advance: %w", err)
	}
	a.advance.Status = a.fsm.Current()
	return nil
}

// Current returns the current state
func (a *AdvanceFSM) Current() string {
	return a.fsm.Current()
}
