package statemachine

import (
	"context"
	"fmt"

	"github.com/casaledger/casaledger-api/internal/models"

	"github.com/looplab/fsm"
)

// ProjectFSM wraps a project with its state machine
type ProjectFSM struct {
	project *models.Project
	fsm     *fsm.FSM
}

// NewProjectFSM creates a new project state machine
func NewProjectFSM(project *models.Project) *ProjectFSM {
	p := &ProjectFSM{
		project: project,
	}

	p.fsm = fsm.NewFSM(
		project.Status,
		fsm.Events{
			// prospect → active
			{Name: "activate", Src: []string{models.ProjectStatusProspect}, Dst: models.ProjectStatusActive},

			// active → completed
			{Name: "complete", Src: []string{models.ProjectStatusActive}, Dst: models.ProjectStatusCompleted},

			// prospect/active → cancelled
			{Name: "cancel", Src: []string{models.ProjectStatusProspect, models.ProjectStatusActive}, Dst: models.ProjectStatusCancelled},
		},
		fsm.Callbacks{},
	)

	return p
}

// Activate transitions the project to active
func (p *ProjectFSM) Activate(ctx context.Context) error {
	if !p.project.MayActivate() {
		return fmt.Errorf("project cannot be activated in current state: %s", p.project.Status)
	}
	if err := p.fsm.Event(ctx, "activate"); err != nil {
		return fmt.Errorf("failed to activate project: %w", err)
	}
	p.project.Status = p.fsm.Current()
	return nil
}

// Complete transitions the project to completed
func (p *ProjectFSM) Complete(ctx context.Context) error {
	if !p.project.MayComplete() {
		return fmt.Errorf("project cannot be completed in current state: %s", p.project.Status)
	}
	if err := p.fsm.Event(ctx, "complete"); err != nil {
		return fmt.Errorf("failed to complete project: %w", err)
	}
	p.project.Status = p.fsm.Current()
	return nil
}

// Cancel transitions the project to cancelled
func (p *ProjectFSM) Cancel(ctx context.Context) error {
	if !p.project.MayCancel() {
		return fmt.Errorf("project cannot be cancelled in current state: %s", p.project.Status)
	}
	if err := p.fsm.Event(ctx, "cancel"); err != nil {
		return fmt.Errorf("failed to cancel project: %w", err)
	}
	p.project.Status = p.fsm.Current()
	return nil
}

// Current returns the current state
func (p *ProjectFSM) Current() string {
	return p.fsm.Current()
}
