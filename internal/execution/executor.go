// Package execution walks a whiteboard graph depth first from a start node
// and runs the first executor that accepts each node it reaches.
package execution

import (
	"context"

	"nodeBoard/internal/models"
)

type Executor interface {
	Name() string
	// CreditType is charged once per successful CanExecute before Execute runs.
	CreditType() string
	CanExecute(node *models.Node, inputs Inputs) bool
	// Execute writes its output into job.Node.Data.
	Execute(ctx context.Context, job *Job) error
}

type Job struct {
	RunID        string
	UserID       uint
	WhiteboardID uint
	Node         *models.Node
	Inputs       Inputs
}

func (j *Job) Owner() models.AssetOwner {
	return models.AssetOwner{
		UserID:       j.UserID,
		WhiteboardID: j.WhiteboardID,
		NodeID:       j.Node.ID,
	}
}
