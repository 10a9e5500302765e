package execution

import (
	"context"

	"nodeBoard/internal/enums"
	"nodeBoard/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type walker struct {
	engine  *Engine
	run     Run
	graph   *graph
	visited map[string]bool
	quota   *quota
	result  *Result
}

// visit returns an error only when the whole run must stop. A failed node
// is recorded and its subtree is not entered; siblings still run.
func (w *walker) visit(ctx context.Context, nodeID string) error {
	if w.visited[nodeID] {
		return nil
	}
	w.visited[nodeID] = true

	if err := ctx.Err(); err != nil {
		return err
	}

	node := w.graph.node(nodeID)
	inputs := w.graph.inputs(nodeID)

	executor := w.engine.selectExecutor(node, inputs)
	if executor == nil {
		node.Data.Status = enums.NODE_STATUS_SKIPPED
		w.result.Skipped = append(w.result.Skipped, nodeID)
		w.nodeUpdated(ctx, node)
	} else {
		if err := w.quota.Check(w.run.ID); err != nil {
			return err
		}
		if err := w.execute(ctx, executor, node, inputs); err != nil {
			node.Data.Status = enums.NODE_STATUS_FAILED
			node.Data.Error = err.Error()
			w.result.Failed = append(w.result.Failed, NodeFailure{NodeID: nodeID, Error: err.Error()})
			w.nodeUpdated(ctx, node)
			w.engine.logger.Error("node execution failed",
				"run_id", w.run.ID,
				"whiteboard_id", w.run.WhiteboardID,
				"node_id", nodeID,
				"executor", executor.Name(),
				"error", err,
			)
			return nil
		}
		node.Data.Status = enums.NODE_STATUS_DONE
		node.Data.Error = ""
		w.result.Executed = append(w.result.Executed, nodeID)
		w.nodeUpdated(ctx, node)
	}

	for _, target := range w.graph.outgoing[nodeID] {
		if err := w.visit(ctx, target); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) execute(ctx context.Context, executor Executor, node *models.Node, inputs Inputs) (err error) {
	ctx, span := w.engine.tracer.Start(ctx, "execution.node", trace.WithAttributes(
		attribute.String("node.id", node.ID),
		attribute.String("node.type", node.Type),
		attribute.String("executor", executor.Name()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	node.Data.Status = enums.NODE_STATUS_RUNNING
	node.Data.Error = ""
	w.nodeUpdated(ctx, node)

	creditType := executor.CreditType()
	cost := w.engine.cost(creditType)
	whiteboardID := w.run.WhiteboardID
	ref := models.CreditReference{
		WhiteboardID: &whiteboardID,
		NodeID:       node.ID,
		Reference:    w.run.ID,
	}
	if cost > 0 {
		if err := w.engine.credits.Spend(w.run.UserID, creditType, cost, ref); err != nil {
			return err
		}
	}

	// Execute works on a copy so a failing provider call leaves the node as it was.
	working := *node
	job := &Job{
		RunID:        w.run.ID,
		UserID:       w.run.UserID,
		WhiteboardID: w.run.WhiteboardID,
		Node:         &working,
		Inputs:       inputs,
	}
	if err := executor.Execute(ctx, job); err != nil {
		if cost > 0 {
			if refundErr := w.engine.credits.Refund(w.run.UserID, creditType, cost, ref); refundErr != nil {
				w.engine.logger.Error("failed to refund credits",
					"run_id", w.run.ID, "user_id", w.run.UserID, "credit_type", creditType, "error", refundErr)
			}
		}
		return err
	}
	*node = working
	return nil
}

func (w *walker) nodeUpdated(ctx context.Context, node *models.Node) {
	w.engine.publish(context.WithoutCancel(ctx), w.run.WhiteboardID, enums.SOCKET_EVENT_NODE_UPDATED, models.NodeUpdatedPayload{
		RunID: w.run.ID,
		Node:  *node,
	})
}
