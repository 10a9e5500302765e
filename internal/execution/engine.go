package execution

import (
	"context"
	"log/slog"

	"nodeBoard/internal/enums"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/interfaces"
	"nodeBoard/internal/models"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const DefaultMaxSteps = 100

type Engine struct {
	executors []Executor
	credits   interfaces.CreditLedger
	publisher interfaces.EventPublisher
	costs     map[string]int64
	maxSteps  int
	tracer    trace.Tracer
	logger    *slog.Logger
}

type Option func(*Engine)

func WithMaxSteps(maxSteps int) Option {
	return func(e *Engine) {
		if maxSteps > 0 {
			e.maxSteps = maxSteps
		}
	}
}

// WithCosts sets the credits charged per credit type. Types missing from
// costs are charged 1; a zero cost makes the executor free.
func WithCosts(costs map[string]int64) Option {
	return func(e *Engine) {
		e.costs = costs
	}
}

func WithPublisher(publisher interfaces.EventPublisher) Option {
	return func(e *Engine) {
		e.publisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine keeps executors in the given order; the first whose CanExecute
// accepts a node wins.
func NewEngine(executors []Executor, credits interfaces.CreditLedger, opts ...Option) *Engine {
	e := &Engine{
		executors: executors,
		credits:   credits,
		maxSteps:  DefaultMaxSteps,
		tracer:    otel.Tracer("nodeBoard/execution"),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type Run struct {
	ID           string
	UserID       uint
	WhiteboardID uint
	Nodes        models.Nodes
	Edges        models.Edges
	StartNodeID  string
}

type NodeFailure struct {
	NodeID string `json:"node_id"`
	Error  string `json:"error"`
}

type Result struct {
	RunID    string        `json:"run_id"`
	Nodes    models.Nodes  `json:"nodes"`
	Executed []string      `json:"executed"`
	Skipped  []string      `json:"skipped"`
	Failed   []NodeFailure `json:"failed"`
}

// Run walks the graph from run.StartNodeID. run.Nodes is not modified; the
// updated copy is returned in Result.Nodes. A non-nil error together with a
// non-nil Result means the walk stopped early and the result is partial.
func (e *Engine) Run(ctx context.Context, run Run) (*Result, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	nodes := make(models.Nodes, len(run.Nodes))
	copy(nodes, run.Nodes)

	g := newGraph(nodes, run.Edges)
	if g.node(run.StartNodeID) == nil {
		return nil, errs.ErrNodeNotFound
	}

	ctx, span := e.tracer.Start(ctx, "execution.run", trace.WithAttributes(
		attribute.String("run.id", run.ID),
		attribute.Int("whiteboard.id", int(run.WhiteboardID)),
		attribute.String("node.start", run.StartNodeID),
	))
	defer span.End()

	e.publish(context.WithoutCancel(ctx), run.WhiteboardID, enums.SOCKET_EVENT_EXECUTION_STARTED, models.ExecutionStartedPayload{
		RunID:       run.ID,
		StartNodeID: run.StartNodeID,
	})

	w := &walker{
		engine:  e,
		run:     run,
		graph:   g,
		visited: make(map[string]bool, len(nodes)),
		quota:   newQuota(e.maxSteps),
		result: &Result{
			RunID:    run.ID,
			Nodes:    nodes,
			Executed: []string{},
			Skipped:  []string{},
			Failed:   []NodeFailure{},
		},
	}
	err := w.visit(ctx, run.StartNodeID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Warn("execution stopped", "run_id", run.ID, "whiteboard_id", run.WhiteboardID, "error", err)
	}

	e.publish(context.WithoutCancel(ctx), run.WhiteboardID, enums.SOCKET_EVENT_EXECUTION_FINISHED, w.result)
	return w.result, err
}

func (e *Engine) selectExecutor(node *models.Node, inputs Inputs) Executor {
	for _, executor := range e.executors {
		if executor.CanExecute(node, inputs) {
			return executor
		}
	}
	return nil
}

func (e *Engine) cost(creditType string) int64 {
	if cost, ok := e.costs[creditType]; ok {
		return cost
	}
	return 1
}

func (e *Engine) publish(ctx context.Context, whiteboardID uint, event string, payload interface{}) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.PublishWhiteboardEvent(ctx, whiteboardID, event, payload); err != nil {
		e.logger.Error("failed to publish whiteboard event", "whiteboard_id", whiteboardID, "event", event, "error", err)
	}
}
