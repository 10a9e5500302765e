package services

import (
	"context"
	"errors"
	"log/slog"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/execution"
	"nodeBoard/internal/models"
	"nodeBoard/internal/repositories"
	"sync"
	"time"
)

type ExecutionService struct {
	whiteboardRepo *repositories.WhiteboardRepository
	engine         *execution.Engine
	timeout        time.Duration

	mu      sync.Mutex
	running map[uint]bool
}

func NewExecutionService(whiteboardRepo *repositories.WhiteboardRepository, engine *execution.Engine, timeout time.Duration) *ExecutionService {
	return &ExecutionService{
		whiteboardRepo: whiteboardRepo,
		engine:         engine,
		timeout:        timeout,
		running:        make(map[uint]bool),
	}
}

// Execute runs the whiteboard from nodeID and stores the produced node data.
// The run is detached from ctx cancellation so a closed request does not
// leave a half-charged graph behind; it is bounded by the service timeout.
func (es *ExecutionService) Execute(ctx context.Context, userID, whiteboardID uint, nodeID string) (*execution.Result, error) {
	whiteboard, err := es.whiteboardRepo.FindUserWhiteboard(whiteboardID, userID)
	if err != nil {
		return nil, err
	}
	if _, ok := whiteboard.Nodes.Find(nodeID); !ok {
		return nil, errs.ErrNodeNotFound
	}

	if !es.acquire(whiteboardID) {
		return nil, errs.ErrExecutionInProgress
	}
	defer es.release(whiteboardID)

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), es.timeout)
	defer cancel()

	result, runErr := es.engine.Run(runCtx, execution.Run{
		UserID:       userID,
		WhiteboardID: whiteboardID,
		Nodes:        whiteboard.Nodes,
		Edges:        whiteboard.Edges,
		StartNodeID:  nodeID,
	})
	if result == nil {
		return nil, runErr
	}

	if err := es.persist(userID, whiteboardID, result); err != nil {
		return result, err
	}
	return result, runErr
}

func (es *ExecutionService) IsRunning(whiteboardID uint) bool {
	es.mu.Lock()
	defer es.mu.Unlock()
	return es.running[whiteboardID]
}

// persist merges the run's node data into the latest stored graph, so nodes
// added, moved or removed while the run was going are kept as the user left them.
func (es *ExecutionService) persist(userID, whiteboardID uint, result *execution.Result) error {
	latest, err := es.whiteboardRepo.FindUserWhiteboard(whiteboardID, userID)
	if err != nil {
		if errors.Is(err, errs.ErrWhiteboardNotFound) {
			slog.Warn("whiteboard deleted during execution", "whiteboard_id", whiteboardID, "run_id", result.RunID)
			return nil
		}
		return err
	}
	merged := mergeNodeData(latest.Nodes, result)
	if err := es.whiteboardRepo.UpdateNodes(whiteboardID, merged); err != nil {
		return err
	}
	result.Nodes = merged
	return nil
}

func (es *ExecutionService) acquire(whiteboardID uint) bool {
	es.mu.Lock()
	defer es.mu.Unlock()
	if es.running[whiteboardID] {
		return false
	}
	es.running[whiteboardID] = true
	return true
}

func (es *ExecutionService) release(whiteboardID uint) {
	es.mu.Lock()
	defer es.mu.Unlock()
	delete(es.running, whiteboardID)
}

// mergeNodeData copies data only for nodes the run touched.
func mergeNodeData(latest models.Nodes, result *execution.Result) models.Nodes {
	touched := make(map[string]bool, len(result.Executed)+len(result.Skipped)+len(result.Failed))
	for _, id := range result.Executed {
		touched[id] = true
	}
	for _, id := range result.Skipped {
		touched[id] = true
	}
	for _, failure := range result.Failed {
		touched[failure.NodeID] = true
	}

	merged := make(models.Nodes, len(latest))
	copy(merged, latest)
	for i := range merged {
		if !touched[merged[i].ID] {
			continue
		}
		if node, ok := result.Nodes.Find(merged[i].ID); ok && node.Type == merged[i].Type {
			merged[i].Data = node.Data
		}
	}
	return merged
}
