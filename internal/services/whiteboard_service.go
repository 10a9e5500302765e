package services

import (
	"context"
	"log/slog"
	"nodeBoard/internal/enums"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/interfaces"
	"nodeBoard/internal/models"
	"nodeBoard/internal/repositories"
	"nodeBoard/internal/validators"
	"strings"
)

const DefaultWhiteboardTitle = "Untitled"

type WhiteboardService struct {
	whiteboardRepo     *repositories.WhiteboardRepository
	assetRepo          *repositories.AssetRepository
	fileManagerService *FileManagerService
	publisher          interfaces.EventPublisher
}

func NewWhiteboardService(
	whiteboardRepo *repositories.WhiteboardRepository,
	assetRepo *repositories.AssetRepository,
	fileManagerService *FileManagerService,
	publisher interfaces.EventPublisher,
) *WhiteboardService {
	return &WhiteboardService{
		whiteboardRepo:     whiteboardRepo,
		assetRepo:          assetRepo,
		fileManagerService: fileManagerService,
		publisher:          publisher,
	}
}

func (ws *WhiteboardService) CreateWhiteboard(userID uint, request *models.CreateWhiteboardRequest) (*models.Whiteboard, []error) {
	title := strings.TrimSpace(request.Title)
	if title == "" {
		title = DefaultWhiteboardTitle
	}
	if errors := validators.ValidateWhiteboardTitle(title); len(errors) > 0 {
		return nil, errors
	}

	nodes := request.Nodes
	if nodes == nil {
		nodes = models.Nodes{}
	}
	edges := request.Edges
	if edges == nil {
		edges = models.Edges{}
	}
	if errors := validators.ValidateGraph(nodes, edges); len(errors) > 0 {
		return nil, errors
	}

	whiteboard, err := ws.whiteboardRepo.CreateNewWhiteboard(&models.Whiteboard{
		UserID: userID,
		Title:  title,
		Nodes:  nodes,
		Edges:  edges,
	})
	if err != nil {
		return nil, []error{err}
	}
	return whiteboard, nil
}

func (ws *WhiteboardService) GetUserWhiteboards(userID uint, page, size int) (*models.PaginatedResponse, error) {
	whiteboards, total, err := ws.whiteboardRepo.GetUserWhiteboards(userID, page, size)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.WhiteboardSummary, 0, len(whiteboards))
	for i := range whiteboards {
		summaries = append(summaries, whiteboards[i].ToSummary())
	}
	return &models.PaginatedResponse{
		Items: summaries,
		Page:  page,
		Size:  size,
		Total: total,
	}, nil
}

func (ws *WhiteboardService) GetWhiteboard(userID, whiteboardID uint) (*models.Whiteboard, error) {
	return ws.whiteboardRepo.FindUserWhiteboard(whiteboardID, userID)
}

// UpdateWhiteboard renames and/or replaces the whole graph. Edges can only
// be sent together with Nodes.
func (ws *WhiteboardService) UpdateWhiteboard(ctx context.Context, userID, whiteboardID uint, request *models.UpdateWhiteboardRequest) (*models.Whiteboard, []error) {
	if request.Edges != nil && request.Nodes == nil {
		return nil, []error{errs.ErrInvalidRequestBody}
	}

	whiteboard, err := ws.whiteboardRepo.FindUserWhiteboard(whiteboardID, userID)
	if err != nil {
		return nil, []error{err}
	}

	if request.Title != nil {
		title := strings.TrimSpace(*request.Title)
		if title == "" {
			title = DefaultWhiteboardTitle
		}
		if errors := validators.ValidateWhiteboardTitle(title); len(errors) > 0 {
			return nil, errors
		}
		whiteboard.Title = title
	}

	if request.Nodes != nil {
		nodes := *request.Nodes
		if nodes == nil {
			nodes = models.Nodes{}
		}
		edges := models.Edges{}
		if request.Edges != nil && *request.Edges != nil {
			edges = *request.Edges
		}
		if errors := validators.ValidateGraph(nodes, edges); len(errors) > 0 {
			return nil, errors
		}
		whiteboard.Nodes = nodes
		whiteboard.Edges = edges
	}

	if err := ws.whiteboardRepo.SaveWhiteboard(whiteboard); err != nil {
		return nil, []error{err}
	}

	ws.publish(ctx, whiteboard.ID, enums.SOCKET_EVENT_WHITEBOARD_UPDATED, whiteboard)
	return whiteboard, nil
}

// DeleteWhiteboard removes the rows first; stored files that fail to delete
// are only logged since nothing references them anymore.
func (ws *WhiteboardService) DeleteWhiteboard(ctx context.Context, userID, whiteboardID uint) error {
	whiteboard, err := ws.whiteboardRepo.FindUserWhiteboard(whiteboardID, userID)
	if err != nil {
		return err
	}
	assets, err := ws.assetRepo.GetWhiteboardAssets(whiteboard.ID)
	if err != nil {
		return err
	}
	if err := ws.whiteboardRepo.DeleteWhiteboard(whiteboard.ID); err != nil {
		return err
	}

	if ws.fileManagerService != nil {
		for _, err := range ws.fileManagerService.DeleteAssets(ctx, assets) {
			slog.Warn("failed to delete whiteboard file", "whiteboard_id", whiteboard.ID, "error", err)
		}
	}

	ws.publish(ctx, whiteboard.ID, enums.SOCKET_EVENT_WHITEBOARD_DELETED, models.WhiteboardSummary{ID: whiteboard.ID, Title: whiteboard.Title})
	return nil
}

func (ws *WhiteboardService) GetWhiteboardAssets(userID, whiteboardID uint) (*models.WhiteboardAssets, error) {
	whiteboard, err := ws.whiteboardRepo.FindUserWhiteboard(whiteboardID, userID)
	if err != nil {
		return nil, err
	}
	return ws.assetRepo.GetWhiteboardAssets(whiteboard.ID)
}

func (ws *WhiteboardService) SaveNodes(whiteboardID uint, nodes models.Nodes) error {
	return ws.whiteboardRepo.UpdateNodes(whiteboardID, nodes)
}

func (ws *WhiteboardService) publish(ctx context.Context, whiteboardID uint, event string, payload interface{}) {
	if ws.publisher == nil {
		return
	}
	if err := ws.publisher.PublishWhiteboardEvent(ctx, whiteboardID, event, payload); err != nil {
		slog.Error("failed to publish whiteboard event", "whiteboard_id", whiteboardID, "event", event, "error", err)
	}
}
