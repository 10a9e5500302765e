package models

import "gorm.io/gorm"

// Whiteboard keeps its graph embedded as two jsonb columns; nodes and edges
// are never queried on their own.
type Whiteboard struct {
	gorm.Model
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Title  string `gorm:"not null" json:"title"`
	Nodes  Nodes  `gorm:"type:jsonb" json:"nodes"`
	Edges  Edges  `gorm:"type:jsonb" json:"edges"`
}

type WhiteboardSummary struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	NodeCount int    `json:"node_count"`
	UpdatedAt string `json:"updated_at"`
}

func (whiteboard *Whiteboard) ToSummary() WhiteboardSummary {
	return WhiteboardSummary{
		ID:        whiteboard.ID,
		Title:     whiteboard.Title,
		NodeCount: len(whiteboard.Nodes),
		UpdatedAt: whiteboard.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

type CreateWhiteboardRequest struct {
	Title string `json:"title"`
	Nodes Nodes  `json:"nodes"`
	Edges Edges  `json:"edges"`
}

// UpdateWhiteboardRequest replaces the graph only when Nodes is present;
// Edges without Nodes is rejected.
type UpdateWhiteboardRequest struct {
	Title *string `json:"title"`
	Nodes *Nodes  `json:"nodes"`
	Edges *Edges  `json:"edges"`
}

type ExecuteRequest struct {
	NodeID string `json:"node_id" binding:"required"`
}
