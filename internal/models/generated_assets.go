package models

import "gorm.io/gorm"

// Image, Speech and Website are side tables recording generated files so
// they can be listed per whiteboard and removed with it.
type Image struct {
	gorm.Model
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	WhiteboardID uint   `gorm:"not null;index" json:"whiteboard_id"`
	NodeID       string `gorm:"not null" json:"node_id"`
	Prompt       string `json:"prompt"`
	ObjectKey    string `gorm:"not null" json:"-"`
	URL          string `gorm:"not null" json:"url"`
}

type Speech struct {
	gorm.Model
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	WhiteboardID uint   `gorm:"not null;index" json:"whiteboard_id"`
	NodeID       string `gorm:"not null" json:"node_id"`
	Text         string `json:"text"`
	Voice        string `json:"voice"`
	ObjectKey    string `gorm:"not null" json:"-"`
	URL          string `gorm:"not null" json:"url"`
}

type Website struct {
	gorm.Model
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	WhiteboardID uint   `gorm:"not null;index" json:"whiteboard_id"`
	NodeID       string `gorm:"not null" json:"node_id"`
	Prompt       string `json:"prompt"`
	ObjectKey    string `gorm:"not null" json:"-"`
	URL          string `gorm:"not null" json:"url"`
}

// AssetOwner identifies the node a generated file belongs to.
type AssetOwner struct {
	UserID       uint
	WhiteboardID uint
	NodeID       string
}

type WhiteboardAssets struct {
	Images   []Image   `json:"images"`
	Speeches []Speech  `json:"speeches"`
	Websites []Website `json:"websites"`
}
