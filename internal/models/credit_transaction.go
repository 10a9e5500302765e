package models

import "gorm.io/gorm"

// CreditTransaction is an append-only ledger row. Balances are the sum of
// Amount per (user, credit type); spends are stored as negative amounts.
type CreditTransaction struct {
	gorm.Model
	UserID       uint   `gorm:"not null;index:idx_credit_user_type" json:"user_id"`
	CreditType   string `gorm:"not null;index:idx_credit_user_type" json:"credit_type"`
	Kind         string `gorm:"not null" json:"kind"`
	Amount       int64  `gorm:"not null" json:"amount"`
	WhiteboardID *uint  `json:"whiteboard_id,omitempty"`
	NodeID       string `json:"node_id,omitempty"`
	Reference    string `json:"reference,omitempty"`
}

// CreditReference ties a ledger row back to what caused it.
type CreditReference struct {
	WhiteboardID *uint
	NodeID       string
	Reference    string
}

type CreditBalance struct {
	CreditType string `json:"credit_type"`
	Balance    int64  `json:"balance"`
}
