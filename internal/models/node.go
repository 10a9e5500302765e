package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData holds the user-edited content of a node and whatever the last
// execution produced for it.
type NodeData struct {
	Text       string `json:"text,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	AudioURL   string `json:"audio_url,omitempty"`
	WebsiteURL string `json:"website_url,omitempty"`
	Voice      string `json:"voice,omitempty"`
	Status     string `json:"status,omitempty"`
	Error      string `json:"error,omitempty"`
}

type Node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// To satisfy postgres jsonb data type
type Nodes []Node

func (n *Nodes) Scan(value interface{}) error {
	return scanJSON(value, n)
}

func (n Nodes) Value() (driver.Value, error) {
	if n == nil {
		n = Nodes{}
	}
	return valueJSON(n)
}

type Edges []Edge

func (e *Edges) Scan(value interface{}) error {
	return scanJSON(value, e)
}

func (e Edges) Value() (driver.Value, error) {
	if e == nil {
		e = Edges{}
	}
	return valueJSON(e)
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("type assertion to []byte failed: %T", value)
	}
}

func valueJSON(value interface{}) (driver.Value, error) {
	bytes, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}

// Find returns a pointer into the slice so callers can update the node in place.
func (n Nodes) Find(id string) (*Node, bool) {
	for i := range n {
		if n[i].ID == id {
			return &n[i], true
		}
	}
	return nil, false
}
