package models

import "encoding/json"

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  []error     `json:"errors"`
	Data    interface{} `json:"data"`
}

// MarshalJSON writes Errors as their messages; error values have no
// exported fields and would otherwise encode as empty objects.
func (r Response) MarshalJSON() ([]byte, error) {
	messages := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		if err != nil {
			messages = append(messages, err.Error())
		}
	}
	return json.Marshal(struct {
		Success bool        `json:"success"`
		Message string      `json:"message"`
		Errors  []string    `json:"errors"`
		Data    interface{} `json:"data"`
	}{
		Success: r.Success,
		Message: r.Message,
		Errors:  messages,
		Data:    r.Data,
	})
}

type PaginatedResponse struct {
	Items interface{} `json:"items"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
	Total int64       `json:"total"`
}
