package ringcentral

import "github.com/secmon-lab/ringsync/pkg/domain/model"

// ErrorResponse is the platform's fault body
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// listUsersResponse is the SCIM list envelope of the Users endpoint
type listUsersResponse struct {
	TotalResults int          `json:"totalResults"`
	StartIndex   int          `json:"startIndex"`
	ItemsPerPage int          `json:"itemsPerPage"`
	Resources    []model.User `json:"Resources"`
}

// listCallQueuesResponse is the envelope of the call-queues and the queue
// members endpoints; the members endpoint reuses the same record shape
type listCallQueuesResponse struct {
	URI     string            `json:"uri,omitempty"`
	Records []model.CallQueue `json:"records"`
}
