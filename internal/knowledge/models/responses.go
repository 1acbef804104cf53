package models

// ActionResponse is the success envelope shared by all mutating workflow
// endpoints: {"message": "...", "result": true}. Errors use the same shape
// with result=false, written by the transport layer.
type ActionResponse struct {
	Message string `json:"message"`
	Result  bool   `json:"result"`
}

// QueueResponse wraps a review queue listing.
type QueueResponse struct {
	Resources []*KnowledgeResource `json:"resources"`
	Total     int                  `json:"total"`
}
