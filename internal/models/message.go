package models

// Message represents a row in the message table. PostedBy references
// account.account_id; TimePostedEpoch is supplied by the caller, not the
// store.
type Message struct {
	ID              int    `json:"message_id"`
	PostedBy        int    `json:"posted_by"`
	Text            string `json:"message_text"`
	TimePostedEpoch int64  `json:"time_posted_epoch"`
}

// CreateMessageRequest is the JSON body for POST /messages.
type CreateMessageRequest struct {
	PostedBy        int    `json:"posted_by"`
	Text            string `json:"message_text"`
	TimePostedEpoch int64  `json:"time_posted_epoch"`
}

// UpdateMessageRequest is the JSON body for PATCH /messages/{message_id}.
type UpdateMessageRequest struct {
	Text string `json:"message_text"`
}
