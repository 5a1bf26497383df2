// Package messaging defines interfaces for real-time communication.
package messaging

import "github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/workflow"

// OutcomeEvent is the wire payload pushed to dashboard clients when a bulk
// workflow reaches a terminal phase.
type OutcomeEvent struct {
	WorkflowID string               `json:"workflowId"`
	Action     string               `json:"action"`
	Phase      string               `json:"phase"`
	Message    string               `json:"message"`
	Processed  int                  `json:"processed"`
	Skipped    int                  `json:"skipped"`
	Errors     []workflow.ItemError `json:"errors,omitempty"`
	Timestamp  int64                `json:"timestamp"`
}

// OutcomeBroadcaster manages websocket client connections and pushes
// workflow outcome events to the sessions watching a tenant.
type OutcomeBroadcaster interface {
	BroadcastOutcome(tenantID, sessionID string, event OutcomeEvent)
	ClientCount(tenantID string) int
	Shutdown()
}
