package api

import (
	"github.com/dd0wney/missionsim/pkg/mission"
)

// SimulateRequest is the body of POST /simulate: an architecture that is
// simulated without being stored.
type SimulateRequest struct {
	Architecture      *mission.Architecture `json:"architecture"`
	ScenarioType      string                `json:"scenario_type,omitempty"`
	TargetComponentID string                `json:"target_component_id"`
}

// ArchitectureListResponse is returned by GET /architectures.
type ArchitectureListResponse struct {
	Architectures []mission.ArchitectureSummary `json:"architectures"`
	Count         int                           `json:"count"`
}

// ErrorResponse represents an error response. Detail carries the message
// a planner is shown.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
	Code   int    `json:"code"`
}
