package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dd0wney/missionsim/pkg/logging"
	"github.com/dd0wney/missionsim/pkg/mission"
	"github.com/dd0wney/missionsim/pkg/simulator"
	"github.com/dd0wney/missionsim/pkg/store"
)

const (
	defaultScenario   = "node_compromise"
	simulationFailure = "An unexpected error occurred during simulation."

	// unsupportedScenarioLabel keeps caller-chosen scenario names out of
	// metric labels.
	unsupportedScenarioLabel = "unsupported"
)

func (s *Server) handleListArchitectures(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.internalError(w, r, "list architectures", "Failed to list architectures.", err)
		return
	}
	if list == nil {
		list = []mission.ArchitectureSummary{}
	}
	s.respondJSON(w, http.StatusOK, ArchitectureListResponse{Architectures: list, Count: len(list)})
}

func (s *Server) handleCreateArchitecture(w http.ResponseWriter, r *http.Request) {
	var arch mission.Architecture
	rd := s.newRequestDecoder(w, r).DecodeJSON(&arch).ValidateArchitecture(&arch)
	if rd.RespondError() {
		return
	}

	// Referential integrity is the graph builder's job; reject before storing.
	if _, err := simulator.BuildGraph(&arch); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	arch.ID = 0
	created, err := s.store.Create(r.Context(), &arch)
	if err != nil {
		s.internalError(w, r, "create architecture", "Failed to store architecture.", err)
		return
	}

	s.requestLogger(r).Info("architecture created",
		logging.ArchitectureID(created.ID),
		logging.Count(len(created.Components)),
	)
	w.Header().Set("Location", fmt.Sprintf("/architectures/%d", created.ID))
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetArchitecture(w http.ResponseWriter, r *http.Request) {
	arch, ok := s.loadArchitecture(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, arch)
}

// handleSimulateStored runs a scenario against a stored architecture.
// Query parameters are checked before the architecture is looked up.
func (s *Server) handleSimulateStored(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scenario := defaultScenario
	if q.Has("scenario_type") {
		scenario = q.Get("scenario_type")
	}
	target := q.Get("target_component_id")

	if s.newRequestDecoder(w, r).ValidateTarget(target).RespondError() {
		return
	}

	arch, ok := s.loadArchitecture(w, r)
	if !ok {
		return
	}

	s.runSimulation(w, r, arch, scenario, target)
}

// handleSimulateInline runs a scenario against an architecture carried in
// the request body. Nothing is stored.
func (s *Server) handleSimulateInline(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	rd := s.newRequestDecoder(w, r).DecodeJSON(&req)
	if !rd.HasError() {
		rd.ValidateTarget(req.TargetComponentID).ValidateArchitecture(req.Architecture)
	}
	if rd.RespondError() {
		return
	}

	scenario := req.ScenarioType
	if scenario == "" {
		scenario = defaultScenario
	}
	s.runSimulation(w, r, req.Architecture, scenario, req.TargetComponentID)
}

// loadArchitecture fetches the architecture named by the {id} path segment,
// writing the error response itself when it cannot.
func (s *Server) loadArchitecture(w http.ResponseWriter, r *http.Request) (*mission.Architecture, bool) {
	id, err := parseArchitectureID(r)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}

	arch, err := s.store.Get(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("Architecture %d not found.", id))
		return nil, false
	case err != nil:
		s.internalError(w, r, "load architecture", "Failed to load architecture.", err)
		return nil, false
	}
	return arch, true
}

func (s *Server) runSimulation(w http.ResponseWriter, r *http.Request, arch *mission.Architecture, scenario, target string) {
	result, err := s.simulate(r.Context(), s.requestLogger(r), arch, scenario, target)
	if err != nil {
		var ve *simulator.ValidationError
		if errors.As(err, &ve) {
			s.respondError(w, http.StatusUnprocessableEntity, ve.Error())
			return
		}
		s.internalError(w, r, "simulation", simulationFailure, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

// simulate builds a simulator for arch and runs one scenario inside a span,
// recording the outcome in the metrics registry. Engine panics are returned
// as errors so they surface as a 500 with the simulation message.
func (s *Server) simulate(ctx context.Context, logger logging.Logger, arch *mission.Architecture, scenario, target string) (result *simulator.Result, err error) {
	label := s.scenarioLabel(scenario)
	_, span := s.tracer.Start(ctx, "simulate", trace.WithAttributes(
		attribute.Int64("architecture.id", arch.ID),
		attribute.String("simulation.scenario", label),
		attribute.String("simulation.target", target),
		attribute.Int("architecture.components", len(arch.Components)),
	))
	defer span.End()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("simulation panicked: %v", p)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			kind, _ := simulator.KindOf(err)
			s.metricsRegistry.RecordSimulationFailure(label, string(kind))
		}
	}()

	start := time.Now()
	sim, err := simulator.New(arch,
		simulator.WithLogger(logger.With(logging.ArchitectureID(arch.ID))),
		simulator.WithScenarios(s.scenarios...),
		simulator.WithTopN(s.topN),
	)
	if err != nil {
		return nil, err
	}

	result, err = sim.Run(scenario, target)
	if err != nil {
		return nil, err
	}

	s.metricsRegistry.RecordSimulation(label, time.Since(start), sim.NodeCount(),
		len(result.AffectedComponents), result.ScoreDelta)
	span.SetAttributes(
		attribute.Int("simulation.affected", len(result.AffectedComponents)),
		attribute.Float64("simulation.score_delta", result.ScoreDelta),
	)
	span.SetStatus(codes.Ok, "")
	return result, nil
}

// scenarioLabel returns the normalized scenario name when it is supported.
func (s *Server) scenarioLabel(scenario string) string {
	name := simulator.NormalizeScenario(scenario)
	if slices.Contains(s.SupportedScenarios(), name) {
		return name
	}
	return unsupportedScenarioLabel
}
