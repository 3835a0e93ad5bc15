package mission

// StubArchitecture returns the three-node development architecture:
//
//	Sensor-1 --> Compute-1 --> Control-1
//
// Compromising sensor-1 reaches all three components.
func StubArchitecture(id int64) *Architecture {
	return &Architecture{
		ID:          id,
		Name:        "Stub Architecture",
		Description: "Auto-generated stub for development",
		Components: []Component{
			{ID: "sensor-1", Name: "Sensor-1", Type: TypeSensor, Criticality: 7, Position: Position{X: 100, Y: 100}},
			{ID: "compute-1", Name: "Compute-1", Type: TypeCompute, Criticality: 8, Position: Position{X: 300, Y: 100}},
			{ID: "control-1", Name: "Control-1", Type: TypeControl, Criticality: 9, Position: Position{X: 500, Y: 100}},
		},
		Flows: []Flow{
			{ID: "flow-1", Source: "sensor-1", Target: "compute-1", CIARequirement: CIAIntegrity},
			{ID: "flow-2", Source: "compute-1", Target: "control-1", CIARequirement: CIAAvailability},
		},
	}
}
