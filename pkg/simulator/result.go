package simulator

// Result is the outcome of one simulation run.
type Result struct {
	ArchitectureID         int64       `json:"architecture_id"`
	ScenarioType           string      `json:"scenario_type"`
	TargetComponentID      string      `json:"target_component_id"`
	BaselineScore          float64     `json:"baseline_score"`
	CompromisedScore       float64     `json:"compromised_score"`
	ScoreDelta             float64     `json:"score_delta"`
	AffectedComponents     []string    `json:"affected_components"`
	AffectedComponentNames []string    `json:"affected_component_names"`
	AttackPath             []string    `json:"attack_path"`
	Explanation            string      `json:"explanation"`
	CriticalityRanking     []RankEntry `json:"criticality_ranking"`
}
