package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/missionsim/pkg/mission"
	"github.com/dd0wney/missionsim/pkg/simulator"
)

const pumpStation = `
name: Pump station
components:
  - id: plc
    name: PLC
    type: Control
    criticality: 9
  - id: hmi
    name: HMI
    type: Compute
  - id: historian
    name: Historian
    type: Storage
    criticality: 4
flows:
  - id: f1
    source: plc
    target: hmi
  - id: f2
    source: hmi
    target: historian
`

func writeArch(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Report(t *testing.T) {
	path := writeArch(t, pumpStation)

	code, out, errOut := runCLI("-arch", path, "-target", "hmi")
	require.Equal(t, exitOK, code, errOut)

	assert.Contains(t, out, "Mission attack simulation: node_compromise on hmi")
	assert.Contains(t, out, "33.3%")
	assert.Contains(t, out, "Historian")
	assert.Empty(t, errOut)
}

func TestRun_JSON(t *testing.T) {
	path := writeArch(t, pumpStation)

	code, out, errOut := runCLI("-arch", path, "-target", "plc", "-json", "-top", "2")
	require.Equal(t, exitOK, code, errOut)

	var res simulator.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "plc", res.TargetComponentID)
	assert.Equal(t, []string{"plc", "hmi", "historian"}, res.AffectedComponents)
	assert.InDelta(t, 0.0, res.CompromisedScore, 1e-9)
	assert.Len(t, res.CriticalityRanking, 2)
}

func TestRun_BlastRadius(t *testing.T) {
	path := writeArch(t, pumpStation)

	code, out, errOut := runCLI("-arch", path, "-all", "-json")
	require.Equal(t, exitOK, code, errOut)

	var results []simulator.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "plc", results[0].TargetComponentID)
	assert.Len(t, results[0].AffectedComponents, 3)
	assert.Len(t, results[2].AffectedComponents, 1)

	code, out, _ = runCLI("-arch", path, "-all")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Target")
	assert.Contains(t, out, "historian")
}

func TestRun_ExitCodes(t *testing.T) {
	good := writeArch(t, pumpStation)
	dangling := writeArch(t, `
name: Broken
components:
  - {id: a, name: A, type: Sensor}
flows:
  - {id: f1, source: a, target: ghost}
`)
	unnamed := writeArch(t, `
components:
  - {id: a, name: A, type: Sensor}
`)

	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr string
	}{
		{"missing arch flag", []string{"-target", "a"}, exitInvalid, "-arch is required"},
		{"missing target", []string{"-arch", good}, exitInvalid, "-target is required"},
		{"unknown flag", []string{"-bogus"}, exitInvalid, "flag provided but not defined"},
		{"unknown target", []string{"-arch", good, "-target", "nope"}, exitInvalid, "nope"},
		{"unknown scenario", []string{"-arch", good, "-target", "plc", "-scenario", "ddos"}, exitInvalid, "ddos"},
		{"dangling flow", []string{"-arch", dangling, "-target", "a"}, exitInvalid, "ghost"},
		{"missing name", []string{"-arch", unnamed, "-target", "a"}, exitInvalid, "invalid request"},
		{"missing file", []string{"-arch", filepath.Join(t.TempDir(), "none.yaml"), "-target", "a"}, exitFailure, "failed to open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(tt.args...)
			assert.Equal(t, tt.want, code)
			assert.Contains(t, errOut, tt.wantErr)
		})
	}
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI("-version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "missionsim ")
}

func TestExampleArchitectures(t *testing.T) {
	paths, err := filepath.Glob("../../examples/architectures/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			code, out, errOut := runCLI("-arch", path, "-all", "-json")
			require.Equal(t, exitOK, code, errOut)

			var results []simulator.Result
			require.NoError(t, json.Unmarshal([]byte(out), &results))
			assert.NotEmpty(t, results)
		})
	}
}

func TestExampleStubMatchesBuiltIn(t *testing.T) {
	loaded, err := mission.LoadFile("../../examples/architectures/stub.yaml")
	require.NoError(t, err)
	assert.Equal(t, mission.StubArchitecture(0), loaded)
}
