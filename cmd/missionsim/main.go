// Command missionsim runs attack scenarios against a mission architecture
// file and prints the impact.
//
// Usage:
//
//	missionsim -arch plant.yaml -target plc-1
//	missionsim -arch plant.yaml -all
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/missionsim/pkg/config"
	"github.com/dd0wney/missionsim/pkg/logging"
	"github.com/dd0wney/missionsim/pkg/mission"
	"github.com/dd0wney/missionsim/pkg/report"
	"github.com/dd0wney/missionsim/pkg/simulator"
	"github.com/dd0wney/missionsim/pkg/validation"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitInvalid = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("missionsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	archPath := fs.String("arch", "", "Architecture file (YAML or JSON)")
	target := fs.String("target", "", "Component to compromise")
	scenario := fs.String("scenario", "node_compromise", "Attack scenario")
	topN := fs.Int("top", 10, "Number of components in the criticality ranking")
	all := fs.Bool("all", false, "Compromise every component in turn and print the blast radius table")
	asJSON := fs.Bool("json", false, "Print results as JSON")
	verbose := fs.Bool("v", false, "Log engine activity to stderr")
	version := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitInvalid
	}

	if *version {
		fmt.Fprintf(stdout, "missionsim %s\n", config.Version)
		return exitOK
	}

	if *archPath == "" {
		fmt.Fprintln(stderr, "missionsim: -arch is required")
		fs.Usage()
		return exitInvalid
	}
	if !*all && *target == "" {
		fmt.Fprintln(stderr, "missionsim: -target is required unless -all is set")
		return exitInvalid
	}

	level := logging.WarnLevel
	if *verbose {
		level = logging.DebugLevel
	}
	logger := logging.NewJSONLogger(stderr, level)

	arch, err := mission.LoadFile(*archPath)
	if err != nil {
		return fail(stderr, err)
	}
	if err := validation.ValidateArchitecture(arch); err != nil {
		return fail(stderr, err)
	}

	sim, err := simulator.New(arch,
		simulator.WithLogger(logger),
		simulator.WithTopN(*topN),
	)
	if err != nil {
		return fail(stderr, err)
	}

	if *all {
		results, err := blastRadius(sim, arch, *scenario)
		if err != nil {
			return fail(stderr, err)
		}
		if *asJSON {
			return writeJSON(stdout, stderr, results)
		}
		fmt.Fprintln(stdout, report.NewRenderer(stdout).BlastRadius(results))
		return exitOK
	}

	res, err := sim.Run(*scenario, *target)
	if err != nil {
		return fail(stderr, err)
	}
	if *asJSON {
		return writeJSON(stdout, stderr, res)
	}
	if err := report.Write(stdout, res); err != nil {
		return fail(stderr, err)
	}
	return exitOK
}

// blastRadius runs scenario once per component, in declaration order.
func blastRadius(sim *simulator.Simulator, arch *mission.Architecture, scenario string) ([]*simulator.Result, error) {
	results := make([]*simulator.Result, 0, len(arch.Components))
	for _, c := range arch.Components {
		res, err := sim.Run(scenario, c.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func writeJSON(stdout, stderr io.Writer, v any) int {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fail(stderr, err)
	}
	return exitOK
}

// fail reports err and picks the exit code: invalid input exits 2,
// anything else exits 1.
func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "missionsim: %v\n", err)
	if errors.Is(err, simulator.ErrValidation) || errors.Is(err, validation.ErrInvalid) {
		return exitInvalid
	}
	return exitFailure
}
