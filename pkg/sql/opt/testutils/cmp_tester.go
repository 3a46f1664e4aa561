// Copyright 2018 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package testutils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/cmpgraph/pkg/sql/opt/cmpgraph"
	"github.com/cockroachdb/cmpgraph/pkg/sql/opt/testutils/testexpr"
	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
)

// CmpTester is a helper for testing the comparison graph from datadriven
// files. A file usually starts with a build command, and the commands that
// follow it query the graph that was built last.
type CmpTester struct {
	Flags CmpTesterFlags

	graph *cmpgraph.Graph
	exprs []*testexpr.Expr
}

// CmpTesterFlags are control knobs for tests. Note that specific testcases can
// override these defaults.
type CmpTesterFlags struct {
	// Trace includes the events reported to the graph's Observer in the
	// output of the build command.
	Trace bool

	// FullRelaxation disables the early exit of the path search, so that each
	// query runs the maximum number of rounds.
	FullRelaxation bool
}

// NewCmpTester constructs a new instance of the CmpTester.
func NewCmpTester() *CmpTester {
	return &CmpTester{}
}

// RunCommand implements the following commands:
//
//   - build [trace] [full-relaxation]
//
//     Builds a graph from the input, which has one fact per line, and
//     outputs its classes and edges.
//
//   - compare
//
//     Each input line has the form "<left> ? <right>". Outputs the result of
//     comparing the two expressions.
//
//   - equal
//
//     Each input line is an expression. Outputs the expressions known to be
//     equal to it, sorted.
//
//   - implies
//
//     Each input line is a fact. Outputs whether the graph proves the fact.
//
//   - contradicts
//
//     Each input line is a fact. Outputs whether the graph disproves the fact.
//
//   - matrix
//
//     Outputs the comparison of every operand of the last build against every
//     other one.
//
// Supported flags:
//
//   - trace: include observer events in the build output.
//
//   - full-relaxation: disable the early exit of the path search.
func (ct *CmpTester) RunCommand(t *testing.T, d *datadriven.TestData) string {
	// Allow testcases to override the flags for a single command.
	flags := ct.Flags
	for _, a := range d.CmdArgs {
		if err := flags.Set(a); err != nil {
			d.Fatalf(t, "%+v", err)
		}
	}

	if d.Cmd != "build" && ct.graph == nil {
		d.Fatalf(t, "%s requires a preceding build", d.Cmd)
	}

	switch d.Cmd {
	case "build":
		var trace traceObserver
		cfg := cmpgraph.Config{
			TestingKnobs: cmpgraph.TestingKnobs{
				DisableEarlyRelaxationExit: flags.FullRelaxation,
			},
		}
		if flags.Trace {
			cfg.Observer = &trace
		}
		ct.graph, ct.exprs = BuildGraph(t, d.Input, cfg)
		return trace.String() + ct.graph.String()

	case "compare":
		return ct.forEachLine(t, d, func(line string) (string, error) {
			parts := strings.Split(line, "?")
			if len(parts) != 2 {
				return "", errors.Newf("expected <left> ? <right>, found %q", line)
			}
			left, err := testexpr.Parse(parts[0])
			if err != nil {
				return "", err
			}
			right, err := testexpr.Parse(parts[1])
			if err != nil {
				return "", err
			}
			return ct.graph.Compare(left, right).String(), nil
		})

	case "equal":
		return ct.forEachLine(t, d, func(line string) (string, error) {
			e, err := testexpr.Parse(line)
			if err != nil {
				return "", err
			}
			return FormatExprs(ct.graph.EqualSet(e)), nil
		})

	case "implies", "contradicts":
		return ct.forEachLine(t, d, func(line string) (string, error) {
			f, err := testexpr.ParseFact(line)
			if err != nil {
				return "", err
			}
			if d.Cmd == "implies" {
				return fmt.Sprint(ct.graph.Implies(f)), nil
			}
			return fmt.Sprint(ct.graph.Contradicts(f)), nil
		})

	case "matrix":
		return FormatMatrix(ct.graph, ct.exprs)

	default:
		d.Fatalf(t, "unsupported command: %s", d.Cmd)
		return ""
	}
}

// forEachLine runs fn on every non-empty input line and outputs one
// "<line> => <result>" line per input line.
func (ct *CmpTester) forEachLine(
	t *testing.T, d *datadriven.TestData, fn func(line string) (string, error),
) string {
	var b strings.Builder
	for _, line := range strings.Split(d.Input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		res, err := fn(line)
		if err != nil {
			d.Fatalf(t, "%+v", err)
		}
		fmt.Fprintf(&b, "%s => %s\n", line, res)
	}
	return b.String()
}

// Set parses an argument that refers to a flag.
// See CmpTester.RunCommand for supported flags.
func (f *CmpTesterFlags) Set(arg datadriven.CmdArg) error {
	switch arg.Key {
	case "trace":
		f.Trace = true
	case "full-relaxation":
		f.FullRelaxation = true
	default:
		return errors.Newf("unknown argument: %s", arg.Key)
	}
	return nil
}

// traceObserver records the events of graph construction, one per line.
type traceObserver struct {
	b strings.Builder
}

var _ cmpgraph.Observer = (*traceObserver)(nil)

func (o *traceObserver) FactAccepted(f cmpgraph.Fact) {
	fmt.Fprintf(&o.b, "accepted: %s\n", f)
}

func (o *traceObserver) FactSkipped(f cmpgraph.Fact, unresolved cmpgraph.Expr) {
	fmt.Fprintf(&o.b, "skipped: %s (%v collides)\n", f, unresolved)
}

func (o *traceObserver) StrictCycleCollapsed(members []cmpgraph.Expr) {
	fmt.Fprintf(&o.b, "contradiction: %s\n", FormatExprs(members))
}

func (o *traceObserver) CollapseFinished(vertices, classes, edges int) {
	fmt.Fprintf(&o.b, "collapsed: %d vertices, %d classes, %d edges\n", vertices, classes, edges)
}

func (o *traceObserver) String() string {
	return o.b.String()
}
