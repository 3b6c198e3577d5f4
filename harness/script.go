package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/foldertree"
	"github.com/brettbedarf/foldertree/internal/util"
	"gopkg.in/yaml.v3"
)

// Step is one scripted call with its optional expectations.
type Step struct {
	Op      string  `yaml:"op" json:"op"`
	Path    string  `yaml:"path" json:"path"`
	Target  string  `yaml:"target,omitempty" json:"target,omitempty"`
	Expect  string  `yaml:"expect,omitempty" json:"expect,omitempty"`   // result code, e.g. "EEXIST"
	Listing *string `yaml:"listing,omitempty" json:"listing,omitempty"` // exact List output
}

// Script is an ordered list of steps, loaded from YAML or JSON.
type Script struct {
	Steps []Step `yaml:"steps" json:"steps"`
}

// Outcome is the result of one step.
type Outcome struct {
	Operation Operation
	Result    Result
	Failure   string // why the step did not meet its expectations, empty if it did
}

// LoadScript reads a script. Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Script
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal script: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal script: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown script file extension: %s", path)
	}
	return &s, nil
}

// ParseCode is the inverse of [foldertree.Code.String].
func ParseCode(s string) (foldertree.Code, error) {
	for c := foldertree.OK; c <= foldertree.Unknown; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown result code %q", s)
}

// Operation converts the step, checking names but not paths.
func (s Step) Operation() (Operation, error) {
	kind, err := ParseKind(s.Op)
	if err != nil {
		return Operation{}, err
	}
	op := Operation{Kind: kind, Path: s.Path}
	if kind == Move {
		op.Target = s.Target
	}
	return op, nil
}

// RunScript runs every step in order against tree. It fails fast on a malformed
// step and otherwise returns all outcomes, plus an error if any step missed
// its expectations.
func RunScript(tree foldertree.Operator, s *Script) ([]Outcome, error) {
	logger := util.GetLogger("script")

	outcomes := make([]Outcome, 0, len(s.Steps))
	failed := 0
	for i, step := range s.Steps {
		op, err := step.Operation()
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}
		var want *foldertree.Code
		if step.Expect != "" {
			code, err := ParseCode(step.Expect)
			if err != nil {
				return outcomes, fmt.Errorf("step %d: %w", i+1, err)
			}
			want = &code
		}

		out := Outcome{Operation: op, Result: Run(tree, op)}
		switch {
		case want != nil && out.Result.Code != *want:
			out.Failure = fmt.Sprintf("expected %s, got %s", *want, out.Result.Code)
		case step.Listing != nil && out.Result.Listing != *step.Listing:
			out.Failure = fmt.Sprintf("expected listing %q, got %q", *step.Listing, out.Result.Listing)
		}
		if out.Failure != "" {
			failed++
			logger.Warn().Int("step", i+1).Stringer("op", op).Msg(out.Failure)
		} else {
			logger.Debug().Int("step", i+1).Stringer("op", op).Stringer("result", out.Result).Msg("Step done")
		}
		outcomes = append(outcomes, out)
	}

	if failed > 0 {
		return outcomes, fmt.Errorf("%d of %d steps failed", failed, len(s.Steps))
	}
	return outcomes, nil
}

// DemoScript is a short tour of every operation, each step with its expected result.
func DemoScript() *Script {
	return &Script{Steps: []Step{
		{Op: "create", Path: "/x/", Expect: "0"},
		{Op: "create", Path: "/x/y/", Expect: "0"},
		{Op: "create", Path: "/x/x/", Expect: "0"},
		{Op: "create", Path: "/x/xdd/", Expect: "0"},
		{Op: "list", Path: "/x/", Expect: "0", Listing: util.Pointer("x,xdd,y")},
		{Op: "remove", Path: "/x/xdd/", Expect: "0"},
		{Op: "list", Path: "/x/", Expect: "0", Listing: util.Pointer("x,y")},
		{Op: "create", Path: "/x/xdd/", Expect: "0"},
		{Op: "create", Path: "/lol/", Expect: "0"},
		{Op: "move", Path: "/x/", Target: "/x/", Expect: "0"},
		{Op: "list", Path: "/x/", Expect: "0", Listing: util.Pointer("x,xdd,y")},
		{Op: "list", Path: "/lol/bro/", Expect: "ENOENT"},
		{Op: "create", Path: "/", Expect: "EEXIST"},
		{Op: "move", Path: "/x/", Target: "/lol/x/", Expect: "0"},
		{Op: "remove", Path: "/x/", Expect: "ENOENT"},
		{Op: "list", Path: "/lol/x/", Expect: "0", Listing: util.Pointer("x,xdd,y")},
		{Op: "move", Path: "/lol/", Target: "/lol/x/lol/", Expect: "ESRCSUBTRGT"},
		{Op: "remove", Path: "/lol/", Expect: "ENOTEMPTY"},
		{Op: "remove", Path: "/", Expect: "EBUSY"},
	}}
}
