package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tessera/signal"
	"github.com/roach88/tessera/trace"
	"github.com/roach88/tessera/tree"
)

// Scenario describes a reproducible state run: an initial state and a list
// of steps applied in order.
type Scenario struct {
	Name    string         `yaml:"name"`
	State   map[string]any `yaml:"state"`
	History int            `yaml:"history"`
	Steps   []Step         `yaml:"steps"`
}

// Step is one scenario action. Exactly one field should be set:
// set applies an immediate update, batch defers a list of updates through
// one flush window, undo/redo navigate history.
type Step struct {
	Set   map[string]any   `yaml:"set"`
	Batch []map[string]any `yaml:"batch"`
	Undo  bool             `yaml:"undo"`
	Redo  bool             `yaml:"redo"`
}

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML bytes.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if sc.State == nil {
		return nil, fmt.Errorf("scenario has no initial state")
	}
	return &sc, nil
}

// RunResult is the outcome of one scenario execution.
type RunResult struct {
	Final   tree.Snapshot `json:"final"`
	History []tree.Entry  `json:"history,omitempty"`
	Metrics tree.Metrics  `json:"metrics"`
}

// RunScenario executes a scenario against a fresh tree. When store is
// non-nil, every committed mutation is recorded into it.
//
// Batch steps run on a cooperative scheduler flushed at the end of the
// step, so execution is fully deterministic.
func RunScenario(sc *Scenario, store *trace.Store) (*RunResult, error) {
	sched := signal.NewScheduler(signal.WithTrigger(func(func()) {}))

	opts := []tree.Option{tree.WithScheduler(sched)}
	if sc.History > 0 {
		opts = append(opts, tree.WithHistory(sc.History))
	}
	t := tree.New(sc.State, opts...)

	if store != nil {
		t.AddTap(trace.Recorder(store))
	}

	for i, step := range sc.Steps {
		switch {
		case step.Set != nil:
			partial := step.Set
			t.Update(func(tree.Snapshot) tree.Snapshot {
				return tree.Snapshot(partial)
			})
		case len(step.Batch) > 0:
			for _, partial := range step.Batch {
				p := partial
				t.BatchUpdate(func(tree.Snapshot) tree.Snapshot {
					return tree.Snapshot(p)
				})
			}
			t.Flush()
		case step.Undo:
			t.Undo()
		case step.Redo:
			t.Redo()
		default:
			return nil, fmt.Errorf("step %d: empty step", i)
		}
	}

	result := &RunResult{
		Final:   t.Unwrap(),
		Metrics: t.GetMetrics(),
	}
	if sc.History > 0 {
		result.History = t.GetHistory()
	}
	return result, nil
}
