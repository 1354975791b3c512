// Package fetch coordinates concurrent upstream calls for pages that need
// more than one resource, and guards against superseded results.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Policy decides what a page does when some of its concurrent fetches fail.
type Policy int

const (
	// FailFast aborts on the first failure and reports it as the page error.
	FailFast Policy = iota
	// BestEffort lets every fetch settle and keeps whatever succeeded.
	BestEffort
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail_fast"
	case BestEffort:
		return "best_effort"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "fail_fast", "failfast":
		*p = FailFast
	case "best_effort", "besteffort":
		*p = BestEffort
	default:
		return fmt.Errorf("unknown fetch policy %q", string(text))
	}
	return nil
}

// Task is one named upstream call. Run stores its own result; tasks in the
// same group must not write to shared state.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

type Failure struct {
	Task string
	Err  error
}

type Outcome struct {
	Failures []Failure
}

// Partial reports whether at least one task failed under BestEffort.
func (o Outcome) Partial() bool {
	return len(o.Failures) > 0
}

// Failed reports whether the named task is among the failures.
func (o Outcome) Failed(name string) bool {
	return o.Err(name) != nil
}

func (o Outcome) Err(name string) error {
	for _, f := range o.Failures {
		if f.Task == name {
			return f.Err
		}
	}
	return nil
}

// Run starts every task concurrently and waits for them under the given policy.
// With FailFast the first error cancels the remaining tasks and is returned.
// With BestEffort the error is always nil and failures land in the Outcome,
// in task order.
func Run(ctx context.Context, policy Policy, tasks ...Task) (Outcome, error) {
	if policy == FailFast {
		g, gctx := errgroup.WithContext(ctx)
		for _, task := range tasks {
			g.Go(func() error {
				if err := task.Run(gctx); err != nil {
					return fmt.Errorf("%s: %w", task.Name, err)
				}
				return nil
			})
		}
		return Outcome{}, g.Wait()
	}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs = make([]error, len(tasks))
	)
	for i, task := range tasks {
		g.Go(func() error {
			err := task.Run(ctx)
			mu.Lock()
			errs[i] = err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	var out Outcome
	for i, err := range errs {
		if err != nil {
			out.Failures = append(out.Failures, Failure{Task: tasks[i].Name, Err: err})
		}
	}
	return out, nil
}
