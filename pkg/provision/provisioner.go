package provision

import (
	"os"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/log"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/steps"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/system"
)

// geteuid is swapped out in tests.
var geteuid = os.Geteuid

type State string

const (
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

type Outcome string

const (
	OutcomeSkipped Outcome = "skipped"
	OutcomeApplied Outcome = "applied"
	OutcomeFailed  Outcome = "failed"
)

// StepResult records what happened to one step during a run.
type StepResult struct {
	Step    string
	Outcome Outcome
	Err     error
}

// RunResult is the ordered sequence of step results from one run.
type RunResult struct {
	Steps []StepResult
}

// Provisioner runs a fixed, ordered list of steps against the local host,
// halting at the first failure. Re-running after a failure is safe: every
// step that already took effect reports satisfied and is skipped.
type Provisioner struct {
	steps  []steps.Step
	runner system.CommandRunner
	logger log.Logger
	state  State
}

func New(runner system.CommandRunner, logger log.Logger, pipeline []steps.Step) *Provisioner {
	return &Provisioner{
		steps:  pipeline,
		runner: runner,
		logger: logger,
		state:  StatePending,
	}
}

func (p *Provisioner) State() State {
	return p.state
}

// Run executes the pipeline sequentially. The returned RunResult always
// lists every step that was reached, including the failing one.
func (p *Provisioner) Run() (*RunResult, error) {
	if uid := geteuid(); uid != 0 {
		p.state = StateFailed
		return &RunResult{}, &PrivilegeError{UID: uid}
	}

	p.state = StateRunning
	result := &RunResult{}

	for _, step := range p.steps {
		p.logger.Info("Processing step", "step", step.Name())

		satisfied, err := step.Check(p.runner, p.logger)
		if err != nil {
			return p.fail(result, step, err)
		}
		if satisfied {
			p.logger.Info("Step already satisfied", "step", step.Name())
			result.Steps = append(result.Steps, StepResult{Step: step.Name(), Outcome: OutcomeSkipped})
			continue
		}

		p.logger.Info("Applying step", "step", step.Name())
		if err := step.Apply(p.runner, p.logger); err != nil {
			return p.fail(result, step, err)
		}
		result.Steps = append(result.Steps, StepResult{Step: step.Name(), Outcome: OutcomeApplied})
	}

	p.state = StateCompleted
	p.logger.Info("Provisioning complete")
	return result, nil
}

func (p *Provisioner) fail(result *RunResult, step steps.Step, err error) (*RunResult, error) {
	failure := &StepFailure{Step: step.Name(), Err: err}
	p.logger.Error("Step failed, halting", "step", step.Name(), "error", err)
	result.Steps = append(result.Steps, StepResult{Step: step.Name(), Outcome: OutcomeFailed, Err: failure})
	p.state = StateFailed
	return result, failure
}
