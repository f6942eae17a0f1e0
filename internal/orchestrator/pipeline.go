// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package orchestrator

import (
	"context"
	"log/slog"
	"sync"
)

// Step is a single phase of a [Pipeline].
type Step struct {
	Phase Phase
	Run   func(ctx context.Context) error
}

// Pipeline runs [Step]s one after another and tracks the current [Phase].
type Pipeline struct {
	logger *slog.Logger

	mu    sync.Mutex
	phase Phase
}

// Phase returns the current phase.
func (p *Pipeline) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.phase
}

func (p *Pipeline) setPhase(phase Phase) {
	p.mu.Lock()
	p.phase = phase
	p.mu.Unlock()

	if p.logger != nil {
		p.logger.Debug("Phase", slog.String("phase", phase.String()))
	}
}

// Run runs the steps in order. The first failing step ends the run with a
// [PhaseError] and the pipeline is in phase [Failed]. Otherwise it ends in
// phase [Succeeded].
//
// The context is checked before each step.
func (p *Pipeline) Run(ctx context.Context, steps ...Step) error {
	for _, step := range steps {
		err := ctx.Err()
		if err == nil {
			p.setPhase(step.Phase)
			err = step.Run(ctx)
		}

		if err != nil {
			p.setPhase(Failed)
			return &PhaseError{Phase: step.Phase, Err: err}
		}
	}

	p.setPhase(Succeeded)

	return nil
}
