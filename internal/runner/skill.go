// SPDX-License-Identifier: AGPL-3.0-or-later

package runner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/gitx"
)

// Deps contains dependencies injected into skills.
type Deps struct {
	RepoRoot string
	Git      *gitx.Client
	Config   *config.Config
	Log      *zap.SugaredLogger
	// Now supplies the clock so reports are reproducible in tests.
	Now func() time.Time
}

// Clock returns the injected clock, defaulting to time.Now.
func (d *Deps) Clock() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Skill is one self-contained analysis producing a report.
type Skill interface {
	// ID returns the unique identifier (e.g. "changelog").
	ID() string

	// Run executes the skill.
	Run(ctx context.Context, deps *Deps) SkillResult
}
