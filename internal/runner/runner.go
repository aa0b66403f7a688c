// SPDX-License-Identifier: AGPL-3.0-or-later

package runner

import (
	"context"
	"fmt"
)

// Runner manages the execution of skills.
type Runner struct {
	skills []Skill
	store  *StateStore
	deps   *Deps
}

// NewRunner creates a new runner with the given skills and dependencies.
func NewRunner(skills []Skill, store *StateStore, deps *Deps) *Runner {
	return &Runner{
		skills: skills,
		store:  store,
		deps:   deps,
	}
}

// RunAll executes every registered skill in order. Execution continues
// past failures; an error is returned if ANY skill failed.
func (r *Runner) RunAll(ctx context.Context) error {
	return r.executeSequence(ctx, r.skills)
}

// Resume re-runs only the skills that failed in the last run. A clean
// last run (or no last run at all) is a no-op.
func (r *Runner) Resume(ctx context.Context) error {
	failed, err := r.store.LoadFailedSkills()
	if err != nil {
		return fmt.Errorf("loading failed skills: %w", err)
	}

	if len(failed) == 0 {
		r.deps.Log.Info("no failed skills to resume")
		return nil
	}

	var toRun []Skill
	for _, id := range failed {
		if s := r.findSkill(id); s != nil {
			toRun = append(toRun, s)
		}
	}

	return r.executeSequence(ctx, toRun)
}

// RunList executes a specific list of skill IDs.
func (r *Runner) RunList(ctx context.Context, skillIDs []string) error {
	var toRun []Skill
	for _, id := range skillIDs {
		s := r.findSkill(id)
		if s == nil {
			return fmt.Errorf("skill not found: %s", id)
		}
		toRun = append(toRun, s)
	}
	return r.executeSequence(ctx, toRun)
}

func (r *Runner) findSkill(id string) Skill {
	for _, s := range r.skills {
		if s.ID() == id {
			return s
		}
	}
	return nil
}

// executeSequence runs the given skills in order, recording each result
// and the overall summary in the state store.
func (r *Runner) executeSequence(ctx context.Context, skills []Skill) error {
	var failed []string
	var skillNames []string

	for _, skill := range skills {
		id := skill.ID()
		skillNames = append(skillNames, id)

		r.deps.Log.Infow("running skill", "skill", id)

		res := skill.Run(ctx, r.deps)

		if err := r.store.WriteSkillResult(res); err != nil {
			return fmt.Errorf("writing result for %s: %w", id, err)
		}

		switch res.Status {
		case StatusSkip:
			r.deps.Log.Infow("skill skipped", "skill", id, "note", res.Note)
		case StatusPass:
			if res.ReportPath != "" {
				r.deps.Log.Infow("skill passed", "skill", id, "report", res.ReportPath)
			} else {
				r.deps.Log.Infow("skill passed", "skill", id)
			}
		default:
			failed = append(failed, id)
			r.deps.Log.Errorw("skill failed", "skill", id, "exit_code", res.ExitCode, "note", res.Note)
		}
	}

	lastRun := LastRun{
		Status: "pass",
		Skills: skillNames,
		Failed: failed,
	}
	if len(failed) > 0 {
		lastRun.Status = "fail"
	}

	if err := r.store.WriteLastRun(lastRun); err != nil {
		return fmt.Errorf("writing last run: %w", err)
	}

	if len(failed) > 0 {
		return fmt.Errorf("run failed: %v", failed)
	}
	return nil
}
