// Package plugindriver collects the tasks declared by a project's active
// plugins, orders them by stage and priority, skips tasks whose outputs are
// already newer than their inputs, and runs the rest through a TaskExecutor.
package plugindriver

import (
	"context"
	"sort"

	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Driver orchestrates the six-stage plugin pipeline for a single project.
type Driver struct {
	registry ports.PluginRegistry
	executor ports.TaskExecutor
	telemetry ports.Telemetry
	logger   ports.Logger
}

// New creates a Driver from its adapters.
func New(registry ports.PluginRegistry, executor ports.TaskExecutor, telemetry ports.Telemetry, logger ports.Logger) *Driver {
	return &Driver{registry: registry, executor: executor, telemetry: telemetry, logger: logger}
}

// Run executes every active plugin's task for each of stages, in the fixed
// pipeline order, aborting the whole build on the first task failure.
// projectRoot is the working directory every task's script runs in.
func (d *Driver) Run(ctx context.Context, projectRoot string, cfg *domain.ProjectConfig, stages []domain.Stage) error {
	tasks, err := d.collectTasks(cfg)
	if err != nil {
		return err
	}

	byStage := groupByStage(tasks)

	for _, stage := range orderedStages(stages) {
		stageTasks := byStage[stage]
		sortTasks(stageTasks)

		for i := range stageTasks {
			task := stageTasks[i]
			if err := d.runTask(ctx, task, projectRoot); err != nil {
				return zerr.With(zerr.With(zerr.Wrap(domain.ErrStageAborted, err.Error()), "stage", string(stage)), "plugin", task.PluginName)
			}
		}
	}
	return nil
}

func (d *Driver) runTask(ctx context.Context, task *domain.PluginTask, projectRoot string) error {
	vctx, vertex := d.telemetry.Record(ctx, task.PluginName+":"+string(task.Stage))
	if !isStale(task, projectRoot) {
		d.logger.Info("skip " + task.PluginName + "/" + string(task.Stage) + ": up to date")
		vertex.Log(domain.LogLevelInfo, "up to date")
		vertex.Cached()
		vertex.Complete(nil)
		return nil
	}
	err := d.executor.Execute(vctx, task, projectRoot)
	vertex.Complete(err)
	return err
}

// collectTasks resolves every active plugin's manifest and expands its
// declared stage entries into one PluginTask per (plugin, stage) pair.
func (d *Driver) collectTasks(cfg *domain.ProjectConfig) ([]*domain.PluginTask, error) {
	var tasks []*domain.PluginTask
	for name, spec := range cfg.Plugins {
		manifest, root, err := d.registry.Load(name, spec.Version)
		if err != nil {
			return nil, zerr.With(err, "plugin", name)
		}
		for stageName, entry := range manifest.Stage {
			stage := domain.Stage(stageName)
			if domain.StageIndex(stage) < 0 {
				return nil, zerr.With(zerr.With(zerr.With(domain.ErrInvalidName, "reason", "unknown stage"), "plugin", name), "stage", stageName)
			}
			tasks = append(tasks, &domain.PluginTask{
				PluginName: name,
				PluginRoot: root,
				Stage:      stage,
				ScriptPath: entry.File,
				Priority:   entry.Priority,
				Inputs:     entry.Inputs,
				Outputs:    entry.Outputs,
				Unsafe:     entry.Unsafe || manifest.Unsafe,
			})
		}
	}
	return tasks, nil
}

func groupByStage(tasks []*domain.PluginTask) map[domain.Stage][]*domain.PluginTask {
	byStage := make(map[domain.Stage][]*domain.PluginTask, len(domain.Stages))
	for _, t := range tasks {
		byStage[t.Stage] = append(byStage[t.Stage], t)
	}
	return byStage
}

// orderedStages filters the fixed pipeline order down to the requested
// subset, preserving pipeline order regardless of the order requested.
func orderedStages(requested []domain.Stage) []domain.Stage {
	if len(requested) == 0 {
		return domain.Stages
	}
	want := make(map[domain.Stage]bool, len(requested))
	for _, s := range requested {
		want[s] = true
	}
	var out []domain.Stage
	for _, s := range domain.Stages {
		if want[s] {
			out = append(out, s)
		}
	}
	return out
}

// sortTasks orders a single stage's tasks by priority descending, then by
// plugin name ascending to break ties deterministically.
func sortTasks(tasks []*domain.PluginTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority > tasks[j].Priority
		}
		return tasks[i].PluginName < tasks[j].PluginName
	})
}
