package plugindriver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labt-build/labt/internal/adapters/telemetry"
	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/plugindriver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	manifests map[string]*domain.PluginManifest
	roots     map[string]string
}

func (f *fakeRegistry) Install(context.Context, string, string) (*domain.PluginManifest, string, error) {
	return nil, "", nil
}

func (f *fakeRegistry) Load(name, _ string) (*domain.PluginManifest, string, error) {
	m, ok := f.manifests[name]
	if !ok {
		return nil, "", domain.ErrPluginNotFound
	}
	return m, f.roots[name], nil
}

type recordingExecutor struct {
	ran []string
	err error
}

func (e *recordingExecutor) Execute(_ context.Context, task *domain.PluginTask, _ string) error {
	e.ran = append(e.ran, task.PluginName+"/"+string(task.Stage))
	return e.err
}

type noopLogger struct{}

func (noopLogger) Info(string)  {}
func (noopLogger) Warn(string)  {}
func (noopLogger) Error(error)  {}

func TestDriver_Run_OrdersByStageThenPriorityThenName(t *testing.T) {
	registry := &fakeRegistry{
		manifests: map[string]*domain.PluginManifest{
			"zzz": {Name: "zzz", Stage: map[string]domain.StageEntry{
				"pre": {File: "run.sh", Priority: 5},
			}},
			"aaa": {Name: "aaa", Stage: map[string]domain.StageEntry{
				"pre":     {File: "run.sh", Priority: 5},
				"compile": {File: "run.sh", Priority: 1},
			}},
		},
		roots: map[string]string{"zzz": "/plugins/zzz", "aaa": "/plugins/aaa"},
	}
	exec := &recordingExecutor{}
	driver := plugindriver.New(registry, exec, telemetry.NewNoOp(), noopLogger{})

	cfg := &domain.ProjectConfig{Plugins: map[string]domain.PluginSpec{
		"zzz": {Version: "1.0.0"},
		"aaa": {Version: "1.0.0"},
	}}

	err := driver.Run(context.Background(), t.TempDir(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"aaa/pre", "zzz/pre", "aaa/compile"}, exec.ran)
}

func TestDriver_Run_AbortsOnFirstFailure(t *testing.T) {
	registry := &fakeRegistry{
		manifests: map[string]*domain.PluginManifest{
			"a": {Name: "a", Stage: map[string]domain.StageEntry{"pre": {File: "run.sh"}}},
			"b": {Name: "b", Stage: map[string]domain.StageEntry{"compile": {File: "run.sh"}}},
		},
		roots: map[string]string{"a": "/plugins/a", "b": "/plugins/b"},
	}
	exec := &recordingExecutor{err: assert.AnError}
	driver := plugindriver.New(registry, exec, telemetry.NewNoOp(), noopLogger{})

	cfg := &domain.ProjectConfig{Plugins: map[string]domain.PluginSpec{
		"a": {Version: "1.0.0"},
		"b": {Version: "1.0.0"},
	}}

	err := driver.Run(context.Background(), t.TempDir(), cfg, nil)
	require.Error(t, err)
	assert.Equal(t, []string{"a/pre"}, exec.ran)
}

func TestDriver_Run_RequestedStageSubsetPreservesPipelineOrder(t *testing.T) {
	registry := &fakeRegistry{
		manifests: map[string]*domain.PluginManifest{
			"a": {Name: "a", Stage: map[string]domain.StageEntry{
				"post": {File: "run.sh"},
				"pre":  {File: "run.sh"},
			}},
		},
		roots: map[string]string{"a": "/plugins/a"},
	}
	exec := &recordingExecutor{}
	driver := plugindriver.New(registry, exec, telemetry.NewNoOp(), noopLogger{})

	cfg := &domain.ProjectConfig{Plugins: map[string]domain.PluginSpec{"a": {Version: "1.0.0"}}}

	err := driver.Run(context.Background(), t.TempDir(), cfg, []domain.Stage{domain.StagePost, domain.StagePre})
	require.NoError(t, err)
	assert.Equal(t, []string{"a/pre", "a/post"}, exec.ran)
}

func TestDriver_Run_SkipsUpToDateTask(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "in.txt")
	output := filepath.Join(root, "out.txt")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(output, []byte("y"), 0o644))
	now := time.Now()
	require.NoError(t, os.Chtimes(input, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(output, now, now))

	registry := &fakeRegistry{
		manifests: map[string]*domain.PluginManifest{
			"a": {Name: "a", Stage: map[string]domain.StageEntry{
				"pre": {File: "run.sh", Inputs: []string{"in.txt"}, Outputs: []string{"out.txt"}},
			}},
		},
		roots: map[string]string{"a": "/plugins/a"},
	}
	exec := &recordingExecutor{}
	driver := plugindriver.New(registry, exec, telemetry.NewNoOp(), noopLogger{})
	cfg := &domain.ProjectConfig{Plugins: map[string]domain.PluginSpec{"a": {Version: "1.0.0"}}}

	err := driver.Run(context.Background(), root, cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, exec.ran)
}

func TestDriver_Run_ExecutesWhenInputNewerThanOutput(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "in.txt")
	output := filepath.Join(root, "out.txt")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(output, []byte("y"), 0o644))
	now := time.Now()
	require.NoError(t, os.Chtimes(output, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(input, now, now))

	registry := &fakeRegistry{
		manifests: map[string]*domain.PluginManifest{
			"a": {Name: "a", Stage: map[string]domain.StageEntry{
				"pre": {File: "run.sh", Inputs: []string{"in.txt"}, Outputs: []string{"out.txt"}},
			}},
		},
		roots: map[string]string{"a": "/plugins/a"},
	}
	exec := &recordingExecutor{}
	driver := plugindriver.New(registry, exec, telemetry.NewNoOp(), noopLogger{})
	cfg := &domain.ProjectConfig{Plugins: map[string]domain.PluginSpec{"a": {Version: "1.0.0"}}}

	err := driver.Run(context.Background(), root, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/pre"}, exec.ran)
}

func TestDriver_Run_ExecutesWhenOutputGlobMatchesNothing(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Main.java"), []byte("x"), 0o644))

	registry := &fakeRegistry{
		manifests: map[string]*domain.PluginManifest{
			"a": {Name: "a", Stage: map[string]domain.StageEntry{
				"compile": {File: "run.sh", Inputs: []string{"*.java"}, Outputs: []string{"build/*.class"}},
			}},
		},
		roots: map[string]string{"a": "/plugins/a"},
	}
	exec := &recordingExecutor{}
	driver := plugindriver.New(registry, exec, telemetry.NewNoOp(), noopLogger{})
	cfg := &domain.ProjectConfig{Plugins: map[string]domain.PluginSpec{"a": {Version: "1.0.0"}}}

	err := driver.Run(context.Background(), root, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/compile"}, exec.ran)
}
