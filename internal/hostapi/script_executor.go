package hostapi

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
	"go.trai.ch/zerr"
)

// ScriptExecutor implements ports.TaskExecutor by invoking each task's
// script file directly as an OS-level executable, the way the Host API's
// own process dispatch spawns any other named program: stage name as sole
// argument, project root as working directory, stdio inherited. The
// embedded scripting runtime is an external collaborator; when one is
// integrated, it calls Factory.New per task to obtain the HostAPI it
// marshals into the script's global scope, and takes over from the direct
// exec below.
type ScriptExecutor struct {
	factory *Factory
	cfg     *domain.ProjectConfig
	initMode bool
}

var _ ports.TaskExecutor = (*ScriptExecutor)(nil)

// NewScriptExecutor creates a ScriptExecutor bound to a project's
// configuration. initMode forces every task's unsafe flag off.
func NewScriptExecutor(factory *Factory, cfg *domain.ProjectConfig, initMode bool) *ScriptExecutor {
	return &ScriptExecutor{factory: factory, cfg: cfg, initMode: initMode}
}

// Execute runs task's script to completion, aborting the build on a
// non-zero exit. Script output stays on the inherited stdio and is teed
// into the task's progress vertex when the driver recorded one on ctx.
func (e *ScriptExecutor) Execute(ctx context.Context, task *domain.PluginTask, projectRoot string) error {
	scriptPath := filepath.Join(task.PluginRoot, task.ScriptPath)

	stdout := io.Writer(os.Stdout)
	stderr := io.Writer(os.Stderr)
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		stdout = io.MultiWriter(stdout, vertex.Stdout())
		stderr = io.MultiWriter(stderr, vertex.Stderr())
	}

	//nolint:gosec // scriptPath is built from the task's own manifest-declared path, not script-dynamic input
	cmd := exec.CommandContext(ctx, scriptPath, string(task.Stage))
	cmd.Dir = projectRoot
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return zerr.With(zerr.With(zerr.With(zerr.Wrap(domain.ErrTaskFailed, err.Error()), "plugin", task.PluginName), "stage", string(task.Stage)), "script", scriptPath)
	}
	return nil
}

// ExecuteInit runs a plugin's init entry point: the script is invoked with
// the target directory as its sole argument and working directory. An
// integrated runtime would bind here in init mode (unsafe forced off,
// template rendering scoped to the entry's declared glob via
// Factory.NewTemplates).
func (e *ScriptExecutor) ExecuteInit(ctx context.Context, manifest *domain.PluginManifest, pluginRoot, targetDir string) error {
	scriptPath := filepath.Join(pluginRoot, manifest.Init.File)

	//nolint:gosec // scriptPath is built from the manifest-declared init entry, not script-dynamic input
	cmd := exec.CommandContext(ctx, scriptPath, targetDir)
	cmd.Dir = targetDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrTaskFailed, err.Error()), "plugin", manifest.Name), "script", scriptPath)
	}
	return nil
}
