package plugindriver

import (
	"os"
	"path/filepath"

	"github.com/labt-build/labt/internal/core/domain"
)

// isStale decides whether task must run. Inputs and outputs are glob
// patterns matched against the project root; the task runs if both lists
// are empty, if any output pattern matches nothing, or if the newest
// matched input is strictly newer than the oldest matched output. A single
// outdated input/output pair is enough, so the scan short-circuits on the
// extremes.
func isStale(task *domain.PluginTask, projectRoot string) bool {
	if len(task.Inputs) == 0 && len(task.Outputs) == 0 {
		return true
	}
	if len(task.Outputs) == 0 {
		return true
	}

	oldestOutput := int64(-1)
	for _, pattern := range task.Outputs {
		matches, err := filepath.Glob(resolve(projectRoot, pattern))
		if err != nil || len(matches) == 0 {
			return true
		}
		for _, out := range matches {
			info, err := os.Stat(out)
			if err != nil {
				return true
			}
			mt := info.ModTime().UnixNano()
			if oldestOutput == -1 || mt < oldestOutput {
				oldestOutput = mt
			}
		}
	}

	var newestInput int64
	for _, pattern := range task.Inputs {
		matches, err := filepath.Glob(resolve(projectRoot, pattern))
		if err != nil {
			return true
		}
		for _, in := range matches {
			info, err := os.Stat(in)
			if err != nil {
				return true
			}
			if mt := info.ModTime().UnixNano(); mt > newestInput {
				newestInput = mt
			}
		}
	}

	return newestInput > oldestOutput
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
