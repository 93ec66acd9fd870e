// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/labt-build/labt/internal/adapters/archiver"
	_ "github.com/labt-build/labt/internal/adapters/artifactcache"
	_ "github.com/labt-build/labt/internal/adapters/logger"
	_ "github.com/labt-build/labt/internal/adapters/pluginregistry"
	_ "github.com/labt-build/labt/internal/adapters/projectfile"
	_ "github.com/labt-build/labt/internal/adapters/prompts"
	_ "github.com/labt-build/labt/internal/adapters/sdkmanager"
	_ "github.com/labt-build/labt/internal/adapters/sdktui"
	_ "github.com/labt-build/labt/internal/adapters/telemetry/progrock"
	// Register host API, driver and app nodes.
	_ "github.com/labt-build/labt/internal/app"
	_ "github.com/labt-build/labt/internal/hostapi"
	_ "github.com/labt-build/labt/internal/plugindriver"
)
