package domain

import "go.trai.ch/zerr"

// Sentinel errors grouped by the taxonomy in the error handling design:
// configuration, discovery, resolution, transport, integrity, filesystem,
// script, prompt.
var (
	// Configuration errors.
	ErrMalformedProjectFile = zerr.New("malformed project file")
	ErrMalformedLockfile    = zerr.New("malformed lockfile")
	ErrMalformedManifest    = zerr.New("malformed plugin manifest")
	ErrInvalidSDKRef        = zerr.New("invalid sdk reference")

	// Discovery errors.
	ErrProjectNotFound = zerr.New("project root not found")
	ErrPluginNotFound  = zerr.New("plugin not installed")
	ErrSDKNotFound     = zerr.New("sdk package not found")

	// Resolution errors.
	ErrInvalidCoordinate  = zerr.New("invalid dependency coordinate")
	ErrUnknownCoordinate  = zerr.New("unknown coordinate")
	ErrVersionConflict    = zerr.New("version conflict unresolvable")
	ErrNoResolverAccepted = zerr.New("no resolver produced a descriptor")

	// Transport errors.
	ErrNetworkFailure  = zerr.New("network failure")
	ErrHTTPNonSuccess  = zerr.New("non-success http response")
	ErrRepositoryFetch = zerr.New("repository manifest fetch failed")

	// Integrity errors.
	ErrChecksumMismatch = zerr.New("checksum mismatch")
	ErrSizeMismatch     = zerr.New("size mismatch")
	ErrZipSlip          = zerr.New("archive entry escapes extraction root")

	// Filesystem errors.
	ErrPathNotFound  = zerr.New("path not found")
	ErrPermission    = zerr.New("permission denied")
	ErrTargetExists  = zerr.New("target already exists")
	ErrInvalidName   = zerr.New("name contains path separators")

	// Script errors.
	ErrTaskFailed = zerr.New("plugin task failed")
	ErrStageAborted = zerr.New("stage aborted")

	// Prompt errors.
	ErrPromptUnavailable = zerr.New("terminal unavailable for prompt")
	ErrPromptCancelled   = zerr.New("prompt cancelled")
)
