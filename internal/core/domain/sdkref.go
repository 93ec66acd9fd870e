package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// SDKRef is the single internal shape both SDK reference forms decode into:
// the compact string "repo:path;subpath:version:channel" (repo optional) and
// the equivalent table form. Path uses ";" as its hierarchical separator in
// the manifest and maps to "/" on disk.
type SDKRef struct {
	Repo    string `toml:"repo,omitempty"`
	Path    string `toml:"path"`
	Version string `toml:"version,omitempty"`
	Channel string `toml:"channel,omitempty"`
}

// DiskPath renders Path with its ";" separators mapped to "/" for use under
// <home>/sdk/.
func (r SDKRef) DiskPath() string {
	return strings.ReplaceAll(r.Path, ";", "/")
}

// String renders the compact form "repo:path;subpath:version:channel",
// omitting the repo qualifier when absent.
func (r SDKRef) String() string {
	s := r.Path + ":" + r.Version + ":" + r.Channel
	if r.Repo != "" {
		s = r.Repo + ":" + s
	}
	return s
}

// ParseSDKRef parses the compact string form into an SDKRef.
func ParseSDKRef(s string) (SDKRef, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 3:
		return SDKRef{Path: parts[0], Version: parts[1], Channel: parts[2]}, nil
	case 4:
		return SDKRef{Repo: parts[0], Path: parts[1], Version: parts[2], Channel: parts[3]}, nil
	default:
		return SDKRef{}, zerr.With(ErrInvalidSDKRef, "value", s)
	}
}

// UnmarshalTOML implements go-toml/v2's Unmarshaler, accepting either the
// compact string form or the full table form for a single sdk entry.
func (r *SDKRef) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		parsed, err := ParseSDKRef(v)
		if err != nil {
			return err
		}
		*r = parsed
		return nil
	case map[string]any:
		if repo, ok := v["repo"].(string); ok {
			r.Repo = repo
		}
		if path, ok := v["path"].(string); ok {
			r.Path = path
		}
		if version, ok := v["version"].(string); ok {
			r.Version = version
		}
		if channel, ok := v["channel"].(string); ok {
			r.Channel = channel
		}
		return nil
	default:
		return zerr.With(ErrInvalidSDKRef, "value", fmt.Sprintf("%v", v))
	}
}
