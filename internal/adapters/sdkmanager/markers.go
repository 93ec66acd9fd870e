package sdkmanager

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/labt-build/labt/internal/core/domain"
	"go.trai.ch/zerr"
)

// packageMarkerName is the file written alongside an installed package's
// extracted contents so Installed can reconstruct its manifest record
// without re-parsing a repository manifest.
const packageMarkerName = ".labt-package.json"

type packageMarker struct {
	Path        string       `json:"path"`
	DisplayName string       `json:"display_name"`
	Revision    domain.Quad  `json:"revision"`
	Channel     domain.Channel `json:"channel"`
	LicenseRef  string       `json:"license_ref"`
}

func writePackageMarker(dir string, pkg domain.SDKPackage) error {
	marker := packageMarker{
		Path:        pkg.Path,
		DisplayName: pkg.DisplayName,
		Revision:    pkg.Revision,
		Channel:     pkg.Channel,
		LicenseRef:  pkg.LicenseRef,
	}
	data, err := json.Marshal(marker)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal package marker")
	}
	if err := os.WriteFile(filepath.Join(dir, packageMarkerName), data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write package marker")
	}
	return nil
}

func readPackageMarker(markerPath string) (domain.SDKPackage, error) {
	data, err := os.ReadFile(markerPath)
	if err != nil {
		return domain.SDKPackage{}, zerr.With(zerr.Wrap(err, "failed to read package marker"), "path", markerPath)
	}
	var marker packageMarker
	if err := json.Unmarshal(data, &marker); err != nil {
		return domain.SDKPackage{}, zerr.With(zerr.Wrap(err, "failed to parse package marker"), "path", markerPath)
	}
	return domain.SDKPackage{
		Path:        marker.Path,
		DisplayName: marker.DisplayName,
		Revision:    marker.Revision,
		Channel:     marker.Channel,
		LicenseRef:  marker.LicenseRef,
	}, nil
}
