package sdkmanager

import (
	"context"
	"crypto/sha1" //nolint:gosec // the manifest's own checksum algorithm, not a security choice
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
	"github.com/labt-build/labt/internal/fsutil"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentDownloads bounds how many package archives are downloaded at
// once within a single install batch.
const maxConcurrentDownloads = 4

// Installer implements ports.SDKInstaller against <home>/sdk.
type Installer struct {
	sdkRoot    string
	archiver   ports.Archiver
	httpClient *http.Client
}

// NewInstaller creates an Installer rooted at sdkRoot.
func NewInstaller(sdkRoot string, arc ports.Archiver) *Installer {
	return &Installer{sdkRoot: sdkRoot, archiver: arc, httpClient: &http.Client{}}
}

// Plan implements ports.SDKInstaller.
func (in *Installer) Plan(selections []domain.PackageSelection) ([]domain.PackageSelection, error) {
	return planSelections(selections)
}

// Execute implements ports.SDKInstaller: uninstalls run first (plan order
// already has them leaves-first), then install-type actions download
// concurrently, bounded by errgroup, while the dependency order computed by
// Plan is preserved for extraction and atomic rename.
func (in *Installer) Execute(ctx context.Context, plan []domain.PackageSelection) error {
	for _, sel := range plan {
		if sel.Action != domain.ActionUninstall {
			continue
		}
		if err := in.uninstall(sel.Package); err != nil {
			return err
		}
	}

	var installs []domain.PackageSelection
	for _, sel := range plan {
		if sel.Action != domain.ActionUninstall {
			installs = append(installs, sel)
		}
	}
	if len(installs) == 0 {
		return nil
	}

	staged, err := in.downloadAll(ctx, installs)
	if err != nil {
		return err
	}

	for _, sel := range installs {
		stagingFile := staged[sel.Package.Path]
		if err := in.installFromStaging(sel.Package, stagingFile); err != nil {
			return err
		}
	}
	return nil
}

// downloadAll fetches every install selection's archive concurrently,
// bounded by maxConcurrentDownloads, returning each package's downloaded
// file path keyed by its manifest path. A failure aborts the whole batch
// and removes every file downloaded so far.
func (in *Installer) downloadAll(ctx context.Context, installs []domain.PackageSelection) (map[string]string, error) {
	staged := make(map[string]string, len(installs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDownloads)

	for _, sel := range installs {
		sel := sel
		g.Go(func() error {
			path, err := in.downloadArchive(gctx, sel.Package)
			if err != nil {
				return err
			}
			mu.Lock()
			staged[sel.Package.Path] = path
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, path := range staged {
			fsutil.RemoveStaging(path)
		}
		return nil, err
	}
	return staged, nil
}

func (in *Installer) downloadArchive(ctx context.Context, pkg domain.SDKPackage) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pkg.Archive.URL, nil)
	if err != nil {
		return "", zerr.With(domain.ErrNetworkFailure, "url", pkg.Archive.URL)
	}
	resp, err := in.httpClient.Do(req)
	if err != nil {
		return "", zerr.With(zerr.With(domain.ErrNetworkFailure, "url", pkg.Archive.URL), "cause", err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", zerr.With(zerr.With(domain.ErrHTTPNonSuccess, "url", pkg.Archive.URL), "status", fmt.Sprintf("%d", resp.StatusCode))
	}

	tmp, err := os.CreateTemp("", "labt-sdk-download-*")
	if err != nil {
		return "", zerr.Wrap(err, "failed to create staging download file")
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		fsutil.RemoveStaging(tmp.Name())
		return "", zerr.With(zerr.Wrap(err, "failed to download archive"), "url", pkg.Archive.URL)
	}
	if err := tmp.Close(); err != nil {
		fsutil.RemoveStaging(tmp.Name())
		return "", zerr.Wrap(err, "failed to close staging download file")
	}
	return tmp.Name(), nil
}

// installFromStaging verifies, extracts and atomically installs an already
// downloaded archive. On checksum failure the staging file is removed and
// the operation fails.
func (in *Installer) installFromStaging(pkg domain.SDKPackage, stagingFile string) error {
	defer fsutil.RemoveStaging(stagingFile)

	if err := verifyArchive(stagingFile, pkg.Archive); err != nil {
		return err
	}

	extractDir, err := os.MkdirTemp("", "labt-sdk-extract-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create extraction staging directory")
	}
	if err := in.archiver.Extract(stagingFile, extractDir, nil); err != nil {
		fsutil.RemoveStaging(extractDir)
		return zerr.With(err, "package", pkg.Path)
	}
	if err := writePackageMarker(extractDir, pkg); err != nil {
		fsutil.RemoveStaging(extractDir)
		return zerr.With(err, "package", pkg.Path)
	}

	finalPath := filepath.Join(in.sdkRoot, pkg.DiskPath())
	if err := fsutil.AtomicRenameDir(extractDir, finalPath); err != nil {
		fsutil.RemoveStaging(extractDir)
		return zerr.With(err, "package", pkg.Path)
	}
	return nil
}

func verifyArchive(path string, archive domain.Archive) error {
	info, err := os.Stat(path)
	if err != nil {
		return zerr.Wrap(err, "failed to stat downloaded archive")
	}
	if archive.Size > 0 && info.Size() != archive.Size {
		return zerr.With(zerr.With(domain.ErrSizeMismatch, "expected", fmt.Sprintf("%d", archive.Size)), "actual", fmt.Sprintf("%d", info.Size()))
	}

	f, err := os.Open(path)
	if err != nil {
		return zerr.Wrap(err, "failed to open downloaded archive for checksum")
	}
	defer f.Close()

	h := sha1.New() //nolint:gosec
	if _, err := io.Copy(h, f); err != nil {
		return zerr.Wrap(err, "failed to read downloaded archive for checksum")
	}
	sum := hex.EncodeToString(h.Sum(nil))
	if archive.Checksum != "" && sum != archive.Checksum {
		return zerr.With(zerr.With(domain.ErrChecksumMismatch, "expected", archive.Checksum), "actual", sum)
	}
	return nil
}

func (in *Installer) uninstall(pkg domain.SDKPackage) error {
	target := filepath.Join(in.sdkRoot, pkg.DiskPath())
	if err := os.RemoveAll(target); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove sdk package"), "package", pkg.Path)
	}
	return nil
}

// Installed implements ports.SDKInstaller by walking the sdk root for the
// package marker file written at install time, rather than inferring a
// package's identity from its directory path.
func (in *Installer) Installed() ([]domain.SDKPackage, error) {
	var packages []domain.SDKPackage
	err := filepath.WalkDir(in.sdkRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || d.Name() != packageMarkerName {
			return nil
		}
		pkg, readErr := readPackageMarker(path)
		if readErr != nil {
			return readErr
		}
		pkg.Installed = true
		packages = append(packages, pkg)
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to walk sdk root"), "root", in.sdkRoot)
	}
	return packages, nil
}

