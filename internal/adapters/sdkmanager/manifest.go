package sdkmanager

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labt-build/labt/internal/core/domain"
	"go.trai.ch/zerr"
)

// googleCanonicalBase is used to resolve a non-absolute archive URL when
// neither the package nor the repository declares a base.
const googleCanonicalBase = "https://dl.google.com/android/repository/"

// DefaultManifestURL is the manifest fetched by `sdk add` when no URL is
// given, Google's own canonical repository index.
const DefaultManifestURL = googleCanonicalBase + "repository2-1.xml"

// Repository fetches and parses Google repository2-1.xml manifests over
// HTTP, implementing ports.SDKRepository. cacheDir, when set, is where Sync
// stages raw manifests for later offline LoadCached calls.
type Repository struct {
	httpClient *http.Client
	cacheDir   string
}

// NewRepository creates a manifest fetcher caching synced manifests under
// cacheDir.
func NewRepository(cacheDir string) *Repository {
	return &Repository{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		cacheDir:   cacheDir,
	}
}

// FetchManifest downloads and decodes the manifest at url.
func (r *Repository) FetchManifest(ctx context.Context, url string) ([]domain.SDKPackage, error) {
	data, err := r.download(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseManifest(bytes.NewReader(data), url)
}

func (r *Repository) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build manifest request")
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.With(domain.ErrRepositoryFetch, "url", url), "cause", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(zerr.With(domain.ErrRepositoryFetch, "url", url), "status", strconv.Itoa(resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.With(zerr.With(domain.ErrRepositoryFetch, "url", url), "cause", err.Error())
	}
	return data, nil
}

// rawManifest is the streaming decode target for the handled
// repository2-1.xml schema subset: licenses, channels, a declared base-url,
// and remotePackage entries with their revision/channelRef/archives.
type rawManifest struct {
	XMLName   xml.Name      `xml:"sdk-repository"`
	Licenses  []rawLicense  `xml:"license"`
	Channels  []rawChannel  `xml:"channel"`
	BaseURL   string        `xml:"base-url"`
	Packages  []rawPackage  `xml:"remotePackage"`
}

type rawLicense struct {
	ID   string `xml:"id,attr"`
	Text string `xml:",chardata"`
}

type rawChannel struct {
	ID   string `xml:"id,attr"`
	Name string `xml:",chardata"`
}

type rawPackage struct {
	Path         string          `xml:"path,attr"`
	DisplayName  string          `xml:"display-name"`
	UsesLicense  string          `xml:"uses-license,attr"`
	Revision     rawRevision     `xml:"revision"`
	ChannelRef   rawChannelRef   `xml:"channelRef"`
	Archives     []rawArchive    `xml:"archives>archive"`
	Dependencies []rawDependency `xml:"dependencies>dependency"`
}

type rawRevision struct {
	Major   int `xml:"major"`
	Minor   int `xml:"minor"`
	Micro   int `xml:"micro"`
	Preview int `xml:"preview"`
}

type rawChannelRef struct {
	Ref string `xml:"ref,attr"`
}

type rawArchive struct {
	HostOS   string         `xml:"host-os"`
	BaseURL  string         `xml:"base-url"`
	Complete rawArchiveFile `xml:"complete"`
}

type rawArchiveFile struct {
	Size     int64  `xml:"size"`
	Checksum string `xml:"checksum"`
	URL      string `xml:"url"`
}

type rawDependency struct {
	Path string `xml:"path,attr"`
}

// ParseManifest decodes a repository2-1.xml document read from r. manifestURL
// is used only to annotate a parse error; a relative repository base-url is
// not resolved against it.
func ParseManifest(r io.Reader, manifestURL string) ([]domain.SDKPackage, error) {
	var raw rawManifest
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse repository manifest"), "url", manifestURL)
	}

	channels := make(map[string]domain.Channel, len(raw.Channels))
	for _, c := range raw.Channels {
		channels[c.ID] = normalizeChannel(c.Name)
	}

	repoBase := raw.BaseURL
	if repoBase == "" {
		repoBase = googleCanonicalBase
	}

	var packages []domain.SDKPackage
	for _, p := range raw.Packages {
		pkg := domain.SDKPackage{
			Path:        p.Path,
			DisplayName: p.DisplayName,
			Revision: domain.Quad{
				Major: p.Revision.Major, Minor: p.Revision.Minor,
				Micro: p.Revision.Micro, Preview: p.Revision.Preview,
			},
			Channel:    channels[p.ChannelRef.Ref],
			LicenseRef: p.UsesLicense,
		}
		for _, dep := range p.Dependencies {
			pkg.Dependencies = append(pkg.Dependencies, pathToCoordinate(dep.Path))
		}

		archive, archiveBase := selectArchive(p.Archives)
		pkg.BaseURL = archiveBase
		pkg.Archive = domain.Archive{
			Size:     archive.Complete.Size,
			Checksum: archive.Complete.Checksum,
			URL:      resolveArchiveURL(archive.Complete.URL, archiveBase, repoBase),
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}

// selectArchive returns the archive matching the running host OS, falling
// back to the first archive with no host-os restriction (a platform-neutral
// package like a source or doc bundle); the archive's own base-url, if
// declared, is returned alongside it.
func selectArchive(archives []rawArchive) (rawArchive, string) {
	var hostless rawArchive
	haveHostless := false
	for _, a := range archives {
		if a.HostOS == "" && !haveHostless {
			hostless, haveHostless = a, true
		}
		if a.HostOS == currentHostOS() {
			return a, a.BaseURL
		}
	}
	return hostless, hostless.BaseURL
}

// resolveArchiveURL resolves an archive location: the archive's own URL if
// absolute, else against the package's base-url, else against the
// repository's declared base (already defaulted to Google's canonical base
// by the caller).
func resolveArchiveURL(url, packageBase, repoBase string) string {
	if isAbsoluteURL(url) {
		return url
	}
	base := repoBase
	if packageBase != "" {
		base = packageBase
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(url, "/")
}

func isAbsoluteURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// pathToCoordinate splits a dependency's manifest path into the Coordinate
// shape used for version-agnostic package matching: the manifest has no
// concept of group, so the whole path is carried as Artifact.
func pathToCoordinate(path string) domain.Coordinate {
	return domain.Coordinate{Artifact: path}
}

func normalizeChannel(name string) domain.Channel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "beta", "beta channel":
		return domain.ChannelBeta
	case "dev", "dev channel":
		return domain.ChannelDev
	case "canary", "canary channel":
		return domain.ChannelCanary
	default:
		return domain.ChannelStable
	}
}
