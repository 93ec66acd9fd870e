// Package maven implements ports.DependencyResolver against a Maven2-layout
// HTTP repository: POM XML for descriptors, the artifact's own packaging
// extension for bytes, both addressed at
// "<base>/<group-with-slashes>/<artifact>/<version>/<artifact>-<version>.<ext>".
package maven

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/labt-build/labt/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver is a ports.DependencyResolver backed by a single remote
// Maven-layout repository.
type Resolver struct {
	name       string
	baseURL    string
	httpClient *http.Client
}

// New creates a remote resolver named name, rooted at baseURL (e.g.
// "https://repo1.maven.org/maven2").
func New(name, baseURL string) *Resolver {
	return &Resolver{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FromSpec builds a Resolver from a project file's [[resolvers]] entry.
// Every entry is treated as a Maven-layout repository: ResolverSpec carries
// no kind field, so no other resolver kind can be selected or rejected.
func FromSpec(spec domain.ResolverSpec) *Resolver {
	return New(spec.Name, spec.URL)
}

func (r *Resolver) Name() string { return r.name }

// Lookup fetches and parses the coordinate's POM. A 404 is reported as a
// miss (nil, nil) so the chain falls through to the next repository; any
// other non-2xx status or transport failure is a soft transport error the
// engine may also fall through on.
func (r *Resolver) Lookup(ctx context.Context, coord domain.ArtifactCoordinate) (*domain.Descriptor, error) {
	pomURL := r.artifactURL(coord, "pom")

	body, status, err := r.get(ctx, pomURL)
	if err != nil {
		return nil, zerr.With(zerr.With(domain.ErrNetworkFailure, "url", pomURL), "cause", err.Error())
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, zerr.With(zerr.With(domain.ErrHTTPNonSuccess, "url", pomURL), "status", fmt.Sprintf("%d", status))
	}

	var pom pomProject
	if err := xml.Unmarshal(body, &pom); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse pom"), "url", pomURL)
	}

	packaging := pom.Packaging
	if packaging == "" {
		packaging = "jar"
	}

	desc := &domain.Descriptor{
		Packaging:  packaging,
		ArchiveURL: r.artifactURL(domain.ArtifactCoordinate{Group: coord.Group, Artifact: coord.Artifact, Version: coord.Version, Packaging: packaging}, packaging),
	}
	for _, dep := range pom.Dependencies {
		if dep.Scope == "test" || dep.Scope == "provided" || dep.Optional == "true" {
			continue
		}
		desc.Transitives = append(desc.Transitives, domain.DependencyRequest{
			Group:    dep.GroupID,
			Artifact: dep.ArtifactID,
			Version:  dep.Version,
		})
	}
	return desc, nil
}

// Fetch downloads the artifact's primary archive bytes.
func (r *Resolver) Fetch(ctx context.Context, coord domain.ArtifactCoordinate) ([]byte, error) {
	url := r.artifactURL(coord, coord.Packaging)
	body, status, err := r.get(ctx, url)
	if err != nil {
		return nil, zerr.With(zerr.With(domain.ErrNetworkFailure, "url", url), "cause", err.Error())
	}
	if status != http.StatusOK {
		return nil, zerr.With(zerr.With(domain.ErrHTTPNonSuccess, "url", url), "status", fmt.Sprintf("%d", status))
	}
	return body, nil
}

func (r *Resolver) artifactURL(coord domain.ArtifactCoordinate, ext string) string {
	groupPath := strings.ReplaceAll(coord.Group, ".", "/")
	fileName := coord.Artifact + "-" + coord.Version + "." + ext
	return r.baseURL + "/" + path.Join(groupPath, coord.Artifact, coord.Version, fileName)
}

func (r *Resolver) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// pomProject is the small subset of a Maven POM we depend on: packaging and
// the direct dependency list.
type pomProject struct {
	XMLName      xml.Name     `xml:"project"`
	Packaging    string       `xml:"packaging"`
	Dependencies []pomDependency `xml:"dependencies>dependency"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}
