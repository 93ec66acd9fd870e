package maven_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labt-build/labt/internal/adapters/maven"
	"github.com/labt-build/labt/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const examplePom = `<?xml version="1.0" encoding="UTF-8"?>
<project>
  <groupId>androidx.core</groupId>
  <artifactId>core</artifactId>
  <version>1.1.0</version>
  <packaging>aar</packaging>
  <dependencies>
    <dependency>
      <groupId>androidx.annotation</groupId>
      <artifactId>annotation</artifactId>
      <version>1.1.0</version>
    </dependency>
    <dependency>
      <groupId>junit</groupId>
      <artifactId>junit</artifactId>
      <version>4.13</version>
      <scope>test</scope>
    </dependency>
  </dependencies>
</project>`

func TestResolver_LookupParsesPOMAndSkipsTestScope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/androidx/core/core/1.1.0/core-1.1.0.pom", req.URL.Path)
		w.Write([]byte(examplePom))
	}))
	defer srv.Close()

	r := maven.New("maven-central", srv.URL)
	desc, err := r.Lookup(context.Background(), domain.ArtifactCoordinate{
		Group: "androidx.core", Artifact: "core", Version: "1.1.0",
	})
	require.NoError(t, err)
	require.NotNil(t, desc)

	assert.Equal(t, "aar", desc.Packaging)
	require.Len(t, desc.Transitives, 1)
	assert.Equal(t, "androidx.annotation", desc.Transitives[0].Group)
	assert.Equal(t, "annotation", desc.Transitives[0].Artifact)
}

func TestResolver_LookupReportsNotFoundAsMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.NotFound(w, req)
	}))
	defer srv.Close()

	r := maven.New("maven-central", srv.URL)
	desc, err := r.Lookup(context.Background(), domain.ArtifactCoordinate{
		Group: "com.example", Artifact: "missing", Version: "1.0.0",
	})
	require.NoError(t, err)
	assert.Nil(t, desc)
}

func TestResolver_LookupServerErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := maven.New("maven-central", srv.URL)
	_, err := r.Lookup(context.Background(), domain.ArtifactCoordinate{
		Group: "com.example", Artifact: "flaky", Version: "1.0.0",
	})
	require.Error(t, err)
}

func TestResolver_FetchDownloadsArtifactBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/androidx/core/core/1.1.0/core-1.1.0.aar", req.URL.Path)
		w.Write([]byte("aar-bytes"))
	}))
	defer srv.Close()

	r := maven.New("maven-central", srv.URL)
	data, err := r.Fetch(context.Background(), domain.ArtifactCoordinate{
		Group: "androidx.core", Artifact: "core", Version: "1.1.0", Packaging: "aar",
	})
	require.NoError(t, err)
	assert.Equal(t, "aar-bytes", string(data))
}
