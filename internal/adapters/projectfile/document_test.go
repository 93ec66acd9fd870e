package projectfile_test

import (
	"strings"
	"testing"

	"github.com/labt-build/labt/internal/adapters/projectfile"
	"github.com/labt-build/labt/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

const annotatedProject = `# Android demo project
[project]
name = "demo" # the app name
package = "com.example.demo"
version_name = "0.1.0"
version_code = 1

[dependencies.appcompat]
group = "androidx.appcompat"
version = "1.0.0"

# resolver chain, order matters
[[resolvers]]
name = "central"
url = "https://repo1.maven.org/maven2"
`

func TestDocument_AppendsNewDependencyTable(t *testing.T) {
	doc := projectfile.ParseDocument([]byte(annotatedProject))
	doc.SetDependency("core", domain.DependencySpec{Group: "androidx.core", Version: "1.3.0"})

	out := string(doc.Bytes())
	assert.Contains(t, out, "# Android demo project")
	assert.Contains(t, out, `name = "demo" # the app name`)
	assert.Contains(t, out, "# resolver chain, order matters")
	assert.Contains(t, out, "[dependencies.core]\ngroup = \"androidx.core\"\nversion = \"1.3.0\"")
}

func TestDocument_ReplacesExistingDependencyInPlace(t *testing.T) {
	doc := projectfile.ParseDocument([]byte(annotatedProject))
	doc.SetDependency("appcompat", domain.DependencySpec{Group: "androidx.appcompat", Version: "1.1.0"})

	out := string(doc.Bytes())
	assert.Contains(t, out, `version = "1.1.0"`)
	assert.NotContains(t, out, `version = "1.0.0"`)
	// The replacement stays where the original table was, before the
	// resolvers array.
	assert.Less(t,
		strings.Index(out, "[dependencies.appcompat]"),
		strings.Index(out, "[[resolvers]]"))
	assert.Contains(t, out, "# resolver chain, order matters")
}

func TestDocument_QuotesNonBareKeys(t *testing.T) {
	doc := projectfile.ParseDocument(nil)
	doc.SetDependency("kotlin.stdlib", domain.DependencySpec{Group: "org.jetbrains.kotlin", Version: "1.9.0"})

	assert.Contains(t, string(doc.Bytes()), `[dependencies."kotlin.stdlib"]`)
}
