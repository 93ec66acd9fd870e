package sdkmanager_test

import (
	"strings"
	"testing"

	"github.com/labt-build/labt/internal/adapters/sdkmanager"
	"github.com/labt-build/labt/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `<?xml version="1.0" encoding="UTF-8"?>
<sdk-repository>
  <license id="android-sdk-license">Terms and conditions</license>
  <channel id="channel-0">Stable</channel>
  <channel id="channel-1">Beta</channel>
  <remotePackage path="platforms;android-34" uses-license="android-sdk-license">
    <display-name>Android SDK Platform 34</display-name>
    <revision><major>3</major><minor>0</minor><micro>0</micro></revision>
    <channelRef ref="channel-0"/>
    <archives>
      <archive>
        <complete>
          <size>12345</size>
          <checksum>da39a3ee5e6b4b0d3255bfef95601890afd80709</checksum>
          <url>platform-34_r03.zip</url>
        </complete>
      </archive>
    </archives>
  </remotePackage>
  <remotePackage path="build-tools;34.0.0" uses-license="android-sdk-license">
    <display-name>Android SDK Build-Tools 34</display-name>
    <revision><major>34</major><minor>0</minor><micro>0</micro></revision>
    <channelRef ref="channel-1"/>
    <dependencies>
      <dependency path="platforms;android-34"/>
    </dependencies>
    <archives>
      <archive>
        <complete>
          <size>999</size>
          <checksum>abc</checksum>
          <url>https://example.com/build-tools.zip</url>
        </complete>
      </archive>
    </archives>
  </remotePackage>
</sdk-repository>`

func TestParseManifest_DecodesPackagesAndChannels(t *testing.T) {
	packages, err := sdkmanager.ParseManifest(strings.NewReader(sampleManifest), "https://dl.google.com/android/repository/repository2-1.xml")
	require.NoError(t, err)
	require.Len(t, packages, 2)

	platform := packages[0]
	assert.Equal(t, "platforms;android-34", platform.Path)
	assert.Equal(t, domain.ChannelStable, platform.Channel)
	assert.Equal(t, "android-sdk-license", platform.LicenseRef)
	assert.Equal(t, domain.Quad{Major: 3, Minor: 0, Micro: 0}, platform.Revision)
	assert.Equal(t, int64(12345), platform.Archive.Size)
	assert.True(t, strings.HasPrefix(platform.Archive.URL, "https://dl.google.com/android/repository/"),
		"relative archive url should resolve against the google canonical base, got %q", platform.Archive.URL)

	buildTools := packages[1]
	assert.Equal(t, domain.ChannelBeta, buildTools.Channel)
	require.Len(t, buildTools.Dependencies, 1)
	assert.Equal(t, "platforms;android-34", buildTools.Dependencies[0].Artifact)
	assert.Equal(t, "https://example.com/build-tools.zip", buildTools.Archive.URL,
		"an absolute archive url must be used as-is")
}

func TestParseManifest_PackageBaseURLOverridesRepositoryBase(t *testing.T) {
	manifest := `<sdk-repository>
  <base-url>https://repo-base.example.com/</base-url>
  <remotePackage path="tools">
    <revision><major>1</major></revision>
    <archives>
      <archive>
        <base-url>https://package-base.example.com/</base-url>
        <complete><size>1</size><checksum>x</checksum><url>tools.zip</url></complete>
      </archive>
    </archives>
  </remotePackage>
</sdk-repository>`

	packages, err := sdkmanager.ParseManifest(strings.NewReader(manifest), "")
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, "https://package-base.example.com/tools.zip", packages[0].Archive.URL)
}
