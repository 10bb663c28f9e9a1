package dist_test

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/distkit/distkit/pkg/dist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProject(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "distproject")
	require.Nil(t, err)
	return dir, func() { os.RemoveAll(dir) }
}

func TestResolveDevelopmentMode(t *testing.T) {
	dir, cleanup := makeProject(t)
	defer cleanup()

	script := "#!/bin/sh\necho '  1.2.3  '\n"
	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "version.sh"), []byte(script), 0755))

	meta, err := dist.Resolve(dir, dist.ResolveOptions{})
	require.Nil(t, err)

	// Name comes from the directory, version from the trimmed script output
	assert.Equal(t, filepath.Base(dir), meta.Name)
	assert.Equal(t, "1.2.3", meta.Version)
}

func TestResolveDevelopmentModeScriptFailure(t *testing.T) {
	dir, cleanup := makeProject(t)
	defer cleanup()

	script := "#!/bin/sh\necho 'no tags found' >&2\nexit 1\n"
	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "version.sh"), []byte(script), 0755))

	_, err := dist.Resolve(dir, dist.ResolveOptions{})
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "no tags found")
}

func TestResolveSourceDistributionMode(t *testing.T) {
	dir, cleanup := makeProject(t)
	defer cleanup()

	info := "Metadata-Version: 1.1\nName: foo-bar\nVersion: 1.2.3\n"
	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "PKG-INFO"), []byte(info), 0664))

	meta, err := dist.Resolve(dir, dist.ResolveOptions{})
	require.Nil(t, err)

	assert.Equal(t, "foo-bar", meta.Name)
	assert.Equal(t, "1.2.3", meta.Version)
}

func TestResolveMarkerTakesPrecedence(t *testing.T) {
	dir, cleanup := makeProject(t)
	defer cleanup()

	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "version.sh"),
		[]byte("#!/bin/sh\necho 9.9.9\n"), 0755))
	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "PKG-INFO"),
		[]byte("Name: stale\nVersion: 0.0.1\n"), 0664))

	meta, err := dist.Resolve(dir, dist.ResolveOptions{})
	require.Nil(t, err)
	assert.Equal(t, "9.9.9", meta.Version)
	assert.Equal(t, filepath.Base(dir), meta.Name)
}

func TestResolveNothingToResolve(t *testing.T) {
	dir, cleanup := makeProject(t)
	defer cleanup()

	_, err := dist.Resolve(dir, dist.ResolveOptions{})
	assert.NotNil(t, err, "an empty directory must not resolve to an empty distribution")
}

func TestResolveMissingFields(t *testing.T) {
	dir, cleanup := makeProject(t)
	defer cleanup()

	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "PKG-INFO"),
		[]byte("Name: foo-bar\n"), 0664))

	_, err := dist.Resolve(dir, dist.ResolveOptions{})
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "Version")
}

func TestResolveCustomFileNames(t *testing.T) {
	dir, cleanup := makeProject(t)
	defer cleanup()

	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "METADATA"),
		[]byte("Name: custom\nVersion: 2.0\n"), 0664))

	meta, err := dist.Resolve(dir, dist.ResolveOptions{
		VersionScript: "describe.sh",
		InfoFile:      "METADATA",
	})
	require.Nil(t, err)
	assert.Equal(t, "custom", meta.Name)
	assert.Equal(t, "2.0", meta.Version)
}

func TestModuleName(t *testing.T) {
	assert.Equal(t, "foo_bar", dist.ModuleName("foo-bar"))
	assert.Equal(t, "a_b_c", dist.ModuleName("a-b-c"))
	assert.Equal(t, "plain", dist.ModuleName("plain"))
}

func TestParseInfo(t *testing.T) {
	input := strings.Join([]string{
		"Metadata-Version: 1.1",
		"Name: foo-bar",
		"Version: 1.2.3",
		"Summary: Storage API library and command-line tool",
		"Home-page: https://example.com/foo-bar",
		"Author: Example Dev Team",
		"Author-email: dev@example.com",
		"Classifier: Development Status :: 3 - Alpha",
		"Classifier: Intended Audience :: Developers",
		"not a metadata line",
		"Name: second-occurrence-ignored",
	}, "\n")

	meta, err := dist.ParseInfo(strings.NewReader(input))
	require.Nil(t, err)

	assert.Equal(t, "foo-bar", meta.Name)
	assert.Equal(t, "1.2.3", meta.Version)
	assert.Equal(t, "Storage API library and command-line tool", meta.Description)
	assert.Equal(t, "https://example.com/foo-bar", meta.URL)
	assert.Equal(t, "Example Dev Team", meta.Author)
	assert.Equal(t, "dev@example.com", meta.AuthorEmail)
	assert.Len(t, meta.Classifiers, 2)
}

func TestWriteInfoResolves(t *testing.T) {
	// What WriteInfo emits must resolve in source-distribution mode
	meta := &dist.Metadata{
		Name:        "foo-bar",
		Version:     "1.2.3",
		Description: "Storage API library and command-line tool",
		Classifiers: []string{"Topic :: Utilities"},
	}

	var buf bytes.Buffer
	require.Nil(t, meta.WriteInfo(&buf))

	parsed, err := dist.ParseInfo(&buf)
	require.Nil(t, err)
	assert.Equal(t, meta.Name, parsed.Name)
	assert.Equal(t, meta.Version, parsed.Version)
	assert.Equal(t, meta.Classifiers, parsed.Classifiers)
}
