package compile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osbuild/otk/internal/resolve"
	"github.com/osbuild/otk/internal/tree"
)

// writeOmnifest writes files into a temp dir and returns the path of the
// first one.
func writeOmnifest(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	var first string
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		if first == "" || name == "main.yaml" {
			first = path
		}
	}
	return first
}

func TestDocumentResolves(t *testing.T) {
	path := writeOmnifest(t, map[string]string{
		"main.yaml": `
otk.version: "1"
otk.define:
  release: 41
otk.target.osbuild.qcow2:
  name: image
image: fedora-${release}
`,
	})
	res, err := Document(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "1", res.Version)

	v, ok := res.Root.Get("image")
	require.True(t, ok)
	assert.Equal(t, tree.String("fedora-41"), v)

	require.Len(t, res.Targets, 1)
	assert.Equal(t, "osbuild.qcow2", res.Targets[0].Name)
	assert.Equal(t, "otk.target.osbuild.qcow2", res.Targets[0].Key)
}

func TestDocumentWithIncludes(t *testing.T) {
	path := writeOmnifest(t, map[string]string{
		"main.yaml": `
otk.version: "1"
otk.include: common/defs.yaml
image: ${distro}-disk
`,
		"common/defs.yaml": `
otk.define:
  distro: fedora
`,
	})
	res, err := Document(path, Options{})
	require.NoError(t, err)
	v, _ := res.Root.Get("image")
	assert.Equal(t, tree.String("fedora-disk"), v)
}

func TestDocumentSeedsDefines(t *testing.T) {
	path := writeOmnifest(t, map[string]string{
		"main.yaml": `
otk.version: "1"
arch: ${arch}
size: ${size}
`,
	})
	res, err := Document(path, Options{Defines: map[string]string{
		"arch": "aarch64",
		"size": "5",
	}})
	require.NoError(t, err)
	v, _ := res.Root.Get("arch")
	assert.Equal(t, tree.String("aarch64"), v)
	v, _ = res.Root.Get("size")
	assert.Equal(t, tree.Int(5), v, "-D values parse to typed scalars")
}

func TestDocumentResolutionFailure(t *testing.T) {
	path := writeOmnifest(t, map[string]string{
		"main.yaml": `x: ${undefined}`,
	})
	_, err := Document(path, Options{})
	require.ErrorIs(t, err, resolve.ErrUndefinedVariable)
}

func TestDocumentRootMustBeMapping(t *testing.T) {
	path := writeOmnifest(t, map[string]string{
		"main.yaml": `[1, 2]`,
	})
	_, err := Document(path, Options{})
	require.ErrorIs(t, err, ErrNotAMapping)
}

func TestDocumentMissingFile(t *testing.T) {
	_, err := Document(filepath.Join(t.TempDir(), "nope.yaml"), Options{})
	require.ErrorIs(t, err, resolve.ErrIncludeResolution)
}

func TestDocumentMissingVersion(t *testing.T) {
	path := writeOmnifest(t, map[string]string{
		"main.yaml": `x: 1`,
	})
	res, err := Document(path, Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Version)
}

func TestSelect(t *testing.T) {
	path := writeOmnifest(t, map[string]string{
		"main.yaml": `
otk.version: "1"
otk.target.osbuild.qcow2:
  fmt: qcow2
otk.target.osbuild.ami:
  fmt: ami
`,
	})
	res, err := Document(path, Options{})
	require.NoError(t, err)

	target, err := res.Select("osbuild.ami")
	require.NoError(t, err)
	assert.Equal(t, "osbuild.ami", target.Name)

	_, err = res.Select("")
	require.ErrorIs(t, err, ErrAmbiguousTarget)

	_, err = res.Select("osbuild.nope")
	require.ErrorIs(t, err, ErrUnknownTarget)
	assert.Contains(t, err.Error(), "osbuild.qcow2")
}

func TestSelectSingleDefault(t *testing.T) {
	path := writeOmnifest(t, map[string]string{
		"main.yaml": `
otk.version: "1"
otk.target.osbuild.qcow2:
  fmt: qcow2
`,
	})
	res, err := Document(path, Options{})
	require.NoError(t, err)

	target, err := res.Select("")
	require.NoError(t, err)
	assert.Equal(t, "osbuild.qcow2", target.Name)
}

func TestSelectNoTargets(t *testing.T) {
	path := writeOmnifest(t, map[string]string{
		"main.yaml": `{otk.version: "1"}`,
	})
	res, err := Document(path, Options{})
	require.NoError(t, err)
	_, err = res.Select("")
	require.ErrorIs(t, err, ErrNoTargets)
}
