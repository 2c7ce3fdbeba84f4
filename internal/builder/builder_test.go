package builder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qobs-build/vsgen/internal/msg"
	"github.com/qobs-build/vsgen/internal/vs"
)

type stubDiscovery struct {
	path      string
	installed map[string]bool
}

func (d *stubDiscovery) SetVSInstance(id string) bool {
	if d.installed[id] {
		d.path = id
		return true
	}
	return false
}

func (d *stubDiscovery) GetVSInstanceInfo() (string, bool)   { return d.path, d.path != "" }
func (d *stubDiscovery) GetVCToolsetVersion() (string, bool) { return "", false }
func (d *stubDiscovery) IsVSInstalled() bool                 { return true }
func (d *stubDiscovery) IsWin10SDKInstalled() bool           { return false }
func (d *stubDiscovery) IsWin81SDKInstalled() bool           { return false }

type emptyRegistry struct{}

func (emptyRegistry) StringValue(vs.RegistryRoot, string, string) (string, bool) { return "", false }

func testServices(t *testing.T) (vs.Options, *stubDiscovery, *msg.Recorder) {
	t.Helper()
	instance := filepath.ToSlash(t.TempDir())
	require.NoError(t, os.MkdirAll(filepath.Join(instance, "Common7", "IDE", "VC", "VCTargets"), 0o755))

	d := &stubDiscovery{path: instance, installed: map[string]bool{instance: true}}
	rec := &msg.Recorder{}
	return vs.Options{Discovery: d, Registry: emptyRegistry{}, Issuer: rec}, d, rec
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0o644))
}

func TestConfigureWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()
	services, d, rec := testServices(t)

	b, err := NewBuilderInDirectory(dir, Overrides{Generator: "Visual Studio 15 2017 Win64"}, services)
	require.NoError(t, err)
	require.NoError(t, b.Configure())

	name := filepath.Base(dir)
	sln, err := os.ReadFile(filepath.Join(dir, "build", name+".sln"))
	require.NoError(t, err)
	assert.Contains(t, string(sln), "# Visual Studio 15\n")
	assert.Contains(t, string(sln), "Debug|x64 = Debug|x64")
	assert.FileExists(t, filepath.Join(dir, "build", name, name+".vcxproj"))

	v, ok := b.Cache().Get(vs.VarGeneratorInstance)
	require.True(t, ok)
	assert.Equal(t, d.path, v)
	assert.Equal(t, "v141", b.Generator().PlatformToolset())
	assert.Zero(t, rec.Count(msg.SeverityFatal))
	assert.Zero(t, rec.Count(msg.SeverityWarning))
}

func TestConfigureReusesCachedInstance(t *testing.T) {
	dir := t.TempDir()
	services, d, rec := testServices(t)

	b, err := NewBuilderInDirectory(dir, Overrides{}, services)
	require.NoError(t, err)
	require.NoError(t, b.Configure())
	assert.Contains(t, rec.Messages[0].Text, "updated ")

	// a fresh discovery with nothing chosen must be bound from the cache
	services.Discovery = &stubDiscovery{installed: map[string]bool{d.path: true}}
	rec2 := &msg.Recorder{}
	services.Issuer = rec2

	b2, err := NewBuilderInDirectory(dir, Overrides{}, services)
	require.NoError(t, err)
	require.NoError(t, b2.Configure())
	assert.Equal(t, d.path, b2.Generator().Instance().ExplicitID)
	for _, m := range rec2.Messages {
		assert.NotContains(t, m.Text, "updated ")
	}
}

func TestConfigureFromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[project]
name = "tools"
configurations = ["Release"]
build-dir = "out"

[generator]
name = "Visual Studio 15 2017"
platform = "ARM"

[targets.assets]
commands = ["echo assets"]

[targets.docs]
commands = ["echo docs"]
`)
	services, _, _ := testServices(t)

	b, err := NewBuilderInDirectory(dir, Overrides{}, services)
	require.NoError(t, err)
	require.NoError(t, b.Configure())

	assert.Equal(t, filepath.Join(dir, "out"), b.BuildDir())
	sln, err := os.ReadFile(filepath.Join(dir, "out", "tools.sln"))
	require.NoError(t, err)
	assert.Contains(t, string(sln), "Release|ARM = Release|ARM")
	assert.NotContains(t, string(sln), "Debug|")
	assert.FileExists(t, filepath.Join(dir, "out", "assets", "assets.vcxproj"))
	assert.FileExists(t, filepath.Join(dir, "out", "docs", "docs.vcxproj"))
	assert.NoFileExists(t, filepath.Join(dir, "out", "tools", "tools.vcxproj"))
}

func TestConfigureFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[generator]
name = "Visual Studio 15 2017"
toolset = "v140"
`)
	services, _, _ := testServices(t)

	b, err := NewBuilderInDirectory(dir, Overrides{Toolset: "v141,host=x64"}, services)
	require.NoError(t, err)
	require.NoError(t, b.Configure())
	assert.Equal(t, "v141", b.Generator().PlatformToolset())
	assert.Equal(t, "x64", b.Generator().ToolsetHostArchitecture())
}

func TestConfigureUnknownGenerator(t *testing.T) {
	services, _, _ := testServices(t)

	b, err := NewBuilderInDirectory(t.TempDir(), Overrides{Generator: "Visual Studio 99 2099"}, services)
	require.NoError(t, err)

	err = b.Configure()
	require.Error(t, err)
	assert.True(t, errors.Is(err, vs.ErrUnknownGenerator))
	assert.NotEmpty(t, errors.FlattenHints(err))
}

func TestConfigureMissingInstance(t *testing.T) {
	services, _, rec := testServices(t)

	b, err := NewBuilderInDirectory(t.TempDir(), Overrides{Instance: "C:/nowhere"}, services)
	require.NoError(t, err)

	err = b.Configure()
	assert.True(t, errors.Is(err, vs.ErrInstanceNotFound))
	assert.Equal(t, 1, rec.Count(msg.SeverityFatal))
	assert.Contains(t, rec.Last().Text, "C:/nowhere")
}

func TestConfigureWarnsWithoutVCTargets(t *testing.T) {
	services, d, rec := testServices(t)
	require.NoError(t, os.RemoveAll(filepath.Join(d.path, "Common7")))

	b, err := NewBuilderInDirectory(t.TempDir(), Overrides{}, services)
	require.NoError(t, err)
	require.NoError(t, b.Configure())
	assert.Equal(t, 1, rec.Count(msg.SeverityWarning))
}

func TestDefinitionsPreferRequestedValues(t *testing.T) {
	cache := &Cache{Entries: map[string]CacheEntry{
		vs.VarGeneratorInstance: {Value: "C:/cached"},
		vs.VarGeneratorPlatform: {Value: "x64"},
	}}
	d := definitions{values: map[string]string{vs.VarGeneratorInstance: "C:/requested"}, cache: cache}

	assert.Equal(t, "C:/requested", d.Definition(vs.VarGeneratorInstance))
	assert.Equal(t, "x64", d.Definition(vs.VarGeneratorPlatform))
	assert.Equal(t, "", d.Definition(vs.VarSystemName))

	d.SetCacheEntry(vs.VarSystemName, "Android", "doc")
	assert.Equal(t, "Android", d.Definition(vs.VarSystemName))
}

func TestOverridesApply(t *testing.T) {
	cfg := &Config{Generator: GeneratorSection{Name: "Visual Studio 15 2017", Platform: "x64"}}
	cfg.Android.APILevel = int64(21)
	cfg.apply(Overrides{Platform: "ARM64", AndroidAPILevel: "28"})

	assert.Equal(t, "Visual Studio 15 2017", cfg.Generator.Name)
	assert.Equal(t, "ARM64", cfg.Generator.Platform)
	assert.Equal(t, "28", cfg.definitions()[vs.VarAndroidAPILevel])
}
