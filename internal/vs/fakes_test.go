package vs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qobs-build/vsgen/internal/msg"
)

type fakeDiscovery struct {
	path      string
	installed map[string]bool
	vcTools   string
	vcTarget  bool
	win10     bool
	win81     bool
	probes    int
}

func (d *fakeDiscovery) SetVSInstance(id string) bool {
	if d.installed[id] {
		d.path = id
		return true
	}
	return false
}

func (d *fakeDiscovery) GetVSInstanceInfo() (string, bool) {
	d.probes++
	return d.path, d.path != ""
}

func (d *fakeDiscovery) GetVCToolsetVersion() (string, bool) {
	return d.vcTools, d.vcTools != ""
}

func (d *fakeDiscovery) IsVSInstalled() bool       { return d.vcTarget }
func (d *fakeDiscovery) IsWin10SDKInstalled() bool { return d.win10 }
func (d *fakeDiscovery) IsWin81SDKInstalled() bool { return d.win81 }

type fakeRegistry map[RegistryRoot]map[string]string

func (r fakeRegistry) set(root RegistryRoot, key, name, value string) {
	if r[root] == nil {
		r[root] = make(map[string]string)
	}
	r[root][key+";"+name] = value
}

func (r fakeRegistry) StringValue(root RegistryRoot, key, name string) (string, bool) {
	v, ok := r[root][key+";"+name]
	return v, ok
}

// recordingDefs counts cache writes.
type recordingDefs struct {
	MapDefinitions
	writes int
}

func (d *recordingDefs) SetCacheEntry(name, value, doc string) {
	d.writes++
	d.MapDefinitions.SetCacheEntry(name, value, doc)
}

type testEnv struct {
	gen       *Generator
	discovery *fakeDiscovery
	registry  fakeRegistry
	issuer    *msg.Recorder
	defs      MapDefinitions
}

func newTestGenerator(t *testing.T, name, instance string) *testEnv {
	t.Helper()
	env := &testEnv{
		discovery: &fakeDiscovery{path: instance, installed: map[string]bool{}},
		registry:  fakeRegistry{},
		issuer:    &msg.Recorder{},
		defs:      MapDefinitions{},
	}
	if instance != "" {
		env.discovery.installed[instance] = true
	}
	g, err := New(name, Options{
		Discovery:   env.discovery,
		Registry:    env.registry,
		Issuer:      env.issuer,
		Definitions: env.defs,
	})
	require.NoError(t, err)
	env.gen = g
	return env
}

// mkdirs creates root/rel for every rel.
func mkdirs(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0o755))
	}
}

// touch creates an empty file at root/rel, parents included.
func touch(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}
}

// slashDir returns a temp dir in the forward-slash form discovery reports.
func slashDir(t *testing.T) string {
	return filepath.ToSlash(t.TempDir())
}
