package vs

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qobs-build/vsgen/internal/msg"
)

func TestSetGeneratorInstanceAutoDiscovery(t *testing.T) {
	env := newTestGenerator(t, "Visual Studio 16 2019", "C:/VS/2019/Community")

	require.NoError(t, env.gen.SetGeneratorInstance(""))
	assert.Equal(t, "C:/VS/2019/Community", env.gen.Instance().ResolvedPath)
	assert.Empty(t, env.gen.Instance().ExplicitID)
	assert.Equal(t, "C:/VS/2019/Community", env.defs[VarGeneratorInstance])
	assert.Empty(t, env.issuer.Messages)
}

func TestSetGeneratorInstanceExplicit(t *testing.T) {
	env := newTestGenerator(t, "Visual Studio 16 2019", "C:/VS/2019/Community")
	env.discovery.installed["C:/VS/2019/Enterprise"] = true

	require.NoError(t, env.gen.SetGeneratorInstance("C:/VS/2019/Enterprise"))
	assert.Equal(t, "C:/VS/2019/Enterprise", env.gen.Instance().ExplicitID)
	assert.Equal(t, "C:/VS/2019/Enterprise", env.gen.Instance().ResolvedPath)
	assert.Equal(t, "C:/VS/2019/Enterprise", env.defs[VarGeneratorInstance])
}

func TestSetGeneratorInstanceNotFound(t *testing.T) {
	env := newTestGenerator(t, "Visual Studio 16 2019", "C:/VS/2019/Community")

	err := env.gen.SetGeneratorInstance("D:/missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInstanceNotFound))
	assert.Empty(t, env.gen.Instance().ResolvedPath)
	assert.Empty(t, env.defs[VarGeneratorInstance])

	last := env.issuer.Last()
	assert.Equal(t, msg.SeverityFatal, last.Severity)
	assert.Equal(t, "Generator\n  Visual Studio 16 2019\ncould not find specified instance of Visual Studio:\n  D:/missing", last.Text)
}

func TestSetGeneratorInstanceNoneInstalled(t *testing.T) {
	env := newTestGenerator(t, "Visual Studio 15 2017 Win64", "")

	err := env.gen.SetGeneratorInstance("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoInstanceInstalled))
	assert.Equal(t, "Generator\n  Visual Studio 15 2017 Win64\ncould not find any instance of Visual Studio.\n", env.issuer.Last().Text)
}

func TestSetGeneratorInstancePersistsOnlyOnChange(t *testing.T) {
	defs := &recordingDefs{MapDefinitions: MapDefinitions{VarGeneratorInstance: "C:/VS/old"}}
	d := &fakeDiscovery{path: "C:/VS/new"}
	g, err := New("Visual Studio 16 2019", Options{Discovery: d, Registry: fakeRegistry{}, Issuer: &msg.Recorder{}, Definitions: defs})
	require.NoError(t, err)

	require.NoError(t, g.SetGeneratorInstance(""))
	require.NoError(t, g.SetGeneratorInstance(""))
	assert.Equal(t, 1, defs.writes)
	assert.Equal(t, "C:/VS/new", defs.Definition(VarGeneratorInstance))
}

func TestSetGeneratorInstanceReprobes(t *testing.T) {
	env := newTestGenerator(t, "Visual Studio 16 2019", "C:/VS/2019/Community")

	require.NoError(t, env.gen.SetGeneratorInstance(""))
	first := env.gen.Instance()
	require.NoError(t, env.gen.SetGeneratorInstance(""))

	assert.Equal(t, 2, env.discovery.probes)
	assert.Equal(t, first, env.gen.Instance())
}

func TestInstancePathCachedUntilReset(t *testing.T) {
	env := newTestGenerator(t, "Visual Studio 16 2019", "C:/VS/a")

	p, ok := env.gen.instancePath()
	require.True(t, ok)
	assert.Equal(t, "C:/VS/a", p)

	env.discovery.path = "C:/VS/b"
	p, _ = env.gen.instancePath()
	assert.Equal(t, "C:/VS/a", p)
	assert.Equal(t, 1, env.discovery.probes)

	env.gen.Reset()
	p, _ = env.gen.instancePath()
	assert.Equal(t, "C:/VS/b", p)
}
