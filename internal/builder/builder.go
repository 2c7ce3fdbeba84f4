package builder

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/qobs-build/vsgen/internal/builder/gen"
	"github.com/qobs-build/vsgen/internal/msg"
	"github.com/qobs-build/vsgen/internal/vs"
)

const defaultGenerator = "Visual Studio 16 2019"

// Overrides are command-line values. Non-empty fields win over vsgen.toml.
type Overrides struct {
	Generator       string
	Instance        string
	Platform        string
	Toolset         string
	SystemName      string
	SystemVersion   string
	AndroidAPILevel string
}

// definitions serves requested values first and falls back to the cache.
type definitions struct {
	values map[string]string
	cache  *Cache
}

func (d definitions) Definition(name string) string {
	if v := d.values[name]; v != "" {
		return v
	}
	v, _ := d.cache.Get(name)
	return v
}

func (d definitions) SetCacheEntry(name, value, doc string) {
	d.cache.SetCacheEntry(name, value, doc)
}

type Builder struct {
	cfg      *Config
	basedir  string
	buildDir string
	env      ConfigEnv
	services vs.Options
	cache    *Cache
	defs     definitions

	generator *vs.Generator
	sln       gen.Generator
}

// NewBuilderInDirectory loads vsgen.toml from path, when present, and the
// cache of its build directory. services may be zero.
func NewBuilderInDirectory(path string, overrides Overrides, services vs.Options) (*Builder, error) {
	var err error
	path, err = filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	env := NewConfigEnv(path)
	cfg, err := ParseConfigFromFile(filepath.Join(path, ConfigFile), env)
	if os.IsNotExist(err) {
		cfg, err = ParseConfig(strings.NewReader(""), env)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", ConfigFile)
	}
	cfg.apply(overrides)

	buildDir := cfg.Project.BuildDir
	if !filepath.IsAbs(buildDir) {
		buildDir = filepath.Join(path, buildDir)
	}

	cache, err := LoadCache(buildDir)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		cfg:      cfg,
		basedir:  path,
		buildDir: buildDir,
		env:      env,
		services: services,
		cache:    cache,
	}
	b.defs = definitions{values: cfg.definitions(), cache: cache}
	if b.services.Definitions == nil {
		b.services.Definitions = b.defs
	}
	if b.services.Issuer == nil {
		b.services.Issuer = &msg.Console{}
	}
	return b, nil
}

// apply layers command-line values over the file.
func (c *Config) apply(o Overrides) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Generator.Name, o.Generator)
	set(&c.Generator.Instance, o.Instance)
	set(&c.Generator.Platform, o.Platform)
	set(&c.Generator.Toolset, o.Toolset)
	set(&c.System.Name, o.SystemName)
	set(&c.System.Version, o.SystemVersion)
	if o.AndroidAPILevel != "" {
		c.Android.APILevel = o.AndroidAPILevel
	}
}

func (c *Config) definitions() map[string]string {
	return map[string]string{
		vs.VarGeneratorInstance: c.Generator.Instance,
		vs.VarGeneratorPlatform: c.Generator.Platform,
		vs.VarGeneratorToolset:  c.Generator.Toolset,
		vs.VarSystemName:        c.System.Name,
		vs.VarSystemVersion:     c.System.Version,
		vs.VarAndroidAPILevel:   c.Android.APILevelString(),
	}
}

func (b *Builder) Config() *Config { return b.cfg }

func (b *Builder) BuildDir() string { return b.buildDir }

func (b *Builder) Cache() *Cache { return b.cache }

// Generator returns the generator of the last Configure, or nil.
func (b *Builder) Generator() *vs.Generator { return b.generator }

// Configure resolves generator state and writes the solution. The instance
// is resolved first, then the target system, platform and toolset.
func (b *Builder) Configure() error {
	name := b.cfg.Generator.Name
	if name == "" {
		name = defaultGenerator
	}

	g, err := vs.New(name, b.services)
	if err != nil {
		return err
	}
	b.generator = g

	instance := b.defs.Definition(vs.VarGeneratorInstance)
	if err := g.SetGeneratorInstance(instance); err != nil {
		return err
	}
	if err := g.SetSystemName(b.cfg.System.Name, b.cfg.System.Version); err != nil {
		return err
	}
	if err := g.SetGeneratorPlatform(b.cfg.Generator.Platform); err != nil {
		return err
	}
	if err := g.SetGeneratorToolset(b.cfg.Generator.Toolset); err != nil {
		return err
	}
	if !g.FindVCTargetsPath() {
		b.services.Issuer.Issue(msg.SeverityWarning,
			"could not find VCTargets in the selected Visual Studio instance; MSBuild will use its own default")
	}

	sln := gen.NewSolutionGen(b.cfg.Project.Name, g, b.cfg.Project.Configurations)
	if len(b.cfg.Targets) == 0 {
		sln.AddTarget(b.cfg.Project.Name, nil)
	}
	for _, target := range b.cfg.TargetNames() {
		sln.AddTarget(target, b.cfg.Targets[target].Commands)
	}

	path, err := sln.Generate(b.buildDir)
	if err != nil {
		return errors.Wrap(err, "failed to generate solution")
	}
	b.sln = sln

	diff, err := b.cache.Save()
	if err != nil {
		return errors.Wrapf(err, "failed to write %s", b.cache.Path())
	}
	if diff != "" {
		b.services.Issuer.Issue(msg.SeverityInfo, "updated "+filepath.ToSlash(b.cache.Path())+":\n"+diff)
	}

	b.services.Issuer.Issue(msg.SeverityInfo, "generated "+filepath.ToSlash(path)+" with "+g.Name()+
		" (platform "+g.PlatformName()+", toolset "+g.PlatformToolset()+")")
	return nil
}

// Build configures the tree and then invokes MSBuild, or devenv when asked.
func (b *Builder) Build(configuration string, devenv bool) error {
	if err := b.Configure(); err != nil {
		return err
	}
	if err := b.sln.Invoke(b.buildDir, configuration, devenv); err != nil {
		return errors.Wrap(err, "build failed")
	}
	return nil
}
