package vs

// SetGeneratorInstance resolves the Visual Studio instance to use. A non-empty
// id binds to the instance installed at that path; otherwise discovery picks
// one. Every call probes again. The resolved path is persisted as
// GENERATOR_INSTANCE when it differs from the stored value.
func (g *Generator) SetGeneratorInstance(id string) error {
	if id != "" {
		if !g.discovery.SetVSInstance(id) {
			return fatal(g.issuer, ErrInstanceNotFound,
				"Generator\n  "+g.Name()+"\ncould not find specified instance of Visual Studio:\n  "+id)
		}
		if g.instance.ExplicitID == "" {
			g.instance.ExplicitID = id
		}
	}

	path, ok := g.discovery.GetVSInstanceInfo()
	if !ok || path == "" {
		return fatal(g.issuer, ErrNoInstanceInstalled,
			"Generator\n  "+g.Name()+"\ncould not find any instance of Visual Studio.\n")
	}

	if g.defs.Definition(VarGeneratorInstance) != path {
		g.defs.SetCacheEntry(VarGeneratorInstance, path, "Generator instance identifier.")
	}
	g.instance.ResolvedPath = path
	return nil
}

// instancePath returns the install path the path-derived lookups use. The
// first successful probe is kept until Reset.
func (g *Generator) instancePath() (string, bool) {
	if g.instance.ResolvedPath != "" {
		return g.instance.ResolvedPath, true
	}
	path, ok := g.discovery.GetVSInstanceInfo()
	if !ok || path == "" {
		return "", false
	}
	g.instance.ResolvedPath = path
	return path, true
}
