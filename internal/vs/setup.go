package vs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-version"
	"github.com/heaths/go-vssetup"
)

// Package ids looked up in an instance's installed packages.
const (
	componentVCTools     = "Microsoft.VisualStudio.Component.VC.Tools.x86.x64"
	componentWin81SDK    = "Microsoft.VisualStudio.Component.Windows81SDK"
	componentWin10SDK    = "Microsoft.VisualStudio.Component.Windows10SDK"
	componentWin11SDK    = "Microsoft.VisualStudio.Component.Windows11SDK"
	vcToolsDefaultMarker = "VC/Auxiliary/Build/Microsoft.VCToolsVersion.default.txt"
)

// InstanceInfo describes one installed Visual Studio instance.
type InstanceInfo struct {
	ID       string
	Name     string
	Path     string
	Version  string
	Complete bool
	Packages []string
}

// Major returns the first component of the installation version, or 0.
func (i InstanceInfo) Major() int {
	v, err := version.NewVersion(i.Version)
	if err != nil {
		return 0
	}
	return v.Segments()[0]
}

func (i InstanceInfo) hasPackage(id string) bool {
	for _, p := range i.Packages {
		if p == id {
			return true
		}
	}
	return false
}

func (i InstanceInfo) hasPackagePrefix(prefix string) bool {
	for _, p := range i.Packages {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// Enumerator lists installed Visual Studio instances.
type Enumerator interface {
	Instances() ([]InstanceInfo, error)
}

// Discovery is the instance discovery service the generator consults.
type Discovery interface {
	// SetVSInstance binds to the instance installed at id.
	SetVSInstance(id string) bool
	// GetVSInstanceInfo returns the install path of the chosen instance.
	GetVSInstanceInfo() (string, bool)
	GetVCToolsetVersion() (string, bool)
	IsVSInstalled() bool
	IsWin10SDKInstalled() bool
	IsWin81SDKInstalled() bool
}

// SetupEnumerator enumerates instances through the Setup Configuration API.
type SetupEnumerator struct{}

func (SetupEnumerator) Instances() ([]InstanceInfo, error) {
	instances, err := vssetup.Instances(false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to enumerate Visual Studio instances")
	}

	infos := make([]InstanceInfo, 0, len(instances))
	for _, inst := range instances {
		info, err := describeInstance(inst)
		inst.Close()
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func describeInstance(inst *vssetup.Instance) (InstanceInfo, error) {
	var info InstanceInfo
	var err error

	if info.ID, err = inst.InstanceID(); err != nil {
		return info, errors.Wrap(err, "failed to read instance id")
	}
	if info.Path, err = inst.InstallationPath(); err != nil {
		return info, errors.Wrapf(err, "failed to read installation path of %s", info.ID)
	}
	if info.Name, err = inst.InstallationName(); err != nil {
		return info, errors.Wrapf(err, "failed to read installation name of %s", info.ID)
	}
	if info.Complete, err = inst.IsComplete(); err != nil {
		return info, errors.Wrapf(err, "failed to read state of %s", info.ID)
	}

	info.Version = versionFromName(info.Name)
	if product, err := inst.Product(); err == nil && product != nil {
		if v, err := product.Version(); err == nil && v != "" {
			info.Version = v
		}
		product.Close()
	}

	packages, err := inst.Packages()
	if err != nil {
		return info, errors.Wrapf(err, "failed to read packages of %s", info.ID)
	}
	for _, p := range packages {
		if id, err := p.ID(); err == nil {
			info.Packages = append(info.Packages, id)
		}
		p.Close()
	}
	return info, nil
}

// versionFromName extracts "16.11.5" from "VisualStudio/16.11.5+31729.503".
func versionFromName(name string) string {
	_, v, ok := strings.Cut(name, "/")
	if !ok {
		return ""
	}
	v, _, _ = strings.Cut(v, "+")
	return v
}

// SetupHelper answers discovery questions for one Visual Studio major version.
type SetupHelper struct {
	major      int
	enumerator Enumerator
	bound      *InstanceInfo
}

// NewSetupHelper returns a discovery service restricted to instances whose
// installation version has the given major number.
func NewSetupHelper(major int, e Enumerator) *SetupHelper {
	if e == nil {
		e = SetupEnumerator{}
	}
	return &SetupHelper{major: major, enumerator: e}
}

// Instances returns the complete instances of the helper's major version.
func (h *SetupHelper) Instances() ([]InstanceInfo, error) {
	all, err := h.enumerator.Instances()
	if err != nil {
		return nil, err
	}
	var matching []InstanceInfo
	for _, inst := range all {
		if inst.Complete && inst.Major() == h.major {
			matching = append(matching, inst)
		}
	}
	return matching, nil
}

func (h *SetupHelper) SetVSInstance(id string) bool {
	h.bound = nil
	instances, err := h.Instances()
	if err != nil {
		return false
	}
	for i := range instances {
		if samePath(instances[i].Path, id) {
			h.bound = &instances[i]
			return true
		}
	}
	return false
}

// chosen is the bound instance if any, else the newest matching one.
func (h *SetupHelper) chosen() (InstanceInfo, bool) {
	if h.bound != nil {
		return *h.bound, true
	}
	instances, err := h.Instances()
	if err != nil || len(instances) == 0 {
		return InstanceInfo{}, false
	}

	best := instances[0]
	for _, inst := range instances[1:] {
		if versionGreater(inst.Version, best.Version) {
			best = inst
		}
	}
	return best, true
}

func (h *SetupHelper) GetVSInstanceInfo() (string, bool) {
	inst, ok := h.chosen()
	if !ok {
		return "", false
	}
	return filepath.ToSlash(inst.Path), true
}

func (h *SetupHelper) GetVCToolsetVersion() (string, bool) {
	inst, ok := h.chosen()
	if !ok {
		return "", false
	}
	data, err := os.ReadFile(filepath.Join(inst.Path, filepath.FromSlash(vcToolsDefaultMarker)))
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(string(data))
	return v, v != ""
}

func (h *SetupHelper) IsVSInstalled() bool {
	inst, ok := h.chosen()
	return ok && inst.hasPackage(componentVCTools)
}

func (h *SetupHelper) IsWin10SDKInstalled() bool {
	inst, ok := h.chosen()
	return ok && (inst.hasPackagePrefix(componentWin10SDK) || inst.hasPackagePrefix(componentWin11SDK))
}

func (h *SetupHelper) IsWin81SDKInstalled() bool {
	inst, ok := h.chosen()
	return ok && inst.hasPackage(componentWin81SDK)
}

func samePath(a, b string) bool {
	clean := func(p string) string {
		return strings.TrimSuffix(strings.ReplaceAll(filepath.Clean(p), `\`, "/"), "/")
	}
	return strings.EqualFold(clean(a), clean(b))
}
