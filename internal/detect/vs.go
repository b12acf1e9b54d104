package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/donaldgifford/egeinstall/internal/probe"
	"github.com/donaldgifford/egeinstall/internal/toolchain"
	"github.com/donaldgifford/egeinstall/internal/version"
	"github.com/donaldgifford/egeinstall/internal/winpath"
)

const msvcToolsRoot = `VC\Tools\MSVC`

// vsInstance is the subset of a vswhere instance record detection needs.
type vsInstance struct {
	InstallationPath    string `json:"installationPath"`
	InstallationVersion string `json:"installationVersion"`
	DisplayName         string `json:"displayName"`
}

// parseVSWhere decodes vswhere JSON output. Fields are paired per instance
// object; a missing field is blank. Output that is not a JSON array of objects
// yields no instances.
func parseVSWhere(out []byte) []vsInstance {
	var raw []json.RawMessage
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil
	}

	instances := make([]vsInstance, 0, len(raw))

	for _, r := range raw {
		var inst vsInstance
		if err := json.Unmarshal(r, &inst); err != nil {
			continue
		}

		instances = append(instances, inst)
	}

	return instances
}

// VisualStudio detects Visual Studio 2017 and later through vswhere. It returns
// nothing when vswhere is not installed.
func VisualStudio(ctx context.Context, p *probe.Probe, l *Layout) []toolchain.Candidate {
	tool, ok := firstFile(p, l.VSWhere)
	if !ok {
		p.Log().Debug("vswhere not found")

		return nil
	}

	if l.VSWhereTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.VSWhereTimeout)

		defer cancel()
	}

	out, ok := p.Run(ctx, tool, l.VSWhereArgs...)
	if !ok {
		return nil
	}

	var result []toolchain.Candidate

	for _, inst := range parseVSWhere(out) {
		path := winpath.TrimTrailing(inst.InstallationPath)
		if path == "" || !p.IsDir(path) {
			continue
		}

		result = append(result, vsInstanceCandidates(p, l, inst, path)...)
	}

	return result
}

func vsInstanceCandidates(p *probe.Probe, l *Layout, inst vsInstance, path string) []toolchain.Candidate {
	name := inst.DisplayName
	if name == "" {
		name = "Visual Studio"
	}

	year := version.ProductYear(name, inst.InstallationVersion, l.VSYears)
	supported := slices.Contains(l.VSSupported, year)
	major, minor, _ := version.ParseDotted(inst.InstallationVersion)

	base := toolchain.Candidate{
		Name:      name,
		Root:      path,
		Family:    toolchain.VisualStudio,
		Supported: supported,
		Version: &toolchain.VersionInfo{
			Major: major,
			Minor: minor,
			Raw:   inst.InstallationVersion,
			Year:  year,
		},
	}

	tools := winpath.Join(path, msvcToolsRoot)
	if !p.IsDir(tools) {
		return []toolchain.Candidate{vsFlatLayout(p, base)}
	}

	dirs := p.SubDirs(tools)
	if len(dirs) == 0 {
		// Tools root without any toolset: surface it as an incomplete install.
		base.Name = name + " (no MSVC toolset installed)"

		return []toolchain.Candidate{base}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))

	result := make([]toolchain.Candidate, 0, len(dirs))

	for _, d := range dirs {
		result = append(result, vsToolsetCandidate(p, base, tools, d))
	}

	return result
}

func vsToolsetCandidate(p *probe.Probe, base toolchain.Candidate, tools, dir string) toolchain.Candidate {
	c := base
	c.Present = true

	ts := version.ClassifyToolset(dir)
	v := *base.Version
	v.Raw = dir
	v.Major = ts.Major
	v.Minor = ts.Minor

	if ts.Unknown {
		c.Name = fmt.Sprintf("%s (MSVC %s)", base.Name, dir)
	} else {
		v.Toolset = ts.ID
		v.Year = ts.Year
		c.Name = fmt.Sprintf("%s (%s, MSVC %s)", base.Name, ts.ID, dir)
	}

	c.Version = &v

	include := winpath.Join(tools, dir, "include")
	lib := winpath.Join(tools, dir, "lib")

	if p.IsDir(include) && p.IsDir(lib) {
		c.IncludeDir = include
		c.LibDir = lib
	}

	return c
}

// vsFlatLayout handles instances without VC\Tools\MSVC, whose headers sit in a
// flat include/lib pair (VC\include or directly under the instance).
func vsFlatLayout(p *probe.Probe, base toolchain.Candidate) toolchain.Candidate {
	c := base
	c.Present = true

	for _, dir := range []string{winpath.Join(base.Root, "VC"), base.Root} {
		include := winpath.Join(dir, "include")
		lib := winpath.Join(dir, "lib")

		if p.IsDir(include) && p.IsDir(lib) {
			c.IncludeDir = include
			c.LibDir = lib

			break
		}
	}

	return c
}

func firstFile(p *probe.Probe, candidates []string) (string, bool) {
	for _, c := range candidates {
		c = p.Expand(c)
		if p.IsFile(c) {
			return c, true
		}
	}

	return "", false
}

// VisualStudioLegacy detects Visual Studio 2010 to 2015 through the InstallDir
// registry values those releases write.
func VisualStudioLegacy(p *probe.Probe, l *Layout) []toolchain.Candidate {
	var result []toolchain.Candidate

	for _, vs := range l.VSLegacy {
		for _, keyFmt := range l.VSLegacyRegistry {
			installDir, ok := p.ReadRegistry(fmt.Sprintf(keyFmt, vs.RegKey))
			if !ok {
				continue
			}

			vc := legacyVCDir(installDir)
			if !p.IsDir(vc) {
				p.Log().Debug("registry install dir has no VC directory", "version", vs.RegKey, "dir", vc)

				continue
			}

			major, minor, _ := version.ParseDotted(vs.RegKey)
			result = append(result, toolchain.Candidate{
				Name:       vs.Name,
				Root:       vc,
				Family:     toolchain.VisualStudioLegacy,
				Present:    true,
				Supported:  slices.Contains(l.VSLegacySupported, vs.Year),
				IncludeDir: winpath.Join(vc, "include"),
				LibDir:     winpath.Join(vc, "lib"),
				Version: &toolchain.VersionInfo{
					Major: major,
					Minor: minor,
					Raw:   vs.RegKey,
					Year:  vs.Year,
				},
			})

			break
		}
	}

	return result
}

// legacyVCDir turns an IDE install dir such as `C:\VS2015\Common7\IDE\` into the
// compiler tools root `C:\VS2015\VC`.
func legacyVCDir(installDir string) string {
	dir := winpath.TrimTrailing(installDir)

	const ideSuffix = `\common7\ide`
	if strings.HasSuffix(strings.ToLower(winpath.Normalize(dir)), ideSuffix) {
		dir = dir[:len(dir)-len(ideSuffix)]
	}

	return winpath.Join(dir, "VC")
}
