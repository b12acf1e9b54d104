package detect

import (
	"strconv"
	"strings"

	"github.com/donaldgifford/egeinstall/internal/probe"
	"github.com/donaldgifford/egeinstall/internal/toolchain"
	"github.com/donaldgifford/egeinstall/internal/version"
	"github.com/donaldgifford/egeinstall/internal/winpath"
)

type clionDir struct {
	path        string
	label       string
	installType toolchain.InstallType
}

// CLion detects CLion installs from the per-user programs root, the system-wide
// roots and the legacy Toolbox apps tree. Only installs with a bundled MinGW are
// returned.
func CLion(p *probe.Probe, l *Layout) []toolchain.Candidate {
	cl := l.CLion

	var dirs []clionDir

	dirs = append(dirs, clionPrefixed(p, cl.Prefix, p.Expand(cl.ProgramsRoot), toolchain.InstallToolboxPrograms)...)

	for _, root := range p.ExpandAll(cl.DirectRoots) {
		dirs = append(dirs, clionPrefixed(p, cl.Prefix, root, toolchain.InstallDirect)...)
	}

	dirs = append(dirs, clionToolboxApps(p, cl.Prefix, p.Expand(cl.ToolboxRoot))...)

	seen := make(map[string]bool)

	var result []toolchain.Candidate

	for _, d := range dirs {
		key := winpath.Key(d.path)
		if seen[key] {
			continue
		}

		seen[key] = true

		c, ok := clionCandidate(p, cl, d)
		if !ok {
			p.Log().Debug("clion install has no bundled compiler", "dir", d.path)

			continue
		}

		result = append(result, c)
	}

	return result
}

func clionPrefixed(p *probe.Probe, prefix, root string, it toolchain.InstallType) []clionDir {
	var dirs []clionDir

	for _, name := range p.SubDirs(root) {
		if !strings.HasPrefix(strings.ToLower(name), prefix) {
			continue
		}

		dirs = append(dirs, clionDir{path: winpath.Join(root, name), label: name, installType: it})
	}

	return dirs
}

// clionToolboxApps walks app, channel and version levels below the Toolbox root.
func clionToolboxApps(p *probe.Probe, prefix, root string) []clionDir {
	var dirs []clionDir

	for _, app := range p.SubDirs(root) {
		if !strings.HasPrefix(strings.ToLower(app), prefix) {
			continue
		}

		appDir := winpath.Join(root, app)

		for _, channel := range p.SubDirs(appDir) {
			channelDir := winpath.Join(appDir, channel)

			for _, build := range p.SubDirs(channelDir) {
				dirs = append(dirs, clionDir{
					path:        winpath.Join(channelDir, build),
					label:       build,
					installType: toolchain.InstallToolboxApps,
				})
			}
		}
	}

	return dirs
}

func clionCandidate(p *probe.Probe, cl CLionLayout, d clionDir) (toolchain.Candidate, bool) {
	for _, rel := range cl.CompilerDirs {
		compiler := winpath.Join(d.path, rel)
		include := winpath.Join(compiler, "include")
		lib := winpath.Join(compiler, "lib")

		if !p.IsDir(include) || !p.IsDir(lib) {
			continue
		}

		name := "CLion"
		year := clionYear(d.label)

		if year != "" {
			name += " " + year
		}

		major, minor, _ := version.ParseDotted(clionVersionToken(d.label))

		return toolchain.Candidate{
			Name:        name,
			Root:        d.path,
			Family:      toolchain.CLion,
			Present:     true,
			Supported:   true,
			IncludeDir:  include,
			LibDir:      lib,
			InstallType: d.installType,
			Version: &toolchain.VersionInfo{
				Major: major,
				Minor: minor,
				Raw:   d.label,
				Year:  year,
			},
		}, true
	}

	return toolchain.Candidate{}, false
}

// clionYear reads the release year from a directory name such as "CLion 2024.1.3"
// or from a Toolbox build number such as "241.14494.288" (year 2024).
func clionYear(label string) string {
	major, _, ok := version.ParseDotted(clionVersionToken(label))
	if ok && major >= 100 && major <= 999 {
		return "20" + strconv.Itoa(major/10)
	}

	return version.YearFromName(label)
}

// clionVersionToken returns the last space-separated field of label.
func clionVersionToken(label string) string {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return ""
	}

	return fields[len(fields)-1]
}
