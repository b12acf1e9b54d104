package detect

import (
	"github.com/donaldgifford/egeinstall/internal/probe"
	"github.com/donaldgifford/egeinstall/internal/toolchain"
	"github.com/donaldgifford/egeinstall/internal/version"
	"github.com/donaldgifford/egeinstall/internal/winpath"
)

// CodeBlocks detects Code::Blocks by its executable. A found IDE is always present;
// without a bundled MinGW it carries no target dirs and only templates apply.
func CodeBlocks(p *probe.Probe, l *Layout) []toolchain.Candidate {
	roots := p.ExpandAll(l.CodeBlocks.Roots)

	var root string

	for _, r := range roots {
		if p.IsFile(winpath.Join(r, l.CodeBlocksExe)) {
			root = r

			break
		}
	}

	if root == "" {
		return []toolchain.Candidate{toolchain.Absent(l.CodeBlocks.Name, first(roots), toolchain.CodeBlocks)}
	}

	c := toolchain.Candidate{
		Name:      l.CodeBlocks.Name,
		Root:      root,
		Family:    toolchain.CodeBlocks,
		Present:   true,
		Supported: true,
		Template: &toolchain.TemplateState{
			Installed:       codeBlocksTemplateInstalled(p, l, root),
			WizardInstalled: p.IsFile(winpath.Join(root, l.CodeBlocksWizard)),
		},
	}

	if raw, ok := p.FileVersion(winpath.Join(root, l.CodeBlocksExe)); ok {
		major, minor, _ := version.ParseDotted(raw)
		c.Version = &toolchain.VersionInfo{Major: major, Minor: minor, Raw: raw}
		c.Template.WizardSupported = version.AtLeast(raw, l.CodeBlocksWizardMin)
	}

	compiler := winpath.Join(root, l.CodeBlocksCompiler)
	include := winpath.Join(compiler, "include")
	lib := winpath.Join(compiler, "lib")

	if p.IsDir(include) && p.IsDir(lib) {
		c.IncludeDir = include
		c.LibDir = lib
	} else {
		p.Log().Debug("code::blocks has no bundled compiler", "root", root)
	}

	return []toolchain.Candidate{c}
}

// codeBlocksTemplateInstalled reports whether any template location holds any of
// the project markers. Relative locations are resolved against the install root.
func codeBlocksTemplateInstalled(p *probe.Probe, l *Layout, root string) bool {
	for _, dir := range l.CodeBlocksTemplates {
		if !winpath.IsAbs(dir) {
			dir = winpath.Join(root, dir)
		}

		dir = p.Expand(dir)

		for _, marker := range l.CodeBlocksMarkers {
			if p.IsFile(winpath.Join(dir, marker)) {
				return true
			}
		}
	}

	return false
}
