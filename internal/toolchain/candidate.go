// Package toolchain defines the candidate records produced by detection.
package toolchain

import (
	"fmt"
	"strings"
)

// Family is the product line a candidate belongs to.
type Family int

// Tool families.
const (
	VisualStudio Family = iota + 1
	VisualStudioLegacy
	MinGW
	RedPanda
	DevCpp
	CodeBlocks
	CLion
)

var familyNames = map[Family]string{
	VisualStudio:       "vs",
	VisualStudioLegacy: "vs-legacy",
	MinGW:              "mingw",
	RedPanda:           "redpanda",
	DevCpp:             "devcpp",
	CodeBlocks:         "codeblocks",
	CLion:              "clion",
}

// String returns the short identifier of the family.
func (f Family) String() string {
	if s, ok := familyNames[f]; ok {
		return s
	}

	return fmt.Sprintf("family(%d)", int(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f Family) MarshalText() ([]byte, error) {
	if _, ok := familyNames[f]; !ok {
		return nil, fmt.Errorf("unknown family %d", int(f))
	}

	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Family) UnmarshalText(text []byte) error {
	for k, v := range familyNames {
		if strings.EqualFold(v, string(text)) {
			*f = k

			return nil
		}
	}

	return fmt.Errorf("unknown family %q", text)
}

// IsVisualStudio reports whether f is either Visual Studio family.
func (f Family) IsVisualStudio() bool {
	return f == VisualStudio || f == VisualStudioLegacy
}

// IsGCC reports whether f ships a GCC toolchain, which may keep headers in a
// target-triple sysroot below its root.
func (f Family) IsGCC() bool {
	switch f {
	case MinGW, RedPanda, DevCpp, CLion:
		return true
	default:
		return false
	}
}

// InstallType records how a multi-channel product was installed.
type InstallType string

// Install types. The empty value means the family has a single install channel.
const (
	InstallDirect          InstallType = "direct"
	InstallToolboxPrograms InstallType = "toolbox-programs"
	InstallToolboxApps     InstallType = "toolbox-apps"
)

// VersionInfo is a normalized version descriptor.
type VersionInfo struct {
	Major   int    `json:"major"`
	Minor   int    `json:"minor"`
	Raw     string `json:"raw,omitempty"`
	Year    string `json:"year,omitempty"`
	Toolset string `json:"toolset,omitempty"`
}

// TemplateState describes the project-template integration of an IDE.
type TemplateState struct {
	Installed       bool `json:"installed"`
	WizardInstalled bool `json:"wizard_installed"`
	WizardSupported bool `json:"wizard_supported"`
}

// Candidate is one detected, or well-known but absent, installation.
type Candidate struct {
	Name        string         `json:"name"`
	Root        string         `json:"root"`
	Family      Family         `json:"family"`
	Present     bool           `json:"present"`
	Supported   bool           `json:"supported"`
	IncludeDir  string         `json:"include_dir"`
	LibDir      string         `json:"lib_dir"`
	Version     *VersionInfo   `json:"version,omitempty"`
	InstallType InstallType    `json:"install_type,omitempty"`
	Template    *TemplateState `json:"template,omitempty"`

	// Installed is set by the install-state check after detection.
	Installed   bool `json:"installed"`
	// Bundled marks IDEs that already ship the library.
	Bundled     bool `json:"bundled,omitempty"`
	// Placeholder marks the synthetic entry added when no MSVC was found at all.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Absent returns a not-present candidate at a nominal root.
func Absent(name, root string, family Family) Candidate {
	return Candidate{
		Name:      name,
		Root:      root,
		Family:    family,
		Supported: true,
	}
}

// HasToolchain reports whether headers and libraries can be installed into c.
func (c *Candidate) HasToolchain() bool {
	return c.Present && c.IncludeDir != "" && c.LibDir != ""
}

// Installable reports whether the install action may be offered for c.
func (c *Candidate) Installable() bool {
	if !c.Present || !c.Supported {
		return false
	}

	return c.HasToolchain() || c.Template != nil
}

// Normalize enforces that an absent candidate carries no target directories.
func (c *Candidate) Normalize() {
	if !c.Present {
		c.IncludeDir = ""
		c.LibDir = ""
	}
}
