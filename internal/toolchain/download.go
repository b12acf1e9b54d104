package toolchain

import "strings"

// DownloadURL returns the official download page for the product behind c, or ""
// when there is none.
func DownloadURL(c *Candidate) string {
	name := strings.ToLower(c.Name)

	switch c.Family {
	case CodeBlocks:
		return "https://www.codeblocks.org/downloads/binaries/"
	case DevCpp:
		if strings.Contains(name, "embarcadero") {
			return "https://www.embarcadero.com/free-tools/dev-cpp"
		}

		return "https://sourceforge.net/projects/orwelldevcpp/"
	case RedPanda:
		return "http://royqh.net/redpandacpp/download/"
	case VisualStudio, VisualStudioLegacy:
		return "https://visualstudio.microsoft.com/downloads/"
	case CLion:
		return "https://www.jetbrains.com/clion/download/"
	case MinGW:
		return "https://www.msys2.org/"
	default:
		return ""
	}
}
