//go:build !windows

package probe

import "errors"

var errNoRegistry = errors.New("registry and version resources are only available on windows")

type systemRegistry struct{}

func (systemRegistry) ReadString(string) (string, error) {
	return "", errNoRegistry
}

type systemVersions struct{}

func (systemVersions) FileVersion(string) (string, error) {
	return "", errNoRegistry
}
