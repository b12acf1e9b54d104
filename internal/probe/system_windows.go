//go:build windows

package probe

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

type systemRegistry struct{}

var rootKeys = map[string]registry.Key{
	"HKLM":               registry.LOCAL_MACHINE,
	"HKEY_LOCAL_MACHINE": registry.LOCAL_MACHINE,
	"HKCU":               registry.CURRENT_USER,
	"HKEY_CURRENT_USER":  registry.CURRENT_USER,
	"HKCR":               registry.CLASSES_ROOT,
	"HKEY_CLASSES_ROOT":  registry.CLASSES_ROOT,
}

func (systemRegistry) ReadString(key string) (string, error) {
	root, rest, ok := strings.Cut(key, `\`)
	if !ok {
		return "", fmt.Errorf("malformed registry key %q", key)
	}

	hive, ok := rootKeys[strings.ToUpper(root)]
	if !ok {
		return "", fmt.Errorf("unknown registry hive %q", root)
	}

	i := strings.LastIndex(rest, `\`)
	if i < 0 {
		return "", fmt.Errorf("registry key %q has no value name", key)
	}

	k, err := registry.OpenKey(hive, rest[:i], registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer k.Close()

	v, _, err := k.GetStringValue(rest[i+1:])
	if err != nil {
		return "", err
	}

	return v, nil
}

type systemVersions struct{}

func (systemVersions) FileVersion(path string) (string, error) {
	size, err := windows.GetFileVersionInfoSize(path, nil)
	if err != nil {
		return "", err
	}

	if size == 0 {
		return "", errors.New("no version resource")
	}

	buf := make([]byte, size)
	if err := windows.GetFileVersionInfo(path, 0, size, unsafe.Pointer(&buf[0])); err != nil {
		return "", err
	}

	var (
		fixed *windows.VS_FIXEDFILEINFO
		n     uint32
	)

	if err := windows.VerQueryValue(unsafe.Pointer(&buf[0]), `\`, unsafe.Pointer(&fixed), &n); err != nil {
		return "", err
	}

	if fixed == nil || n == 0 {
		return "", errors.New("empty fixed file info")
	}

	return fmt.Sprintf("%d.%d.%d.%d",
		fixed.FileVersionMS>>16, fixed.FileVersionMS&0xffff,
		fixed.FileVersionLS>>16, fixed.FileVersionLS&0xffff,
	), nil
}
