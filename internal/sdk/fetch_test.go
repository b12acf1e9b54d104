package sdk_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/egeinstall/internal/getter"
	"github.com/donaldgifford/egeinstall/internal/sdk"
)

type fakeSource struct {
	calls  []getter.FetchOpts
	layout func(dest string) error
}

func (f *fakeSource) Fetch(_ context.Context, _, dest string, opts getter.FetchOpts) error {
	f.calls = append(f.calls, opts)

	return f.layout(dest)
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	src := &fakeSource{layout: writeBundle}
	f := sdk.NewFetcher(sdk.NewCache(t.TempDir(), nil), src, nil)

	root, err := f.Fetch(context.Background(), testSource, "v25.11")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(root, "include"))

	_, err = f.Fetch(context.Background(), testSource, "v25.11")
	require.NoError(t, err)

	require.Len(t, src.calls, 1)
	assert.Equal(t, "v25.11", src.calls[0].Ref)
}

func TestFetcher_TopLevelFolder(t *testing.T) {
	t.Parallel()

	src := &fakeSource{layout: func(dest string) error {
		return os.MkdirAll(filepath.Join(dest, "xege-sdk-25.11", "include"), 0o750)
	}}
	f := sdk.NewFetcher(sdk.NewCache(t.TempDir(), nil), src, nil)

	root, err := f.Fetch(context.Background(), testSource, "")
	require.NoError(t, err)
	assert.Equal(t, "xege-sdk-25.11", filepath.Base(root))
}

func TestFetcher_NotABundle(t *testing.T) {
	t.Parallel()

	src := &fakeSource{layout: func(dest string) error {
		return os.WriteFile(filepath.Join(dest, "README.md"), []byte("hi"), 0o644)
	}}
	f := sdk.NewFetcher(sdk.NewCache(t.TempDir(), nil), src, nil)

	_, err := f.Fetch(context.Background(), testSource, "")
	require.ErrorIs(t, err, sdk.ErrNoInclude)
}
