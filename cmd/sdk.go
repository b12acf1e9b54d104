package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/egeinstall/internal/config"
	"github.com/donaldgifford/egeinstall/internal/getter"
	"github.com/donaldgifford/egeinstall/internal/probe"
	"github.com/donaldgifford/egeinstall/internal/sdk"
	"github.com/donaldgifford/egeinstall/internal/ui"
)

var (
	sdkFetchRef     string
	sdkFetchSubpath string
	sdkFetchRefresh bool
)

var sdkCmd = &cobra.Command{
	Use:   "sdk",
	Short: "Locate, fetch or clean the EGE library bundle",
}

var sdkLocateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the library bundle shipped next to egeinstall",
	Args:  cobra.NoArgs,
	RunE:  runSDKLocate,
}

var sdkFetchCmd = &cobra.Command{
	Use:   "fetch [source]",
	Short: "Download the library bundle into the cache",
	Long: `Fetch the library bundle from a go-getter source (a git repository, an
archive URL or a local path) into the cache and print its directory. The source
defaults to the sdk.source config key. A cached bundle is reused unless
--refresh is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSDKFetch,
}

var sdkCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached bundle",
	Args:  cobra.NoArgs,
	RunE:  runSDKClean,
}

func init() {
	sdkFetchCmd.Flags().StringVar(&sdkFetchRef, "ref", "", "git ref to fetch")
	sdkFetchCmd.Flags().StringVar(&sdkFetchSubpath, "subpath", "", "bundle directory inside the source")
	sdkFetchCmd.Flags().BoolVar(&sdkFetchRefresh, "refresh", false, "ignore the cached copy")
	sdkCmd.AddCommand(sdkLocateCmd, sdkFetchCmd, sdkCleanCmd)
	rootCmd.AddCommand(sdkCmd)
}

func runSDKLocate(cmd *cobra.Command, _ []string) error {
	dir, err := locateBundle(probe.New(slog.Default()))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)

	return err
}

func runSDKFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src := cfg.SDK.Source
	if len(args) > 0 {
		src = args[0]
	}

	if src == "" {
		return errors.New("no bundle source given and sdk.source is not set")
	}

	src = getter.SourceURL(src, sdkFetchSubpath, getter.FetchOpts{})

	w := ui.NewWriter(noColor)

	dir, err := fetchBundle(cmd.Context(), cfg, src, sdkFetchRef, sdkFetchRefresh)
	if err != nil {
		return err
	}

	w.Successf("Bundle ready from %s", src)

	_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)

	return err
}

func runSDKClean(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cache, err := bundleCache(cfg)
	if err != nil {
		return err
	}

	w := ui.NewWriter(noColor)

	freed, err := cleanDir(cache.BundlesDir(), slog.Default())
	if err != nil {
		return fmt.Errorf("cleaning bundle cache: %w", err)
	}

	if freed > 0 {
		w.Successf("Cleaned bundle cache (%s)", formatBytes(freed))
	} else {
		w.Info("Bundle cache already clean")
	}

	return nil
}

func bundleCache(cfg *config.Config) (*sdk.Cache, error) {
	dir := sdk.DefaultCacheDir()

	if cfg.SDK.CacheDir != "" {
		expanded, err := homedir.Expand(cfg.SDK.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("expanding cache dir %s: %w", cfg.SDK.CacheDir, err)
		}

		dir = expanded
	}

	return sdk.NewCache(dir, slog.Default()), nil
}

func fetchBundle(ctx context.Context, cfg *config.Config, src, ref string, refresh bool) (string, error) {
	cache, err := bundleCache(cfg)
	if err != nil {
		return "", err
	}

	if refresh {
		if err := cache.Invalidate(src); err != nil {
			return "", err
		}
	}

	return sdk.NewFetcher(cache, nil, slog.Default()).Fetch(ctx, src, ref)
}

func cleanDir(dir string, logger *slog.Logger) (int64, error) {
	size, err := dirSize(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}

		return 0, err
	}

	logger.Debug("removing bundle cache", "dir", dir, "size", size)

	if err := os.RemoveAll(dir); err != nil {
		return 0, fmt.Errorf("removing %s: %w", dir, err)
	}

	return size, nil
}

func dirSize(path string) (int64, error) {
	var size int64

	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		size += info.Size()

		return nil
	})

	return size, err
}

func formatBytes(b int64) string {
	const (
		kb = 1024
		mb = kb * 1024
	)

	switch {
	case b >= mb:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(mb))
	case b >= kb:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(kb))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
