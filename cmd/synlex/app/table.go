package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phillarmonic/synlex/internal/registryauth"
	"github.com/phillarmonic/synlex/internal/syntaxtable"
	"github.com/phillarmonic/synlex/internal/tablecache"
)

// Domain: Syntax Table Registry
// This file contains the `table` subcommand group: fetch syntax-table
// documents from a registry URL and cache them locally for offline reuse,
// grounded on drun's internal/remote.GitHubFetcher request/auth shape.

const tableFetchMaxSize = 1 * 1024 * 1024 // 1 MB, a syntax table is a handful of operator/block entries

// NewTableCmd builds the `synlex table` command group.
func NewTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Fetch and manage syntax-table documents",
	}
	cmd.AddCommand(newTableFetchCmd())
	cmd.AddCommand(newTableUseCmd())
	cmd.AddCommand(newTableForgetCmd())
	return cmd
}

func newTableFetchCmd() *cobra.Command {
	var ttl time.Duration
	var noCache bool

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download a syntax-table document and verify it parses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTableFetch(args[0], ttl, noCache)
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "How long the fetched table stays cached")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the local cache (neither read nor written)")
	return cmd
}

func runTableFetch(rawURL string, ttl time.Duration, noCache bool) error {
	cache, err := tablecache.NewManager(ttl, noCache)
	if err != nil {
		return fmt.Errorf("open table cache: %w", err)
	}
	defer cache.Close()

	key := tablecache.KeyForURL(rawURL)
	if content, hit, err := cache.Get(key); err == nil && hit {
		if _, err := syntaxtable.Parse(content); err != nil {
			return fmt.Errorf("cached table %s no longer parses: %w", rawURL, err)
		}
		fmt.Printf("%s: served from cache (%d bytes)\n", rawURL, len(content))
		return nil
	}

	content, err := fetchTable(context.Background(), rawURL)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	if _, err := syntaxtable.Parse(content); err != nil {
		return fmt.Errorf("fetched table does not parse: %w", err)
	}

	if err := cache.Set(key, content); err != nil {
		return fmt.Errorf("cache table: %w", err)
	}

	fmt.Printf("%s: fetched and cached (%d bytes)\n", rawURL, len(content))
	return nil
}

// fetchTable downloads a table document, authenticating with the host's
// stored bearer token if registryauth has one.
func fetchTable(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "synlex-table-fetch")

	if host := hostOf(rawURL); host != "" {
		if mgr, err := registryauth.NewManager(); err == nil {
			if token, err := mgr.Token(host); err == nil && token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, tableFetchMaxSize)
	return io.ReadAll(limited)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func newTableUseCmd() *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "use <url>",
		Short: "Copy a cached table to the active syntax-table path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTableUse(args[0], dest)
		},
	}

	cmd.Flags().StringVar(&dest, "out", "syntax-table.yaml", "Destination path for the active syntax table")
	return cmd
}

func runTableUse(rawURL, dest string) error {
	cache, err := tablecache.NewManager(0, false)
	if err != nil {
		return fmt.Errorf("open table cache: %w", err)
	}
	defer cache.Close()

	content, hit, err := cache.Get(tablecache.KeyForURL(rawURL))
	if err != nil {
		return err
	}
	if !hit {
		return fmt.Errorf("%s is not cached; run `synlex table fetch` first", rawURL)
	}
	if err := os.WriteFile(dest, content, 0644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	fmt.Printf("wrote %s to %s\n", rawURL, dest)
	return nil
}

func newTableForgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <url>",
		Short: "Drop a single cached table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTableForget(args[0])
		},
	}
}

func runTableForget(rawURL string) error {
	cache, err := tablecache.NewManager(0, false)
	if err != nil {
		return fmt.Errorf("open table cache: %w", err)
	}
	defer cache.Close()
	return cache.Delete(tablecache.KeyForURL(rawURL))
}
