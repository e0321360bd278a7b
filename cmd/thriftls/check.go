package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/thriftlabs/thriftls"
	"github.com/thriftlabs/thriftls/reporter"
)

const defaultConfigFile = ".thriftls.yaml"

// config is the optional per-project configuration file.
type config struct {
	// IncludePaths are directories searched, by file name, for include
	// targets that do not resolve next to the including file.
	IncludePaths []string `yaml:"include_paths"`
	// Exclude lists glob patterns for files to skip.
	Exclude []string `yaml:"exclude"`
}

func loadConfig(path string) (config, error) {
	var cfg config
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func newCheckCommand() *cobra.Command {
	var configPath string
	var colored bool
	cmd := &cobra.Command{
		Use:   "check [files|globs]",
		Short: "Parse and resolve Thrift files, reporting diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			paths, err := expandArgs(args, cfg.Exclude)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return errors.New("no files matched")
			}
			return runCheck(cmd, cfg, paths, colored)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default "+defaultConfigFile+" when present)")
	cmd.Flags().BoolVar(&colored, "color", false, "colorize diagnostics")
	return cmd
}

// expandArgs resolves each argument as a doublestar glob (a plain path is a
// glob that matches itself), applies the exclusion patterns and returns the
// sorted, deduplicated survivors.
func expandArgs(args, exclude []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if matches == nil {
			// Not a match and not a pattern error: keep the literal path so
			// the read below reports the missing file.
			matches = []string{arg}
		}
		for _, m := range matches {
			m = filepath.Clean(m)
			if !seen[m] && !excluded(m, exclude) {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func excluded(path string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, err := doublestar.PathMatch(pat, filepath.ToSlash(path)); err == nil && ok {
			return true
		}
	}
	return false
}

func runCheck(cmd *cobra.Command, cfg config, paths []string, colored bool) error {
	texts := make([]string, len(paths))
	var g errgroup.Group
	g.SetLimit(8)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			texts[i] = string(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// The analyzer is a single-writer structure; syncing stays sequential.
	analyzer := thriftls.NewAnalyzer(thriftls.WithResolver(newCheckResolver(cfg.IncludePaths)))
	for i, path := range paths {
		slog.Debug("checking", "path", path)
		analyzer.SyncDocument(path, texts[i])
	}

	renderer := reporter.Renderer{Colored: colored}
	total := 0
	for i, path := range paths {
		diags, _ := analyzer.DocumentDiagnostics(path)
		for _, d := range diags {
			fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(path, texts[i], d))
		}
		total += len(diags)
	}
	if total > 0 {
		return fmt.Errorf("%d problem(s) in %d file(s)", total, len(paths))
	}
	slog.Debug("no problems", "files", len(paths))
	return nil
}

// newCheckResolver reads include targets from the OS filesystem, falling
// back to the configured include directories by file name.
func newCheckResolver(includeDirs []string) thriftls.Resolver {
	src := &thriftls.SourceResolver{}
	resolvers := thriftls.CompositeResolver{src}
	for _, dir := range includeDirs {
		resolvers = append(resolvers, thriftls.ResolverFunc(func(path string) (string, error) {
			return src.ReadFileByPath(filepath.Join(dir, filepath.Base(path)))
		}))
	}
	return resolvers
}
