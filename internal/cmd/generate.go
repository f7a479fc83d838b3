package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/indexgen/internal/config"
	"github.com/harrison/indexgen/internal/exclude"
	"github.com/harrison/indexgen/internal/filelock"
	"github.com/harrison/indexgen/internal/history"
	"github.com/harrison/indexgen/internal/logger"
	"github.com/harrison/indexgen/internal/source"
	"github.com/harrison/indexgen/internal/traverse"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <path> [base-path]",
		Short: "Generate index pages for a directory tree",
		Long: `Generate walks the tree rooted at <path> and writes seven index files
into every non-excluded directory: index.html plus one file per sort
key and direction.

The optional [base-path] is removed from displayed paths; it defaults
to <path> itself. With --file-metadata, every directory is described by
a delimited manifest file instead of live filesystem stats.

Configuration is loaded from .indexgen/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  # Index a tree in place
  indexgen generate /srv/mirror

  # Strip a prefix from the displayed paths
  indexgen generate /srv/mirror/releases /srv/mirror

  # Use manifest files instead of filesystem stats
  indexgen generate /srv/mirror -f contents.txt -m ';'

  # Exclude subtrees and preview the writes
  indexgen generate /srv/mirror -x private -x tmp/cache --dry-run

  # Walk sibling subtrees in parallel
  indexgen generate /srv/mirror --concurrency 4 -vv`,
		Args: cobra.RangeArgs(1, 2),
		RunE: generateCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .indexgen/config.yaml)")
	cmd.Flags().StringP("file-metadata", "f", "", "Manifest file describing each directory's contents")
	cmd.Flags().StringP("metadata-delimiter", "m", "", "Character separating fields in manifest lines (default ';')")
	cmd.Flags().StringArrayP("exclude-path", "x", nil, "Path fragment to exclude from indexing (repeatable)")
	cmd.Flags().BoolP("dry-run", "n", false, "Only log files to be created without writing them")
	cmd.Flags().CountP("verbose", "v", "Verbose output. Repeat (up to -vvv) for more verbosity")
	cmd.Flags().Int("concurrency", 0, "Number of sibling subtrees to walk in parallel (0 = use config)")
	cmd.Flags().Bool("no-readme", false, "Do not render README.md below listings")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	return cmd
}

// generateCommand implements the generate command logic
func generateCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadGenerateConfig(cmd)
	if err != nil {
		return err
	}

	verbosity, _ := cmd.Flags().GetCount("verbose")
	if cmd.Flags().Changed("verbose") || cfg.LogLevel == "" {
		cfg.LogLevel = logger.LevelFromVerbosity(verbosity)
	}
	log := logger.NewConsoleLogger(os.Stderr, cfg.LogLevel)

	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", args[0], err)
	}

	basePath := root
	if len(args) == 2 {
		basePath, err = filepath.Abs(args[1])
		if err != nil {
			return fmt.Errorf("failed to resolve base path %s: %w", args[1], err)
		}
	}

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	home, err := config.Home()
	if err != nil {
		return err
	}

	// One run at a time per home: overlapping runs would interleave writes
	// over the same tree.
	lock := filelock.NewRunLock(filepath.Join(home, "run.lock"))
	acquired, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("another indexgen run is already in progress")
	}
	defer lock.Unlock()

	filter := &exclude.Filter{
		BasePath:     basePath,
		Patterns:     cfg.ExcludePaths,
		ManifestName: cfg.ManifestName,
	}

	mode := "filesystem"
	var src source.Source
	if cfg.ManifestName != "" {
		mode = "manifest"
		src = &source.ManifestSource{
			Filter:       filter,
			Log:          log,
			ManifestName: cfg.ManifestName,
			Delimiter:    cfg.Delimiter,
		}
	} else {
		src = &source.FilesystemSource{Filter: filter, Log: log}
	}

	walker := &traverse.Walker{
		Source:       src,
		Filter:       filter,
		Log:          log,
		BasePath:     basePath,
		DryRun:       cfg.DryRun,
		Concurrency:  cfg.Concurrency,
		RenderReadme: cfg.RenderReadme && mode == "filesystem",
	}

	runID := uuid.NewString()
	startedAt := time.Now()
	log.LogInfo(fmt.Sprintf("run %s: indexing %s (base %s, mode %s)", runID, root, basePath, mode))

	stats, err := walker.Walk(root)
	if err != nil {
		return err
	}
	duration := time.Since(startedAt)

	log.LogInfo(fmt.Sprintf("run %s: %d directories indexed, %d files written, %d skipped in %s",
		runID, stats.DirsIndexed, stats.FilesWritten, stats.Skipped, duration.Round(time.Millisecond)))

	if cfg.History.Enabled && !cfg.DryRun {
		if err := recordRun(cfg, history.Run{
			RunID:        runID,
			StartedAt:    startedAt,
			RootPath:     root,
			BasePath:     basePath,
			Mode:         mode,
			DirsIndexed:  stats.DirsIndexed,
			FilesWritten: stats.FilesWritten,
			Skipped:      stats.Skipped,
			DryRun:       cfg.DryRun,
			Duration:     duration,
		}); err != nil {
			// History is bookkeeping; its failure never fails the run.
			log.LogWarn(fmt.Sprintf("failed to record run history: %v", err))
		}
	}

	return nil
}

// loadGenerateConfig loads the config file and applies flag overrides.
func loadGenerateConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var manifestPtr, delimiterPtr *string
	if cmd.Flags().Changed("file-metadata") {
		v, _ := cmd.Flags().GetString("file-metadata")
		manifestPtr = &v
	}
	if cmd.Flags().Changed("metadata-delimiter") {
		v, _ := cmd.Flags().GetString("metadata-delimiter")
		delimiterPtr = &v
	}

	var concurrencyPtr *int
	if cmd.Flags().Changed("concurrency") {
		v, _ := cmd.Flags().GetInt("concurrency")
		concurrencyPtr = &v
	}

	var dryRunPtr, readmePtr, historyPtr *bool
	if cmd.Flags().Changed("dry-run") {
		v, _ := cmd.Flags().GetBool("dry-run")
		dryRunPtr = &v
	}
	if cmd.Flags().Changed("no-readme") {
		v, _ := cmd.Flags().GetBool("no-readme")
		enabled := !v
		readmePtr = &enabled
	}
	if cmd.Flags().Changed("no-history") {
		v, _ := cmd.Flags().GetBool("no-history")
		enabled := !v
		historyPtr = &enabled
	}

	excludePaths, _ := cmd.Flags().GetStringArray("exclude-path")

	cfg.MergeFlags(manifestPtr, delimiterPtr, nil, excludePaths, concurrencyPtr, dryRunPtr, readmePtr, historyPtr)
	return cfg, nil
}

// recordRun opens the history store, writes one row and closes it.
func recordRun(cfg *config.Config, run history.Run) error {
	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordRun(run)
}
