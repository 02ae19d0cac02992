// Package watch provides the watch command for cflprep.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-prep/internal/cmd/prepare"
	"github.com/open-cli-collective/confluence-prep/internal/config"
	"github.com/open-cli-collective/confluence-prep/internal/view"
)

type watchOptions struct {
	configPath string
	source     string
	workDir    string
	debounce   time.Duration
	output     string
	noColor    bool
}

// NewCmdWatch creates the watch command.
func NewCmdWatch() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run preparation whenever the source tree changes",
		Long: `Watch the AsciiDoc source tree and re-run preparation on every change.

Preparation fully regenerates the working directory, so each change
triggers a complete run. Changes are debounced to coalesce editor save
bursts. Stop with Ctrl-C.`,
		Example: `  # Watch using .cflprep.yml in the current directory
  cflprep watch

  # Watch with a longer quiet period
  cflprep watch --debounce 1s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runWatch(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.source, "source", "s", "", "source document or directory")
	cmd.Flags().StringVarP(&opts.workDir, "work-dir", "w", "", "working directory for rewritten files")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 300*time.Millisecond, "quiet period before re-running preparation")

	return cmd
}

func runWatch(opts *watchOptions) error {
	path := opts.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.source != "" {
		cfg.Source = opts.source
	}
	if opts.workDir != "" {
		cfg.WorkDir = opts.workDir
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'cflprep init' to configure)", err)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	sourceRoot, err := filepath.Abs(cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to resolve source path: %w", err)
	}
	if info, err := os.Stat(sourceRoot); err != nil {
		return fmt.Errorf("source not found: %s", sourceRoot)
	} else if !info.IsDir() {
		sourceRoot = filepath.Dir(sourceRoot)
	}
	workRoot, err := filepath.Abs(cfg.WorkDir)
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addRecursive(watcher, sourceRoot); err != nil {
		return fmt.Errorf("failed to watch %s: %w", sourceRoot, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func() {
		result, err := prepare.Run(cfg, false)
		if err != nil {
			renderer.Error(err.Error())
			return
		}
		stats := result.Stats
		renderer.Success(fmt.Sprintf("prepared %d page(s), %d file(s) written, %d unresolved reference(s)",
			len(result.Structure.Pages()), stats.FilesWritten, len(stats.MissingRefs)))
	}

	renderer.RenderText("watching " + sourceRoot)
	run()

	// Debounce: a change arms the timer, further changes re-arm it, and the
	// run happens once the tree has been quiet for the full period.
	timer := time.NewTimer(opts.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// Never react to our own output.
			if isWithin(workRoot, event.Name) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}
			timer.Reset(opts.debounce)
			armed = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			renderer.Error("watch error: " + err.Error())

		case <-timer.C:
			if armed {
				armed = false
				run()
			}
		}
	}
}

// addRecursive watches dir and every directory below it, skipping none:
// includes may reach into any subtree of the source root.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "..")
}
