// Package prepare provides the prepare command for cflprep.
package prepare

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-prep/internal/config"
	"github.com/open-cli-collective/confluence-prep/internal/view"
	"github.com/open-cli-collective/confluence-prep/pkg/adoc"
)

type prepareOptions struct {
	configPath string
	source     string
	workDir    string
	encoding   string
	attrs      []string
	verbose    bool
	output     string
	noColor    bool
}

// NewCmdPrepare creates the prepare command.
func NewCmdPrepare() *cobra.Command {
	opts := &prepareOptions{}

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Resolve includes and rewrite an AsciiDoc tree into the working directory",
		Long: `Prepare an AsciiDoc source tree for publishing.

Every non-prefixed document directly inside the source directory (or the
single configured document) becomes a top-level page. Includes of
non-prefixed documents are promoted to child pages and removed from the
rewritten parent; all other local references are re-pointed relative to
their new location. The working directory is fully regenerated on each
run.`,
		Example: `  # Prepare using .cflprep.yml in the current directory
  cflprep prepare

  # Prepare a single document
  cflprep prepare --source docs/index.adoc --work-dir build/confluence

  # Substitute attributes used in reference paths
  cflprep prepare --attr imagesdir=assets --attr version=2.1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runPrepare(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.source, "source", "s", "", "source document or directory")
	cmd.Flags().StringVarP(&opts.workDir, "work-dir", "w", "", "working directory for rewritten files")
	cmd.Flags().StringVarP(&opts.encoding, "encoding", "e", "", "source encoding (IANA name, default UTF-8)")
	cmd.Flags().StringArrayVarP(&opts.attrs, "attr", "a", nil, "attribute substitution in the form name=value (repeatable)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "report every include and path decision")

	return cmd
}

func runPrepare(opts *prepareOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	result, err := Run(cfg, opts.verbose)
	if err != nil {
		return err
	}

	if err := renderer.RenderStructure(result.Structure); err != nil {
		return err
	}
	renderSummary(renderer, cfg, result)
	return nil
}

// loadConfig merges the config file, environment and command-line flags,
// flags last.
func loadConfig(opts *prepareOptions) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.source != "" {
		cfg.Source = opts.source
	}
	if opts.workDir != "" {
		cfg.WorkDir = opts.workDir
	}
	if opts.encoding != "" {
		cfg.SourceEncoding = opts.encoding
	}

	if len(opts.attrs) > 0 {
		if cfg.Attributes == nil {
			cfg.Attributes = map[string]string{}
		}
		for _, attr := range opts.attrs {
			name, value, ok := strings.Cut(attr, "=")
			if !ok || name == "" {
				return nil, fmt.Errorf("invalid attribute %q: expected name=value", attr)
			}
			cfg.Attributes[name] = value
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'cflprep init' to configure)", err)
	}
	return cfg, nil
}

// Result carries the outcome of one preparation run.
type Result struct {
	Structure *adoc.Structure
	Stats     *Stats
}

// Run executes one preparation pass for the given configuration. It is also
// used by the watch command to re-run preparation on source changes.
func Run(cfg *config.Config, verbose bool) (*Result, error) {
	enc, err := adoc.ResolveEncoding(cfg.SourceEncoding)
	if err != nil {
		return nil, err
	}

	listener := &runListener{verbose: verbose}
	provider, err := adoc.NewProvider(cfg.Source, cfg.WorkDir,
		adoc.WithAttributes(cfg.Attributes),
		adoc.WithEncoding(enc),
		adoc.WithListener(listener),
	)
	if err != nil {
		return nil, err
	}

	structure, err := provider.Build()
	if err != nil {
		return nil, err
	}
	return &Result{Structure: structure, Stats: &listener.Stats}, nil
}

func renderSummary(r *view.Renderer, cfg *config.Config, result *Result) {
	stats := result.Stats

	r.Success(fmt.Sprintf("prepared %d top-level page(s): %d file(s) written, %d include(s) promoted, %d inlined",
		len(result.Structure.Pages()), stats.FilesWritten, stats.Promoted, stats.Inlined))

	for _, ref := range stats.MissingRefs {
		r.Error("unresolved reference: " + ref)
	}

	if cfg.SpaceKey != "" {
		r.RenderKeyValue("Space", cfg.SpaceKey)
	}
	if cfg.AncestorID != "" {
		r.RenderKeyValue("Ancestor", cfg.AncestorID)
	}
}
