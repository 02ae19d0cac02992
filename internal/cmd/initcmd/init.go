// Package initcmd provides the init command for cflprep.
package initcmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-prep/internal/config"
	"github.com/open-cli-collective/confluence-prep/pkg/adoc"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var (
		source  string
		workDir string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize cflprep project configuration",
		Long: `Initialize a cflprep project.

This command guides you through setting up the AsciiDoc source location,
the working directory for rewritten files, the source encoding and the
publisher metadata. The configuration is saved to ` + config.DefaultFileName + `
in the current directory.`,
		Example: `  # Interactive setup
  cflprep init

  # Pre-populate the source directory
  cflprep init --source docs`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(source, workDir)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "AsciiDoc source document or directory")
	cmd.Flags().StringVar(&workDir, "work-dir", "", "working directory for rewritten files")

	return cmd
}

func runInit(prefillSource, prefillWorkDir string) error {
	configPath := config.DefaultConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{
		Source:  prefillSource,
		WorkDir: prefillWorkDir,
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "build/confluence"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Source").
				Description("AsciiDoc directory or single "+adoc.DocumentExtension+" document").
				Placeholder("docs").
				Value(&cfg.Source).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("source is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Working directory").
				Description("Rewritten files are regenerated here on every run").
				Placeholder("build/confluence").
				Value(&cfg.WorkDir).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("working directory is required")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Source encoding").
				Options(
					huh.NewOption("UTF-8", "UTF-8"),
					huh.NewOption("ISO-8859-1", "ISO-8859-1"),
					huh.NewOption("windows-1252", "windows-1252"),
				).
				Value(&cfg.SourceEncoding),

			huh.NewInput().
				Title("Space key (optional)").
				Description("Passed through to the downstream publisher").
				Placeholder("MYSPACE").
				Value(&cfg.SpaceKey),

			huh.NewInput().
				Title("Ancestor page ID (optional)").
				Description("Passed through to the downstream publisher").
				Placeholder("12345").
				Value(&cfg.AncestorID),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := adoc.ResolveEncoding(cfg.SourceEncoding); err != nil {
		return err
	}

	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("Configuration saved to %s\n", configPath)
	fmt.Println("Run 'cflprep prepare' to build the working directory.")
	return nil
}
