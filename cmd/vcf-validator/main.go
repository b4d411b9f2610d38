// Package main provides the vcf-validator command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vcfval/vcf-validator/internal/config"
)

// Exit codes, matching the convention spec.md §6 requires: nonzero iff any
// error (not warning) was emitted, distinct code for CLI misuse.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil && exitCode == ExitSuccess {
		exitCode = ExitUsage
	}
	return exitCode
}

// exitCode is set by subcommands that need to report a specific code beyond
// cobra's plain success/failure (e.g. ExitError for validation failures that
// aren't a usage mistake).
var exitCode = ExitSuccess

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "vcf-validator",
		Short: "Validate VCF files against the VCF 4.1/4.2/4.3 specification",
		Long: `vcf-validator checks VCF files for grammar and semantic errors and reports
a structured diagnostic for each problem found.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			logger, err := newLogger(verbose)
			if err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose (development) logging")

	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("vcf-validator version %s (%s) built %s\n", version, commit, date)
			return nil
		},
	}
}
