package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vcfval/vcf-validator/internal/report"
	reportduckdb "github.com/vcfval/vcf-validator/internal/report/duckdb"
	"github.com/vcfval/vcf-validator/internal/vcf"
)

func newValidateCmd() *cobra.Command {
	var (
		versionFlag     string
		ploidyDefault   int
		ploidyOverrides []string
		reportSink      string
		reportDBPath    string
		ploidyMismatch  string
		dedupeUndefined bool
		inputFormat     string
	)

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a VCF file and report grammar and semantic diagnostics",
		Args:  cobra.ExactArgs(1),
		Example: `  vcf-validator validate input.vcf
  vcf-validator validate --version VCFv4.1 --ploidy-default 2 --ploidy-override Y=1 input.vcf.gz
  vcf-validator validate --report db --report-db results.duckdb input.vcf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("version") {
				versionFlag = viper.GetString("version")
			}
			if !flags.Changed("ploidy-default") {
				ploidyDefault = viper.GetInt("ploidy.default")
			}
			if !flags.Changed("report") {
				reportSink = viper.GetString("report.sink")
			}
			if !flags.Changed("ploidy-mismatch") {
				ploidyMismatch = viper.GetString("ploidy-mismatch")
			}
			if !flags.Changed("dedupe-undefined") {
				dedupeUndefined = viper.GetBool("dedupe-undefined")
			}
			logger := loggerFromContext(cmd.Context())
			return runValidate(cmd, logger, args[0], versionFlag, ploidyDefault, ploidyOverrides,
				reportSink, reportDBPath, ploidyMismatch, dedupeUndefined, inputFormat)
		},
	}

	cmd.Flags().StringVar(&versionFlag, "version", "VCFv4.3", "VCF specification version: VCFv4.1, VCFv4.2, or VCFv4.3")
	cmd.Flags().IntVar(&ploidyDefault, "ploidy-default", 2, "default expected ploidy")
	cmd.Flags().StringArrayVar(&ploidyOverrides, "ploidy-override", nil, "per-contig ploidy override, contig=n (repeatable)")
	cmd.Flags().StringVar(&reportSink, "report", "stdout", "diagnostic sink: stdout or db")
	cmd.Flags().StringVar(&reportDBPath, "report-db", "", "DuckDB file path for --report db (empty for in-memory)")
	cmd.Flags().StringVar(&ploidyMismatch, "ploidy-mismatch", "warning", "severity for observed-vs-configured ploidy mismatch: warning or error")
	cmd.Flags().BoolVar(&dedupeUndefined, "dedupe-undefined", true, "emit at most one diagnostic per undefined header reference per file")
	cmd.Flags().StringVar(&inputFormat, "input-format", "auto", "override the detected input format: auto, vcf, gzip, or bgzip")

	return cmd
}

func runValidate(
	cmd *cobra.Command,
	logger *zap.Logger,
	path string,
	versionFlag string,
	ploidyDefault int,
	ploidyOverrides []string,
	reportSink string,
	reportDBPath string,
	ploidyMismatch string,
	dedupeUndefined bool,
	inputFormat string,
) error {
	version, ok := vcf.ParseVersion(versionFlag)
	if !ok {
		exitCode = ExitUsage
		return fmt.Errorf("unknown --version %q (want VCFv4.1, VCFv4.2, or VCFv4.3)", versionFlag)
	}

	overrides, err := parsePloidyOverrides(ploidyOverrides)
	if err != nil {
		exitCode = ExitUsage
		return err
	}
	ploidy := vcf.NewPloidy(ploidyDefault, overrides)

	policy := vcf.NewValidateOptionalPolicy()
	switch ploidyMismatch {
	case "warning":
		policy.PloidyMismatchSeverity = vcf.SeverityWarning
	case "error":
		policy.PloidyMismatchSeverity = vcf.SeverityError
	default:
		exitCode = ExitUsage
		return fmt.Errorf("unknown --ploidy-mismatch %q (want warning or error)", ploidyMismatch)
	}

	format, err := parseInputFormat(inputFormat)
	if err != nil {
		exitCode = ExitUsage
		return err
	}

	if reportSink != "stdout" && reportSink != "" && reportSink != "db" {
		exitCode = ExitUsage
		return fmt.Errorf("unknown --report %q (want stdout or db)", reportSink)
	}

	sink, closeSink, err := newSink(reportSink, reportDBPath, path)
	if err != nil {
		exitCode = ExitError
		return err
	}
	defer closeSink()

	summary, err := vcf.Validate(path, version, ploidy, dedupeUndefined, format, policy, sink)
	if err != nil {
		logger.Error("validation failed", zap.String("file", path), zap.Error(err))
		exitCode = ExitError
		return err
	}

	logger.Info("file processed",
		zap.String("file", path),
		zap.Int("lines_read", summary.LinesRead),
		zap.Int("errors", summary.Errors),
		zap.Int("warnings", summary.Warnings))

	if summary.HasErrors() {
		exitCode = ExitError
	}
	return nil
}

func newSink(kind, dbPath, file string) (vcf.Sink, func(), error) {
	switch kind {
	case "stdout", "":
		return report.NewStdoutSink(os.Stdout), func() {}, nil
	case "db":
		s, err := reportduckdb.Open(dbPath, file)
		if err != nil {
			return nil, nil, fmt.Errorf("open duckdb report sink: %w", err)
		}
		return s, func() { s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown --report %q (want stdout or db)", kind)
	}
}

func parseInputFormat(s string) (vcf.InputFormat, error) {
	switch s {
	case "auto", "":
		return 0, nil
	case "vcf":
		return vcf.FormatVCF, nil
	case "gzip":
		return vcf.FormatVCF | vcf.FormatGZIP, nil
	case "bgzip":
		return vcf.FormatVCF | vcf.FormatBGZIP, nil
	default:
		return 0, fmt.Errorf("unknown --input-format %q (want auto, vcf, gzip, or bgzip)", s)
	}
}

func parsePloidyOverrides(raw []string) (map[string]int, error) {
	overrides := make(map[string]int, len(raw))
	for _, entry := range raw {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --ploidy-override %q (want contig=n)", entry)
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid --ploidy-override %q: %w", entry, err)
		}
		overrides[parts[0]] = n
	}
	return overrides, nil
}
