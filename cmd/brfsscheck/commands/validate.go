package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/brfss/internal/codebook"
	"github.com/JonMunkholm/brfss/internal/core"
	"github.com/JonMunkholm/brfss/internal/validation"
)

// ErrValidationFailed is returned with --fail-on-error when the report
// failed. main turns it into exit status 1.
var ErrValidationFailed = errors.New("validation failed")

type validateOptions struct {
	Format      string
	Workers     int
	MaxYear     int
	FailOnError bool
}

// NewValidateCmd builds the 'validate' command.
func NewValidateCmd() *cobra.Command {
	v := newViper()

	cmd := &cobra.Command{
		Use:   "validate <file.csv|file.json>",
		Short: "Validate one submission file and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			opts := validateOptions{
				Format:      v.GetString("format"),
				Workers:     v.GetInt("workers"),
				MaxYear:     v.GetInt("max-year"),
				FailOnError: v.GetBool("fail-on-error"),
			}
			return runValidate(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringP("format", "f", "json", "Report format: json or yaml")
	cmd.Flags().Int("workers", 0, "Row-check goroutines for large files (0 = GOMAXPROCS)")
	cmd.Flags().Int("max-year", validation.DefaultMaxYear, "Latest survey year accepted without a finding")
	cmd.Flags().Bool("fail-on-error", false, "Exit with status 1 when the report fails")
	return cmd
}

func runValidate(out io.Writer, path string, opts validateOptions) error {
	if opts.Format != "json" && opts.Format != "yaml" {
		return fmt.Errorf("unknown report format %q (want json or yaml)", opts.Format)
	}
	log.Debug().Str("file", path).Str("format", opts.Format).Int("workers", opts.Workers).Msg("validate started")

	res, format, err := validateFile(path, opts)
	if err != nil {
		return err
	}

	report, err := encodeReport(res, opts.Format)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if _, err := out.Write(report); err != nil {
		return err
	}

	log.Info().
		Str("file", path).
		Str("format", string(format)).
		Str("status", string(res.Status)).
		Int("rows", res.RowCount).
		Int("errors", res.ErrorCount()).
		Msg("validation complete")

	if opts.FailOnError && res.Status == validation.StatusFailed {
		return ErrValidationFailed
	}
	return nil
}

func validateFile(path string, opts validateOptions) (*validation.ValidationResult, validation.Format, error) {
	kind, err := core.DetectFileKind(path)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %s", path, core.MapError(err).Message)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	engine := validation.NewEngine(codebook.Default(), validation.Options{
		Workers: opts.Workers,
		MaxYear: opts.MaxYear,
		Logger:  engineLogger(),
	})
	res := validation.NewResult(core.NewSubmissionID(), filepath.Base(path))

	format, err := core.CheckFile(engine, res, kind, f, 0)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return res, format, nil
}

func encodeReport(res *validation.ValidationResult, format string) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, err
	}
	if format == "json" {
		return append(data, '\n'), nil
	}
	return jsonToYAML(data)
}

// jsonToYAML re-encodes a JSON document as block-style YAML, keeping key
// order.
func jsonToYAML(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	clearStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
