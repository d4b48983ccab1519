package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/brfss/internal/codebook"
)

// NewCodebookCmd builds the 'codebook' command.
func NewCodebookCmd() *cobra.Command {
	v := newViper()

	cmd := &cobra.Command{
		Use:   "codebook",
		Short: "Write the codebook rules as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlag("output", cmd.Flags().Lookup("output")); err != nil {
				return err
			}
			return runCodebook(cmd.OutOrStdout(), v.GetString("output"))
		},
	}

	cmd.Flags().StringP("output", "o", "", "Write output to file instead of stdout")
	return cmd
}

func runCodebook(stdout io.Writer, outputPath string) (err error) {
	doc := codebook.Default().Export()

	out := stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding codebook: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	log.Debug().
		Int("variables", len(doc.Variables)).
		Int("questions", len(doc.Questions)).
		Int("jurisdictions", len(doc.Jurisdictions)).
		Str("output", outputPath).
		Msg("codebook written")
	return nil
}
