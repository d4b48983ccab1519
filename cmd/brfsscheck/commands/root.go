// Package commands implements the brfsscheck subcommands.
package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. BRFSS_FORMAT=yaml.
const EnvPrefix = "BRFSS"

// NewRootCmd assembles the command tree.
func NewRootCmd(version string) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "brfsscheck",
		Short:         "Validate BRFSS survey submissions offline",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			InitLogging(verbose)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging")
	root.AddCommand(NewValidateCmd())
	root.AddCommand(NewCodebookCmd())
	return root
}

// newViper returns a viper instance reading BRFSS_* variables. Dashes in
// flag names become underscores, so --fail-on-error maps to
// BRFSS_FAIL_ON_ERROR.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}
