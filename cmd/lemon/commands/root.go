package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
)

// NewRootCommand creates the lemon command tree with its global flags bound to viper.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lemon",
		Short: "lemon.markets brokerage CLI",
		Long: `A command-line interface for the lemon.markets trading and market data APIs.

Trading commands use the paper or live API selected with --mode; instruments
and venues use the market data API. Every command makes single requests and
never follows pagination links.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !viper.GetBool(KeyStats) {
				return nil
			}

			return PrintStats(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.lemon/config.yml)")
	flags.StringP(KeyAPIKey, "k", "", "trading API key")
	flags.String(KeyDataAPIKey, "", "market data API key (defaults to --api-key)")
	flags.StringP(KeyMode, "m", constants.ModePaper, "trading mode (paper, live)")
	flags.String(KeyBaseURL, "", "override the API root, e.g. for a proxy")
	flags.StringP(KeyOutput, "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP(KeyVerbose, "v", false, "log requests and responses")
	flags.String(KeyLogFile, "", "also write logs to this file, rotated")
	flags.Bool(KeyStats, false, "print per-endpoint call statistics")
	flags.Duration(KeyTimeout, constants.DefaultHTTPTimeout, "timeout for a single request")

	for _, key := range []string{
		"config", KeyAPIKey, KeyDataAPIKey, KeyMode, KeyBaseURL,
		KeyOutput, KeyVerbose, KeyLogFile, KeyStats, KeyTimeout,
	} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewAccountCommand())
	rootCmd.AddCommand(NewWithdrawalsCommand())
	rootCmd.AddCommand(NewBankStatementsCommand())
	rootCmd.AddCommand(NewOrdersCommand())
	rootCmd.AddCommand(NewPositionsCommand())
	rootCmd.AddCommand(NewInstrumentsCommand())
	rootCmd.AddCommand(NewVenuesCommand())

	return rootCmd
}

// InitConfig loads the config file and environment. Flags take precedence
// over LEMON_* variables, which take precedence over the file.
func InitConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, constants.ConfigDirName)
		viper.AddConfigPath(configDir)
		viper.SetConfigType(constants.ConfigFileType)
		viper.SetConfigName(constants.ConfigFileName)
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool(KeyVerbose) {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
