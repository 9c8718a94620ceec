package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/soda/cmd/soda/commands"
	"github.com/fivetwenty-io/soda/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "soda",
	Short: "Socrata Open Data API CLI",
	Long: `A command-line interface for the Socrata Open Data API (SODA).

Read rows with SoQL, page through whole datasets, browse the discovery catalog,
and manage dataset metadata, publication and attachments.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.soda/config.yml)")
	rootCmd.PersistentFlags().StringP("domain", "d", "", "SODA domain, e.g. data.cityofchicago.org")
	rootCmd.PersistentFlags().String("app-token", "", "application token")
	rootCmd.PersistentFlags().StringP("username", "u", "", "username for basic authentication")
	rootCmd.PersistentFlags().StringP("password", "p", "", "password for basic authentication")
	rootCmd.PersistentFlags().String("access-token", "", "OAuth 2.0 access token")
	rootCmd.PersistentFlags().Duration("timeout", constants.DefaultHTTPTimeout, "request timeout")
	rootCmd.PersistentFlags().Float64("rate-limit", 0, "maximum requests per second (0 for no limit)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	for _, name := range []string{"config", "domain", "app-token", "username", "password", "access-token", "timeout", "rate-limit", "output", "verbose"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewGetCommand())
	rootCmd.AddCommand(commands.NewGetAllCommand())
	rootCmd.AddCommand(commands.NewMetadataCommand())
	rootCmd.AddCommand(commands.NewDatasetsCommand())
	rootCmd.AddCommand(commands.NewDeleteCommand())
	rootCmd.AddCommand(commands.NewPublishCommand())
	rootCmd.AddCommand(commands.NewPermissionCommand())
	rootCmd.AddCommand(commands.NewAttachmentsCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.soda/config.yml
		viper.AddConfigPath(filepath.Join(home, ".soda"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// SODA_APP_TOKEN, SODA_DOMAIN, ...
	viper.SetEnvPrefix("SODA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
