// Command rhaihir drives the workspace package end to end: discover a
// Rhai.toml, ingest the files it names, and print the resulting HIR. It
// exists to exercise the library from outside its own test suite, not as a
// language server — the editor/LSP front end is a separate concern spec §1
// leaves to a host.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rhaihir",
		Short: "Ingest a Rhai workspace and inspect its HIR",
		Long:  "rhaihir loads a Rhai.toml-configured set of scripts and definition files, builds their HIR, and prints parse errors, symbols, and discovered custom operators.",
	}

	rootCmd.PersistentFlags().String("workdir", ".", "Workspace root to search for Rhai.toml")
	rootCmd.PersistentFlags().String("config", "", "Explicit config path (overrides discovery under workdir)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")

	viper.BindPFlag("workdir", rootCmd.PersistentFlags().Lookup("workdir"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetEnvPrefix("RHAIHIR")
	viper.AutomaticEnv()

	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

const version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print rhaihir version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rhaihir %s\n", version)
		},
	}
}
