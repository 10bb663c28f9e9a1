// Root of command-line argument parsing.
// This file was based off the standard cobra template, see
// https://github.com/spf13/cobra
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/distkit/distkit/pkg/distmgr"
	"github.com/spf13/cobra"
)

var cfgFile string

var distManager *distmgr.DistManager

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "distkit",
	Short: "Source distribution packaging toolkit",
	Long: `Resolve a distribution's name and version, assemble its registration
metadata, and build or install source distribution archives.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		mgrArgs := map[string]interface{}{}
		if cfgFile != "" {
			mgrArgs["config-file"] = cfgFile
		}

		var err error
		distManager, err = distmgr.NewManager(mgrArgs)
		if err != nil {
			fmt.Printf("Failed to initialize distkit manager: %v\n", err)
			os.Exit(1)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		distManager.Destroy()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if distManager == nil || distManager.Logger == nil {
			fmt.Printf("%v\n", err)
		} else {
			distManager.Logger.Error(err)
		}
		os.Exit(1)
	}
}

func parseList(s string) []string {

	if s == "" {
		return nil
	}

	var result []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}

	return result
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is configs/distkit.yaml)")
}
