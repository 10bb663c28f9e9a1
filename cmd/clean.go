// The 'distkit clean' command. This cleans up any staged trees or built
// archives for the specified distribution.
package cmd

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cleanName string

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean up staged trees and built archives",
	Long:  `Clean will remove any local files that were generated for the specified distribution (or all distributions if no name is provided). Clean only touches the build directory; installed scripts are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var cleanGlob string
		if cleanName != "" {
			cleanGlob = filepath.Join(distManager.Cfg.GetString("buildDir"), "dist", cleanName+"*")
		} else {
			cleanGlob = filepath.Join(distManager.Cfg.GetString("buildDir"), "dist", "*")
		}

		if err := distManager.CleanDirectory(cleanGlob); err != nil {
			return errors.Wrap(err, "Failed to clean distribution")
		}

		distManager.Logger.Info("Successfully cleaned distribution")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringVarP(&cleanName, "dist-name", "n", "", "The distribution to clean (defaults to cleaning everything)")
}
