// Sdist creates a source distribution archive that can be installed later.
package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var sdistCmdConfig struct {
	project string
}

// sdistCmd represents the sdist command
var sdistCmd = &cobra.Command{
	Use:   "sdist",
	Short: "Build a source distribution archive for a project",
	Long: `Sdist resolves the distribution, stages its packages, data files, scripts,
and generated metadata under the build directory, and archives the result in
the configured format (tar.gz by default). The command will tell you where
the archive was saved so that you can manually inspect or modify it.`,
	RunE: func(cmd *cobra.Command, args []string) error {

		meta, err := distManager.ResolveMetadata(sdistCmdConfig.project)
		if err != nil {
			return errors.Wrap(err, "Resolution failed")
		}
		distManager.Logger.Info("Distribution: " + meta.Name + "-" + meta.Version)

		man, err := distManager.BuildManifest(sdistCmdConfig.project, meta)
		if err != nil {
			return errors.Wrap(err, "Manifest assembly failed")
		}

		stageDir, err := distManager.CreateStaging(sdistCmdConfig.project, man)
		if err != nil {
			return errors.Wrap(err, "Staging failed")
		}
		distManager.Logger.Info("Created staging directory: " + stageDir)

		pkgPath, err := distManager.Builder.Package(stageDir)
		if err != nil {
			return errors.Wrap(err, "Packaging failed")
		}
		distManager.Logger.Info("Source distribution created at: " + pkgPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sdistCmd)

	sdistCmd.Flags().StringVarP(&sdistCmdConfig.project, "project", "p", ".", "project directory")
}
