// Implements the 'distkit install' subcommand. Install takes a pre-built
// source distribution and places its scripts into the bin directory.
package cmd

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var installCmdConfig struct {
	project string
	pkg     string
	binDir  string
}

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install a built source distribution's scripts",
	Long: `Install extracts a source distribution archive and copies its bin/ scripts
into the configured bin directory. It is assumed that you have already built
the archive (using the 'sdist' command), unless you point --package at one
directly.`,
	RunE: func(cmd *cobra.Command, args []string) error {

		pkgPath := installCmdConfig.pkg
		if pkgPath == "" {
			meta, err := distManager.ResolveMetadata(installCmdConfig.project)
			if err != nil {
				return errors.Wrap(err, "Resolution failed")
			}

			matches, err := filepath.Glob(distManager.GetStagePath(meta.Name, meta.Version) + ".*")
			if err != nil {
				return errors.Wrap(err, "Failed to look for built archives")
			}
			if len(matches) == 0 {
				return errors.New("No built archive for " + meta.Name + "-" + meta.Version + " (run 'distkit sdist' first)")
			}
			pkgPath = matches[0]
		}

		binDir := installCmdConfig.binDir
		if binDir == "" {
			binDir = distManager.Cfg.GetString("install.binDir")
		}

		if err := distManager.Builder.Install(pkgPath, binDir); err != nil {
			return errors.Wrap(err, "Installation failed")
		}
		distManager.Logger.Info("Successfully installed " + filepath.Base(pkgPath))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().StringVarP(&installCmdConfig.project, "project", "p", ".", "project directory")
	installCmd.Flags().StringVar(&installCmdConfig.pkg, "package", "", "archive to install (defaults to the last sdist built for the project)")
	installCmd.Flags().StringVarP(&installCmdConfig.binDir, "bin-dir", "b", "", "where to install scripts (defaults to install.binDir)")
}
