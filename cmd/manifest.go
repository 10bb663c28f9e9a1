// Implements the 'distkit manifest' subcommand. Manifest prints the full
// registration record for a project, either as the metadata file that would
// ship inside an sdist or as JSON.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var manifestCmdConfig struct {
	project  string
	packages string
	asJSON   bool
}

// manifestCmd represents the manifest command
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Show the full registration metadata for a project",
	Long: `Manifest resolves the distribution, scans the declared packages, data
files, and scripts, and prints the result. The default output is the same
"Key: Value" metadata format written into a built source distribution.`,
	RunE: func(cmd *cobra.Command, args []string) error {

		if manifestCmdConfig.packages != "" {
			distManager.Cfg.Set("project.packages", parseList(manifestCmdConfig.packages))
		}

		meta, err := distManager.ResolveMetadata(manifestCmdConfig.project)
		if err != nil {
			return errors.Wrap(err, "Resolution failed")
		}

		man, err := distManager.BuildManifest(manifestCmdConfig.project, meta)
		if err != nil {
			return errors.Wrap(err, "Manifest assembly failed")
		}

		if manifestCmdConfig.asJSON {
			out, err := json.MarshalIndent(man, "", "  ")
			if err != nil {
				return errors.Wrap(err, "Failed to encode manifest")
			}
			fmt.Println(string(out))
			return nil
		}

		if err := man.WriteInfo(os.Stdout); err != nil {
			return errors.Wrap(err, "Failed to write manifest")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(manifestCmd)

	manifestCmd.Flags().StringVarP(&manifestCmdConfig.project, "project", "p", ".", "project directory")
	manifestCmd.Flags().StringVar(&manifestCmdConfig.packages, "packages", "", "comma-separated package directories (defaults to the module directory)")
	manifestCmd.Flags().BoolVar(&manifestCmdConfig.asJSON, "json", false, "print the manifest as JSON")
}
