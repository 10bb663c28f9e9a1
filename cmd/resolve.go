// Implements the 'distkit resolve' subcommand. Resolve answers the one
// question every other command starts with: what is this distribution called
// and what version is it?
package cmd

import (
	"fmt"

	"github.com/distkit/distkit/pkg/dist"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var resolveCmdConfig struct {
	project string
}

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the distribution name and version for a project",
	Long: `In a development checkout (version script present) the version comes from
running the script and the name from the project directory. In a prepared
source distribution both come from the metadata file.`,
	RunE: func(cmd *cobra.Command, args []string) error {

		meta, err := distManager.ResolveMetadata(resolveCmdConfig.project)
		if err != nil {
			return errors.Wrap(err, "Resolution failed")
		}

		fmt.Printf("name: %s\n", meta.Name)
		fmt.Printf("version: %s\n", meta.Version)
		fmt.Printf("module: %s\n", dist.ModuleName(meta.Name))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVarP(&resolveCmdConfig.project, "project", "p", ".", "project directory")
}
