package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gather/internal/output"
	"github.com/temirov/gather/internal/types"
	"github.com/temirov/gather/internal/utils"
)

const (
	treeUse              = types.CommandTree + " [path]"
	treeAlias            = "t"
	treeShortDescription = "list the files a selection would include (" + treeAlias + ")"
	treeLongDescription  = `List the files under path (default ".") that pass the ignore and glob rules.
Size, binary and encoding checks are not applied, so tree is a fast preview of collect.`
	treeUsageExample = `  # Preview which Rust sources would be collected
  gather tree -g '**/*.rs'`

	logListed = "files listed"
)

// createTreeCommand returns the tree subcommand.
func createTreeCommand(state *applicationState) *cobra.Command {
	var paths pathFlags

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			paths.applyConfiguration(command.Flags(), state.configuration.Tree.Paths)
			rootPath := resolveRootArgument(arguments)
			listed := state.engine.ListPaths(command.Context(), paths.selection(rootPath, types.DefaultMaxSize))
			state.logger().Debug(logListed, zap.String("root", rootPath), zap.Int("files", len(listed)))
			return output.WriteTree(command.OutOrStdout(), utils.RootDisplayName(rootPath), listed)
		},
	}
	registerPathFlags(treeCommand, &paths)
	return treeCommand
}
