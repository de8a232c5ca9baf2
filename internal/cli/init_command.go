package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/gather/internal/config"
	"github.com/temirov/gather/internal/types"
)

const (
	initUse              = types.CommandInit
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default configuration to ./.gather.yaml, or to ~/.gather/config.yaml with --global.
Values in the file become the defaults of collect, tree and tokens; flags still override them.`
	globalFlagName        = "global"
	globalFlagDescription = "write the global configuration under the home directory"
	forceFlagName         = "force"
	forceFlagDescription  = "overwrite an existing configuration file"
	initCompletedTemplate = "Configuration written to %s\n"
)

// createInitCommand returns the init subcommand.
func createInitCommand(state *applicationState) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			destinationPath, err := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: state.dependencies.WorkingDirectory,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(command.OutOrStdout(), initCompletedTemplate, destinationPath)
			return err
		},
	}
	registerToggleFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	registerToggleFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}
