// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gather/internal/collector"
	"github.com/temirov/gather/internal/config"
	"github.com/temirov/gather/internal/services/clipboard"
	"github.com/temirov/gather/internal/types"
	"github.com/temirov/gather/internal/utils"
)

const (
	rootUse              = "gather"
	rootShortDescription = "gather source files into a single document"
	rootLongDescription  = `gather walks a directory, selects text files by glob, size and ignore rules,
and renders them as one Markdown or XML document for an AI assistant.
Use tree to preview the selection and tokens to estimate its size.`

	versionFlagName        = "version"
	versionFlagDescription = "display application version"
	versionTemplate        = "gather version: %s\n"
	verboseFlagName        = "verbose"
	verboseFlagDescription = "log selection decisions to standard error"
	configFlagName         = "config"
	configFlagDescription  = "configuration file overriding ./" + utils.LocalConfigFileName

	// NoFilesMessage is printed when a selection is empty.
	NoFilesMessage = "No files found matching the given criteria."

	noFilesErrorFormat          = "%s: %w"
	loadConfigurationErrorFmt   = "load configuration: %w"
	clipboardUnavailableMessage = "clipboard is not available"
)

// Dependencies carries the collaborators of the command tree.
type Dependencies struct {
	Logger           *zap.Logger
	LogLevel         zap.AtomicLevel
	Clipboard        clipboard.Copier
	WorkingDirectory string
}

// applicationState is shared by the root command and its subcommands for one invocation.
type applicationState struct {
	dependencies  Dependencies
	configPath    string
	verbose       bool
	configuration config.ApplicationConfiguration
	engine        *collector.Engine
}

// Execute runs the gather application with the process arguments.
func Execute(ctx context.Context, dependencies Dependencies) error {
	rootCommand := NewRootCommand(dependencies)
	rootCommand.SetArgs(normalizeToggleArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// DiagnosticMessage returns the text reported to the user for a command error.
func DiagnosticMessage(err error) string {
	if errors.Is(err, collector.ErrNoFiles) {
		return NoFilesMessage
	}
	return utils.ApplicationExecutionFailedMessage + ": " + err.Error()
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.LogLevel == (zap.AtomicLevel{}) {
		dependencies.LogLevel = zap.NewAtomicLevel()
	}
	state := &applicationState{dependencies: dependencies}
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				_, err := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return err
			}
			return command.Help()
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return state.prepare(command)
		},
	}
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	registerToggleFlag(rootCommand.PersistentFlags(), &state.verbose, verboseFlagName, false, verboseFlagDescription)
	rootCommand.PersistentFlags().StringVar(&state.configPath, configFlagName, "", configFlagDescription)

	rootCommand.AddCommand(
		createCollectCommand(state),
		createTreeCommand(state),
		createTokensCommand(state),
		createInitCommand(state),
	)
	return rootCommand
}

// prepare raises verbosity and loads configuration before any subcommand runs.
func (state *applicationState) prepare(command *cobra.Command) error {
	if state.verbose {
		state.dependencies.LogLevel.SetLevel(zap.DebugLevel)
	}
	state.engine = collector.NewEngine(state.dependencies.Logger)
	if !command.HasParent() || command.Name() == types.CommandInit {
		return nil
	}
	configuration, err := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: state.dependencies.WorkingDirectory,
		ExplicitFilePath: state.configPath,
	})
	if err != nil {
		return fmt.Errorf(loadConfigurationErrorFmt, err)
	}
	state.configuration = configuration
	return nil
}

func (state *applicationState) logger() *zap.Logger {
	return state.dependencies.Logger
}

func (state *applicationState) copyToClipboard(text string) error {
	if state.dependencies.Clipboard == nil {
		return errors.New(clipboardUnavailableMessage)
	}
	return state.dependencies.Clipboard.Copy(text)
}

func writeDocument(writer io.Writer, document string) error {
	_, err := io.WriteString(writer, document)
	return err
}

func resolveRootArgument(arguments []string) string {
	if len(arguments) == 0 {
		return utils.ResolveRoot(types.DefaultRootPath)
	}
	return utils.ResolveRoot(arguments[0])
}
