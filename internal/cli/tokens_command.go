package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gather/internal/collector"
	"github.com/temirov/gather/internal/output"
	"github.com/temirov/gather/internal/tokenizer"
	"github.com/temirov/gather/internal/types"
)

const (
	tokensUse              = types.CommandTokens + " [path]"
	tokensAlias            = "k"
	tokensShortDescription = "estimate tokens per selected file (" + tokensAlias + ")"
	tokensLongDescription  = `Run the collect selection under path (default ".") and print the estimated
token count and byte length of every file followed by the totals.`
	tokensUsageExample = `  # Estimate with the default heuristic
  gather tokens ./internal

  # Count with an OpenAI encoding
  gather tokens --model cl100k_base`

	logCounted = "tokens counted"
)

type tokensOptions struct {
	paths   pathFlags
	maxSize int64
	model   string
}

// createTokensCommand returns the tokens subcommand.
func createTokensCommand(state *applicationState) *cobra.Command {
	options := tokensOptions{
		maxSize: types.DefaultMaxSize,
		model:   tokenizer.HeuristicModelName,
	}

	tokensCommand := &cobra.Command{
		Use:     tokensUse,
		Aliases: []string{tokensAlias},
		Short:   tokensShortDescription,
		Long:    tokensLongDescription,
		Example: tokensUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration := state.configuration.Tokens
			options.paths.applyConfiguration(command.Flags(), configuration.Paths)
			applyMaxSize(command.Flags(), &options.maxSize, configuration.MaxSize)
			applyModel(command.Flags(), &options.model, configuration.Model)
			return runTokens(command, state, options, resolveRootArgument(arguments))
		},
	}
	registerPathFlags(tokensCommand, &options.paths)
	tokensCommand.Flags().Int64Var(&options.maxSize, maxSizeFlagName, options.maxSize, maxSizeFlagDescription)
	tokensCommand.Flags().StringVar(&options.model, modelFlagName, options.model, modelFlagDescription)
	return tokensCommand
}

func runTokens(command *cobra.Command, state *applicationState, options tokensOptions, rootPath string) error {
	if err := validateMaxSize(options.maxSize); err != nil {
		return err
	}
	counter, resolvedModel, err := tokenizer.NewCounter(tokenizer.Config{Model: options.model})
	if err != nil {
		return err
	}

	files := state.engine.Collect(command.Context(), options.paths.selection(rootPath, options.maxSize))
	if len(files) == 0 {
		return fmt.Errorf(noFilesErrorFormat, rootPath, collector.ErrNoFiles)
	}

	counts, totals, err := tokenizer.CountFiles(counter, files)
	if err != nil {
		return err
	}
	state.logger().Debug(logCounted, zap.String("model", resolvedModel), zap.Int("files", totals.Files), zap.Int("tokens", totals.Tokens))
	return output.WriteTokenReport(command.OutOrStdout(), counts, totals)
}
