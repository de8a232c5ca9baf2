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
	collectUse              = types.CommandCollect + " [path]"
	collectAlias            = "c"
	collectShortDescription = "render selected files as one document (" + collectAlias + ")"
	collectLongDescription  = `Collect text files under path (default ".") and print them as a single document.
Use --format to select markdown or xml, --tokens to prepend a size summary and --clipboard to also copy the document.`
	collectUsageExample = `  # All Go files as Markdown
  gather collect -g '**/*.go' .

  # XML with a token summary, skipping tests
  gather collect -f xml --tokens -e '**/*_test.go' ./internal`

	formatFlagName         = "format"
	formatFlagShorthand    = "f"
	formatFlagDescription  = "output format: markdown (md) or xml"
	tokensFlagName         = "tokens"
	tokensFlagDescription  = "prepend a file, byte and token summary"
	clipboardFlagName      = "clipboard"
	clipboardDescription   = "also copy the document to the system clipboard"
	copyClipboardErrorFmt  = "copy to clipboard: %w"
	renderDocumentErrorFmt = "render %s document: %w"
	logCollected           = "files collected"
)

type collectOptions struct {
	paths     pathFlags
	format    string
	summary   bool
	maxSize   int64
	model     string
	clipboard bool
}

func (options *collectOptions) applyConfiguration(command *cobra.Command, state *applicationState) {
	configuration := state.configuration.Collect
	flagSet := command.Flags()
	options.paths.applyConfiguration(flagSet, configuration.Paths)
	if !flagSet.Changed(formatFlagName) && configuration.Format != "" {
		options.format = configuration.Format
	}
	if !flagSet.Changed(tokensFlagName) && configuration.Summary != nil {
		options.summary = *configuration.Summary
	}
	if !flagSet.Changed(clipboardFlagName) && configuration.Clipboard != nil {
		options.clipboard = *configuration.Clipboard
	}
	applyMaxSize(flagSet, &options.maxSize, configuration.MaxSize)
	applyModel(flagSet, &options.model, configuration.Model)
}

// createCollectCommand returns the collect subcommand.
func createCollectCommand(state *applicationState) *cobra.Command {
	options := collectOptions{
		format:  string(types.FormatMarkdown),
		maxSize: types.DefaultMaxSize,
		model:   tokenizer.HeuristicModelName,
	}

	collectCommand := &cobra.Command{
		Use:     collectUse,
		Aliases: []string{collectAlias},
		Short:   collectShortDescription,
		Long:    collectLongDescription,
		Example: collectUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			options.applyConfiguration(command, state)
			return runCollect(command, state, options, resolveRootArgument(arguments))
		},
	}
	registerPathFlags(collectCommand, &options.paths)
	collectCommand.Flags().StringVarP(&options.format, formatFlagName, formatFlagShorthand, options.format, formatFlagDescription)
	registerToggleFlag(collectCommand.Flags(), &options.summary, tokensFlagName, false, tokensFlagDescription)
	collectCommand.Flags().Int64Var(&options.maxSize, maxSizeFlagName, options.maxSize, maxSizeFlagDescription)
	collectCommand.Flags().StringVar(&options.model, modelFlagName, options.model, modelFlagDescription)
	registerToggleFlag(collectCommand.Flags(), &options.clipboard, clipboardFlagName, false, clipboardDescription)
	return collectCommand
}

func runCollect(command *cobra.Command, state *applicationState, options collectOptions, rootPath string) error {
	format, err := types.ParseFormat(options.format)
	if err != nil {
		return err
	}
	if err := validateMaxSize(options.maxSize); err != nil {
		return err
	}
	renderer, err := output.NewRenderer(format)
	if err != nil {
		return err
	}
	var counter tokenizer.Counter
	if options.summary {
		counter, _, err = tokenizer.NewCounter(tokenizer.Config{Model: options.model})
		if err != nil {
			return err
		}
	}

	files := state.engine.Collect(command.Context(), options.paths.selection(rootPath, options.maxSize))
	state.logger().Debug(logCollected, zap.String("root", rootPath), zap.Int("files", len(files)))
	if len(files) == 0 {
		return fmt.Errorf(noFilesErrorFormat, rootPath, collector.ErrNoFiles)
	}

	document, err := renderer.Render(files, output.Options{IncludeSummary: options.summary, Counter: counter})
	if err != nil {
		return fmt.Errorf(renderDocumentErrorFmt, format, err)
	}
	if err := writeDocument(command.OutOrStdout(), document); err != nil {
		return err
	}
	if options.clipboard {
		if err := state.copyToClipboard(document); err != nil {
			return fmt.Errorf(copyClipboardErrorFmt, err)
		}
	}
	return nil
}
