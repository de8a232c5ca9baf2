package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/temirov/gather/internal/config"
	"github.com/temirov/gather/internal/types"
	"github.com/temirov/gather/internal/utils"
)

const (
	globFlagName           = "glob"
	globFlagShorthand      = "g"
	globFlagDescription    = "include glob pattern (repeatable)"
	excludeFlagName        = "exclude"
	excludeFlagShorthand   = "e"
	excludeFlagDescription = "exclude glob pattern (repeatable)"
	noGitignoreFlagName    = "no-gitignore"
	noGitignoreDescription = "do not apply .gitignore, repository exclude or global ignore rules"
	noIgnoreFlagName       = "no-ignore"
	noIgnoreDescription    = "do not apply .ignore files"
	hiddenFlagName         = "hidden"
	hiddenFlagDescription  = "include files and directories whose names start with a dot"
	maxSizeFlagName        = "max-size"
	maxSizeFlagDescription = "skip files larger than this many bytes"
	negativeMaxSizeFormat  = "invalid --%s %d: must not be negative"
	modelFlagName          = "model"
	modelFlagDescription   = "tokenizer used for estimates: heuristic, an encoding such as cl100k_base, or an OpenAI model name"
)

// pathFlags stores the selection flags shared by every traversal command.
type pathFlags struct {
	include          []string
	exclude          []string
	disableGitignore  bool
	disableIgnoreFile bool
	includeHidden     bool
}

func registerPathFlags(command *cobra.Command, flags *pathFlags) {
	command.Flags().StringArrayVarP(&flags.include, globFlagName, globFlagShorthand, nil, globFlagDescription)
	command.Flags().StringArrayVarP(&flags.exclude, excludeFlagName, excludeFlagShorthand, nil, excludeFlagDescription)
	registerToggleFlag(command.Flags(), &flags.disableGitignore, noGitignoreFlagName, false, noGitignoreDescription)
	registerToggleFlag(command.Flags(), &flags.disableIgnoreFile, noIgnoreFlagName, false, noIgnoreDescription)
	registerToggleFlag(command.Flags(), &flags.includeHidden, hiddenFlagName, false, hiddenFlagDescription)
}

// applyConfiguration fills every flag the user did not set from the configuration.
func (flags *pathFlags) applyConfiguration(flagSet *pflag.FlagSet, configuration config.PathConfiguration) {
	if !flagSet.Changed(globFlagName) && len(configuration.Include) > 0 {
		flags.include = append([]string(nil), configuration.Include...)
	}
	if !flagSet.Changed(excludeFlagName) && len(configuration.Exclude) > 0 {
		flags.exclude = append([]string(nil), configuration.Exclude...)
	}
	if !flagSet.Changed(noGitignoreFlagName) && configuration.UseGitignore != nil {
		flags.disableGitignore = !*configuration.UseGitignore
	}
	if !flagSet.Changed(noIgnoreFlagName) && configuration.UseIgnoreFile != nil {
		flags.disableIgnoreFile = !*configuration.UseIgnoreFile
	}
	if !flagSet.Changed(hiddenFlagName) && configuration.IncludeHidden != nil {
		flags.includeHidden = *configuration.IncludeHidden
	}
}

func (flags pathFlags) selection(rootPath string, maxSize int64) types.SelectionConfig {
	selection := types.NewSelectionConfig(rootPath)
	selection.Include = utils.DeduplicatePatterns(flags.include)
	selection.Exclude = utils.DeduplicatePatterns(flags.exclude)
	selection.MaxSize = maxSize
	selection.UseGitignore = !flags.disableGitignore
	selection.UseIgnoreFile = !flags.disableIgnoreFile
	selection.IncludeHidden = flags.includeHidden
	return selection
}

func applyMaxSize(flagSet *pflag.FlagSet, target *int64, configured *int64) {
	if !flagSet.Changed(maxSizeFlagName) && configured != nil {
		*target = *configured
	}
}

func validateMaxSize(maxSize int64) error {
	if maxSize < 0 {
		return fmt.Errorf(negativeMaxSizeFormat, maxSizeFlagName, maxSize)
	}
	return nil
}

func applyModel(flagSet *pflag.FlagSet, target *string, configured string) {
	if !flagSet.Changed(modelFlagName) && configured != "" {
		*target = configured
	}
}
