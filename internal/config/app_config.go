package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/gather/internal/utils"
)

const (
	determineWorkingDirectoryErrorFormat = "determine working directory: %w"
	resolveConfigurationPathErrorFormat  = "resolve configuration path %s: %w"
	statConfigurationErrorFormat         = "stat configuration %s: %w"
	configurationDirectoryErrorFormat    = "configuration path %s is a directory"
	readConfigurationErrorFormat         = "read configuration from %s: %w"
	decodeConfigurationErrorFormat       = "decode configuration from %s: %w"
	explicitConfigurationMissingFormat   = "configuration file %s does not exist"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Collect CollectConfiguration `mapstructure:"collect" yaml:"collect"`
	Tree    TreeConfiguration    `mapstructure:"tree" yaml:"tree"`
	Tokens  TokensConfiguration  `mapstructure:"tokens" yaml:"tokens"`
}

// CollectConfiguration defines defaults for the collect command.
type CollectConfiguration struct {
	Format    string            `mapstructure:"format" yaml:"format"`
	Summary   *bool             `mapstructure:"tokens" yaml:"tokens"`
	MaxSize   *int64            `mapstructure:"max_size" yaml:"max_size"`
	Model     string            `mapstructure:"model" yaml:"model"`
	Clipboard *bool             `mapstructure:"clipboard" yaml:"clipboard"`
	Paths     PathConfiguration `mapstructure:"paths" yaml:"paths"`
}

// TreeConfiguration defines defaults for the tree command.
type TreeConfiguration struct {
	Paths PathConfiguration `mapstructure:"paths" yaml:"paths"`
}

// TokensConfiguration defines defaults for the tokens command.
type TokensConfiguration struct {
	MaxSize *int64            `mapstructure:"max_size" yaml:"max_size"`
	Model   string            `mapstructure:"model" yaml:"model"`
	Paths   PathConfiguration `mapstructure:"paths" yaml:"paths"`
}

// PathConfiguration configures inclusion and exclusion rules for path traversal.
type PathConfiguration struct {
	Include       []string `mapstructure:"include" yaml:"include"`
	Exclude       []string `mapstructure:"exclude" yaml:"exclude"`
	UseGitignore  *bool    `mapstructure:"use_gitignore" yaml:"use_gitignore"`
	UseIgnoreFile *bool    `mapstructure:"use_ignore" yaml:"use_ignore"`
	IncludeHidden *bool    `mapstructure:"include_hidden" yaml:"include_hidden"`
}

// LoadApplicationConfiguration loads configuration from the global file and the
// local file, the latter overriding the former field by field.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf(determineWorkingDirectoryErrorFormat, err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if globalPath := GlobalConfigurationPath(); globalPath != "" {
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if options.ExplicitFilePath != "" {
		if _, statErr := os.Stat(localPath); os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, fmt.Errorf(explicitConfigurationMissingFormat, localPath)
		}
	}
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	merged.Collect.Paths = merged.Collect.Paths.normalized()
	merged.Tree.Paths = merged.Tree.Paths.normalized()
	merged.Tokens.Paths = merged.Tokens.Paths.normalized()

	return merged, nil
}

// GlobalConfigurationPath returns the location of the global configuration file,
// or an empty string when the home directory cannot be determined.
func GlobalConfigurationPath() string {
	homeDirectory, err := os.UserHomeDir()
	if err != nil || homeDirectory == "" {
		return ""
	}
	return filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf(resolveConfigurationPathErrorFormat, explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	return filepath.Join(workingDirectory, utils.LocalConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf(statConfigurationErrorFormat, path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf(configurationDirectoryErrorFormat, path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf(readConfigurationErrorFormat, path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf(decodeConfigurationErrorFormat, path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Collect = result.Collect.merge(override.Collect)
	result.Tree = result.Tree.merge(override.Tree)
	result.Tokens = result.Tokens.merge(override.Tokens)
	return result
}

func (config CollectConfiguration) merge(override CollectConfiguration) CollectConfiguration {
	result := config
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Summary != nil {
		result.Summary = cloneBool(override.Summary)
	}
	if override.MaxSize != nil {
		result.MaxSize = cloneInt64(override.MaxSize)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	result.Paths = result.Paths.merge(override.Paths)
	return result
}

func (config TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := config
	result.Paths = result.Paths.merge(override.Paths)
	return result
}

func (config TokensConfiguration) merge(override TokensConfiguration) TokensConfiguration {
	result := config
	if override.MaxSize != nil {
		result.MaxSize = cloneInt64(override.MaxSize)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	result.Paths = result.Paths.merge(override.Paths)
	return result
}

func (config PathConfiguration) merge(override PathConfiguration) PathConfiguration {
	result := config
	if len(override.Include) > 0 {
		result.Include = append([]string{}, utils.DeduplicatePatterns(override.Include)...)
	}
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	if override.UseIgnoreFile != nil {
		result.UseIgnoreFile = cloneBool(override.UseIgnoreFile)
	}
	if override.IncludeHidden != nil {
		result.IncludeHidden = cloneBool(override.IncludeHidden)
	}
	return result
}

func (config PathConfiguration) normalized() PathConfiguration {
	result := config
	result.Include = utils.DeduplicatePatterns(result.Include)
	result.Exclude = utils.DeduplicatePatterns(result.Exclude)
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt64(value *int64) *int64 {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
