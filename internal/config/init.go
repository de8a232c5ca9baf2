package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/temirov/gather/internal/types"
	"github.com/temirov/gather/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	defaultModelName       = "heuristic"
	templateIndentation    = 2
	configurationFileMode  = 0o600
	configurationDirMode   = 0o755
	initWorkingDirErrorFmt = "determine working directory for configuration: %w"
	initHomeDirErrorFmt    = "resolve home directory for configuration: %w"
	initMkdirErrorFmt      = "create configuration directory %s: %w"
	initTargetErrorFmt     = "unsupported init target %q"
	initExistsErrorFmt     = "configuration file already exists at %s"
	initInspectErrorFmt    = "inspect configuration path %s: %w"
	initEncodeErrorFmt     = "encode default configuration: %w"
	initWriteErrorFmt      = "write configuration to %s: %w"
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// DefaultApplicationConfiguration returns the configuration that matches the built-in flag defaults.
func DefaultApplicationConfiguration() ApplicationConfiguration {
	defaultPaths := func() PathConfiguration {
		return PathConfiguration{
			Include:       []string{},
			Exclude:       []string{},
			UseGitignore:  boolValue(true),
			UseIgnoreFile: boolValue(true),
			IncludeHidden: boolValue(false),
		}
	}
	return ApplicationConfiguration{
		Collect: CollectConfiguration{
			Format:    string(types.FormatMarkdown),
			Summary:   boolValue(false),
			MaxSize:   int64Value(types.DefaultMaxSize),
			Model:     defaultModelName,
			Clipboard: boolValue(false),
			Paths:     defaultPaths(),
		},
		Tree: TreeConfiguration{
			Paths: defaultPaths(),
		},
		Tokens: TokensConfiguration{
			MaxSize: int64Value(types.DefaultMaxSize),
			Model:   defaultModelName,
			Paths:   defaultPaths(),
		},
	}
}

// RenderDefaultConfiguration encodes the default configuration as YAML.
func RenderDefaultConfiguration() ([]byte, error) {
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(templateIndentation)
	if err := encoder.Encode(DefaultApplicationConfiguration()); err != nil {
		return nil, fmt.Errorf(initEncodeErrorFmt, err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf(initEncodeErrorFmt, err)
	}
	return buffer.Bytes(), nil
}

// InitializeConfiguration writes the default configuration to the requested target.
func InitializeConfiguration(options InitOptions) (string, error) {
	target := options.Target
	if target == "" {
		target = InitTargetLocal
	}
	var destinationPath string
	switch target {
	case InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			current, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf(initWorkingDirErrorFmt, err)
			}
			workingDirectory = current
		}
		destinationPath = filepath.Join(workingDirectory, utils.LocalConfigFileName)
	case InitTargetGlobal:
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf(initHomeDirErrorFmt, err)
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if err := os.MkdirAll(configurationDirectory, configurationDirMode); err != nil {
			return "", fmt.Errorf(initMkdirErrorFmt, configurationDirectory, err)
		}
		destinationPath = filepath.Join(configurationDirectory, utils.ConfigFileName)
	default:
		return "", fmt.Errorf(initTargetErrorFmt, target)
	}

	if _, err := os.Stat(destinationPath); err == nil {
		if !options.Force {
			return "", fmt.Errorf(initExistsErrorFmt, destinationPath)
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf(initInspectErrorFmt, destinationPath, err)
	}

	template, renderErr := RenderDefaultConfiguration()
	if renderErr != nil {
		return "", renderErr
	}
	if err := os.WriteFile(destinationPath, template, configurationFileMode); err != nil {
		return "", fmt.Errorf(initWriteErrorFmt, destinationPath, err)
	}

	return destinationPath, nil
}

func boolValue(value bool) *bool {
	return &value
}

func int64Value(value int64) *int64 {
	return &value
}
