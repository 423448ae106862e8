package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/edukit-io/canvas-client/internal/constants"
	"github.com/edukit-io/canvas-client/pkg/canvas"
	"github.com/edukit-io/canvas-client/pkg/canvasclient"
)

// Config represents the CLI configuration.
type Config struct {
	Contexts       map[string]*ContextConfig `json:"contexts,omitempty"        yaml:"contexts,omitempty"`
	CurrentContext string                    `json:"current_context,omitempty" yaml:"current_context,omitempty"`

	// Global settings
	Output string `json:"output" yaml:"output"`
}

// ContextConfig represents the persisted configuration for one Canvas
// instance.
type ContextConfig struct {
	BaseURL           string     `json:"base_url"                      yaml:"base_url"`
	APIKey            string     `json:"api_key,omitempty"             yaml:"api_key,omitempty"`
	AccountID         int        `json:"account_id,omitempty"          yaml:"account_id,omitempty"`
	APIVersion        string     `json:"api_version,omitempty"         yaml:"api_version,omitempty"`
	AuthMode          string     `json:"auth_mode,omitempty"           yaml:"auth_mode,omitempty"`
	OAuthClientID     string     `json:"oauth_client_id,omitempty"     yaml:"oauth_client_id,omitempty"`
	OAuthClientSecret string     `json:"oauth_client_secret,omitempty" yaml:"oauth_client_secret,omitempty"`
	OAuthRedirectURI  string     `json:"oauth_redirect_uri,omitempty"  yaml:"oauth_redirect_uri,omitempty"`
	AccessToken       string     `json:"access_token,omitempty"        yaml:"access_token,omitempty"`
	RefreshToken      string     `json:"refresh_token,omitempty"       yaml:"refresh_token,omitempty"`
	TokenExpiresAt    *time.Time `json:"token_expires_at,omitempty"    yaml:"token_expires_at,omitempty"`
	LastRefreshed     *time.Time `json:"last_refreshed,omitempty"      yaml:"last_refreshed,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage Canvas CLI configuration including named contexts and settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigUseCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the CLI configuration with credentials masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			masked := maskedConfig(config)

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")

				return encoder.Encode(masked)
			case constants.FormatYAML:
				encoder := yaml.NewEncoder(os.Stdout)

				return encoder.Encode(masked)
			default:
				return displayConfigTable(masked)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	var contextFlag string

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value on a context (base_url, api_key, account_id, api_version, auth_mode)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			name := targetContextName(config, contextFlag)

			context, ok := config.Contexts[name]
			if !ok {
				context = &ContextConfig{}
				config.Contexts[name] = context
			}

			if err := setContextValue(context, args[0], args[1]); err != nil {
				return err
			}

			if config.CurrentContext == "" {
				config.CurrentContext = name
			}

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Set %s on context '%s'\n", args[0], name)

			return nil
		},
	}

	cmd.Flags().StringVar(&contextFlag, "context", "", "target a specific context")

	return cmd
}

func newConfigUnsetCommand() *cobra.Command {
	var contextFlag string

	cmd := &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			name := targetContextName(config, contextFlag)

			context, ok := config.Contexts[name]
			if !ok {
				return fmt.Errorf("context '%s': %w", name, constants.ErrContextNotFound)
			}

			if err := setContextValue(context, args[0], ""); err != nil {
				return err
			}

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Unset %s on context '%s'\n", args[0], name)

			return nil
		},
	}

	cmd.Flags().StringVar(&contextFlag, "context", "", "target a specific context")

	return cmd
}

func newConfigUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use CONTEXT",
		Short: "Switch the current context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if _, ok := config.Contexts[args[0]]; !ok {
				return fmt.Errorf("context '%s': %w", args[0], constants.ErrContextNotFound)
			}

			config.CurrentContext = args[0]

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Switched to context '%s'\n", args[0])

			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	var contextFlag string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove all configuration, or a single context when --context is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			if contextFlag != "" {
				config := loadConfig()

				if _, ok := config.Contexts[contextFlag]; !ok {
					return fmt.Errorf("context '%s': %w", contextFlag, constants.ErrContextNotFound)
				}

				delete(config.Contexts, contextFlag)

				if config.CurrentContext == contextFlag {
					config.CurrentContext = ""
				}

				if err := saveConfigStruct(config); err != nil {
					return err
				}

				fmt.Fprintf(os.Stdout, "Removed context '%s'\n", contextFlag)

				return nil
			}

			configFile := viper.ConfigFileUsed()
			if configFile == "" {
				home, _ := os.UserHomeDir()
				configFile = filepath.Join(home, ".canvas", "config.yml")
			}

			err := os.Remove(configFile)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			fmt.Fprintln(os.Stdout, "Cleared all configuration")

			return nil
		},
	}

	cmd.Flags().StringVar(&contextFlag, "context", "", "clear a single context only")

	return cmd
}

// targetContextName resolves the context a command should act on: the --context
// flag, else the current context, else "default".
func targetContextName(config *Config, contextFlag string) string {
	if contextFlag != "" {
		return contextFlag
	}

	if config.CurrentContext != "" {
		return config.CurrentContext
	}

	return "default"
}

func setContextValue(context *ContextConfig, key, value string) error {
	switch key {
	case "base_url":
		context.BaseURL = value
	case "api_key":
		context.APIKey = value
	case "account_id":
		if value == "" {
			context.AccountID = 0

			return nil
		}

		id, err := strconv.Atoi(value)
		if err != nil || id <= 0 {
			return fmt.Errorf("account_id must be a positive integer: %w", constants.ErrInvalidConfigValue)
		}

		context.AccountID = id
	case "api_version":
		context.APIVersion = value
	case "auth_mode":
		if value != "" && value != string(canvas.AuthModeAPIKey) && value != string(canvas.AuthModeOAuth) {
			return fmt.Errorf("auth_mode must be 'api_key' or 'oauth': %w", constants.ErrInvalidConfigValue)
		}

		context.AuthMode = value
	case "oauth_client_id":
		context.OAuthClientID = value
	case "oauth_client_secret":
		context.OAuthClientSecret = value
	case "oauth_redirect_uri":
		context.OAuthRedirectURI = value
	default:
		return fmt.Errorf("unknown configuration key '%s': %w", key, constants.ErrInvalidConfigValue)
	}

	return nil
}

// loadConfig reads the CLI configuration from viper's backing file.
func loadConfig() *Config {
	config := &Config{
		Output:         viper.GetString("output"),
		CurrentContext: viper.GetString("current_context"),
		Contexts:       make(map[string]*ContextConfig),
	}

	raw := viper.GetStringMap("contexts")
	for name := range raw {
		contextMap := viper.GetStringMap("contexts." + name)
		config.Contexts[name] = parseContextConfig(contextMap)
	}

	return config
}

func parseContextConfig(contextMap map[string]interface{}) *ContextConfig {
	context := &ContextConfig{}

	if v, ok := contextMap["base_url"].(string); ok {
		context.BaseURL = v
	}

	if v, ok := contextMap["api_key"].(string); ok {
		context.APIKey = v
	}

	if v, ok := contextMap["account_id"].(int); ok {
		context.AccountID = v
	}

	if v, ok := contextMap["api_version"].(string); ok {
		context.APIVersion = v
	}

	if v, ok := contextMap["auth_mode"].(string); ok {
		context.AuthMode = v
	}

	if v, ok := contextMap["oauth_client_id"].(string); ok {
		context.OAuthClientID = v
	}

	if v, ok := contextMap["oauth_client_secret"].(string); ok {
		context.OAuthClientSecret = v
	}

	if v, ok := contextMap["oauth_redirect_uri"].(string); ok {
		context.OAuthRedirectURI = v
	}

	if v, ok := contextMap["access_token"].(string); ok {
		context.AccessToken = v
	}

	if v, ok := contextMap["refresh_token"].(string); ok {
		context.RefreshToken = v
	}

	if v, ok := contextMap["token_expires_at"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			context.TokenExpiresAt = &parsed
		}
	}

	return context
}

func saveConfigStruct(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".canvas")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// maskedConfig returns a copy of the configuration with credentials masked so
// show output is safe to paste into bug reports.
func maskedConfig(config *Config) *Config {
	masked := &Config{
		Output:         config.Output,
		CurrentContext: config.CurrentContext,
		Contexts:       make(map[string]*ContextConfig, len(config.Contexts)),
	}

	for name, context := range config.Contexts {
		copied := *context
		copied.APIKey = maskSecret(context.APIKey)
		copied.OAuthClientSecret = maskSecret(context.OAuthClientSecret)
		copied.AccessToken = maskSecret(context.AccessToken)
		copied.RefreshToken = maskSecret(context.RefreshToken)
		masked.Contexts[name] = &copied
	}

	return masked
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	if len(secret) <= 4 {
		return "***"
	}

	return "***" + secret[len(secret)-4:]
}

func displayConfigTable(config *Config) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Context", "Base URL", "Account", "Auth Mode", "Current")

	for name, context := range config.Contexts {
		accountID := ""
		if context.AccountID > 0 {
			accountID = strconv.Itoa(context.AccountID)
		}

		authMode := context.AuthMode
		if authMode == "" {
			authMode = string(canvas.AuthModeAPIKey)
		}

		current := ""
		if name == config.CurrentContext {
			current = "*"
		}

		_ = table.Append(name, context.BaseURL, accountID, authMode, current)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// buildStore hydrates a context store from the persisted CLI configuration.
func buildStore(config *Config) (*canvas.ContextStore, error) {
	store := canvas.NewContextStore()

	for name, context := range config.Contexts {
		if context.BaseURL != "" {
			if err := store.SetBaseURL(name, context.BaseURL); err != nil {
				return nil, fmt.Errorf("context '%s': %w", name, err)
			}
		}

		if context.APIKey != "" {
			store.SetAPIKey(name, context.APIKey)
		}

		if context.AccountID > 0 {
			store.SetAccountID(name, context.AccountID)
		}

		if context.APIVersion != "" {
			store.SetAPIVersion(name, context.APIVersion)
		}

		if context.AuthMode == string(canvas.AuthModeOAuth) {
			store.UseOAuth(name)
		}

		if context.OAuthClientID != "" || context.OAuthClientSecret != "" {
			store.SetOAuthClient(name, context.OAuthClientID, context.OAuthClientSecret, context.OAuthRedirectURI)
		}

		if context.AccessToken != "" || context.RefreshToken != "" {
			expiresAt := time.Time{}
			if context.TokenExpiresAt != nil {
				expiresAt = *context.TokenExpiresAt
			}

			store.SetTokens(name, canvas.TokenSet{
				AccessToken:  context.AccessToken,
				RefreshToken: context.RefreshToken,
				ExpiresAt:    expiresAt,
			})
		}
	}

	if config.CurrentContext != "" {
		store.SetCurrent(config.CurrentContext)
	}

	return store, nil
}

// CreateClient builds an API client for the named context ("" = current).
func CreateClient(contextName string) (*canvasclient.Client, error) {
	config := loadConfig()
	if len(config.Contexts) == 0 {
		return nil, constants.ErrNoContextsConfigured
	}

	name := contextName
	if name == "" {
		name = config.CurrentContext
	}

	if name == "" {
		return nil, constants.ErrNoContextsConfigured
	}

	context, ok := config.Contexts[name]
	if !ok {
		return nil, fmt.Errorf("context '%s': %w", name, constants.ErrContextNotFound)
	}

	if context.BaseURL == "" {
		return nil, constants.ErrNoBaseURL
	}

	store, err := buildStore(config)
	if err != nil {
		return nil, err
	}

	opts := &canvasclient.Options{}
	if viper.GetBool("verbose") {
		opts.Debug = true
	}

	// Refreshed OAuth tokens are written back to the config file so the
	// next invocation does not have to refresh again.
	if context.AuthMode == string(canvas.AuthModeOAuth) {
		opts.TokenPersister = NewConfigPersister()
	}

	return canvasclient.New(cmdContext(), store, name, opts)
}
