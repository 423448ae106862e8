package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/edukit-io/canvas-client/internal/auth"
	"github.com/edukit-io/canvas-client/internal/constants"
	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		baseURL       string
		apiKey        string
		authCode      string
		useOAuth      bool
		replaceTokens bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a Canvas instance",
		Long:  "Store credentials for a Canvas instance in the active context",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			name := targetContextName(config, cmd.Flag("context").Value.String())

			contextConfig, ok := config.Contexts[name]
			if !ok {
				contextConfig = &ContextConfig{}
				config.Contexts[name] = contextConfig
			}

			if baseURL == "" {
				baseURL = contextConfig.BaseURL
			}

			if baseURL == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Canvas base URL: ")
				baseURL, _ = reader.ReadString('\n')
				baseURL = strings.TrimSpace(baseURL)
			}

			if baseURL == "" {
				return constants.ErrNoBaseURL
			}

			normalized, err := canvas.NormalizeBaseURL(baseURL)
			if err != nil {
				return fmt.Errorf("invalid base URL: %w", err)
			}

			contextConfig.BaseURL = normalized

			if useOAuth || contextConfig.AuthMode == string(canvas.AuthModeOAuth) {
				return loginWithOAuth(config, name, contextConfig, authCode, replaceTokens)
			}

			return loginWithAPIKey(config, name, contextConfig, apiKey)
		},
	}

	cmd.Flags().StringVarP(&baseURL, "base-url", "b", "", "Canvas base URL")
	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "API key (prompted when omitted)")
	cmd.Flags().BoolVar(&useOAuth, "oauth", false, "use the OAuth2 web flow instead of an API key")
	cmd.Flags().StringVar(&authCode, "code", "", "OAuth2 authorization code from the redirect")
	cmd.Flags().BoolVar(&replaceTokens, "replace-tokens", false, "revoke previously issued tokens during the code exchange")

	return cmd
}

func loginWithAPIKey(config *Config, name string, contextConfig *ContextConfig, apiKey string) error {
	if apiKey == "" {
		fmt.Print("API key: ")

		byteKey, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}

		apiKey = strings.TrimSpace(string(byteKey))

		fmt.Println()
	}

	contextConfig.APIKey = apiKey
	contextConfig.AuthMode = string(canvas.AuthModeAPIKey)

	if config.CurrentContext == "" {
		config.CurrentContext = name
	}

	if err := saveConfigStruct(config); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	client, err := CreateClient(name)
	if err != nil {
		return err
	}

	user, err := client.Users().Self(cmdContext())
	if err != nil {
		return fmt.Errorf("failed to verify credentials: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Logged in to %s as %s\n", contextConfig.BaseURL, user.Name)

	return nil
}

func loginWithOAuth(config *Config, name string, contextConfig *ContextConfig, authCode string, replaceTokens bool) error {
	if contextConfig.OAuthClientID == "" || contextConfig.OAuthClientSecret == "" {
		return fmt.Errorf("oauth_client_id and oauth_client_secret must be configured: %w", constants.ErrNotAuthenticated)
	}

	contextConfig.AuthMode = string(canvas.AuthModeOAuth)

	store, err := buildStore(config)
	if err != nil {
		return err
	}

	flow := auth.NewFlow(store, name)

	if authCode == "" {
		authURL, err := flow.AuthorizationURL(auth.AuthorizeOptions{})
		if err != nil {
			return fmt.Errorf("building authorization URL: %w", err)
		}

		// Persist the base URL and auth mode now so the follow-up
		// --code invocation picks them up.
		if err := saveConfigStruct(config); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		fmt.Fprintf(os.Stdout, "Open the following URL in a browser and authorize the application:\n\n  %s\n\n", authURL)
		fmt.Fprintln(os.Stdout, "Then run 'canvas login --oauth --code CODE' with the code from the redirect.")

		return nil
	}

	tokens, err := flow.ExchangeCode(cmdContext(), authCode, auth.ExchangeOptions{ReplaceTokens: replaceTokens})
	if err != nil {
		return err
	}

	contextConfig.AccessToken = tokens.AccessToken
	contextConfig.RefreshToken = tokens.RefreshToken
	contextConfig.TokenExpiresAt = &tokens.ExpiresAt

	if config.CurrentContext == "" {
		config.CurrentContext = name
	}

	if err := saveConfigStruct(config); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Logged in to %s as %s\n", contextConfig.BaseURL, tokens.UserName)

	return nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Logout from a Canvas instance",
		Long:  "Clear credentials stored in the active context",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			name := targetContextName(config, cmd.Flag("context").Value.String())

			contextConfig, ok := config.Contexts[name]
			if !ok {
				return fmt.Errorf("context '%s': %w", name, constants.ErrContextNotFound)
			}

			// Revoke the OAuth session server-side when one exists; a
			// failure still clears local state.
			if contextConfig.AccessToken != "" {
				store, err := buildStore(config)
				if err == nil {
					flow := auth.NewFlow(store, name)
					if _, err := flow.Revoke(cmdContext(), false); err != nil {
						fmt.Fprintf(os.Stderr, "Warning: could not revoke token: %v\n", err)
					}
				}
			}

			contextConfig.APIKey = ""
			contextConfig.AccessToken = ""
			contextConfig.RefreshToken = ""
			contextConfig.TokenExpiresAt = nil

			if err := saveConfigStruct(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Fprintf(os.Stdout, "Logged out of context '%s'\n", name)

			return nil
		},
	}

	return cmd
}
