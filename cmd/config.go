package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cmtdev/cmt/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage cmt configuration",
		Long:  `Manage cmt configuration: the model, API key, and API base URL.`,
	}

	configSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Set a configuration value",
	}

	configSetModelCmd = &cobra.Command{
		Use:   "model [name]",
		Short: "Set the model used for generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return setConfigValue("model", args[0])
		},
	}

	configSetAPIKeyCmd = &cobra.Command{
		Use:   "apikey [key]",
		Short: "Set the API key",
		Long: `Set the API key used to authenticate against the API.

When no argument is given the key is read from stdin without echo.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			apiKey := ""
			if len(args) == 1 {
				apiKey = args[0]
			} else {
				var err error
				apiKey, err = readSecret("Enter API key: ")
				if err != nil {
					return err
				}
			}

			if apiKey == "" {
				return errors.New("API key cannot be empty")
			}
			return setConfigValue("api_key", apiKey)
		},
	}

	configSetAPIBaseCmd = &cobra.Command{
		Use:   "apibase [url]",
		Short: "Set the API base URL",
		Long:  `Set the base URL for an OpenAI-compatible endpoint. Leave empty for the default.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return setConfigValue("api_base", args[0])
		},
	}

	configGetCmd = &cobra.Command{
		Use:   "get",
		Short: "Show the current configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.GetConfig()
			if err != nil {
				return err
			}

			out := outWriter()
			fmt.Fprintf(out, "model: %s\n", cfg.Model)
			fmt.Fprintf(out, "api_key: %s\n", maskSecret(cfg.APIKey))
			if cfg.APIBase != "" {
				fmt.Fprintf(out, "api_base: %s\n", cfg.APIBase)
			} else {
				fmt.Fprintln(out, "api_base: <default>")
			}
			return nil
		},
	}
)

func init() {
	configSetCmd.AddCommand(configSetModelCmd)
	configSetCmd.AddCommand(configSetAPIKeyCmd)
	configSetCmd.AddCommand(configSetAPIBaseCmd)

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
}

func setConfigValue(key, value string) error {
	viper.Set(key, value)
	if err := config.SaveConfig(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(errWriter(), "Saved %s\n", key)
	return nil
}

func readSecret(promptText string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal, pass the key as an argument")
	}

	fmt.Fprint(errWriter(), promptText)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(errWriter())
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

func maskSecret(s string) string {
	if s == "" {
		return "<not set>"
	}
	return "********"
}
