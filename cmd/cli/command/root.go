package command

// root.go defines the root command for the animehub CLI.
// Global flags and token persistence live here.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"animehub/cmd/cli/command/client"
)

var (
	apiURL  string // global flag for API server URL
	cfgPath string // config file path

	api *client.HTTPClient
)

// cliConfig is the on-disk token store at ~/.animehub/config.json.
type cliConfig struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

var rootCmd = &cobra.Command{
	Use:   "animehub",
	Short: "animehub - browse AniList and track your watchlist",
	Long: `animehub is a command line client for the animehub API server.
Use it to:
- Browse trending, popular, and upcoming anime
- Search and filter the AniList catalog
- Bookmark anime with a watch status
- Manage custom anime lists

Use "animehub <command> --help" to see all available commands.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		api = client.NewHTTPClient(apiURL)
		cfg := loadCLIConfig()
		api.SetTokens(cfg.AccessToken, cfg.RefreshToken)
		api.OnTokenChange = saveTokens
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8084", "API server URL")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default $HOME/.animehub/config.json)")
}

func configPath() string {
	if cfgPath != "" {
		return cfgPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".animehub.json"
	}
	return filepath.Join(home, ".animehub", "config.json")
}

func loadCLIConfig() cliConfig {
	var cfg cliConfig
	raw, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: corrupt config file %s: %v\n", configPath(), err)
	}
	return cfg
}

func saveTokens(accessToken, refreshToken string) {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not create config dir: %v\n", err)
		return
	}
	raw, _ := json.MarshalIndent(cliConfig{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, "", "  ")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save config: %v\n", err)
	}
}
