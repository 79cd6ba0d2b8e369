package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/deckweaver/deckweaver/internal/auth"
	"github.com/deckweaver/deckweaver/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage credentials for Drive sync and AI drafting",
	Long: `Store and manage credentials.

Credentials are stored in ~/.deckweaver/credentials.json and used
as a fallback when environment variables are not set.`,
}

var authDriveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Authenticate with Google Drive via OAuth2",
	Long: `Opens your browser for Google OAuth2 authorization.

This grants deckweaver access to its own files on Google Drive.
You need a Google Cloud OAuth2 Client ID and Secret, which can be
created at https://console.cloud.google.com/apis/credentials`,
	RunE: runAuthDrive,
}

var authOpenAICmd = &cobra.Command{
	Use:   "openai",
	Short: "Store OpenAI API key for deck drafting",
	Long: `Store your OpenAI API key for persistent use.

Get your API key at https://platform.openai.com/api-keys`,
	RunE: runAuthOpenAI,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which credentials are configured",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout [drive|openai]",
	Short: "Remove stored credentials",
	Long: `Remove stored credentials.

If no argument is given, removes all stored credentials.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuthLogout,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authDriveCmd)
	authCmd.AddCommand(authOpenAICmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}

func runAuthDrive(cmd *cobra.Command, args []string) error {
	// Get Client ID and Secret from env or prompt.
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")

	reader := bufio.NewReader(os.Stdin)

	if clientID == "" {
		fmt.Print("Google OAuth2 Client ID: ")
		input, _ := reader.ReadString('\n')
		clientID = strings.TrimSpace(input)
		if clientID == "" {
			return fmt.Errorf("client ID is required")
		}
	}

	if clientSecret == "" {
		fmt.Print("Google OAuth2 Client Secret: ")
		input, _ := reader.ReadString('\n')
		clientSecret = strings.TrimSpace(input)
		if clientSecret == "" {
			return fmt.Errorf("client secret is required")
		}
	}

	token, err := auth.RunDriveOAuth(clientID, clientSecret)
	if err != nil {
		return fmt.Errorf("OAuth flow failed: %w", err)
	}

	// Store the credentials.
	creds, err := auth.Load()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	creds.Drive = &auth.DriveCredentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenExpiry:  token.Expiry.Format(time.RFC3339),
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}

	if err := auth.Save(creds); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	fmt.Println("Drive credentials stored successfully!")
	return nil
}

func runAuthOpenAI(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("OpenAI API key: ")
	input, _ := reader.ReadString('\n')
	apiKey := strings.TrimSpace(input)
	if apiKey == "" {
		return fmt.Errorf("API key is required")
	}

	creds, err := auth.Load()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	creds.OpenAI = &auth.APIKeyCredentials{APIKey: apiKey}

	if err := auth.Save(creds); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	fmt.Println("OpenAI credentials stored successfully!")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	creds, err := auth.Load()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	path, _ := auth.CredentialPath()
	fmt.Printf("Credentials file: %s\n\n", path)

	fmt.Println("Credential    Status")
	fmt.Println("----------    ------")

	if env := os.Getenv(config.DriveTokenEnvVar); env != "" {
		fmt.Println("drive         configured (env var: raw token)")
	} else if creds.Drive != nil && creds.Drive.RefreshToken != "" {
		fmt.Println("drive         configured (OAuth)")
	} else {
		fmt.Println("drive         not configured")
	}

	if env := os.Getenv(config.AssistKeyEnvVar); env != "" {
		fmt.Println("openai        configured (env var)")
	} else if creds.OpenAI != nil && creds.OpenAI.APIKey != "" {
		fmt.Println("openai        configured (stored)")
	} else {
		fmt.Println("openai        not configured")
	}

	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	creds, err := auth.Load()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	if len(args) == 0 {
		if err := auth.Save(&auth.Credentials{}); err != nil {
			return fmt.Errorf("clearing credentials: %w", err)
		}
		fmt.Println("All credentials removed.")
		return nil
	}

	switch args[0] {
	case "drive":
		creds.Drive = nil
	case "openai":
		creds.OpenAI = nil
	default:
		return fmt.Errorf("unknown credential %q (valid: drive, openai)", args[0])
	}

	if err := auth.Save(creds); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	fmt.Printf("%s credentials removed.\n", args[0])
	return nil
}
