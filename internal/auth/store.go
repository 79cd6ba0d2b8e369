package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DriveCredentials stores OAuth2 tokens for Google Drive access.
type DriveCredentials struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenExpiry  string `json:"token_expiry,omitempty"`
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
}

// APIKeyCredentials stores an API key for a provider.
type APIKeyCredentials struct {
	APIKey string `json:"api_key,omitempty"`
}

// Credentials holds everything deckweaver can authenticate with.
type Credentials struct {
	Drive  *DriveCredentials  `json:"drive,omitempty"`
	OpenAI *APIKeyCredentials `json:"openai,omitempty"`
}

// CredentialPath returns the path to the credentials file (~/.deckweaver/credentials.json).
func CredentialPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".deckweaver", "credentials.json"), nil
}

// Load reads credentials from ~/.deckweaver/credentials.json.
// Returns empty credentials if the file doesn't exist.
func Load() (*Credentials, error) {
	path, err := CredentialPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	return &creds, nil
}

// Save writes credentials to ~/.deckweaver/credentials.json with restricted permissions.
func Save(creds *Credentials) error {
	path, err := CredentialPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling credentials: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}

// OpenAIKey returns the API key used for slide drafting.
// The environment variable wins over stored credentials.
func OpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	creds, err := Load()
	if err != nil {
		return ""
	}
	if creds.OpenAI != nil {
		return creds.OpenAI.APIKey
	}
	return ""
}

// HasDriveAuth returns true if Drive OAuth credentials are stored.
func HasDriveAuth() bool {
	creds, err := Load()
	if err != nil {
		return false
	}
	return creds.Drive != nil && creds.Drive.RefreshToken != ""
}
