package docs

import (
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service name for OS credential store
	credentialService = "mdbridge"
	// Key for the document service API token
	serviceTokenKey = "service_token"
	// Environment fallback for headless hosts without a credential store
	EnvToken = "MDBRIDGE_TOKEN"
)

// CredentialManager handles secure storage and retrieval of the
// document service API token.
type CredentialManager struct {
	service string
}

// NewCredentialManager creates a new credential manager instance
func NewCredentialManager() *CredentialManager {
	return &CredentialManager{
		service: credentialService,
	}
}

// StoreServiceToken securely stores the API token in the OS credential store.
func (cm *CredentialManager) StoreServiceToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if err := keyring.Set(cm.service, serviceTokenKey, token); err != nil {
		return fmt.Errorf("failed to store token in credential store: %w", err)
	}

	return nil
}

// GetServiceToken retrieves the stored API token from the OS credential store.
func (cm *CredentialManager) GetServiceToken() (string, error) {
	token, err := keyring.Get(cm.service, serviceTokenKey)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", fmt.Errorf("no token stored, run 'mdbridge auth login' first")
		}
		return "", fmt.Errorf("failed to read token from credential store: %w", err)
	}
	return token, nil
}

// DeleteServiceToken removes the stored API token. A missing token is
// not an error.
func (cm *CredentialManager) DeleteServiceToken() error {
	err := keyring.Delete(cm.service, serviceTokenKey)
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to delete token from credential store: %w", err)
	}
	return nil
}

// ResolveToken returns the API token, preferring the OS credential
// store and falling back to the MDBRIDGE_TOKEN environment variable.
func (cm *CredentialManager) ResolveToken() (string, error) {
	token, err := cm.GetServiceToken()
	if err == nil && token != "" {
		return token, nil
	}

	if env := strings.TrimSpace(os.Getenv(EnvToken)); env != "" {
		return env, nil
	}

	if err != nil {
		return "", err
	}
	return "", fmt.Errorf("no token available")
}
