package commands

import (
	"fmt"
	"sync"
	"time"

	"github.com/edukit-io/canvas-client/internal/constants"
)

// ConfigPersister implements the auth.ConfigPersister interface, writing
// refreshed tokens back to the CLI configuration file so later invocations
// reuse them.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// UpdateContextToken updates the token material of one context in the config.
func (p *ConfigPersister) UpdateContextToken(contextName, token string, expiresAt time.Time, refreshToken string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()

	context, ok := config.Contexts[contextName]
	if !ok {
		return fmt.Errorf("context '%s': %w", contextName, constants.ErrContextNotFound)
	}

	context.AccessToken = token
	if !expiresAt.IsZero() {
		context.TokenExpiresAt = &expiresAt
	}

	if refreshToken != "" {
		context.RefreshToken = refreshToken
	}

	now := time.Now()
	context.LastRefreshed = &now

	return saveConfigStruct(config)
}
