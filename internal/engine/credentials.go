package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-datediff/internal/config"
	"github.com/zalando/go-keyring"
)

// Credentials stores CardDAV passwords in the OS keyring under
// config.KeyringService.
type Credentials struct {
	Service string
}

// NewCredentials returns Credentials bound to the application's keyring
// service.
func NewCredentials() *Credentials {
	return &Credentials{Service: config.KeyringService}
}

// Resolve returns pass if non-empty, otherwise the keyring entry for user.
// A missing entry is not an error; it yields an empty password.
func (c *Credentials) Resolve(user, pass string) (string, error) {
	if pass != "" || user == "" {
		return pass, nil
	}
	p, err := keyring.Get(c.Service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		slog.Debug(config.MsgPassFail,
			config.LogKeyComponent, config.CompKeyring,
			config.LogKeyUser, user)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyringGet, err)
	}
	return p, nil
}

// Save stores pass for user.
func (c *Credentials) Save(user, pass string) error {
	if user == "" || pass == "" {
		return errors.New(config.ErrSaveNeedsCreds)
	}
	if err := keyring.Set(c.Service, user, pass); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringSet, err)
	}
	slog.Info(config.MsgPassSaved,
		config.LogKeyComponent, config.CompKeyring,
		config.LogKeyUser, user)
	return nil
}
