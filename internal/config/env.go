package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/AlexZinkM/lily-wallet-setup/internal/crypto"
	"github.com/AlexZinkM/lily-wallet-setup/internal/model"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: passwords are never read from the environment - use ReadPassword()
type Config struct {
	Host             string        `envconfig:"HOST" default:"127.0.0.1"`
	Port             string        `envconfig:"PORT" default:"8080"`
	HWIBackendURL    string        `envconfig:"HWI_BACKEND_URL" default:"http://localhost:5001"`
	EnumerateTimeout time.Duration `envconfig:"ENUMERATE_TIMEOUT" default:"30s"`
	BitcoinNetwork   string        `envconfig:"BITCOIN_NETWORK" default:"mainnet"`
	ExportDir        string        `envconfig:"EXPORT_DIR" default:"."`
	ExportFormat     string        `envconfig:"EXPORT_FORMAT" default:"envelope"`
	ScryptN          int           `envconfig:"SCRYPT_N" default:"262144"`
	DeviceThreshold  int           `envconfig:"DEVICE_THRESHOLD" default:"3"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = c
	return nil
}

func (c *Config) validate() error {
	if _, err := model.ParseNetwork(c.BitcoinNetwork); err != nil {
		return err
	}
	if _, err := crypto.ParseFormat(c.ExportFormat); err != nil {
		return err
	}
	params := crypto.DefaultParams
	params.N = c.ScryptN
	if err := params.Validate(); err != nil {
		return fmt.Errorf("SCRYPT_N: %w", err)
	}
	if c.EnumerateTimeout <= 0 {
		return errors.New("ENUMERATE_TIMEOUT must be positive")
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetAddr returns host:port to listen on
func GetAddr() string {
	return net.JoinHostPort(Get().Host, Get().Port)
}

// GetHWIBackendURL returns device backend base URL from configuration
func GetHWIBackendURL() string {
	return Get().HWIBackendURL
}

// GetEnumerateTimeout returns timeout for device backend calls
func GetEnumerateTimeout() time.Duration {
	return Get().EnumerateTimeout
}

// GetNetwork returns default network from configuration
func GetNetwork() model.Network {
	network, _ := model.ParseNetwork(Get().BitcoinNetwork)
	return network
}

// GetExportDir returns directory where artifacts are written
func GetExportDir() string {
	return Get().ExportDir
}

// GetExportFormat returns artifact format for new exports
func GetExportFormat() crypto.Format {
	format, _ := crypto.ParseFormat(Get().ExportFormat)
	return format
}

// GetScryptParams returns scrypt cost for new envelopes
func GetScryptParams() crypto.Params {
	params := crypto.DefaultParams
	params.N = Get().ScryptN
	return params
}

// GetDeviceThreshold returns number of configured devices after which scanning stops
func GetDeviceThreshold() int {
	return Get().DeviceThreshold
}

// GetLogLevel returns log level from configuration
func GetLogLevel() string {
	return Get().LogLevel
}

// ReadPassword prompts for a password in the terminal without echoing it.
// With confirm set the password is asked twice and both entries must match.
// Caller must zero the returned slice after use for security.
func ReadPassword(prompt string, confirm bool) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}

	password, err := readHidden(fd, prompt)
	if err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, crypto.ErrEmptyPassword
	}
	if !confirm {
		return password, nil
	}

	again, err := readHidden(fd, "Confirm password: ")
	if err != nil {
		clear(password)
		return nil, err
	}
	defer clear(again)
	if string(again) != string(password) {
		clear(password)
		return nil, errors.New("passwords do not match")
	}
	return password, nil
}

func readHidden(fd int, prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}
