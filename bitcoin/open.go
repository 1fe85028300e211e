package bitcoin

import (
	"encoding/json"
	"fmt"

	"github.com/AlexZinkM/lily-wallet-setup/internal/crypto"
	"github.com/AlexZinkM/lily-wallet-setup/internal/model"
)

// OpenConfig decrypts an exported artifact (either format) and decodes the configuration.
// password must be []byte for security (caller should zero it after use)
func OpenConfig(artifact, password []byte) (model.ConfigObject, error) {
	plaintext, err := crypto.DecryptConfig(artifact, password)
	if err != nil {
		return model.ConfigObject{}, err
	}
	defer clear(plaintext)

	var cfg model.ConfigObject
	if err := json.Unmarshal(plaintext, &cfg); err != nil {
		return model.ConfigObject{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Wallets == nil {
		cfg.Wallets = []model.WalletRecord{}
	}
	for i, w := range cfg.Wallets {
		if err := w.Quorum.Validate(); err != nil {
			return model.ConfigObject{}, fmt.Errorf("wallet %d (%s): %w", i, w.ID, err)
		}
	}
	return cfg, nil
}
