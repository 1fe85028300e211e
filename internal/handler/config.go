package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/AlexZinkM/lily-wallet-setup/bitcoin"
	"github.com/AlexZinkM/lily-wallet-setup/internal/crypto"
	"github.com/AlexZinkM/lily-wallet-setup/internal/logging"
	"github.com/AlexZinkM/lily-wallet-setup/internal/model"
	"github.com/AlexZinkM/lily-wallet-setup/internal/session"
)

// ConfigHandler exposes the in-memory configuration
type ConfigHandler struct {
	store *session.ConfigStore
}

// NewConfigHandler creates a new ConfigHandler
func NewConfigHandler(store *session.ConfigStore) *ConfigHandler {
	return &ConfigHandler{store: store}
}

// Get handles GET /config
// @Summary      Current configuration
// @Description  Wallets of the loaded configuration without xprv and mnemonic
// @Tags         config
// @Produce      json
// @Success      200  {object}  model.ConfigSummary
// @Router       /config [get]
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Get().Summary())
}

// Open handles POST /config/open
// @Summary      Open configuration file
// @Description  Decrypts an exported lily_wallet_config file and makes it the current configuration
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        request  body      model.OpenConfigRequest  true  "File content and password"
// @Success      200  {object}  model.ConfigSummary
// @Failure      400  {object}  model.ErrorResponse
// @Failure      401  {object}  model.ErrorResponse
// @Router       /config/open [post]
func (h *ConfigHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req model.OpenConfigRequest
	if err := readJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeValidation, fmt.Errorf("invalid request: %w", err))
		return
	}

	password := []byte(req.Password)
	req.Password = ""
	defer clear(password)

	cfg, err := bitcoin.OpenConfig([]byte(req.Artifact), password)
	if err != nil {
		switch {
		case errors.Is(err, crypto.ErrInvalidPassword):
			writeError(w, http.StatusUnauthorized, model.CodeInvalidPassword, err)
		default:
			writeError(w, http.StatusBadRequest, model.CodeValidation, err)
		}
		return
	}

	h.store.Replace(cfg)
	logging.L.Info("configuration opened", "wallets", len(cfg.Wallets))
	writeJSON(w, http.StatusOK, cfg.Summary())
}

