package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/AlexZinkM/lily-wallet-setup/bitcoin"
	"github.com/AlexZinkM/lily-wallet-setup/internal/common"
	"github.com/AlexZinkM/lily-wallet-setup/internal/export"
	"github.com/AlexZinkM/lily-wallet-setup/internal/keys"
	"github.com/AlexZinkM/lily-wallet-setup/internal/logging"
	"github.com/AlexZinkM/lily-wallet-setup/internal/model"
	"github.com/AlexZinkM/lily-wallet-setup/internal/session"

	"github.com/gorilla/mux"
)

// WalletHandler drives wallet creation wizards
type WalletHandler struct {
	wizards  *session.Wizards
	store    *session.ConfigStore
	exporter export.Exporter
	network  model.Network
	opts     bitcoin.ExportOptions
}

// NewWalletHandler creates a new WalletHandler. network is used when a request names none.
func NewWalletHandler(wizards *session.Wizards, store *session.ConfigStore, exporter export.Exporter, network model.Network, opts bitcoin.ExportOptions) *WalletHandler {
	return &WalletHandler{
		wizards:  wizards,
		store:    store,
		exporter: exporter,
		network:  network,
		opts:     opts,
	}
}

func wizardResponse(wz *session.Wizard) model.WizardResponse {
	words := common.SplitWords(wz.Mnemonic())
	if words == nil {
		words = []string{}
	}
	return model.WizardResponse{
		SessionID: wz.ID(),
		Step:      wz.Step().String(),
		Words:     words,
	}
}

func (h *WalletHandler) wizard(w http.ResponseWriter, r *http.Request) (*session.Wizard, bool) {
	wz, err := h.wizards.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, model.CodeNotFound, err)
		return nil, false
	}
	return wz, true
}

// Start handles POST /wallet/create
// @Summary      Start wallet creation
// @Description  Starts a wizard session with a fresh 24-word mnemonic
// @Tags         wallet
// @Produce      json
// @Success      201  {object}  model.WizardResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /wallet/create [post]
func (h *WalletHandler) Start(w http.ResponseWriter, r *http.Request) {
	wz, err := h.wizards.Start()
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err)
		return
	}
	logging.L.Info("wizard started", "session", wz.ID(), "sessions", h.wizards.Len())
	writeJSON(w, http.StatusCreated, wizardResponse(wz))
}

// Get handles GET /wallet/create/{id}
// @Summary      Get wizard session
// @Description  Returns the session step and the same mnemonic on every call
// @Tags         wallet
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  model.WizardResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet/create/{id} [get]
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	wz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, wizardResponse(wz))
}

// Confirm handles POST /wallet/create/{id}/confirm
// @Summary      Confirm mnemonic
// @Description  The user has written the words down; move on to the password step
// @Tags         wallet
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  model.WizardResponse
// @Failure      404  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/create/{id}/confirm [post]
func (h *WalletHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	wz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	if err := wz.ConfirmWords(); err != nil {
		writeError(w, http.StatusConflict, model.CodeBusy, err)
		return
	}
	writeJSON(w, http.StatusOK, wizardResponse(wz))
}

// Restart handles POST /wallet/create/{id}/restart
// @Summary      Restart wallet creation
// @Description  Replaces the mnemonic with a fresh one and goes back to the first step
// @Tags         wallet
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  model.WizardResponse
// @Failure      404  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /wallet/create/{id}/restart [post]
func (h *WalletHandler) Restart(w http.ResponseWriter, r *http.Request) {
	wz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	if err := wz.Restart(); err != nil {
		if errors.Is(err, session.ErrWrongStep) {
			writeError(w, http.StatusConflict, model.CodeBusy, err)
			return
		}
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err)
		return
	}
	logging.L.Info("wizard restarted", "session", wz.ID())
	writeJSON(w, http.StatusOK, wizardResponse(wz))
}

// Export handles POST /wallet/create/{id}/export
// @Summary      Create and export wallet
// @Description  Derives the wallet, encrypts the configuration with the password and writes lily_wallet_config-<timestamp>.txt.
// @Description  With ?download=1 the artifact itself is returned as an attachment.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        id        path      string               true   "Session ID"
// @Param        download  query     bool                 false  "Return the file instead of JSON"
// @Param        request   body      model.ExportRequest  true   "Account name and password"
// @Success      200  {object}  model.ExportResponse
// @Failure      400  {object}  model.ErrorResponse
// @Failure      404  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /wallet/create/{id}/export [post]
func (h *WalletHandler) Export(w http.ResponseWriter, r *http.Request) {
	wz, ok := h.wizard(w, r)
	if !ok {
		return
	}

	var req model.ExportRequest
	if err := readJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeValidation, fmt.Errorf("invalid request: %w", err))
		return
	}

	// Get password as []byte, use it, then zero it immediately
	password := []byte(req.Password)
	req.Password = ""
	defer clear(password)

	if len(password) == 0 {
		writeError(w, http.StatusBadRequest, model.CodeValidation, bitcoin.ErrEmptyPassword)
		return
	}

	network := h.network
	if strings.TrimSpace(req.Network) != "" {
		var err error
		network, err = model.ParseNetwork(req.Network)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.CodeValidation, err)
			return
		}
	}

	var result *bitcoin.Export
	err := wz.Export(func(mnemonic string) error {
		// the store stays locked until the file is written so concurrent
		// exports build on each other instead of on the same snapshot
		return h.store.Update(func(cfg model.ConfigObject) (model.ConfigObject, error) {
			exp, err := bitcoin.CreateAndExportWallet(cfg, mnemonic, req.AccountName, password, network, h.opts)
			if err != nil {
				return cfg, err
			}
			if err := h.exporter.Export(r.Context(), exp.Artifact, exp.ContentType, exp.FileName); err != nil {
				return cfg, fmt.Errorf("failed to export config: %w", err)
			}
			result = exp
			return exp.Config, nil
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, bitcoin.ErrEmptyPassword), errors.Is(err, bitcoin.ErrEmptyAccountName):
			writeError(w, http.StatusBadRequest, model.CodeValidation, err)
		case errors.Is(err, session.ErrWrongStep):
			writeError(w, http.StatusConflict, model.CodeBusy, err)
		case export.IsFileExistsError(err):
			writeError(w, http.StatusConflict, model.CodeFileExists, err)
		case keys.IsDerivationError(err):
			// abort the session, nothing was written
			h.wizards.Discard(wz.ID())
			writeError(w, http.StatusInternalServerError, model.CodeInternal, err)
		default:
			writeError(w, http.StatusInternalServerError, model.CodeInternal, err)
		}
		return
	}

	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Type", result.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifact)
		return
	}

	qrCode, err := bitcoin.XPubQRCode(result.Wallet.XPub)
	if err != nil {
		logging.L.Warn("failed to generate QR code", "err", err)
	}

	writeJSON(w, http.StatusOK, model.ExportResponse{
		Success:           true,
		Message:           "Wallet created and exported successfully",
		WalletID:          result.Wallet.ID,
		XPub:              result.Wallet.XPub,
		ParentFingerprint: result.Wallet.ParentFingerprint,
		FileName:          result.FileName,
		ContentType:       result.ContentType,
		Artifact:          base64.StdEncoding.EncodeToString(result.Artifact),
		QR:                qrCode,
	})
}
