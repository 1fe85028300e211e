package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/AlexZinkM/lily-wallet-setup/internal/client"
	"github.com/AlexZinkM/lily-wallet-setup/internal/model"
	"github.com/AlexZinkM/lily-wallet-setup/internal/session"

	"github.com/gorilla/mux"
)

// XPubFetcher reads an extended public key from a hardware wallet
type XPubFetcher interface {
	GetXPub(ctx context.Context, device model.Device, path string) (string, error)
}

// DevicesHandler exposes the device scanner
type DevicesHandler struct {
	scanner *session.Scanner
	xpubs   XPubFetcher
	network model.Network
}

// NewDevicesHandler creates a new DevicesHandler
func NewDevicesHandler(scanner *session.Scanner, xpubs XPubFetcher, network model.Network) *DevicesHandler {
	return &DevicesHandler{
		scanner: scanner,
		xpubs:   xpubs,
		network: network,
	}
}

func (h *DevicesHandler) response(message string) model.DevicesResponse {
	return model.DevicesResponse{
		State:        h.scanner.State().String(),
		CanScan:      h.scanner.CanScan(),
		Active:       h.scanner.Active(),
		Configured:   h.scanner.ConfiguredDevices(),
		Unconfigured: h.scanner.Unconfigured(),
		Message:      message,
	}
}

// List handles GET /devices
// @Summary      List devices
// @Description  Returns configured and detected but unconfigured hardware wallets
// @Tags         devices
// @Produce      json
// @Success      200  {object}  model.DevicesResponse
// @Router       /devices [get]
func (h *DevicesHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.response(""))
}

// Scan handles POST /devices/scan
// @Summary      Scan for devices
// @Description  Enumerates connected hardware wallets and drops those already configured
// @Tags         devices
// @Produce      json
// @Success      200  {object}  model.DevicesResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /devices/scan [post]
func (h *DevicesHandler) Scan(w http.ResponseWriter, r *http.Request) {
	_, err := h.scanner.Scan(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, h.response(""))
	case errors.Is(err, session.ErrScanInProgress):
		writeError(w, http.StatusConflict, model.CodeBusy, err)
	case errors.Is(err, client.ErrEnumerationFailed):
		writeJSON(w, http.StatusOK, h.response(client.ErrEnumerationFailed.Error()))
	default:
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err)
	}
}

// Configure handles POST /devices/{index}/configure
// @Summary      Configure device
// @Description  Imports the multisig xpub of the unconfigured device at index. One device at a time.
// @Tags         devices
// @Produce      json
// @Param        index  path      int  true  "Index in the unconfigured list"
// @Success      200  {object}  model.ConfigureDeviceResponse
// @Failure      400  {object}  model.ErrorResponse
// @Failure      404  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /devices/{index}/configure [post]
func (h *DevicesHandler) Configure(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, model.CodeValidation, fmt.Errorf("invalid device index %q", mux.Vars(r)["index"]))
		return
	}

	path := client.MultisigPath(h.network)
	imported, err := h.scanner.Configure(r.Context(), index, func(ctx context.Context, device model.Device) (model.ImportedDevice, error) {
		xpub, err := h.xpubs.GetXPub(ctx, device, path)
		if err != nil {
			return model.ImportedDevice{}, err
		}
		return model.ImportedDevice{XPub: xpub, DerivationPath: path}, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, session.ErrDeviceActionBusy):
			writeError(w, http.StatusConflict, model.CodeBusy, err)
		case errors.Is(err, session.ErrNoSuchDevice):
			writeError(w, http.StatusNotFound, model.CodeNotFound, err)
		default:
			writeError(w, http.StatusInternalServerError, model.CodeInternal, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.ConfigureDeviceResponse{
		Device:         imported.Device,
		XPub:           imported.XPub,
		DerivationPath: imported.DerivationPath,
	})
}
