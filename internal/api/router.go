package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/AlexZinkM/lily-wallet-setup/bitcoin"
	_ "github.com/AlexZinkM/lily-wallet-setup/docs"
	"github.com/AlexZinkM/lily-wallet-setup/internal/client"
	"github.com/AlexZinkM/lily-wallet-setup/internal/config"
	"github.com/AlexZinkM/lily-wallet-setup/internal/export"
	"github.com/AlexZinkM/lily-wallet-setup/internal/handler"
	"github.com/AlexZinkM/lily-wallet-setup/internal/logging"
	"github.com/AlexZinkM/lily-wallet-setup/internal/model"
	"github.com/AlexZinkM/lily-wallet-setup/internal/session"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups the HTTP handlers served by the router
type Handlers struct {
	Wallet  *handler.WalletHandler
	Devices *handler.DevicesHandler
	Config  *handler.ConfigHandler
}

// SetupRouter sets up router with handlers built from the global configuration
func SetupRouter() (http.Handler, error) {
	if config.GetHWIBackendURL() == "" {
		return nil, errors.New("HWI_BACKEND_URL not set")
	}

	network := config.GetNetwork()
	hwi := client.NewHWIClient(config.GetHWIBackendURL(), config.GetEnumerateTimeout())
	store := session.NewConfigStore(model.NewConfigObject())

	opts := bitcoin.ExportOptions{
		Format: config.GetExportFormat(),
		Params: config.GetScryptParams(),
	}

	return NewRouter(Handlers{
		Wallet:  handler.NewWalletHandler(session.NewWizards(bitcoin.NewMnemonic), store, export.NewDirExporter(config.GetExportDir()), network, opts),
		Devices: handler.NewDevicesHandler(session.NewScanner(hwi, config.GetDeviceThreshold()), hwi, network),
		Config:  handler.NewConfigHandler(store),
	}), nil
}

// NewRouter registers h on a gorilla/mux router
func NewRouter(h Handlers) http.Handler {
	r := mux.NewRouter()
	r.Use(logRequests)

	// Swagger UI
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("OK")) }).Methods("GET")

	// Device endpoints
	r.HandleFunc("/devices", h.Devices.List).Methods("GET")
	r.HandleFunc("/devices/scan", h.Devices.Scan).Methods("POST")
	r.HandleFunc("/devices/{index:[0-9]+}/configure", h.Devices.Configure).Methods("POST")

	// Wallet creation endpoints
	r.HandleFunc("/wallet/create", h.Wallet.Start).Methods("POST")
	r.HandleFunc("/wallet/create/{id}", h.Wallet.Get).Methods("GET")
	r.HandleFunc("/wallet/create/{id}/confirm", h.Wallet.Confirm).Methods("POST")
	r.HandleFunc("/wallet/create/{id}/restart", h.Wallet.Restart).Methods("POST")
	r.HandleFunc("/wallet/create/{id}/export", h.Wallet.Export).Methods("POST")

	// Configuration endpoints
	r.HandleFunc("/config", h.Config.Get).Methods("GET")
	r.HandleFunc("/config/open", h.Config.Open).Methods("POST")

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.L.Info("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}
