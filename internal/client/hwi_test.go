package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlexZinkM/lily-wallet-setup/internal/model"
)

func TestEnumerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/enumerate" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"fingerprint":"AAA","model":"coldcard","type":"coldcard","path":"0001:0005:00"},{"fingerprint":"BBB","model":"trezor_t"}]`))
	}))
	defer srv.Close()

	devices, err := NewHWIClient(srv.URL+"/", time.Second).Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(devices))
	}
	if devices[0].Fingerprint != "AAA" || devices[0].Path != "0001:0005:00" || devices[1].Model != "trezor_t" {
		t.Fatalf("unexpected devices %+v", devices)
	}
}

func TestEnumerateFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{name: "status", handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{name: "bad json", handler: func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}},
		{name: "timeout", handler: func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			devices, err := NewHWIClient(srv.URL, 50*time.Millisecond).Enumerate(context.Background())
			if !errors.Is(err, ErrEnumerationFailed) {
				t.Fatalf("expected ErrEnumerationFailed, got %v", err)
			}
			if devices != nil {
				t.Fatalf("expected no devices, got %v", devices)
			}
		})
	}
}

func TestEnumerateNullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer srv.Close()

	devices, err := NewHWIClient(srv.URL, time.Second).Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if devices == nil || len(devices) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", devices)
	}
}

func TestGetXPub(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/xpub" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req xpubRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.DeviceType != "coldcard" || req.DevicePath != "p1" || req.Path != MultisigPathMainnet {
			t.Errorf("unexpected body %+v", req)
		}
		w.Write([]byte(`{"xpub":"xpub-test"}`))
	}))
	defer srv.Close()

	device := model.Device{Fingerprint: "AAA", Model: "coldcard", Type: "coldcard", Path: "p1"}
	xpub, err := NewHWIClient(srv.URL, time.Second).GetXPub(context.Background(), device, MultisigPath(model.NetworkMainnet))
	if err != nil {
		t.Fatalf("GetXPub: %v", err)
	}
	if xpub != "xpub-test" {
		t.Fatalf("xpub = %q", xpub)
	}
}

func TestGetXPubEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := NewHWIClient(srv.URL, time.Second).GetXPub(context.Background(), model.Device{Fingerprint: "AAA"}, "m/0"); err == nil {
		t.Fatalf("expected error for empty xpub")
	}
}

func TestMultisigPath(t *testing.T) {
	if MultisigPath(model.NetworkTestnet) != MultisigPathTestnet {
		t.Fatalf("wrong testnet path")
	}
	if MultisigPath(model.NetworkMainnet) != MultisigPathMainnet {
		t.Fatalf("wrong mainnet path")
	}
}
