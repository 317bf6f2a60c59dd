package bootstrap

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestListen_EphemeralPort(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "0"

	ln, err := Listen(cfg)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	if ln.Addr().(*net.TCPAddr).Port == 0 {
		t.Error("expected a bound port")
	}
}

func TestServe_LogsPortAndShutsDown(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	cfg := testConfig(t, false)
	cfg.Port = "0"

	ln, err := Listen(cfg)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port

	h := buildTestHandler(t, cfg, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, h, logger)
	}()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/nonexistent")
	if err != nil {
		cancel()
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	entries := logs.FilterMessage("listening").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 listening entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["port"]; got != int64(port) {
		t.Errorf("logged port: got %v, want %d", got, port)
	}
}
