package server_test

import (
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/JaimeStill/printmg/internal/config"
	"github.com/JaimeStill/printmg/internal/lifecycle"
	"github.com/JaimeStill/printmg/internal/server"
	"github.com/JaimeStill/printmg/pkg/logging"
)

func TestServer_StartAndShutdown(t *testing.T) {
	cfg := &config.SandboxConfig{
		Host:            "127.0.0.1",
		Port:            0,
		ReadTimeout:     "5s",
		WriteTimeout:    "5s",
		ShutdownTimeout: "5s",
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})

	lc := lifecycle.New()
	srv := server.New(cfg, handler, logging.Discard())
	if err := srv.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	url := "http://" + srv.Addr() + "/"
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s error = %v", url, err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("body = %q, want %q", body, "ok")
	}

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	client := &http.Client{Timeout: time.Second}
	if _, err := client.Get(url); err == nil {
		t.Error("GET after shutdown succeeded, want error")
	}
}

func TestServer_StartReportsBindFailure(t *testing.T) {
	cfg := &config.SandboxConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: "1s"}

	lc := lifecycle.New()
	first := server.New(cfg, http.NotFoundHandler(), logging.Discard())
	if err := first.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer lc.Shutdown(5 * time.Second)

	_, portText, err := net.SplitHostPort(first.Addr())
	if err != nil {
		t.Fatalf("SplitHostPort(%q) error = %v", first.Addr(), err)
	}
	port, _ := strconv.Atoi(portText)
	taken := &config.SandboxConfig{Host: "127.0.0.1", Port: port, ShutdownTimeout: "1s"}

	second := server.New(taken, http.NotFoundHandler(), logging.Discard())
	if err := second.Start(lifecycle.New()); err == nil {
		t.Error("Start() on a bound port succeeded, want error")
	}
}
