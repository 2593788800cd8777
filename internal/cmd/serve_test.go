package cmd

import (
	"testing"
	"time"

	"github.com/xdg/hostmcp/internal/config"
	"github.com/xdg/hostmcp/internal/version"
)

func TestDrain(t *testing.T) {
	t.Run("returns when wait finishes", func(t *testing.T) {
		called := false
		drain(func() { called = true }, time.Second)
		if !called {
			t.Error("wait was not called")
		}
	})

	t.Run("gives up after timeout", func(t *testing.T) {
		block := make(chan struct{})
		defer close(block)

		start := time.Now()
		drain(func() { <-block }, 20*time.Millisecond)
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("drain took %s, want about the timeout", elapsed)
		}
	})
}

func TestServeCmd_Registered(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "serve" {
			found = true
		}
	}
	if !found {
		t.Error("serve command not registered")
	}
}

func TestTracingConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Tracing = config.TracingConfig{Endpoint: "otel:4317", Insecure: true, SampleRatio: 0.2}

	got := tracingConfig(cfg)
	if got.ServiceName != "hostmcp" || got.ServiceVersion != version.Version {
		t.Errorf("service = %s %s", got.ServiceName, got.ServiceVersion)
	}
	if got.Endpoint != "otel:4317" || !got.Insecure || got.SampleRatio != 0.2 {
		t.Errorf("tracingConfig() = %+v", got)
	}
}
