package main

import (
	"testing"

	"github.com/gabapcia/chainscope/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestTelemetryOptions(t *testing.T) {
	t.Run("leaves the exporter defaults alone", func(t *testing.T) {
		assert.Empty(t, telemetryOptions(config.Config{}))
	})

	t.Run("passes the collector settings", func(t *testing.T) {
		opts := telemetryOptions(config.Config{OTLPEndpoint: "collector:4317", OTLPInsecure: true})
		assert.Len(t, opts, 2)
	})

	t.Run("passes insecure alone", func(t *testing.T) {
		assert.Len(t, telemetryOptions(config.Config{OTLPInsecure: true}), 1)
	})
}
