package tui

import (
	"testing"

	"github.com/braindrive/chat-plugin/internal/health"
	"github.com/stretchr/testify/assert"
)

func TestHealthReport(t *testing.T) {
	out := HealthReport("/plugins/shared/BrainDriveChat/v1.0.0", health.Report{
		Healthy: true,
		Details: health.Details{BundleExists: true, BundleSize: 42, ManifestValid: true},
	})
	assert.Contains(t, out, "/plugins/shared/BrainDriveChat/v1.0.0")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "✗")
}

func TestCheck(t *testing.T) {
	ok := Check("bundle", true)
	assert.Contains(t, ok, "✓")
	assert.Contains(t, ok, "bundle")
	assert.NotContains(t, Check("bundle", false), "✓")
}
