package search

import (
	"testing"

	"github.com/braindrive/chat-plugin/internal/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modules() []descriptor.Module {
	return []descriptor.Module{
		{Name: "HistoryPanel", DisplayName: "Conversation History", Category: "ai", Priority: 3, Tags: []string{"history"}},
		{Name: "BrainDriveChat", DisplayName: "AI Chat Interface", Category: "ai", Priority: 1, Tags: []string{"chat", "assistant"}},
		{Name: "ModelPicker", DisplayName: "Model Selection", Category: "settings", Priority: 2, Tags: []string{"model-selection"}},
	}
}

func TestFuzzySearchEmptyQueryOrdersByPriority(t *testing.T) {
	results := FuzzySearch(modules(), "  ")
	require.Len(t, results, 3)
	assert.Equal(t, "BrainDriveChat", results[0].Module.Name)
	assert.Equal(t, "ModelPicker", results[1].Module.Name)
	assert.Equal(t, "HistoryPanel", results[2].Module.Name)
}

func TestFuzzySearch(t *testing.T) {
	results := FuzzySearch(modules(), "BrainDrive")
	require.NotEmpty(t, results)
	assert.Equal(t, "BrainDriveChat", results[0].Module.Name)

	assert.Empty(t, FuzzySearch(modules(), "zzzzqqq"))
}

func TestSimpleSearch(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"chat", []string{"BrainDriveChat"}},
		{"AI", []string{"HistoryPanel", "BrainDriveChat"}},
		{"model-selection", []string{"ModelPicker"}},
		{"settings", []string{"ModelPicker"}},
		{"nothing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got []string
			for _, r := range SimpleSearch(modules(), tt.query) {
				got = append(got, r.Module.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
