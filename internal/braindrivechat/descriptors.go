package braindrivechat

import (
	"github.com/braindrive/chat-plugin/internal/descriptor"
)

const (
	// Slug is the plugin's stable identifier
	Slug = "BrainDriveChat"
	// Version is the plugin version shipped by this installer
	Version = "1.0.0"

	initialGreeting = "Hello! I'm your AI assistant. How can I help you today?"
)

// PluginDescriptor returns the BrainDriveChat plugin metadata
func PluginDescriptor() descriptor.Plugin {
	return descriptor.Plugin{
		Name:             "BrainDriveChat",
		Description:      "Comprehensive AI chat interface with model selection and conversation history",
		Version:          Version,
		Type:             "frontend",
		Icon:             "MessageSquare",
		Category:         "ai",
		Official:         true,
		Author:           "BrainDrive",
		Compatibility:    "1.0.0",
		Scope:            "BrainDriveChat",
		BundleMethod:     "webpack",
		BundleLocation:   "dist/remoteEntry.js",
		IsLocal:          false,
		LongDescription:  "A unified AI chat interface that combines AI prompt chat, model selection, and conversation history management in a single, responsive plugin with light/dark theme support.",
		Slug:             Slug,
		SourceType:       "local",
		SourceURL:        "local://BrainDriveChat",
		UpdateAvailable:  false,
		InstallationType: "local",
		Permissions:      []string{"storage.read", "storage.write", "api.access"},
	}
}

// ModuleDescriptors returns the modules BrainDriveChat exposes to the host
func ModuleDescriptors() []descriptor.Module {
	return []descriptor.Module{
		{
			Name:        "BrainDriveChat",
			DisplayName: "AI Chat Interface",
			Description: "Complete AI chat interface with model selection and conversation history",
			Icon:        "MessageSquare",
			Category:    "ai",
			Priority:    1,
			Props: map[string]any{
				"initialGreeting":      initialGreeting,
				"defaultStreamingMode": true,
				"promptQuestion":       "What would you like to know?",
			},
			ConfigFields: map[string]descriptor.ConfigField{
				"initial_greeting": {
					Type:        "text",
					Description: "Initial greeting message from AI",
					Default:     initialGreeting,
				},
				"enable_streaming": {
					Type:        "boolean",
					Description: "Enable streaming responses by default",
					Default:     true,
				},
				"max_conversation_history": {
					Type:        "number",
					Description: "Maximum number of conversations to show in history",
					Default:     50,
				},
				"auto_save_conversations": {
					Type:        "boolean",
					Description: "Automatically save conversations",
					Default:     true,
				},
				"show_model_selection": {
					Type:        "boolean",
					Description: "Show model selection dropdown",
					Default:     true,
				},
				"show_conversation_history": {
					Type:        "boolean",
					Description: "Show conversation history panel",
					Default:     true,
				},
			},
			Messages: map[string]any{},
			RequiredServices: map[string]descriptor.ServiceRequirement{
				"api":      {Methods: []string{"get", "post", "put", "delete"}, Version: "1.0.0"},
				"event":    {Methods: []string{"sendMessage", "subscribeToMessages"}, Version: "1.0.0"},
				"theme":    {Methods: []string{"getCurrentTheme", "addThemeChangeListener"}, Version: "1.0.0"},
				"settings": {Methods: []string{"get", "set"}, Version: "1.0.0"},
			},
			Dependencies: []string{},
			Layout: descriptor.Layout{
				MinWidth:      6,
				MinHeight:     6,
				DefaultWidth:  8,
				DefaultHeight: 8,
			},
			Tags: []string{"ai", "chat", "conversation", "assistant", "model-selection", "history"},
		},
	}
}
