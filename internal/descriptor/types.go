package descriptor

import (
	"fmt"
	"path/filepath"
	"time"
)

// Plugin is the static metadata describing one installable plugin
type Plugin struct {
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Version          string     `json:"version"`
	Type             string     `json:"type"`
	Icon             string     `json:"icon"`
	Category         string     `json:"category"`
	Official         bool       `json:"official"`
	Author           string     `json:"author"`
	Compatibility    string     `json:"compatibility"`
	Scope            string     `json:"scope"`
	BundleMethod     string     `json:"bundle_method"`
	BundleLocation   string     `json:"bundle_location"`
	IsLocal          bool       `json:"is_local"`
	LongDescription  string     `json:"long_description"`
	Slug             string     `json:"plugin_slug"`
	SourceType       string     `json:"source_type"`
	SourceURL        string     `json:"source_url"`
	UpdateCheckURL   *string    `json:"update_check_url"`
	LastUpdateCheck  *time.Time `json:"last_update_check"`
	UpdateAvailable  bool       `json:"update_available"`
	LatestVersion    *string    `json:"latest_version"`
	InstallationType string     `json:"installation_type"`
	Permissions      []string   `json:"permissions"`
}

// Module describes one UI capability unit owned by a plugin
type Module struct {
	Name             string                        `json:"name"`
	DisplayName      string                        `json:"display_name"`
	Description      string                        `json:"description"`
	Icon             string                        `json:"icon"`
	Category         string                        `json:"category"`
	Priority         int                           `json:"priority"`
	Props            map[string]any                `json:"props"`
	ConfigFields     map[string]ConfigField        `json:"config_fields"`
	Messages         map[string]any                `json:"messages"`
	RequiredServices map[string]ServiceRequirement `json:"required_services"`
	Dependencies     []string                      `json:"dependencies"`
	Layout           Layout                        `json:"layout"`
	Tags             []string                      `json:"tags"`
}

// ConfigField is a user-editable module setting
type ConfigField struct {
	Type        string `json:"type"` // "text", "boolean", "number"
	Description string `json:"description"`
	Default     any    `json:"default"`
}

// ServiceRequirement names the host service methods a module calls
type ServiceRequirement struct {
	Methods []string `json:"methods"`
	Version string   `json:"version"`
}

// Layout holds grid sizing hints for the host page builder
type Layout struct {
	MinWidth      int `json:"minWidth"`
	MinHeight     int `json:"minHeight"`
	DefaultWidth  int `json:"defaultWidth"`
	DefaultHeight int `json:"defaultHeight"`
}

// SharedPath returns the per-version install location under pluginsRoot
// <pluginsRoot>/shared/<slug>/v<version>
func (p Plugin) SharedPath(pluginsRoot string) string {
	return filepath.Join(pluginsRoot, "shared", p.Slug, "v"+p.Version)
}

// InstanceID identifies a plugin version inside the host process
func (p Plugin) InstanceID() string {
	return fmt.Sprintf("%s_%s", p.Slug, p.Version)
}
