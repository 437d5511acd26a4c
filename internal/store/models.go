package store

import (
	"time"

	"gorm.io/datatypes"
)

// PluginRecord is a row of the host's plugin table
type PluginRecord struct {
	ID               string         `gorm:"column:id;primaryKey;type:varchar(36)"`
	UserID           string         `gorm:"column:user_id;not null;uniqueIndex:idx_plugin_user_slug"`
	PluginSlug       string         `gorm:"column:plugin_slug;not null;uniqueIndex:idx_plugin_user_slug"`
	Name             string         `gorm:"column:name;not null"`
	Description      string         `gorm:"column:description"`
	Version          string         `gorm:"column:version;not null"`
	Type             string         `gorm:"column:type"`
	Icon             string         `gorm:"column:icon"`
	Category         string         `gorm:"column:category"`
	Official         bool           `gorm:"column:official"`
	Author           string         `gorm:"column:author"`
	Compatibility    string         `gorm:"column:compatibility"`
	Scope            string         `gorm:"column:scope"`
	BundleMethod     string         `gorm:"column:bundle_method"`
	BundleLocation   string         `gorm:"column:bundle_location"`
	IsLocal          bool           `gorm:"column:is_local"`
	LongDescription  string         `gorm:"column:long_description"`
	SourceType       string         `gorm:"column:source_type"`
	SourceURL        string         `gorm:"column:source_url"`
	UpdateCheckURL   *string        `gorm:"column:update_check_url"`
	LastUpdateCheck  *time.Time     `gorm:"column:last_update_check"`
	UpdateAvailable  bool           `gorm:"column:update_available"`
	LatestVersion    *string        `gorm:"column:latest_version"`
	InstallationType string         `gorm:"column:installation_type"`
	Permissions      datatypes.JSON `gorm:"column:permissions;type:text"`
	Enabled          bool           `gorm:"column:enabled"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
}

// TableName maps PluginRecord onto the host schema
func (PluginRecord) TableName() string { return "plugin" }

// ModuleRecord is a row of the host's module table, owned by a PluginRecord
type ModuleRecord struct {
	ID               string         `gorm:"column:id;primaryKey;type:varchar(36)"`
	PluginID         string         `gorm:"column:plugin_id;not null;index"`
	Plugin           *PluginRecord  `gorm:"foreignKey:PluginID;references:ID;constraint:OnDelete:RESTRICT"`
	Name             string         `gorm:"column:name;not null"`
	DisplayName      string         `gorm:"column:display_name"`
	Description      string         `gorm:"column:description"`
	Icon             string         `gorm:"column:icon"`
	Category         string         `gorm:"column:category"`
	Priority         int            `gorm:"column:priority"`
	Props            datatypes.JSON `gorm:"column:props;type:text"`
	ConfigFields     datatypes.JSON `gorm:"column:config_fields;type:text"`
	Messages         datatypes.JSON `gorm:"column:messages;type:text"`
	RequiredServices datatypes.JSON `gorm:"column:required_services;type:text"`
	Dependencies     datatypes.JSON `gorm:"column:dependencies;type:text"`
	Layout           datatypes.JSON `gorm:"column:layout;type:text"`
	Tags             datatypes.JSON `gorm:"column:tags;type:text"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
}

// TableName maps ModuleRecord onto the host schema
func (ModuleRecord) TableName() string { return "module" }

// PluginInfo is the metadata snapshot returned by Lookup
type PluginInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Version    string    `json:"version"`
	Enabled    bool      `json:"enabled"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	PluginSlug string    `json:"plugin_slug"`
}

// ModuleRef identifies a module row created or deleted by the store
type ModuleRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
}

// LookupResult reports whether a plugin row exists for a user
type LookupResult struct {
	Exists   bool        `json:"exists"`
	PluginID string      `json:"plugin_id,omitempty"`
	Info     *PluginInfo `json:"plugin_info,omitempty"`
}

// InsertResult is returned by Insert
type InsertResult struct {
	PluginID       string      `json:"plugin_id"`
	ModulesCreated []ModuleRef `json:"modules_created"`
}

// DeleteResult is returned by Delete
type DeleteResult struct {
	DeletedModules []ModuleRef `json:"deleted_modules"`
}
