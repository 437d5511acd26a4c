package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/braindrive/chat-plugin/internal/descriptor"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrPluginNotFound is returned by Delete when no plugin row matches (user, id)
var ErrPluginNotFound = errors.New("plugin not found for user")

// Store performs plugin and module row operations against a caller-supplied
// database handle. It never opens connections of its own.
type Store struct {
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

// Option customizes a Store
type Option func(*Store)

// WithLogger sets the store logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store
func New(opts ...Option) *Store {
	s := &Store{
		logger: zerolog.Nop(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup finds the plugin row for (userID, slug)
func (s *Store) Lookup(ctx context.Context, db *gorm.DB, userID, slug string) (LookupResult, error) {
	log := s.logger.With().Str("user_id", userID).Str("plugin_slug", slug).Logger()

	var total int64
	if err := db.WithContext(ctx).Model(&PluginRecord{}).Count(&total).Error; err != nil {
		log.Error().Err(err).Msg("database connectivity check failed")
		return LookupResult{}, fmt.Errorf("failed to query plugin table: %w", err)
	}
	log.Debug().Int64("count", total).Msg("database connectivity check")

	var rec PluginRecord
	res := db.WithContext(ctx).
		Select("id", "name", "version", "enabled", "created_at", "updated_at", "plugin_slug").
		Where("user_id = ? AND plugin_slug = ?", userID, slug).
		Limit(1).
		Find(&rec)
	if res.Error != nil {
		log.Error().Err(res.Error).Msg("error checking existing plugin")
		return LookupResult{}, fmt.Errorf("failed to look up plugin: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		log.Debug().Msg("no existing plugin found")
		return LookupResult{Exists: false}, nil
	}

	log.Debug().Str("plugin_id", rec.ID).Msg("found existing plugin")
	return LookupResult{
		Exists:   true,
		PluginID: rec.ID,
		Info: &PluginInfo{
			ID:         rec.ID,
			Name:       rec.Name,
			Version:    rec.Version,
			Enabled:    rec.Enabled,
			CreatedAt:  rec.CreatedAt,
			UpdatedAt:  rec.UpdatedAt,
			PluginSlug: rec.PluginSlug,
		},
	}, nil
}

// Insert creates the plugin row and then one module row per descriptor in a
// single transaction. Any failure, serialization included, rolls back every row.
func (s *Store) Insert(ctx context.Context, db *gorm.DB, userID string, plugin descriptor.Plugin, modules []descriptor.Module) (InsertResult, error) {
	log := s.logger.With().Str("user_id", userID).Str("plugin_slug", plugin.Slug).Logger()
	log.Info().Msg("creating database records")

	var result InsertResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := s.now()

		rec, err := s.pluginRecord(userID, plugin, now)
		if err != nil {
			return err
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to insert plugin record: %w", err)
		}
		log.Info().Str("plugin_id", rec.ID).Msg("created plugin record")

		created := make([]ModuleRef, 0, len(modules))
		for _, m := range modules {
			mrec, err := s.moduleRecord(rec.ID, m, now)
			if err != nil {
				return err
			}
			if err := tx.Create(&mrec).Error; err != nil {
				return fmt.Errorf("failed to insert module record %s: %w", m.Name, err)
			}
			created = append(created, ModuleRef{ID: mrec.ID, Name: mrec.Name, DisplayName: mrec.DisplayName})
			log.Info().Str("plugin_id", rec.ID).Str("module", m.Name).Str("module_id", mrec.ID).Msg("created module record")
		}

		result = InsertResult{PluginID: rec.ID, ModulesCreated: created}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("error creating database records")
		return InsertResult{}, err
	}

	log.Info().Str("plugin_id", result.PluginID).Int("count", len(result.ModulesCreated)).Msg("created modules for plugin")
	return result, nil
}

// Delete removes a user's plugin row together with its module rows. Modules
// are deleted first; the plugin delete is scoped to userID and a miss rolls
// the whole transaction back.
func (s *Store) Delete(ctx context.Context, db *gorm.DB, userID, pluginID string) (DeleteResult, error) {
	log := s.logger.With().Str("user_id", userID).Str("plugin_id", pluginID).Logger()
	log.Info().Msg("deleting database records")

	var deleted []ModuleRef
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted = []ModuleRef{}
		if err := tx.Model(&ModuleRecord{}).
			Select("id", "name").
			Where("plugin_id = ?", pluginID).
			Order("created_at, id").
			Find(&deleted).Error; err != nil {
			return fmt.Errorf("failed to read module records: %w", err)
		}

		if err := tx.Where("plugin_id = ?", pluginID).Delete(&ModuleRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete module records: %w", err)
		}

		res := tx.Where("id = ? AND user_id = ?", pluginID, userID).Delete(&PluginRecord{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete plugin record: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrPluginNotFound
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("error deleting database records")
		return DeleteResult{}, err
	}

	log.Info().Int("count", len(deleted)).Msg("deleted plugin and modules")
	return DeleteResult{DeletedModules: deleted}, nil
}

func (s *Store) pluginRecord(userID string, p descriptor.Plugin, now time.Time) (PluginRecord, error) {
	permissions, err := toJSON("permissions", p.Permissions)
	if err != nil {
		return PluginRecord{}, err
	}
	return PluginRecord{
		ID:               s.newID(),
		UserID:           userID,
		PluginSlug:       p.Slug,
		Name:             p.Name,
		Description:      p.Description,
		Version:          p.Version,
		Type:             p.Type,
		Icon:             p.Icon,
		Category:         p.Category,
		Official:         p.Official,
		Author:           p.Author,
		Compatibility:    p.Compatibility,
		Scope:            p.Scope,
		BundleMethod:     p.BundleMethod,
		BundleLocation:   p.BundleLocation,
		IsLocal:          p.IsLocal,
		LongDescription:  p.LongDescription,
		SourceType:       p.SourceType,
		SourceURL:        p.SourceURL,
		UpdateCheckURL:   p.UpdateCheckURL,
		LastUpdateCheck:  p.LastUpdateCheck,
		UpdateAvailable:  p.UpdateAvailable,
		LatestVersion:    p.LatestVersion,
		InstallationType: p.InstallationType,
		Permissions:      permissions,
		Enabled:          true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func (s *Store) moduleRecord(pluginID string, m descriptor.Module, now time.Time) (ModuleRecord, error) {
	rec := ModuleRecord{
		ID:          s.newID(),
		PluginID:    pluginID,
		Name:        m.Name,
		DisplayName: m.DisplayName,
		Description: m.Description,
		Icon:        m.Icon,
		Category:    m.Category,
		Priority:    m.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	fields := []struct {
		name  string
		value any
		dst   *datatypes.JSON
	}{
		{"props", m.Props, &rec.Props},
		{"config_fields", m.ConfigFields, &rec.ConfigFields},
		{"messages", m.Messages, &rec.Messages},
		{"required_services", m.RequiredServices, &rec.RequiredServices},
		{"dependencies", m.Dependencies, &rec.Dependencies},
		{"layout", m.Layout, &rec.Layout},
		{"tags", m.Tags, &rec.Tags},
	}
	for _, f := range fields {
		data, err := toJSON(f.name, f.value)
		if err != nil {
			return ModuleRecord{}, fmt.Errorf("module %s: %w", m.Name, err)
		}
		*f.dst = data
	}
	return rec, nil
}

// toJSON serializes a structured column. nil maps and slices are stored as
// their empty JSON form so the column is never NULL.
func toJSON(column string, v any) (datatypes.JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", column, err)
	}
	if string(data) == "null" {
		switch v.(type) {
		case []string:
			data = []byte("[]")
		default:
			data = []byte("{}")
		}
	}
	return datatypes.JSON(data), nil
}
