package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/braindrive/chat-plugin/internal/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"pgregory.net/rapid"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "plugins.db"), false)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { Close(db) })
	return db
}

func testPlugin() descriptor.Plugin {
	return descriptor.Plugin{
		Name:        "TestPlugin",
		Version:     "2.1.0",
		Slug:        "TestPlugin",
		Type:        "frontend",
		Permissions: []string{"storage.read", "api.access"},
	}
}

func testModules() []descriptor.Module {
	return []descriptor.Module{
		{
			Name:        "Viewer",
			DisplayName: "Viewer Module",
			Priority:    1,
			Props:       map[string]any{"greeting": "hi"},
			ConfigFields: map[string]descriptor.ConfigField{
				"enabled": {Type: "boolean", Description: "Enable", Default: true},
			},
			Layout: descriptor.Layout{MinWidth: 2, MinHeight: 2, DefaultWidth: 4, DefaultHeight: 4},
			Tags:   []string{"view", "test"},
		},
		{
			Name:        "Editor",
			DisplayName: "Editor Module",
			Priority:    2,
		},
	}
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestInsertThenLookup(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return fixed }))

	inserted, err := s.Insert(ctx, db, "u1", testPlugin(), testModules())
	require.NoError(t, err)
	require.NotEmpty(t, inserted.PluginID)
	require.Len(t, inserted.ModulesCreated, 2)
	assert.Equal(t, "Viewer", inserted.ModulesCreated[0].Name)
	assert.Equal(t, "Viewer Module", inserted.ModulesCreated[0].DisplayName)
	assert.Equal(t, "Editor", inserted.ModulesCreated[1].Name)

	found, err := s.Lookup(ctx, db, "u1", "TestPlugin")
	require.NoError(t, err)
	assert.True(t, found.Exists)
	assert.Equal(t, inserted.PluginID, found.PluginID)
	require.NotNil(t, found.Info)
	assert.Equal(t, "TestPlugin", found.Info.Name)
	assert.Equal(t, "2.1.0", found.Info.Version)
	assert.True(t, found.Info.Enabled)
	assert.True(t, fixed.Equal(found.Info.CreatedAt))

	other, err := s.Lookup(ctx, db, "u2", "TestPlugin")
	require.NoError(t, err)
	assert.False(t, other.Exists)
	assert.Nil(t, other.Info)
}

func TestInsert_SerializesStructuredColumns(t *testing.T) {
	db := openTestDB(t)
	s := New()

	inserted, err := s.Insert(context.Background(), db, "u1", testPlugin(), testModules())
	require.NoError(t, err)

	var plugin PluginRecord
	require.NoError(t, db.First(&plugin, "id = ?", inserted.PluginID).Error)
	var perms []string
	require.NoError(t, json.Unmarshal(plugin.Permissions, &perms))
	assert.Equal(t, []string{"storage.read", "api.access"}, perms)

	var viewer ModuleRecord
	require.NoError(t, db.First(&viewer, "plugin_id = ? AND name = ?", inserted.PluginID, "Viewer").Error)
	var layout descriptor.Layout
	require.NoError(t, json.Unmarshal(viewer.Layout, &layout))
	assert.Equal(t, 4, layout.DefaultWidth)
	var tags []string
	require.NoError(t, json.Unmarshal(viewer.Tags, &tags))
	assert.Equal(t, []string{"view", "test"}, tags)

	var editor ModuleRecord
	require.NoError(t, db.First(&editor, "plugin_id = ? AND name = ?", inserted.PluginID, "Editor").Error)
	assert.JSONEq(t, `{}`, string(editor.Props))
	assert.JSONEq(t, `[]`, string(editor.Tags))
}

func TestInsert_DuplicateRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := New()

	_, err := s.Insert(ctx, db, "u1", testPlugin(), testModules())
	require.NoError(t, err)

	_, err = s.Insert(ctx, db, "u1", testPlugin(), testModules())
	require.Error(t, err)

	assert.Equal(t, int64(1), countRows(t, db, &PluginRecord{}))
	assert.Equal(t, int64(2), countRows(t, db, &ModuleRecord{}))
}

func TestInsert_SerializationErrorRollsBack(t *testing.T) {
	db := openTestDB(t)
	modules := testModules()
	modules[1].Props = map[string]any{"callback": make(chan int)}

	_, err := New().Insert(context.Background(), db, "u1", testPlugin(), modules)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to serialize props")

	assert.Equal(t, int64(0), countRows(t, db, &PluginRecord{}))
	assert.Equal(t, int64(0), countRows(t, db, &ModuleRecord{}))
}

func TestDelete_RemovesPluginAndModules(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := New()

	inserted, err := s.Insert(ctx, db, "u1", testPlugin(), testModules())
	require.NoError(t, err)
	_, err = s.Insert(ctx, db, "u2", testPlugin(), testModules())
	require.NoError(t, err)

	deleted, err := s.Delete(ctx, db, "u1", inserted.PluginID)
	require.NoError(t, err)
	names := []string{}
	for _, m := range deleted.DeletedModules {
		names = append(names, m.Name)
		assert.NotEmpty(t, m.ID)
	}
	assert.ElementsMatch(t, []string{"Viewer", "Editor"}, names)

	found, err := s.Lookup(ctx, db, "u1", "TestPlugin")
	require.NoError(t, err)
	assert.False(t, found.Exists)

	// u2's install is untouched
	assert.Equal(t, int64(1), countRows(t, db, &PluginRecord{}))
	assert.Equal(t, int64(2), countRows(t, db, &ModuleRecord{}))
}

func TestDelete_WrongUserRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := New()

	inserted, err := s.Insert(ctx, db, "u1", testPlugin(), testModules())
	require.NoError(t, err)

	_, err = s.Delete(ctx, db, "intruder", inserted.PluginID)
	require.ErrorIs(t, err, ErrPluginNotFound)

	assert.Equal(t, int64(1), countRows(t, db, &PluginRecord{}))
	assert.Equal(t, int64(2), countRows(t, db, &ModuleRecord{}), "module deletion must be rolled back")
}

func TestPluginRowCannotBeDeletedBeforeModules(t *testing.T) {
	db := openTestDB(t)

	inserted, err := New().Insert(context.Background(), db, "u1", testPlugin(), testModules())
	require.NoError(t, err)

	err = db.Where("id = ?", inserted.PluginID).Delete(&PluginRecord{}).Error
	assert.Error(t, err, "foreign key must reject orphaning module rows")
}

// TestStore_Property_InsertLookupDelete checks that Lookup agrees with Insert and
// Delete for arbitrary users and that (user, slug) stays unique.
func TestStore_Property_InsertLookupDelete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	s := New()

	rapid.Check(t, func(rt *rapid.T) {
		require.NoError(rt, db.Where("1 = 1").Delete(&ModuleRecord{}).Error)
		require.NoError(rt, db.Where("1 = 1").Delete(&PluginRecord{}).Error)

		users := rapid.SliceOfNDistinct(rapid.StringMatching(`u[a-z0-9]{1,6}`), 1, 5, rapid.ID[string]).Draw(rt, "users")
		ids := map[string]string{}

		for _, u := range users {
			inserted, err := s.Insert(ctx, db, u, testPlugin(), testModules())
			require.NoError(rt, err)
			ids[u] = inserted.PluginID

			_, err = s.Insert(ctx, db, u, testPlugin(), testModules())
			require.Error(rt, err)
		}

		var plugins int64
		require.NoError(rt, db.Model(&PluginRecord{}).Count(&plugins).Error)
		assert.Equal(rt, int64(len(users)), plugins)

		for _, u := range users {
			found, err := s.Lookup(ctx, db, u, "TestPlugin")
			require.NoError(rt, err)
			assert.True(rt, found.Exists)
			assert.Equal(rt, ids[u], found.PluginID)

			deleted, err := s.Delete(ctx, db, u, ids[u])
			require.NoError(rt, err)
			assert.Len(rt, deleted.DeletedModules, 2)

			found, err = s.Lookup(ctx, db, u, "TestPlugin")
			require.NoError(rt, err)
			assert.False(rt, found.Exists)
		}
	})
}
