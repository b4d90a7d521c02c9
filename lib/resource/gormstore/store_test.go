package gormstore

import (
	"context"
	"testing"
	"time"

	"github.com/donutnomad/stampkit/lib/errors"
	"github.com/donutnomad/stampkit/lib/resource"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库每条连接都是独立的库
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newModel(t *testing.T) *resource.Model {
	t.Helper()
	m := resource.NewModel("notes", New(openDB(t)))
	m.Property("id", resource.TypeSerial)
	m.Property("title", resource.TypeString, resource.Required())
	m.Property("pinned", resource.TypeBoolean)
	m.Property("created_at", resource.TypeDateTime)
	m.Property("created_on", resource.TypeDate)
	require.NoError(t, m.Migrate(context.Background()))
	return m
}

func TestStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	m := newModel(t)

	at := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	r, err := m.Create(ctx, map[string]any{
		"title":      "first",
		"pinned":     true,
		"created_at": at,
		"created_on": at,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.Key().MustGet())

	second, err := m.Create(ctx, map[string]any{"title": "second"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Key().MustGet())

	loaded, err := m.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, loaded.IsNew())
	assert.False(t, loaded.IsDirty())
	assert.Equal(t, "first", loaded.Get("title").MustGet())
	assert.Equal(t, true, loaded.Get("pinned").MustGet())

	createdAt, ok := loaded.Get("created_at").MustGet().(time.Time)
	require.True(t, ok)
	assert.True(t, at.Equal(createdAt))

	createdOn, ok := loaded.Get("created_on").MustGet().(datatypes.Date)
	require.True(t, ok)
	assert.Equal(t, "2024-03-09", time.Time(createdOn).Format(time.DateOnly))
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()
	m := newModel(t)

	r, err := m.Create(ctx, map[string]any{"title": "draft"})
	require.NoError(t, err)

	require.NoError(t, r.Set("title", "final"))
	require.NoError(t, r.Save(ctx))
	assert.False(t, r.IsDirty())

	loaded, err := m.Get(ctx, r.Key().MustGet())
	require.NoError(t, err)
	assert.Equal(t, "final", loaded.Get("title").MustGet())
	assert.True(t, loaded.Get("pinned").IsAbsent())
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	m := newModel(t)
	store := New(openDB(t))
	require.NoError(t, store.Migrate(ctx, m))

	_, err := store.Get(ctx, m, int64(42))
	require.Error(t, err)
	assert.True(t, errors.Is(err, resource.ErrNotFound))
	assert.False(t, errors.Is(err, resource.ErrPersistence))

	err = store.Update(ctx, m, int64(42), map[string]any{"title": "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, resource.ErrNotFound))
}

func TestStore_ConstraintFailureIsPersistenceError(t *testing.T) {
	ctx := context.Background()
	m := newModel(t)

	// 绕过 Resource 的校验，直接由数据库拒绝
	_, err := New(openDB(t)).Create(ctx, m, map[string]any{"title": "no table"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, resource.ErrPersistence))

	_, err = m.Create(ctx, map[string]any{"pinned": true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, resource.ErrValidation))
}

func TestDialect_Column(t *testing.T) {
	d := dialects["postgres"]
	assert.Equal(t, "BIGSERIAL PRIMARY KEY", d.column(resource.Property{Name: "id", Type: resource.TypeSerial, Key: true}))
	assert.Equal(t, "DATE NOT NULL", d.column(resource.Property{Name: "created_on", Type: resource.TypeDate, Required: true}))
	assert.Equal(t, "UUID PRIMARY KEY", d.column(resource.Property{Name: "id", Type: resource.TypeUUID, Key: true}))
}
