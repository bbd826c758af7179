//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/QuangTung97/eventstore/pkg/integration"
	"github.com/stretchr/testify/assert"
)

func TestProvider_Readonly__GetReadonly_MySQL(t *testing.T) {
	tc := integration.NewTestCase()

	p := NewProvider(tc.DB)
	ctx := p.Readonly(newContext())

	db := GetReadonly(ctx)

	var version string
	err := db.GetContext(ctx, &version, "SELECT VERSION()")
	assert.Equal(t, nil, err)
	assert.NotEqual(t, "", version)
}

func TestProvider_Transact__Multi_Calls_Multi_Levels_MySQL(t *testing.T) {
	tc := integration.NewTestCase()

	var version string

	p := NewProvider(tc.DB)
	err := p.Transact(newContext(), func(ctx context.Context) error {
		return p.Transact(ctx, func(ctx context.Context) error {
			tx := GetExecutor(ctx)

			err := tx.GetContext(ctx, &version, "SELECT VERSION()")
			assert.Equal(t, nil, err)

			return nil
		})
	})
	assert.Equal(t, nil, err)
	assert.NotEqual(t, "", version)
}

func TestStreamRepository_MySQL(t *testing.T) {
	tc := integration.NewTestCase()
	tc.Reset()

	repo := NewStreamRepository(tc.Dialect, DefaultEventStreamsTable)
	ctx := NewProvider(tc.DB).Readonly(newContext())

	err := repo.Insert(ctx, newStreamRow("user-1"))
	assert.Equal(t, nil, err)

	err = repo.Insert(ctx, newStreamRow("user-1"))
	assert.NotEqual(t, nil, err)

	row, err := repo.Find(ctx, "user-1")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, row.Valid)
	assert.Equal(t, "user", row.Stream.Category.String)
}
