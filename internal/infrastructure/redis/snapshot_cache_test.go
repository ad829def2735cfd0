package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-vtr/internal/domain/entity"
	"github.com/jhoicas/Inventario-vtr/internal/domain/repository"
	"github.com/jhoicas/Inventario-vtr/internal/infrastructure/redis"
	"github.com/jhoicas/Inventario-vtr/pkg/civil"
)

// Requiere un Redis real: REDIS_TEST_ADDR=localhost:6379 go test ./internal/infrastructure/redis/
func TestSnapshotCache_GuardaYLee(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR no definido")
	}
	ctx := context.Background()
	client, err := redis.NewClient(ctx, addr, "", 0)
	require.NoError(t, err)
	defer client.Close()

	cache := redis.NewSnapshotCache(client, "inventario-vtr:test:"+time.Now().Format("150405.000"), time.Minute)
	defer cache.Clear(ctx)

	empty, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty)

	in := &repository.Tables{
		Units: []entity.Unit{{ID: "U1", Name: "1º CRBM"}},
		Vehicles: []entity.Vehicle{{
			ID: "V1", Prefix: "ABT", Name: "01",
			Materials: []entity.MaterialItem{{ID: "m1", Name: "Esguicho", Quantity: decimal.RequireFromString("2.5")}},
		}},
		Checks: []entity.InventoryCheck{{ID: "C1", VehicleID: "V1", Date: civil.MustParse("2024-05-10")}},
	}
	require.NoError(t, cache.Save(ctx, in))

	out, err := cache.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "1º CRBM", out.Units[0].Name)
	assert.True(t, out.Vehicles[0].Materials[0].Quantity.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, civil.MustParse("2024-05-10"), out.Checks[0].Date)
}
