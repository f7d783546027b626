package persistence

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/promptdeck/backend/internal/domain/saga"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// newMockDB creates a gorm DB backed by a mocked SQL connection
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormSagaInstanceRepository_FindByID(t *testing.T) {
	t.Run("finds existing instance", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSagaInstanceRepository(gormDB)

		instanceID := uuid.New()
		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "name", "status", "version"}).
			AddRow(instanceID, tenantID, "Order Processing Saga", "PENDING", 1)

		mock.ExpectQuery(`SELECT \* FROM "saga_instances" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, instanceID, 1).
			WillReturnRows(rows)

		inst, err := repo.FindByID(context.Background(), tenantID, instanceID)

		assert.NoError(t, err)
		require.NotNil(t, inst)
		assert.Equal(t, instanceID, inst.ID)
		assert.Equal(t, tenantID, inst.TenantID)
		assert.Equal(t, "Order Processing Saga", inst.Name)
		assert.Equal(t, saga.StatusPending, inst.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing instance", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSagaInstanceRepository(gormDB)

		instanceID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "saga_instances"`).
			WithArgs(tenantID, instanceID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		inst, err := repo.FindByID(context.Background(), tenantID, instanceID)

		assert.Nil(t, inst)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSagaInstanceRepository_Save(t *testing.T) {
	t.Run("rejects tenant mismatch", func(t *testing.T) {
		gormDB, _, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSagaInstanceRepository(gormDB)

		inst, err := saga.NewInstance(uuid.New(), "Order Processing Saga")
		require.NoError(t, err)

		err = repo.Save(context.Background(), uuid.New(), inst)
		assert.Equal(t, shared.ErrTenantMismatch, err)
	})

	t.Run("updates guarded by the prior version", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSagaInstanceRepository(gormDB)

		tenantID := uuid.New()
		inst, err := saga.NewInstance(tenantID, "Order Processing Saga")
		require.NoError(t, err)
		require.NoError(t, inst.Start())
		require.Equal(t, 2, inst.Version)

		mock.ExpectExec(`UPDATE "saga_instances" SET .* WHERE version = \$\d+ AND "id" = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), tenantID, inst)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale aggregate surfaces a version conflict", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSagaInstanceRepository(gormDB)

		tenantID := uuid.New()
		inst, err := saga.NewInstance(tenantID, "Order Processing Saga")
		require.NoError(t, err)
		require.NoError(t, inst.Start())

		// Another writer already moved the row past version 1
		mock.ExpectExec(`UPDATE "saga_instances" SET .* WHERE version = \$\d+ AND "id" = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Save(context.Background(), tenantID, inst)

		assert.Equal(t, shared.ErrVersionConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSagaStepRepository_FindByInstanceID(t *testing.T) {
	t.Run("returns steps ordered by step order", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSagaStepRepository(gormDB)

		tenantID := uuid.New()
		instanceID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "saga_instance_id", "name", "step_order", "status", "max_retries"}).
			AddRow(uuid.New(), tenantID, instanceID, "Reserve Inventory", 1, "PENDING", 3).
			AddRow(uuid.New(), tenantID, instanceID, "Charge Payment", 2, "PENDING", 3)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "saga_steps" WHERE tenant_id = $1 AND saga_instance_id = $2 ORDER BY step_order ASC`)).
			WithArgs(tenantID, instanceID).
			WillReturnRows(rows)

		steps, err := repo.FindByInstanceID(context.Background(), tenantID, instanceID)

		require.NoError(t, err)
		require.Len(t, steps, 2)
		assert.Equal(t, "Reserve Inventory", steps[0].Name)
		assert.Equal(t, 1, steps[0].Order)
		assert.Equal(t, "Charge Payment", steps[1].Name)
		assert.Equal(t, 2, steps[1].Order)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when instance has no steps", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSagaStepRepository(gormDB)

		tenantID := uuid.New()
		instanceID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "saga_steps"`).
			WithArgs(tenantID, instanceID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		steps, err := repo.FindByInstanceID(context.Background(), tenantID, instanceID)

		require.NoError(t, err)
		assert.Empty(t, steps)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSagaLogRepository_Save(t *testing.T) {
	t.Run("rejects tenant mismatch", func(t *testing.T) {
		gormDB, _, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSagaLogRepository(gormDB)

		tenantID := uuid.New()
		log, err := saga.NewLog(tenantID, uuid.New(), uuid.Nil, saga.LogTypeInfo, "created")
		require.NoError(t, err)

		err = repo.Save(context.Background(), uuid.New(), log)
		assert.Equal(t, shared.ErrTenantMismatch, err)
	})
}
