package readstore

import (
	"context"
	"database/sql"
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

func TestGormViewRepository_FindByID(t *testing.T) {
	t.Run("returns nil without error when view missing", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormViewRepository[saga.InstanceView](gormDB, SagaInstanceViewFields, "created_at")

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "saga_instance_views"`).
			WithArgs(id, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		view, err := repo.FindByID(context.Background(), id)

		require.NoError(t, err)
		assert.Nil(t, view)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("finds existing view", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormViewRepository[saga.InstanceView](gormDB, SagaInstanceViewFields, "created_at")

		id := uuid.New()
		tenantID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "tenant_id", "name", "status"}).
			AddRow(id, tenantID, "Order Processing Saga", "RUNNING")

		mock.ExpectQuery(`SELECT \* FROM "saga_instance_views"`).
			WithArgs(id, 1).
			WillReturnRows(rows)

		view, err := repo.FindByID(context.Background(), id)

		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, id, view.ID)
		assert.Equal(t, saga.StatusRunning, view.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormViewRepository_FindByCriteria(t *testing.T) {
	t.Run("applies whitelisted filters and pagination", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormViewRepository[saga.InstanceView](gormDB, SagaInstanceViewFields, "created_at")

		tenantID := uuid.New()
		criteria := shared.NewCriteria().
			WithFilter("tenant_id", tenantID).
			WithFilter("not_a_column; DROP TABLE", "x").
			WithPage(2, 10)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "saga_instance_views" WHERE tenant_id = \$1`).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "name", "status"}).
			AddRow(uuid.New(), tenantID, "Order Processing Saga", "COMPLETED")
		mock.ExpectQuery(`SELECT \* FROM "saga_instance_views" WHERE tenant_id = \$1 ORDER BY created_at ASC LIMIT \$2 OFFSET \$3`).
			WithArgs(tenantID, 10, 10).
			WillReturnRows(rows)

		page, err := repo.FindByCriteria(context.Background(), criteria)

		require.NoError(t, err)
		assert.Equal(t, int64(25), page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 10, page.PageSize)
		assert.Equal(t, 3, page.TotalPages)
		assert.Len(t, page.Items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown sort field falls back to default", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormViewRepository[saga.InstanceView](gormDB, SagaInstanceViewFields, "created_at")

		criteria := shared.NewCriteria().WithSort("evil_field", shared.SortDesc)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "saga_instance_views"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT \* FROM "saga_instance_views" ORDER BY created_at ASC`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByCriteria(context.Background(), criteria)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "DESC", ValidateSortOrder("DESC"))
	assert.Equal(t, "DESC", ValidateSortOrder(" desc "))
	assert.Equal(t, "ASC", ValidateSortOrder("sideways"))
	assert.Equal(t, "ASC", ValidateSortOrder(""))
}

func TestValidateSortField(t *testing.T) {
	fields := map[string]bool{"name": true, "created_at": true}

	assert.Equal(t, "name", ValidateSortField("name", fields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", fields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("password", fields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("1; DROP TABLE users", fields, "created_at"))
}
