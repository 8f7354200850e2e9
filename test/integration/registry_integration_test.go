package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"clinical-curation-be/internal/entity"
	"clinical-curation-be/internal/repository/specification"
	"clinical-curation-be/internal/repository/unitofwork"
	"clinical-curation-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.FeatureRepository())
	assert.NotNil(t, uow.FeatureVersionRepository())
	assert.NotNil(t, uow.ActiveBindingRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	ctx := context.Background()

	t.Run("Check Feature Ledger Round Trip", func(t *testing.T) {
		featureName := "IT_FEATURE_" + uuid.New().String()[:8]
		featureId := uuid.New()

		uow := uowFactory.NewUnitOfWork(ctx)
		assert.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		feature := &entity.Feature{
			Id:           featureId,
			Name:         featureName,
			Description:  "integration round trip",
			RegisteredAt: time.Now(),
		}
		assert.NoError(t, uow.FeatureRepository().Create(ctx, feature))

		// Advisory lock inside the open transaction
		assert.NoError(t, uow.LockFeature(ctx, featureId))

		version := &entity.FeatureVersion{
			FeatureId:     featureId,
			Version:       1,
			TableName:     featureName + "_V1",
			DefiningQuery: "SELECT 1 AS probe",
			IsLive:        true,
			RegisteredAt:  time.Now(),
		}
		assert.NoError(t, uow.FeatureVersionRepository().Create(ctx, version))
		assert.NoError(t, uow.Commit())

		// Read back outside the transaction
		readUow := uowFactory.NewUnitOfWork(ctx)
		found, err := readUow.FeatureRepository().FindByName(ctx, featureName)
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, featureId, found.Id)
		}

		current, err := readUow.FeatureVersionRepository().CurrentVersion(ctx, featureId)
		assert.NoError(t, err)
		assert.Equal(t, 1, current)

		byTable, err := readUow.FeatureVersionRepository().FindByTableName(ctx, featureName+"_V1")
		assert.NoError(t, err)
		if assert.NotNil(t, byTable) {
			assert.True(t, byTable.IsLive)
		}

		// Cleanup
		cleanup := uowFactory.NewUnitOfWork(ctx)
		assert.NoError(t, cleanup.Begin(ctx))
		assert.NoError(t, cleanup.FeatureVersionRepository().DeleteAllForFeature(ctx, featureId))
		assert.NoError(t, cleanup.FeatureRepository().Delete(ctx, featureId))
		assert.NoError(t, cleanup.Commit())
	})

	t.Run("Check Duplicate Version Rejection", func(t *testing.T) {
		featureName := "IT_DUP_" + uuid.New().String()[:8]
		featureId := uuid.New()

		uow := uowFactory.NewUnitOfWork(ctx)
		assert.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		assert.NoError(t, uow.FeatureRepository().Create(ctx, &entity.Feature{
			Id:           featureId,
			Name:         featureName,
			RegisteredAt: time.Now(),
		}))
		assert.NoError(t, uow.FeatureVersionRepository().Create(ctx, &entity.FeatureVersion{
			FeatureId:     featureId,
			Version:       1,
			TableName:     featureName + "_V1",
			DefiningQuery: "SELECT 1",
			IsLive:        true,
			RegisteredAt:  time.Now(),
		}))

		// Same (feature_id, version) must be refused by the composite key
		err := uow.FeatureVersionRepository().Create(ctx, &entity.FeatureVersion{
			FeatureId:     featureId,
			Version:       1,
			TableName:     featureName + "_V1_OTHER",
			DefiningQuery: "SELECT 2",
			IsLive:        true,
			RegisteredAt:  time.Now(),
		})
		assert.Error(t, err)
	})

	t.Run("Check Binding Counts", func(t *testing.T) {
		featureName := "IT_BIND_" + uuid.New().String()[:8]
		featureId := uuid.New()

		uow := uowFactory.NewUnitOfWork(ctx)
		assert.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		assert.NoError(t, uow.FeatureRepository().Create(ctx, &entity.Feature{
			Id:           featureId,
			Name:         featureName,
			RegisteredAt: time.Now(),
		}))
		assert.NoError(t, uow.FeatureVersionRepository().Create(ctx, &entity.FeatureVersion{
			FeatureId:     featureId,
			Version:       1,
			TableName:     featureName + "_V1",
			DefiningQuery: "SELECT 1",
			IsLive:        true,
			RegisteredAt:  time.Now(),
		}))
		assert.NoError(t, uow.ActiveBindingRepository().Create(ctx, &entity.ActiveBinding{
			Id:         uuid.New(),
			FeatureId:  featureId,
			Version:    1,
			ConsumerId: "integration-consumer",
			BoundAt:    time.Now(),
		}))

		count, err := uow.ActiveBindingRepository().CountForVersion(ctx, featureId, 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)

		bindings, err := uow.ActiveBindingRepository().FindAll(ctx, specification.ByFeatureID{FeatureID: featureId})
		assert.NoError(t, err)
		assert.Len(t, bindings, 1)
	})
}
