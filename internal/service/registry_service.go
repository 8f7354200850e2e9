// FILE: internal/service/registry_service.go
// Feature registry orchestration: turns a named, versioned SQL definition
// into a physical table, tracks lineage, and supersedes old versions.
package service

import (
	"context"
	"fmt"
	"time"

	"clinical-curation-be/internal/dto"
	"clinical-curation-be/internal/entity"
	"clinical-curation-be/internal/pkg/logger"
	"clinical-curation-be/internal/repository/implementation"
	"clinical-curation-be/internal/repository/memory"
	"clinical-curation-be/internal/repository/specification"
	"clinical-curation-be/internal/repository/unitofwork"
	"clinical-curation-be/pkg/events"
	"clinical-curation-be/pkg/warehouse"

	"github.com/google/uuid"
)

type IRegistryService interface {
	RegisterFeature(ctx context.Context, req *dto.RegisterFeatureRequest) (*dto.RegisterFeatureResponse, error)
	UpdateFeature(ctx context.Context, req *dto.UpdateFeatureRequest) (*dto.UpdateFeatureResponse, error)
	RefreshFeature(ctx context.Context, featureID uuid.UUID) (*dto.RefreshFeatureResponse, error)
	RemoveLatestVersion(ctx context.Context, featureID uuid.UUID, force bool) error
	DeleteFeature(ctx context.Context, featureID uuid.UUID, force bool) error

	GetAllFeatures(ctx context.Context) ([]*dto.FeatureSummaryResponse, error)
	GetFeature(ctx context.Context, featureID uuid.UUID) (*dto.FeatureDetailResponse, error)
	GetLatestVersion(ctx context.Context, featureID uuid.UUID) (*dto.FeatureVersionResponse, error)
	ResolveFeatureName(ctx context.Context, name string) (uuid.UUID, error)
	ResolveTableName(ctx context.Context, tableName string) (*dto.TableLineageResponse, error)
}

type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type registryService struct {
	uowFactory unitofwork.RepositoryFactory
	engine     warehouse.Engine
	nameCache  *memory.ResolutionCache
	eventPub   IEventPublisher
	logger     logger.ILogger
}

func NewRegistryService(
	uowFactory unitofwork.RepositoryFactory,
	engine warehouse.Engine,
	nameCache *memory.ResolutionCache,
	eventPub IEventPublisher,
	sysLogger logger.ILogger,
) IRegistryService {
	return &registryService{
		uowFactory: uowFactory,
		engine:     engine,
		nameCache:  nameCache,
		eventPub:   eventPub,
		logger:     sysLogger,
	}
}

// RegisterFeature creates the feature (idempotent under ExistenceOk) and
// materializes its first version. The catalog row and the ledger entry live
// in one metadata transaction, so a failed table creation rolls both back
// and the "no durable change on error" contract holds.
func (s *registryService) RegisterFeature(ctx context.Context, req *dto.RegisterFeatureRequest) (*dto.RegisterFeatureResponse, error) {
	name := warehouse.NormalizeFeatureName(req.Name)
	if err := warehouse.ValidateIdentifier(name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, err.Error())
	}
	if err := warehouse.ValidateQueryText(req.DefiningQuery); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, err.Error())
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.FeatureRepository().FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if !req.ExistenceOk {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFeature, name)
		}
		latest, err := uow.FeatureVersionRepository().Latest(ctx, existing.Id)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			// Idempotent path: hand back the unchanged latest version.
			s.nameCache.Put(name, existing.Id)
			return &dto.RegisterFeatureResponse{
				FeatureId: existing.Id,
				Version:   latest.Version,
				TableName: latest.TableName,
				Existed:   true,
			}, nil
		}
		// Catalog row without any version should not occur; repair by
		// materializing version 1 below.
	}

	feature := existing
	if feature == nil {
		feature = &entity.Feature{
			Id:           uuid.New(),
			Name:         name,
			Description:  req.Description,
			Format:       req.Format,
			RegisteredAt: time.Now(),
		}
		if err := uow.FeatureRepository().Create(ctx, feature); err != nil {
			if implementation.IsUniqueViolation(err) {
				// Lost a race on the name; the other writer owns it now.
				return nil, fmt.Errorf("%w: %s", ErrDuplicateFeature, name)
			}
			return nil, err
		}
	}

	if err := uow.LockFeature(ctx, feature.Id); err != nil {
		return nil, err
	}

	version, err := s.materializeNextVersion(ctx, uow, feature, req.DefiningQuery, req.RefreshPolicy, "initial registration")
	if err != nil {
		return nil, err
	}

	if err := s.commitOrDropTable(uow, version.TableName); err != nil {
		return nil, err
	}

	s.nameCache.Put(name, feature.Id)
	s.publish(ctx, events.NewFeatureCreated(feature.Id, name, version.TableName))
	s.logger.Info("registry", "feature registered", map[string]interface{}{
		"feature_id": feature.Id.String(),
		"name":       name,
		"table":      version.TableName,
	})

	return &dto.RegisterFeatureResponse{
		FeatureId: feature.Id,
		Version:   version.Version,
		TableName: version.TableName,
	}, nil
}

// UpdateFeature registers a new version for an existing feature and
// supersedes the previous latest, or (Overwrite) rebuilds the latest version
// in place, discarding its history.
func (s *registryService) UpdateFeature(ctx context.Context, req *dto.UpdateFeatureRequest) (*dto.UpdateFeatureResponse, error) {
	if err := warehouse.ValidateQueryText(req.DefiningQuery); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, err.Error())
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.LockFeature(ctx, req.Id); err != nil {
		return nil, err
	}

	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, fmt.Errorf("%w: feature %s", ErrNotFound, req.Id)
	}

	latest, err := uow.FeatureVersionRepository().Latest(ctx, feature.Id)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: feature %s has no versions", ErrNotFound, req.Id)
	}

	if !req.ForceNewVersion {
		priors, err := uow.FeatureVersionRepository().FindAll(ctx, specification.ByFeatureID{FeatureID: feature.Id})
		if err != nil {
			return nil, err
		}
		for _, prior := range priors {
			if prior.DefiningQuery == req.DefiningQuery {
				return nil, fmt.Errorf("%w: matches version %d", ErrNoOpUpdate, prior.Version)
			}
		}
	}

	if req.Overwrite {
		return s.overwriteLatest(ctx, uow, feature, latest, req)
	}

	version, err := s.materializeNextVersion(ctx, uow, feature, req.DefiningQuery, req.RefreshPolicy, req.ChangeDescription)
	if err != nil {
		return nil, err
	}

	// Supersede the previous latest. The suspend keeps the old table's last
	// materialized rows for audit and rollback; it is never dropped here.
	if s.engine.SupportsSuspend() {
		stmt, err := warehouse.SuspendTable(latest.TableName)
		if err != nil {
			s.dropTableQuietly(ctx, version.TableName)
			return nil, err
		}
		if err := s.engine.Run(ctx, stmt); err != nil {
			s.dropTableQuietly(ctx, version.TableName)
			return nil, err
		}
	}
	if err := uow.FeatureVersionRepository().MarkSuperseded(ctx, feature.Id, latest.Version); err != nil {
		s.dropTableQuietly(ctx, version.TableName)
		return nil, err
	}

	if err := s.commitOrDropTable(uow, version.TableName); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewVersionRegistered(feature.Id, version.Version, version.TableName))
	s.publish(ctx, events.NewVersionSuperseded(feature.Id, latest.Version, latest.TableName))
	s.logger.Info("registry", "feature updated", map[string]interface{}{
		"feature_id": feature.Id.String(),
		"version":    version.Version,
		"superseded": latest.Version,
	})

	return &dto.UpdateFeatureResponse{
		FeatureId: feature.Id,
		Version:   version.Version,
		TableName: version.TableName,
	}, nil
}

// overwriteLatest drops and rebuilds the latest version's table under the
// same name and rewrites its ledger row. No new version number is allocated.
func (s *registryService) overwriteLatest(ctx context.Context, uow unitofwork.UnitOfWork, feature *entity.Feature, latest *entity.FeatureVersion, req *dto.UpdateFeatureRequest) (*dto.UpdateFeatureResponse, error) {
	if err := s.rebuildTable(ctx, latest.TableName, req.DefiningQuery, req.RefreshPolicy); err != nil {
		return nil, err
	}

	latest.DefiningQuery = req.DefiningQuery
	latest.ChangeDescription = req.ChangeDescription
	latest.RefreshPolicy = req.RefreshPolicy
	latest.RegisteredAt = time.Now()
	if err := uow.FeatureVersionRepository().Update(ctx, latest); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewVersionOverwritten(feature.Id, latest.Version, latest.TableName))
	s.logger.Warn("registry", "feature version overwritten in place", map[string]interface{}{
		"feature_id": feature.Id.String(),
		"version":    latest.Version,
		"table":      latest.TableName,
	})

	return &dto.UpdateFeatureResponse{
		FeatureId:   feature.Id,
		Version:     latest.Version,
		TableName:   latest.TableName,
		Overwritten: true,
	}, nil
}

// RefreshFeature re-executes the latest version's stored defining query
// against a dropped-and-recreated table of the same name. No version bump;
// only the timestamp moves. For when upstream data, not logic, changed.
func (s *registryService) RefreshFeature(ctx context.Context, featureID uuid.UUID) (*dto.RefreshFeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.LockFeature(ctx, featureID); err != nil {
		return nil, err
	}

	latest, err := uow.FeatureVersionRepository().Latest(ctx, featureID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: feature %s", ErrNotFound, featureID)
	}

	if err := s.rebuildTable(ctx, latest.TableName, latest.DefiningQuery, latest.RefreshPolicy); err != nil {
		return nil, err
	}

	latest.RegisteredAt = time.Now()
	if err := uow.FeatureVersionRepository().Update(ctx, latest); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewFeatureRefreshed(featureID, latest.Version, latest.TableName))

	return &dto.RefreshFeatureResponse{
		FeatureId:   featureID,
		Version:     latest.Version,
		TableName:   latest.TableName,
		RefreshedAt: latest.RegisteredAt,
	}, nil
}

// RemoveLatestVersion deletes the ledger entry for the current latest
// version and drops its table; version 1 cascades to the catalog row.
// Intended only for erroneous registrations.
func (s *registryService) RemoveLatestVersion(ctx context.Context, featureID uuid.UUID, force bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.LockFeature(ctx, featureID); err != nil {
		return err
	}

	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: featureID})
	if err != nil {
		return err
	}
	if feature == nil {
		return fmt.Errorf("%w: feature %s", ErrNotFound, featureID)
	}

	latest, err := uow.FeatureVersionRepository().Latest(ctx, featureID)
	if err != nil {
		return err
	}
	if latest == nil {
		return fmt.Errorf("%w: feature %s has no versions", ErrNotFound, featureID)
	}

	if !force {
		bound, err := uow.ActiveBindingRepository().CountForVersion(ctx, featureID, latest.Version)
		if err != nil {
			return err
		}
		if bound > 0 {
			return fmt.Errorf("%w: version %d has %d bindings", ErrVersionBound, latest.Version, bound)
		}
	}

	// Drop first: DROP IF EXISTS is idempotent, so a metadata failure after
	// it leaves the operation retryable rather than leaving a ledger row
	// whose table is gone for good without a path back.
	stmt, err := warehouse.DropTable(latest.TableName)
	if err != nil {
		return err
	}
	if err := s.engine.Run(ctx, stmt); err != nil {
		return err
	}

	if err := uow.FeatureVersionRepository().Delete(ctx, featureID, latest.Version); err != nil {
		return err
	}
	if latest.Version == 1 {
		if err := uow.FeatureRepository().Delete(ctx, featureID); err != nil {
			return err
		}
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if latest.Version == 1 {
		s.nameCache.Forget(feature.Name)
	}
	s.publish(ctx, events.NewVersionRemoved(featureID, latest.Version, latest.TableName))
	s.logger.Info("registry", "latest version removed", map[string]interface{}{
		"feature_id": featureID.String(),
		"version":    latest.Version,
	})
	return nil
}

// DeleteFeature is the unconditional full teardown: every table, every
// ledger entry, then the catalog row.
func (s *registryService) DeleteFeature(ctx context.Context, featureID uuid.UUID, force bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.LockFeature(ctx, featureID); err != nil {
		return err
	}

	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: featureID})
	if err != nil {
		return err
	}
	if feature == nil {
		return fmt.Errorf("%w: feature %s", ErrNotFound, featureID)
	}

	if !force {
		bound, err := uow.ActiveBindingRepository().CountForFeature(ctx, featureID)
		if err != nil {
			return err
		}
		if bound > 0 {
			return fmt.Errorf("%w: feature has %d bindings", ErrVersionBound, bound)
		}
	}

	versions, err := uow.FeatureVersionRepository().FindAll(ctx, specification.ByFeatureID{FeatureID: featureID})
	if err != nil {
		return err
	}

	for _, v := range versions {
		stmt, err := warehouse.DropTable(v.TableName)
		if err != nil {
			return err
		}
		if err := s.engine.Run(ctx, stmt); err != nil {
			return err
		}
	}

	if err := uow.FeatureVersionRepository().DeleteAllForFeature(ctx, featureID); err != nil {
		return err
	}
	if err := uow.FeatureRepository().Delete(ctx, featureID); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.nameCache.Forget(feature.Name)
	s.publish(ctx, events.NewFeatureDeleted(featureID, feature.Name))
	s.logger.Info("registry", "feature deleted", map[string]interface{}{
		"feature_id": featureID.String(),
		"name":       feature.Name,
		"versions":   len(versions),
	})
	return nil
}

// --- reads ---

func (s *registryService) GetAllFeatures(ctx context.Context) ([]*dto.FeatureSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	features, err := uow.FeatureRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.FeatureSummaryResponse, 0, len(features))
	for _, f := range features {
		result = append(result, &dto.FeatureSummaryResponse{
			FeatureId:    f.Id,
			Name:         f.Name,
			Description:  f.Description,
			RegisteredAt: f.RegisteredAt,
		})
	}
	return result, nil
}

func (s *registryService) GetFeature(ctx context.Context, featureID uuid.UUID) (*dto.FeatureDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: featureID})
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, fmt.Errorf("%w: feature %s", ErrNotFound, featureID)
	}
	versions, err := uow.FeatureVersionRepository().FindAll(ctx, specification.ByFeatureID{FeatureID: featureID})
	if err != nil {
		return nil, err
	}

	res := &dto.FeatureDetailResponse{
		FeatureId:    feature.Id,
		Name:         feature.Name,
		Description:  feature.Description,
		Format:       feature.Format,
		RegisteredAt: feature.RegisteredAt,
		Versions:     make([]*dto.FeatureVersionResponse, 0, len(versions)),
	}
	for _, v := range versions {
		res.Versions = append(res.Versions, versionResponse(v))
	}
	return res, nil
}

func (s *registryService) GetLatestVersion(ctx context.Context, featureID uuid.UUID) (*dto.FeatureVersionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	latest, err := uow.FeatureVersionRepository().Latest(ctx, featureID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: feature %s", ErrNotFound, featureID)
	}
	return versionResponse(latest), nil
}

func (s *registryService) ResolveFeatureName(ctx context.Context, name string) (uuid.UUID, error) {
	normalized := warehouse.NormalizeFeatureName(name)
	if id, ok := s.nameCache.Get(normalized); ok {
		return id, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	feature, err := uow.FeatureRepository().FindByName(ctx, normalized)
	if err != nil {
		return uuid.Nil, err
	}
	if feature == nil {
		return uuid.Nil, fmt.Errorf("%w: feature %q", ErrNotFound, normalized)
	}
	s.nameCache.Put(normalized, feature.Id)
	return feature.Id, nil
}

func (s *registryService) ResolveTableName(ctx context.Context, tableName string) (*dto.TableLineageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	version, err := uow.FeatureVersionRepository().FindByTableName(ctx, tableName)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, fmt.Errorf("%w: table %q", ErrNotFound, tableName)
	}
	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: version.FeatureId})
	if err != nil {
		return nil, err
	}
	name := ""
	if feature != nil {
		name = feature.Name
	}
	return &dto.TableLineageResponse{
		FeatureId:   version.FeatureId,
		FeatureName: name,
		Version:     version.Version,
		TableName:   version.TableName,
		IsLive:      version.IsLive,
	}, nil
}

// --- internals ---

// materializeNextVersion allocates the next version number, checks the
// table-name invariants, creates the physical table and appends the ledger
// entry inside the caller's transaction. The caller commits.
func (s *registryService) materializeNextVersion(ctx context.Context, uow unitofwork.UnitOfWork, feature *entity.Feature, query string, refreshPolicy *string, changeDesc string) (*entity.FeatureVersion, error) {
	current, err := uow.FeatureVersionRepository().CurrentVersion(ctx, feature.Id)
	if err != nil {
		return nil, err
	}
	next := current + 1
	tableName := warehouse.TableName(feature.Name, next)

	ledgerHit, err := uow.FeatureVersionRepository().FindByTableName(ctx, tableName)
	if err != nil {
		return nil, err
	}
	if ledgerHit != nil {
		return nil, fmt.Errorf("%w: %s", ErrNameCollision, tableName)
	}
	exists, err := s.engine.TableExists(ctx, tableName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrNameCollision, tableName)
	}

	stmt, err := s.buildCreate(tableName, query, refreshPolicy)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Run(ctx, stmt); err != nil {
		// The deferred rollback removes the catalog row if this was a brand
		// new feature, so no metadata survives the failed materialization.
		return nil, err
	}

	version := &entity.FeatureVersion{
		FeatureId:         feature.Id,
		Version:           next,
		TableName:         tableName,
		DefiningQuery:     query,
		RefreshPolicy:     refreshPolicy,
		IsLive:            true,
		ChangeDescription: changeDesc,
		RegisteredAt:      time.Now(),
	}
	if err := uow.FeatureVersionRepository().Create(ctx, version); err != nil {
		s.dropTableQuietly(ctx, tableName)
		if implementation.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: feature %s version %d", ErrDuplicateVersion, feature.Id, next)
		}
		return nil, err
	}
	return version, nil
}

// rebuildTable drops and recreates one table from a defining query.
func (s *registryService) rebuildTable(ctx context.Context, tableName, query string, refreshPolicy *string) error {
	drop, err := warehouse.DropTable(tableName)
	if err != nil {
		return err
	}
	if err := s.engine.Run(ctx, drop); err != nil {
		return err
	}
	create, err := s.buildCreate(tableName, query, refreshPolicy)
	if err != nil {
		return err
	}
	return s.engine.Run(ctx, create)
}

func (s *registryService) buildCreate(tableName, query string, refreshPolicy *string) (string, error) {
	if refreshPolicy != nil && s.engine.SupportsRefreshPolicy() {
		return warehouse.CreateRefreshedTableAs(tableName, query, *refreshPolicy)
	}
	return warehouse.CreateTableAs(tableName, query)
}

// commitOrDropTable commits the metadata transaction and compensates a
// commit failure by dropping the table that was created for it.
func (s *registryService) commitOrDropTable(uow unitofwork.UnitOfWork, tableName string) error {
	if err := uow.Commit(); err != nil {
		s.dropTableQuietly(context.Background(), tableName)
		return err
	}
	return nil
}

func (s *registryService) dropTableQuietly(ctx context.Context, tableName string) {
	stmt, err := warehouse.DropTable(tableName)
	if err == nil {
		err = s.engine.Run(ctx, stmt)
	}
	if err != nil {
		s.logger.Warn("registry", "compensating table drop failed", map[string]interface{}{
			"table": tableName,
			"error": err.Error(),
		})
	}
}

func (s *registryService) publish(ctx context.Context, event events.Event) {
	if s.eventPub == nil {
		return
	}
	if err := s.eventPub.Publish(ctx, event); err != nil {
		s.logger.Warn("registry", "event publish failed", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func versionResponse(v *entity.FeatureVersion) *dto.FeatureVersionResponse {
	return &dto.FeatureVersionResponse{
		FeatureId:         v.FeatureId,
		Version:           v.Version,
		TableName:         v.TableName,
		DefiningQuery:     v.DefiningQuery,
		RefreshPolicy:     v.RefreshPolicy,
		IsLive:            v.IsLive,
		ChangeDescription: v.ChangeDescription,
		RegisteredAt:      v.RegisteredAt,
	}
}
