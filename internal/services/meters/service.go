package meters

import (
	"context"

	"go.uber.org/zap"

	"meteradmin/internal/domain"
	"meteradmin/internal/meter"
)

// Service replaces the meters stored on user documents.
type Service struct {
	docs domain.DocumentStore
	log  *zap.Logger
}

// New returns a meter gateway backed by docs.
func New(docs domain.DocumentStore, log *zap.Logger) *Service {
	return &Service{docs: docs, log: log}
}

// ReplaceMeters makes the owner's stored meters equal payload. The stored
// keys are read and the patch is applied under one store lock, so the last
// of several overlapping calls wins whole. Records are stored as given. A
// missing owner yields domain.ErrNotFound before any write; a payload that
// is not dense is rejected with a *domain.ValidationError.
func (s *Service) ReplaceMeters(ctx context.Context, owner domain.OwnerID, payload domain.Meters) error {
	if err := meter.CheckDense(payload); err != nil {
		return err
	}

	var plan meter.Plan
	err := s.docs.UpdateFunc(ctx, domain.CollectionUsers, owner, func(fields map[string]any) (domain.Patch, error) {
		if role, _ := fields["role"].(string); domain.Role(role) != domain.RoleUser {
			return domain.Patch{}, domain.Invalid("role", "only users have water meters")
		}
		plan = meter.Reconcile(meter.Keys(fields), payload)
		return plan.Patch(), nil
	})
	if err != nil {
		if domain.IsPersistence(err) {
			s.log.Error("replace meters failed", zap.String("uid", owner.String()), zap.Error(err))
		}
		return err
	}
	s.log.Info("meters replaced",
		zap.String("uid", owner.String()),
		zap.Int("upserted", len(plan.ToUpsert)),
		zap.Int("deleted", len(plan.ToDelete)),
	)
	return nil
}

// Compile-time assertion that Service implements domain.MeterGateway.
var _ domain.MeterGateway = (*Service)(nil)
