package security

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
	"go.uber.org/zap"
)

type SecurityUseCase interface {
	PassCheckpoint(ctx context.Context, badge domain.AccessBadge, checkpoint domain.Checkpoint) error
	UpgradeBadge(ctx context.Context, badge *domain.AccessBadge, level domain.SecurityLevel) *domain.AccessBadge
	IssueBadge(ctx context.Context, badgeID string, employee domain.Employee) (*domain.AccessBadge, error)
	GetBadge(ctx context.Context, badgeID string) (*domain.AccessBadge, error)
	ChangeLevel(ctx context.Context, badgeID string, level domain.SecurityLevel) (*domain.AccessBadge, error)
	RevokeBadge(ctx context.Context, badgeID string) (*domain.AccessBadge, error)
	CheckAccess(ctx context.Context, badgeID string, checkpoint domain.Checkpoint) error
}

type SecurityService struct {
	badges repository.BadgeRepository
	locks  *repository.Locker
	events *kafka.Emitter
	logger *zap.Logger
}

type SecurityServiceOption func(*SecurityService)

func WithLogger(logger *zap.Logger) SecurityServiceOption {
	return func(s *SecurityService) {
		s.logger = logger
	}
}

func WithEmitter(events *kafka.Emitter) SecurityServiceOption {
	return func(s *SecurityService) {
		s.events = events
	}
}

func NewSecurityService(badges repository.BadgeRepository, opts ...SecurityServiceOption) *SecurityService {
	service := &SecurityService{
		badges: badges,
		locks:  repository.NewLocker(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// PassCheckpoint succeeds silently or reports why the badge was turned away.
func (s *SecurityService) PassCheckpoint(ctx context.Context, badge domain.AccessBadge, checkpoint domain.Checkpoint) error {
	if badge.ID == "" {
		return domain.ErrInvalidBadge
	}
	if !checkpoint.CanPass(badge) {
		s.logger.Warn("checkpoint access denied",
			zap.String("badge_id", badge.ID),
			zap.String("checkpoint", checkpoint.Describe()),
			zap.Stringer("level", badge.Level),
			zap.Bool("revoked", badge.Revoked))
		s.publish(ctx, "checkpoint_denied", &badge, map[string]string{"checkpoint": checkpoint.ID})
		return domain.ErrAccessDenied
	}
	return nil
}

// UpgradeBadge sets the level on the given badge without any ordering check.
func (s *SecurityService) UpgradeBadge(ctx context.Context, badge *domain.AccessBadge, level domain.SecurityLevel) *domain.AccessBadge {
	badge.Upgrade(level)
	return badge
}

// IssueBadge stores a badge for an active employee. Pilots and security
// officers get HIGH_SECURITY, everyone else STAFF.
func (s *SecurityService) IssueBadge(ctx context.Context, badgeID string, employee domain.Employee) (*domain.AccessBadge, error) {
	if badgeID == "" {
		return nil, domain.ErrInvalidBadge
	}
	if !employee.Active {
		return nil, domain.ErrAccessDenied
	}

	unlock := s.locks.Lock(badgeID)
	defer unlock()

	if _, exists := s.badges.Get(badgeID); exists {
		return nil, domain.AlreadyExistsf("badge %s already exists", badgeID)
	}

	level := domain.LevelStaff
	if employee.CanAccessHighSecurity() {
		level = domain.LevelHighSecurity
	}
	badge := domain.AccessBadge{ID: badgeID, OwnerID: employee.ID, Level: level}
	s.badges.Add(badgeID, badge)

	s.logger.Info("badge issued",
		zap.String("badge_id", badgeID),
		zap.String("employee_id", employee.ID),
		zap.String("role", string(employee.Role)),
		zap.Stringer("level", level))
	s.publish(ctx, "badge_issued", &badge, nil)
	return &badge, nil
}

func (s *SecurityService) GetBadge(ctx context.Context, badgeID string) (*domain.AccessBadge, error) {
	badge, ok := s.badges.Get(badgeID)
	if !ok {
		return nil, notFound(badgeID)
	}
	return &badge, nil
}

// ChangeLevel is UpgradeBadge for a stored badge.
func (s *SecurityService) ChangeLevel(ctx context.Context, badgeID string, level domain.SecurityLevel) (*domain.AccessBadge, error) {
	return s.update(ctx, badgeID, "badge_level_changed", func(b *domain.AccessBadge) { b.Upgrade(level) })
}

func (s *SecurityService) RevokeBadge(ctx context.Context, badgeID string) (*domain.AccessBadge, error) {
	return s.update(ctx, badgeID, "badge_revoked", (*domain.AccessBadge).Revoke)
}

// CheckAccess runs PassCheckpoint against the stored badge.
func (s *SecurityService) CheckAccess(ctx context.Context, badgeID string, checkpoint domain.Checkpoint) error {
	if badgeID == "" {
		return domain.ErrInvalidBadge
	}
	badge, ok := s.badges.Get(badgeID)
	if !ok {
		return notFound(badgeID)
	}
	return s.PassCheckpoint(ctx, badge, checkpoint)
}

func (s *SecurityService) update(ctx context.Context, badgeID, eventType string, apply func(*domain.AccessBadge)) (*domain.AccessBadge, error) {
	unlock := s.locks.Lock(badgeID)
	defer unlock()

	badge, ok := s.badges.Get(badgeID)
	if !ok {
		return nil, notFound(badgeID)
	}
	apply(&badge)
	s.badges.Add(badgeID, badge)

	s.logger.Info("badge updated",
		zap.String("badge_id", badgeID),
		zap.Stringer("level", badge.Level),
		zap.Bool("revoked", badge.Revoked))
	s.publish(ctx, eventType, &badge, nil)
	return &badge, nil
}

func (s *SecurityService) publish(ctx context.Context, eventType string, badge *domain.AccessBadge, attrs map[string]string) {
	status := badge.Level.String()
	if badge.Revoked {
		status = "REVOKED"
	}
	if attrs == nil {
		attrs = map[string]string{}
	}
	attrs["owner_id"] = badge.OwnerID
	s.events.Emit(ctx, kafka.Event{
		Type:       eventType,
		Aggregate:  "badge",
		ID:         badge.ID,
		Status:     status,
		Attributes: attrs,
	})
}

func notFound(badgeID string) error {
	return domain.NotFoundf("badge %s not found", badgeID)
}

var _ SecurityUseCase = (*SecurityService)(nil)
