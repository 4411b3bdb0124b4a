package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/port"
	"go.uber.org/zap"
)

const DefaultPersistTimeout = 5 * time.Second

// Service applies transitions to persisted orders. Concurrent transitions of
// one order are serialized by the repository's compare-and-set on status:
// the loser observes domain.ErrInvalidTransition and nothing is written.
type Service struct {
	repo    port.OrderRepository
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

func NewService(repo port.OrderRepository, timeout time.Duration, logger *zap.Logger) *Service {
	if repo == nil {
		panic("lifecycle.NewService: nil repository")
	}
	if timeout <= 0 {
		timeout = DefaultPersistTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		logger:  logger,
		timeout: timeout,
		now:     time.Now,
	}
}

func (s *Service) Get(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, domain.ExternalError("repo.GetOrder", err, domain.ErrOrderNotFound)
	}

	return order, nil
}

// MarkDelivered records the external fulfillment signal for a processing order.
func (s *Service) MarkDelivered(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return s.transition(ctx, orderID, EventMarkDelivered)
}

// RequestCancellation cancels the order named by c. The confirmation must come
// from ConfirmCancellation; a zero value is rejected.
func (s *Service) RequestCancellation(ctx context.Context, c Confirmation) (domain.Order, error) {
	if c.IsZero() {
		return domain.Order{}, domain.ErrCancellationNotConfirmed
	}

	return s.transition(ctx, c.OrderID(), EventRequestCancellation)
}

func (s *Service) transition(ctx context.Context, orderID uuid.UUID, ev Event) (domain.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	from := order.Status
	next := order.Clone()
	at := s.now().UTC()

	if err := Apply(&next, ev, at); err != nil {
		s.logger.Info("order transition rejected",
			zap.Stringer("order_id", orderID),
			zap.String("event", string(ev)),
			zap.Stringer("status", from),
		)
		return domain.Order{}, err
	}

	if err := s.updateStatus(ctx, orderID, from, next.Status, at); err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			s.logger.Info("order transition lost race",
				zap.Stringer("order_id", orderID),
				zap.String("event", string(ev)),
			)
			return domain.Order{}, fmt.Errorf("%s: %w: %w", ev, domain.ErrInvalidTransition, err)
		}
		return domain.Order{}, err
	}

	s.logger.Info("order transitioned",
		zap.Stringer("order_id", orderID),
		zap.Stringer("from", from),
		zap.Stringer("to", next.Status),
	)

	return next, nil
}

func (s *Service) updateStatus(ctx context.Context, orderID uuid.UUID, from, to domain.OrderStatus, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.UpdateStatus(ctx, orderID, from, to, at); err != nil {
		return domain.ExternalError("repo.UpdateStatus", err, domain.ErrStatusConflict, domain.ErrOrderNotFound)
	}
	return nil
}
