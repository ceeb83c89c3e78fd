package payment

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"solarops/internal/domain"
	"solarops/internal/repository"
)

// Installment split applied to every project contract.
var installmentPercents = []int{60, 30, 10}

type Service struct {
	payments PaymentRepository
	projects ProjectReader
	gateway  Gateway
	audit    Auditor
	log      *zap.Logger
}

func NewService(payments PaymentRepository, projects ProjectReader, gateway Gateway, audit Auditor, log *zap.Logger) *Service {
	return &Service{
		payments: payments,
		projects: projects,
		gateway:  gateway,
		audit:    audit,
		log:      log,
	}
}

// CreateInstallments registers the 60/30/10 intents for a project
// contract total and stores one Payment row per installment, keyed by
// the gateway's intent reference.
func (s *Service) CreateInstallments(ctx context.Context, projectID int64, total float64) ([]domain.Payment, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	created := make([]domain.Payment, 0, len(installmentPercents))
	for _, pct := range installmentPercents {
		amount := total * float64(pct) / 100
		// Gateway amounts are in the minor currency unit.
		intent, err := s.gateway.CreateIntent(ctx,
			int64(math.Round(amount*100)),
			fmt.Sprintf("%s — %d%% installment", project.Name, pct),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGateway, err)
		}

		p := domain.Payment{
			ID:          intent.ID,
			ProjectID:   projectID,
			CheckoutURL: intent.CheckoutURL,
			Percent:     pct,
			Amount:      amount,
		}
		if err := s.payments.Create(ctx, &p); err != nil {
			return nil, err
		}
		created = append(created, p)
	}
	return created, nil
}

// Acknowledge marks an installment as settled after an admin verified
// the gateway state.
func (s *Service) Acknowledge(ctx context.Context, paymentID, adminEmail, ipAddress string) error {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.payments.Acknowledge(ctx, p.ID, adminEmail); err != nil {
		return err
	}

	s.audit.LogUserAction(ctx, adminEmail, "acknowledge_payment", "payment", p.ProjectID,
		fmt.Sprintf("payment=%s percent=%d", p.ID, p.Percent), ipAddress)
	return nil
}

// MarkCashPaid records an over-the-counter settlement; the recorded
// timestamp later anchors the project date window.
func (s *Service) MarkCashPaid(ctx context.Context, paymentID, adminEmail, ipAddress string) error {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.payments.MarkCashPaid(ctx, p.ID); err != nil {
		return err
	}

	s.audit.LogUserAction(ctx, adminEmail, "cash_payment", "payment", p.ProjectID,
		fmt.Sprintf("payment=%s percent=%d", p.ID, p.Percent), ipAddress)
	return nil
}

// Status reads the current settlement attributes from the gateway.
func (s *Service) Status(ctx context.Context, paymentID string) (*Intent, error) {
	if _, err := s.payments.GetByID(ctx, paymentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	intent, err := s.gateway.GetIntent(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return intent, nil
}

// ListByProject returns the stored installments.
func (s *Service) ListByProject(ctx context.Context, projectID int64) ([]domain.Payment, error) {
	return s.payments.ListByProject(ctx, projectID)
}
