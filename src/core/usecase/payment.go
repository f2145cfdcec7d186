package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"tradefair/src/core/domain"
	"tradefair/src/core/ports"
)

// InitiatedPayment is returned when a charge has been opened with the gateway.
type InitiatedPayment struct {
	AuthorizationURL string
	Reference        string
}

// PaymentService wraps the payment gateway: shed-securing payments for
// vendors and preorder payments for customers. The gateway calls are
// synchronous; completion arrives via webhook or explicit verify.
type PaymentService struct {
	repo    ports.MarketRepository
	gateway ports.PaymentGateway
	cache   ports.SnapshotCache
	log     *slog.Logger
}

func NewPaymentService(repo ports.MarketRepository, gateway ports.PaymentGateway, cache ports.SnapshotCache, log *slog.Logger) *PaymentService {
	return &PaymentService{repo: repo, gateway: gateway, cache: cache, log: log}
}

// InitiateShedPayment opens a charge for securing a shed. Only the owning
// vendor may pay, and only while the shed is not yet secured.
func (s *PaymentService) InitiateShedPayment(ctx context.Context, actor domain.Actor, shedID int64, amount float64, email string) (*InitiatedPayment, error) {
	shed, err := s.repo.GetShed(ctx, shedID)
	if err != nil {
		return nil, err
	}
	if !domain.CanModifyShed(actor, shed) {
		return nil, domain.NewForbiddenError("only the shed owner can pay for it")
	}
	if shed.Secured {
		return nil, domain.NewConflictError("shed is already secured")
	}
	if amount <= 0 {
		return nil, domain.NewValidationError("amount", "must be positive")
	}

	reference := fmt.Sprintf("shed_%d_%d_%s", shed.ID, actor.UserID, uuid.NewString()[:8])
	init, err := s.gateway.Initialize(ctx, ports.InitializePaymentRequest{
		Reference:  reference,
		AmountKobo: toKobo(amount),
		Email:      email,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.CreatePayment(ctx, &domain.Payment{
		Kind:      domain.PaymentKindShed,
		ShedID:    &shed.ID,
		Amount:    amount,
		Reference: init.Reference,
		Status:    domain.PaymentPending,
	}); err != nil {
		return nil, err
	}

	s.log.Info("shed payment initiated", "shed_id", shed.ID, "reference", init.Reference)
	return &InitiatedPayment{AuthorizationURL: init.AuthorizationURL, Reference: init.Reference}, nil
}

// InitiatePreorderPayment opens a charge for a preorder. Amount is
// price times quantity, converted to the smallest currency unit.
func (s *PaymentService) InitiatePreorderPayment(ctx context.Context, actor domain.Actor, preorderID int64, email string) (*InitiatedPayment, error) {
	po, err := s.repo.GetPreorder(ctx, preorderID)
	if err != nil {
		return nil, err
	}
	if !domain.CanEditPreorder(actor, po) {
		return nil, domain.NewForbiddenError("not the preorder owner")
	}
	if po.Status == domain.PreorderCancelled {
		return nil, domain.NewConflictError("preorder is cancelled")
	}
	product, err := s.repo.GetProduct(ctx, po.ProductID)
	if err != nil {
		return nil, err
	}

	amount := product.Price * float64(po.Quantity)
	reference := fmt.Sprintf("preorder_%d_%d_%s", po.ID, actor.UserID, uuid.NewString()[:8])
	init, err := s.gateway.Initialize(ctx, ports.InitializePaymentRequest{
		Reference:  reference,
		AmountKobo: toKobo(amount),
		Email:      email,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.CreatePayment(ctx, &domain.Payment{
		Kind:       domain.PaymentKindPreorder,
		PreorderID: &po.ID,
		Amount:     amount,
		Reference:  init.Reference,
		Status:     domain.PaymentPending,
	}); err != nil {
		return nil, err
	}

	s.log.Info("preorder payment initiated", "preorder_id", po.ID, "reference", init.Reference)
	return &InitiatedPayment{AuthorizationURL: init.AuthorizationURL, Reference: init.Reference}, nil
}

// CheckPreorderPaymentStatus verifies the charge with the gateway and
// persists the resulting status.
func (s *PaymentService) CheckPreorderPaymentStatus(ctx context.Context, actor domain.Actor, preorderID int64) (domain.PaymentStatus, error) {
	po, err := s.repo.GetPreorder(ctx, preorderID)
	if err != nil {
		return "", err
	}
	if !domain.CanViewPreorder(actor, po) {
		return "", domain.NewForbiddenError("not a party to this preorder")
	}
	payment, err := s.repo.GetPaymentForPreorder(ctx, preorderID)
	if err != nil {
		return "", err
	}

	verified, err := s.gateway.Verify(ctx, payment.Reference)
	if err != nil {
		return "", err
	}
	status := gatewayStatus(verified.Status)
	updated, err := s.repo.UpdatePaymentStatus(ctx, payment.Reference, status)
	if err != nil {
		return "", err
	}
	return updated.Status, nil
}

// WebhookEvent is the parsed gateway callback payload.
type WebhookEvent struct {
	Event     string
	Reference string
	Status    string
}

// HandleWebhook processes a gateway callback. A successful charge marks
// the payment and, for shed payments, flips the shed to secured in the
// same transaction.
func (s *PaymentService) HandleWebhook(ctx context.Context, ev WebhookEvent) error {
	if ev.Event != "charge.success" || !strings.EqualFold(ev.Status, "success") {
		return domain.NewValidationError("event", "unsupported event or status")
	}
	payment, err := s.repo.GetPaymentByReference(ctx, ev.Reference)
	if err != nil {
		return err
	}

	switch payment.Kind {
	case domain.PaymentKindShed:
		if _, err := s.repo.MarkShedPaymentSuccess(ctx, ev.Reference); err != nil {
			return err
		}
		if s.cache != nil {
			if err := s.cache.Invalidate(ctx); err != nil {
				s.log.Warn("snapshot cache invalidation failed", "error", err)
			}
		}
	default:
		if _, err := s.repo.UpdatePaymentStatus(ctx, ev.Reference, domain.PaymentSuccess); err != nil {
			return err
		}
	}

	s.log.Info("payment settled", "reference", ev.Reference, "kind", payment.Kind)
	return nil
}

func toKobo(amount float64) int64 {
	return int64(amount*100 + 0.5)
}

func gatewayStatus(status string) domain.PaymentStatus {
	switch strings.ToLower(status) {
	case "success":
		return domain.PaymentSuccess
	case "failed", "abandoned":
		return domain.PaymentFailed
	default:
		return domain.PaymentPending
	}
}
