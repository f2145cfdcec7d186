package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradefair/src/core/domain"
	"tradefair/src/core/ports"
	"tradefair/src/core/ports/mocks"
)

// fakeGateway records calls and plays back canned verify results.
type fakeGateway struct {
	initialized  []ports.InitializePaymentRequest
	verifyStatus string
}

func (g *fakeGateway) Initialize(ctx context.Context, req ports.InitializePaymentRequest) (*ports.InitializePaymentResponse, error) {
	g.initialized = append(g.initialized, req)
	return &ports.InitializePaymentResponse{
		AuthorizationURL: "https://checkout.example/" + req.Reference,
		Reference:        req.Reference,
	}, nil
}

func (g *fakeGateway) Verify(ctx context.Context, reference string) (*ports.VerifyPaymentResponse, error) {
	return &ports.VerifyPaymentResponse{Reference: reference, Status: g.verifyStatus}, nil
}

func TestInitiateShedPayment(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	gateway := &fakeGateway{}
	svc := NewPaymentService(repo, gateway, nil, testLogger())
	ctx := context.Background()

	registry, err := domain.NewRegistry(10)
	require.NoError(t, err)
	require.NoError(t, repo.EnsureDomains(ctx, registry.List()))
	shed, err := repo.AllocateShed(ctx, "EC", 1, "Shed")
	require.NoError(t, err)

	initiated, err := svc.InitiateShedPayment(ctx, vendorActor(1), shed.ID, 500.0, "shop@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(initiated.Reference, "shed_"), "reference %q", initiated.Reference)
	assert.NotEmpty(t, initiated.AuthorizationURL)

	require.Len(t, gateway.initialized, 1)
	assert.Equal(t, int64(50000), gateway.initialized[0].AmountKobo, "amount converts to kobo")

	payment, err := repo.GetPaymentByReference(ctx, initiated.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, payment.Status)
	assert.Equal(t, domain.PaymentKindShed, payment.Kind)
}

func TestInitiateShedPaymentGuards(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewPaymentService(repo, &fakeGateway{}, nil, testLogger())
	ctx := context.Background()

	registry, err := domain.NewRegistry(10)
	require.NoError(t, err)
	require.NoError(t, repo.EnsureDomains(ctx, registry.List()))
	shed, err := repo.AllocateShed(ctx, "EC", 1, "Shed")
	require.NoError(t, err)

	_, err = svc.InitiateShedPayment(ctx, vendorActor(2), shed.ID, 500.0, "x@example.com")
	assert.True(t, domain.IsForbidden(err), "only the owner may pay")

	_, err = svc.InitiateShedPayment(ctx, vendorActor(1), shed.ID, 0, "x@example.com")
	assert.True(t, domain.IsValidationError(err))

	require.NoError(t, repo.SecureShed(ctx, shed.ID))
	_, err = svc.InitiateShedPayment(ctx, vendorActor(1), shed.ID, 500.0, "x@example.com")
	assert.True(t, domain.IsConflict(err), "secured sheds cannot be paid again")
}

func TestWebhookSecuresShed(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewPaymentService(repo, &fakeGateway{}, nil, testLogger())
	ctx := context.Background()

	registry, err := domain.NewRegistry(10)
	require.NoError(t, err)
	require.NoError(t, repo.EnsureDomains(ctx, registry.List()))
	shed, err := repo.AllocateShed(ctx, "EC", 1, "Shed")
	require.NoError(t, err)

	initiated, err := svc.InitiateShedPayment(ctx, vendorActor(1), shed.ID, 500.0, "shop@example.com")
	require.NoError(t, err)

	err = svc.HandleWebhook(ctx, WebhookEvent{
		Event:     "charge.success",
		Reference: initiated.Reference,
		Status:    "success",
	})
	require.NoError(t, err)

	got, err := repo.GetShed(ctx, shed.ID)
	require.NoError(t, err)
	assert.True(t, got.Secured, "a successful charge must secure the shed")

	payment, err := repo.GetPaymentByReference(ctx, initiated.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, payment.Status)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	svc := NewPaymentService(repo, &fakeGateway{}, nil, testLogger())

	err := svc.HandleWebhook(context.Background(), WebhookEvent{
		Event:     "charge.failed",
		Reference: "whatever",
		Status:    "failed",
	})
	assert.True(t, domain.IsValidationError(err))
}

func TestPreorderPaymentAmountAndVerify(t *testing.T) {
	repo := mocks.NewMockMarketRepository()
	gateway := &fakeGateway{verifyStatus: "success"}
	svc := NewPaymentService(repo, gateway, nil, testLogger())
	ctx := context.Background()

	product := seedProduct(t, repo, 1, 10) // price 250.0
	po, err := repo.CreatePreorder(ctx, &domain.Preorder{
		CustomerID: 2,
		VendorID:   1,
		ProductID:  product.ID,
		Quantity:   3,
	})
	require.NoError(t, err)

	initiated, err := svc.InitiatePreorderPayment(ctx, customerActor(2), po.ID, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(initiated.Reference, "preorder_"))
	require.Len(t, gateway.initialized, 1)
	assert.Equal(t, int64(75000), gateway.initialized[0].AmountKobo, "price times quantity in kobo")

	status, err := svc.CheckPreorderPaymentStatus(ctx, customerActor(2), po.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, status)
}

func TestGatewayStatusMapping(t *testing.T) {
	assert.Equal(t, domain.PaymentSuccess, gatewayStatus("success"))
	assert.Equal(t, domain.PaymentFailed, gatewayStatus("failed"))
	assert.Equal(t, domain.PaymentFailed, gatewayStatus("abandoned"))
	assert.Equal(t, domain.PaymentPending, gatewayStatus("ongoing"))
}
