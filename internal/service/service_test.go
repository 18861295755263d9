package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"quote-storefront/internal/auth"
	"quote-storefront/internal/client"
	"quote-storefront/internal/model"
	"quote-storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, client.Migrate(db))
	return db
}

func authCode(t *testing.T, err error) string {
	t.Helper()
	var authErr *auth.Error
	require.ErrorAs(t, err, &authErr)
	return authErr.Code
}

func TestUserService_SignUpAndSignIn(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(setupTestDB(t)))
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "Ada@Example.com", "hunter22", " Ada Lovelace ")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada Lovelace", user.DisplayName)

	signedIn, err := svc.SignIn(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)

	_, err = svc.SignIn(ctx, "ada@example.com", "wrong-password")
	assert.Equal(t, auth.CodeInvalidCredentials, authCode(t, err))

	_, err = svc.SignIn(ctx, "nobody@example.com", "hunter22")
	assert.Equal(t, auth.CodeInvalidCredentials, authCode(t, err))

	_, err = svc.SignIn(ctx, "", "")
	assert.Equal(t, auth.CodeMissingFields, authCode(t, err))
}

func TestUserService_SignUpValidation(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(setupTestDB(t)))
	ctx := context.Background()

	for _, email := range []string{"not-an-email", "Ada <ada@example.com>", "<ada@example.com>"} {
		_, err := svc.SignUp(ctx, email, "hunter22", "")
		assert.Equal(t, auth.CodeInvalidEmail, authCode(t, err), email)
	}

	_, err := svc.SignUp(ctx, "ada@example.com", "123", "")
	assert.Equal(t, auth.CodeWeakPassword, authCode(t, err))

	_, err = svc.SignUp(ctx, "ada@example.com", "hunter22", "")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "ADA@example.com", "hunter22", "")
	assert.Equal(t, auth.CodeEmailInUse, authCode(t, err))
}

func TestCatalogService(t *testing.T) {
	repo := repository.NewProductRepository(setupTestDB(t))
	require.NoError(t, repo.Seed(context.Background()))
	svc := NewCatalogService(repo)

	all, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	ai, err := svc.ListByCategory(context.Background(), "AI")
	require.NoError(t, err)
	require.NotEmpty(t, ai)
	for _, p := range ai {
		assert.Equal(t, "AI", p.Category)
	}

	p, err := svc.GetProduct(context.Background(), "basic-vm")
	require.NoError(t, err)
	assert.Equal(t, "Basic VM", p.Name)
}

type fakeGeoClient struct {
	loc *client.GeoLocation
	err error
}

func (f *fakeGeoClient) Lookup(_ context.Context, ip string) (*client.GeoLocation, error) {
	if f.err != nil {
		return nil, f.err
	}
	loc := *f.loc
	loc.IP = ip
	return &loc, nil
}

type fakeTelegramClient struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (f *fakeTelegramClient) SendMessage(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, text)
	return nil
}

func TestTrackingService_TrackUserInfo(t *testing.T) {
	geo := &fakeGeoClient{loc: &client.GeoLocation{City: "Hanoi", Country: "Vietnam", Latitude: 21.0278, Longitude: 105.8342, Org: "Viettel"}}
	tg := &fakeTelegramClient{}
	svc := NewTrackingService(geo, tg).(*trackingServiceImpl)
	svc.now = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }

	err := svc.TrackUserInfo(context.Background(), Visitor{
		ID:        "v-1",
		IP:        "203.0.113.7",
		UserAgent: "Mozilla/5.0 <script>",
		Language:  "vi-VN",
		Path:      "/cart",
	})
	require.NoError(t, err)

	require.Len(t, tg.messages, 1)
	msg := tg.messages[0]
	assert.Contains(t, msg, "<b>New Visitor</b>")
	assert.Contains(t, msg, "<b>IP:</b> 203.0.113.7")
	assert.Contains(t, msg, "<b>Location:</b> Hanoi, Vietnam")
	assert.Contains(t, msg, "21.0278, 105.8342")
	assert.Contains(t, msg, "Mozilla/5.0 &lt;script&gt;")
	assert.Contains(t, msg, "<b>Language:</b> vi-VN")
	assert.Contains(t, msg, "<b>Page:</b> /cart")
	assert.NotContains(t, msg, "Referrer")
}

func TestTrackingService_Failures(t *testing.T) {
	geoErr := errors.New("geo down")
	svc := NewTrackingService(&fakeGeoClient{err: geoErr}, &fakeTelegramClient{})
	err := svc.TrackUserInfo(context.Background(), Visitor{IP: "1.2.3.4"})
	assert.ErrorIs(t, err, geoErr)

	tgErr := errors.New("telegram down")
	svc = NewTrackingService(&fakeGeoClient{loc: &client.GeoLocation{}}, &fakeTelegramClient{err: tgErr})
	err = svc.TrackUserInfo(context.Background(), Visitor{IP: "1.2.3.4"})
	assert.ErrorIs(t, err, tgErr)
}

func TestLogEmailService(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewLogEmailService(zap.New(core), "https://t.me/QuycanSoftware")

	svc.SendOrderConfirmation(context.Background(), &model.Order{
		Number:        "AB12CD34",
		CustomerEmail: "ada@example.com",
		Items: []model.CartItem{
			{ProductID: "basic-vm", Name: "Basic VM", Price: decimal.NewFromInt(50)},
			{ProductID: "ml-pipeline", Name: "Managed ML Pipeline", Price: decimal.RequireFromString("299.99")},
		},
		Total: decimal.RequireFromString("349.99"),
	})

	entries := logs.FilterMessage("order confirmation email").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ada@example.com", fields["to"])
	assert.Equal(t, "Order Confirmation #AB12CD34", fields["subject"])

	body := fields["body"].(string)
	assert.Contains(t, body, "Order Number: AB12CD34")
	assert.Contains(t, body, "Total Amount: $349.99")
	assert.Contains(t, body, "- Basic VM: $50\n- Managed ML Pipeline: $299.99")
	assert.Contains(t, body, "Please contact us on Telegram for payment instructions.")
	assert.Contains(t, body, "https://t.me/QuycanSoftware")
}
