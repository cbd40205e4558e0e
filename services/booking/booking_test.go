package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"clubhouse-backend/lib/testutil"
	"clubhouse-backend/lib/timezone"
	bookingdb "clubhouse-backend/services/booking/db"
	"clubhouse-backend/services/catalog"
	catalogdb "clubhouse-backend/services/catalog/db"

	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	messages []string
	fail     bool
}

func (n *fakeNotifier) NotifyManager(_ context.Context, text string) error {
	if n.fail {
		return fmt.Errorf("bot is down")
	}
	n.messages = append(n.messages, text)
	return nil
}

func setupBooking(t *testing.T) (*Service, *fakeNotifier) {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:      "booking",
		DbSchemas: []string{catalogdb.Schema, bookingdb.Schema},
	})
	t.Cleanup(cleanup)

	ctx := context.Background()
	qry := catalogdb.New(result.DB)
	require.NoError(t, qry.CreateLocation(ctx, catalogdb.CreateLocationParams{
		ID: 1, Name: "Main Hall", ShowLocation: 1, ShowOnBookingScreen: 1, LastUpdated: 1,
	}))
	require.NoError(t, qry.CreateCategory(ctx, catalogdb.CreateCategoryParams{
		ID: 1, Name: "Training", IsVisible: 1, LastUpdated: 1,
	}))
	require.NoError(t, qry.CreateSession(ctx, catalogdb.CreateSessionParams{
		ID:             858,
		Datetime:       time.Date(2030, time.March, 15, 18, 0, 0, 0, timezone.Location).Unix(),
		LocationID:     1,
		CategoryID:     1,
		Name:           "Evening Drill",
		MaxSpots:       12,
		AvailableSpots: 7,
		Status:         string(catalog.StatusActive),
		LastUpdated:    1,
	}))
	require.NoError(t, qry.CreateMembership(ctx, catalogdb.CreateMembershipParams{
		ID: 7, Name: "Абонемент 8", Type: "Обычный абонемент",
		Price: 5600, SessionCount: 8, IsVisible: 1, LastUpdated: 1,
	}))

	notifier := &fakeNotifier{}
	return NewService(result.DB, notifier), notifier
}

func TestCreateSessionBooking(t *testing.T) {
	svc, notifier := setupBooking(t)
	sessionID := int64(858)

	booking, err := svc.Create(context.Background(), Request{
		Name:      "Анна",
		Phone:     "8 999 123-45-67",
		SessionID: &sessionID,
		Source:    SourceSessionBooking,
	})
	require.NoError(t, err)
	require.NotZero(t, booking.ID)
	require.True(t, booking.SentToTelegram)

	require.Len(t, notifier.messages, 1)
	msg := notifier.messages[0]
	require.Contains(t, msg, "Анна")
	require.Contains(t, msg, "+7 (999) 123-45-67")
	require.Contains(t, msg, "Evening Drill")
	require.Contains(t, msg, "Main Hall")
	require.Contains(t, msg, "7 из 12")
}

func TestCreateMembershipPurchase(t *testing.T) {
	svc, notifier := setupBooking(t)
	membershipID := int64(7)

	booking, err := svc.Create(context.Background(), Request{
		Name:         "Пётр",
		Phone:        "+7 (912) 000-11-22",
		MembershipID: &membershipID,
		Source:       SourceMembershipPurchase,
	})
	require.NoError(t, err)
	require.True(t, booking.SentToTelegram)

	require.Len(t, notifier.messages, 1)
	require.Contains(t, notifier.messages[0], "Абонемент 8")
	require.Contains(t, notifier.messages[0], "5600 ₽")
}

func TestCreateValidation(t *testing.T) {
	svc, _ := setupBooking(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Request{Phone: "89991234567"})
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(ctx, Request{Name: "Анна", Phone: "12345"})
	require.ErrorIs(t, err, ErrPhoneInvalid)

	_, err = svc.Create(ctx, Request{Name: "Анна", Phone: "89991234567", Source: "carrier_pigeon"})
	require.ErrorIs(t, err, ErrUnknownSource)

	missing := int64(999)
	_, err = svc.Create(ctx, Request{Name: "Анна", Phone: "89991234567", SessionID: &missing})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeliveryFailureKeepsBooking(t *testing.T) {
	svc, notifier := setupBooking(t)
	notifier.fail = true
	ctx := context.Background()

	booking, err := svc.Create(ctx, Request{Name: "Анна", Phone: "89991234567"})
	require.NoError(t, err)
	require.False(t, booking.SentToTelegram)

	stored, err := svc.ByID(ctx, booking.ID)
	require.NoError(t, err)
	require.False(t, stored.SentToTelegram)

	// the bot comes back and we resend
	notifier.fail = false
	sent, err := svc.Resend(ctx, booking.ID)
	require.NoError(t, err)
	require.True(t, sent)

	stored, err = svc.ByID(ctx, booking.ID)
	require.NoError(t, err)
	require.True(t, stored.SentToTelegram)
}

func TestList(t *testing.T) {
	svc, _ := setupBooking(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, Request{Name: "Анна", Phone: "89991234567"})
		require.NoError(t, err)
	}

	bookings, total, err := svc.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, bookings, 2)
}

func TestResendMissing(t *testing.T) {
	svc, _ := setupBooking(t)

	_, err := svc.Resend(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}
