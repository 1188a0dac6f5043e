package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/voltdrive/internal/client/client"
	"github.com/dmitrijs2005/voltdrive/internal/client/models"
	"github.com/dmitrijs2005/voltdrive/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/voltdrive/internal/client/session"
	"github.com/dmitrijs2005/voltdrive/internal/fleet"
	"github.com/dmitrijs2005/voltdrive/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	authResp *models.AuthResponse
	authErr  error
	lastReg  models.RegisterData
	lastLog  models.LoginData

	me    *models.User
	meErr error

	cars      []*models.Car
	carFilter fleet.Filter
	created   *models.Car
	createErr error

	booking    client.BookingRequest
	bookings   []*models.Booking
	bookingErr error

	upload      *client.AvatarUpload
	uploadedURL string
	uploadedCT  string
	uploaded    []byte

	health *client.Health
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error) {
	f.lastReg = data
	return f.authResp, f.authErr
}

func (f *fakeClient) Login(ctx context.Context, data models.LoginData) (*models.AuthResponse, error) {
	f.lastLog = data
	return f.authResp, f.authErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) { return f.me, f.meErr }

func (f *fakeClient) ListCars(ctx context.Context, flt fleet.Filter) ([]*models.Car, error) {
	f.carFilter = flt
	return f.cars, nil
}

func (f *fakeClient) CreateCar(ctx context.Context, car *models.Car) (*models.Car, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = car
	out := *car
	out.ID = "car-1"
	return &out, nil
}

func (f *fakeClient) CreateBooking(ctx context.Context, req client.BookingRequest) (*models.Booking, error) {
	f.booking = req
	if f.bookingErr != nil {
		return nil, f.bookingErr
	}
	return &models.Booking{ID: "b1", CarID: req.CarID, TotalHours: 26, TotalAmount: 200, Status: models.BookingPending}, nil
}

func (f *fakeClient) ListBookings(ctx context.Context) ([]*models.Booking, error) { return f.bookings, nil }

func (f *fakeClient) RequestAvatarUpload(ctx context.Context) (*client.AvatarUpload, error) {
	return f.upload, nil
}

func (f *fakeClient) UploadAvatar(ctx context.Context, url string, body io.Reader, size int64, contentType string) error {
	f.uploadedURL = url
	f.uploadedCT = contentType
	b, err := io.ReadAll(body)
	f.uploaded = b
	return err
}

func (f *fakeClient) Health(ctx context.Context) (*client.Health, error) { return f.health, nil }

func newTestApp(t *testing.T, api *fakeClient, input string) (*App, *bytes.Buffer) {
	t.Helper()

	oldIs := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = oldIs })

	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "voltdrive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sess := session.New(api, session.NewStore(metadata.NewSQLiteRepository(db)), logging.NewNopLogger())
	require.NoError(t, sess.Bootstrap(context.Background()))

	var out bytes.Buffer
	return &App{
		api:     api,
		session: sess,
		logger:  logging.NewNopLogger(),
		reader:  rdr(input),
		out:     &out,
	}, &out
}

func loginAs(t *testing.T, a *App, api *fakeClient, role string) {
	t.Helper()
	api.authResp = &models.AuthResponse{
		Token: "tok",
		User:  models.User{ID: "u1", Name: "Ann", Email: "ann@example.com", Role: role},
	}
	require.NoError(t, a.session.Login(context.Background(), models.LoginData{Email: "ann@example.com", Password: "pw"}))
}

func TestApp_Register(t *testing.T) {
	api := &fakeClient{authResp: &models.AuthResponse{
		Token: "tok",
		User:  models.User{ID: "u1", Name: "Ann", Email: "ann@example.com", Role: "user"},
	}}
	a, out := newTestApp(t, api, "Ann\nann@example.com\npw\npw\n")

	require.NoError(t, a.Register(context.Background()))

	assert.Equal(t, models.RegisterData{Name: "Ann", Email: "ann@example.com", Password: "pw", ConfirmPassword: "pw"}, api.lastReg)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(ann@example.com user)", a.status())
	assert.Contains(t, out.String(), "Registered and logged in as Ann <ann@example.com>")
}

func TestApp_RegisterMismatchNeverCallsAPI(t *testing.T) {
	api := &fakeClient{}
	a, _ := newTestApp(t, api, "Ann\nann@example.com\npw\nother\n")

	err := a.Register(context.Background())

	assert.ErrorIs(t, err, session.ErrPasswordMismatch)
	assert.Empty(t, api.lastReg.Email)
	assert.False(t, a.isLoggedIn())
}

func TestApp_LoginAndLogout(t *testing.T) {
	api := &fakeClient{authResp: &models.AuthResponse{
		Token: "tok",
		User:  models.User{ID: "u1", Name: "Ann", Email: "ann@example.com", Role: "user"},
	}}
	a, out := newTestApp(t, api, "ann@example.com\npw\n")

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, models.LoginData{Email: "ann@example.com", Password: "pw"}, api.lastLog)
	assert.Contains(t, out.String(), "Welcome, Ann!")

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.status())
}

func TestApp_LoginFailure(t *testing.T) {
	api := &fakeClient{authErr: &client.APIError{Status: 401, Message: "Invalid credentials"}}
	a, _ := newTestApp(t, api, "ann@example.com\nwrong\n")

	err := a.Login(context.Background())

	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", a.lastError())
	assert.False(t, a.isLoggedIn())
}

func TestApp_StatusWhileRestoring(t *testing.T) {
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "voltdrive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	api := &fakeClient{}
	a := &App{
		api:     api,
		session: session.New(api, session.NewStore(metadata.NewSQLiteRepository(db)), logging.NewNopLogger()),
		logger:  logging.NewNopLogger(),
	}

	assert.Equal(t, "(loading)", a.status())

	require.NoError(t, a.session.Bootstrap(context.Background()))
	assert.Empty(t, a.status())
}

func TestApp_WhoAmIRefreshesSession(t *testing.T) {
	api := &fakeClient{}
	a, out := newTestApp(t, api, "")
	loginAs(t, a, api, "user")

	phone := "+371 2000000"
	api.me = &models.User{ID: "u1", Name: "Ann B", Email: "ann@example.com", Role: "user", PhoneNumber: &phone}

	require.NoError(t, a.WhoAmI(context.Background()))

	assert.Equal(t, "Ann B", a.session.User().Name)
	assert.Contains(t, out.String(), "Ann B <ann@example.com>")
	assert.Contains(t, out.String(), "phone: +371 2000000")
}

func TestApp_Cars(t *testing.T) {
	api := &fakeClient{cars: []*models.Car{
		{ID: "c1", Name: "Model 3", Brand: "Tesla", Type: models.CarTypeSedan, FuelType: models.FuelElectric, Seats: 5, PricePerDay: 120},
		{ID: "c2", Name: "X5", Brand: "BMW", Type: models.CarTypeSUV, FuelType: models.FuelDiesel, Seats: 5, PricePerDay: 90},
	}}
	a, out := newTestApp(t, api, "")

	require.NoError(t, a.Cars(context.Background(), []string{"sort=price", "max=150"}))

	assert.Equal(t, fleet.Filter{MaxPrice: 150, Sort: fleet.SortPrice}, api.carFilter)
	text := out.String()
	assert.Contains(t, text, "PRICE/DAY")
	assert.Less(t, strings.Index(text, "X5"), strings.Index(text, "Model 3"), "sorted by price")
}

func TestApp_CarsRejectsBadFilters(t *testing.T) {
	a, _ := newTestApp(t, &fakeClient{}, "")

	assert.ErrorContains(t, a.Cars(context.Background(), []string{"colour=red"}), "unknown filter")
	assert.ErrorContains(t, a.Cars(context.Background(), []string{"sort"}), "expected key=value")
	assert.ErrorContains(t, a.Cars(context.Background(), []string{"sort=cheapest"}), "unknown sort")
}

func TestApp_AddCar(t *testing.T) {
	t.Run("requires admin", func(t *testing.T) {
		api := &fakeClient{}
		a, _ := newTestApp(t, api, "")
		loginAs(t, a, api, "user")

		err := a.AddCar(context.Background())
		assert.ErrorIs(t, err, client.ErrForbidden)
		assert.Nil(t, api.created)
	})

	t.Run("admin", func(t *testing.T) {
		api := &fakeClient{}
		a, out := newTestApp(t, api, strings.Join([]string{
			"Model 3", "Tesla", "Sedan", "", "Electric", "5", "120.5", "Fast",
			"https://img/1.jpg", "",
			"Autopilot", "Heated seats", "",
		}, "\n")+"\n")
		loginAs(t, a, api, "admin")

		require.NoError(t, a.AddCar(context.Background()))

		require.NotNil(t, api.created)
		assert.Equal(t, "Model 3", api.created.Name)
		assert.Equal(t, 5, api.created.Seats)
		assert.Equal(t, 120.5, api.created.PricePerDay)
		assert.Empty(t, api.created.Transmission)
		assert.True(t, api.created.Availability)
		assert.Equal(t, []string{"https://img/1.jpg"}, api.created.Images)
		assert.Equal(t, []string{"Autopilot", "Heated seats"}, api.created.Features)
		assert.Contains(t, out.String(), "Car car-1 added: Tesla Model 3")
	})

	t.Run("bad seats", func(t *testing.T) {
		api := &fakeClient{}
		a, _ := newTestApp(t, api, "Model 3\nTesla\nSedan\n\n\nfive\n")
		loginAs(t, a, api, "admin")

		assert.ErrorContains(t, a.AddCar(context.Background()), "seats must be a whole number")
	})
}

func TestApp_Book(t *testing.T) {
	api := &fakeClient{}
	txID := "3f1c2a9e-8d4b-4c3a-9a51-0e6f5b7d2c10"
	a, out := newTestApp(t, api, "2026-05-01 10:00\n2026-05-02 12:00\n"+txID+"\n")

	require.NoError(t, a.Book(context.Background(), []string{"c1"}))

	assert.Equal(t, "c1", api.booking.CarID)
	assert.Equal(t, 26*time.Hour, api.booking.To.Sub(api.booking.From))
	assert.Equal(t, txID, api.booking.TransactionID)
	assert.Contains(t, out.String(), "Booking b1 pending: 26 hours, total 200.00")
}

func TestApp_BookValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bad time", "c1\ntomorrow\n", "unrecognised time"},
		{"reversed", "c1\n2026-05-02 10:00\n2026-05-01 10:00\n", "must end after it starts"},
		{"bad transaction", "c1\n2026-05-01\n2026-05-02\nnot-a-uuid\n", "must be a UUID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeClient{}
			a, _ := newTestApp(t, api, tt.input)

			err := a.Book(context.Background(), nil)
			assert.ErrorContains(t, err, tt.want)
			assert.Empty(t, api.booking.CarID, "no request sent")
		})
	}
}

func TestApp_Bookings(t *testing.T) {
	from := time.Date(2026, 5, 1, 10, 0, 0, 0, time.Local)
	api := &fakeClient{bookings: []*models.Booking{{
		ID: "b1", CarID: "c1", TotalHours: 24, TotalAmount: 120, Status: models.BookingConfirmed,
		BookedTimeSlots: models.TimeSlot{From: from, To: from.Add(24 * time.Hour)},
	}}}
	a, out := newTestApp(t, api, "")

	require.NoError(t, a.Bookings(context.Background()))

	assert.Contains(t, out.String(), "2026-05-01 10:00")
	assert.Contains(t, out.String(), "confirmed")

	api.bookings = nil
	out.Reset()
	require.NoError(t, a.Bookings(context.Background()))
	assert.Equal(t, "No bookings yet\n", out.String())
}

func TestApp_Avatar(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	path := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(path, png, 0o600))

	api := &fakeClient{upload: &client.AvatarUpload{Key: "avatars/u1/abc", URL: "http://s3/avatars/u1/abc?sig=1"}}
	a, out := newTestApp(t, api, "")
	loginAs(t, a, api, "user")

	require.NoError(t, a.Avatar(context.Background(), []string{path}))

	assert.Equal(t, "http://s3/avatars/u1/abc?sig=1", api.uploadedURL)
	assert.Equal(t, "image/png", api.uploadedCT)
	assert.Equal(t, png, api.uploaded)
	require.NotNil(t, a.session.User().Avatar)
	assert.Equal(t, "avatars/u1/abc", *a.session.User().Avatar)
	assert.Contains(t, out.String(), "Avatar uploaded")

	assert.ErrorContains(t, a.Avatar(context.Background(), nil), "usage")
}

func TestApp_Health(t *testing.T) {
	api := &fakeClient{health: &client.Health{Status: "ok", Service: "VoltDrive Backend", Database: "connected", Uptime: 3725}}
	a, out := newTestApp(t, api, "")

	require.NoError(t, a.Health(context.Background()))

	assert.Equal(t, "VoltDrive Backend: ok (database connected, uptime 1h02m05s)\n", out.String())
}

func TestApp_RunRestoresSession(t *testing.T) {
	api := &fakeClient{}
	a, out := newTestApp(t, api, "exit\n")
	loginAs(t, a, api, "user")

	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), "Logged in as Ann <ann@example.com>")
	assert.Contains(t, out.String(), "voltdrive (ann@example.com user)> ")
	assert.Contains(t, out.String(), "Bye!")
}
