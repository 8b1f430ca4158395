package middleware_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LerianStudio/lib-license-verify/license"
	"github.com/LerianStudio/lib-license-verify/middleware"
	"github.com/LerianStudio/lib-license-verify/model"
	"github.com/LerianStudio/lib-license-verify/test/helper"
	"github.com/LerianStudio/lib-license-verify/test/mocks"
	"github.com/LerianStudio/lib-license-verify/validation"
	"github.com/benbjohnson/clock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	now          = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	installation = uuid.MustParse("c0c0c0c0-0000-4000-8000-00000000000c")
)

type fixture struct {
	client *middleware.LicenseClient
	clock  *clock.Mock
	logger *mocks.Logger
}

func newFixture(t *testing.T, expires time.Duration) *fixture {
	t.Helper()

	authority := helper.NewAuthority(t)

	lic := helper.OrganizationLicense(installation, license.CurrentOrganizationVersion, now)
	lic.Expires = now.Add(expires)
	authority.Sign(lic)

	mock := clock.NewMock()
	mock.Set(now)

	logger := mocks.NewLogger()

	client, err := middleware.NewLicenseClient(model.Config{
		ApplicationName: "vault",
		InstallationID:  installation.String(),
		PublicKey:       authority.PublicKeyBase64(),
	}, lic, license.KindOrganization, logger.AsLogger(), validation.WithClock(mock))
	require.NoError(t, err)

	t.Cleanup(client.Close)

	return &fixture{client: client, clock: mock, logger: logger}
}

func newApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(handler)
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("success")
	})

	return app
}

func get(t *testing.T, app *fiber.App) (int, string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestMiddlewareValidLicense(t *testing.T) {
	f := newFixture(t, 365*24*time.Hour)

	code, body := get(t, newApp(f.client.Middleware()))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body)
}

func TestMiddlewareRejectedAtStartup(t *testing.T) {
	f := newFixture(t, -time.Hour)

	var terminated model.ValidationResult
	f.client.SetTerminationHandler(func(result model.ValidationResult) { terminated = result })

	app := newApp(f.client.Middleware())
	assert.Equal(t, []string{validation.ReasonExpired}, terminated.Reasons)

	code, body := get(t, app)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Contains(t, body, "LCS-0002")
	assert.Contains(t, body, "No license has been installed.")
}

func TestMiddlewareDefaultTerminationPanics(t *testing.T) {
	f := newFixture(t, -time.Hour)

	assert.PanicsWithValue(t, "LICENSE VALIDATION FAILED: Invalid license. The license has expired.", func() {
		f.client.Middleware()
	})
}

func TestMiddlewareRefusesOnceLicenseExpires(t *testing.T) {
	f := newFixture(t, 90*time.Minute)
	app := newApp(f.client.Middleware())

	code, _ := get(t, app)
	require.Equal(t, http.StatusOK, code)

	f.clock.Add(time.Hour)
	f.clock.Add(time.Hour)

	require.Eventually(t, func() bool {
		return !f.client.Validator().Current().Valid
	}, 2*time.Second, 10*time.Millisecond)

	code, body := get(t, app)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Contains(t, body, "The license has expired.")
}

func TestNilClientFailsClosed(t *testing.T) {
	var client *middleware.LicenseClient

	code, body := get(t, newApp(client.Middleware()))
	assert.Equal(t, http.StatusForbidden, code)
	assert.Contains(t, body, "LCS-0008")

	_, err := client.UnaryServerInterceptor()(context.Background(), nil, &grpc.UnaryServerInfo{}, func(context.Context, any) (any, error) {
		return "ok", nil
	})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestUnaryInterceptor(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/vault.Vault/Get"}
	handler := func(context.Context, any) (any, error) { return "ok", nil }

	t.Run("valid license", func(t *testing.T) {
		f := newFixture(t, 365*24*time.Hour)

		resp, err := f.client.UnaryServerInterceptor()(context.Background(), "req", info, handler)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
	})

	t.Run("invalid license", func(t *testing.T) {
		f := newFixture(t, -time.Hour)
		f.client.SetTerminationHandler(func(model.ValidationResult) {})

		resp, err := f.client.UnaryServerInterceptor()(context.Background(), "req", info, handler)
		assert.Nil(t, resp)
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
		assert.Contains(t, status.Convert(err).Message(), "LCS-0002: ")
	})
}

type fakeStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *fakeStream) Context() context.Context { return s.ctx }

func TestStreamInterceptor(t *testing.T) {
	info := &grpc.StreamServerInfo{FullMethod: "/vault.Vault/Watch"}
	stream := &fakeStream{ctx: context.Background()}

	f := newFixture(t, 365*24*time.Hour)

	called := false
	err := f.client.StreamServerInterceptor()(nil, stream, info, func(any, grpc.ServerStream) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	rejected := newFixture(t, -time.Hour)
	rejected.client.SetTerminationHandler(func(model.ValidationResult) {})

	err = rejected.client.StreamServerInterceptor()(nil, stream, info, func(any, grpc.ServerStream) error {
		t.Fatal("handler must not run")
		return nil
	})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestStartupValidationRunsOnce(t *testing.T) {
	f := newFixture(t, 365*24*time.Hour)

	f.client.Middleware()
	f.client.UnaryServerInterceptor()
	f.client.StreamServerInterceptor()

	installs := 0
	for _, e := range f.logger.Entries() {
		if e.Level == "INFO" && e.Message == "Organization license installed for vault" {
			installs++
		}
	}

	assert.Equal(t, 1, installs)
}
