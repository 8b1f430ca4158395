package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/LerianStudio/lib-commons/commons/log"
	cn "github.com/LerianStudio/lib-license-verify/constant"
	"github.com/LerianStudio/lib-license-verify/internal/shutdown"
	"github.com/LerianStudio/lib-license-verify/license"
	"github.com/LerianStudio/lib-license-verify/model"
	"github.com/LerianStudio/lib-license-verify/pkg"
	"github.com/LerianStudio/lib-license-verify/validation"
)

const entityLicense = "License"

// LicenseClient enforces the installation license on HTTP and gRPC servers.
// It's a wrapper around the validation client
type LicenseClient struct {
	validator *validation.Client
	license   license.License
	target    license.Kind
	// initOnce ensures startup validation and background refresh happen only once
	// even when both HTTP middleware and gRPC interceptors are used
	initOnce sync.Once
}

// NewLicenseClient creates a license client that installs lic as a license for
// target when the first middleware or interceptor is built.
func NewLicenseClient(cfg model.Config, lic license.License, target license.Kind, logger *log.Logger, opts ...validation.Option) (*LicenseClient, error) {
	validator, err := validation.New(cfg, logger, opts...)
	if err != nil {
		return nil, err
	}

	return &LicenseClient{
		validator: validator,
		license:   lic,
		target:    target,
	}, nil
}

// startupValidation installs the license and starts the background refresh.
// A rejected license is handed to the termination handler, which panics by default.
func (c *LicenseClient) startupValidation() {
	if c == nil || c.validator == nil {
		return
	}

	c.initOnce.Do(func() {
		l := c.validator.GetLogger()

		result, err := c.validator.Install(c.license, c.target)
		if err != nil {
			l.Errorf("License validation failed: %v (code %s)", err, cn.ErrStartupLicenseValidationFailed.Error())
			c.validator.Terminate(model.Failure(err.Error()))

			return
		}

		if !result.Valid {
			l.Errorf("License is invalid (code %s)", cn.ErrLicenseInvalid.Error())
			c.validator.Terminate(result)

			return
		}

		c.validator.StartBackgroundRefresh(context.Background())
	})
}

// gate returns the business error to send when requests must be refused.
func (c *LicenseClient) gate() error {
	if c == nil || c.validator == nil {
		return pkg.ValidateBusinessError(cn.ErrLicenseNotLoaded, entityLicense)
	}

	result := c.validator.Current()
	if result.Valid {
		return nil
	}

	c.validator.GetLogger().Errorf("Request refused: %s (code %s)", result.Message(), cn.ErrLicenseInvalid.Error())

	return pkg.ValidateBusinessError(cn.ErrLicenseInvalid, entityLicense, strings.Join(result.Reasons, " "))
}

// grpcMessage renders a business error as "<code>: <message>".
func grpcMessage(err error) string {
	if forbidden, ok := err.(pkg.ForbiddenError); ok {
		return fmt.Sprintf("%s: %s", forbidden.Code, forbidden.Message)
	}

	return err.Error()
}

// Validator returns the underlying validation client, e.g. to check subjects or sign Duo requests.
func (c *LicenseClient) Validator() *validation.Client {
	return c.validator
}

// SetTerminationHandler allows customizing how the application terminates when license validation fails
func (c *LicenseClient) SetTerminationHandler(handler shutdown.Handler) {
	if c != nil && c.validator != nil {
		c.validator.SetTerminationHandler(handler)
	}
}

// ShutdownBackgroundRefresh stops the background refresh process
func (c *LicenseClient) ShutdownBackgroundRefresh() {
	if c != nil && c.validator != nil {
		c.validator.ShutdownBackgroundRefresh()
	}
}

// Close stops the background refresh and releases the client's resources
func (c *LicenseClient) Close() {
	if c != nil && c.validator != nil {
		c.validator.Close()
	}
}

// GetLogger returns the logger used by the client
func (c *LicenseClient) GetLogger() log.Logger {
	return c.validator.GetLogger()
}
