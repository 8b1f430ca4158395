package validation

import (
	"context"
	"fmt"
	"sync"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-commons/commons/zap"
	cn "github.com/LerianStudio/lib-license-verify/constant"
	"github.com/LerianStudio/lib-license-verify/duo"
	"github.com/LerianStudio/lib-license-verify/internal/cache"
	"github.com/LerianStudio/lib-license-verify/internal/config"
	"github.com/LerianStudio/lib-license-verify/internal/metrics"
	"github.com/LerianStudio/lib-license-verify/internal/refresh"
	"github.com/LerianStudio/lib-license-verify/internal/shutdown"
	"github.com/LerianStudio/lib-license-verify/license"
	"github.com/LerianStudio/lib-license-verify/model"
	"github.com/LerianStudio/lib-license-verify/verifier"
	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

// ReasonNotInstalled is reported by Current before a license was installed.
const ReasonNotInstalled = "No license has been installed."

// Client holds the installation license, keeps it validated in the background
// and exposes clock-bound wrappers over the Engine.
type Client struct {
	config          *config.ClientConfig
	engine          *Engine
	cacheManager    *cache.Manager
	refreshManager  *refresh.Manager
	shutdownManager *shutdown.Manager
	duoSigner       *duo.Signer
	clock           clock.Clock
	metrics         *metrics.Recorder
	logger          log.Logger

	// ownsCache is set when New built the cache, which Close then releases
	ownsCache bool
	closeOnce sync.Once

	mu      sync.RWMutex
	active  license.License
	target  license.Kind
	current model.ValidationResult
}

// Option configures a Client.
type Option func(*Client)

// WithClock replaces the wall clock.
func WithClock(clk clock.Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// WithMetrics records validation outcomes on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Client) { c.metrics = r }
}

// WithCache shares a signature verdict cache between clients.
func WithCache(m *cache.Manager) Option {
	return func(c *Client) { c.cacheManager = m }
}

// New creates a new license validation client
func New(cfg model.Config, logger *log.Logger, opts ...Option) (*Client, error) {
	var l log.Logger
	if logger != nil {
		l = *logger
	} else {
		l = zap.InitializeLogger()
	}

	clientConfig, err := config.FromModel(cfg, l)
	if err != nil {
		l.Errorf("Invalid configuration: %s", err.Error())
		return nil, err
	}

	client := &Client{
		config:          clientConfig,
		shutdownManager: shutdown.New(),
		logger:          l,
		current:         model.Failure(ReasonNotInstalled),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.clock == nil {
		client.clock = clock.New()
	}

	if client.cacheManager == nil {
		client.cacheManager, err = cache.New(clientConfig.CacheTTL, l)
		if err != nil {
			l.Errorf("Failed to initialize cache: %s", err.Error())
			return nil, err
		}

		client.ownsCache = true
	}

	client.engine = NewEngine(verifier.New(clientConfig.Scheme,
		verifier.WithCache(client.cacheManager),
		verifier.WithLogger(l),
		verifier.WithMetrics(client.metrics)))

	if clientConfig.Duo != nil {
		client.duoSigner = duo.NewSigner(*clientConfig.Duo,
			duo.WithClock(client.clock),
			duo.WithMetrics(client.metrics))
	}

	client.refreshManager = refresh.New(client, clientConfig.RefreshInterval, client.clock, l)

	return client, nil
}

// SetTerminationHandler customizes how the application terminates when the
// installation license is rejected at startup.
func (c *Client) SetTerminationHandler(handler shutdown.Handler) {
	c.shutdownManager.SetHandler(handler)
}

// Terminate stops the background refresh and hands result to the termination handler.
func (c *Client) Terminate(result model.ValidationResult) {
	c.refreshManager.Shutdown()
	c.shutdownManager.Terminate(result)
}

// Install validates lic against this installation and, when valid, makes it the
// active license. An invalid license leaves the active one in place.
func (c *Client) Install(lic license.License, target license.Kind) (model.ValidationResult, error) {
	result, err := c.ValidateInstallation(lic, target)
	if err != nil {
		return model.ValidationResult{}, err
	}

	if !result.Valid {
		return result, nil
	}

	c.mu.Lock()
	c.active = lic
	c.target = target
	c.current = result
	c.mu.Unlock()

	c.logger.Infof("%s license installed for %s", lic.Kind(), c.config.AppName)

	return result, nil
}

// ValidateInstallation checks lic against the configured installation at the current time.
func (c *Client) ValidateInstallation(lic license.License, target license.Kind) (model.ValidationResult, error) {
	now := c.clock.Now()

	result, err := c.engine.ValidateAgainstInstallation(lic, target, c.config.InstallationID, now)
	if err != nil {
		c.metrics.ObserveValidation(metrics.CheckInstallation, metrics.OutcomeError)
		c.logger.Errorf("License validation failed: %v", err)

		return model.ValidationResult{}, err
	}

	header := lic.Common()
	result.ExpiryDaysLeft = header.DaysLeft(now)
	result.IsTrial = header.Trial

	if !result.Valid {
		c.metrics.ObserveValidation(metrics.CheckInstallation, metrics.OutcomeInvalid)
		c.logger.Errorf("LICENSE INVALID: %s", result.Message())

		return result, nil
	}

	c.metrics.ObserveValidation(metrics.CheckInstallation, metrics.OutcomeValid)
	c.processValidResult(result)

	return result, nil
}

// ValidateSubject compares subject with the entitlements of lic.
func (c *Client) ValidateSubject(lic license.License, subject license.Subject) (model.ValidationResult, error) {
	result, err := c.engine.ValidateEntityAgainstLicense(lic, subject)
	if err != nil {
		c.metrics.ObserveValidation(metrics.CheckSubject, metrics.OutcomeError)
		c.logger.Errorf("Subject validation failed: %v", err)

		return model.ValidationResult{}, err
	}

	if !result.Valid {
		c.metrics.ObserveValidation(metrics.CheckSubject, metrics.OutcomeInvalid)
		c.logger.Warnf("%s does not match its license: %s", subject.Kind(), result.Message())

		return result, nil
	}

	c.metrics.ObserveValidation(metrics.CheckSubject, metrics.OutcomeValid)

	return result, nil
}

// ValidateActiveSubject compares subject with the active license.
func (c *Client) ValidateActiveSubject(subject license.Subject) (model.ValidationResult, error) {
	lic := c.Active()
	if lic == nil {
		return model.ValidationResult{}, cn.ErrLicenseNotLoaded
	}

	return c.ValidateSubject(lic, subject)
}

// Revalidate re-checks the active license and updates Current. It implements
// refresh.Validator.
func (c *Client) Revalidate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.RLock()
	lic, target := c.active, c.target
	c.mu.RUnlock()

	if lic == nil {
		return cn.ErrLicenseNotLoaded
	}

	result, err := c.ValidateInstallation(lic, target)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.current = result
	c.mu.Unlock()

	if !result.Valid {
		return fmt.Errorf("%w: %s", cn.ErrLicenseInvalid, result.Message())
	}

	return nil
}

// Current returns the latest result for the active license.
func (c *Client) Current() model.ValidationResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.current
}

// Active returns the installed license, or nil.
func (c *Client) Active() license.License {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.active
}

// InstallationID returns the configured installation identity.
func (c *Client) InstallationID() uuid.UUID {
	return c.config.InstallationID
}

// Duo returns the Duo signer, or nil when Duo credentials are not configured.
func (c *Client) Duo() *duo.Signer {
	return c.duoSigner
}

// processValidResult logs expiry warnings for a valid license
func (c *Client) processValidResult(res model.ValidationResult) {
	if res.IsTrial {
		c.logger.Infof("Running on a trial license (%d days left)", res.ExpiryDaysLeft)
	}

	if res.ExpiryDaysLeft <= cn.ExpiryDaysToUrgentWarn {
		c.logger.Warnf("WARNING: License expires in %d days. Contact your account manager to renew", res.ExpiryDaysLeft)
	} else if res.ExpiryDaysLeft <= cn.ExpiryDaysToNormalWarn {
		c.logger.Warnf("License expires in %d days", res.ExpiryDaysLeft)
	}
}

// StartBackgroundRefresh runs a ticker to re-validate the active license periodically
func (c *Client) StartBackgroundRefresh(ctx context.Context) {
	c.refreshManager.Start(ctx)
}

// ShutdownBackgroundRefresh stops the background refresh process
func (c *Client) ShutdownBackgroundRefresh() {
	c.refreshManager.Shutdown()
}

// Close stops the background refresh and releases the verdict cache when the
// client created it. A cache passed with WithCache stays open.
func (c *Client) Close() {
	c.refreshManager.Shutdown()

	c.closeOnce.Do(func() {
		if c.ownsCache {
			c.cacheManager.Close()
		}
	})
}

// GetLogger returns the logger used by the client
func (c *Client) GetLogger() log.Logger {
	return c.logger
}
