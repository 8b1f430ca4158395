package pkg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/LerianStudio/lib-license-verify/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBusinessError(t *testing.T) {
	t.Run("wrapped license error becomes forbidden", func(t *testing.T) {
		err := fmt.Errorf("%w: Invalid license. The license has expired.", constant.ErrLicenseInvalid)

		mapped := ValidateBusinessError(err, "License", "The license has expired.")

		var forbidden ForbiddenError
		require.True(t, errors.As(mapped, &forbidden))
		assert.Equal(t, "LCS-0002", forbidden.Code)
		assert.Equal(t, "Invalid License", forbidden.Title)
		assert.Equal(t, "The installed license is not valid for this installation. The license has expired.", forbidden.Message)
		assert.ErrorIs(t, mapped, constant.ErrLicenseInvalid)
	})

	t.Run("unsupported version is unprocessable", func(t *testing.T) {
		mapped := ValidateBusinessError(constant.ErrUnsupportedLicenseVersion, "License")

		var unprocessable UnprocessableOperationError
		require.True(t, errors.As(mapped, &unprocessable))
		assert.Equal(t, "LCS-0003", unprocessable.Code)
		assert.NotContains(t, unprocessable.Message, "%!")
	})

	t.Run("configuration errors are validation errors", func(t *testing.T) {
		mapped := ValidateBusinessError(constant.ErrInvalidInstallationID, "Config")

		var validation ValidationError
		require.True(t, errors.As(mapped, &validation))
		assert.Equal(t, "LCS-0006 - The INSTALLATION_ID environment variable must be a GUID.", validation.Error())
	})

	t.Run("weak duo keys are validation errors", func(t *testing.T) {
		mapped := ValidateBusinessError(fmt.Errorf("%w: %w", constant.ErrInvalidDuoConfig, errors.New("short key")), "Config")

		var validation ValidationError
		require.True(t, errors.As(mapped, &validation))
		assert.Equal(t, "LCS-0011", validation.Code)
		assert.Contains(t, validation.Message, "DUO_SECRET_KEY 40 characters")
	})

	t.Run("unknown errors pass through", func(t *testing.T) {
		err := errors.New("boom")
		assert.Equal(t, err, ValidateBusinessError(err, "License"))
	})
}

func TestValidateInternalError(t *testing.T) {
	err := ValidateInternalError(errors.New("boom"), "License")

	var internal InternalServerError
	require.True(t, errors.As(err, &internal))
	assert.Equal(t, constant.ErrInternalServer.Error(), internal.Code)
}
