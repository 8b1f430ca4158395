package cache

import (
	"testing"
	"time"

	"github.com/LerianStudio/lib-license-verify/constant"
	"github.com/LerianStudio/lib-license-verify/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAndGet(t *testing.T) {
	logger := &mocks.Logger{}

	m, err := New(time.Minute, logger)
	require.NoError(t, err)
	defer m.Close()

	_, found := m.Get("missing")
	assert.False(t, found)

	m.Store("valid-key-0123456789", true)
	m.Store("forged-key-0123456789", false)
	m.Wait()

	verdict, found := m.Get("valid-key-0123456789")
	require.True(t, found)
	assert.True(t, verdict)

	verdict, found = m.Get("forged-key-0123456789")
	require.True(t, found)
	assert.False(t, verdict)

	assert.True(t, logger.Contains("Stored signature verdict for valid-key-01"))
	assert.False(t, logger.Contains("0123456789"))
}

func TestDefaultTTL(t *testing.T) {
	m, err := New(0, &mocks.Logger{})
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, constant.CacheTTL, m.ttl)
}
