package services

import (
	"testing"
	"time"

	"warehouse/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinRequestAndVerify(t *testing.T) {
	svc := NewPinService()

	pin, err := svc.Request("staff@example.com")
	require.NoError(t, err)
	require.Len(t, pin, 6)

	require.NoError(t, svc.Verify("staff@example.com", pin))

	// single use
	err = svc.Verify("staff@example.com", pin)
	assert.True(t, domain.IsValidation(err), "a consumed PIN must not verify again")
}

func TestPinVerifyWithoutRequest(t *testing.T) {
	svc := NewPinService()
	err := svc.Verify("nobody@example.com", "123456")
	assert.True(t, domain.IsValidation(err))
}

func TestPinWrongValue(t *testing.T) {
	svc := NewPinService()
	pin, err := svc.Request("staff@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == pin {
		wrong = "000001"
	}
	err = svc.Verify("staff@example.com", wrong)
	assert.True(t, domain.IsValidation(err))

	// the right PIN still works after one miss
	assert.NoError(t, svc.Verify("staff@example.com", pin))
}

func TestPinLocksAfterTooManyAttempts(t *testing.T) {
	svc := NewPinService()
	pin, err := svc.Request("staff@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == pin {
		wrong = "000001"
	}
	for i := 0; i < maxPinAttempts; i++ {
		err = svc.Verify("staff@example.com", wrong)
		require.Error(t, err)
	}
	assert.True(t, domain.IsLocked(err), "the attempt that hits the limit reports locked")

	// even the correct PIN is refused once locked
	err = svc.Verify("staff@example.com", pin)
	assert.True(t, domain.IsLocked(err))

	// a fresh request clears the lock
	fresh, err := svc.Request("staff@example.com")
	require.NoError(t, err)
	assert.NoError(t, svc.Verify("staff@example.com", fresh))
}

func TestPinExpires(t *testing.T) {
	svc := NewPinService()
	pin, err := svc.Request("staff@example.com")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(pinTTL + time.Minute) }

	err = svc.Verify("staff@example.com", pin)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "expired")
}

func TestPinSenderFailure(t *testing.T) {
	svc := NewPinService()
	svc.Sender = func(email, pin string) error {
		return domain.InternalError{Msg: "smtp down"}
	}
	_, err := svc.Request("staff@example.com")
	assert.True(t, domain.IsInternal(err))
}
