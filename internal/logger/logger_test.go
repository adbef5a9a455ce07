package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestAnonymize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "email", in: "login failed for alice@example.com", want: "login failed for [REDACTED_EMAIL]"},
		{name: "bearer", in: "header Bearer abc.def.ghi", want: "header Bearer [REDACTED_TOKEN]"},
		{name: "bare jwt", in: "token=eyJhbGciOiJIUzI1NiJ9.e30.sig", want: "token=[REDACTED_TOKEN]"},
		{name: "wallet", in: "wallet 0xAbCdEf0123456789abcdef0123456789ABCDEF01 logged in", want: "wallet [REDACTED_WALLET] logged in"},
		{name: "clean", in: "post 12 liked", want: "post 12 liked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Anonymize(tt.in))
		})
	}
}

func TestNew(t *testing.T) {
	log, err := New("production", "warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	log, err = New("development", "")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))

	_, err = New("development", "loud")
	require.Error(t, err)
}

func TestErrField(t *testing.T) {
	f := Err(errors.New("duplicate email bob@example.com"))
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "duplicate email [REDACTED_EMAIL]", f.String)
	assert.Equal(t, zap.Skip(), Err(nil))
}
