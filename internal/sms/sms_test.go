package sms_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialsheet/dialsheet/internal/sms"
)

func TestLogProviderSend(t *testing.T) {
	p := sms.NewLogProvider(nil) // nil logger → default
	result, err := p.Send(context.Background(), "+14155552671", "Hi Alice, can I send you the link?")
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "logged", result.Status)
}

func TestLogProviderImplementsInterface(t *testing.T) {
	var _ sms.Provider = (*sms.LogProvider)(nil)
}

func TestCaptureProviderRecordsCalls(t *testing.T) {
	p := &sms.CaptureProvider{}
	_, err := p.Send(context.Background(), "+14155552671", "first")
	require.NoError(t, err)
	_, err = p.Send(context.Background(), "whatsapp:+525512345678", "second")
	require.NoError(t, err)

	require.Len(t, p.Calls, 2)
	assert.Equal(t, "whatsapp:+525512345678", p.Calls[1].To)
	assert.Equal(t, "second", p.Calls[1].Body)

	p.Reset()
	assert.Empty(t, p.Calls)
}
