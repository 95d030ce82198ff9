package log

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))

	ctx, correlationID := WithCorrelationID(context.Background())
	require.NotEmpty(t, correlationID)
	assert.Equal(t, correlationID, GetCorrelationID(ctx))

	_, other := WithCorrelationID(context.Background())
	assert.NotEqual(t, correlationID, other)
}

func TestLogger_WithContext(t *testing.T) {
	base, hook := test.NewNullLogger()
	l := &logger{entry: logrus.NewEntry(base)}

	ctx, correlationID := WithCorrelationID(context.Background())
	l.WithContext(ctx).Info("requisição recebida")
	l.WithContext(context.Background()).Info("sem correlação")

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, correlationID, entries[0].Data[correlationIDField])
	assert.NotContains(t, entries[1].Data, correlationIDField)
}

func TestLogger_DevelopmentFields(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	base, hook := test.NewNullLogger()
	l := &logger{entry: logrus.NewEntry(base)}

	l.WithFields(Fields{"month": "2024-01", "user_agent": "curl"}).Info("registro salvo")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "2024-01", entry.Data["month"])
	assert.NotContains(t, entry.Data, "user_agent")
}

func TestSetup(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	require.NoError(t, Setup("debug"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	assert.Error(t, Setup("verboso"))
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
