package ctxlog_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/treerec/slimids/internal/ctxlog"
)

func Test_FromContext_ReturnsStoredLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := ctxlog.New(&buf, true)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	ctxlog.FromContext(ctx).Debug("hello")

	assert.Same(t, logger, ctxlog.FromContext(ctx))
	assert.Contains(t, buf.String(), "msg=hello")
}

func Test_New_SuppressesDebug_When_NotVerbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := ctxlog.New(&buf, false)
	logger.Debug("quiet")
	logger.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func Test_FromContext_Discards_When_NoLogger(t *testing.T) {
	t.Parallel()

	logger := ctxlog.FromContext(context.Background())
	assert.NotNil(t, logger)
	logger.Error("dropped")
}
