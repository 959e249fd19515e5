package bootstrap

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-empledger/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_WritesRotatedFile(t *testing.T) {
	prev := zap.L()
	defer zap.ReplaceGlobals(prev)

	file := filepath.Join(t.TempDir(), "app.log")
	logger, err := NewLogger(&config.Config{LogLevel: "info", LogFile: file, Env: config.Production})
	assert.NoError(t, err)

	zap.L().Named("test").Info("hello from test", zap.String("request_id", "REQ-1"))
	_ = logger.Sync()

	data, err := os.ReadFile(file)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello from test"`)
	assert.Contains(t, string(data), `"request_id":"REQ-1"`)
}

func TestNewLogger_RejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger(&config.Config{LogLevel: "loud"})
	assert.Error(t, err)
}

type recordingAuditLogger struct {
	entries []AuditLog
}

func (r *recordingAuditLogger) Log(_ context.Context, entry AuditLog) {
	r.entries = append(r.entries, entry)
}

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	defer l.Close()
	_, port, _ := net.SplitHostPort(l.Addr().String())
	return port
}

func TestStartHTTPServer_ShutsDownOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	audit := &recordingAuditLogger{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- StartHTTPServer(ctx, gin.New(), ServerConfig{Port: freePort(t), ShutdownTimeout: time.Second}, audit)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Len(t, audit.entries, 1)
	assert.Equal(t, "SERVER_SHUTDOWN", audit.entries[0].Action)
}

func TestStdoutAuditLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewStdoutAuditLogger(zap.New(core))

	l.Log(context.Background(), AuditLog{Action: "WORKER_SHUTDOWN", Message: "bye"})

	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "WORKER_SHUTDOWN", logs.All()[0].ContextMap()["action"])
}
