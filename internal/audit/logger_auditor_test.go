// filepath: internal/audit/logger_auditor_test.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedAuditor(enabled bool) (*LoggerAuditor, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return &LoggerAuditor{enabled: enabled, logger: logger}, buf
}

func TestLoggerAuditor_Log(t *testing.T) {
	auditor, buf := newBufferedAuditor(true)

	auditor.Log(context.Background(), "pet.create", "local", "Pet:1", map[string]interface{}{"name": "Toto"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "AUDIT EVENT", entry["msg"])
	assert.Equal(t, "pet.create", entry["audit_action"])
	assert.Equal(t, "local", entry["audit_actor"])
	assert.Equal(t, "Pet:1", entry["audit_resource"])
	assert.Equal(t, "Toto", entry["detail.name"])

	_, err := ulid.Parse(entry["audit_id"].(string))
	assert.NoError(t, err)
}

func TestLoggerAuditor_Disabled(t *testing.T) {
	auditor, buf := newBufferedAuditor(false)

	auditor.Log(context.Background(), "pet.delete", "local", "Pet:1", nil)

	assert.Zero(t, buf.Len())
}
