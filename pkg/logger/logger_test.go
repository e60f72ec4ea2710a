package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/titya18/pos-react-front-office-sub001/pkg/logger"
)

func TestLogger_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	c := l.Component("settlement")
	c.Info().Str("order_id", "o-1").Msg("pago registrado")
	c.Debug().Msg("no debe salir")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "settlement", entry["component"])
	assert.Equal(t, "o-1", entry["order_id"])
	assert.Equal(t, "pago registrado", entry["message"])
}
