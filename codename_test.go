package tmcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodeNameEmpty(t *testing.T) {
	_, err := NewCodeName("")
	assert.ErrorIs(t, err, ErrEmptyIdentifier)
}

func TestCodeNameCasings(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		lower      string
		pascal     string
		camel      string
		snake      string
	}{
		{"snake", "my_device_id", "mydeviceid", "MyDeviceId", "myDeviceId", "my_device_id"},
		{"single word", "temperature", "temperature", "Temperature", "temperature", "temperature"},
		{"pascal boundary", "DeviceId", "deviceid", "DeviceId", "deviceId", "device_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cn, err := NewCodeName(tt.identifier)
			require.NoError(t, err)
			assert.Equal(t, tt.lower, cn.Lower())
			assert.Equal(t, tt.pascal, cn.Pascal())
			assert.Equal(t, tt.camel, cn.Camel())
			assert.Equal(t, tt.snake, cn.Snake())
		})
	}
}

func TestCodeNameAcronymRule(t *testing.T) {
	cn, err := NewCodeName("HTTPCode")
	require.NoError(t, err)
	assert.Equal(t, "HttpCode", cn.Pascal())
	assert.Equal(t, "http_code", cn.Snake())
}

func TestCodeNameExtend(t *testing.T) {
	cn, err := NewCodeName("sensor_value")
	require.NoError(t, err)

	pascal, err := cn.Extend(extendStylePascal, "", "read", "resp")
	require.NoError(t, err)
	assert.Equal(t, "SensorValueReadResp", pascal)

	snake, err := cn.Extend(extendStyleSnake, "tm", "write")
	require.NoError(t, err)
	assert.Equal(t, "tm_sensor_value_write", snake)

	_, err = cn.Extend(extendStylePascal, "", "a", "b", "c", "d", "e")
	assert.ErrorIs(t, err, ErrInvalidNameRule)
}
