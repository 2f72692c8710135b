package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv("APP_ENV", "testing")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SOURCE_PATH", "/data/activity.csv")
	t.Setenv("SOURCE_SEGMENT_SIZE", "5000")
	t.Setenv("SOURCE_CACHE_TTL", "90s")
	t.Setenv("DETECTION_VOCABULARY", "darn, heck,,")
	t.Setenv("DETECTION_LARGE_SPENDING_THRESHOLD", "2500")
	t.Setenv("OPERATOR_TOKEN_EXPIRY", "5m")
	t.Setenv("OPERATOR_ALLOW_UNAUTHENTICATED_RAW", "true")
	t.Setenv("HASH_PARALLELISM", "4")
	t.Setenv("EXPORT_FILE_NAME", "out.csv")

	config := &AppConfig{}
	require.NoError(t, LoadEnv(config))

	assert.Equal(t, "testing", config.App.Environment)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "/data/activity.csv", config.Source.Path)
	assert.Equal(t, 5000, config.Source.SegmentSize)
	assert.Equal(t, 90*time.Second, config.Source.CacheTTL)
	assert.Equal(t, []string{"darn", "heck"}, config.Detection.Vocabulary)
	assert.Equal(t, "2500", config.Detection.LargeSpendingThreshold)
	assert.Equal(t, 5*time.Minute, config.Operator.TokenExpiry)
	assert.True(t, config.Operator.AllowUnauthenticatedRaw)
	assert.Equal(t, uint8(4), config.PasswordHash.Parallelism)
	assert.Equal(t, "out.csv", config.Export.FileName)
}

func TestProcessStructEnv(t *testing.T) {
	type testStruct struct {
		StringField string        `env:"TEST_STRING"`
		IntField    int           `env:"TEST_INT"`
		BoolField   bool          `env:"TEST_BOOL"`
		DurField    time.Duration `env:"TEST_DURATION"`
		FloatField  float64       `env:"TEST_FLOAT"`
		StrSlice    []string      `env:"TEST_SLICE"`
		NoEnvTag    string
	}

	t.Setenv("TEST_STRING", "test-value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_DURATION", "15m")
	t.Setenv("TEST_FLOAT", "3.14")
	t.Setenv("TEST_SLICE", "item1, item2 ,item3")

	s := &testStruct{}
	require.NoError(t, processStructEnv(s))

	assert.Equal(t, "test-value", s.StringField)
	assert.Equal(t, 42, s.IntField)
	assert.True(t, s.BoolField)
	assert.Equal(t, 15*time.Minute, s.DurField)
	assert.InDelta(t, 3.14, s.FloatField, 1e-9)
	assert.Equal(t, []string{"item1", "item2", "item3"}, s.StrSlice)
	assert.Empty(t, s.NoEnvTag)
}

func TestProcessStructEnvErrors(t *testing.T) {
	tests := []struct {
		name     string
		envName  string
		envValue string
		target   interface{}
	}{
		{
			name:     "Invalid int",
			envName:  "TEST_INT",
			envValue: "not-an-int",
			target: &struct {
				IntField int `env:"TEST_INT"`
			}{},
		},
		{
			name:     "Uint overflow",
			envName:  "TEST_UINT8",
			envValue: "300",
			target: &struct {
				Small uint8 `env:"TEST_UINT8"`
			}{},
		},
		{
			name:     "Invalid bool",
			envName:  "TEST_BOOL",
			envValue: "not-a-bool",
			target: &struct {
				BoolField bool `env:"TEST_BOOL"`
			}{},
		},
		{
			name:     "Invalid duration",
			envName:  "TEST_DURATION",
			envValue: "not-a-duration",
			target: &struct {
				DurField time.Duration `env:"TEST_DURATION"`
			}{},
		},
		{
			name:     "Invalid float",
			envName:  "TEST_FLOAT",
			envValue: "not-a-float",
			target: &struct {
				FloatField float64 `env:"TEST_FLOAT"`
			}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envName, tt.envValue)
			assert.Error(t, processStructEnv(tt.target))
		})
	}
}
