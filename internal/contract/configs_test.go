package contract

import (
	"testing"

	"github.com/lineheat/lineheat/internal/heatcolor"
	"github.com/lineheat/lineheat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input with every field at its documented default.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		HeatLevels:   10,
		HeatColor:    "200,0,0",
		CoolColor:    "",
		ShowInRuler:  true,
		Mode:         "age",
		Scale:        "line-log",
		Color:        "yes",
		Output:       "text",
		CacheBackend: "sqlite",
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, 10, cfg.HeatLevels)
	assert.Equal(t, heatcolor.New(200, 0, 0), cfg.HeatColor)
	assert.Equal(t, 0.0, cfg.CoolColor.A, "cool default is heat color at zero opacity")
	assert.Equal(t, cfg.HeatColor.R, cfg.CoolColor.R)
	assert.Equal(t, schema.AgeMode, cfg.Mode)
	assert.Equal(t, schema.LineLogStrategy, cfg.Strategy)
	assert.True(t, cfg.ShowInRuler)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
}

func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"zero heat levels", func(in *ConfigRawInput) { in.HeatLevels = 0 }},
		{"negative heat levels", func(in *ConfigRawInput) { in.HeatLevels = -4 }},
		{"bad mode", func(in *ConfigRawInput) { in.Mode = "relative" }},
		{"bad scale", func(in *ConfigRawInput) { in.Scale = "quadratic" }},
		{"bad color flag", func(in *ConfigRawInput) { in.Color = "maybe" }},
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"negative width", func(in *ConfigRawInput) { in.Width = -1 }},
		{"bad backend", func(in *ConfigRawInput) { in.CacheBackend = "oracle" }},
		{"mysql without connect", func(in *ConfigRawInput) { in.CacheBackend = "mysql" }},
		{"postgres without connect", func(in *ConfigRawInput) { in.CacheBackend = "postgresql" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

func TestProcessAndValidateColorFallback(t *testing.T) {
	input := validInput()
	input.HeatColor = "definitely not a color"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	// Invalid color specs fall back silently instead of erroring.
	assert.Equal(t, heatcolor.New(200, 0, 0), cfg.HeatColor)
}

func TestProcessAndValidateModeNormalization(t *testing.T) {
	input := validInput()
	input.Mode = "LINE_COMMIT"
	input.Scale = "HUNKS"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.LineCommitMode, cfg.Mode)
	assert.Equal(t, schema.HunksStrategy, cfg.Strategy)
}

func TestBucketScale(t *testing.T) {
	cfg := &Config{Strategy: schema.LineLogStrategy}
	assert.Equal(t, schema.LogScale, cfg.BucketScale())
	cfg.Strategy = schema.HunksStrategy
	assert.Equal(t, schema.LinearScale, cfg.BucketScale())
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/lineheat"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost dbname=lineheat"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@localhost/lineheat"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost"))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "YES", "true", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("on")
	assert.Error(t, err)
}
