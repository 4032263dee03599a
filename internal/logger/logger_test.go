package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"err":     slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, ParseLevel(name))
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var out bytes.Buffer
	Init(Config{LogLevel: "warn"}, &out)
	defer Init(NewConfig(), nil)

	Infof("quiet %d", 1)
	Warnf("loud %d", 2)

	assert.NotContains(t, out.String(), "quiet 1")
	assert.Contains(t, out.String(), "loud 2")
	assert.Contains(t, out.String(), "logger_test.go")
}

func TestTagFiltering(t *testing.T) {
	var out bytes.Buffer
	Init(Config{LogLevel: "debug", DisabledTags: []string{"Noisy"}}, &out)
	defer Init(NewConfig(), nil)

	DebugTagf("noisy", "dropped")
	DebugTagf("useful", "kept")

	assert.NotContains(t, out.String(), "dropped")
	assert.Contains(t, out.String(), "kept")
	assert.Contains(t, out.String(), "tag=useful")
}

func TestEnabledTagsDropUntagged(t *testing.T) {
	var out bytes.Buffer
	Init(Config{LogLevel: "debug", EnabledTags: []string{"viewport"}}, &out)
	defer Init(NewConfig(), nil)

	Debugf("untagged")
	DebugTagf("viewport", "scrolled")

	assert.NotContains(t, out.String(), "untagged")
	assert.Contains(t, out.String(), "scrolled")
}

func TestPackageAndFileFiltering(t *testing.T) {
	var out bytes.Buffer
	Init(Config{LogLevel: "debug", DisabledPackages: []string{"logger"}}, &out)
	Infof("from logger package")
	assert.NotContains(t, out.String(), "from logger package")

	out.Reset()
	Init(Config{LogLevel: "debug", EnabledFiles: []string{"other.go"}}, &out)
	Infof("not in other.go")
	assert.NotContains(t, out.String(), "not in other.go")

	Init(NewConfig(), nil)
}
