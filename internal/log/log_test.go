package log

import (
	"bytes"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"", log.WarnLevel},
		{"debug", log.DebugLevel},
		{"TRACE", log.DebugLevel},
		{"info", log.InfoLevel},
		{" error ", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"bogus", log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestHandlerWritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "debug")
	defer InitWriter(&bytes.Buffer{}, "warn")

	WithFields(Fields{"public_ip": "93.184.216.119", "device": "i-1212f003"}).Info("address located")

	out := buf.String()
	assert.Contains(t, out, " I address located device=i-1212f003 public_ip=93.184.216.119")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "error")
	defer InitWriter(&bytes.Buffer{}, "warn")

	WithField("n", 1).Info("hidden")
	WithField("n", 2).Error("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), " E shown n=2")
}

func TestEntryKeepsFields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "info")
	defer InitWriter(&bytes.Buffer{}, "warn")

	var entry *Entry = WithField("run_id", "r-1")
	entry.WithField("changed", true).Info("reconciled address")

	assert.Contains(t, buf.String(), " I reconciled address changed=true run_id=r-1")
}
