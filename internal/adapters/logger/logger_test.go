package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/larder/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger injects a buffer and forces NO_COLOR so output carries no
// escape sequences.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLoggerInfo(t *testing.T) {
	tests := []struct {
		name       string
		msg        string
		goldenName string
	}{
		{
			name:       "simple message",
			msg:        "resolving dependencies",
			goldenName: "info_basic",
		},
		{
			name:       "empty message",
			msg:        "",
			goldenName: "info_empty",
		},
		{
			name:       "multiline message",
			msg:        "line1\nline2",
			goldenName: "info_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Info(tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLoggerWarn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("source is unreachable, serving cached catalog")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLoggerError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "plain error",
			err:        errors.New("lockfile is out of date"),
			goldenName: "error_plain",
		},
		{
			name:       "multiline error",
			err:        errors.New("yaml: unmarshal errors:\n  line 30: cannot unmarshal"),
			goldenName: "error_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLoggerErrorChain(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name: "three level chain",
			err: zerr.Wrap(
				zerr.Wrap(
					errors.New("connection refused"),
					"catalog fetch failed",
				),
				"install failed",
			),
			goldenName: "error_chain_three",
		},
		{
			name: "two level chain",
			err: zerr.Wrap(
				errors.New("no such host"),
				"universe build failed",
			),
			goldenName: "error_chain_two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLoggerErrorStdlibChain(t *testing.T) {
	// fmt.Errorf chains carry one flat message, so there is no cause trail.
	inner := errors.New("connection refused")
	middle := fmt.Errorf("catalog fetch failed: %w", inner)
	outer := fmt.Errorf("install failed: %w", middle)

	lg, buf := newTestLogger(t)
	lg.Error(outer)

	g := goldie.New(t)
	g.Assert(t, "error_chain_stdlib", buf.Bytes())
}

func TestLoggerErrorMetadata(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name: "single field",
			err: zerr.With(
				zerr.New("package not found"),
				"package", "alpha",
			),
			goldenName: "error_metadata_single",
		},
		{
			name: "fields across levels",
			err: func() error {
				inner := zerr.With(zerr.New("download failed"), "status", 503)
				outer := zerr.Wrap(inner, "install failed")
				return zerr.With(outer, "package", "beta")
			}(),
			goldenName: "error_metadata_levels",
		},
		{
			name: "sorted fields",
			err: func() error {
				e := zerr.New("resolution failed")
				e = zerr.With(e, "zebra", "z")
				e = zerr.With(e, "alpha", "a")
				e = zerr.With(e, "mike", "m")
				return e
			}(),
			goldenName: "error_metadata_sorted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLoggerErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String(), "expected no output for nil error")
}

func TestLoggerSetJSON(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		lg, buf := newTestLogger(t)
		lg.SetJSON(true)
		lg.Error(errors.New("test error message"))

		out := buf.String()
		assert.Contains(t, out, `"error"`)
		assert.Contains(t, out, `"level":"ERROR"`)
		assert.NotContains(t, out, "✗")
	})

	t.Run("disabled", func(t *testing.T) {
		lg, buf := newTestLogger(t)
		lg.SetJSON(false)
		lg.Error(errors.New("test error message"))

		g := goldie.New(t)
		g.Assert(t, "setjson_disabled", buf.Bytes())
	})
}

func TestLoggerSetQuiet(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetQuiet(true)

	lg.Info("progress chatter")
	assert.Empty(t, buf.String())

	lg.Warn("still important")
	assert.Contains(t, buf.String(), "still important")
	buf.Reset()

	lg.Error(errors.New("still fatal"))
	assert.Contains(t, buf.String(), "still fatal")
	buf.Reset()

	lg.SetQuiet(false)
	lg.Info("progress chatter")
	assert.Contains(t, buf.String(), "progress chatter")
}

func TestLoggerFormatSwitching(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.New("error in pretty mode"))
	pretty := buf.String()
	buf.Reset()

	lg.SetJSON(true)
	lg.Error(errors.New("error in json mode"))
	jsonOut := buf.String()
	buf.Reset()

	lg.SetJSON(false)
	lg.Error(errors.New("error back in pretty mode"))
	backToPretty := buf.String()

	assert.Contains(t, pretty, "✗")
	assert.NotContains(t, pretty, `"error"`)

	assert.Contains(t, jsonOut, `"error"`)
	assert.NotContains(t, jsonOut, "✗")

	assert.Contains(t, backToPretty, "✗")
	assert.NotContains(t, backToPretty, `"error"`)
}

func TestLoggerSetOutput(t *testing.T) {
	tests := []struct {
		name   string
		writer *bytes.Buffer
	}{
		{
			name:   "valid buffer",
			writer: &bytes.Buffer{},
		},
		{
			name:   "nil writer defaults to stderr",
			writer: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				lg := logger.New().(*logger.Logger)
				lg.SetOutput(tt.writer)
			})
		})
	}
}

func TestLoggerNew(t *testing.T) {
	require.NotNil(t, logger.New())
}

func TestLoggerConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	var wg sync.WaitGroup
	for _, fn := range []func(){
		func() { lg.Info("concurrent info") },
		func() { lg.Warn("concurrent warn") },
		func() { lg.Error(errors.New("concurrent error")) },
		func() { lg.SetJSON(true) },
		func() { lg.SetJSON(false) },
		func() { lg.SetOutput(&bytes.Buffer{}) },
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}
	wg.Wait()
}
