package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/larder/cmd/larder/commands"
	"go.trai.ch/larder/internal/app"
	"go.trai.ch/larder/internal/build"
	"go.trai.ch/larder/internal/core/domain"
)

type mockApp struct {
	installFunc  func(ctx context.Context, opts app.InstallOptions) error
	updateFunc   func(ctx context.Context, names []string, opts app.UpdateOptions) error
	outdatedFunc func(ctx context.Context, opts app.OutdatedOptions) ([]domain.OutdatedPackage, error)
	cleanFunc    func(ctx context.Context, opts app.CleanOptions) error
}

func (m *mockApp) Install(ctx context.Context, opts app.InstallOptions) error {
	if m.installFunc != nil {
		return m.installFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Update(ctx context.Context, names []string, opts app.UpdateOptions) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, names, opts)
	}
	return nil
}

func (m *mockApp) Outdated(ctx context.Context, opts app.OutdatedOptions) ([]domain.OutdatedPackage, error) {
	if m.outdatedFunc != nil {
		return m.outdatedFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockApp) Clean(ctx context.Context, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, opts)
	}
	return nil
}

// recordingLogger captures output configuration calls made by the CLI.
type recordingLogger struct {
	jsonMode bool
	quiet    bool
}

func (l *recordingLogger) Info(string)         {}
func (l *recordingLogger) Warn(string)         {}
func (l *recordingLogger) Error(error)         {}
func (l *recordingLogger) SetJSON(enable bool) { l.jsonMode = enable }
func (l *recordingLogger) SetQuiet(enable bool) {
	l.quiet = enable
}

func TestCommands_Install(t *testing.T) {
	t.Run("runs install against the working directory", func(t *testing.T) {
		var capturedOpts app.InstallOptions
		called := false

		mock := &mockApp{
			installFunc: func(_ context.Context, opts app.InstallOptions) error {
				capturedOpts = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock, &recordingLogger{})
		cli.SetArgs([]string{"install"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Empty(t, capturedOpts.Dir)
	})

	t.Run("wires the chdir flag", func(t *testing.T) {
		var capturedOpts app.InstallOptions

		mock := &mockApp{
			installFunc: func(_ context.Context, opts app.InstallOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock, &recordingLogger{})
		cli.SetArgs([]string{"install", "-C", "/tmp/project"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/tmp/project", capturedOpts.Dir)
	})

	t.Run("returns error on install failure", func(t *testing.T) {
		mock := &mockApp{
			installFunc: func(_ context.Context, _ app.InstallOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock, &recordingLogger{})
		cli.SetArgs([]string{"install"})
		// Silence output to avoid polluting test logs
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Update(t *testing.T) {
	t.Run("passes package names through", func(t *testing.T) {
		var capturedNames []string

		mock := &mockApp{
			updateFunc: func(_ context.Context, names []string, _ app.UpdateOptions) error {
				capturedNames = names
				return nil
			},
		}

		cli := commands.New(mock, &recordingLogger{})
		cli.SetArgs([]string{"update", "nginx", "postgres"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"nginx", "postgres"}, capturedNames)
	})

	t.Run("updates everything when no names given", func(t *testing.T) {
		var capturedNames []string
		called := false

		mock := &mockApp{
			updateFunc: func(_ context.Context, names []string, _ app.UpdateOptions) error {
				capturedNames = names
				called = true
				return nil
			},
		}

		cli := commands.New(mock, &recordingLogger{})
		cli.SetArgs([]string{"update"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Empty(t, capturedNames)
	})
}

func TestCommands_Outdated(t *testing.T) {
	t.Run("prints one line per outdated package", func(t *testing.T) {
		mock := &mockApp{
			outdatedFunc: func(_ context.Context, _ app.OutdatedOptions) ([]domain.OutdatedPackage, error) {
				return []domain.OutdatedPackage{
					{
						Name:      domain.NewInternedString("nginx"),
						Locked:    "1.2.0",
						Candidate: "1.4.0",
						SourceID:  "https://packages.example.com",
					},
				}, nil
			},
		}

		cli := commands.New(mock, &recordingLogger{})
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"outdated"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "nginx 1.2.0 -> 1.4.0 (https://packages.example.com)")
	})

	t.Run("reports when everything is current", func(t *testing.T) {
		mock := &mockApp{}

		cli := commands.New(mock, &recordingLogger{})
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"outdated"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "all packages are up to date")
	})

	t.Run("returns error on check failure", func(t *testing.T) {
		mock := &mockApp{
			outdatedFunc: func(_ context.Context, _ app.OutdatedOptions) ([]domain.OutdatedPackage, error) {
				return nil, errors.New("simulated error")
			},
		}

		cli := commands.New(mock, &recordingLogger{})
		cli.SetArgs([]string{"outdated"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Clean(t *testing.T) {
	cases := []struct {
		name      string
		args      []string
		wantStore bool
		wantCache bool
	}{
		{name: "defaults to caches", args: []string{"clean"}, wantStore: false, wantCache: true},
		{name: "store flag", args: []string{"clean", "--store"}, wantStore: true, wantCache: false},
		{name: "cache flag", args: []string{"clean", "--cache"}, wantStore: false, wantCache: true},
		{name: "store and cache", args: []string{"clean", "--store", "--cache"}, wantStore: true, wantCache: true},
		{name: "all flag", args: []string{"clean", "--all"}, wantStore: true, wantCache: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var capturedOpts app.CleanOptions

			mock := &mockApp{
				cleanFunc: func(_ context.Context, opts app.CleanOptions) error {
					capturedOpts = opts
					return nil
				},
			}

			cli := commands.New(mock, &recordingLogger{})
			cli.SetArgs(tc.args)

			err := cli.Execute(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.wantStore, capturedOpts.Store)
			assert.Equal(t, tc.wantCache, capturedOpts.Cache)
		})
	}
}

func TestCommands_OutputFlags(t *testing.T) {
	t.Run("quiet and json reach the logger", func(t *testing.T) {
		log := &recordingLogger{}
		cli := commands.New(&mockApp{}, log)
		cli.SetArgs([]string{"install", "--quiet", "--json"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, log.quiet)
		assert.True(t, log.jsonMode)
	})

	t.Run("defaults leave the logger untouched", func(t *testing.T) {
		log := &recordingLogger{}
		cli := commands.New(&mockApp{}, log)
		cli.SetArgs([]string{"install"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.False(t, log.quiet)
		assert.False(t, log.jsonMode)
	})
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock, &recordingLogger{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}
