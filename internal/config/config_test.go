package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/favicon-export/internal/model"
)

// testdataPath returns the absolute path to a fixture in this package's
// testdata directory, independent of the directory the test runner uses.
func testdataPath(t *testing.T, name string) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed to return file info")
	return filepath.Join(filepath.Dir(filename), "testdata", name)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

// --- Load tests ---

func TestLoad_YAML(t *testing.T) {
	path := testdataPath(t, "full.yml")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Source)
	assert.Equal(t, "images/logo.png", *cfg.Source)
	require.NotNil(t, cfg.OutputDir)
	assert.Equal(t, "public", *cfg.OutputDir)
	require.NotNil(t, cfg.AutoOrient)
	assert.True(t, *cfg.AutoOrient)
	assert.Equal(t, path, cfg.Path)
}

// TestLoad_JSONC verifies that comments and trailing commas are stripped
// before parsing.
func TestLoad_JSONC(t *testing.T) {
	cfg, err := Load(testdataPath(t, "full.jsonc"))
	require.NoError(t, err)

	require.NotNil(t, cfg.Source)
	assert.Equal(t, "images/logo.png", *cfg.Source)
	require.NotNil(t, cfg.OutputDir)
	assert.Equal(t, "public", *cfg.OutputDir)
	require.NotNil(t, cfg.AutoOrient)
	assert.True(t, *cfg.AutoOrient)
}

func TestLoad_TOML(t *testing.T) {
	cfg, err := Load(testdataPath(t, "full.toml"))
	require.NoError(t, err)

	require.NotNil(t, cfg.Source)
	assert.Equal(t, "images/logo.png", *cfg.Source)
	require.NotNil(t, cfg.OutputDir)
	assert.Equal(t, "public", *cfg.OutputDir)
	require.NotNil(t, cfg.AutoOrient)
	assert.True(t, *cfg.AutoOrient)
}

// TestLoad_UnknownKey verifies that keys outside the supported set are
// rejected. In particular the job list cannot be configured.
func TestLoad_UnknownKey(t *testing.T) {
	_, err := Load(testdataPath(t, "unknown-key.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jobs")
}

func TestLoad_UnknownKeyJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sizes": [128]}`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sizes")
}

func TestLoad_UnknownKeyTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.toml")
	require.NoError(t, os.WriteFile(path, []byte("source = \"a.png\"\nfilter = \"nearest\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter")
}

func TestLoad_EmptyFiles(t *testing.T) {
	for _, name := range []string{"empty.yml", "empty.json", "empty.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, nil, 0o644))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Nil(t, cfg.Source)
			assert.Nil(t, cfg.OutputDir)
			assert.Nil(t, cfg.AutoOrient)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "cfg.ini")
		require.NoError(t, os.WriteFile(path, []byte("source=x"), 0o644))
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported config file extension")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yml")
		require.NoError(t, os.WriteFile(path, []byte("source: [unterminated"), 0o644))
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("validation failure", func(t *testing.T) {
		path := filepath.Join(dir, "blank.yml")
		require.NoError(t, os.WriteFile(path, []byte("source: \"  \"\n"), 0o644))
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "source")
	})
}

// --- Find tests ---

func TestFind(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		assert.Empty(t, Find(t.TempDir()))
	})

	t.Run("priority order", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".favicon-export.json"), []byte("{}"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".favicon-export.yml"), []byte(""), 0o644))

		assert.Equal(t, filepath.Join(dir, ".favicon-export.yml"), Find(dir))
	})

	t.Run("directory with config name is ignored", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".favicon-export.yml"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".favicon-export.json"), []byte("{}"), 0o644))

		assert.Equal(t, filepath.Join(dir, ".favicon-export.json"), Find(dir))
	})
}

// --- Validate tests ---

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        File
		wantFields []string
	}{
		{
			name: "empty config is valid",
			cfg:  File{},
		},
		{
			name: "all fields set",
			cfg:  File{Source: strPtr("logo.png"), OutputDir: strPtr("out"), AutoOrient: boolPtr(false)},
		},
		{
			name:       "blank source",
			cfg:        File{Source: strPtr("")},
			wantFields: []string{"source"},
		},
		{
			name:       "blank output dir",
			cfg:        File{OutputDir: strPtr(" ")},
			wantFields: []string{"outputDir"},
		},
		{
			name:       "output dir equals source",
			cfg:        File{Source: strPtr("logo.png"), OutputDir: strPtr("logo.png")},
			wantFields: []string{"outputDir"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(&tt.cfg)
			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			if len(tt.wantFields) == 0 {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "source", Message: "must not be empty when set"}
	assert.Equal(t, "config validation error: source: must not be empty when set", err.Error())
}

// --- Resolve tests ---

func TestResolve_Defaults(t *testing.T) {
	opts := Resolve(Flags{}, nil, "/work")
	assert.Equal(t, model.Options{
		SourcePath: model.DefaultSourcePath,
		OutputDir:  "/work",
	}, opts)
}

// TestResolve_FileRelativePaths verifies that relative paths in a config
// file are anchored at the file's directory, not the working directory.
func TestResolve_FileRelativePaths(t *testing.T) {
	file := &File{
		Source:     strPtr("images/logo.png"),
		OutputDir:  strPtr("public"),
		AutoOrient: boolPtr(true),
		Path:       filepath.Join("/site", ".favicon-export.yml"),
	}

	opts := Resolve(Flags{}, file, "/work")
	assert.Equal(t, filepath.Join("/site", "images", "logo.png"), opts.SourcePath)
	assert.Equal(t, filepath.Join("/site", "public"), opts.OutputDir)
	assert.True(t, opts.AutoOrient)
}

func TestResolve_AbsolutePathsKept(t *testing.T) {
	file := &File{
		Source: strPtr("/abs/logo.png"),
		Path:   filepath.Join("/site", ".favicon-export.yml"),
	}

	opts := Resolve(Flags{}, file, "/work")
	assert.Equal(t, "/abs/logo.png", opts.SourcePath)
	assert.Equal(t, "/work", opts.OutputDir)
}

// TestResolve_FlagsWin verifies that command-line values override the file.
func TestResolve_FlagsWin(t *testing.T) {
	file := &File{
		Source:     strPtr("from-file.png"),
		OutputDir:  strPtr("from-file"),
		AutoOrient: boolPtr(false),
		Path:       filepath.Join("/site", ".favicon-export.yml"),
	}

	opts := Resolve(Flags{SourcePath: strPtr("cli.png"), OutputDir: "/cli-out", AutoOrient: boolPtr(true)}, file, "/work")
	assert.Equal(t, "cli.png", opts.SourcePath)
	assert.Equal(t, "/cli-out", opts.OutputDir)
	assert.True(t, opts.AutoOrient)
}

// TestResolve_FlagFalseOverridesFile verifies that an explicit false on the
// command line beats autoOrient: true in the file.
func TestResolve_FlagFalseOverridesFile(t *testing.T) {
	file := &File{
		AutoOrient: boolPtr(true),
		Path:       filepath.Join("/site", ".favicon-export.yml"),
	}

	assert.True(t, Resolve(Flags{}, file, "/work").AutoOrient)
	assert.False(t, Resolve(Flags{AutoOrient: boolPtr(false)}, file, "/work").AutoOrient)
}

// TestResolve_EmptySourceArgument verifies that a given but empty source
// path is kept rather than replaced by the default.
func TestResolve_EmptySourceArgument(t *testing.T) {
	file := &File{
		Source: strPtr("from-file.png"),
		Path:   filepath.Join("/site", ".favicon-export.yml"),
	}

	assert.Equal(t, "", Resolve(Flags{SourcePath: strPtr("")}, nil, "/work").SourcePath)
	assert.Equal(t, "", Resolve(Flags{SourcePath: strPtr("")}, file, "/work").SourcePath)
}
