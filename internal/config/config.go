package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/favicon-export/internal/model"
)

// FileNames lists the config file names looked up by Find, in priority order.
var FileNames = []string{
	".favicon-export.yml",
	".favicon-export.yaml",
	".favicon-export.json",
	".favicon-export.toml",
}

// File is the parsed configuration file. Pointer fields distinguish an
// absent key from an explicit zero value.
type File struct {
	// Source is the source image path. Relative paths are resolved against
	// the directory containing the config file.
	Source *string `yaml:"source" json:"source" toml:"source"`

	// OutputDir is the directory the icons are written to. Relative paths
	// are resolved against the directory containing the config file.
	OutputDir *string `yaml:"outputDir" json:"outputDir" toml:"outputDir"`

	// AutoOrient enables EXIF orientation handling while decoding.
	AutoOrient *bool `yaml:"autoOrient" json:"autoOrient" toml:"autoOrient"`

	// Path is the file this configuration was loaded from. Not serialized.
	Path string `yaml:"-" json:"-" toml:"-"`
}

// Find looks for a config file in dir, trying FileNames in order.
// Returns the path of the first one that exists, or "" when there is none.
func Find(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads and validates the config file at path. The format is chosen
// by file extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		err = decodeYAML(data, &cfg)
	case ".json", ".jsonc":
		err = decodeJSON(data, &cfg)
	case ".toml":
		err = decodeTOML(data, &cfg)
	default:
		return nil, fmt.Errorf("unsupported config file extension %q (valid: .yml, .yaml, .json, .jsonc, .toml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.Path = path

	if errs := Validate(&cfg); len(errs) > 0 {
		joined := make([]error, 0, len(errs))
		for i := range errs {
			joined = append(joined, &errs[i])
		}
		return nil, errors.Join(joined...)
	}
	return &cfg, nil
}

// decodeYAML parses YAML strictly: keys that File does not define are errors.
// An empty document leaves cfg untouched.
func decodeYAML(data []byte, cfg *File) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// decodeTOML parses TOML and rejects keys that File does not define.
func decodeTOML(data []byte, cfg *File) error {
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown field %q", undecoded[0].String())
	}
	return nil
}

// decodeJSON strips comments and trailing commas, then parses strictly.
func decodeJSON(data []byte, cfg *File) error {
	clean := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(clean)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(clean))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Flags carries the values given on the command line. A nil pointer or an
// empty OutputDir means "not given"; a given SourcePath is used even when it
// is empty.
type Flags struct {
	SourcePath *string
	OutputDir  string
	AutoOrient *bool
}

// Resolve merges flags, the optional config file and the defaults into the
// options handed to the exporter. cwd is the working directory, used as the
// default output directory. file may be nil.
func Resolve(flags Flags, file *File, cwd string) model.Options {
	opts := model.Options{
		SourcePath: model.DefaultSourcePath,
		OutputDir:  cwd,
	}

	if file != nil {
		base := filepath.Dir(file.Path)
		if file.Source != nil {
			opts.SourcePath = relativeTo(base, *file.Source)
		}
		if file.OutputDir != nil {
			opts.OutputDir = relativeTo(base, *file.OutputDir)
		}
		if file.AutoOrient != nil {
			opts.AutoOrient = *file.AutoOrient
		}
	}

	if flags.SourcePath != nil {
		opts.SourcePath = *flags.SourcePath
	}
	if flags.OutputDir != "" {
		opts.OutputDir = flags.OutputDir
	}
	if flags.AutoOrient != nil {
		opts.AutoOrient = *flags.AutoOrient
	}

	return opts
}

// relativeTo joins p onto base unless p is already absolute.
func relativeTo(base, p string) string {
	if filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}
