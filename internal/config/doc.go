// Package config loads the optional favicon-export configuration file and
// resolves the final export options.
//
// Three formats are accepted:
//
//   - YAML (.yml, .yaml), parsed with gopkg.in/yaml.v3
//   - JSON with comments (.json, .jsonc), cleaned with
//     github.com/tidwall/jsonc and parsed with encoding/json
//   - TOML (.toml), parsed with github.com/BurntSushi/toml
//
// The file can only set the source image, the output directory and EXIF
// auto-orientation. Unknown keys are rejected, so the list of generated
// icons can never be changed from configuration.
//
// Precedence when resolving options: command-line argument and flags, then
// the config file, then built-in defaults (the default source file name and
// the working directory).
package config
