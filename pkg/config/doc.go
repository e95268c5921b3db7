// Package config loads the two inputs of a subboot run.
//
// The manifest (submodules.yml) is a YAML list of dependencies, each with a
// name, optional pre-install/pre-remove hooks and optional link actions. It is
// parsed once with gopkg.in/yaml.v3; only its syntax is checked at load time.
// Validate performs the semantic checks used by the validate command.
//
// Settings are subboot's own knobs (directory names, hook shell, git
// credentials). They are layered with koanf, later sources overriding earlier:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. <project root>/.subboot.toml, if present
//  3. SUBBOOT_* environment variables (double underscore separates sections,
//     e.g. SUBBOOT_GIT__CONTINUE_ON_ERROR=true)
//  4. explicit overrides from the command line
package config
