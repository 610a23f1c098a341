// Package config loads the YAML manifest describing a tree's top-level
// settings and command metadata: which manager settings to enable, and a
// declarative list of literal names/aliases/permissions that a host can use
// to drive cloud.CommandComponent construction without recompiling.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TehBrian/cloud/cloud"
)

// Manifest is the root of a command-manifest YAML document.
type Manifest struct {
	Settings SettingsSpec  `yaml:"settings"`
	Commands []CommandSpec `yaml:"commands"`
}

// SettingsSpec mirrors cloud.Settings for YAML (de)serialization.
type SettingsSpec struct {
	LiberalFlagParsing             bool `yaml:"liberal_flag_parsing"`
	EnforceIntermediaryPermissions bool `yaml:"enforce_intermediary_permissions"`
}

// CommandSpec declaratively describes one command's literal path and
// permission, for hosts that want to define commands in YAML rather than
// Go. Argument/flag components still must be wired in code, since their
// parsers are not representable in a data format.
type CommandSpec struct {
	// Name is a human label, used for diagnostics only.
	Name string `yaml:"name"`

	// Path is the ordered sequence of LITERAL aliases making up this
	// command, e.g. ["guild", "kick"] for a "guild kick" command. Each
	// element may itself be a comma-separated alias list, e.g. "kick,k".
	Path []string `yaml:"path"`

	// Permission is the string form of the permission this command
	// requires; the host resolves it to a cloud.Permission.
	Permission string `yaml:"permission,omitempty"`
}

// Load reads and parses a manifest file at path.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	return &m, nil
}

// Resolver supplies the pieces a CommandSpec cannot carry in YAML: the
// concrete cloud.Permission a spec's permission string names, and the
// handler that runs once the resulting command is resolved. Either func may
// be nil, leaving the corresponding field on the built Command zero.
type Resolver struct {
	Permission func(name string) cloud.Permission
	Handler    func(spec CommandSpec) cloud.Handler
}

// toCommand builds a cloud.Command from a spec, splitting each path
// element's comma-separated alias list (e.g. "kick,k") into a LITERAL
// component via cloud.NewLiteral.
func (s CommandSpec) toCommand(resolve Resolver) (*cloud.Command, error) {
	if len(s.Path) == 0 {
		return nil, fmt.Errorf("command %q has an empty path", s.Name)
	}

	components := make([]*cloud.CommandComponent, len(s.Path))

	for i, segment := range s.Path {
		aliases := strings.Split(segment, ",")
		components[i] = cloud.NewLiteral(aliases[0], aliases...)
	}

	var perm cloud.Permission
	if s.Permission != "" && resolve.Permission != nil {
		perm = resolve.Permission(s.Permission)
	}

	var handler cloud.Handler
	if resolve.Handler != nil {
		handler = resolve.Handler(s)
	}

	return &cloud.Command{
		Name:       s.Name,
		Components: components,
		Permission: perm,
		Handler:    handler,
	}, nil
}

// LoadAndInsert loads the manifest at path, applies its settings to tree,
// and inserts every CommandSpec as a built Command — going through
// tree.InsertCommand like any other caller, so none of the insertion
// invariants (§4.3) are bypassed. It returns the loaded manifest so a caller
// can inspect it further (e.g. for diagnostics), even on a partial failure.
func LoadAndInsert(tree *cloud.Tree, path string, resolve Resolver) (*Manifest, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}

	tree.Settings = cloud.Settings{
		LiberalFlagParsing:             m.Settings.LiberalFlagParsing,
		EnforceIntermediaryPermissions: m.Settings.EnforceIntermediaryPermissions,
	}

	for _, spec := range m.Commands {
		cmd, err := spec.toCommand(resolve)
		if err != nil {
			return m, fmt.Errorf("building command %q: %w", spec.Name, err)
		}

		if err := tree.InsertCommand(cmd); err != nil {
			return m, fmt.Errorf("inserting command %q: %w", spec.Name, err)
		}
	}

	return m, nil
}
