package plugin

import (
	"fmt"
	"io"
	"plugin"
)

// Plugin is a built-in command provided by a shared object. Execute writes to
// out so that redirection applies to plugins like any other built-in. args
// includes the command name.
type Plugin interface {
	Name() string
	Execute(out io.Writer, args []string) error
}

func Load(path string) (Plugin, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plugin: %w", err)
	}

	symPlugin, err := p.Lookup("Plugin")
	if err != nil {
		return nil, fmt.Errorf("plugin does not export 'Plugin' symbol: %w", err)
	}

	plug, ok := symPlugin.(Plugin)
	if !ok {
		return nil, fmt.Errorf("plugin does not implement Plugin interface")
	}

	return plug, nil
}

// LoadAll loads every path and stops at the first failure.
func LoadAll(paths []string) ([]Plugin, error) {
	plugins := make([]Plugin, 0, len(paths))
	for _, path := range paths {
		p, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}
