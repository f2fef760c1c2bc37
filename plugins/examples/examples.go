// Build with: go build -buildmode=plugin -o hello.so ./plugins/examples
package main

import (
	"fmt"
	"io"
	"strings"

	"smash/internal/plugin"
)

type HelloPlugin struct{}

func (p *HelloPlugin) Name() string {
	return "hello"
}

func (p *HelloPlugin) Execute(out io.Writer, args []string) error {
	who := "world"
	if len(args) > 1 {
		who = strings.Join(args[1:], " ")
	}
	_, err := fmt.Fprintf(out, "hello, %s\n", who)
	return err
}

var _ plugin.Plugin = (*HelloPlugin)(nil)

// Plugin is the symbol the shell looks up. Lookup yields *HelloPlugin.
var Plugin HelloPlugin

func main() {}
