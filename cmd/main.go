// Command moviegraph is the Caddy binary with the moviegraph handler compiled in.
// Without arguments it runs the Caddyfile of the working directory.
package main

import (
	"os"

	caddycmd "github.com/caddyserver/caddy/v2/cmd"
	_ "github.com/caddyserver/caddy/v2/modules/standard"
	_ "github.com/moviegraph/moviegraph"
)

func main() {
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "run", "--config", "Caddyfile", "--adapter", "caddyfile")
	}

	caddycmd.Main()
}
