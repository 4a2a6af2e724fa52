// Command floorcal inspects and checks floor-plan calibrations.
package main

import "github.com/phanxgames/floorcal/cmd/floorcal/cmd"

func main() {
	cmd.Execute()
}
