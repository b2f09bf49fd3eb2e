// Command novel-search collects Hugo and Nebula Best Novel nominees and
// records their narrative point of view.
package main

import "github.com/pfrederiksen/novel-search/internal/cli"

func main() {
	cli.Execute()
}
