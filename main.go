// Package main is the entry point for leanback.
package main

import (
	"github.com/leanback-cli/leanback/cmd"
	"github.com/leanback-cli/leanback/config"
	"github.com/leanback-cli/leanback/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
