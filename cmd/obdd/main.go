// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command obdd is a CLI front-end over the obdd package, following the
// thin-main/cobra-command-package split used by the junjiewwang-perf-analysis
// example's cmd/cli layout.
package main

import "github.com/go-formal/obdd/cmd/obdd/cmd"

func main() {
	cmd.Execute()
}
