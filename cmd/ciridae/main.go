// Package main provides the entry point for the ciridae CLI tool.
package main

import "github.com/GregoryLi360/ciridae-takehome/cmd/ciridae/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
