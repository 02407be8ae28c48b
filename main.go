// Package main is the entry point for the flstats CLI, which imports floorball
// match data and computes player season and career statistics.
package main

import "github.com/pable/go-floorball-stats/cmd"

func main() {
	cmd.Execute()
}
