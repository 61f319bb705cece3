// Package main generates a signing key for the admin grant cookie and prints
// it in env-file form.
package main

import (
	"flag"
	"os"

	"github.com/goldencity/invite/internal/platform/config"
	"github.com/goldencity/invite/internal/tools/jwtkey"
)

func main() {
	cfg, err := jwtkey.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := jwtkey.Run(cfg, os.Stdout, nil); err != nil {
		config.Exitf("generate key: %v", err)
	}
}
