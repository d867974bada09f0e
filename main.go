package main

import (
	"flag"
	"fmt"
	"os"

	"rtsd/internal"
	"rtsd/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the yaml config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "mirror the app log to the console")
	flag.Parse()

	if _, err := internal.InitializeApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "rtsd: %s\n", err)
		os.Exit(1)
	}
}
