package main

import (
	"fmt"
	"os"

	"github.com/vfg2006/customer-tracker-api/internal/cli"
	"github.com/vfg2006/customer-tracker-api/pkg/log"
)

func main() {
	// A CLI só registra avisos; a saída útil vai para stdout
	_ = log.Setup("warn")

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}
