package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fjglira/mkoptions/internal/cli"
	"github.com/fjglira/mkoptions/internal/domain"
)

func main() {
	err := cli.Execute()
	if err == nil {
		return
	}

	if errors.Is(err, domain.ErrUsage) {
		fmt.Fprintf(os.Stderr, "[error] %v\n\n%s", err, cli.Usage())
		os.Exit(2)
	}
	fmt.Fprintf(os.Stderr, "[error] %v\n", err)
	os.Exit(1)
}
