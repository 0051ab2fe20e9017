package main

import (
	"os"

	"github.com/wiless/plcalc/cmd/plcalc/app"
)

func main() {
	os.Exit(app.Main(os.Args[1:], os.Stdout, os.Stderr))
}
