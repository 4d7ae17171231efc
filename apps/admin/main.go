package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Printf("\nerror: %s\n", err)
		os.Exit(1)
	}
}
