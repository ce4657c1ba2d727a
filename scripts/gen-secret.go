package main

import (
	"fmt"
	"os"

	"github.com/folio/portfolio-cms/internal/util"
)

// Prints a fresh ADMIN_SECRET.
func main() {
	secret, err := util.GenerateToken()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(secret)
}
