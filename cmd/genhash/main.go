// genhash prints the bcrypt hash of a password, for manual account fixes.
// Usage: go run ./cmd/genhash <password>
package main

import (
	"fmt"
	"os"

	"prodplan/internal/service"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash <password>")
		os.Exit(2)
	}
	h, err := service.HashPassword(os.Args[1])
	if err != nil {
		panic(err)
	}
	fmt.Println(h)
}
