package main

import "fmt"

// version is set to a real value at build time via -ldflags, e.g.
// -X main.version=$(git describe --tags).
var version = "dev"

func printVersion() {
	fmt.Println("fcapd", version)
}
