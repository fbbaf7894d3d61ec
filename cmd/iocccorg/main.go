// iocccorg reorganizes a clone of the IOCCC winners repository into a
// year/award/entry tree with one descriptor per entry and a CSV manifest.
//
// Usage:
//
//	iocccorg organize [--local-clone=<dir> | --repo-url=<url>] [--outdir=<dir>] [--force]
//	iocccorg report --manifest=<path> | --catalog=<path> [--format=ascii|markdown]
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A .env in the working directory may set IOCCCORG_REPO_URL.
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
