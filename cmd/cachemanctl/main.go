// Command cachemanctl inspects and edits a cacheman namespace in Redis.
//
//	cachemanctl --url redis://localhost:6379/0 set user:1 '{"name":"Ada"}' --expire 10m
//	cachemanctl get user:1
//	cachemanctl del 'user:*'
//	cachemanctl scan --count 100
//
// Settings come from flags, CACHEMAN_* variables (a .env file in the working
// directory is loaded first) and --config.
package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		os.Stderr.WriteString("cachemanctl: .env: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
