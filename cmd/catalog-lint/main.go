// Package main provides a lint tool for master and user catalog data. It
// runs the full normalize/merge/cross-reference pipeline and prints every
// diagnostic, so data authors can check their files before shipping them.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/encore-rpg/sheetsmith/internal/game/catalog"
)

func main() {
	registryPath := flag.String("registry", "data/catalog.yaml", "path to the category registry")
	userPath := flag.String("user", "", "optional user dataset JSON file")
	flag.Parse()

	start := time.Now()

	reg, err := catalog.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	master, err := catalog.LoadMaster(reg, filepath.Dir(*registryPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var user catalog.Datasets
	if *userPath != "" {
		raw, err := os.ReadFile(*userPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		var blob catalog.UserData
		if err := json.Unmarshal(raw, &blob); err != nil {
			fmt.Fprintf(os.Stderr, "error: parsing user dataset: %v\n", err)
			os.Exit(1)
		}
		user = blob.Datasets()

		// Advisory per-category checks on the raw user rows.
		for category, rows := range user {
			for _, d := range catalog.ValidateUserCategory(category, rows) {
				fmt.Println(d.String())
			}
		}
	}

	cat, err := catalog.Build(master, user, reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	for _, d := range cat.Diagnostics {
		fmt.Println(d.String())
	}

	total := 0
	for _, name := range cat.Categories() {
		n := len(cat.Entries(name))
		total += n
		fmt.Printf("%-12s %d entries\n", name, n)
	}
	fmt.Printf("ok: %d entries, %d diagnostics in %s\n",
		total, len(cat.Diagnostics), time.Since(start).Round(time.Millisecond))
}
