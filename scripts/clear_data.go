//go:build ignore

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Clears the staged pipeline output so the next run starts from a clean
// slate. Reports are kept unless -reports is passed.
func main() {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	fmt.Printf("🗑️  Clearing staged data under %s...\n", dataDir)

	for _, stage := range []string{"raw", "qualified", "enriched", "matched"} {
		dir := filepath.Join(dataDir, stage)
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			fmt.Printf("Clearing %s... (nothing staged)\n", stage)
			continue
		}
		if err != nil {
			log.Fatalf("Failed to read %s: %v", dir, err)
		}
		if err := os.RemoveAll(dir); err != nil {
			log.Fatalf("Failed to clear %s: %v", dir, err)
		}
		fmt.Printf("Clearing %s... ✅ %d files deleted\n", stage, len(entries))
	}

	if len(os.Args) > 1 && os.Args[1] == "-reports" {
		reportsDir := os.Getenv("REPORTS_DIR")
		if reportsDir == "" {
			reportsDir = "reports"
		}
		if err := os.RemoveAll(reportsDir); err != nil {
			log.Fatalf("Failed to clear %s: %v", reportsDir, err)
		}
		fmt.Printf("Clearing reports... ✅\n")
	}

	fmt.Println()
	fmt.Println("✅ Done")
}
