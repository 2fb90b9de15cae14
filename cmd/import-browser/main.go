// Command import-browser copies templates out of a browser localStorage dump
// into the local store. The dump is the JSON value of the "3c-templates" key,
// an object mapping template ids to saved template records.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/3cstudio/contentforge/internal/models"
	"github.com/3cstudio/contentforge/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: import-browser <dump.json>")
		fmt.Println("  <dump.json> is the exported value of the 3c-templates localStorage key")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Error reading dump: %v\n", err)
		os.Exit(1)
	}

	var records map[string]models.SavedTemplate
	if err := json.Unmarshal(data, &records); err != nil {
		fmt.Printf("Error parsing dump: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Println("Dump contains no templates - nothing to import")
		return
	}

	svc, err := service.NewService()
	if err != nil {
		fmt.Printf("Error initializing service: %v\n", err)
		return
	}

	var skipped []string
	var pending []models.SavedTemplate
	for id, record := range records {
		if record.Name == "" {
			record.Name = id
		}
		if !svc.Catalog().Has(record.Data.Platform) {
			skipped = append(skipped, fmt.Sprintf("%s (unknown platform %q)", record.Name, record.Data.Platform))
			continue
		}
		pending = append(pending, record)
	}

	fmt.Printf("Found %d templates in dump, %d importable:\n", len(records), len(pending))
	for _, record := range pending {
		fmt.Printf("  - %s (%s, %d hashtags)\n", record.Name, record.Data.Platform, len(record.Data.Hashtags))
	}
	for _, reason := range skipped {
		fmt.Printf("  skipping %s\n", reason)
	}

	if len(pending) == 0 {
		return
	}

	fmt.Print("\nProceed with import? (y/N): ")
	var response string
	fmt.Scanln(&response)

	if strings.ToLower(response) != "y" {
		fmt.Println("Import cancelled")
		return
	}

	imported := 0
	for _, record := range pending {
		snapshot := record.Data
		id, err := svc.SaveTemplate(record.Name, &snapshot)
		if err != nil {
			fmt.Printf("Error importing %q: %v\n", record.Name, err)
			continue
		}
		fmt.Printf("Imported %q as %s\n", record.Name, id)
		imported++
	}

	fmt.Printf("Import completed! Brought %d templates into the local store\n", imported)
}
