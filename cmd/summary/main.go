package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"go-posture-summary/internal/engine"
	"go-posture-summary/internal/model"
	"go-posture-summary/internal/store"
	"go-posture-summary/internal/workbook"
)

func main() {
	workbookDir := flag.String("workbook", "", "directory of CSV sheets to summarize")
	specPath := flag.String("spec", "", "JSON run spec file (overrides -workbook)")
	dbPath := flag.String("db", "summary.db", "sqlite database for run tracking")
	flag.Parse()

	var spec model.RunSpec
	switch {
	case *specPath != "":
		data, err := os.ReadFile(*specPath)
		if err != nil {
			fmt.Printf("❌ Failed to read spec file: %v\n", err)
			os.Exit(1)
		}
		if err := json.Unmarshal(data, &spec); err != nil {
			fmt.Printf("❌ Failed to parse spec file: %v\n", err)
			os.Exit(1)
		}
	case *workbookDir != "":
		spec.Workbook = model.WorkbookSpec{Type: "dir", Path: *workbookDir}
	default:
		fmt.Println("usage: summary -workbook DIR | -spec FILE [-db PATH]")
		os.Exit(2)
	}

	if err := store.InitDB(*dbPath); err != nil {
		fmt.Printf("❌ Failed to open database: %v\n", err)
		os.Exit(1)
	}

	wb, err := workbook.FromSpec(spec.Workbook)
	if err != nil {
		fmt.Printf("❌ Failed to open workbook: %v\n", err)
		os.Exit(1)
	}

	runID := uuid.New().String()
	if err := store.SaveRun(runID, spec); err != nil {
		fmt.Printf("❌ Failed to record run: %v\n", err)
		os.Exit(1)
	}

	if err := engine.Run(context.Background(), runID, spec, wb); err != nil {
		fmt.Printf("❌ Run failed: %v\n", err)
		os.Exit(1)
	}
}
