// Command import_material stores the text of local files as study materials.
//
//	import_material -user U1 -title "Cell biology" notes/cells.md
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"studyhub/internal/adapter/extract"
	"studyhub/internal/config"
	"studyhub/internal/database"
	"studyhub/internal/logger"
	"studyhub/internal/repository"
	"studyhub/internal/service"

	"go.uber.org/zap"
)

const maxImportBytes = 5 * 1024 * 1024

func main() {
	userID := flag.String("user", "", "owner user id (required)")
	title := flag.String("title", "", "material title; defaults to the file name")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s -user <id> [-title <title>] <file>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *userID == "" || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if *title != "" && flag.NArg() > 1 {
		log.Fatal("-title can only be used with a single file")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	materials := service.NewMaterialService(
		repository.NewSQLXMaterialRepository(db),
		extract.NewPlainTextExtractor(maxImportBytes),
	)

	failed := 0
	for _, path := range flag.Args() {
		material, err := materials.ImportFile(ctx, *userID, *title, path)
		if err != nil {
			failed++
			l.Error("Import failed", zap.String("path", path), zap.Error(err))
			continue
		}
		fmt.Printf("%s\t%s\t%s\n", material.ID, material.FileType, material.Title)
	}
	if failed > 0 {
		l.Error("Some files were not imported", zap.Int("failed", failed), zap.Int("total", flag.NArg()))
		os.Exit(1)
	}
}
