package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/BMSaiko/FoodLister-sub003/pkg/adapters/repository/sqlite"
	"github.com/BMSaiko/FoodLister-sub003/pkg/config"
	"github.com/BMSaiko/FoodLister-sub003/pkg/links"
	"github.com/BMSaiko/FoodLister-sub003/pkg/ports"
)

const usage = "expected 'maps', 'imgur', 'export' or 'import' subcommands"

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "maps":
		fs := flag.NewFlagSet("maps", flag.ExitOnError)
		fs.Parse(args)
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: maps <url>")
		}
		return doMaps(fs.Arg(0), out)
	case "imgur":
		fs := flag.NewFlagSet("imgur", flag.ExitOnError)
		fs.Parse(args)
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: imgur <url>")
		}
		return doImgur(fs.Arg(0), out)
	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		fs.Parse(args)
		repo, err := openRepo()
		if err != nil {
			return err
		}
		defer repo.Close()
		return doExport(repo, out)
	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		importFile := fs.String("file", "", "JSON file to import")
		fs.Parse(args)
		if *importFile == "" {
			fs.PrintDefaults()
			return fmt.Errorf("-file is required")
		}
		repo, err := openRepo()
		if err != nil {
			return err
		}
		defer repo.Close()
		return doImport(repo, *importFile)
	default:
		return errors.New(usage)
	}
}

func openRepo() (*sqlite.SQLiteRepository, error) {
	cfg := config.Load()
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	return repo, nil
}

func doMaps(raw string, out io.Writer) error {
	if !links.IsValidGoogleMapsURL(raw) {
		return fmt.Errorf("link not recognized as Google Maps: %s", raw)
	}
	return encode(out, links.ExtractGoogleMapsData(raw))
}

func doImgur(raw string, out io.Writer) error {
	if !links.IsValidImgurURL(raw) {
		return fmt.Errorf("link not recognized as Imgur: %s", raw)
	}
	id, _ := links.ExtractImgurImageID(raw)
	return encode(out, map[string]string{
		"source_url": raw,
		"image_url":  links.ConvertImgurURL(raw),
		"image_id":   id,
	})
}

func doExport(repo ports.Repository, out io.Writer) error {
	snap, err := repo.Dump(context.Background())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return encode(out, snap)
}

func doImport(repo ports.Repository, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var snap ports.Snapshot
	if err := json.NewDecoder(file).Decode(&snap); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	res, err := repo.Restore(context.Background(), &snap)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	log.Printf("Imported %d rows, skipped %d", res.Inserted, res.Skipped)
	return nil
}

func encode(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
