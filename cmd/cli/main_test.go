package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BMSaiko/FoodLister-sub003/pkg/adapters/repository/sqlite"
	"github.com/BMSaiko/FoodLister-sub003/pkg/core/domain"
)

func TestMapsCommand(t *testing.T) {
	var out bytes.Buffer
	err := run("maps", []string{"https://www.google.com/maps/place/Restaurante+Bella+Italia/@41.3851,2.1734,15z"}, &out)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["name"] != "Restaurante Bella Italia" || got["latitude"] != 41.3851 {
		t.Errorf("unexpected output %v", got)
	}
	if _, ok := got["address"]; ok {
		t.Errorf("address should be absent, got %v", got["address"])
	}
}

func TestMapsCommandRejectsOtherHosts(t *testing.T) {
	var out bytes.Buffer
	if err := run("maps", []string{"https://example.com/place/x"}, &out); err == nil {
		t.Error("expected error for non maps link")
	}
}

func TestImgurCommand(t *testing.T) {
	var out bytes.Buffer
	if err := run("imgur", []string{"https://imgur.com/a/ABC123#XYZ9"}, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"image_url": "https://i.imgur.com/XYZ9l.jpg"`) {
		t.Errorf("unexpected output %s", out.String())
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src, err := sqlite.NewSQLiteRepository("file:cli_export?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	now := time.Now().UTC()
	if err := src.CreateRestaurant(ctx, &domain.Restaurant{Name: "Exported", CreatedBy: "alice", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := doExport(src, &out); err != nil {
		t.Fatal(err)
	}

	file := filepath.Join(t.TempDir(), "dump.json")
	if err := os.WriteFile(file, out.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	dst, err := sqlite.NewSQLiteRepository("file:cli_import?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	defer dst.Close()

	if err := doImport(dst, file); err != nil {
		t.Fatal(err)
	}
	got, err := dst.GetRestaurant(ctx, 1)
	if err != nil || got == nil || got.Name != "Exported" {
		t.Errorf("imported restaurant = %+v, %v", got, err)
	}
}

func TestUnknownCommand(t *testing.T) {
	if err := run("nope", nil, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown command")
	}
}
