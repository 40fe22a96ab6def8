// Command seed loads a small demo catalog into the database. It expects the
// schema to exist already (the server migrates on startup).
package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type seedProduct struct {
	name        string
	description string
	price       float64
	imageURL    string
	sku         string
	brand       string
	diagonal    string
	subcategory string
}

var seedCategories = map[string][]string{
	"Smartphones": {"Android", "iOS"},
	"Laptops":     {"Ultrabooks", "Gaming"},
	"Televisions": {"LED", "OLED"},
}

var seedProducts = []seedProduct{
	{"Pixelphone A1", "Compact flagship", 599.00, "https://cdn.example.com/a1.jpg", "PHN-A1", "Pixelphone", "6.1", "Android"},
	{"Pixelphone A1 Pro", "Large flagship", 799.00, "https://cdn.example.com/a1p.jpg", "PHN-A1P", "Pixelphone", "6.7", "Android"},
	{"Featherbook 13", "Thin and light", 1099.00, "https://cdn.example.com/fb13.jpg", "LPT-FB13", "Featherbook", "13.3", "Ultrabooks"},
	{"Titan G17", "Desktop replacement", 1899.00, "https://cdn.example.com/g17.jpg", "LPT-G17", "Titan", "17.3", "Gaming"},
	{"VistaView 55", "Mid-range LED panel", 449.00, "https://cdn.example.com/vv55.jpg", "TV-VV55", "VistaView", "55", "LED"},
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(log); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	subcategoryIDs := make(map[string]int64)
	for category, subcategories := range seedCategories {
		var categoryID int64
		err := tx.QueryRow(
			`INSERT INTO categories (name) VALUES ($1)
			 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`, category).Scan(&categoryID)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", category, err)
		}
		for _, subcategory := range subcategories {
			var subcategoryID int64
			err := tx.QueryRow(
				`INSERT INTO subcategories (name, category_id) VALUES ($1, $2) RETURNING id`,
				subcategory, categoryID).Scan(&subcategoryID)
			if err != nil {
				return fmt.Errorf("seed subcategory %q: %w", subcategory, err)
			}
			subcategoryIDs[subcategory] = subcategoryID
		}
	}

	for _, p := range seedProducts {
		_, err := tx.Exec(
			`INSERT INTO products (name, description, price, image_url, file_type, sku, in_stock, subcategory_id, brand, diagonal)
			 VALUES ($1, $2, $3, $4, 'photo', $5, true, $6, $7, $8)`,
			p.name, p.description, p.price, p.imageURL, p.sku, subcategoryIDs[p.subcategory], p.brand, p.diagonal)
		if err != nil {
			return fmt.Errorf("seed product %q: %w", p.sku, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("seeded catalog", "categories", len(seedCategories), "products", len(seedProducts))
	return nil
}
