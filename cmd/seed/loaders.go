package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/craftplan/backend-go/internal/domain"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS materials (
    id BIGSERIAL PRIMARY KEY,
    code TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    unit TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT 'raw',
    quantity_on_hand DOUBLE PRECISION NOT NULL DEFAULT 0,
    quantity_reserved DOUBLE PRECISION NOT NULL DEFAULT 0,
    standard_cost NUMERIC(14,4) NOT NULL DEFAULT 0,
    supplier TEXT,
    location TEXT,
    lead_time_days INT,
    reorder_level DOUBLE PRECISION,
    max_level DOUBLE PRECISION,
    critical_stock DOUBLE PRECISION,
    status TEXT,
    status_label TEXT,
    needs_reorder TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS products (
    id BIGSERIAL PRIMARY KEY,
    sku TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT 'stocked'
);

CREATE TABLE IF NOT EXISTS bom_entries (
    id BIGSERIAL PRIMARY KEY,
    product_id BIGINT NOT NULL REFERENCES products(id),
    material_id BIGINT NOT NULL REFERENCES materials(id),
    quantity_per_product DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS production_output (
    id BIGSERIAL PRIMARY KEY,
    product_id BIGINT NOT NULL REFERENCES products(id),
    output_date DATE,
    quantity_produced DOUBLE PRECISION NOT NULL DEFAULT 0,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (product_id, output_date)
);

CREATE TABLE IF NOT EXISTS orders (
    id BIGSERIAL PRIMARY KEY,
    status TEXT NOT NULL DEFAULT 'accepted',
    accepted_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS order_items (
    id BIGSERIAL PRIMARY KEY,
    order_id BIGINT NOT NULL REFERENCES orders(id),
    product_id BIGINT NOT NULL REFERENCES products(id),
    quantity DOUBLE PRECISION NOT NULL
);
`

func runSchema(c *cli.Context) error {
	if _, err := dbFrom(c).ExecContext(c.Context, schemaDDL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	log.Println("schema ready")
	return nil
}

// forEachRow streams a CSV file, handing each data row to fn along with a
// header-indexed column map.
func forEachRow(path string, fn func(get func(col string) string) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	colMap := make(map[string]int, len(header))
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("failed reading %s: %w", path, err)
		}

		get := func(col string) string {
			if idx, ok := colMap[col]; ok && idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}

		if err := fn(get); err != nil {
			return rows, fmt.Errorf("%s row %d: %w", filepath.Base(path), rows+2, err)
		}
		rows++
	}
	return rows, nil
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat(s string) sql.NullFloat64 {
	if s == "" {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func nullInt(s string) sql.NullInt64 {
	if s == "" {
		return sql.NullInt64{}
	}
	// Exports sometimes carry "7.0" for integer columns.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(f), Valid: true}
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func runMaterials(c *cli.Context) error {
	db := dbFrom(c)
	path := filepath.Join(c.String("data-dir"), "materials.csv")

	query := `
		INSERT INTO materials (
			code, name, unit, category,
			quantity_on_hand, quantity_reserved, standard_cost,
			supplier, location, lead_time_days,
			reorder_level, max_level, critical_stock,
			status, status_label, needs_reorder, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			unit = EXCLUDED.unit,
			category = EXCLUDED.category,
			quantity_on_hand = EXCLUDED.quantity_on_hand,
			quantity_reserved = EXCLUDED.quantity_reserved,
			standard_cost = EXCLUDED.standard_cost,
			supplier = EXCLUDED.supplier,
			location = EXCLUDED.location,
			lead_time_days = EXCLUDED.lead_time_days,
			reorder_level = EXCLUDED.reorder_level,
			max_level = EXCLUDED.max_level,
			critical_stock = EXCLUDED.critical_stock,
			status = EXCLUDED.status,
			status_label = EXCLUDED.status_label,
			needs_reorder = EXCLUDED.needs_reorder,
			updated_at = NOW()
	`

	rows, err := forEachRow(path, func(get func(string) string) error {
		// Normalize the duck-typed reorder flag to a canonical string; the
		// read side parses it back to *bool.
		needsReorder := sql.NullString{}
		if parsed := domain.ParseTruthy(get("needs_reorder")); parsed != nil {
			needsReorder = nullIfEmpty(strconv.FormatBool(*parsed))
		}

		_, err := db.ExecContext(c.Context, query,
			get("code"), get("name"), get("unit"), domain.NormalizeCategory(get("category")),
			parseFloat(get("quantity_on_hand")), parseFloat(get("quantity_reserved")), nullFloat(get("standard_cost")),
			nullIfEmpty(get("supplier")), nullIfEmpty(get("location")), nullInt(get("lead_time_days")),
			nullFloat(get("reorder_level")), nullFloat(get("max_level")), nullFloat(get("critical_stock")),
			nullIfEmpty(get("status")), nullIfEmpty(get("status_label")), needsReorder,
		)
		return err
	})
	if err != nil {
		return err
	}
	log.Printf("loaded %d materials", rows)
	return nil
}

func runBOM(c *cli.Context) error {
	db := dbFrom(c)
	dataDir := c.String("data-dir")

	productQuery := `
		INSERT INTO products (sku, name, category)
		VALUES ($1, $2, $3)
		ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category
	`
	rows, err := forEachRow(filepath.Join(dataDir, "products.csv"), func(get func(string) string) error {
		_, err := db.ExecContext(c.Context, productQuery,
			get("sku"), get("name"), domain.NormalizeCategory(get("category")))
		return err
	})
	if err != nil {
		return err
	}
	log.Printf("loaded %d products", rows)

	bomQuery := `
		INSERT INTO bom_entries (product_id, material_id, quantity_per_product)
		SELECT p.id, m.id, $3
		FROM products p, materials m
		WHERE p.sku = $1 AND m.code = $2
	`
	rows, err = forEachRow(filepath.Join(dataDir, "bom.csv"), func(get func(string) string) error {
		_, err := db.ExecContext(c.Context, bomQuery,
			get("product_sku"), get("material_code"), parseFloat(get("quantity_per_product")))
		return err
	})
	if err != nil {
		return err
	}
	log.Printf("loaded %d bom entries", rows)
	return nil
}

func runProduction(c *cli.Context) error {
	db := dbFrom(c)
	path := filepath.Join(c.String("data-dir"), "production_output.csv")

	query := `
		INSERT INTO production_output (product_id, output_date, quantity_produced)
		SELECT p.id, NULLIF($2, '')::date, $3
		FROM products p WHERE p.sku = $1
		ON CONFLICT (product_id, output_date) DO UPDATE SET
			quantity_produced = EXCLUDED.quantity_produced,
			updated_at = NOW()
	`
	rows, err := forEachRow(path, func(get func(string) string) error {
		_, err := db.ExecContext(c.Context, query,
			get("sku"), get("date"), parseFloat(get("quantity_produced")))
		return err
	})
	if err != nil {
		return err
	}
	log.Printf("loaded %d production output rows", rows)
	return nil
}

func runOrders(c *cli.Context) error {
	db := dbFrom(c)
	dataDir := c.String("data-dir")

	orderQuery := `
		INSERT INTO orders (id, status, accepted_at, created_at)
		VALUES ($1, $2, NULLIF($3, '')::timestamptz, COALESCE(NULLIF($4, '')::timestamptz, NOW()))
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			accepted_at = EXCLUDED.accepted_at
	`
	rows, err := forEachRow(filepath.Join(dataDir, "orders.csv"), func(get func(string) string) error {
		status := get("status")
		if status == "" {
			status = "accepted"
		}
		_, err := db.ExecContext(c.Context, orderQuery,
			get("id"), status, get("accepted_at"), get("created_at"))
		return err
	})
	if err != nil {
		return err
	}
	log.Printf("loaded %d orders", rows)

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, quantity)
		SELECT $1, p.id, $3
		FROM products p WHERE p.sku = $2
	`
	rows, err = forEachRow(filepath.Join(dataDir, "order_items.csv"), func(get func(string) string) error {
		_, err := db.ExecContext(c.Context, itemQuery,
			get("order_id"), get("sku"), parseFloat(get("quantity")))
		return err
	})
	if err != nil {
		return err
	}
	log.Printf("loaded %d order items", rows)

	// Keep the sequence ahead of explicit IDs from the export.
	if _, err := db.ExecContext(c.Context,
		`SELECT setval('orders_id_seq', (SELECT COALESCE(MAX(id), 1) FROM orders))`); err != nil {
		return fmt.Errorf("failed to advance orders sequence: %w", err)
	}
	return nil
}
