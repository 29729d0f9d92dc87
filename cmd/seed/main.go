// Command seed loads a CSV file into the sales_data sample table so the
// dashboard has something to report on without an upload.
//
// Usage:
//
//	go run ./cmd/seed -file=sales.csv -db=./salescope.db
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/username/salescope/src/models"
	"github.com/username/salescope/src/parsers"
	_ "modernc.org/sqlite"
)

const insertBatchSize = 500

func main() {
	filePath := flag.String("file", "", "path to the CSV file to load")
	dbPath := flag.String("db", "./salescope.db", "path to the sqlite database")
	truncate := flag.Bool("truncate", false, "clear existing sample rows before loading")
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*filePath, *dbPath, *truncate); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run(filePath, dbPath string, truncate bool) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", filePath, err)
	}
	defer file.Close()

	rows, err := parsers.NewCSVParser().Parse(file)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filePath, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s contains no data rows", filePath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", dbPath, err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS sales_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_name TEXT,
		quantity NUMERIC,
		price NUMERIC,
		sale_date TEXT
	)`); err != nil {
		return fmt.Errorf("ensure sales_data table: %w", err)
	}

	if truncate {
		if _, err := db.Exec(`DELETE FROM sales_data`); err != nil {
			return fmt.Errorf("truncate sales_data: %w", err)
		}
		log.Println("cleared existing sample rows")
	}

	bar := progressbar.Default(int64(len(rows)))
	inserted := 0

	for start := 0; start < len(rows); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := insertBatch(db, rows[start:end]); err != nil {
			return err
		}
		inserted += end - start
		_ = bar.Add(end - start)
	}

	log.Printf("loaded %d rows from %s into %s", inserted, filePath, dbPath)
	return nil
}

func insertBatch(db *sql.DB, rows []models.RawRow) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO sales_data (product_name, quantity, price, sale_date) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.Exec(
			firstValue(row, "product_name", "Product Name", "product", "Product"),
			firstValue(row, "quantity", "Quantity"),
			firstValue(row, "price", "Price"),
			firstValue(row, "sale_date", "Sale Date", "date", "Date"),
		)
		if err != nil {
			return fmt.Errorf("insert row: %w", err)
		}
	}

	return tx.Commit()
}

// firstValue returns the first present key's value as a string; rows keep
// whatever header naming the source file used.
func firstValue(row models.RawRow, keys ...string) string {
	for _, key := range keys {
		if v, ok := row[key]; ok && v != nil {
			if s, ok := v.(string); ok {
				return s
			}
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}
