package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/salescope/src/logger"
	"github.com/username/salescope/src/models"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

// salesColumns is the column order used when reading the sample dataset.
var salesColumns = []string{"product_name", "quantity", "price", "sale_date"}

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	// Loose column affinity on purpose: the sample dataset mirrors whatever
	// heterogeneous feed it was seeded from.
	createTableStatement := `
	CREATE TABLE IF NOT EXISTS sales_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_name TEXT,
		quantity NUMERIC,
		price NUMERIC,
		sale_date TEXT
	);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}

	migrateSalesTable()

	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.", "databasePath", databasePath)
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

// migrateSalesTable backfills the sale_date column for databases seeded
// before it existed.
func migrateSalesTable() {
	rows, err := DB.Query("PRAGMA table_info(sales_data)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for sales_data", "error", err)
		} else {
			stdlog.Printf("Error querying table schema for sales_data: %v", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info for sales_data", "error", err)
			} else {
				stdlog.Printf("Error scanning column info for sales_data: %v", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info for sales_data", "error", err)
		}
		return
	}

	if _, ok := columnExists["sale_date"]; !ok {
		_, err := DB.Exec("ALTER TABLE sales_data ADD COLUMN sale_date TEXT")
		if err != nil {
			logger.L.Error("Error adding 'sale_date' column to 'sales_data' table", "error", err)
		} else {
			logger.L.Info("Added 'sale_date' column to 'sales_data' table")
		}
	}
}

// FetchSalesRows reads every row of the sample dataset as a RawRow keyed by
// column name. No filtering or ordering is applied.
func FetchSalesRows() ([]models.RawRow, error) {
	rows, err := DB.Query(`SELECT product_name, quantity, price, sale_date FROM sales_data`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.RawRow
	for rows.Next() {
		values := make([]any, len(salesColumns))
		scanTargets := make([]any, len(salesColumns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, err
		}
		row := make(models.RawRow, len(salesColumns))
		for i, col := range salesColumns {
			if values[i] != nil {
				row[col] = values[i]
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if logger.L != nil {
		logger.L.Info("Sample dataset fetch complete.", "rowCount", len(result))
	}
	return result, nil
}
