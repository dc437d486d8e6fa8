package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"printrelay/internal/models"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// Credentials holds Postgres connection settings.
type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// Database persists order rows in Postgres. Connections are pooled;
// acquisition and release are scoped per query by database/sql.
type Database struct {
	db *sql.DB
}

// NewDatabase opens and pings the database.
func NewDatabase(cred *Credentials) (*Database, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	log.Printf("Connected to postgres at %s:%d", cred.Host, cred.Port)
	return &Database{db: db}, nil
}

// RunMigrations applies pending schema migrations.
func (d *Database) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(d.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}
	return nil
}

// CreateOrder inserts an order row and returns its generated id.
func (d *Database) CreateOrder(ctx context.Context, order *models.Order) (int64, error) {
	const query = `
		INSERT INTO orders (name, address1, city, state_code, country_code, zip, variant_id, quantity, file_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	var id int64
	err := d.db.QueryRowContext(ctx, query,
		order.Name,
		order.Address1,
		order.City,
		order.StateCode,
		order.CountryCode,
		order.Zip,
		order.VariantID,
		order.Quantity,
		order.FileURL,
		order.Status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	order.ID = id
	return id, nil
}

// UpdateOrderStatus records the fulfillment outcome for an order.
func (d *Database) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	res, err := d.db.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("order %d not found", id)
	}
	return nil
}

// Close releases the connection pool.
func (d *Database) Close() error {
	return d.db.Close()
}
