// Command seed-db applies migrations and loads the initial catalog and the
// default admin account.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dulcecodigo/storefront/internal/domain/auth"
	"github.com/dulcecodigo/storefront/internal/storage/postgres"
)

type productJSON struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	Stock       int             `json:"stock"`
}

func main() {
	var (
		databaseURL   string
		productsFile  string
		adminUser     string
		adminPassword string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "db/seed/products.json", "path to products JSON file")
	flag.StringVar(&adminUser, "admin-user", "admin", "admin account username")
	flag.StringVar(&adminPassword, "admin-password", "", "admin account password (or SHOP_SEED_ADMIN_PASSWORD env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	if adminPassword == "" {
		adminPassword = os.Getenv("SHOP_SEED_ADMIN_PASSWORD")
	}
	if adminPassword == "" {
		slog.Error("admin password is required: set --admin-password or SHOP_SEED_ADMIN_PASSWORD")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile, adminUser, adminPassword); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile, adminUser, adminPassword string) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedProducts(ctx, pool, productsFile); err != nil {
		return errors.Wrap(err, "seed products")
	}

	if err := seedAdmin(ctx, pool, adminUser, adminPassword); err != nil {
		return errors.Wrap(err, "seed admin")
	}

	return nil
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool, productsFile string) error {
	slog.Info("reading products file", slog.String("path", productsFile))

	data, err := os.ReadFile(productsFile)
	if err != nil {
		return errors.Wrap(err, "read products file")
	}

	var products []productJSON
	if err := json.Unmarshal(data, &products); err != nil {
		return errors.Wrap(err, "parse products JSON")
	}

	slog.Info("upserting products", slog.Int("count", len(products)))

	const query = `
		INSERT INTO products (name, description, price, category, image_url, stock, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		ON CONFLICT (name) DO UPDATE SET
			description = EXCLUDED.description,
			price       = EXCLUDED.price,
			category    = EXCLUDED.category,
			image_url   = EXCLUDED.image_url,
			stock       = EXCLUDED.stock`

	for _, p := range products {
		_, err := pool.Exec(ctx, query,
			p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.Stock)
		if err != nil {
			return errors.Wrapf(err, "upsert product %s", p.Name)
		}
		slog.Info("upserted product", slog.String("name", p.Name), slog.String("category", p.Category))
	}

	return nil
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool, username, password string) error {
	slog.Info("seeding admin account", slog.String("username", username))

	hash, err := auth.HashPassword(password)
	if err != nil {
		return errors.Wrap(err, "hash admin password")
	}

	const query = `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash`

	if _, err := pool.Exec(ctx, query, username, hash); err != nil {
		return errors.Wrap(err, "upsert admin account")
	}

	return nil
}
