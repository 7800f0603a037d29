// seed inserts development sample clients for local testing.
// Idempotent: inserts use ON CONFLICT (inn) DO NOTHING, so rerunning is safe.
package main

import (
	"context"
	"fmt"
	"log"

	"call-verification/backend/internal/config"
	"call-verification/backend/internal/db"
)

// seedClient is one row for the clients directory.
type seedClient struct {
	inn     int64
	company string
	code    string
	phone   string
	active  bool
}

var seedClients = []seedClient{
	{4205128383, "ООО Альтаир", "альтаир", "+73842123456", true},
	{7707083893, "ПАО Сбербанк Тест", "сбер", "+74955005550", true},
	{540602348585, "ИП Кузнецов Пётр Иванович", "зима", "+79137894561", true},
	{2310031475, "ООО Прометей", "прометей", "+78612234567", true},
	{616812345678, "ИП Сидорова Анна Павловна", "весна", "+79281112233", false},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	inserted := 0
	for _, c := range seedClients {
		res, err := conn.ExecContext(ctx, `
			INSERT INTO clients (inn, company_name, code_word, phone_number, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			ON CONFLICT (inn) DO NOTHING
		`, c.inn, c.company, c.code, c.phone, c.active)
		if err != nil {
			log.Fatalf("seed client %d: %v", c.inn, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	log.Printf("Seed completed: %d of %d clients inserted.", inserted, len(seedClients))
	fmt.Printf("Test call: speak INN %d, codeword %q\n", seedClients[0].inn, seedClients[0].code)
}
