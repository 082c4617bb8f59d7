package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"course-catalog-go/internal/database"
	"course-catalog-go/internal/fixtures"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

func main() {
	seed := flag.Bool("seed", false, "insert the fixture catalog after migrating")
	source := flag.String("source", "file://./migrations", "migration source url")
	flag.Parse()

	log.SetLevel(log.InfoLevel)
	log.Println("starting migrate")

	dbConn := os.Getenv("DB_CONN")

	if dbConn == "" {
		dbConn = "user=ps_user password=ps_password dbname=backend sslmode=disable host=0.0.0.0"
	}

	log.Println("connecting to db")

	db, err := sql.Open("postgres", dbConn)

	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			log.Errorf("closing the db: %v", err)
		}
	}(db)

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.NewWithDatabaseInstance(*source, "postgres", driver)

	if err != nil {
		log.Fatal(err)
	}

	err = m.Up()
	if err != nil {
		if err != migrate.ErrNoChange {
			log.Fatal(err)
		}
	}

	if *seed {
		catalog, err := fixtures.Load()
		if err != nil {
			log.Fatalf("loading fixture catalog: %v", err)
		}

		if err := database.Seed(db, catalog.Courses, catalog.Lessons); err != nil {
			log.Fatalf("seeding catalog: %v", err)
		}

		log.WithFields(log.Fields{
			"courses": len(catalog.Courses),
			"lessons": len(catalog.Lessons),
		}).Info("catalog seeded")
	}

	fmt.Println("Migrations complete!")
}
