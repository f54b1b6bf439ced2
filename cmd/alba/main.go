package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/albashop/alba"
	"github.com/albashop/alba/core"
)

func main() {
	configPath := flag.String("config", "alba.toml", "path to the TOML configuration file")
	dbPath := flag.String("db", "alba.db", "path to the sqlite database file")
	poolSize := flag.Int("pool-size", 4, "sqlite connection pool size")
	flag.Parse()

	dbApp, pool, err := alba.SetupDatabase(*dbPath, *poolSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	_, srv, err := alba.New(*configPath,
		core.WithDbApp(dbApp),
		alba.WithPhusLogger(nil),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	srv.Run()
}
