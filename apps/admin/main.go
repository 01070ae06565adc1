package main

import (
	"log"
	"os"

	"github.com/ewanblake/aihub/core"
	"github.com/ewanblake/aihub/storage/database"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	cli := commandLine{conf: conf}

	// only the migrate command talks to the DB
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		db, err := database.Open(conf)
		errAndDie(err)
		defer db.Close()
		cli.db = db
	}

	// start CLI
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
