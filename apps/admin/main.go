package main

import (
	"context"
	"log"
	"os"

	"github.com/greencampus/greencampus/core"
	"github.com/greencampus/greencampus/core/user"
	"github.com/greencampus/greencampus/storage"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()
	ctx := context.Background()

	// set up DB
	store, err := storage.Open(ctx, conf)
	errAndDie(err)
	if store.Engine == core.EngineMemory {
		logger.Println("warning: the memory engine does not persist anything")
	}

	validate := core.NewValidator()
	user.InitValidators(validate)

	// start CLI
	cli := commandLine{
		usrSvc: user.NewService(store.Users, nil /* no welcome email */, validate, conf),
		db:     store.SQL,
	}
	err = cli.run(ctx, os.Args[1:])
	_ = store.Close()
	if err != nil {
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
