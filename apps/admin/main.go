package main

import (
	"log"
	"os"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/account"
	logsvc "github.com/darasahq/darasa/services/logger"
	"github.com/darasahq/darasa/storage/document"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	rollbar := logsvc.NewRollbarLogger(logger, conf)
	rollbar.Enable(false) // no remote reporting from the CLI

	// set up document store
	store := document.NewFileStore(conf, rollbar)
	errAndDie(store.Init())

	// start CLI
	cli := commandLine{
		store:  store,
		usrSvc: account.NewService(store),
	}
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
