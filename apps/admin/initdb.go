package main

import (
	"fmt"

	"github.com/darasahq/darasa/core/school"
)

// initDB reports the state of the data file; the store already created
// and migrated it on startup.
func (cli *commandLine) initDB() error {
	return cli.store.View(func(doc *school.Document) error {
		fmt.Printf("data file ready: version %d, %d students, %d staff accounts\n",
			doc.Version, len(doc.Students), len(doc.Users))
		return nil
	})
}
