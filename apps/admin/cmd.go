package main

import (
	"errors"
	"fmt"

	"github.com/fineduca/backend/core"
	"github.com/fineduca/backend/storage/database"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf *core.Config
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  createdb                              - create the application database and user if they do not exist")
	fmt.Println("  migrate [up|down|redo|status|version] - run database migrations (default: up)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "createdb":
		return cli.createDB()
	case "migrate":
		command := "up"
		if len(args) > 2 {
			command = args[2]
		}
		return cli.migrate(command)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) createDB() error {
	if err := database.CreateIfNotExist(cli.conf); err != nil {
		return err
	}
	logger.Println("database ready")
	return nil
}

func (cli *commandLine) migrate(command string) error {
	db, err := openDB(cli.conf)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err = database.Run(db, command); err != nil {
		return err
	}
	logger.Printf("migrate %s: done", command)
	return nil
}
