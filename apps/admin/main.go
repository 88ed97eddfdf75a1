package main

import (
	"os"

	"github.com/trezcool/homework/core"
	logsvc "github.com/trezcool/homework/services/logger"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.New("ADMIN : ", conf)

	cli := newCommandLine(conf, logger, os.Stdout)
	err := cli.run(os.Args[1:])
	if cErr := cli.close(); cErr != nil {
		logger.Error("closing store", cErr)
	}
	if err != nil {
		os.Exit(1)
	}
}
