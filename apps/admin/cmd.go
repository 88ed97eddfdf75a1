package main

import (
	"io"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/trezcool/homework/core"
	"github.com/trezcool/homework/core/homework"
	"github.com/trezcool/homework/storage"
)

type commandLine struct {
	conf       *core.Config
	logger     core.Logger
	validate   *validator.Validate
	translator ut.Translator
	out        io.Writer

	store *storage.Store
	svc   *homework.Service
}

func newCommandLine(conf *core.Config, logger core.Logger, out io.Writer) *commandLine {
	translator := core.NewTranslator()
	validate := validator.New()
	core.InitValidators(validate, translator)

	return &commandLine{
		conf:       conf,
		logger:     logger,
		validate:   validate,
		translator: translator,
		out:        out,
	}
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "homeworkctl",
		Short:         "Manage homework records and the homework database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)
	root.PersistentFlags().StringVar(&cli.conf.Store.Backend, "store", cli.conf.Store.Backend,
		"store backend: sql, files, bolt or memory")

	root.AddCommand(
		cli.migrateCmd(),
		cli.listCmd(),
		cli.showCmd(),
		cli.addCmd(),
		cli.deleteCmd(),
	)
	return root
}

// run executes the command line (without the program name).
func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		root.PrintErrln("error:", err)
		return err
	}
	return nil
}

// openStore opens the configured store once; used as PreRunE of the record commands.
func (cli *commandLine) openStore(_ *cobra.Command, _ []string) error {
	if cli.store != nil {
		return nil
	}
	store, err := storage.Open(cli.conf, cli.logger)
	if err != nil {
		return err
	}
	cli.store = store
	cli.svc = homework.NewService(store)
	return nil
}

func (cli *commandLine) close() error {
	if cli.store == nil {
		return nil
	}
	err := cli.store.Close()
	cli.store, cli.svc = nil, nil
	return err
}
