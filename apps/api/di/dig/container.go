package dig_container

import (
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/homework/apps/api/echo"
	"github.com/trezcool/homework/core"
	"github.com/trezcool/homework/core/homework"
	logsvc "github.com/trezcool/homework/services/logger"
	"github.com/trezcool/homework/storage"
)

type (
	DBLoggerParam struct {
		dig.In
		Logger core.Logger `name:"dbLogger"`
	}

	serverParams struct {
		dig.In
		Conf        *core.Config
		Logger      core.Logger
		HomeworkSvc *homework.Service
		Validate    *validator.Validate
		Translator  ut.Translator
	}
)

func newLogger(conf *core.Config) core.Logger {
	return logsvc.New("API : ", conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	return logsvc.New("DB : ", conf)
}

func newStore(conf *core.Config, loggerParam DBLoggerParam) (*storage.Store, homework.Repository, error) {
	store, err := storage.Open(conf, loggerParam.Logger)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "setting up %s store", conf.Store.Backend)
	}
	return store, store, nil
}

func newValidate(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

func newServer(p serverParams) (*echoapi.Server, error) {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:        p.Conf,
		Logger:      p.Logger,
		HomeworkSvc: p.HomeworkSvc,
		Validate:    p.Validate,
		Translator:  p.Translator,
	})
}

// New returns a new dependency injection dig.Container.
// newConfig is core.NewConfig outside of tests.
func New(newConfig func() *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStore))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidate))
	must(c.Provide(homework.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
