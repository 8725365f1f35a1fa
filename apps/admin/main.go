package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-surveys/core"
	"github.com/trezcool/masomo-surveys/core/survey"
	logsvc "github.com/trezcool/masomo-surveys/services/logger"
	questionsvc "github.com/trezcool/masomo-surveys/services/questions"
	"github.com/trezcool/masomo-surveys/storage/database"
	sqlxrepos "github.com/trezcool/masomo-surveys/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	svcLogger := logsvc.NewRollbarLogger(logger, conf)
	svcLogger.Enable(!conf.Debug)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	survey.InitValidators(validate, translator)

	cli := commandLine{
		out:      os.Stdout,
		validate: validate,
	}

	// set up DB
	if needsDB(os.Args, conf) {
		db, err := database.Open(conf)
		errAndDie(err)
		defer func() { _ = db.Close() }()

		repo := sqlxrepos.NewQuestionRepository(db)
		cli.db = db.DB
		cli.store = repo
		cli.svc = survey.NewService(repo, validate, svcLogger)
	}
	if conf.Questions.UseAPI() {
		cli.svc = survey.NewService(questionsvc.NewAPIRepository(conf.Questions, svcLogger), validate, svcLogger)
	}

	// start CLI
	err := cli.run(os.Args)
	if err != nil && err != errHelp {
		logger.Printf("\nerror: %s\n", err)
	}
	if err != nil {
		os.Exit(1)
	}
}

// needsDB tells whether the command reads or writes the questions database.
func needsDB(args []string, conf *core.Config) bool {
	if len(args) < 2 {
		return false
	}
	switch args[1] {
	case "migrate", "seed":
		return true
	case "dashboard":
		return !conf.Questions.UseAPI()
	}
	return false
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
