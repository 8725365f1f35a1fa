package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/trezcool/masomo-surveys/core/survey"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

// questionStore is where seeded questions go.
type questionStore interface {
	AddQuestions(ctx context.Context, role survey.Role, respondentID string, records ...survey.Record) error
}

type commandLine struct {
	db       *sql.DB
	store    questionStore
	svc      *survey.Service
	validate *validator.Validate
	out      io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS]                                   - run a goose migration command (up, down, status, ...)")
	fmt.Println("  token encode -subject SUBJECT [-teacher TEACHER] | -child ID - print the token of a selection")
	fmt.Println("  token decode TOKEN                                       - print the selection of a token")
	fmt.Println("  dashboard -student ID | -parent ID                       - print the dashboard of a respondent")
	fmt.Println("  seed -file FILE -role student|parent -respondent ID      - load questions from a JSON file")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "token":
		return cli.runToken(args[2:])
	case "dashboard":
		return cli.runDashboard(args[2:])
	case "seed":
		return cli.runSeed(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) runToken(args []string) error {
	if len(args) < 1 {
		cli.printUsage()
		return errHelp
	}

	encodeCmd := flag.NewFlagSet("token encode", flag.ExitOnError)
	encodeSubject := encodeCmd.String("subject", "", "The subject name (School for the school survey).")
	encodeTeacher := encodeCmd.String("teacher", "", "The teacher name. Optional.")
	encodeChild := encodeCmd.String("child", "", "The child (student) id. Not to be combined with -subject.")

	switch args[0] {
	case "encode":
		if err := encodeCmd.Parse(args[1:]); err != nil {
			return err
		}
		if (*encodeSubject == "") == (*encodeChild == "") {
			encodeCmd.Usage()
			return errHelp
		}
		return cli.encodeToken(*encodeSubject, *encodeTeacher, *encodeChild)
	case "decode":
		if len(args) < 2 {
			cli.printUsage()
			return errHelp
		}
		return cli.decodeToken(args[1])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) runDashboard(args []string) error {
	dashboardCmd := flag.NewFlagSet("dashboard", flag.ExitOnError)
	dashboardStudent := dashboardCmd.String("student", "", "The student id.")
	dashboardParent := dashboardCmd.String("parent", "", "The parent id.")

	if err := dashboardCmd.Parse(args); err != nil {
		return err
	}
	if (*dashboardStudent == "") == (*dashboardParent == "") {
		dashboardCmd.Usage()
		return errHelp
	}
	return cli.dashboard(*dashboardStudent, *dashboardParent)
}

func (cli *commandLine) runSeed(args []string) error {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedFile := seedCmd.String("file", "", "A JSON file holding either a list of questions or a {\"response\": {\"questions\": [...]}} payload.")
	seedRole := seedCmd.String("role", "", "The respondent role: student or parent.")
	seedRespondent := seedCmd.String("respondent", "", "The respondent id.")

	if err := seedCmd.Parse(args); err != nil {
		return err
	}
	if *seedFile == "" || *seedRole == "" || *seedRespondent == "" {
		seedCmd.Usage()
		return errHelp
	}
	return cli.seed(*seedFile, *seedRole, *seedRespondent)
}
