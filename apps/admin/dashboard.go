package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-surveys/core/survey"
)

// dashboard prints the dashboard of a respondent as JSON, indented on a terminal.
func (cli *commandLine) dashboard(studentID, parentID string) error {
	if cli.svc == nil {
		return errors.New("no question source configured")
	}

	id, err := survey.NewIdentity(studentID, parentID)
	if err != nil {
		return err
	}

	dash, err := cli.svc.Dashboard(context.Background(), id)
	if err != nil {
		return errors.Wrap(err, "composing dashboard")
	}

	var data []byte
	if isTerminalFunc(int(os.Stdout.Fd())) {
		data, err = json.MarshalIndent(dash, "", "  ")
	} else {
		data, err = json.Marshal(dash)
	}
	if err != nil {
		return errors.Wrap(err, "encoding dashboard")
	}
	_, err = fmt.Fprintln(cli.out, string(data))
	return err
}
