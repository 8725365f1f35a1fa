package main

import (
	"encoding/json"
	"fmt"

	"github.com/trezcool/masomo-surveys/core/survey"
)

func (cli *commandLine) encodeToken(subject, teacher, childID string) error {
	if childID != "" {
		_, err := fmt.Fprintln(cli.out, survey.EncodeChild(survey.ID(childID)))
		return err
	}

	token, err := survey.EncodeSubjectTeacher(subject, teacher)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cli.out, token)
	return err
}

func (cli *commandLine) decodeToken(token string) error {
	sel, err := survey.Decode(token)
	if err != nil {
		return err
	}
	data, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cli.out, string(data))
	return err
}
