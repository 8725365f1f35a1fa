package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-surveys/core/survey"
)

// seed loads the questions of a JSON file into the store. Invalid questions abort the whole file.
func (cli *commandLine) seed(path, role, respondentID string) error {
	if cli.store == nil {
		return errors.New("no question store configured")
	}

	r, err := survey.ParseRole(role)
	if err != nil {
		return err
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading questions file")
	}
	records, err := readRecords(data)
	if err != nil {
		return err
	}

	for i, rec := range records {
		if err = rec.Validate(cli.validate, r); err != nil {
			return errors.Wrapf(err, "questions[%d]", i)
		}
	}

	if err = cli.store.AddQuestions(context.Background(), r, respondentID, records...); err != nil {
		return errors.Wrap(err, "adding questions")
	}
	_, err = fmt.Fprintf(cli.out, "%d question(s) added for %s %s\n", len(records), r, respondentID)
	return err
}

// readRecords accepts either a list of questions or a questions payload.
func readRecords(data []byte) ([]survey.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var records []survey.Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, errors.Wrap(err, "decoding questions")
		}
		return records, nil
	}

	var payload *survey.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrap(err, "decoding questions payload")
	}
	return payload.Questions()
}
