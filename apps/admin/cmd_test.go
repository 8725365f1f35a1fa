package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-surveys/core"
	"github.com/trezcool/masomo-surveys/core/survey"
	logsvc "github.com/trezcool/masomo-surveys/services/logger"
	inmemdb "github.com/trezcool/masomo-surveys/storage/database/inmem"
	"github.com/trezcool/masomo-surveys/tests"
)

var repo testutil.QuestionStore

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	repo = inmemdb.NewQuestionRepository(db)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	survey.InitValidators(validate, translator)

	// start CLI
	out := new(bytes.Buffer)
	return &commandLine{
		store:    repo,
		svc:      survey.NewService(repo, validate, logsvc.NewNopLogger()),
		validate: validate,
		out:      out,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    string
}

func runCLITests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if errors.Cause(err) != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
				return
			}
			if tt.wantErr != nil || tt.wantErrStr != "" {
				t.Errorf("cli.run() error = nil, want an error")
			}
			if tt.wantOut != "" && out.String() != tt.wantOut {
				t.Errorf("cli.run() out = %q, wantOut %q", out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_usage(t *testing.T) {
	cli, out := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "token: no subcommand", args: []string{"token"}, wantErr: errHelp},
		{name: "token: unknown subcommand", args: []string{"token", "lol"}, wantErr: errHelp},
	})
}

func Test_commandLine_migrate(t *testing.T) {
	cli, out := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		if _, err := fs.ReadDir(fsys, dir); err != nil {
			return err
		}
		return nil
	}

	runCLITests(t, cli, out, []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "0"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "answers", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	})
}

func Test_commandLine_token(t *testing.T) {
	cli, out := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "encode: no args", args: []string{"token", "encode"}, wantErr: errHelp},
		{name: "encode: subject & child", args: []string{"token", "encode", "-subject", "Math", "-child", "7"}, wantErr: errHelp},
		{name: "encode: teacher only", args: []string{"token", "encode", "-teacher", "Ms X"}, wantErr: errHelp},
		{name: "encode: school", args: []string{"token", "encode", "-subject", "School"}, wantOut: "School-\n"},
		{
			name: "encode: subject & teacher", args: []string{"token", "encode", "-subject", "Franco-Prussian History", "-teacher", "Mrs Smith-Jones"},
			wantOut: "Franco%2DPrussian%20History-Mrs%20Smith%2DJones\n",
		},
		{name: "encode: child", args: []string{"token", "encode", "-child", "7"}, wantOut: "7\n"},
		{name: "decode: no token", args: []string{"token", "decode"}, wantErr: errHelp},
		{
			name: "decode: subject & teacher", args: []string{"token", "decode", "Franco%2DPrussian%20History-Mrs%20Smith%2DJones"},
			wantOut: `{"subject":"Franco-Prussian History","teacher":"Mrs Smith-Jones"}` + "\n",
		},
		{name: "decode: child", args: []string{"token", "decode", "7"}, wantOut: `{"child_id":"7"}` + "\n"},
		{
			name: "decode: invalid", args: []string{"token", "decode", "Math-Ms-X"},
			wantErrStr: `decoding token "Math-Ms-X": too many separators`,
		},
	})
}

func Test_commandLine_dashboard(t *testing.T) {
	cli, out := setup(t)

	student := survey.Identity{Role: survey.RoleStudent, UserID: "s1"}
	testutil.SeedQuestions(t, repo, student,
		testutil.StudentRecord("1", survey.SchoolSubject, "", true),
		testutil.StudentRecord("2", "Math", "Ms X", false),
	)

	runCLITests(t, cli, out, []cliTest{
		{name: "no respondent", args: []string{"dashboard"}, wantErr: errHelp},
		{name: "both respondents", args: []string{"dashboard", "-student", "s1", "-parent", "p1"}, wantErr: errHelp},
	})

	for _, terminal := range []bool{false, true} {
		t.Run(fmt.Sprintf("terminal=%v", terminal), func(t *testing.T) {
			isTerminalFunc = func(fd int) bool { return terminal }
			out.Reset()

			require.NoError(t, cli.run([]string{"admin", "dashboard", "-student", "s1"}))

			var dash survey.Dashboard
			require.NoError(t, json.Unmarshal(out.Bytes(), &dash))
			assert.Equal(t, survey.RoleStudent, dash.Role)
			require.NotNil(t, dash.School)
			assert.Equal(t, survey.StatusComplete, dash.School.Status)
			require.Len(t, dash.Subjects, 1)
			assert.Equal(t, "Math", dash.Subjects[0].Name)
			assert.Equal(t, survey.StatusIncomplete, dash.Subjects[0].Status)
			assert.Equal(t, terminal, bytes.Contains(out.Bytes(), []byte("\n  ")))
		})
	}
}

func Test_commandLine_seed(t *testing.T) {
	cli, out := setup(t)
	dir := t.TempDir()

	writeFile := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := ioutil.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile() failed: %v", err)
		}
		return path
	}
	list := writeFile("list.json", `[
		{"id": 1, "subject_name": "Parent survey", "section": "Section A", "student_id": 7, "student_full_name": "Amani"},
		{"id": 2, "subject_name": "Parent survey", "section": "Section B", "student_id": "7", "student_full_name": "Amani", "is_answered": true}
	]`)
	payload := writeFile("payload.json", `{"response": {"questions": [{"id": "3", "subject_name": "Math", "teacher_name": "Ms X"}]}}`)
	noQuestions := writeFile("empty.json", `{"response": {}}`)
	invalid := writeFile("invalid.json", `[{"id": 4, "subject_name": "Parent survey", "section": "Section A"}]`)

	runCLITests(t, cli, out, []cliTest{
		{name: "no args", args: []string{"seed"}, wantErr: errHelp},
		{name: "unknown role", args: []string{"seed", "-file", list, "-role", "teacher", "-respondent", "t1"}, wantErr: survey.ErrInvalidRole},
		{name: "list", args: []string{"seed", "-file", list, "-role", "parent", "-respondent", "p1"}, wantOut: "2 question(s) added for parent p1\n"},
		{name: "payload", args: []string{"seed", "-file", payload, "-role", "Student", "-respondent", "s1"}, wantOut: "1 question(s) added for student s1\n"},
		{name: "payload without questions", args: []string{"seed", "-file", noQuestions, "-role", "student", "-respondent", "s1"}, wantErrStr: "malformed input: missing response.questions"},
	})

	t.Run("invalid question", func(t *testing.T) {
		err := cli.run([]string{"admin", "seed", "-file", invalid, "-role", "parent", "-respondent", "p2"})
		require.Error(t, err)
		_, ok := errors.Cause(err).(validator.ValidationErrors)
		assert.True(t, ok)
	})

	payloadP1, err := repo.QueryQuestions(context.Background(), survey.Identity{Role: survey.RoleParent, UserID: "p1"})
	require.NoError(t, err)
	records, err := payloadP1.Questions()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, survey.ID("7"), records[0].StudentID)
	assert.Equal(t, survey.ID("7"), records[1].StudentID)

	payloadP2, _ := repo.QueryQuestions(context.Background(), survey.Identity{Role: survey.RoleParent, UserID: "p2"})
	records, _ = payloadP2.Questions()
	assert.Empty(t, records)
}
