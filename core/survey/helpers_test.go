package survey

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-surveys/core"
)

func newValidate() *validator.Validate {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate
}

type logEntry struct {
	level string
	msg   string
	args  []interface{}
}

// recordingLogger keeps the logged entries in memory.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

var _ core.Logger = (*recordingLogger)(nil)

func (l *recordingLogger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, args: args})
}

func (l *recordingLogger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *recordingLogger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *recordingLogger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *recordingLogger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *recordingLogger) Fatal(msg string, args ...interface{}) { l.log("fatal", msg, args) }

func (l *recordingLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int
	for _, e := range l.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

// stubRepository serves a fixed payload (or error) for any respondent.
type stubRepository struct {
	payload *Payload
	err     error
	calls   int
}

func (repo *stubRepository) QueryQuestions(ctx context.Context, id Identity) (*Payload, error) {
	repo.calls++
	return repo.payload, repo.err
}

func rec(id int, subject, teacher string, answered bool) Record {
	return Record{
		ID:          ID(fmt.Sprint(id)),
		SubjectName: subject,
		TeacherName: teacher,
		IsAnswered:  answered,
	}
}

func parentRec(id int, section string, studentID ID, name string, answered bool) Record {
	return Record{
		ID:              ID(fmt.Sprint(id)),
		SubjectName:     "Parent survey",
		Section:         section,
		StudentID:       studentID,
		StudentFullName: name,
		IsAnswered:      answered,
	}
}

func ids(records []Record) []ID {
	out := make([]ID, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
