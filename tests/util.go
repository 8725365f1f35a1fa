package testutil

import (
	"context"
	"testing"

	"github.com/trezcool/masomo-surveys/core"
	"github.com/trezcool/masomo-surveys/core/survey"
)

// QuestionStore is a repository that questions can be seeded into.
type QuestionStore interface {
	survey.Repository
	AddQuestions(ctx context.Context, role survey.Role, respondentID string, records ...survey.Record) error
}

// NewConfig returns the app config in test mode, with request logs off.
func NewConfig() *core.Config {
	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true
	conf.Server.DisableReqLogs = true
	return conf
}

func SeedQuestions(t *testing.T, repo QuestionStore, id survey.Identity, records ...survey.Record) {
	if err := repo.AddQuestions(context.Background(), id.Role, id.UserID, records...); err != nil {
		t.Fatalf("SeedQuestions() failed: %v", err)
	}
}

func StudentRecord(id survey.ID, subject, teacher string, answered bool) survey.Record {
	return survey.Record{
		ID:           id,
		SubjectName:  subject,
		TeacherName:  teacher,
		IsAnswered:   answered,
		QuestionText: "How was " + subject + "?",
		AnswerType:   "scale",
	}
}

func ParentRecord(id survey.ID, section string, childID survey.ID, childName string, answered bool) survey.Record {
	return survey.Record{
		ID:              id,
		SubjectName:     "Parent survey",
		Section:         section,
		StudentID:       childID,
		StudentFullName: childName,
		IsAnswered:      answered,
		QuestionText:    "How is " + childName + " doing?",
		AnswerType:      "text",
	}
}
