package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/masomo-surveys/core"
	"github.com/trezcool/masomo-surveys/core/survey"
)

const (
	selectQuestions = `
SELECT id, subject_name, teacher_name, section, student_id, student_full_name,
       is_answered, question_text, answer_type, options
FROM survey_questions
WHERE respondent_role = $1 AND respondent_id = $2
ORDER BY position, id`

	// serializes the writers of one respondent until the end of the transaction
	lockRespondent = `SELECT pg_advisory_xact_lock(hashtext($1::text || ':' || $2::text))`

	selectLastPosition = `
SELECT COALESCE(MAX(position), 0)
FROM survey_questions
WHERE respondent_role = $1 AND respondent_id = $2`

	insertQuestion = `
INSERT INTO survey_questions (
    respondent_role, respondent_id, position, subject_name, teacher_name, section,
    student_id, student_full_name, is_answered, question_text, answer_type, options
) VALUES (
    :respondent_role, :respondent_id, :position, :subject_name, :teacher_name, :section,
    :student_id, :student_full_name, :is_answered, :question_text, :answer_type, :options
)`
)

// questionRow maps a survey_questions row.
type questionRow struct {
	ID              int64       `db:"id"`
	RespondentRole  string      `db:"respondent_role"`
	RespondentID    string      `db:"respondent_id"`
	Position        int         `db:"position"`
	SubjectName     string      `db:"subject_name"`
	TeacherName     null.String `db:"teacher_name"`
	Section         null.String `db:"section"`
	StudentID       null.String `db:"student_id"`
	StudentFullName null.String `db:"student_full_name"`
	IsAnswered      bool        `db:"is_answered"`
	QuestionText    null.String `db:"question_text"`
	AnswerType      null.String `db:"answer_type"`
	Options         null.JSON   `db:"options"`
}

func (row questionRow) toRecord() survey.Record {
	rec := survey.Record{
		ID:              survey.ID(fmt.Sprint(row.ID)),
		SubjectName:     row.SubjectName,
		TeacherName:     row.TeacherName.String,
		Section:         row.Section.String,
		StudentID:       survey.ID(row.StudentID.String),
		StudentFullName: row.StudentFullName.String,
		IsAnswered:      row.IsAnswered,
		QuestionText:    row.QuestionText.String,
		AnswerType:      row.AnswerType.String,
	}
	if row.Options.Valid {
		rec.Options = json.RawMessage(row.Options.JSON)
	}
	return rec
}

func newQuestionRow(role survey.Role, respondentID string, position int, rec survey.Record) questionRow {
	row := questionRow{
		RespondentRole:  role.String(),
		RespondentID:    respondentID,
		Position:        position,
		SubjectName:     rec.SubjectName,
		TeacherName:     nullString(rec.TeacherName),
		Section:         nullString(rec.Section),
		StudentID:       nullString(rec.StudentID.String()),
		StudentFullName: nullString(rec.StudentFullName),
		IsAnswered:      rec.IsAnswered,
		QuestionText:    nullString(rec.QuestionText),
		AnswerType:      nullString(rec.AnswerType),
	}
	if len(rec.Options) > 0 {
		row.Options = null.JSONFrom(rec.Options)
	}
	return row
}

func nullString(s string) null.String {
	return null.NewString(s, s != "")
}

// questionTx is the part of *sqlx.Tx used to add questions.
type questionTx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

var _ questionTx = (*sqlx.Tx)(nil)

type questionRepository struct {
	db core.DB
}

var _ survey.Repository = (*questionRepository)(nil)

func NewQuestionRepository(db core.DB) *questionRepository {
	return &questionRepository{db: db}
}

func (repo *questionRepository) QueryQuestions(ctx context.Context, id survey.Identity) (*survey.Payload, error) {
	rows := make([]questionRow, 0)
	if err := sqlx.SelectContext(ctx, repo.db, &rows, selectQuestions, id.Role.String(), id.UserID); err != nil {
		return nil, errors.Wrap(err, "selecting questions")
	}

	records := make([]survey.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return survey.NewPayload(records), nil
}

// AddQuestions appends records to the questions of a respondent, in the given order.
func (repo *questionRepository) AddQuestions(ctx context.Context, role survey.Role, respondentID string, records ...survey.Record) (err error) {
	if !role.IsValid() {
		return errors.Wrapf(survey.ErrInvalidRole, "%q", role)
	}

	tx, err := repo.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = addQuestions(ctx, tx, role, respondentID, records); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}
	return nil
}

// addQuestions numbers the records after the last position of the respondent.
// Concurrent writers of the same respondent wait on the advisory lock, so positions stay unique.
func addQuestions(ctx context.Context, tx questionTx, role survey.Role, respondentID string, records []survey.Record) error {
	if _, err := tx.ExecContext(ctx, lockRespondent, role.String(), respondentID); err != nil {
		return errors.Wrap(err, "locking respondent")
	}

	var last int
	if err := tx.GetContext(ctx, &last, selectLastPosition, role.String(), respondentID); err != nil {
		return errors.Wrap(err, "selecting last position")
	}

	for i, rec := range records {
		row := newQuestionRow(role, respondentID, last+i+1, rec)
		if _, err := tx.NamedExecContext(ctx, insertQuestion, row); err != nil {
			return errors.Wrapf(err, "inserting question %d", i)
		}
	}
	return nil
}
