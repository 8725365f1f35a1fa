package survey

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-surveys/core"
)

// Roles
const (
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
)

// SchoolSubject is the subject name of the (non-academic) school survey.
const SchoolSubject = "School"

// Sections (parent surveys) are matched by prefix.
const (
	SectionAPrefix = "Section A"
	SectionBPrefix = "Section B"
	SectionCPrefix = "Section C"
)

var Roles = []Role{RoleStudent, RoleParent}

type Role string

func ParseRole(s string) (Role, error) {
	role := Role(core.CleanString(s, true /* lower */))
	if !role.IsValid() {
		return "", errors.Wrapf(ErrInvalidRole, "%q", s)
	}
	return role, nil
}

func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleParent
}

func (r Role) String() string { return string(r) }

// Identity is the signed-in respondent on whose behalf records are fetched.
type Identity struct {
	Role   Role   `json:"role" validate:"required,role"`
	UserID string `json:"user_id" validate:"required,notblank"`
}

// NewIdentity picks the role the way sessions do: a student id means a student, otherwise a parent.
func NewIdentity(studentID, parentID string) (Identity, error) {
	studentID = core.CleanString(studentID)
	parentID = core.CleanString(parentID)
	switch {
	case studentID != "":
		return Identity{Role: RoleStudent, UserID: studentID}, nil
	case parentID != "":
		return Identity{Role: RoleParent, UserID: parentID}, nil
	}
	return Identity{}, core.NewValidationError(errors.New("one of student_id or parent_id is required"))
}

func (id Identity) Validate(validate *validator.Validate) error {
	return validate.Struct(id)
}

func (id Identity) IsStudent() bool { return id.Role == RoleStudent }
func (id Identity) IsParent() bool  { return id.Role == RoleParent }

// ID is an identifier that may be sent either as a JSON number or a JSON string.
// It is always kept in its canonical string form so that ids compare equal regardless of how they were sent.
type ID string

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	lit := string(data)
	if _, err := strconv.ParseInt(lit, 10, 64); err == nil {
		*id = ID(lit)
		return nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return errors.Errorf("survey.ID: cannot unmarshal %s", lit)
	}
	*id = ID(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// Record is a single survey question addressed to one respondent.
type Record struct {
	ID              ID              `json:"id"`
	SubjectName     string          `json:"subject_name" validate:"required"`
	TeacherName     string          `json:"teacher_name,omitempty"`
	Section         string          `json:"section,omitempty" validate:"required"`
	StudentID       ID              `json:"student_id,omitempty" validate:"required"`
	StudentFullName string          `json:"student_full_name,omitempty"`
	IsAnswered      bool            `json:"is_answered"`
	QuestionText    string          `json:"question_text,omitempty"`
	AnswerType      string          `json:"answer_type,omitempty"`
	Options         json.RawMessage `json:"options,omitempty"`
}

// requiredFields lists the Record fields a respondent's records cannot do without.
var requiredFields = map[Role][]string{
	RoleStudent: {"SubjectName"},
	RoleParent:  {"StudentID", "Section"},
}

// Validate applies the role specific rules to the record.
func (r Record) Validate(validate *validator.Validate, role Role) error {
	fields, ok := requiredFields[role]
	if !ok {
		return errors.Wrapf(ErrInvalidRole, "%q", role)
	}
	return validate.StructPartial(r, fields...)
}

// Payload is the shape returned by question sources: {"response": {"questions": [...]}}.
type Payload struct {
	Response *PayloadResponse `json:"response"`
}

type PayloadResponse struct {
	Questions *[]Record `json:"questions"`
}

func NewPayload(records []Record) *Payload {
	if records == nil {
		records = []Record{}
	}
	return &Payload{Response: &PayloadResponse{Questions: &records}}
}

// Questions returns the payload records, or a *MalformedInputWarning when the expected shape is missing.
func (p *Payload) Questions() ([]Record, error) {
	switch {
	case p == nil:
		return nil, &MalformedInputWarning{Reason: "empty payload"}
	case p.Response == nil:
		return nil, &MalformedInputWarning{Reason: "missing response"}
	case p.Response.Questions == nil:
		return nil, &MalformedInputWarning{Reason: "missing response.questions"}
	}
	return *p.Response.Questions, nil
}

// Selection identifies what a token points to: a subject (and teacher) or a child.
type Selection struct {
	Subject string `json:"subject,omitempty"`
	Teacher string `json:"teacher,omitempty"`
	ChildID ID     `json:"child_id,omitempty"`
}

func (s Selection) IsChild() bool   { return s.ChildID != "" }
func (s Selection) IsSubject() bool { return s.Subject != "" }
func (s Selection) IsSchool() bool  { return s.Subject == SchoolSubject }

// Child is a parent's child as seen through their survey records.
type Child struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

func isSpace(s string) bool { return strings.TrimSpace(s) == "" }
