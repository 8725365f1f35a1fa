package survey

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-surveys/core"
)

// Repository is a source of survey questions.
type Repository interface {
	// QueryQuestions returns the questions addressed to the respondent.
	// A nil or incomplete Payload is tolerated by the Service.
	QueryQuestions(ctx context.Context, id Identity) (*Payload, error)
}

type (
	// Dashboard is the list view of a respondent's surveys.
	Dashboard struct {
		Role     Role             `json:"role"`
		School   *GroupSummary    `json:"school,omitempty"`
		Subjects []SubjectSummary `json:"subjects,omitempty"`
		Children []ChildSummary   `json:"children,omitempty"`
	}

	GroupSummary struct {
		Name     string   `json:"name"`
		Token    string   `json:"token"`
		Status   Status   `json:"status"`
		Progress Progress `json:"progress"`
	}

	SubjectSummary struct {
		Name       string   `json:"name"`
		Token      string   `json:"token"`
		Status     Status   `json:"status"`
		Progress   Progress `json:"progress"`
		Selectable bool     `json:"selectable"`
	}

	TeacherSummary struct {
		Name       string   `json:"name"`
		Token      string   `json:"token"`
		Status     Status   `json:"status"`
		Progress   Progress `json:"progress"`
		Selectable bool     `json:"selectable"`
	}

	ChildSummary struct {
		Child
		Token    string   `json:"token"`
		Status   Status   `json:"status"`
		Progress Progress `json:"progress"`
	}

	// SurveyView is the detail view of the surveys a token points to.
	SurveyView struct {
		Selection Selection     `json:"selection"`
		Status    Status        `json:"status"`
		Progress  Progress      `json:"progress"`
		Questions []Record      `json:"questions"`
		Sections  []SectionView `json:"sections,omitempty"`
	}

	SectionView struct {
		Name      string   `json:"name"`
		Status    Status   `json:"status"`
		Questions []Record `json:"questions"`
	}
)

// Service composes the dashboard views out of the questions of a respondent.
// It keeps no state between calls: every call fetches & categorizes afresh.
type Service struct {
	repo     Repository
	validate *validator.Validate
	logger   core.Logger
}

func NewService(repo Repository, validate *validator.Validate, logger core.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validate,
		logger:   logger,
	}
}

// Records fetches the questions of the respondent.
// Malformed payloads & invalid records are logged and left out rather than failing the call.
func (svc *Service) Records(ctx context.Context, id Identity) ([]Record, error) {
	if err := id.Validate(svc.validate); err != nil {
		return nil, err
	}

	payload, err := svc.repo.QueryQuestions(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "querying questions")
	}

	records, err := payload.Questions()
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("questions payload: %v", err), err, id)
		return []Record{}, nil
	}

	valid, warning := validateRecords(svc.validate, id.Role, records)
	if warning != nil {
		svc.logger.Warn(fmt.Sprintf("questions payload: %v", warning), warning, id)
	}
	return valid, nil
}

func (svc *Service) Dashboard(ctx context.Context, id Identity) (Dashboard, error) {
	records, err := svc.Records(ctx, id)
	if err != nil {
		return Dashboard{}, err
	}

	view := Categorize(records, id.Role)
	dash := Dashboard{Role: id.Role}

	switch id.Role {
	case RoleStudent:
		token, _ := EncodeSubjectTeacher(SchoolSubject, "")
		progress := GroupProgress(view.SchoolSurvey, SchoolSubject, BySubject)
		dash.School = &GroupSummary{
			Name:     SchoolSubject,
			Token:    token,
			Status:   progress.Status(),
			Progress: progress,
		}

		dash.Subjects = make([]SubjectSummary, 0)
		for _, subject := range Subjects(view.AcademicSurveys) {
			token, err := EncodeSubjectTeacher(subject, "")
			if err != nil {
				// academic records without a subject name have no route
				svc.logger.Warn(fmt.Sprintf("subject token: %v", err), err, id)
				continue
			}
			progress := GroupProgress(view.AcademicSurveys, subject, BySubject)
			dash.Subjects = append(dash.Subjects, SubjectSummary{
				Name:       subject,
				Token:      token,
				Status:     progress.Status(),
				Progress:   progress,
				Selectable: progress.Status() != StatusComplete,
			})
		}
	case RoleParent:
		sectionRecords := view.SectionRecords()

		dash.Children = make([]ChildSummary, 0)
		for _, child := range UniqueChildren(sectionRecords) {
			progress := GroupProgress(sectionRecords, child.ID.String(), ByChild)
			dash.Children = append(dash.Children, ChildSummary{
				Child:    child,
				Token:    EncodeChild(child.ID),
				Status:   progress.Status(),
				Progress: progress,
			})
		}
	}
	return dash, nil
}

// Teachers lists the teachers of a student's academic subject.
func (svc *Service) Teachers(ctx context.Context, id Identity, subject string) ([]TeacherSummary, error) {
	if subject == "" {
		return nil, ErrEmptySubject
	}
	if !id.IsStudent() {
		return nil, ErrRoleMismatch
	}

	records, err := svc.Records(ctx, id)
	if err != nil {
		return nil, err
	}

	academic := Categorize(records, RoleStudent).AcademicSurveys
	teachers := make([]TeacherSummary, 0)
	for _, teacher := range Teachers(academic, subject) {
		token, err := EncodeSubjectTeacher(subject, teacher)
		if err != nil {
			return nil, errors.Wrap(err, "encoding token")
		}
		progress := GroupProgress(academic, teacher, ByTeacher(subject))
		teachers = append(teachers, TeacherSummary{
			Name:       teacher,
			Token:      token,
			Status:     progress.Status(),
			Progress:   progress,
			Selectable: progress.Status() != StatusComplete,
		})
	}
	return teachers, nil
}

// Survey returns the questions a token points to.
// Undecodable tokens fail with a *DecodeError; callers should fall back to the Dashboard.
func (svc *Service) Survey(ctx context.Context, id Identity, token string) (SurveyView, error) {
	sel, err := Decode(token)
	if err != nil {
		return SurveyView{}, err
	}
	if (id.IsStudent() && !sel.IsSubject()) || (id.IsParent() && !sel.IsChild()) {
		return SurveyView{}, ErrRoleMismatch
	}

	records, err := svc.Records(ctx, id)
	if err != nil {
		return SurveyView{}, err
	}

	sv := SurveyView{Selection: sel}
	switch id.Role {
	case RoleStudent:
		view := Categorize(records, RoleStudent)
		if sel.IsSchool() {
			sv.Questions = view.SchoolSurvey
		} else {
			sv.Questions = FilterBySubjectTeacher(view.AcademicSurveys, sel.Subject, sel.Teacher)
		}
	case RoleParent:
		view := Categorize(FilterByChild(records, sel.ChildID), RoleParent)
		sv.Questions = view.SectionRecords()
		sv.Sections = make([]SectionView, 0, 3)
		for _, s := range []struct {
			name    string
			records []Record
		}{
			{SectionAPrefix, view.SectionA},
			{SectionBPrefix, view.SectionB},
			{SectionCPrefix, view.SectionC},
		} {
			if len(s.records) == 0 {
				continue
			}
			sv.Sections = append(sv.Sections, SectionView{
				Name:      s.name,
				Status:    GroupStatus(s.records, s.name, BySection),
				Questions: s.records,
			})
		}
	}

	sv.Progress = GroupProgress(sv.Questions, "", AnyRecord)
	sv.Status = sv.Progress.Status()
	return sv, nil
}
