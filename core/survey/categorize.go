package survey

import "strings"

// CategorizedView holds the groups records are sorted into.
// Student records fill SchoolSurvey & AcademicSurveys, parent records fill the sections.
type CategorizedView struct {
	SchoolSurvey    []Record `json:"school_survey"`
	AcademicSurveys []Record `json:"academic_surveys"`
	SectionA        []Record `json:"section_a"`
	SectionB        []Record `json:"section_b"`
	SectionC        []Record `json:"section_c"`
}

func newCategorizedView() CategorizedView {
	return CategorizedView{
		SchoolSurvey:    []Record{},
		AcademicSurveys: []Record{},
		SectionA:        []Record{},
		SectionB:        []Record{},
		SectionC:        []Record{},
	}
}

// SectionRecords returns the records of all sections, A then B then C.
func (v CategorizedView) SectionRecords() []Record {
	all := make([]Record, 0, len(v.SectionA)+len(v.SectionB)+len(v.SectionC))
	all = append(all, v.SectionA...)
	all = append(all, v.SectionB...)
	return append(all, v.SectionC...)
}

// Categorize partitions records into the groups of the given role, keeping input order within each group.
// Parent records whose section starts with none of the known prefixes are left out.
func Categorize(records []Record, role Role) CategorizedView {
	view := newCategorizedView()

	switch role {
	case RoleStudent:
		for _, rec := range records {
			if rec.SubjectName == SchoolSubject {
				view.SchoolSurvey = append(view.SchoolSurvey, rec)
			} else {
				view.AcademicSurveys = append(view.AcademicSurveys, rec)
			}
		}
	case RoleParent:
		for _, rec := range records {
			switch {
			case strings.HasPrefix(rec.Section, SectionAPrefix):
				view.SectionA = append(view.SectionA, rec)
			case strings.HasPrefix(rec.Section, SectionBPrefix):
				view.SectionB = append(view.SectionB, rec)
			case strings.HasPrefix(rec.Section, SectionCPrefix):
				view.SectionC = append(view.SectionC, rec)
			}
		}
	}
	return view
}

// Subjects returns the distinct subject names in first-seen order.
func Subjects(records []Record) []string {
	seen := make(map[string]bool)
	subjects := make([]string, 0)
	for _, rec := range records {
		if !seen[rec.SubjectName] {
			seen[rec.SubjectName] = true
			subjects = append(subjects, rec.SubjectName)
		}
	}
	return subjects
}

// Teachers returns the distinct teachers of subject in first-seen order.
func Teachers(records []Record, subject string) []string {
	seen := make(map[string]bool)
	teachers := make([]string, 0)
	for _, rec := range records {
		if rec.SubjectName != subject || rec.TeacherName == "" {
			continue
		}
		if !seen[rec.TeacherName] {
			seen[rec.TeacherName] = true
			teachers = append(teachers, rec.TeacherName)
		}
	}
	return teachers
}
