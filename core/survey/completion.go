package survey

import "strings"

// Completion statuses
const (
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
	StatusNoData     Status = "no-data"
)

// Status is the completion state of a group of records.
// StatusNoData means the group is empty, which is not the same thing as complete.
type Status string

func (s Status) String() string { return string(s) }

// Matcher tells whether rec belongs to the group identified by key.
type Matcher func(rec Record, key string) bool

var (
	BySubject Matcher = func(rec Record, key string) bool { return rec.SubjectName == key }
	ByChild   Matcher = func(rec Record, key string) bool { return rec.StudentID != "" && rec.StudentID.String() == key }
	BySection Matcher = func(rec Record, key string) bool { return strings.HasPrefix(rec.Section, key) }
	AnyRecord Matcher = func(Record, string) bool { return true }
)

// ByTeacher matches the records of subject taught by the teacher given as key.
func ByTeacher(subject string) Matcher {
	return func(rec Record, key string) bool {
		return rec.SubjectName == subject && rec.TeacherName == key
	}
}

// Progress counts the answered records of a group.
type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

func GroupProgress(records []Record, key string, match Matcher) Progress {
	var p Progress
	for _, rec := range records {
		if !match(rec, key) {
			continue
		}
		p.Total++
		if rec.IsAnswered {
			p.Answered++
		}
	}
	return p
}

func (p Progress) Status() Status {
	switch {
	case p.Total == 0:
		return StatusNoData
	case p.Answered == p.Total:
		return StatusComplete
	}
	return StatusIncomplete
}

// GroupStatus evaluates the completion of the records matching key.
func GroupStatus(records []Record, key string, match Matcher) Status {
	return GroupProgress(records, key, match).Status()
}

// IsGroupComplete reports whether the group is non-empty and fully answered.
func IsGroupComplete(records []Record, key string, match Matcher) bool {
	return GroupStatus(records, key, match) == StatusComplete
}
