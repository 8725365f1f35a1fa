package survey

// FilterBySubjectTeacher keeps the records of subject taught by teacher.
// An empty teacher only filters on the subject.
func FilterBySubjectTeacher(records []Record, subject, teacher string) []Record {
	filtered := make([]Record, 0)
	for _, rec := range records {
		if rec.SubjectName != subject {
			continue
		}
		if teacher != "" && rec.TeacherName != teacher {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

// FilterByChild keeps the records about the given child.
func FilterByChild(records []Record, childID ID) []Record {
	filtered := make([]Record, 0)
	if childID == "" {
		return filtered
	}
	for _, rec := range records {
		if rec.StudentID.String() == childID.String() {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// UniqueChildren returns one Child per distinct student id in first-seen order.
// The name is the one found on the first record of each child; later records never override it.
func UniqueChildren(records []Record) []Child {
	seen := make(map[ID]bool)
	children := make([]Child, 0)
	for _, rec := range records {
		if rec.StudentID == "" || seen[rec.StudentID] {
			continue
		}
		seen[rec.StudentID] = true
		children = append(children, Child{ID: rec.StudentID, Name: rec.StudentFullName})
	}
	return children
}
