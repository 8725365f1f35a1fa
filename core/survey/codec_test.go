package survey

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeSubjectTeacher(t *testing.T) {
	tests := []struct {
		name      string
		subject   string
		teacher   string
		wantToken string
	}{
		{name: "plain", subject: "Math", teacher: "MsX", wantToken: "Math-MsX"},
		{name: "spaces", subject: "Math", teacher: "Ms X", wantToken: "Math-Ms%20X"},
		{name: "hyphen in subject", subject: "Franco-Prussian History", teacher: "Mr Y", wantToken: "Franco%2DPrussian%20History-Mr%20Y"},
		{name: "hyphen in teacher", subject: "Art", teacher: "Mrs Smith-Jones", wantToken: "Art-Mrs%20Smith%2DJones"},
		{name: "slash & percent", subject: "P/E", teacher: "100%", wantToken: "P%2FE-100%25"},
		{name: "school (no teacher)", subject: SchoolSubject, wantToken: "School-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := EncodeSubjectTeacher(tt.subject, tt.teacher)
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)

			sel, err := Decode(token)
			require.NoError(t, err)
			if diff := cmp.Diff(Selection{Subject: tt.subject, Teacher: tt.teacher}, sel); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeSubjectTeacher_emptySubject(t *testing.T) {
	_, err := EncodeSubjectTeacher("", "Ms X")
	assert.Equal(t, ErrEmptySubject, err)
}

func TestEncodeDecodeChild(t *testing.T) {
	tests := []struct {
		name      string
		childID   ID
		wantToken string
	}{
		{name: "numeric", childID: "42", wantToken: "42"},
		{name: "plain string", childID: "stu_7", wantToken: "stu_7"},
		{name: "uuid", childID: "0b6b2a4e-1c1f-4d43-9c39-6f2f8a1d7c11", wantToken: "0b6b2a4e%2D1c1f%2D4d43%2D9c39%2D6f2f8a1d7c11"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := EncodeChild(tt.childID)
			assert.Equal(t, tt.wantToken, token)

			sel, err := Decode(token)
			require.NoError(t, err)
			assert.Equal(t, Selection{ChildID: tt.childID}, sel)
			assert.True(t, sel.IsChild())
			assert.False(t, sel.IsSubject())
		})
	}
}

func TestDecode_errors(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "too many separators", token: "Math-Ms-X"},
		{name: "empty subject", token: "-Ms X"},
		{name: "bad subject escape", token: "Ma%zzth-Ms X"},
		{name: "bad teacher escape", token: "Math-Ms%2"},
		{name: "bad child escape", token: "4%"},
		{name: "blank child", token: "%20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := Decode(tt.token)
			require.Error(t, err)
			assert.True(t, IsDecodeError(err), "IsDecodeError(%v)", err)
			assert.Equal(t, Selection{}, sel)

			decErr, ok := err.(*DecodeError)
			require.True(t, ok)
			assert.Equal(t, tt.token, decErr.Token)
		})
	}
}

func TestDecode_subjectOnly(t *testing.T) {
	sel, err := Decode("Math-")
	require.NoError(t, err)
	assert.Equal(t, Selection{Subject: "Math"}, sel)
	assert.False(t, sel.IsSchool())

	sel, err = Decode("School-")
	require.NoError(t, err)
	assert.True(t, sel.IsSchool())
}
