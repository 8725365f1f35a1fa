package echoapi

import (
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/masomo-surveys/core"
	"github.com/trezcool/masomo-surveys/core/survey"
)

var tokenParam = "token"

type teachersQuery struct {
	Subject string `query:"subject" json:"subject" validate:"required,notblank"`
}

type tokenRequest struct {
	Subject string    `json:"subject"`
	Teacher string    `json:"teacher"`
	ChildID survey.ID `json:"child_id"`
}

func (req *tokenRequest) Validate() error {
	req.Subject = core.CleanString(req.Subject)
	req.Teacher = core.CleanString(req.Teacher)
	req.ChildID = survey.ID(core.CleanString(req.ChildID.String()))

	switch {
	case req.ChildID != "" && (req.Subject != "" || req.Teacher != ""):
		return core.NewValidationError(nil, core.FieldError{Field: "child_id", Error: "child_id cannot be combined with subject or teacher"})
	case req.ChildID == "" && req.Subject == "":
		return core.NewValidationError(nil, core.FieldError{Field: "subject", Error: "one of subject or child_id is required"})
	}
	return nil
}

func (req tokenRequest) Token() (string, error) {
	if req.ChildID != "" {
		return survey.EncodeChild(req.ChildID), nil
	}
	return survey.EncodeSubjectTeacher(req.Subject, req.Teacher)
}

// surveyToken returns the token path param in its escaped form.
// The router hands out the decoded path unless the request path needed a raw form.
func surveyToken(ctx echo.Context) string {
	token := ctx.Param(tokenParam)
	if ctx.Request().URL.RawPath == "" {
		token = url.PathEscape(token)
	}
	return token
}
