package questionsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/masomo-surveys/core"
	"github.com/trezcool/masomo-surveys/core/survey"
)

// APIError is returned when the questions API answers with a non 2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (err *APIError) Error() string {
	return fmt.Sprintf("questions API - status: %d - body: %s", err.StatusCode, err.Body)
}

type apiRepository struct {
	baseURL string
	key     string
	client  *rest.Client
	logger  core.Logger
}

var _ survey.Repository = (*apiRepository)(nil)

// NewAPIRepository fetches the questions from the upstream questions API.
func NewAPIRepository(conf core.QuestionsConfig, logger core.Logger) *apiRepository {
	return &apiRepository{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		key:     conf.APIKey,
		client:  &rest.Client{HTTPClient: &http.Client{Timeout: conf.Timeout}},
		logger:  logger,
	}
}

func (repo apiRepository) endpoint(id survey.Identity) (string, error) {
	var resource string
	switch id.Role {
	case survey.RoleStudent:
		resource = "students"
	case survey.RoleParent:
		resource = "parents"
	default:
		return "", errors.Wrapf(survey.ErrInvalidRole, "%q", id.Role)
	}
	return repo.baseURL + "/" + resource + "/" + url.PathEscape(id.UserID) + "/questions", nil
}

func (repo apiRepository) QueryQuestions(ctx context.Context, id survey.Identity) (*survey.Payload, error) {
	endpoint, err := repo.endpoint(id)
	if err != nil {
		return nil, err
	}

	req := rest.Request{
		Method:  rest.Get,
		BaseURL: endpoint,
		Headers: map[string]string{
			"Accept": "application/json",
		},
	}
	if repo.key != "" {
		req.Headers["Authorization"] = "Bearer " + repo.key
	}

	hreq, err := rest.BuildRequestObject(req)
	if err != nil {
		return nil, errors.Wrap(err, "building questions request")
	}
	hres, err := repo.client.MakeRequest(hreq.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "requesting questions")
	}
	res, err := rest.BuildResponse(hres)
	if err != nil {
		return nil, errors.Wrap(err, "reading questions response")
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: res.StatusCode, Body: res.Body}
	}

	var payload *survey.Payload
	if err = json.Unmarshal([]byte(res.Body), &payload); err != nil {
		// an unreadable body is handled like a payload without questions
		repo.logger.Warn(fmt.Sprintf("decoding questions: %v", err), err, id)
		return &survey.Payload{}, nil
	}
	return payload, nil
}
