package inmemdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-surveys/core/survey"
)

type questionRepository struct {
	db *questionTable
}

var _ survey.Repository = (*questionRepository)(nil)

func NewQuestionRepository(db *DB) *questionRepository {
	return &questionRepository{db: db.questions}
}

func (repo *questionRepository) QueryQuestions(ctx context.Context, id survey.Identity) (*survey.Payload, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if repo.db.malformed[id] {
		return &survey.Payload{}, nil
	}

	stored := repo.db.table[id]
	records := make([]survey.Record, len(stored))
	copy(records, stored)
	return survey.NewPayload(records), nil
}

// AddQuestions appends records to the questions of a respondent. Records without an id get a random one.
func (repo *questionRepository) AddQuestions(ctx context.Context, role survey.Role, respondentID string, records ...survey.Record) error {
	if !role.IsValid() {
		return errors.Wrapf(survey.ErrInvalidRole, "%q", role)
	}

	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	id := survey.Identity{Role: role, UserID: respondentID}
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = survey.ID(uuid.New().String())
		}
		repo.db.table[id] = append(repo.db.table[id], rec)
	}
	return nil
}

// SetMalformed makes the payload of the respondent lose its questions.
func (repo *questionRepository) SetMalformed(id survey.Identity) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.malformed[id] = true
}

func (repo *questionRepository) DeleteQuestions(id survey.Identity) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.table, id)
	delete(repo.db.malformed, id)
}
