package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nielrocha96/planilha-engine/pkg/logging"
	"github.com/nielrocha96/planilha-engine/pkg/models"
	"github.com/nielrocha96/planilha-engine/pkg/query"
)

// QuestionService answers natural-language questions against a session's
// table.
type QuestionService interface {
	// Ask answers one question and returns the rendered answer together
	// with the session's full history, the new exchange last. Questions
	// that cannot be resolved produce clarification answers; the only
	// error a caller sees is an unknown or expired session.
	Ask(ctx context.Context, sessionID, question string) (string, []models.QAExchange, error)
}

// QueryOptions tunes the resolution pipeline and list rendering.
type QueryOptions struct {
	SimilarityCutoff float64
	MaxListValues    int
	MaxListRows      int
}

type questionService struct {
	store    *SessionStore
	synonyms []query.Synonym
	opts     QueryOptions
	logger   *zap.Logger
}

// NewQuestionService creates a question service.
func NewQuestionService(store *SessionStore, synonyms []query.Synonym, opts QueryOptions, logger *zap.Logger) QuestionService {
	return &questionService{store: store, synonyms: synonyms, opts: opts, logger: logger}
}

func (s *questionService) Ask(ctx context.Context, sessionID, question string) (string, []models.QAExchange, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return "", nil, err
	}

	plan := query.BuildPlan(sess.Table, question, s.synonyms, s.opts.SimilarityCutoff)
	result := query.Execute(sess.Table, plan, query.Limits{
		MaxListValues: s.opts.MaxListValues,
		MaxListRows:   s.opts.MaxListRows,
	})
	answer := query.RenderAnswer(result)

	history, err := s.store.AppendHistory(sess.ID, models.QAExchange{
		Question: question,
		Answer:   answer,
		AskedAt:  time.Now().UTC(),
	})
	if err != nil {
		return "", nil, err
	}

	s.logger.Debug("question answered",
		zap.String("session_id", sess.ID),
		zap.String("intent", string(plan.Intent)),
		zap.String("column", plan.Column),
		zap.Int("filters", len(plan.Filters)),
		zap.String("question", logging.TruncateQuestion(question)),
		zap.String("answer", logging.TruncateAnswer(answer)))

	return answer, history, nil
}
