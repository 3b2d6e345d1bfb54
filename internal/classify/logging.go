package classify

import (
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/ctdguide/internal/catalog"
)

// Classifier is the behaviour shared by Engine and its decorators.
type Classifier interface {
	Classify(topicID string, answers Answers) ([]catalog.Outcome, error)
	Explain(topicID string, answers Answers) (Trace, error)
}

var _ Classifier = (*Engine)(nil)

// LoggingClassifier is a decorator that logs every classification.
type LoggingClassifier struct {
	inner  Classifier
	logger *slog.Logger
}

// WithLogging wraps a Classifier with structured logging.
func WithLogging(c Classifier, logger *slog.Logger) Classifier {
	return &LoggingClassifier{inner: c, logger: logger}
}

func (l *LoggingClassifier) Classify(topicID string, answers Answers) ([]catalog.Outcome, error) {
	start := time.Now()
	outcomes, err := l.inner.Classify(topicID, answers)
	if err != nil {
		l.logger.Warn("classification failed",
			"topic", topicID,
			"error", err,
		)
		return nil, err
	}
	l.logger.Debug("topic classified",
		"topic", topicID,
		"matches", len(outcomes),
		"tiers", tiers(outcomes),
		"duration", time.Since(start),
	)
	return outcomes, nil
}

func (l *LoggingClassifier) Explain(topicID string, answers Answers) (Trace, error) {
	tr, err := l.inner.Explain(topicID, answers)
	if err != nil {
		l.logger.Warn("explain failed", "topic", topicID, "error", err)
		return Trace{}, err
	}
	l.logger.Debug("topic explained", "topic", topicID, "rules", len(tr.Rules))
	return tr, nil
}

func tiers(outcomes []catalog.Outcome) string {
	codes := make([]string, len(outcomes))
	for i, o := range outcomes {
		codes[i] = o.Tier
	}
	return strings.Join(codes, ",")
}
