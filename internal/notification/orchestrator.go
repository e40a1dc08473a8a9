package notification

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"trovacasa/server/internal/models"
)

// Orchestrator runs the full pipeline for one newly created property:
// find matching searches, group them by user, dispatch the push batch.
// Its contract is total containment: it never panics out and never
// returns an error, so a notification failure cannot reach or roll back
// the property-creation flow that triggered it.
type Orchestrator struct {
	finder     *CandidateFinder
	dispatcher *Dispatcher
	logger     *logrus.Logger
	now        func() time.Time
}

func NewOrchestrator(finder *CandidateFinder, dispatcher *Dispatcher, logger *logrus.Logger) *Orchestrator {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Orchestrator{
		finder:     finder,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// NotifyNewProperty runs the pipeline to completion, logging and
// swallowing every failure.
func (o *Orchestrator) NotifyNewProperty(ctx context.Context, property *models.Property) {
	if property == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			o.logger.WithFields(logrus.Fields{
				"property_id": property.ID,
				"panic":       r,
			}).Error("Notification pipeline panicked")
		}
	}()

	matches, err := o.finder.FindMatchingSearches(ctx, property)
	if err != nil {
		o.logger.WithError(err).WithField("property_id", property.ID).Error("Failed to find matching searches")
		return
	}
	if len(matches) == 0 {
		o.logger.WithField("property_id", property.ID).Debug("No saved searches matched")
		return
	}

	batches := GroupByUser(matches, o.now())
	result, err := o.dispatcher.Dispatch(ctx, batches, property)
	if err != nil {
		o.logger.WithError(err).WithField("property_id", property.ID).Error("Notification dispatch did not complete cleanly")
		return
	}

	o.logger.WithFields(logrus.Fields{
		"property_id": property.ID,
		"users":       len(batches),
		"success":     result.SuccessCount,
		"failure":     result.FailureCount,
	}).Info("Notified users of new property")
}

// NotifyAsync launches the pipeline as a detached supervised task; the
// caller never waits on it.
func (o *Orchestrator) NotifyAsync(property *models.Property) {
	go o.NotifyNewProperty(context.Background(), property)
}
