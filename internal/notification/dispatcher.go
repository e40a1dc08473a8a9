package notification

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"trovacasa/server/internal/models"
)

const (
	notificationTitle = "New property on TrovaCasa!"
	notificationType  = "new_property_match"
)

var pricePrinter = message.NewPrinter(language.Italian)

// DispatchResult reports per-token outcomes of one notification batch.
type DispatchResult struct {
	SuccessCount int
	FailureCount int
}

// Dispatcher sends the push batch for a new property and stamps the
// matched searches as notified.
type Dispatcher struct {
	gateway Gateway
	repo    SearchRepository
	logger  *logrus.Logger
	now     func() time.Time
}

func NewDispatcher(gateway Gateway, repo SearchRepository, logger *logrus.Logger) *Dispatcher {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Dispatcher{
		gateway: gateway,
		repo:    repo,
		logger:  logger,
		now:     time.Now,
	}
}

// Dispatch flattens all user batches into one multicast call. With zero
// tokens it returns immediately and touches nothing. A transport failure
// from the gateway degrades to a logged no-op so every matched search
// stays eligible for the next property; on a non-failing call all touched
// searches are marked notified regardless of per-token failures. Only the
// final bulk-update write can surface an error.
func (d *Dispatcher) Dispatch(ctx context.Context, batches map[int64]*UserBatch, property *models.Property) (DispatchResult, error) {
	tokens, searchIDs := flattenBatches(batches)
	if len(tokens) == 0 {
		d.logger.WithField("property_id", property.ID).Debug("No deliverable tokens, skipping dispatch")
		return DispatchResult{}, nil
	}

	data := map[string]string{
		"property_id": strconv.FormatInt(property.ID, 10),
		"type":        notificationType,
	}

	sent, err := d.gateway.SendMulticast(ctx, tokens, notificationTitle, buildBody(property), data)
	if err != nil {
		d.logger.WithError(err).WithField("property_id", property.ID).Error("Push dispatch failed, matched searches stay eligible")
		return DispatchResult{}, nil
	}

	if err := d.repo.MarkSearchesNotified(ctx, searchIDs, d.now()); err != nil {
		return DispatchResult{SuccessCount: sent.SuccessCount, FailureCount: sent.FailureCount},
			fmt.Errorf("failed to stamp notified searches: %w", err)
	}

	return DispatchResult{SuccessCount: sent.SuccessCount, FailureCount: sent.FailureCount}, nil
}

// flattenBatches walks users in id order so token order is stable.
func flattenBatches(batches map[int64]*UserBatch) ([]string, []int64) {
	userIDs := make([]int64, 0, len(batches))
	for userID := range batches {
		userIDs = append(userIDs, userID)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	var tokens []string
	var searchIDs []int64
	for _, userID := range userIDs {
		tokens = append(tokens, batches[userID].Tokens...)
		searchIDs = append(searchIDs, batches[userID].SearchIDs...)
	}
	return tokens, searchIDs
}

func buildBody(p *models.Property) string {
	return fmt.Sprintf("%s in %s: %d rooms, %.0f m² at %s",
		p.InsertionType.Label(), p.City, p.NumRooms, p.SurfaceArea, formatPrice(p.Price))
}

func formatPrice(price float64) string {
	return pricePrinter.Sprintf("€%v", number.Decimal(price, number.MaxFractionDigits(0)))
}
