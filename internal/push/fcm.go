// Package push sends mobile push notifications through Firebase Cloud
// Messaging.
package push

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// FCM rejects multicast calls above 500 tokens.
const fcmBatchLimit = 500

// SendResult aggregates per-token outcomes of a multicast call.
type SendResult struct {
	SuccessCount int
	FailureCount int
}

type Client struct {
	msgClient *messaging.Client
	logger    *logrus.Logger
}

// NewClient initializes a Firebase app from a service-account credentials
// file and returns an FCM client.
func NewClient(ctx context.Context, credentialsFile string, logger *logrus.Logger) (*Client, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging client: %w", err)
	}

	return &Client{msgClient: msgClient, logger: logger}, nil
}

// SendMulticast delivers one notification to all tokens, chunking into
// batches of 500 under the hood. Per-token failures are reported in the
// result, not as an error; an error means the transport call itself failed.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (SendResult, error) {
	var result SendResult
	if len(tokens) == 0 {
		return result, nil
	}

	for _, batch := range chunkTokens(tokens, fcmBatchLimit) {
		msg := &messaging.MulticastMessage{
			Tokens: batch,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
		}

		resp, err := c.msgClient.SendEachForMulticast(ctx, msg)
		if err != nil {
			return result, fmt.Errorf("failed to send FCM multicast: %w", err)
		}

		result.SuccessCount += resp.SuccessCount
		result.FailureCount += resp.FailureCount
		if resp.FailureCount > 0 {
			c.logFailures(batch, resp)
		}
	}

	c.logger.WithFields(logrus.Fields{
		"success": result.SuccessCount,
		"failure": result.FailureCount,
	}).Debug("FCM multicast completed")

	return result, nil
}

func (c *Client) logFailures(tokens []string, resp *messaging.BatchResponse) {
	for i, sendResp := range resp.Responses {
		if sendResp.Error == nil {
			continue
		}
		c.logger.WithError(sendResp.Error).WithField("token", tokens[i]).Warn("FCM send failed for token")
	}
}

func chunkTokens(tokens []string, size int) [][]string {
	var chunks [][]string
	for i := 0; i < len(tokens); i += size {
		end := i + size
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, tokens[i:end])
	}
	return chunks
}
