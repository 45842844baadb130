package sqsgath

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/programme-lv/batchjudge/internal/gatherer/msggath"
)

// Client is the part of *sqs.Client the gatherer needs.
type Client interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// New creates a reporter that sends progress messages to queueURL.
func New(client Client, queueURL string, log *slog.Logger) *msggath.Reporter {
	return msggath.New(&sqsSender{client: client, queueURL: queueURL}, log)
}

// NewFromEnv loads the default AWS configuration for region.
func NewFromEnv(ctx context.Context, queueURL string, region string, log *slog.Logger) (*msggath.Reporter, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return New(sqs.NewFromConfig(cfg), queueURL, log), nil
}
