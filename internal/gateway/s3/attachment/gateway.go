package attachment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dispatch/internal/gateway"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const serviceName = "s3"

const (
	initialInterval = 200 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
	// тело фото держим в памяти, больше трех повторных загрузок не делаем
	maxRetries = 3
)

// Gateway загрузка подписей и фото в бакет. Возвращает публичную ссылку на объект.
type Gateway struct {
	client    client
	retrier   retrier
	bucket    string
	publicURL string
}

func New(client client, bucket string, publicURL string) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		MaxRetries:      maxRetries,
		ShouldRetry:     isRetryable,
	}

	return &Gateway{
		client:    client,
		retrier:   backoff_adapter.New(retryConfig),
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (g *Gateway) Upload(ctx context.Context, key string, contentType string, body []byte) (string, error) {
	err := gateway.Execute(ctx, g.retrier, serviceName, "PutObject", errorCode, func(ctx context.Context) error {
		_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(g.bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(body),
			ContentType:   aws.String(contentType),
			ContentLength: aws.Int64(int64(len(body))),
		})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("gateway s3, put object %s: %w", key, err)
	}

	return g.publicURL + "/" + key, nil
}

// isRetryable повторяем 5xx и сетевые ошибки, 4xx бесполезно повторять.
func isRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		status := respErr.HTTPStatusCode()
		return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
	}
	return true
}

func errorCode(err error) string {
	if err == nil {
		return "OK"
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return "UNKNOWN"
}
