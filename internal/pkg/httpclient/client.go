// internal/pkg/httpclient/client.go
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Client 是一个可追踪的、可注入的 HTTP 客户端。
// 每次调用都会创建子 Span，并把追踪上下文注入到请求头，
// 让下游服务可以延续同一条 Trace。
type Client struct {
	Tracer     trace.Tracer
	HTTPClient *http.Client
}

// NewClient 创建一个新的客户端实例。
// 不设置 Timeout 字段，超时完全受控于每次请求传入的 context。
func NewClient(tracer trace.Tracer) *Client {
	return &Client{
		Tracer: tracer,
		HTTPClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
			},
		},
	}
}

// Post 向目标服务发送一个 POST 请求并返回响应体。
func (c *Client) Post(ctx context.Context, serviceURL, contentType string, body []byte) ([]byte, error) {
	ctx, span := c.Tracer.Start(ctx, "httpclient.Post",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.url", serviceURL),
			attribute.String("http.method", http.MethodPost),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serviceURL, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to build request for %s: %w", serviceURL, err)
	}
	req.Header.Set("Content-Type", contentType)

	// 注入追踪上下文
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("request to %s failed: %w", serviceURL, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read response from %s: %w", serviceURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("service %s returned status %d", serviceURL, resp.StatusCode)
		span.RecordError(err)
		span.SetStatus(codes.Error, "non-2xx response")
		return nil, err
	}

	return payload, nil
}
