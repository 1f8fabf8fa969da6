// internal/service/notification/infrastructure/adapter/pdf_http_adapter.go
package adapter

import (
	"context"
	"fmt"

	"staybook/internal/pkg/httpclient"
	"staybook/internal/pkg/nacos"
)

// PdfHTTPAdapter 实现 port.DocumentRenderer。
// 渲染服务的实例地址每次调用时从 Nacos 解析，实例漂移无需重启。
type PdfHTTPAdapter struct {
	client      *httpclient.Client
	nacosClient *nacos.Client
	serviceName string
}

func NewPdfHTTPAdapter(client *httpclient.Client, nacosClient *nacos.Client, serviceName string) *PdfHTTPAdapter {
	return &PdfHTTPAdapter{
		client:      client,
		nacosClient: nacosClient,
		serviceName: serviceName,
	}
}

// RenderPDF 把 HTML 发给文档渲染服务，返回 PDF 字节流。
func (a *PdfHTTPAdapter) RenderPDF(ctx context.Context, html []byte) ([]byte, error) {
	ip, port, err := a.nacosClient.DiscoverServiceInstance(a.serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to discover renderer service: %w", err)
	}

	renderURL := fmt.Sprintf("http://%s:%d/render", ip, port)
	pdf, err := a.client.Post(ctx, renderURL, "text/html; charset=utf-8", html)
	if err != nil {
		return nil, fmt.Errorf("renderer service call failed: %w", err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("renderer service returned an empty document")
	}
	return pdf, nil
}
