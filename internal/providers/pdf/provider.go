package pdf

import (
	"context"
	"io"

	reportdomain "github.com/smallbiznis/agritatva/internal/report/domain"
	"go.uber.org/fx"
)

type Provider interface {
	GenerateReport(ctx context.Context, doc reportdomain.Document) (io.Reader, error)
}

// NoOpProvider renders nothing. Useful where PDF output is not under test.
type NoOpProvider struct{}

func (p *NoOpProvider) GenerateReport(ctx context.Context, doc reportdomain.Document) (io.Reader, error) {
	return nil, nil
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)
