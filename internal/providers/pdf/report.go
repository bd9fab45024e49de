package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	reportdomain "github.com/smallbiznis/agritatva/internal/report/domain"
)

const generatedAtLayout = "2006-01-02 15:04 MST"

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

// GenerateReport lays the document out top to bottom. maroto breaks pages
// as rows overflow, so long tables continue on the next page.
func (p *PDFProvider) GenerateReport(ctx context.Context, doc reportdomain.Document) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, doc.Title, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	if !doc.GeneratedAt.IsZero() {
		m.AddRow(6,
			text.NewCol(12, "Generated "+doc.GeneratedAt.Format(generatedAtLayout), props.Text{
				Size:  8,
				Align: align.Center,
			}),
		)
	}

	addTable(m, doc)
	addStatistics(m, doc.Statistics)
	addTips(m, doc.TipsHeading, doc.Tips)

	if len(doc.ChartPNG) > 0 {
		m.AddRow(90,
			image.NewFromBytesCol(12, doc.ChartPNG, extension.Png, props.Rect{
				Center:  true,
				Percent: 95,
			}),
		)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", reportdomain.ErrReportRender, err)
	}
	return bytes.NewReader(out.GetBytes()), nil
}

func addTable(m core.Maroto, doc reportdomain.Document) {
	header := props.Text{Style: fontstyle.Bold, Size: 10, Top: 2}
	m.AddRow(10,
		text.NewCol(6, doc.Header[0], header),
		text.NewCol(3, doc.Header[1], withAlign(header, align.Right)),
		text.NewCol(3, doc.Header[2], withAlign(header, align.Right)),
	)
	m.AddRow(2, line.NewCol(12))

	cell := props.Text{Size: 9, Top: 1}
	for _, row := range doc.Rows {
		m.AddRow(7,
			text.NewCol(6, row.FieldName, cell),
			text.NewCol(3, row.WaterUsage, withAlign(cell, align.Right)),
			text.NewCol(3, row.Rainfall, withAlign(cell, align.Right)),
		)
	}
}

func addStatistics(m core.Maroto, stats reportdomain.StatisticsBlock) {
	m.AddRow(12,
		text.NewCol(12, "Summary Statistics", props.Text{Size: 12, Style: fontstyle.Bold, Top: 5}),
	)

	for _, e := range statisticsEntries(stats) {
		m.AddRow(7,
			text.NewCol(4, e[0]+":", props.Text{Size: 9}),
			text.NewCol(4, e[1], props.Text{Size: 9, Style: fontstyle.Bold}),
			col.New(4),
		)
	}
}

func statisticsEntries(stats reportdomain.StatisticsBlock) [][2]string {
	return [][2]string{
		{"Total Fields", stats.TotalFields},
		{"Mean Water Usage", liters(stats.MeanWater)},
		{"Max Water Usage", liters(stats.MaxWater)},
		{"Min Water Usage", liters(stats.MinWater)},
	}
}

func liters(v string) string {
	if v == "" || v == "n/a" {
		return v
	}
	return v + " liters"
}

func addTips(m core.Maroto, heading string, tips []string) {
	if len(tips) == 0 {
		return
	}
	m.AddRow(12,
		text.NewCol(12, heading, props.Text{Size: 12, Style: fontstyle.Bold, Top: 5}),
	)
	for _, tip := range tips {
		m.AddRow(8,
			text.NewCol(12, "- "+tip, props.Text{Size: 9}),
		)
	}
}

func withAlign(t props.Text, a align.Type) props.Text {
	t.Align = a
	return t
}
