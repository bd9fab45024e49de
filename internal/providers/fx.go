package providers

import (
	"github.com/smallbiznis/agritatva/internal/providers/pdf"
	"github.com/smallbiznis/agritatva/internal/providers/spreadsheet"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	pdf.Module,
	spreadsheet.Module,
)
