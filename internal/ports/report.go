package ports

import "layerstack/internal/types"

type ReportWriterPort interface {
	WriteReport(path string, report types.RunReport) error
}
