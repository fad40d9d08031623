package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"layerstack/internal/ports"
	"layerstack/internal/types"
)

type ReportFileAdapter struct{}

func NewReportFileAdapter() ReportFileAdapter {
	return ReportFileAdapter{}
}

// WriteReport serialises the run report as YAML.
func (a ReportFileAdapter) WriteReport(path string, report types.RunReport) error {
	if path == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is empty")
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode run report").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create report directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write run report").
			WithCause(err)
	}
	return nil
}

// ReadReport loads a report written by WriteReport.
func (a ReportFileAdapter) ReadReport(path string) (types.RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.RunReport{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("run report not found").
			WithCause(err)
	}
	var report types.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return types.RunReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse run report").
			WithCause(err)
	}
	return report, nil
}

var _ ports.ReportWriterPort = ReportFileAdapter{}
