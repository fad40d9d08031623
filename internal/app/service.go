package app

import (
	"layerstack/internal/adapters"
	"layerstack/internal/ports"
)

type Service struct {
	Definitions ports.DefinitionSourcePort
	Reader      ports.DefinitionReaderPort
	Projects    ports.ProjectOpenerPort
	Finder      ports.ProjectFinderPort
	Reports     ports.ReportWriterPort
}

func NewService() Service {
	return Service{
		Definitions: adapters.NewDefinitionDirAdapter(),
		Reader:      adapters.NewQLRFileAdapter(),
		Projects:    adapters.NewProjectDocumentAdapter(),
		Finder:      adapters.NewProjectDirAdapter(),
		Reports:     adapters.NewReportFileAdapter(),
	}
}
