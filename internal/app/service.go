package app

import (
	"poetry2uv/internal/adapters"
	"poetry2uv/internal/ports"
)

// Service wires the conversion operations to their file and terminal
// adapters. Chooser settles alternative constraints without
// interaction; PromptChooser is swapped in when a request asks for it.
type Service struct {
	Manifests     ports.ManifestPort
	Names         ports.ProjectNamePort
	Requirements  ports.RequirementsPort
	Documents     ports.DocumentPort
	Chooser       ports.ChooserPort
	PromptChooser ports.ChooserPort
}

func NewService() Service {
	manifests := adapters.NewManifestFileAdapter()
	return Service{
		Manifests:     manifests,
		Names:         manifests,
		Requirements:  adapters.NewRequirementsFileAdapter(),
		Documents:     adapters.NewDocumentFileAdapter(),
		Chooser:       adapters.NewFirstChoiceChooser(),
		PromptChooser: adapters.NewPromptChooser(),
	}
}
