package ports

import "go.trai.ch/softmesh/internal/core/domain"

// ConfigLoader loads project settings and model definitions.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Settings returns the project settings.
	Settings() domain.Settings

	// LoadModel reads the definition of the named model.
	LoadModel(name string) (*domain.ModelConfig, error)

	// Models returns the names of the models found in the models directory.
	Models() ([]string, error)
}
