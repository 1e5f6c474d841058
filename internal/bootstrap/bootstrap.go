// Package bootstrap assembles the dashboard for the configured source backend.
package bootstrap

import (
	"fmt"
	"log"

	"alfredoptarigan/compliance-dashboard/internal/config"
	"alfredoptarigan/compliance-dashboard/internal/repositories"
	"alfredoptarigan/compliance-dashboard/internal/services"
)

type Components struct {
	Dashboard services.DashboardService
	// Writer is nil when the backend does not accept uploads.
	Writer services.SourceWriter
}

func Build(cfg *config.Config) (*Components, error) {
	sources := cfg.Sources

	switch sources.Backend {
	case config.BackendMock:
		loader, err := services.NewMockLoader()
		if err != nil {
			return nil, err
		}
		log.Println("✅ Mock data loaded")

		return &Components{
			Dashboard: services.NewDashboardService(
				loader,
				nil,
				services.MockPairsSource,
				[]string{services.MockResultsSource},
			),
		}, nil

	case config.BackendPostgres:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		sourceRepo := repositories.NewSourceRepository(db)
		resolver := services.NewDocumentResolver(sources.DataDir, services.NewPDFParserService())
		log.Println("✅ Database source backend initialized")

		return &Components{
			Dashboard: services.NewDashboardService(
				services.NewRepositoryLoader(sourceRepo),
				resolver,
				sources.DocumentPairs,
				sources.ResultNames(),
			),
			Writer: services.NewRepositorySourceWriter(sourceRepo),
		}, nil

	case config.BackendFile:
		files := sources.Files()
		storageService := services.NewStorageService(sources.DataDir, files)
		if err := storageService.EnsureDataDir(); err != nil {
			return nil, err
		}
		resolver := services.NewDocumentResolver(sources.DataDir, services.NewPDFParserService())
		log.Printf("✅ File source backend initialized (%s)\n", sources.DataDir)

		return &Components{
			Dashboard: services.NewDashboardService(
				services.NewFileLoader(sources.DataDir, files),
				resolver,
				sources.DocumentPairs,
				sources.ResultNames(),
			),
			Writer: storageService,
		}, nil

	default:
		return nil, fmt.Errorf("unknown source backend %q", sources.Backend)
	}
}
