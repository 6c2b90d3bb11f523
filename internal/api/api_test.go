package api_test

import (
	"testing"

	"github.com/riddhisiddhi/cottonflow/internal/api"
	"github.com/riddhisiddhi/cottonflow/internal/config"
	"github.com/riddhisiddhi/cottonflow/internal/infrastructure"
	"github.com/riddhisiddhi/cottonflow/pkg/database"
	"github.com/riddhisiddhi/cottonflow/pkg/middleware"
	"github.com/riddhisiddhi/cottonflow/pkg/pagination"
	"github.com/riddhisiddhi/cottonflow/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=cottonstore;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/cottonstore;"

func validConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "1m",
			WriteTimeout:    "5m",
			ShutdownTimeout: "30s",
		},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "cottonflow",
			User:            "cottonflow",
			Password:        "cottonflow",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "allocation-pdfs",
			ConnectionString: azuriteConnString,
		},
		API: config.APIConfig{
			BasePath: "/api",
			CORS: middleware.CORSConfig{
				Enabled: false,
			},
			Pagination: pagination.Config{
				DefaultPageSize: 50,
				MaxPageSize:     200,
			},
		},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
}

func setupInfra(t *testing.T) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	return infra
}

func TestNewModule(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	if m.Prefix() != "/api" {
		t.Errorf("prefix: got %s, want /api", m.Prefix())
	}
}

func TestNewRuntime(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	runtime := api.NewRuntime(cfg, infra)

	if runtime.Pagination.DefaultPageSize != 50 {
		t.Errorf("pagination default page size: got %d, want 50", runtime.Pagination.DefaultPageSize)
	}
	if runtime.Pagination.MaxPageSize != 200 {
		t.Errorf("pagination max page size: got %d, want 200", runtime.Pagination.MaxPageSize)
	}
	if runtime.Logger == nil {
		t.Error("runtime logger is nil")
	}
	if runtime.Database == nil {
		t.Error("runtime database is nil")
	}
	if runtime.Storage == nil {
		t.Error("runtime storage is nil")
	}
	if runtime.Lifecycle == nil {
		t.Error("runtime lifecycle is nil")
	}
}

func TestNewDomain(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)
	runtime := api.NewRuntime(cfg, infra)

	domain := api.NewDomain(runtime)
	if domain == nil {
		t.Fatal("NewDomain() returned nil")
	}
	if domain.EmailLogs == nil || domain.ProcessingLogs == nil || domain.Allocations == nil {
		t.Error("domain systems should all be wired")
	}
	if domain.Recorder == nil {
		t.Error("domain recorder is nil")
	}
}
