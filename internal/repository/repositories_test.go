package repository

import (
	"strings"
	"testing"

	"github.com/deppfellow/ressourcerie/internal/config"
	"github.com/deppfellow/ressourcerie/internal/server"
)

func TestNewRepositories(t *testing.T) {
	t.Parallel()

	newServer := func(driver string) *server.Server {
		return &server.Server{Config: &config.Config{Storage: config.StorageConfig{Driver: driver}}}
	}

	t.Run("memory driver", func(t *testing.T) {
		repos, err := NewRepositories(newServer(config.StorageDriverMemory))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if repos.Tx == nil || repos.Offers == nil || repos.Demands == nil {
			t.Fatalf("expected wired repositories, got %+v", repos)
		}
	})

	t.Run("postgres driver without a database", func(t *testing.T) {
		_, err := NewRepositories(newServer(config.StorageDriverPostgres))
		if err == nil || !strings.Contains(err.Error(), "needs a database connection") {
			t.Fatalf("expected missing database error, got %v", err)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewRepositories(newServer("sqlite"))
		if err == nil || !strings.Contains(err.Error(), `unknown storage driver "sqlite"`) {
			t.Fatalf("expected unknown driver error, got %v", err)
		}
	})
}
