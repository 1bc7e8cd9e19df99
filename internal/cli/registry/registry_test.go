package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/DorianABDS/spec-to-issues/internal/config"
	"github.com/DorianABDS/spec-to-issues/internal/i18n"
)

type mockCommandFactory struct {
	name string
}

func (m *mockCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{Name: m.name}
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	translations, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	return NewRegistry(&config.Config{}, translations)
}

func TestRegistry_Register(t *testing.T) {
	t.Run("should register new factory successfully", func(t *testing.T) {
		registry := newTestRegistry(t)

		err := registry.Register("generate", &mockCommandFactory{name: "generate"})

		assert.NoError(t, err)
		assert.Contains(t, registry.factories, "generate")
	})

	t.Run("should return error when registering duplicate factory", func(t *testing.T) {
		registry := newTestRegistry(t)

		require.NoError(t, registry.Register("generate", &mockCommandFactory{name: "generate"}))
		err := registry.Register("generate", &mockCommandFactory{name: "generate"})

		assert.Error(t, err)
		assert.Len(t, registry.factories, 1)
	})
}

func TestRegistry_CreateCommands(t *testing.T) {
	registry := newTestRegistry(t)
	for _, name := range []string{"serve", "generate", "preview", "publish"} {
		require.NoError(t, registry.Register(name, &mockCommandFactory{name: name}))
	}

	commands := registry.CreateCommands()

	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"serve", "generate", "preview", "publish"}, names)
}
