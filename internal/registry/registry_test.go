package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/tradeskills/internal/config"
	"github.com/nfrund/tradeskills/internal/rendering"
)

func TestRegistry(t *testing.T) {
	reg := New(&config.Config{SiteName: "Trade Skills"})
	assert.Equal(t, "Trade Skills", reg.Config().GetSiteName())

	t.Run("set and get the renderer", func(t *testing.T) {
		_, ok := Get(reg, RendererKey)
		assert.False(t, ok)

		r := rendering.NewUniversalRenderer()
		Set[rendering.Renderer](reg, RendererKey, r)
		got, ok := Get(reg, RendererKey)
		require.True(t, ok)
		assert.Same(t, r, got)
	})

	t.Run("provide refuses a second module", func(t *testing.T) {
		key := Key[[]string]("course.sections")
		require.NoError(t, Provide(reg, key, []string{"safe-isolation"}))
		err := Provide(reg, key, []string{"pre-use-inspection"})
		assert.ErrorIs(t, err, ErrDuplicateKey)
		assert.Equal(t, []string{"safe-isolation"}, MustGet(reg, key))
	})

	t.Run("type mismatch is not found", func(t *testing.T) {
		Set(reg, Key[int]("course.count"), 5)
		_, ok := Get(reg, Key[string]("course.count"))
		assert.False(t, ok)
	})

	t.Run("keys are listed in order", func(t *testing.T) {
		assert.Equal(t, []string{"core.renderer", "course.count", "course.sections"}, reg.Keys())
	})

	t.Run("must get names what is available", func(t *testing.T) {
		assert.PanicsWithValue(t,
			`registry: nothing usable for key "course.catalog" (have core.renderer, course.count, course.sections)`,
			func() { MustGet(reg, Key[*config.Config]("course.catalog")) })
	})
}
