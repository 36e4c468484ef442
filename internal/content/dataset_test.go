package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/tradeskills/internal/content"
	"github.com/nfrund/tradeskills/internal/domain"
	"github.com/nfrund/tradeskills/internal/storage"
	"github.com/nfrund/tradeskills/web"
)

// TestShippedContent loads the embedded course files and checks every
// question can be answered and scored.
func TestShippedContent(t *testing.T) {
	src, err := storage.OpenSource(storage.ModeEmbed, "", web.ContentFS)
	require.NoError(t, err)

	sections, err := content.NewLoader(src.Fs, src.Root).LoadAll()
	require.NoError(t, err)
	require.NotEmpty(t, sections)

	catalog, err := content.NewCatalog(sections)
	require.NoError(t, err)

	assertQuestion := func(t *testing.T, q domain.Question) {
		assert.GreaterOrEqual(t, len(q.Options), 2, q.ID)
		assert.GreaterOrEqual(t, q.CorrectIndex, 0, q.ID)
		assert.Less(t, q.CorrectIndex, len(q.Options), q.ID)
		assert.NotEmpty(t, q.Explanation, q.ID)
	}

	for _, s := range catalog.List() {
		t.Run(s.Slug, func(t *testing.T) {
			assert.NotEmpty(t, s.Meta.Title)
			assert.NotEmpty(t, s.Meta.Description)
			assert.NotEmpty(t, s.Quiz.Questions, "every section ends with a quiz")
			for _, q := range s.Checks {
				assertQuestion(t, q)
			}
			for _, q := range s.Quiz.Questions {
				assertQuestion(t, q)
			}
		})
	}

	pasma, err := catalog.Get("pre-use-inspection")
	require.NoError(t, err)
	assert.Equal(t, "PASMA Towers", pasma.Course)
	assert.Equal(t, 2, pasma.Quiz.Questions[0].CorrectIndex, "legacy correctAnswer is normalised")
	assert.Contains(t, pasma.Meta.Title, "Pre-Use Inspection")
}
