package catalog

import (
	"testing"

	"GeniusLabs/internal/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]Module{
		{ID: "js-basics", Lessons: []string{"l1"}},
		{ID: "js-basics", Lessons: []string{"l2"}},
	})
	assert.Error(t, err)
}

func TestNew_RejectsMissingID(t *testing.T) {
	_, err := New([]Module{{Title: "Nameless"}})
	assert.Error(t, err)
}

func TestLessonCount(t *testing.T) {
	cat, err := New([]Module{
		{ID: "js-basics", Lessons: []string{"l1", "l2", "l3"}},
		{ID: "empty-module"},
	})
	require.NoError(t, err)

	n, err := cat.LessonCount("js-basics")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = cat.LessonCount("empty-module")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = cat.LessonCount("missing")
	assert.ErrorIs(t, err, app_errors.ErrUnknownModule)
}

func TestModulesPreservesOrder(t *testing.T) {
	cat, err := New([]Module{
		{ID: "b"},
		{ID: "a"},
		{ID: "c"},
	})
	require.NoError(t, err)

	var ids []string
	for _, m := range cat.Modules() {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
}
