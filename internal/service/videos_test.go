package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/model"
)

func TestVideosGeneralIsUnfiltered(t *testing.T) {
	svc := NewVideosService(nil)

	videos, err := svc.List(context.Background(), model.CategoryGeneral)
	require.NoError(t, err)
	assert.Len(t, videos, len(builtinVideos))
}

func TestVideosFilterByCategory(t *testing.T) {
	svc := NewVideosService(nil)

	tests := []struct {
		category model.Category
		want     int
	}{
		{model.CategoryBusiness, 2},
		{model.CategorySports, 2},
		{model.CategoryScience, 2},
		{model.CategoryTechnology, 1},
		{model.CategoryHealth, 1},
		{model.CategoryEntertainment, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			videos, err := svc.List(context.Background(), tt.category)
			require.NoError(t, err)
			require.Len(t, videos, tt.want)
			for _, v := range videos {
				assert.Equal(t, string(tt.category), v.Category)
			}
		})
	}
}

func TestVideosSkipsDeadFeeds(t *testing.T) {
	// An unreachable feed must degrade to the built-in catalog.
	svc := NewVideosService([]string{"http://127.0.0.1:1/feed.xml"})

	videos, err := svc.List(context.Background(), model.CategoryGeneral)
	require.NoError(t, err)
	assert.Len(t, videos, len(builtinVideos))
}
