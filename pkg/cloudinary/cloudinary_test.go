package cloudinary

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestBuildPublicID(t *testing.T) {
	id := buildPublicID("sports day.png")
	require.True(t, strings.HasPrefix(id, "sports-day-"), id)
	require.Len(t, id, len("sports-day-")+8)

	require.NotEqual(t, buildPublicID("a.png"), buildPublicID("a.png"))
	require.True(t, strings.HasPrefix(buildPublicID("???.jpg"), "image-"))
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Config{CloudName: "demo"}, zerolog.Nop())
	require.Error(t, err)

	store, err := New(Config{CloudName: "demo", APIKey: "key", APISecret: "secret", Folder: "/canossa/activities/"}, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, "canossa/activities", store.folder)
}
