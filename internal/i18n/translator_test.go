package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator_T(t *testing.T) {
	tr, err := NewTranslator("en")
	require.NoError(t, err)

	tests := []struct {
		name     string
		lang     string
		key      string
		expected string
	}{
		{"english", "en", "EventAddedToFavorites", "Event added to favorites"},
		{"french header", "fr-FR,fr;q=0.9,en;q=0.8", "EventAddedToFavorites", "Événement ajouté aux favoris"},
		{"empty falls back to default", "", "UserFollowed", "Successfully followed user"},
		{"unsupported falls back to default", "de", "UserUnfollowed", "Successfully unfollowed user"},
		{"unknown key", "en", "NoSuchMessage", "NoSuchMessage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tr.T(tt.lang, tt.key, nil))
		})
	}
}

func TestNewTranslator_BadDefault(t *testing.T) {
	tr, err := NewTranslator("???")
	require.NoError(t, err)

	assert.Equal(t, "Successfully followed user", tr.T("", "UserFollowed", nil))
}
