package gommt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslation_DecodingDropsUnlistedFields(t *testing.T) {
	raw := []byte(`{
		"translation": "Hola Mundo",
		"characters": 11,
		"billedCharacters": 11,
		"detectedLanguage": "en",
		"internalScore": 0.97,
		"engine": "neural-7"
	}`)

	tr, err := decodeOne[Translation](raw)
	require.NoError(t, err)

	assert.Equal(t, "Hola Mundo", tr.Translation)
	assert.Equal(t, int64(11), tr.Characters)
	require.NotNil(t, tr.DetectedLanguage)
	assert.Equal(t, "en", *tr.DetectedLanguage)
	assert.Nil(t, tr.ContextVector)
	assert.Nil(t, tr.AltTranslations)

	// nothing beyond the allow-listed fields survives a round trip
	encoded, err := json.Marshal(tr)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "internalScore")
	assert.NotContains(t, string(encoded), "engine")
}

func TestMemory_DecodesCreationDate(t *testing.T) {
	raw := []byte(`{"id":7,"name":"legal","creationDate":"2021-04-12T15:24:26Z"}`)

	m, err := decodeOne[Memory](raw)
	require.NoError(t, err)

	assert.Equal(t, int64(7), m.ID)
	assert.Equal(t, "legal", m.Name)
	assert.Nil(t, m.Description)
	require.NotNil(t, m.CreationDate)
	assert.Equal(t, time.Date(2021, 4, 12, 15, 24, 26, 0, time.UTC), m.CreationDate.UTC())
}

func TestDecodeOne_ListResponseTakesFirstElement(t *testing.T) {
	raw := []byte(`[{"translation":"uno"},{"translation":"dos"}]`)

	tr, err := decodeOne[Translation](raw)
	require.NoError(t, err)
	assert.Equal(t, "uno", tr.Translation)
}

func TestDecodeOne_EmptyList(t *testing.T) {
	_, err := decodeOne[Translation]([]byte(`[]`))
	assert.Error(t, err)
}

func TestDecodeMany_ObjectResponseWrapsSingleElement(t *testing.T) {
	raw := []byte(`{"translation":"uno"}`)

	many, err := decodeMany[Translation](raw)
	require.NoError(t, err)
	require.Len(t, many, 1)
	assert.Equal(t, "uno", many[0].Translation)
}

func TestTranslationResult_Single(t *testing.T) {
	res, err := newTranslationResult([]byte(`{"translation":"Hola"}`))
	require.NoError(t, err)

	one, ok := res.Single()
	assert.True(t, ok)
	assert.Equal(t, "Hola", one.Translation)

	_, ok = res.Many()
	assert.False(t, ok)
}

func TestTranslationResult_Many(t *testing.T) {
	res, err := newTranslationResult([]byte(` [{"translation":"uno"},{"translation":"dos"}]`))
	require.NoError(t, err)

	many, ok := res.Many()
	assert.True(t, ok)
	require.Len(t, many, 2)
	assert.Equal(t, "dos", many[1].Translation)

	_, ok = res.Single()
	assert.False(t, ok)
}

func TestTranslationResult_EmptyList(t *testing.T) {
	res, err := newTranslationResult([]byte(`[]`))
	require.NoError(t, err)

	many, ok := res.Many()
	assert.True(t, ok)
	assert.Empty(t, many)
}
