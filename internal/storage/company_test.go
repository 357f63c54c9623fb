package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompanyStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "company")
	store, err := NewCompanyStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
	assert.DirExists(t, dir)
}

func TestPaths(t *testing.T) {
	store, err := NewCompanyStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(store.Dir(), "에이스.txt"), store.TextPath("에이스"))
	assert.Equal(t, filepath.Join(store.Dir(), "에이스.jpg"), store.ImagePath("에이스"))
	assert.Equal(t, filepath.Join(store.Dir(), "에이스_ocr.txt"), store.OCRPath("에이스"))
}

func TestTextRoundTrip(t *testing.T) {
	store, err := NewCompanyStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.WriteText("에이스", "모집부문\n로봇 SW 엔지니어\n"))
	text, err := store.ReadText("에이스")
	require.NoError(t, err)
	assert.Equal(t, "모집부문\n로봇 SW 엔지니어\n", text)

	// A second capture overwrites the first.
	require.NoError(t, store.WriteText("에이스", "updated"))
	text, err = store.ReadText("에이스")
	require.NoError(t, err)
	assert.Equal(t, "updated", text)
}

func TestOCRRoundTrip(t *testing.T) {
	store, err := NewCompanyStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.WriteOCRText("에이스", "이미지에서 추출한 텍스트"))
	text, err := store.ReadOCRText("에이스")
	require.NoError(t, err)
	assert.Equal(t, "이미지에서 추출한 텍스트", text)
}

func TestHasImage(t *testing.T) {
	store, err := NewCompanyStore(t.TempDir())
	require.NoError(t, err)

	assert.False(t, store.HasImage("에이스"))
	require.NoError(t, store.WriteImage("에이스", []byte("jpeg-bytes")))
	assert.True(t, store.HasImage("에이스"))
}

func TestReadMissingFileFails(t *testing.T) {
	store, err := NewCompanyStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.ReadText("없는회사")
	assert.Error(t, err)
}
