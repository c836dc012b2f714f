package fsstore_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minatoent/backoffice-api/internal/domain"
	"github.com/minatoent/backoffice-api/internal/infrastructure/fsstore"
	"github.com/minatoent/backoffice-api/pkg/logger"
)

func newBrowser(t *testing.T) (*fsstore.CustomerFolders, string) {
	t.Helper()
	root := t.TempDir()
	return fsstore.NewCustomerFolders(root,
		logger.New(logger.Config{Env: "test", Level: "error"})), root
}

func mkFolder(t *testing.T, root, name string, files ...string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("img"), 0o644))
	}
	return dir
}

func TestSuggest_PrefixMatchSortedAndCapped(t *testing.T) {
	browser, root := newBrowser(t)
	mkFolder(t, root, "003 NARESH KUMAR_333333333333")
	mkFolder(t, root, "001 NANDU SINGH_111111111111")
	mkFolder(t, root, "002 RAMESH YADAV_222222222222")
	mkFolder(t, root, "junk-folder")

	got, err := browser.Suggest("na")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "NANDU SINGH", got[0].PersonName, "sorted by name")
	assert.Equal(t, "NARESH KUMAR", got[1].PersonName)
	assert.Equal(t, "111111111111", got[0].AadhaarNumber)
	assert.Equal(t, filepath.Join(root, "001 NANDU SINGH_111111111111"), got[0].FullPath)
}

func TestSuggest_ShortQueryReturnsNothing(t *testing.T) {
	browser, root := newBrowser(t)
	mkFolder(t, root, "001 NANDU SINGH_111111111111")

	for _, q := range []string{"", " ", "n"} {
		got, err := browser.Suggest(q)
		require.NoError(t, err)
		assert.Empty(t, got, "query %q", q)
	}
}

func TestSuggest_Cap(t *testing.T) {
	browser, root := newBrowser(t)
	for i := 0; i < 15; i++ {
		mkFolder(t, root, fmt.Sprintf("%03d NANDU %02d_11111111%04d", i+1, i, i))
	}

	got, err := browser.Suggest("nandu")
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestCardImages_FindsBothSides(t *testing.T) {
	browser, root := newBrowser(t)
	dir := mkFolder(t, root, "001 NANDU SINGH_111111111111",
		"aadhaar_front.jpg", "aadhaar_back.png", "notes.txt")

	got, err := browser.CardImages(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "aadhaar_front.jpg"), got.Front)
	assert.Equal(t, filepath.Join(dir, "aadhaar_back.png"), got.Back)
}

func TestCardImages_MissingSidesStayEmpty(t *testing.T) {
	browser, root := newBrowser(t)
	dir := mkFolder(t, root, "001 NANDU SINGH_111111111111", "front.jpeg")

	got, err := browser.CardImages(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, got.Front)
	assert.Empty(t, got.Back)
}

func TestCardImages_CombinedScanFallsBackToFront(t *testing.T) {
	browser, root := newBrowser(t)
	dir := mkFolder(t, root, "001 NANDU SINGH_111111111111", "UID_scan.jpg")

	got, err := browser.CardImages(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "UID_scan.jpg"), got.Front)
	assert.Empty(t, got.Back)
}

func TestCardImages_RejectsPathsOutsideRoot(t *testing.T) {
	browser, root := newBrowser(t)
	dir := mkFolder(t, root, "001 NANDU SINGH_111111111111", "front.jpg")

	_, err := browser.CardImages(filepath.Join(dir, "..", ".."))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = browser.CardImages("/etc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCardImages_MissingFolder(t *testing.T) {
	browser, root := newBrowser(t)
	_, err := browser.CardImages(filepath.Join(root, "no-such"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
