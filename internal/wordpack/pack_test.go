package wordpack

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vocabflow/vocabflow/internal/domain"
	"github.com/vocabflow/vocabflow/internal/words"
)

func TestBuiltin(t *testing.T) {
	packs := Builtin()
	require.Len(t, packs, 3)

	for _, p := range packs {
		assert.NotEmpty(t, p.Title)
		assert.Len(t, p.Words, 8, p.Title)
	}

	packs[0].Words[0].Text = "changed"
	assert.Equal(t, "Butterfly", Builtin()[0].Words[0].Text)
}

func TestFind(t *testing.T) {
	p, err := Find("science terms")
	require.NoError(t, err)
	assert.Equal(t, "Science Terms", p.Title)

	_, err = Find("Cooking")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuiltinPacksImportCleanly(t *testing.T) {
	s := words.NewStore()
	for _, p := range Builtin() {
		l, err := s.ImportPack(p.Title, p.Words, words.PackOptions{AllowMeaning: true})
		require.NoError(t, err, p.Title)
		assert.Equal(t, len(p.Words), l.Stats.Total)
	}
}

func TestImportCSV(t *testing.T) {
	data := `word,definition
Gentle,Kind and soft
,missing word
two words,bad
gentle,duplicate

Brave,Ready to face danger
`
	res, err := ImportCSV("Feelings", strings.NewReader(data), DefaultImportConfig())
	require.NoError(t, err)

	assert.Equal(t, "Feelings", res.Pack.Title)
	assert.Equal(t, []words.PackWord{
		{Text: "Gentle", Definition: "Kind and soft"},
		{Text: "Brave", Definition: "Ready to face danger"},
	}, res.Pack.Words)

	require.Len(t, res.Skipped, 3)
	assert.Equal(t, 3, res.Skipped[0].Row)
	assert.Equal(t, 4, res.Skipped[1].Row)
	assert.Equal(t, 5, res.Skipped[2].Row)
}

func TestImportFile_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocean.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Word"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "Definition"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "Coral"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "A sea creature that builds reefs"))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", "Tide"))
	require.NoError(t, f.SetCellValue("Sheet1", "B3", "The rise and fall of the sea"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	res, err := ImportFile(path, DefaultImportConfig())
	require.NoError(t, err)

	assert.Equal(t, "ocean", res.Pack.Title)
	require.Len(t, res.Pack.Words, 2)
	assert.Equal(t, "Coral", res.Pack.Words[0].Text)
	assert.Equal(t, "The rise and fall of the sea", res.Pack.Words[1].Definition)
	assert.Empty(t, res.Skipped)
}

func TestImportFile_UnsupportedExtension(t *testing.T) {
	_, err := ImportFile("words.txt", DefaultImportConfig())
	require.Error(t, err)
}
