package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarikhaida/menu-tracker/internal/builder"
	"github.com/tarikhaida/menu-tracker/internal/common"
	"github.com/tarikhaida/menu-tracker/internal/ledger"
	"github.com/tarikhaida/menu-tracker/internal/menudate"
	"github.com/tarikhaida/menu-tracker/internal/store"
)

// fakeOCR maps filename -> canned markdown, or an error.
type fakeOCR struct {
	texts map[string]string
	errs  map[string]error
	calls int
}

func (f *fakeOCR) ProcessImage(_ context.Context, filename string, _ []byte) (string, error) {
	f.calls++
	if err, ok := f.errs[filename]; ok {
		return "", err
	}
	return f.texts[filename], nil
}

const weekTable = `
| Jour | Lundi 6 | Mardi 7 |
| Entrée | Betterave rouge | Carottes râpées |
| Plats | Steak haché | Ravioli farci |
| Dessert | Yaourt Fruit du jour | Compote de pomme |
`

const spanTable = `
| Jour | Lundi 29 | Jeudi 2 |
| Plats | Supions à la provençale | Minute de bœuf |
| Accompagnement | Riz complet | Non détecté |
`

func newTestProcessor(t *testing.T, imageDir string, ocr TextExtractor) (*Processor, *store.Store, *ledger.Ledger) {
	t.Helper()
	resolver := menudate.NewResolver(menudate.Config{DefaultYear: 2025, DefaultMonth: time.September}, nil)
	b := builder.New(resolver, nil)
	st := store.New(t.TempDir(), nil)
	ld, err := ledger.Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ld.Close() })

	p := NewProcessor(Config{ImageDir: imageDir}, ocr, b, st, ld, nil)
	return p, st, ld
}

func writeImage(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestRunProcessesAndPersists(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "menu-du-06-au-10-octobre.jpg", "img-a")
	writeImage(t, dir, "menu-du-29-au-03-octobre.jpg", "img-b")
	writeImage(t, dir, "notes.txt", "ignored") // wrong extension

	ocr := &fakeOCR{texts: map[string]string{
		"menu-du-06-au-10-octobre.jpg": weekTable,
		"menu-du-29-au-03-octobre.jpg": spanTable,
	}}
	p, st, _ := newTestProcessor(t, dir, ocr)

	stats, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Scanned)
	assert.Equal(t, 2, stats.Processed)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 4, stats.Records)

	// Final order is by resolved date, not filesystem order: the spanning
	// file contributes Sept 29 first.
	records := st.Records()
	require.Len(t, records, 4)
	assert.Equal(t, "2025-09-29", records[0].DateISO())
	assert.Equal(t, "2025-10-02", records[1].DateISO())
	assert.Equal(t, "2025-10-06", records[2].DateISO())
	assert.Equal(t, "2025-10-07", records[3].DateISO())
	assert.Equal(t, "Yaourt / Fruit du jour", records[2].Dessert)
}

func TestRunIsIdempotentAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "menu-du-06-au-10-octobre.jpg", "img-a")

	ocr := &fakeOCR{texts: map[string]string{"menu-du-06-au-10-octobre.jpg": weekTable}}
	p, st, _ := newTestProcessor(t, dir, ocr)

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	firstCalls := ocr.calls

	stats, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Processed)
	assert.Equal(t, firstCalls, ocr.calls, "already-completed document must not be re-uploaded")
	assert.Equal(t, 2, st.Len())
}

func TestRunIsolatesDocumentFailures(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "menu-du-06-au-10-octobre.jpg", "img-a")
	writeImage(t, dir, "menu-du-13-au-17-octobre.jpg", "img-b")

	ocr := &fakeOCR{
		texts: map[string]string{"menu-du-06-au-10-octobre.jpg": weekTable},
		errs:  map[string]error{"menu-du-13-au-17-octobre.jpg": errors.New("document processing failed: unreadable image")},
	}
	p, st, ld := newTestProcessor(t, dir, ocr)

	stats, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 2, st.Len())

	// The failure is on the ledger and will be retried next run.
	docs, lerr := ld.List(context.Background())
	require.NoError(t, lerr)
	require.Len(t, docs, 2)
	statuses := map[string]string{}
	for _, d := range docs {
		statuses[d.Filename] = string(d.Status)
	}
	assert.Equal(t, "COMPLETED", statuses["menu-du-06-au-10-octobre.jpg"])
	assert.Equal(t, "FAILED", statuses["menu-du-13-au-17-octobre.jpg"])
}

func TestRunUnparseableTextIsNotAFailure(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "menu-du-06-au-10-octobre.jpg", "img-a")

	ocr := &fakeOCR{texts: map[string]string{"menu-du-06-au-10-octobre.jpg": "no table here"}}
	p, st, _ := newTestProcessor(t, dir, ocr)

	stats, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 0, stats.Records)
	assert.Equal(t, 0, st.Len())
}

func TestRunEmptyDirectory(t *testing.T) {
	p, _, _ := newTestProcessor(t, t.TempDir(), &fakeOCR{})
	stats, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Scanned)
}

func TestFindByDateDistinguishesMissingStore(t *testing.T) {
	st := store.New(t.TempDir(), nil)
	_, err := FindByDate(st, time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNoData)
}
