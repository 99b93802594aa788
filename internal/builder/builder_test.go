package builder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarikhaida/menu-tracker/internal/menudate"
	"github.com/tarikhaida/menu-tracker/internal/parser"
)

func newTestBuilder() *Builder {
	resolver := menudate.NewResolver(menudate.Config{DefaultYear: 2025, DefaultMonth: time.September}, nil)
	return New(resolver, nil)
}

func TestBuildMonthSpanningDocument(t *testing.T) {
	b := newTestBuilder()

	menus := []parser.DayMenu{
		{DayName: "Lundi", DayNumber: 29, Entree: "Betterave rouge", Plats: "Steak haché", Accompagnement: "Penne sauce tomate", Dessert: "Yaourt Fruit du jour"},
		{DayName: "Jeudi", DayNumber: 2, Entree: "**Carottes râpées**", Plats: "Ravioli farci", Accompagnement: "Non détecté", Dessert: "Mousse au chocolat"},
	}

	records := b.Build("menu-du-29-au-03-octobre.jpg", menus)
	require.Len(t, records, 2)

	// Day 29 belongs to September, day 2 to October.
	assert.Equal(t, "2025-09-29", records[0].DateISO())
	assert.Equal(t, "2025-10-02", records[1].DateISO())

	assert.Equal(t, "Lundi", records[0].DayOfWeek)
	assert.Equal(t, 29, records[0].DayNumber)
	assert.Equal(t, "Yaourt / Fruit du jour", records[0].Dessert)

	// Cleaning: emphasis stripped, "Non détecté" replaced.
	assert.Equal(t, "Carottes râpées", records[1].Entree)
	assert.Equal(t, "-", records[1].Accompagnement)
	assert.Equal(t, "Mousse au chocolat", records[1].Dessert)
}

func TestBuildEmptyFieldsGetPlaceholder(t *testing.T) {
	b := newTestBuilder()

	menus := []parser.DayMenu{{DayName: "Mardi", DayNumber: 7}}
	records := b.Build("menu-du-06-au-10-octobre.jpg", menus)
	require.Len(t, records, 1)

	assert.Equal(t, "-", records[0].Entree)
	assert.Equal(t, "-", records[0].Plats)
	assert.Equal(t, "-", records[0].Accompagnement)
	assert.Equal(t, "-", records[0].Dessert)
}

func TestBuildIsIdempotent(t *testing.T) {
	b := newTestBuilder()

	menus := []parser.DayMenu{
		{DayName: "Lundi", DayNumber: 6, Entree: "Betterave  rouge", Plats: "Steak haché", Dessert: "Yaourt Fruit du jour"},
		{DayName: "Mardi", DayNumber: 7, Entree: "Carottes râpées", Plats: "Supions", Dessert: "Compote"},
	}

	first := b.Build("menu-du-06-au-10-octobre.jpg", menus)
	second := b.Build("menu-du-06-au-10-octobre.jpg", menus)
	assert.Equal(t, first, second)
}

func TestBuildSkipsInvalidDay(t *testing.T) {
	b := newTestBuilder()

	menus := []parser.DayMenu{
		{DayName: "Samedi", DayNumber: 11, Plats: "Poisson pané"},
		{DayName: "Vendredi", DayNumber: 10, Plats: "Poisson pané"},
	}

	records := b.Build("menu-du-06-au-10-octobre.jpg", menus)
	require.Len(t, records, 1)
	assert.Equal(t, "Vendredi", records[0].DayOfWeek)
}

func TestBuildNoMenus(t *testing.T) {
	b := newTestBuilder()
	assert.Nil(t, b.Build("menu-du-06-au-10-octobre.jpg", nil))
}
