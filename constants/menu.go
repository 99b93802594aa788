package constants

// FieldPlaceholder is the canonical sentinel for an absent or undetected
// menu field. Stored fields are never empty strings.
const FieldPlaceholder = "-"

// Row labels as they appear in the first table column. Matching is
// case-insensitive substring, so "Entrées du jour" still classifies.
const (
	LabelEntree         = "entrée"
	LabelEntreeASCII    = "entree"
	LabelPlats          = "plat"
	LabelAccompagnement = "accompagnement"
	LabelDessert        = "dessert"
)

// NotDetectedValues are OCR outputs that mean "nothing in this cell".
var NotDetectedValues = map[string]struct{}{
	"non détecté": {},
	"non detecte": {},
}
