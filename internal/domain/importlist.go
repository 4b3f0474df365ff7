package domain

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrNoPriceSource indica que la fuente de precio configurada está vacía
	// o no es reconocida. Aborta la construcción de la lista completa:
	// es un "¿configuraste esto?" global, no un problema de un ítem suelto.
	ErrNoPriceSource = errors.New("no price source selected")

	// ErrEmptyImportList indica que ningún ítem alcanzó el umbral.
	// Es un resultado benigno para el usuario, no un crash.
	ErrEmptyImportList = errors.New("no items reached the minimum gold score")
)

// ScoredItem es un ítem que superó el umbral, con el precio y score usados.
type ScoredItem struct {
	Item  Item
	Price int64
	Score float64
}

// ScoreItems resuelve el precio de cada ítem según la fuente configurada,
// calcula su gold score y devuelve los que alcanzan MinGoldScore (inclusive),
// en el orden de entrada. Si la fuente no se puede resolver para un ítem,
// aborta inmediatamente con ErrNoPriceSource — sin lista parcial.
func ScoreItems(items []Item, s Settings) ([]ScoredItem, error) {
	scored := make([]ScoredItem, 0, len(items))
	for _, item := range items {
		price, ok := SelectPrice(item, s.PriceSource)
		if !ok {
			return nil, ErrNoPriceSource
		}

		score := GoldScore(price, item.RegionSaleRate, item.RegionAvgDailySold)
		if score >= float64(s.MinGoldScore) {
			scored = append(scored, ScoredItem{Item: item, Price: price, Score: score})
		}
	}
	return scored, nil
}

// RenderImportList serializa los ítems sobrevivientes como tokens "i:<id>"
// separados por coma, sin coma final ni espacios. Es el formato que consume
// la herramienta de importación.
func RenderImportList(scored []ScoredItem) string {
	var sb strings.Builder
	for i, sc := range scored {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString("i:")
		sb.WriteString(strconv.FormatInt(sc.Item.ID, 10))
	}
	return sb.String()
}

// BuildImportList es el paso completo: score → filtro → render.
// Determinista: misma entrada y settings producen siempre el mismo string.
// Devuelve ErrEmptyImportList si ningún ítem supera el umbral, en vez de
// entregar un string vacío como éxito.
func BuildImportList(items []Item, s Settings) (string, error) {
	scored, err := ScoreItems(items, s)
	if err != nil {
		return "", err
	}
	if len(scored) == 0 {
		return "", ErrEmptyImportList
	}
	return RenderImportList(scored), nil
}
