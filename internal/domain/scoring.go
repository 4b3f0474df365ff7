package domain

// GoldScore calcula el score de rentabilidad de un ítem.
//
// Fórmula: (precio / 10000) × saleRate × avgDailySold
//   - precio: precio nominal en cobre (la división a oro usa floats)
//   - saleRate: fracción de listados que se venden
//   - avgDailySold: unidades vendidas por día en la región
//
// Aritmética pura, sin clamping ni redondeo: valores negativos o NaN en los
// inputs se propagan tal cual hasta la comparación con el umbral.
func GoldScore(price int64, saleRate, avgDailySold float64) float64 {
	return float64(price) / 10000.0 * saleRate * avgDailySold
}
