package tsm

import "github.com/alejandrodnm/goldscore/internal/domain"

// DTOs raw de la API de TSM. Solo se usan dentro de este paquete.
// Los nombres de campo JSON son contrato de wire — deben coincidir
// exactamente con lo que devuelve la API.

// tsmItem es una entrada del array JSON que devuelve GET /v1/item/{region}/{realm}.
// Los campos ausentes decodifican a cero.
type tsmItem struct {
	ID                    int64   `json:"Id"`
	MarketValue           int64   `json:"MarketValue"`
	MinBuyout             int64   `json:"MinBuyout"`
	HistoricalPrice       int64   `json:"HistoricalPrice"`
	RegionMarketAvg       int64   `json:"RegionMarketAvg"`
	RegionMinBuyoutAvg    int64   `json:"RegionMinBuyoutAvg"`
	RegionHistoricalPrice int64   `json:"RegionHistoricalPrice"`
	RegionSaleAvg         int64   `json:"RegionSaleAvg"`
	RegionAvgDailySold    float64 `json:"RegionAvgDailySold"`
	RegionSaleRate        float64 `json:"RegionSaleRate"`
}

// mapItems convierte los DTOs a domain.Item preservando el orden de la API.
func mapItems(raw []tsmItem) []domain.Item {
	items := make([]domain.Item, 0, len(raw))
	for _, r := range raw {
		items = append(items, domain.Item{
			ID:                    r.ID,
			MarketValue:           r.MarketValue,
			MinBuyout:             r.MinBuyout,
			HistoricalPrice:       r.HistoricalPrice,
			RegionMarketAvg:       r.RegionMarketAvg,
			RegionMinBuyoutAvg:    r.RegionMinBuyoutAvg,
			RegionHistoricalPrice: r.RegionHistoricalPrice,
			RegionSaleAvg:         r.RegionSaleAvg,
			RegionAvgDailySold:    r.RegionAvgDailySold,
			RegionSaleRate:        r.RegionSaleRate,
		})
	}
	return items
}
