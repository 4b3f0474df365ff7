package domain

// Item es el registro de mercado de un ítem tal como lo entrega la API,
// ya mapeado a tipos del dominio. Los precios vienen en cobre (1 oro =
// 10000 de cobre); los campos ausentes en el wire quedan en cero.
type Item struct {
	ID                    int64
	MarketValue           int64
	MinBuyout             int64
	HistoricalPrice       int64
	RegionMarketAvg       int64
	RegionMinBuyoutAvg    int64
	RegionHistoricalPrice int64
	RegionSaleAvg         int64
	RegionAvgDailySold    float64
	RegionSaleRate        float64
}

// PriceSource es el nombre de la columna de precio que el usuario elige
// como base del gold score. Los valores son contrato: coinciden con los
// nombres de campo del wire y con lo que se guarda en Config.json.
type PriceSource string

const (
	PriceSourceUnset PriceSource = ""

	SourceMarketValue           PriceSource = "MarketValue"
	SourceMinBuyout             PriceSource = "MinBuyout"
	SourceHistoricalPrice       PriceSource = "HistoricalPrice"
	SourceRegionMarketAvg       PriceSource = "RegionMarketAvg"
	SourceRegionMinBuyoutAvg    PriceSource = "RegionMinBuyoutAvg"
	SourceRegionHistoricalPrice PriceSource = "RegionHistoricalPrice"
	SourceRegionSaleAvg         PriceSource = "RegionSaleAvg"
)

// PriceSources lista las fuentes válidas, en el orden en que se muestran
// al usuario.
var PriceSources = []PriceSource{
	SourceMarketValue,
	SourceMinBuyout,
	SourceHistoricalPrice,
	SourceRegionMarketAvg,
	SourceRegionMinBuyoutAvg,
	SourceRegionHistoricalPrice,
	SourceRegionSaleAvg,
}

// Valid reporta si la fuente es una de las siete conocidas.
func (p PriceSource) Valid() bool {
	for _, ps := range PriceSources {
		if p == ps {
			return true
		}
	}
	return false
}

// SelectPrice devuelve el campo de precio del ítem que corresponde a la
// fuente dada. El match es exacto y case-sensitive: cualquier fuente vacía
// o desconocida devuelve ok=false y el caller decide cómo reportarlo.
func SelectPrice(item Item, source PriceSource) (int64, bool) {
	switch source {
	case SourceMarketValue:
		return item.MarketValue, true
	case SourceMinBuyout:
		return item.MinBuyout, true
	case SourceHistoricalPrice:
		return item.HistoricalPrice, true
	case SourceRegionMarketAvg:
		return item.RegionMarketAvg, true
	case SourceRegionMinBuyoutAvg:
		return item.RegionMinBuyoutAvg, true
	case SourceRegionHistoricalPrice:
		return item.RegionHistoricalPrice, true
	case SourceRegionSaleAvg:
		return item.RegionSaleAvg, true
	default:
		return 0, false
	}
}
