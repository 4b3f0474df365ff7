package domain

import "time"

// RunRecord es el resumen persistido de una ejecución del pipeline.
// Registra el resultado, nunca los datos de mercado descargados.
type RunRecord struct {
	ID          string
	StartedAt   time.Time
	Region      Region
	Realm       string
	PriceSource PriceSource
	Items       int     // ítems recibidos de la API
	Matches     int     // ítems que superaron el umbral
	BestScore   float64 // mejor gold score entre los matches
	Outcome     string  // "done" o el tipo de error
	Duration    time.Duration
}
