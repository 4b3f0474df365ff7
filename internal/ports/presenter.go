package ports

// Presenter es la superficie de callbacks hacia la capa de presentación.
// El pipeline no sabe si detrás hay una consola, una GUI o un test.
type Presenter interface {
	// Info reporta progreso durante la ejecución.
	Info(msg string)
	// Success reporta que la ejecución llegó a Done.
	Success(msg string)
	// Error reporta el mensaje user-facing de un fallo. Uno por ejecución.
	Error(msg string)
	// DeliverList entrega la lista de importación renderizada.
	DeliverList(content string) error
}
