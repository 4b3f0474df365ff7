package notify

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/goldscore/internal/domain"
)

// Console implementa ports.Presenter escribiendo a stdout.
type Console struct {
	out      io.Writer
	listPath string
}

// NewConsole crea un presenter que escribe a stdout y persiste la lista
// de importación en listPath.
func NewConsole(listPath string) *Console {
	return &Console{out: os.Stdout, listPath: listPath}
}

// NewConsoleWriter crea un presenter para tests.
func NewConsoleWriter(w io.Writer, listPath string) *Console {
	return &Console{out: w, listPath: listPath}
}

// Info imprime una línea de progreso con timestamp.
func (c *Console) Info(msg string) {
	fmt.Fprintf(c.out, "[%s] %s\n", time.Now().Format("15:04:05"), msg)
}

// Success imprime el mensaje final de una ejecución exitosa.
func (c *Console) Success(msg string) {
	fmt.Fprintf(c.out, "[%s] OK: %s\n", time.Now().Format("15:04:05"), msg)
}

// Error imprime el mensaje user-facing de un fallo.
func (c *Console) Error(msg string) {
	fmt.Fprintf(c.out, "[%s] ERROR: %s\n", time.Now().Format("15:04:05"), msg)
}

// DeliverList persiste la lista en disco y la muestra por consola.
func (c *Console) DeliverList(content string) error {
	if c.listPath != "" {
		if err := os.WriteFile(c.listPath, []byte(content), 0o644); err != nil {
			return fmt.Errorf("notify.DeliverList: write %q: %w", c.listPath, err)
		}
		fmt.Fprintf(c.out, "[%s] import list written to %s\n",
			time.Now().Format("15:04:05"), c.listPath)
	}
	fmt.Fprintln(c.out, content)
	return nil
}

// PrintTopItems imprime los mejores matches como tabla (flag -table).
// Ordena por score descendente sobre una copia; el orden de la lista de
// importación no se toca.
func (c *Console) PrintTopItems(scored []domain.ScoredItem, limit int) {
	if len(scored) == 0 {
		return
	}
	if limit <= 0 {
		limit = 15
	}

	top := make([]domain.ScoredItem, len(scored))
	copy(top, scored)
	sort.Slice(top, func(i, j int) bool { return top[i].Score > top[j].Score })
	if len(top) > limit {
		top = top[:limit]
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Item ID", "Price (g)", "Sale rate", "Sold/day", "Gold score")

	for i, sc := range top {
		table.Append(
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", sc.Item.ID),
			fmt.Sprintf("%.2f", float64(sc.Price)/10000.0),
			fmt.Sprintf("%.3f", sc.Item.RegionSaleRate),
			fmt.Sprintf("%.1f", sc.Item.RegionAvgDailySold),
			fmt.Sprintf("%.1f", sc.Score),
		)
	}

	table.Render()
}

// PrintHistory imprime las últimas ejecuciones registradas (flag -history).
func (c *Console) PrintHistory(runs []domain.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(c.out, "no runs recorded yet")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("When", "Region", "Realm", "Source", "Items", "Matches", "Best", "Outcome")

	for _, r := range runs {
		table.Append(
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			string(r.Region),
			r.Realm,
			string(r.PriceSource),
			fmt.Sprintf("%d", r.Items),
			fmt.Sprintf("%d", r.Matches),
			fmt.Sprintf("%.1f", r.BestScore),
			r.Outcome,
		)
	}

	table.Render()
}
