// seed_rates genera un script SQL para poblar exchange_rates a partir de un CSV
// con filas "fecha;tasa" (ISO-8859-1 o UTF-8, encabezado opcional).
//
// Uso: go run ./cmd/seed_rates [-coma] [ruta/tasas.csv]
// Por defecto busca tasas.csv en el directorio actual. Con -coma la tasa usa coma
// decimal ("4100,5"); sin él, punto decimal y coma de miles ("4,100.5").
// Escribe: internal/infrastructure/postgres/migrations/seed/exchange_rates.sql
package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/titya18/pos-react-front-office-sub001/internal/domain/pricing"
	"github.com/titya18/pos-react-front-office-sub001/pkg/money"
)

var dateLayouts = []string{"2006-01-02", "02/01/2006", "2006-01-02 15:04"}

type rateRow struct {
	effectiveAt time.Time
	rate        decimal.Decimal
}

func main() {
	decimalComma := flag.Bool("coma", false, "la tasa usa coma decimal")
	flag.Parse()
	csvPath := "tasas.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	notation := money.Point
	if *decimalComma {
		notation = money.Comma
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}

	rows, err := parseRates(bytes.NewReader(raw), !utf8.Valid(raw), notation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outDir := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "seed")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	outPath := filepath.Join(outDir, "exchange_rates.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, rows, filepath.Base(csvPath)); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d tasas\n", outPath, len(rows))
}

// parseRates lee filas fecha;tasa. latin1 decodifica la entrada como ISO-8859-1.
// Las líneas cuya primera columna no es fecha se ignoran (encabezados, comentarios).
// Una tasa escrita en otra notación es un error, nunca un valor reinterpretado.
func parseRates(r io.Reader, latin1 bool, notation money.Notation) ([]rateRow, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []rateRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 2 {
			continue
		}
		at, ok := parseDate(rec[0])
		if !ok {
			continue
		}
		rate, err := notation.Parse(rec[1])
		if err != nil {
			return nil, fmt.Errorf("fila %s: %w", rec[0], err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("fila %s: la tasa debe ser mayor a cero", rec[0])
		}
		if !pricing.FitsPlaces(rate, pricing.RatePlaces) {
			return nil, fmt.Errorf("fila %s: la tasa admite a lo sumo %d decimales", rec[0], pricing.RatePlaces)
		}
		rows = append(rows, rateRow{effectiveAt: at, rate: rate})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].effectiveAt.Before(rows[j].effectiveAt) })
	return rows, nil
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// writeSQL escribe un INSERT idempotente; el id se deriva de la fecha efectiva.
func writeSQL(w io.Writer, rows []rateRow, source string) error {
	var b strings.Builder
	b.WriteString("-- Tasas de cambio históricas\n")
	fmt.Fprintf(&b, "-- Generado desde %s\n\n", source)
	if len(rows) == 0 {
		b.WriteString("-- sin filas\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString("INSERT INTO exchange_rates (id, rate, effective_at, created_by) VALUES\n")
	for i, row := range rows {
		at := row.effectiveAt.Format(time.RFC3339)
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("exchange_rate:"+at))
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  ('%s', %s, '%s', 'seed')%s\n", id, row.rate.String(), at, sep)
	}
	b.WriteString("ON CONFLICT (id) DO UPDATE SET rate = EXCLUDED.rate;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
