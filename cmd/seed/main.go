// seed genera el script SQL con los parámetros legales de la vigencia, la
// tabla de retención en la fuente (art. 383 ET) y, opcionalmente, el catálogo
// inicial de conceptos leído de un CSV oficial en ISO-8859-1.
//
// Uso: go run ./cmd/seed [ruta/conceptos.csv]
// Escribe: internal/infrastructure/postgres/migrations/002_seed_parameters.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tu-usuario/nomina-pro/internal/domain/payroll"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Vigencia 2026 (Decreto de salario mínimo y resolución UVT de la DIAN).
const effectiveFrom = "2026-01-01"

type paramRow struct {
	code        string
	description string
	totalPct    string
	employeePct string
	employerPct string
	fixedAmount string
}

var params2026 = []paramRow{
	{"SMMLV", "Salario mínimo mensual legal vigente", "0", "0", "0", "1423500"},
	{"AUXILIO_TRANSPORTE", "Auxilio de transporte", "0", "0", "0", "200000"},
	{"UVT", "Unidad de valor tributario", "0", "0", "0", "52374"},
	{"SALUD", "Aporte a salud", "12.5", "4", "8.5", "0"},
	{"PENSION", "Aporte a pensión", "16", "4", "12", "0"},
	{"FSP", "Fondo de solidaridad pensional", "1", "1", "0", "0"},
	{"SENA", "Aporte parafiscal SENA", "2", "0", "2", "0"},
	{"ICBF", "Aporte parafiscal ICBF", "3", "0", "3", "0"},
	{"CAJA_COMPENSACION", "Caja de compensación familiar", "4", "0", "4", "0"},
	{"CESANTIAS", "Provisión de cesantías", "8.33", "0", "8.33", "0"},
	{"INTERESES_CESANTIAS", "Intereses sobre cesantías", "1", "0", "1", "0"},
	{"PRIMA", "Provisión prima de servicios", "8.33", "0", "8.33", "0"},
	{"VACACIONES", "Provisión de vacaciones", "4.17", "0", "4.17", "0"},
	{"ARL_NIVEL_I", "Riesgos laborales clase I", "0.522", "0", "0.522", "0"},
	{"ARL_NIVEL_II", "Riesgos laborales clase II", "1.044", "0", "1.044", "0"},
	{"ARL_NIVEL_III", "Riesgos laborales clase III", "2.436", "0", "2.436", "0"},
	{"ARL_NIVEL_IV", "Riesgos laborales clase IV", "4.35", "0", "4.35", "0"},
	{"ARL_NIVEL_V", "Riesgos laborales clase V (construcción)", "6.96", "0", "6.96", "0"},
}

func main() {
	moduleRoot := findModuleRoot()
	outDir := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	outPath := filepath.Join(outDir, "002_seed_parameters.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Parámetros legales de nómina Colombia, vigencia " + effectiveFrom + "\n")
	out.WriteString("-- Generado por cmd/seed\n\n")

	// 1. Parámetros legales
	out.WriteString("-- 1. Parámetros legales\n")
	for _, p := range params2026 {
		fmt.Fprintf(out, "INSERT INTO legal_parameters (id, concept_code, description, total_pct, employee_pct, employer_pct, fixed_amount, effective_from, effective_to, active, created_at, updated_at)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', %s, %s, %s, %s, '%s', NULL, true, now(), now());\n",
			p.code, escapeSQL(p.description), p.totalPct, p.employeePct, p.employerPct, p.fixedAmount, effectiveFrom)
	}
	out.WriteString("\n")

	// 2. Tabla de retención en la fuente (tramos marginales en UVT)
	out.WriteString("-- 2. Tabla de retención en la fuente (art. 383 ET)\n")
	out.WriteString("WITH t AS (\n")
	fmt.Fprintf(out, "  INSERT INTO retention_tables (id, description, effective_from, effective_to, active, created_at)\n")
	fmt.Fprintf(out, "  VALUES (gen_random_uuid(), 'Tabla art. 383 ET vigencia %s', '%s', NULL, true, now())\n", effectiveFrom, effectiveFrom)
	out.WriteString("  RETURNING id\n)\n")
	out.WriteString("INSERT INTO retention_brackets (table_id, position, from_uvt, to_uvt, rate_pct)\nSELECT id, v.* FROM t, (VALUES\n")
	brackets := payroll.DefaultBrackets()
	for i, b := range brackets {
		sep := ","
		if i == len(brackets)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  (%d, %s, %s, %s)%s\n", i, b.FromUVT.String(), b.ToUVT.String(), b.RatePct.String(), sep)
	}
	out.WriteString(") AS v(position, from_uvt, to_uvt, rate_pct);\n\n")

	// 3. Catálogo de conceptos (opcional, desde CSV ISO-8859-1)
	concepts := 0
	if len(os.Args) > 1 {
		concepts = seedConcepts(out, os.Args[1])
	}

	fmt.Printf("Generado %s: %d parámetros, %d tramos, %d conceptos\n",
		outPath, len(params2026), len(brackets), concepts)
}

// seedConcepts lee un CSV code;name;type;calc_mode;formula exportado en
// ISO-8859-1 (los catálogos oficiales llegan con tildes en Latin-1) y emite
// los INSERT del catálogo global (company_id NULL = plantilla).
func seedConcepts(out *os.File, csvPath string) int {
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	out.WriteString("-- 3. Catálogo de conceptos (plantilla)\n")
	count := 0
	for i, row := range rows {
		if i == 0 || len(row) < 4 { // encabezado o fila incompleta
			continue
		}
		code := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		ctype := strings.TrimSpace(row[2])
		calcMode := strings.TrimSpace(row[3])
		formula := ""
		if len(row) > 4 {
			formula = strings.TrimSpace(row[4])
		}
		if code == "" || name == "" {
			continue
		}
		fmt.Fprintf(out, "INSERT INTO labor_concepts (id, company_id, code, name, type, calc_mode, formula, amount, percentage, base, afecta_ibc, afecta_parafiscales, es_provision, orden, active, created_at, updated_at)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), NULL, '%s', '%s', '%s', '%s', '%s', 0, 0, '', true, true, false, %d, true, now(), now());\n",
			escapeSQL(code), escapeSQL(name), escapeSQL(ctype), escapeSQL(calcMode), escapeSQL(formula), (i+1)*10)
		count++
	}
	out.WriteString("\n")
	return count
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
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
