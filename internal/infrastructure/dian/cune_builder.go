package dian

import (
	"errors"
	"strings"

	pkgdian "github.com/tu-usuario/nomina-pro/pkg/dian"
)

// CalculateCuneFromRecord construye CuneParams desde el contexto de build y
// devuelve el CUNE (hex). Asigna el valor a Record.CUNE.
// ValDev = TotalDevengado + TotalItems; ValDed = TotalDeducciones; ValTol = NetoPagar.
func CalculateCuneFromRecord(ctx *PayrollBuildContext, softwarePin string) (string, error) {
	if ctx == nil || ctx.Record == nil || ctx.Company == nil || ctx.Employee == nil {
		return "", errors.New("dian: se requieren nómina, empleador y trabajador para calcular el CUNE")
	}
	rec := ctx.Record
	tipoAmb := ctx.TipoAmbiente
	if tipoAmb == "" {
		tipoAmb = "2"
	}
	params := &pkgdian.CuneParams{
		NumNIE:       strings.TrimSpace(ctx.Number),
		FecNIE:       ctx.GeneratedAt.Format("2006-01-02"),
		HorNIE:       ctx.GeneratedAt.Format("15:04:05-07:00"),
		ValDev:       rec.TotalDevengado.Add(rec.TotalItems),
		ValDed:       rec.TotalDeducciones,
		ValTol:       rec.NetoPagar,
		NitEmpleador: onlyDigitsNIT(ctx.Company.NIT),
		DocEmpleado:  onlyDigitsNIT(ctx.Employee.DocumentNumber),
		TipoXML:      pkgdian.TipoXMLNominaIndividual,
		SoftwarePin:  softwarePin,
		TipoAmbiente: tipoAmb,
	}
	svc := pkgdian.NewCuneCalculatorService()
	cune, err := svc.Calculate(params)
	if err != nil {
		return "", err
	}
	rec.CUNE = cune
	return cune, nil
}

func onlyDigitsNIT(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}
