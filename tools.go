//go:build tools

package main

// Fija en go.mod las herramientas de build que no se importan desde el
// código: swag genera docs/swagger.json a partir de las anotaciones de los
// handlers (go generate ./cmd/api).
import (
	_ "github.com/swaggo/swag/cmd/swag"
)
