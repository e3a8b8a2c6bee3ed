package testing

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Luisr26/ExpertSoft/config"
)

// SeedFixture holds the rows of the four seed files, header first
type SeedFixture struct {
	Platforms    [][]string
	Clients      [][]string
	Invoices     [][]string
	Transactions [][]string
}

// BasicSeedFixture describes one client paying one invoice through Netflix
func BasicSeedFixture() SeedFixture {
	return SeedFixture{
		Platforms: [][]string{
			{"id_plataforma", "nombre_plataforma"},
			{"1", "Netflix"},
			{"2", "Nequi"},
		},
		Clients: [][]string{
			{"id_cliente", "nombre_cliente", "numero_identificacion", "direccion", "telefono", "correo_electronico"},
			{"1", "Alice", "123", "X", "555", "a@a.com"},
			{"2", "Bob", "X2", "Street 2", "556", "bob@example.com"},
		},
		Invoices: [][]string{
			{"id_factura", "numero_factura", "periodo_facturacion", "monto_facturado", "monto_pagado"},
			{"1", "INV-1", "2024-01", "10.00", "10.00"},
		},
		Transactions: [][]string{
			{"id_transaccion", "id_cliente", "id_plataforma", "id_factura", "fecha_hora_transaccion", "monto_transaccion", "estado_transaccion", "tipo_transaccion"},
			{"T1", "1", "1", "1", "2024-01-02T10:00:00Z", "10.00", "completed", "payment"},
		},
	}
}

// Write stores the fixture as CSV files under dir and returns their paths
func (f SeedFixture) Write(dir string) (config.SeedPaths, error) {
	paths := config.SeedPaths{
		Platforms:    filepath.Join(dir, "platforms.csv"),
		Clients:      filepath.Join(dir, "clients.csv"),
		Invoices:     filepath.Join(dir, "invoices.csv"),
		Transactions: filepath.Join(dir, "transactions.csv"),
	}
	files := []struct {
		path string
		rows [][]string
	}{
		{paths.Platforms, f.Platforms},
		{paths.Clients, f.Clients},
		{paths.Invoices, f.Invoices},
		{paths.Transactions, f.Transactions},
	}
	for _, file := range files {
		if err := writeCSV(file.path, file.rows); err != nil {
			return config.SeedPaths{}, err
		}
	}
	return paths, nil
}

func writeCSV(path string, rows [][]string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fixture %s: %w", path, err)
	}
	w := csv.NewWriter(out)
	if err := w.WriteAll(rows); err != nil {
		_ = out.Close()
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return out.Close()
}
