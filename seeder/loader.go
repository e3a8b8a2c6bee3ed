package seeder

import (
	"context"

	"github.com/Luisr26/ExpertSoft/models"
)

// Entity names, also used as stage names, metric labels and event fields
const (
	EntityPlatforms    = "platforms"
	EntityClients      = "clients"
	EntityInvoices     = "invoices"
	EntityTransactions = "transactions"
)

// Required CSV columns per entity, in target table column order
var (
	PlatformColumns    = []string{"id_plataforma", "nombre_plataforma"}
	ClientColumns      = []string{"id_cliente", "nombre_cliente", "numero_identificacion", "direccion", "telefono", "correo_electronico"}
	InvoiceColumns     = []string{"id_factura", "numero_factura", "periodo_facturacion", "monto_facturado", "monto_pagado"}
	TransactionColumns = []string{"id_transaccion", "id_cliente", "id_plataforma", "id_factura", "fecha_hora_transaccion", "monto_transaccion", "estado_transaccion", "tipo_transaccion"}
)

// Loader fills one table from one seed source
type Loader interface {
	Entity() string
	Load(ctx context.Context) (int64, error)
}

// TableLoader buffers every row of its source and then writes the whole
// batch with one upsert. Nothing is written when reading fails.
// Rows repeating a key collapse into one; the last occurrence wins.
type TableLoader[R any] struct {
	entity  string
	path    string
	columns []string
	open    Opener
	build   func(Record) R
	key     func(R) string
	upsert  func(context.Context, []R) (int64, error)
}

func (l *TableLoader[R]) Entity() string {
	return l.entity
}

// Load returns the number of rows the database reports as affected
func (l *TableLoader[R]) Load(ctx context.Context) (int64, error) {
	var batch []R
	seen := make(map[string]int)
	for rec, err := range Rows(ctx, l.open, l.path, l.columns) {
		if err != nil {
			return 0, err
		}
		row := l.build(rec)
		// one statement cannot touch the same key twice
		k := l.key(row)
		if i, ok := seen[k]; ok {
			batch[i] = row
			continue
		}
		seen[k] = len(batch)
		batch = append(batch, row)
	}
	if len(batch) == 0 {
		return 0, nil
	}
	return l.upsert(ctx, batch)
}

type PlatformUpserter interface {
	UpsertRows(ctx context.Context, rows []models.PlatformRow) (int64, error)
}

type ClientUpserter interface {
	UpsertRows(ctx context.Context, rows []models.ClientRow) (int64, error)
}

type InvoiceUpserter interface {
	UpsertRows(ctx context.Context, rows []models.InvoiceRow) (int64, error)
}

type TransactionUpserter interface {
	UpsertRows(ctx context.Context, rows []models.TransactionRow) (int64, error)
}

func NewPlatformLoader(repo PlatformUpserter, path string, open Opener) *TableLoader[models.PlatformRow] {
	return &TableLoader[models.PlatformRow]{
		entity:  EntityPlatforms,
		path:    path,
		columns: PlatformColumns,
		open:    open,
		upsert:  repo.UpsertRows,
		key:     func(r models.PlatformRow) string { return r.ID },
		build: func(r Record) models.PlatformRow {
			return models.PlatformRow{
				ID:   r["id_plataforma"],
				Name: r["nombre_plataforma"],
			}
		},
	}
}

func NewClientLoader(repo ClientUpserter, path string, open Opener) *TableLoader[models.ClientRow] {
	return &TableLoader[models.ClientRow]{
		entity:  EntityClients,
		path:    path,
		columns: ClientColumns,
		open:    open,
		upsert:  repo.UpsertRows,
		key:     func(r models.ClientRow) string { return r.ID },
		build: func(r Record) models.ClientRow {
			return models.ClientRow{
				ID:                   r["id_cliente"],
				Name:                 r["nombre_cliente"],
				IdentificationNumber: r["numero_identificacion"],
				Address:              r["direccion"],
				Phone:                r["telefono"],
				Email:                r["correo_electronico"],
			}
		},
	}
}

func NewInvoiceLoader(repo InvoiceUpserter, path string, open Opener) *TableLoader[models.InvoiceRow] {
	return &TableLoader[models.InvoiceRow]{
		entity:  EntityInvoices,
		path:    path,
		columns: InvoiceColumns,
		open:    open,
		upsert:  repo.UpsertRows,
		key:     func(r models.InvoiceRow) string { return r.ID },
		build: func(r Record) models.InvoiceRow {
			return models.InvoiceRow{
				ID:            r["id_factura"],
				InvoiceNumber: r["numero_factura"],
				BillingPeriod: r["periodo_facturacion"],
				BilledAmount:  r["monto_facturado"],
				PaidAmount:    r["monto_pagado"],
			}
		},
	}
}

func NewTransactionLoader(repo TransactionUpserter, path string, open Opener) *TableLoader[models.TransactionRow] {
	return &TableLoader[models.TransactionRow]{
		entity:  EntityTransactions,
		path:    path,
		columns: TransactionColumns,
		open:    open,
		upsert:  repo.UpsertRows,
		key:     func(r models.TransactionRow) string { return r.ID },
		build: func(r Record) models.TransactionRow {
			return models.TransactionRow{
				ID:         r["id_transaccion"],
				ClientID:   r["id_cliente"],
				PlatformID: r["id_plataforma"],
				InvoiceID:  r["id_factura"],
				OccurredAt: r["fecha_hora_transaccion"],
				Amount:     r["monto_transaccion"],
				Status:     r["estado_transaccion"],
				Type:       r["tipo_transaccion"],
			}
		},
	}
}
