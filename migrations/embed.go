// Package migrations embute os arquivos SQL aplicados pelo golang-migrate.
package migrations

import "embed"

// FS contém os pares NNNN_nome.up.sql / NNNN_nome.down.sql.
//
//go:embed *.sql
var FS embed.FS
