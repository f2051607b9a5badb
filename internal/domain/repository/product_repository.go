package repository

import (
	"github.com/gestaofacil/erp-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository é a porta de leitura/escrita de produtos usada pelo motor
// de estoque. Toda decisão sobre estoque parte de GetForUpdate dentro de uma
// transação; nenhum valor de estoque é cacheado entre requisições.
type ProductRepository interface {
	// GetByID devolve nil, nil se o produto não existe.
	GetByID(id int64) (*entity.Product, error)
	// GetForUpdate lê o produto bloqueando a linha (SELECT ... FOR UPDATE).
	GetForUpdate(id int64) (*entity.Product, error)
	// UpdateStock grava o novo valor de estoque do produto.
	UpdateStock(id int64, stock decimal.Decimal) error
}
