package repository

import "github.com/gestaofacil/erp-api/internal/domain/entity"

// SaleRepository persiste vendas fechadas. Cabeçalho, itens e pagamentos são
// sempre gravados dentro da mesma transação do débito de estoque.
type SaleRepository interface {
	// CreateSale insere o cabeçalho e preenche s.ID.
	CreateSale(s *entity.Sale) error
	CreateItem(i *entity.SaleItem) error
	CreatePayment(p *entity.SalePayment) error
	// GetSale devolve cabeçalho, itens e pagamentos; nil, nil, nil, nil se não existe.
	GetSale(id int64) (*entity.Sale, []*entity.SaleItem, []*entity.SalePayment, error)
}
