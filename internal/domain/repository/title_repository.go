package repository

import "github.com/gestaofacil/erp-api/internal/domain/entity"

// TitleRepository persiste títulos financeiros (contas a pagar e a receber).
// O mesmo contrato atende os dois tipos; o adaptador resolve a tabela pelo Kind.
type TitleRepository interface {
	// Create insere um título aberto e preenche t.ID.
	Create(t *entity.Title) error
	// GetByID devolve nil, nil se o título não existe ou está inativo.
	GetByID(kind string, id int64) (*entity.Title, error)
	// GetForUpdate lê o título bloqueando a linha para a baixa.
	GetForUpdate(kind string, id int64) (*entity.Title, error)
	// ApplySettlement grava status, valor acumulado e, se informados, forma de
	// pagamento e conta. Campos não informados são preservados.
	ApplySettlement(t *entity.Title) error
}
