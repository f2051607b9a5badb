package memory

import "github.com/gestaofacil/erp-api/internal/domain/entity"

// Semeadura e contagens diretas para os testes. Fora de Run, as leituras veem
// apenas estado comitado.

// AddProduct insere um produto, atribuindo ID quando zero.
func (s *Store) AddProduct(p entity.Product) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextID()
	}
	s.st.products[p.ID] = &p
	return &p
}

// AddCashAccount insere uma conta de caixa, atribuindo ID quando zero.
func (s *Store) AddCashAccount(a entity.CashAccount) *entity.CashAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = s.nextID()
	}
	s.st.accounts[a.ID] = &a
	return &a
}

// AddTitle insere um título, atribuindo ID quando zero.
func (s *Store) AddTitle(t entity.Title) *entity.Title {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		t.ID = s.nextID()
	}
	s.st.titles[t.Kind][t.ID] = &t
	return &t
}

// AddUser insere um usuário, atribuindo ID quando zero.
func (s *Store) AddUser(u entity.User) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.nextID()
	}
	s.st.users[u.Email] = &u
	return &u
}

// MovementCount devolve quantos movimentos de estoque foram comitados.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.movements)
}

// SaleCount devolve quantas vendas foram comitadas.
func (s *Store) SaleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.sales)
}

// SaleItemCount devolve quantas linhas de venda foram comitadas.
func (s *Store) SaleItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.saleItems)
}

// SalePaymentCount devolve quantos pagamentos de venda foram comitados.
func (s *Store) SalePaymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.salePayments)
}

// ReceiptCount devolve quantos recebimentos de compra foram comitados.
func (s *Store) ReceiptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.receipts)
}

// CashMovementCount devolve quantos lançamentos de caixa foram comitados.
func (s *Store) CashMovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.cashMovements)
}

// AuditCount devolve quantas entradas de auditoria foram comitadas.
func (s *Store) AuditCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.audit)
}
