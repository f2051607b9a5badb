// Package memory implementa os repositórios e o TxRunner sobre mapas em
// memória, com as mesmas semânticas de atomicidade do adaptador PostgreSQL:
// transações serializadas, snapshot no início e restauração integral em erro.
// Usado pelos testes dos casos de uso; não serve produção.
package memory

import (
	"context"
	"sync"

	"github.com/gestaofacil/erp-api/internal/application/ports"
	"github.com/gestaofacil/erp-api/internal/domain/entity"
	"github.com/gestaofacil/erp-api/internal/domain/repository"
)

// Store guarda todo o estado e fabrica repositórios ligados a ele.
type Store struct {
	mu   sync.Mutex // protege state
	txMu sync.Mutex // serializa transações (equivale ao bloqueio de linha)
	st   state
}

type state struct {
	products      map[int64]*entity.Product
	movements     []*entity.InventoryMovement
	sales         map[int64]*entity.Sale
	saleItems     []*entity.SaleItem
	salePayments  []*entity.SalePayment
	orders        map[int64]*entity.PurchaseOrder
	orderItems    []*entity.PurchaseOrderItem
	receipts      []*entity.PurchaseReceipt
	titles        map[string]map[int64]*entity.Title
	accounts      map[int64]*entity.CashAccount
	cashMovements []*entity.CashMovement
	audit         []*entity.AuditLogEntry
	users         map[string]*entity.User
	seq           int64
}

// NewStore cria um store vazio.
func NewStore() *Store {
	return &Store{st: state{
		products: map[int64]*entity.Product{},
		sales:    map[int64]*entity.Sale{},
		orders:   map[int64]*entity.PurchaseOrder{},
		titles: map[string]map[int64]*entity.Title{
			entity.TitleKindPayable:    {},
			entity.TitleKindReceivable: {},
		},
		accounts: map[int64]*entity.CashAccount{},
		users:    map[string]*entity.User{},
	}}
}

var _ ports.TxRunner = (*Store)(nil)

// Run executa fn como uma transação: transações concorrentes são
// serializadas e qualquer erro restaura o estado anterior por inteiro.
// As escritas nunca mutam entidades compartilhadas (sempre substituem), então
// o snapshot raso é suficiente.
func (s *Store) Run(_ context.Context, fn func(r ports.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(s.Repos()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Repos devolve os repositórios ligados ao store.
func (s *Store) Repos() ports.Repos {
	return ports.Repos{
		Products:  &productRepo{s},
		Movements: &movementRepo{s},
		Sales:     &saleRepo{s},
		Purchases: &purchaseRepo{s},
		Titles:    &titleRepo{s},
		Cash:      &cashRepo{s},
		Audit:     &auditRepo{s},
	}
}

// Users devolve o repositório de usuários.
func (s *Store) Users() repository.UserRepository {
	return &userRepo{s}
}

func (s *Store) snapshot() state {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := state{
		products:      make(map[int64]*entity.Product, len(s.st.products)),
		movements:     append([]*entity.InventoryMovement(nil), s.st.movements...),
		sales:         make(map[int64]*entity.Sale, len(s.st.sales)),
		saleItems:     append([]*entity.SaleItem(nil), s.st.saleItems...),
		salePayments:  append([]*entity.SalePayment(nil), s.st.salePayments...),
		orders:        make(map[int64]*entity.PurchaseOrder, len(s.st.orders)),
		orderItems:    append([]*entity.PurchaseOrderItem(nil), s.st.orderItems...),
		receipts:      append([]*entity.PurchaseReceipt(nil), s.st.receipts...),
		titles:        map[string]map[int64]*entity.Title{},
		accounts:      make(map[int64]*entity.CashAccount, len(s.st.accounts)),
		cashMovements: append([]*entity.CashMovement(nil), s.st.cashMovements...),
		audit:         append([]*entity.AuditLogEntry(nil), s.st.audit...),
		users:         make(map[string]*entity.User, len(s.st.users)),
		seq:           s.st.seq,
	}
	for k, v := range s.st.products {
		snap.products[k] = v
	}
	for k, v := range s.st.sales {
		snap.sales[k] = v
	}
	for k, v := range s.st.orders {
		snap.orders[k] = v
	}
	for kind, m := range s.st.titles {
		cp := make(map[int64]*entity.Title, len(m))
		for k, v := range m {
			cp[k] = v
		}
		snap.titles[kind] = cp
	}
	for k, v := range s.st.accounts {
		snap.accounts[k] = v
	}
	for k, v := range s.st.users {
		snap.users[k] = v
	}
	return snap
}

func (s *Store) restore(snap state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = snap
}

func (s *Store) nextID() int64 {
	s.st.seq++
	return s.st.seq
}
