package memory

import (
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/erp-api/internal/domain/entity"
	"github.com/gestaofacil/erp-api/internal/domain/repository"
)

// Assinaturas conferidas contra as portas do domínio.
var (
	_ repository.ProductRepository           = (*productRepo)(nil)
	_ repository.InventoryMovementRepository = (*movementRepo)(nil)
	_ repository.SaleRepository              = (*saleRepo)(nil)
	_ repository.PurchaseRepository          = (*purchaseRepo)(nil)
	_ repository.TitleRepository             = (*titleRepo)(nil)
	_ repository.CashRepository              = (*cashRepo)(nil)
	_ repository.AuditLogRepository          = (*auditRepo)(nil)
	_ repository.UserRepository              = (*userRepo)(nil)
)

type productRepo struct{ s *Store }

func (r *productRepo) GetByID(id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetForUpdate devolve o produto; o bloqueio de linha é emulado pela
// serialização das transações no Store.
func (r *productRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) UpdateStock(id int64, stock decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return nil
	}
	cp := *p
	cp.Stock = stock
	r.s.st.products[id] = &cp
	return nil
}

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(m *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	cp.ID = r.s.nextID()
	m.ID = cp.ID
	r.s.st.movements = append(r.s.st.movements, &cp)
	return nil
}

func (r *movementRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.InventoryMovement
	for i := len(r.s.st.movements) - 1; i >= 0; i-- {
		m := r.s.st.movements[i]
		if m.ProductID != productID {
			continue
		}
		if offset > 0 {
			offset--
			continue
		}
		cp := *m
		list = append(list, &cp)
		if limit > 0 && len(list) == limit {
			break
		}
	}
	return list, nil
}

type saleRepo struct{ s *Store }

func (r *saleRepo) CreateSale(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sale
	cp.ID = r.s.nextID()
	sale.ID = cp.ID
	r.s.st.sales[cp.ID] = &cp
	return nil
}

func (r *saleRepo) CreateItem(item *entity.SaleItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *item
	cp.ID = r.s.nextID()
	item.ID = cp.ID
	r.s.st.saleItems = append(r.s.st.saleItems, &cp)
	return nil
}

func (r *saleRepo) CreatePayment(p *entity.SalePayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	cp.ID = r.s.nextID()
	p.ID = cp.ID
	r.s.st.salePayments = append(r.s.st.salePayments, &cp)
	return nil
}

func (r *saleRepo) GetSale(id int64) (*entity.Sale, []*entity.SaleItem, []*entity.SalePayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.st.sales[id]
	if !ok {
		return nil, nil, nil, nil
	}
	cp := *sale
	var items []*entity.SaleItem
	for _, i := range r.s.st.saleItems {
		if i.SaleID == id {
			icp := *i
			items = append(items, &icp)
		}
	}
	var payments []*entity.SalePayment
	for _, p := range r.s.st.salePayments {
		if p.SaleID == id {
			pcp := *p
			payments = append(payments, &pcp)
		}
	}
	return &cp, items, payments, nil
}

type purchaseRepo struct{ s *Store }

func (r *purchaseRepo) CreateOrder(o *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *o
	cp.ID = r.s.nextID()
	o.ID = cp.ID
	r.s.st.orders[cp.ID] = &cp
	for _, item := range items {
		icp := *item
		icp.ID = r.s.nextID()
		icp.OrderID = cp.ID
		item.ID = icp.ID
		item.OrderID = cp.ID
		r.s.st.orderItems = append(r.s.st.orderItems, &icp)
	}
	return nil
}

func (r *purchaseRepo) GetOrder(id int64) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.st.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *purchaseRepo) GetOrderForUpdate(id int64) (*entity.PurchaseOrder, error) {
	return r.GetOrder(id)
}

func (r *purchaseRepo) GetItemForUpdate(orderID, productID int64) (*entity.PurchaseOrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, i := range r.s.st.orderItems {
		if i.OrderID == orderID && i.ProductID == productID {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *purchaseRepo) ListItems(orderID int64) ([]*entity.PurchaseOrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.PurchaseOrderItem
	for _, i := range r.s.st.orderItems {
		if i.OrderID == orderID {
			cp := *i
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *purchaseRepo) CreateReceipt(rc *entity.PurchaseReceipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *rc
	cp.ID = r.s.nextID()
	rc.ID = cp.ID
	r.s.st.receipts = append(r.s.st.receipts, &cp)
	return nil
}

func (r *purchaseRepo) ListReceipts(orderID int64) ([]*entity.PurchaseReceipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.PurchaseReceipt
	for _, rc := range r.s.st.receipts {
		if rc.OrderID == orderID {
			cp := *rc
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *purchaseRepo) UpdateOrderStatus(orderID int64, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.st.orders[orderID]
	if !ok {
		return nil
	}
	cp := *o
	cp.Status = status
	r.s.st.orders[orderID] = &cp
	return nil
}

type titleRepo struct{ s *Store }

func (r *titleRepo) Create(t *entity.Title) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *t
	cp.ID = r.s.nextID()
	t.ID = cp.ID
	r.s.st.titles[cp.Kind][cp.ID] = &cp
	return nil
}

func (r *titleRepo) GetByID(kind string, id int64) (*entity.Title, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.st.titles[kind][id]
	if !ok || !t.Ativo {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *titleRepo) GetForUpdate(kind string, id int64) (*entity.Title, error) {
	return r.GetByID(kind, id)
}

func (r *titleRepo) ApplySettlement(t *entity.Title) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *t
	r.s.st.titles[cp.Kind][cp.ID] = &cp
	return nil
}

type cashRepo struct{ s *Store }

func (r *cashRepo) GetAccount(id int64) (*entity.CashAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.st.accounts[id]
	if !ok || !a.Ativo {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *cashRepo) CreateMovement(m *entity.CashMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	cp.ID = r.s.nextID()
	m.ID = cp.ID
	r.s.st.cashMovements = append(r.s.st.cashMovements, &cp)
	return nil
}

func (r *cashRepo) ListMovements(accountID int64) ([]*entity.CashMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.CashMovement
	for _, m := range r.s.st.cashMovements {
		if m.AccountID == accountID {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list, nil
}

type auditRepo struct{ s *Store }

func (r *auditRepo) Create(e *entity.AuditLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	cp.ID = r.s.nextID()
	e.ID = cp.ID
	r.s.st.audit = append(r.s.st.audit, &cp)
	return nil
}

func (r *auditRepo) ListByEntity(entityType string, entityID int64) ([]*entity.AuditLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.AuditLogEntry
	for _, e := range r.s.st.audit {
		if e.EntityType == entityType && e.EntityID == entityID {
			cp := *e
			list = append(list, &cp)
		}
	}
	return list, nil
}

type userRepo struct{ s *Store }

func (r *userRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
