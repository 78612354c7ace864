package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wysanalytics/takwimu-plus/internal/model"
)

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now().UTC()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) ListRecent(ctx context.Context, limit int) ([]model.User, error) {
	out, _ := r.List(ctx)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeUserRepo) ListWithPhones(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Phone != "" {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) SetSubscription(_ context.Context, id int64, status model.SubscriptionStatus, end *time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("no such user")
	}
	u.SubscriptionStatus = status
	u.SubscriptionEnd = end
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int, error) {
	return len(r.users), nil
}

func (r *fakeUserRepo) CountByStatus(_ context.Context, status model.SubscriptionStatus) (int, error) {
	n := 0
	for _, u := range r.users {
		if u.SubscriptionStatus == status {
			n++
		}
	}
	return n, nil
}

type fakePaymentRepo struct {
	payments map[int64]*model.Payment
	users    *fakeUserRepo
	nextID   int64
}

func newFakePaymentRepo(users *fakeUserRepo) *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[int64]*model.Payment), users: users, nextID: 1}
}

func (r *fakePaymentRepo) Create(_ context.Context, p *model.Payment) error {
	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = time.Now().UTC()
	r.payments[p.ID] = p
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id int64) (*model.Payment, error) {
	return r.payments[id], nil
}

func (r *fakePaymentRepo) ListByUser(_ context.Context, userID int64) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ListAll(_ context.Context) ([]model.Payment, error) {
	out := make([]model.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePaymentRepo) CountByStatus(_ context.Context, status model.PaymentStatus) (int, error) {
	n := 0
	for _, p := range r.payments {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakePaymentRepo) VerifiedRevenue(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.payments {
		if p.Status == model.PaymentVerified {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (r *fakePaymentRepo) Verify(ctx context.Context, id int64, verifiedAt, subscriptionEnd time.Time) (*model.Payment, model.PaymentStatus, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, "", nil
	}
	prior := p.Status
	if prior != model.PaymentPending {
		return p, prior, nil
	}
	p.Status = model.PaymentVerified
	p.VerifiedAt = &verifiedAt
	if err := r.users.SetSubscription(ctx, p.UserID, model.SubscriptionActive, &subscriptionEnd); err != nil {
		return nil, "", err
	}
	return p, prior, nil
}

func (r *fakePaymentRepo) Reject(_ context.Context, id int64) (*model.Payment, model.PaymentStatus, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, "", nil
	}
	prior := p.Status
	if prior != model.PaymentPending {
		return p, prior, nil
	}
	p.Status = model.PaymentRejected
	return p, prior, nil
}

type fakeActivityRepo struct {
	entries []model.ActivityLog
}

func (r *fakeActivityRepo) Insert(_ context.Context, l *model.ActivityLog) error {
	l.ID = int64(len(r.entries) + 1)
	l.CreatedAt = time.Now().UTC()
	r.entries = append(r.entries, *l)
	return nil
}

func (r *fakeActivityRepo) ListRecent(_ context.Context, limit int) ([]model.ActivityLog, error) {
	out := append([]model.ActivityLog(nil), r.entries...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type notifyCall struct {
	phone   string
	subject string
}

type fakeNotifier struct {
	calls []notifyCall
}

func (n *fakeNotifier) NotifyUser(_ context.Context, phone, subject, _ string) {
	n.calls = append(n.calls, notifyCall{phone: phone, subject: subject})
}

type fakeMessageRepo struct {
	messages map[int64]*model.Message
	nextID   int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[int64]*model.Message), nextID: 1}
}

func (r *fakeMessageRepo) Create(_ context.Context, m *model.Message) error {
	m.ID = r.nextID
	r.nextID++
	m.CreatedAt = time.Now().UTC()
	r.messages[m.ID] = m
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id int64) (*model.Message, error) {
	return r.messages[id], nil
}

func (r *fakeMessageRepo) ListForUser(_ context.Context, userID int64, sender model.MessageSender) ([]model.Message, error) {
	var out []model.Message
	for _, m := range r.messages {
		if m.UserID != nil && *m.UserID == userID && m.Sender == sender && !m.IsAnnouncement {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) ListAnnouncements(_ context.Context) ([]model.Message, error) {
	var out []model.Message
	for _, m := range r.messages {
		if m.IsAnnouncement {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) ListFromUsers(_ context.Context) ([]model.Message, error) {
	var out []model.Message
	for _, m := range r.messages {
		if m.Sender == model.SenderUser {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, id int64) error {
	if m, ok := r.messages[id]; ok {
		m.IsRead = true
	}
	return nil
}

func (r *fakeMessageRepo) UnreadCountForUser(_ context.Context, userID int64) (int, error) {
	n := 0
	for _, m := range r.messages {
		if m.UserID != nil && *m.UserID == userID && m.Sender == model.SenderAdmin && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) CountAnnouncements(_ context.Context) (int, error) {
	n := 0
	for _, m := range r.messages {
		if m.IsAnnouncement {
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) CountUnreadFromUsers(_ context.Context) (int, error) {
	n := 0
	for _, m := range r.messages {
		if m.Sender == model.SenderUser && !m.IsRead {
			n++
		}
	}
	return n, nil
}

type fakeSaleRepo struct {
	sales    []*model.Sale
	products *fakeProductRepo
	nextID   int64
}

func (r *fakeSaleRepo) CreateSale(_ context.Context, sale *model.Sale, items []model.SaleItem) error {
	r.nextID++
	sale.ID = r.nextID
	sale.CreatedAt = time.Now().UTC()
	for i := range items {
		items[i].SaleID = sale.ID
		// Mirrors the real repo's decrement: owner-scoped, no floor,
		// foreign or missing products are a silent no-op.
		if r.products != nil {
			if p, ok := r.products.products[items[i].ProductID]; ok && p.UserID == sale.UserID {
				p.Stock -= items[i].Quantity
			}
		}
	}
	sale.Items = items
	r.sales = append(r.sales, sale)
	return nil
}

func (r *fakeSaleRepo) ListRecent(_ context.Context, _ int64, limit int) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeSettingsRepo struct {
	settings map[int64]*model.Settings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: make(map[int64]*model.Settings)}
}

func (r *fakeSettingsRepo) GetByUserID(_ context.Context, userID int64) (*model.Settings, error) {
	return r.settings[userID], nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, s *model.Settings) error {
	r.settings[s.UserID] = s
	return nil
}

type fakeProductRepo struct {
	products map[int64]*model.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]*model.Product), nextID: 1}
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = time.Now().UTC()
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id, userID int64) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProductRepo) List(_ context.Context, userID int64) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock(_ context.Context, userID int64, threshold int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.UserID == userID && p.Stock <= threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	existing, ok := r.products[p.ID]
	if !ok || existing.UserID != p.UserID {
		return sql.ErrNoRows
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) SetPhotoPath(_ context.Context, id, userID int64, path string) error {
	p, ok := r.products[id]
	if !ok || p.UserID != userID {
		return sql.ErrNoRows
	}
	p.PhotoPath = path
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id, userID int64) error {
	p, ok := r.products[id]
	if !ok || p.UserID != userID {
		return sql.ErrNoRows
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count(_ context.Context, userID int64) (int, error) {
	n := 0
	for _, p := range r.products {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeReportRepo struct {
	totals       model.SalesTotals
	daily        []model.DailySales
	expenseTotal model.SalesTotals
	breakdown    []model.CategoryAmount
	top          []model.TopProduct
	topErr       error
	allTenants   model.SalesTotals
}

func (r *fakeReportRepo) SalesTotalsBetween(_ context.Context, _ int64, _, _ time.Time) (*model.SalesTotals, error) {
	t := r.totals
	return &t, nil
}

func (r *fakeReportRepo) DailySalesSince(_ context.Context, _ int64, _ time.Time) ([]model.DailySales, error) {
	return r.daily, nil
}

func (r *fakeReportRepo) ExpenseTotalSince(_ context.Context, _ int64, _ time.Time) (*model.SalesTotals, error) {
	t := r.expenseTotal
	return &t, nil
}

func (r *fakeReportRepo) ExpenseBreakdownSince(_ context.Context, _ int64, _ time.Time) ([]model.CategoryAmount, error) {
	return r.breakdown, nil
}

func (r *fakeReportRepo) TopProductsSince(_ context.Context, _ int64, _ time.Time, _ int) ([]model.TopProduct, error) {
	if r.topErr != nil {
		return nil, r.topErr
	}
	return r.top, nil
}

func (r *fakeReportRepo) SalesTotalsAllTenantsBetween(_ context.Context, _, _ time.Time) (*model.SalesTotals, error) {
	t := r.allTenants
	return &t, nil
}
