package businessflow

import (
	"context"
	"sort"

	"github.com/Luisr26/ExpertSoft/models"
	"github.com/Luisr26/ExpertSoft/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

// memoryRepo is an in-memory stand-in for the single-table repository methods
type memoryRepo[T any, K comparable] struct {
	rows    map[K]T
	nextID  func() K
	idOf    func(*T) K
	setID   func(*T, K)
	apply   func(*T, map[string]any)
	less    func(a, b K) bool
	saveErr error
	delErr  error
}

func (r *memoryRepo[T, K]) ByID(_ context.Context, id K) (*T, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *memoryRepo[T, K]) List(context.Context) ([]*T, error) {
	keys := make([]K, 0, len(r.rows))
	for k := range r.rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return r.less(keys[i], keys[j]) })

	var out []*T
	for _, k := range keys {
		row := r.rows[k]
		out = append(out, &row)
	}
	return out, nil
}

func (r *memoryRepo[T, K]) Save(_ context.Context, entity *T) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	var zero K
	if r.idOf(entity) == zero {
		r.setID(entity, r.nextID())
	}
	r.rows[r.idOf(entity)] = *entity
	return nil
}

func (r *memoryRepo[T, K]) UpdateByID(_ context.Context, id K, values map[string]any) (int64, error) {
	row, ok := r.rows[id]
	if !ok {
		return 0, nil
	}
	r.apply(&row, values)
	r.rows[id] = row
	return 1, nil
}

func (r *memoryRepo[T, K]) DeleteByID(_ context.Context, id K) (int64, error) {
	if r.delErr != nil {
		return 0, r.delErr
	}
	if _, ok := r.rows[id]; !ok {
		return 0, nil
	}
	delete(r.rows, id)
	return 1, nil
}

func (r *memoryRepo[T, K]) Count(context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}

type fakePlatformRepo struct {
	*memoryRepo[models.Platform, uint]
}

func (fakePlatformRepo) UpsertRows(context.Context, []models.PlatformRow) (int64, error) {
	return 0, nil
}

func newFakePlatformRepo(platforms ...models.Platform) fakePlatformRepo {
	var seq uint
	repo := &memoryRepo[models.Platform, uint]{
		rows:   map[uint]models.Platform{},
		idOf:   func(p *models.Platform) uint { return p.ID },
		setID:  func(p *models.Platform, id uint) { p.ID = id },
		less:   func(a, b uint) bool { return a < b },
		nextID: func() uint { seq++; return seq },
		apply: func(p *models.Platform, v map[string]any) {
			p.Name = v["name"].(string)
		},
	}
	for _, p := range platforms {
		repo.rows[p.ID] = p
		seq = max(seq, p.ID)
	}
	return fakePlatformRepo{repo}
}

type fakeClientRepo struct {
	*memoryRepo[models.Client, uint]
}

func (fakeClientRepo) UpsertRows(context.Context, []models.ClientRow) (int64, error) {
	return 0, nil
}

func newFakeClientRepo(clients ...models.Client) fakeClientRepo {
	var seq uint
	repo := &memoryRepo[models.Client, uint]{
		rows:   map[uint]models.Client{},
		idOf:   func(c *models.Client) uint { return c.ID },
		setID:  func(c *models.Client, id uint) { c.ID = id },
		less:   func(a, b uint) bool { return a < b },
		nextID: func() uint { seq++; return seq },
		apply: func(c *models.Client, v map[string]any) {
			c.Name = v["name"].(string)
			c.Email = v["email"].(string)
		},
	}
	for _, c := range clients {
		repo.rows[c.ID] = c
		seq = max(seq, c.ID)
	}
	return fakeClientRepo{repo}
}

type fakeTransactionRepo struct {
	*memoryRepo[models.Transaction, string]
	details []models.TransactionDetail
}

func (fakeTransactionRepo) UpsertRows(context.Context, []models.TransactionRow) (int64, error) {
	return 0, nil
}

func (r fakeTransactionRepo) ListDetailed(context.Context) ([]models.TransactionDetail, error) {
	return r.details, nil
}

func (r fakeTransactionRepo) ByIDDetailed(_ context.Context, id string) (*models.TransactionDetail, error) {
	for _, d := range r.details {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, nil
}

func (r fakeTransactionRepo) ListByClient(_ context.Context, clientID uint) ([]models.TransactionDetail, error) {
	var out []models.TransactionDetail
	for _, d := range r.details {
		if d.ClientID == clientID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r fakeTransactionRepo) ReferenceCounts(context.Context) (*models.TransactionReferences, error) {
	return &models.TransactionReferences{}, nil
}

func newFakeTransactionRepo(details ...models.TransactionDetail) fakeTransactionRepo {
	repo := &memoryRepo[models.Transaction, string]{
		rows:  map[string]models.Transaction{},
		idOf:  func(t *models.Transaction) string { return t.ID },
		setID: func(t *models.Transaction, id string) { t.ID = id },
		less:  func(a, b string) bool { return a < b },
		apply: func(t *models.Transaction, v map[string]any) {
			t.Amount = v["amount"].(string)
			t.Status = v["status"].(string)
		},
	}
	for _, d := range details {
		repo.rows[d.ID] = d.Transaction
	}
	return fakeTransactionRepo{memoryRepo: repo, details: details}
}

// pgError builds the error the repository layer returns for a failed statement
func pgError(code string) error {
	return &repository.DatabaseError{Op: "test", Code: code, Err: &pgconn.PgError{Code: code}}
}

var (
	_ repository.PlatformRepository    = fakePlatformRepo{}
	_ repository.ClientRepository      = fakeClientRepo{}
	_ repository.TransactionRepository = fakeTransactionRepo{}
)
