package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noteandmore/api/internal/domain/entities"
	"github.com/noteandmore/api/internal/ports"
)

// In-memory repository fakes backing the service tests.

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*entities.Task
	order []uuid.UUID
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*entities.Task)}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *task
	r.tasks[task.ID] = &cp
	r.order = append(r.order, task.ID)
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	cp := *task
	return &cp, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeTaskRepo) matching(filter ports.TaskFilter) []*entities.Task {
	var out []*entities.Task
	for _, id := range r.order {
		task := r.tasks[id]
		if task.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		cp := *task
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *fakeTaskRepo) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := r.matching(filter)
	start := filter.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (r *fakeTaskRepo) Count(ctx context.Context, filter ports.TaskFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

func (r *fakeTaskRepo) Stats(ctx context.Context, userID uuid.UUID, now time.Time) (*entities.TaskStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &entities.TaskStats{}
	for _, task := range r.tasks {
		if task.UserID != userID {
			continue
		}
		stats.Total++
		switch task.Status {
		case entities.TaskStatusPending:
			stats.Pending++
		case entities.TaskStatusInProgress:
			stats.InProgress++
		case entities.TaskStatusCompleted:
			stats.Completed++
		case entities.TaskStatusCancelled:
			stats.Cancelled++
		}
		if task.Overdue(now) {
			stats.Overdue++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats, nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*entities.Category
	usage      map[uuid.UUID]int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: make(map[uuid.UUID]*entities.Category),
		usage:      make(map[uuid.UUID]int),
	}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entities.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, entities.ErrCategoryNotFound
	}
	cp := *category
	return &cp, nil
}

func (r *fakeCategoryRepo) GetByNameAndType(ctx context.Context, userID uuid.UUID, name string, ctype entities.CategoryType) (*entities.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, category := range r.categories {
		sameOwner := category.UserID == nil || *category.UserID == userID
		if sameOwner && category.Name == name && category.Type == ctype {
			cp := *category
			return &cp, nil
		}
	}
	return nil, entities.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *entities.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return entities.ErrCategoryNotFound
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return entities.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) List(ctx context.Context, filter ports.CategoryFilter) ([]*entities.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Category
	for _, category := range r.categories {
		if category.UserID != nil && *category.UserID != filter.UserID {
			continue
		}
		if filter.Type != nil && category.Type != *filter.Type {
			continue
		}
		cp := *category
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *fakeCategoryRepo) Count(ctx context.Context, filter ports.CategoryFilter) (int64, error) {
	list, _ := r.List(ctx, filter)
	return int64(len(list)), nil
}

func (r *fakeCategoryRepo) UpdateSortOrder(ctx context.Context, userID uuid.UUID, orders map[uuid.UUID]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, order := range orders {
		category, ok := r.categories[id]
		if !ok || category.UserID == nil || *category.UserID != userID {
			continue
		}
		category.SortOrder = order
	}
	return nil
}

func (r *fakeCategoryRepo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usage[id]++
	if category, ok := r.categories[id]; ok {
		category.UsageCount++
	}
	return nil
}

type fakeQuoteRepo struct {
	mu     sync.Mutex
	quotes map[uuid.UUID]*entities.Quote
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{quotes: make(map[uuid.UUID]*entities.Quote)}
}

func (r *fakeQuoteRepo) Create(ctx context.Context, quote *entities.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *quote
	r.quotes[quote.ID] = &cp
	return nil
}

func (r *fakeQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	quote, ok := r.quotes[id]
	if !ok {
		return nil, entities.ErrQuoteNotFound
	}
	cp := *quote
	return &cp, nil
}

func (r *fakeQuoteRepo) Update(ctx context.Context, quote *entities.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quotes[quote.ID]; !ok {
		return entities.ErrQuoteNotFound
	}
	cp := *quote
	r.quotes[quote.ID] = &cp
	return nil
}

func (r *fakeQuoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quotes[id]; !ok {
		return entities.ErrQuoteNotFound
	}
	delete(r.quotes, id)
	return nil
}

func (r *fakeQuoteRepo) List(ctx context.Context, filter ports.QuoteFilter) ([]*entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Quote
	for _, quote := range r.quotes {
		if !quote.VisibleTo(filter.UserID) {
			continue
		}
		if filter.FavoritesOnly && !quote.IsFavorite {
			continue
		}
		cp := *quote
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeQuoteRepo) Count(ctx context.Context, filter ports.QuoteFilter) (int64, error) {
	list, _ := r.List(ctx, filter)
	return int64(len(list)), nil
}

func (r *fakeQuoteRepo) Random(ctx context.Context, userID uuid.UUID, language *entities.Language) (*entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, quote := range r.quotes {
		if !quote.VisibleTo(userID) {
			continue
		}
		if language != nil && quote.Language != *language {
			continue
		}
		cp := *quote
		return &cp, nil
	}
	return nil, entities.ErrQuoteNotFound
}

func (r *fakeQuoteRepo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	quote, ok := r.quotes[id]
	if !ok {
		return entities.ErrQuoteNotFound
	}
	quote.UsageCount++
	return nil
}

type fakeShoppingRepo struct {
	mu    sync.Mutex
	lists map[uuid.UUID]*entities.ShoppingList
}

func newFakeShoppingRepo() *fakeShoppingRepo {
	return &fakeShoppingRepo{lists: make(map[uuid.UUID]*entities.ShoppingList)}
}

func (r *fakeShoppingRepo) Create(ctx context.Context, list *entities.ShoppingList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *list
	cp.Items = append(entities.ShoppingItems(nil), list.Items...)
	r.lists[list.ID] = &cp
	return nil
}

func (r *fakeShoppingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.ShoppingList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list, ok := r.lists[id]
	if !ok {
		return nil, entities.ErrShoppingListNotFound
	}
	cp := *list
	cp.Items = append(entities.ShoppingItems(nil), list.Items...)
	return &cp, nil
}

func (r *fakeShoppingRepo) Update(ctx context.Context, list *entities.ShoppingList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lists[list.ID]; !ok {
		return entities.ErrShoppingListNotFound
	}
	cp := *list
	cp.Items = append(entities.ShoppingItems(nil), list.Items...)
	r.lists[list.ID] = &cp
	return nil
}

func (r *fakeShoppingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lists[id]; !ok {
		return entities.ErrShoppingListNotFound
	}
	delete(r.lists, id)
	return nil
}

func (r *fakeShoppingRepo) List(ctx context.Context, filter ports.ShoppingListFilter) ([]*entities.ShoppingList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.ShoppingList
	for _, list := range r.lists {
		if list.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && list.Status != *filter.Status {
			continue
		}
		cp := *list
		cp.Items = append(entities.ShoppingItems(nil), list.Items...)
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeShoppingRepo) Count(ctx context.Context, filter ports.ShoppingListFilter) (int64, error) {
	list, _ := r.List(ctx, filter)
	return int64(len(list)), nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entities.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return entities.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return entities.ErrUserNotFound
	}
	user.LastLoginAt = &at
	return nil
}

type fakeAuthRepo struct {
	mu     sync.Mutex
	tokens map[string]*ports.RefreshToken
	nextID int
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{tokens: make(map[string]*ports.RefreshToken)}
}

func (r *fakeAuthRepo) CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.tokens[tokenHash] = &ports.RefreshToken{
		ID:        r.nextID,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *fakeAuthRepo) GetRefreshToken(ctx context.Context, tokenHash string) (*ports.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	cp := *token
	return &cp, nil
}

func (r *fakeAuthRepo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil
	}
	now := time.Now()
	token.RevokedAt = &now
	return nil
}

func (r *fakeAuthRepo) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, token := range r.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeAuthRepo) CleanupExpiredTokens(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, token := range r.tokens {
		if token.IsExpired() {
			delete(r.tokens, hash)
		}
	}
	return nil
}

// fakeCache mirrors the JSON round-trip behavior of the Redis adapter.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	c.sets++
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	data, ok := c.entries[key]
	if !ok {
		return ports.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.deletes++
	return nil
}

func (c *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
	return nil
}
