package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
	writes int
	err    error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[int64]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = cloneUser(u)
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Phone == u.Phone {
			return nil, domain.ErrPhoneTaken
		}
	}
	r.writes++
	r.nextID++
	c := cloneUser(u)
	c.ID = r.nextID
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Phone == phone {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, f ports.UserFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	search := strings.ToLower(f.Search)
	for _, u := range r.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(u.Name), search) && !strings.Contains(u.Phone, search) {
			continue
		}
		matched = append(matched, cloneUser(u))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, upd ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	r.writes++
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	r.writes++
	delete(r.users, id)
	return nil
}

type stubCategoryRepo struct {
	categories map[int64]*domain.Category
	subs       map[int64]*domain.SubCategory
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{
		categories: map[int64]*domain.Category{
			1: {ID: 1, Name: "Science"},
			2: {ID: 2, Name: "Mathematics"},
		},
		subs: map[int64]*domain.SubCategory{
			10: {ID: 10, Name: "Space", CategoryID: 1},
			99: {ID: 99, Name: "Algebra", CategoryID: 2},
		},
	}
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCategoryRepo) FindSubCategory(_ context.Context, subID, catID int64) (*domain.SubCategory, error) {
	s, ok := r.subs[subID]
	if !ok || s.CategoryID != catID {
		return nil, domain.ErrSubCategoryNotFound
	}
	return s, nil
}

func (r *stubCategoryRepo) ListSubCategories(_ context.Context, catID int64) ([]*domain.SubCategory, error) {
	var out []*domain.SubCategory
	for _, s := range r.subs {
		if s.CategoryID == catID {
			out = append(out, s)
		}
	}
	return out, nil
}

type stubPromptRepo struct {
	prompts   []*domain.Prompt
	createErr error
}

func (r *stubPromptRepo) Create(_ context.Context, p *domain.Prompt) (*domain.Prompt, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	c := *p
	c.ID = int64(len(r.prompts) + 1)
	r.prompts = append(r.prompts, &c)
	out := c
	return &out, nil
}

func (r *stubPromptRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Prompt, error) {
	var out []*domain.Prompt
	for i := len(r.prompts) - 1; i >= 0; i-- {
		if r.prompts[i].UserID == userID {
			out = append(out, r.prompts[i])
		}
	}
	return out, nil
}

func (r *stubPromptRepo) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	kept := r.prompts[:0]
	var n int64
	for _, p := range r.prompts {
		if p.UserID == userID {
			n++
			continue
		}
		kept = append(kept, p)
	}
	r.prompts = kept
	return n, nil
}

type stubGenerator struct {
	out   string
	err   error
	calls int
}

func (g *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.calls++
	return g.out, g.err
}

type stubTokens struct{}

func (stubTokens) Issue(u *domain.User) (string, error) {
	if u.ID == 0 {
		return "", errors.New("no id")
	}
	return "token-" + string(u.Role), nil
}

// plainHasher avoids bcrypt cost in tests and counts hash calls.
type plainHasher struct {
	hashes int
}

func (h *plainHasher) Hash(pw string) (string, error) {
	h.hashes++
	return "hashed:" + pw, nil
}

func (h *plainHasher) Compare(hash, pw string) error {
	if hash != "hashed:"+pw {
		return errors.New("mismatch")
	}
	return nil
}
