package clients

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	clients map[int64]*Client
	nextID  int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{clients: make(map[int64]*Client)}
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memoryRepo) List(ctx context.Context, req ListClientsRequest) ([]Client, int, error) {
	var matched []Client
	for _, c := range r.clients {
		if req.Search != nil && *req.Search != "" {
			needle := strings.ToLower(*req.Search)
			haystack := strings.ToLower(c.CompanyName + " " + c.ContactPerson + " " + c.Email)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		matched = append(matched, *c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CompanyName < matched[j].CompanyName })

	total := len(matched)
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	if req.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[req.Offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *memoryRepo) Create(ctx context.Context, client Client) (int64, error) {
	r.nextID++
	client.ID = r.nextID
	r.clients[client.ID] = &client
	return client.ID, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	c, ok := r.clients[id]
	if !ok {
		return ErrNotFound
	}
	set := func(dst *string, col string) {
		if v, ok := updates[col]; ok {
			*dst = v.(string)
		}
	}
	set(&c.CompanyName, "company_name")
	set(&c.ContactPerson, "contact_person")
	set(&c.Email, "email")
	set(&c.Street, "street")
	set(&c.City, "city")
	set(&c.PostalCode, "postal_code")
	set(&c.Country, "country")
	if v, ok := updates["phone"]; ok {
		s := v.(string)
		c.Phone = &s
	}
	if v, ok := updates["tax_id"]; ok {
		s := v.(string)
		c.TaxID = &s
	}
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.clients[id]; !ok {
		return ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

func (r *memoryRepo) Count(ctx context.Context) (int, error) {
	return len(r.clients), nil
}

func strPtr(s string) *string { return &s }

func newClientRequest(company string) CreateClientRequest {
	return CreateClientRequest{
		CompanyName:   company,
		ContactPerson: "Max Muster",
		Email:         strings.ToLower(strings.ReplaceAll(company, " ", "")) + "@example.de",
		Street:        "Hauptstraße 1",
		City:          "Berlin",
		PostalCode:    "10115",
		Country:       "Deutschland",
	}
}

func TestCreateAndGet(t *testing.T) {
	svc := NewService(newMemoryRepo())

	req := newClientRequest("Muster GmbH")
	req.TaxID = strPtr("DE123456789")
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Muster GmbH", created.CompanyName)
	require.NotNil(t, created.TaxID)
	require.Equal(t, "DE123456789", *created.TaxID)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Email, got.Email)
}

func TestGetMissing(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePartial(t *testing.T) {
	svc := NewService(newMemoryRepo())

	created, err := svc.Create(context.Background(), newClientRequest("Muster GmbH"))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateClientRequest{
		ContactPerson: strPtr("Erika Beispiel"),
		Phone:         strPtr("+49 30 1234567"),
	})
	require.NoError(t, err)
	require.Equal(t, "Erika Beispiel", updated.ContactPerson)
	require.NotNil(t, updated.Phone)
	require.Equal(t, "+49 30 1234567", *updated.Phone)
	// Untouched fields keep their values.
	require.Equal(t, "Muster GmbH", updated.CompanyName)
	require.Equal(t, created.Email, updated.Email)
}

func TestUpdateEmptyRequestReturnsCurrentState(t *testing.T) {
	svc := NewService(newMemoryRepo())

	created, err := svc.Create(context.Background(), newClientRequest("Muster GmbH"))
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), created.ID, UpdateClientRequest{})
	require.NoError(t, err)
	require.Equal(t, created.CompanyName, got.CompanyName)
}

func TestListSearchAndPagination(t *testing.T) {
	svc := NewService(newMemoryRepo())

	for _, name := range []string{"Alpha Web GmbH", "Beta Design UG", "Gamma Media KG"} {
		_, err := svc.Create(context.Background(), newClientRequest(name))
		require.NoError(t, err)
	}

	all, total, err := svc.List(context.Background(), ListClientsRequest{})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, all, 3)
	require.Equal(t, "Alpha Web GmbH", all[0].CompanyName)

	page, total, err := svc.List(context.Background(), ListClientsRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, page, 1)
	require.Equal(t, "Gamma Media KG", page[0].CompanyName)

	found, total, err := svc.List(context.Background(), ListClientsRequest{Search: strPtr("beta")})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, found, 1)
	require.Equal(t, "Beta Design UG", found[0].CompanyName)
}

func TestDelete(t *testing.T) {
	svc := NewService(newMemoryRepo())

	created, err := svc.Create(context.Background(), newClientRequest("Muster GmbH"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrNotFound)
}
