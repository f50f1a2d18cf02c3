package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketbay/storefront-api/internal/core/domain"
	"github.com/marketbay/storefront-api/internal/core/ports"
)

// stubCartRepo emulates the store's atomic conditional upsert with a mutex:
// the whole find-increment-or-insert runs under one lock, matching the
// single-write guarantee the real repository gets from the database.
type stubCartRepo struct {
	mu     sync.Mutex
	nextID int
	lines  map[string]*domain.CartLine
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{lines: make(map[string]*domain.CartLine)}
}

func cartKey(name, owner string) string {
	return name + "\x00" + owner
}

func (r *stubCartRepo) Upsert(_ context.Context, in ports.CartUpsert) (*domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartKey(in.Name, in.CreatedBy)
	line, ok := r.lines[key]
	if !ok {
		r.nextID++
		line = &domain.CartLine{
			ID:        strconv.Itoa(r.nextID),
			Name:      in.Name,
			CreatedBy: in.CreatedBy,
		}
		r.lines[key] = line
	}

	line.Date = in.Date
	line.PriceCents = in.PriceCents
	line.Image = in.Image
	line.OneDay = in.OneDay
	line.ThreeDay = in.ThreeDay
	line.SevenDay = in.SevenDay
	line.Quantity += in.QuantityDelta

	clone := *line
	return &clone, nil
}

func (r *stubCartRepo) ListByOwner(_ context.Context, owner string) ([]domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.CartLine
	for _, line := range r.lines {
		if line.CreatedBy == owner {
			out = append(out, *line)
		}
	}
	return out, nil
}

func (r *stubCartRepo) FindByID(_ context.Context, id string) (*domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, line := range r.lines {
		if line.ID == id {
			clone := *line
			return &clone, nil
		}
	}
	return nil, domain.ErrCartLineNotFound
}

func (r *stubCartRepo) Replace(_ context.Context, updated *domain.CartLine) (*domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, line := range r.lines {
		if line.ID == updated.ID {
			clone := *updated
			clone.Name = line.Name
			clone.CreatedBy = line.CreatedBy
			r.lines[key] = &clone
			out := clone
			return &out, nil
		}
	}
	return nil, domain.ErrCartLineNotFound
}

func (r *stubCartRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, line := range r.lines {
		if line.ID == id {
			delete(r.lines, key)
			return nil
		}
	}
	return domain.ErrCartLineNotFound
}

func int64Ptr(v int64) *int64 { return &v }

func addInput(name, owner string, qty int64) ports.AddCartItemInput {
	return ports.AddCartItemInput{
		Name:       name,
		PriceCents: int64Ptr(1999),
		Quantity:   int64Ptr(qty),
		Image:      "img.png",
		OneDay:     &ports.TierInput{PriceCents: 500},
		ThreeDay:   &ports.TierInput{PriceCents: 300},
		SevenDay:   &ports.TierInput{PriceCents: 0},
		CreatedBy:  owner,
	}
}

func TestCartService_AddCreatesLine(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), zerolog.Nop())

	line, err := svc.AddOrIncrement(context.Background(), addInput("mug", "walter", 2))
	if err != nil {
		t.Fatalf("AddOrIncrement returned error: %v", err)
	}
	if line.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", line.Quantity)
	}
	if line.PriceCents != 1999 || line.Image != "img.png" {
		t.Fatalf("metadata not applied: %+v", line)
	}
	if line.Date != line.SevenDay.Date {
		t.Fatalf("line date %q should equal seven-day date %q", line.Date, line.SevenDay.Date)
	}

	sevenDay := time.Now().AddDate(0, 0, 7).Format(deliveryDateLayout)
	if line.SevenDay.Date != sevenDay {
		t.Fatalf("expected seven-day date %q, got %q", sevenDay, line.SevenDay.Date)
	}
}

func TestCartService_DuplicateSubmissionsAccumulate(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), zerolog.Nop())

	for i := 0; i < 3; i++ {
		if _, err := svc.AddOrIncrement(context.Background(), addInput("mug", "walter", 1)); err != nil {
			t.Fatalf("submission %d failed: %v", i, err)
		}
	}

	lines, err := svc.List(context.Background(), "walter")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("duplicates must collapse to one line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", lines[0].Quantity)
	}
}

func TestCartService_ConcurrentDuplicatesConverge(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), zerolog.Nop())

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddOrIncrement(context.Background(), addInput("mug", "walter", 1)); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent submission failed: %v", err)
	}

	lines, err := svc.List(context.Background(), "walter")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != n {
		t.Fatalf("expected 1 line with quantity %d, got %+v", n, lines)
	}
}

func TestCartService_OwnersKeepSeparateLines(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), zerolog.Nop())

	if _, err := svc.AddOrIncrement(context.Background(), addInput("mug", "walter", 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddOrIncrement(context.Background(), addInput("mug", "jesse", 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	// Guest submissions aggregate separately from any named owner.
	if _, err := svc.AddOrIncrement(context.Background(), addInput("mug", "", 1)); err != nil {
		t.Fatalf("guest add failed: %v", err)
	}

	for _, owner := range []string{"walter", "jesse", ""} {
		lines, err := svc.List(context.Background(), owner)
		if err != nil {
			t.Fatalf("List(%q) returned error: %v", owner, err)
		}
		if len(lines) != 1 || lines[0].Quantity != 1 {
			t.Fatalf("owner %q: expected own line with quantity 1, got %+v", owner, lines)
		}
	}
}

func TestCartService_AddValidation(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), zerolog.Nop())

	// Missing name, price and quantity respectively.
	cases := []ports.AddCartItemInput{
		{PriceCents: int64Ptr(1), Quantity: int64Ptr(1)},
		{Name: "mug", Quantity: int64Ptr(1)},
		{Name: "mug", PriceCents: int64Ptr(1)},
	}
	for i, in := range cases {
		if _, err := svc.AddOrIncrement(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}

	// A zero quantity is a legitimate value, not a missing field.
	if _, err := svc.AddOrIncrement(context.Background(), addInput("mug", "walter", 0)); err != nil {
		t.Fatalf("zero quantity should pass validation: %v", err)
	}
}

func TestCartService_UpdateOverwritesQuantity(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), zerolog.Nop())

	line, err := svc.AddOrIncrement(context.Background(), addInput("mug", "walter", 5))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), ports.UpdateCartItemInput{
		ID:       line.ID,
		Quantity: int64Ptr(2),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Quantity != 2 {
		t.Fatalf("update must overwrite, not increment: got %d", updated.Quantity)
	}
}

func TestCartService_DeleteThenGet(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), zerolog.Nop())

	line, err := svc.AddOrIncrement(context.Background(), addInput("mug", "walter", 1))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := svc.Delete(context.Background(), line.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), line.ID); !errors.Is(err, domain.ErrCartLineNotFound) {
		t.Fatalf("expected ErrCartLineNotFound, got %v", err)
	}
}
