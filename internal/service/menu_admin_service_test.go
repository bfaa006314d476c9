package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kantin-next/internal/backend"
	"github.com/kantin-next/internal/constants"
	"github.com/kantin-next/internal/models"
)

type menuBackendStub struct {
	created backend.MenuInput
	deleted uint
}

func (s *menuBackendStub) ListMenus(context.Context) ([]backend.Menu, error) { return nil, nil }

func (s *menuBackendStub) CreateMenu(_ context.Context, input backend.MenuInput) (*backend.Menu, error) {
	s.created = input
	return &backend.Menu{MenuID: 9, NamaMenu: input.NamaMenu, Status: input.Status}, nil
}

func (s *menuBackendStub) UpdateMenu(_ context.Context, id uint, input backend.MenuInput) (*backend.Menu, error) {
	return &backend.Menu{MenuID: id, NamaMenu: input.NamaMenu}, nil
}

func (s *menuBackendStub) DeleteMenu(_ context.Context, id uint) error {
	s.deleted = id
	return nil
}

func (s *menuBackendStub) ListKategori(context.Context) ([]backend.Kategori, error) { return nil, nil }

func (s *menuBackendStub) CreateKategori(_ context.Context, input backend.KategoriInput) (*backend.Kategori, error) {
	return &backend.Kategori{KategoriID: 3, NamaKategori: input.NamaKategori}, nil
}

type invalidatorStub struct {
	calls int
}

func (s *invalidatorStub) Invalidate(context.Context) { s.calls++ }

func TestMenuAdminServiceCreateNormalizesAndInvalidates(t *testing.T) {
	stub := &menuBackendStub{}
	inv := &invalidatorStub{}
	svc := NewMenuAdminService(stub, inv)

	menu, err := svc.Create(context.Background(), backend.MenuInput{
		KategoriID: 1, NamaMenu: " Soto Ayam ", Harga: models.NewMoneyFromInt(12000),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if menu.MenuID != 9 || stub.created.NamaMenu != "Soto Ayam" || stub.created.Status != constants.AvailabilityInStock {
		t.Fatalf("unexpected create input: %+v", stub.created)
	}
	if inv.calls != 1 {
		t.Fatalf("expected catalog invalidation, got %d", inv.calls)
	}
}

func TestMenuAdminServiceRejectsInvalidInput(t *testing.T) {
	inv := &invalidatorStub{}
	svc := NewMenuAdminService(&menuBackendStub{}, inv)
	ctx := context.Background()
	cases := []backend.MenuInput{
		{KategoriID: 1, NamaMenu: "", Harga: models.NewMoneyFromInt(1000)},
		{KategoriID: 0, NamaMenu: "Bakso", Harga: models.NewMoneyFromInt(1000)},
		{KategoriID: 1, NamaMenu: "Bakso", Harga: models.NewMoneyFromInt(-1)},
		{KategoriID: 1, NamaMenu: "Bakso", Harga: models.NewMoneyFromInt(1000), Status: "tersedia"},
	}
	for i, input := range cases {
		if _, err := svc.Create(ctx, input); !errors.Is(err, ErrMenuInputInvalid) {
			t.Fatalf("case %d: expected ErrMenuInputInvalid, got %v", i, err)
		}
	}
	if err := svc.Delete(ctx, 0); !errors.Is(err, ErrMenuInputInvalid) {
		t.Fatalf("expected ErrMenuInputInvalid for zero id, got %v", err)
	}
	if _, err := svc.CreateCategory(ctx, backend.KategoriInput{NamaKategori: " "}); !errors.Is(err, ErrCategoryInvalid) {
		t.Fatalf("expected ErrCategoryInvalid, got %v", err)
	}
	if inv.calls != 0 {
		t.Fatalf("rejected writes must not invalidate cache")
	}
}

func TestMenuAdminServiceDeleteInvalidates(t *testing.T) {
	stub := &menuBackendStub{}
	inv := &invalidatorStub{}
	svc := NewMenuAdminService(stub, inv)
	if err := svc.Delete(context.Background(), 4); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if stub.deleted != 4 || inv.calls != 1 {
		t.Fatalf("expected delete and invalidation, got deleted=%d calls=%d", stub.deleted, inv.calls)
	}
}
