package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*PGSkinTypeRepo, *PGProductRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGSkinTypeRepo{DB: db}, &PGProductRepo{DB: db}, mock
}

func TestPGSkinTypeFindByNameContains(t *testing.T) {
	repo, _, mock := newMock(t)
	mock.ExpectQuery("SELECT id, name FROM skin_types").
		WithArgs("oil").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("skin-oily", "Oily"))

	st, err := repo.FindByNameContains(context.Background(), " oil ")
	if err != nil {
		t.Fatalf("FindByNameContains: %v", err)
	}
	if st.ID != "skin-oily" || st.Name != "Oily" {
		t.Fatalf("unexpected skin type %+v", st)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGSkinTypeFindEscapesWildcards(t *testing.T) {
	repo, _, mock := newMock(t)
	mock.ExpectQuery("SELECT id, name FROM skin_types").
		WithArgs(`50\%\_off`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := repo.FindByNameContains(context.Background(), "50%_off")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGSkinTypeAnyEmpty(t *testing.T) {
	repo, _, mock := newMock(t)
	mock.ExpectQuery("SELECT id, name FROM skin_types").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	if _, err := repo.Any(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGSkinTypeIsEmpty(t *testing.T) {
	repo, _, mock := newMock(t)
	mock.ExpectQuery("SELECT NOT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"not_exists"}).AddRow(true))

	empty, err := repo.IsEmpty(context.Background())
	if err != nil {
		t.Fatalf("IsEmpty: %v", err)
	}
	if !empty {
		t.Fatalf("expected empty catalog")
	}
}

func TestPGSkinTypeList(t *testing.T) {
	repo, _, mock := newMock(t)
	mock.ExpectQuery("SELECT id, name FROM skin_types").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("skin-dry", "Dry").
			AddRow("skin-oily", "Oily"))

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "skin-dry" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestPGProductFindBySkinTypeGroupsImages(t *testing.T) {
	_, repo, mock := newMock(t)
	cols := []string{"id", "name", "description", "price", "cid", "cname", "bid", "bname", "url", "is_thumbnail", "sort_order"}
	mock.ExpectQuery("WITH picked AS").
		WithArgs("skin-oily", 10).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("p1", "Gel", "desc", 12.5, "c1", "Acne treatment", "b1", "Brand", "https://img/1a", true, 0).
			AddRow("p1", "Gel", "desc", 12.5, "c1", "Acne treatment", "b1", "Brand", "https://img/1b", false, 1).
			AddRow("p2", "Cream", "desc", 20.0, "c2", "Moisturizer", "b1", "Brand", nil, nil, nil))

	products, err := repo.FindBySkinType(context.Background(), "skin-oily", 10)
	if err != nil {
		t.Fatalf("FindBySkinType: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "p1" || len(products[0].Images) != 2 {
		t.Fatalf("unexpected first product %+v", products[0])
	}
	if products[0].Thumbnail() != "https://img/1a" {
		t.Fatalf("unexpected thumbnail %q", products[0].Thumbnail())
	}
	if products[1].ID != "p2" || len(products[1].Images) != 0 || products[1].Images == nil {
		t.Fatalf("unexpected second product %+v", products[1])
	}
	if products[1].Category.Name != "Moisturizer" {
		t.Fatalf("unexpected category %+v", products[1].Category)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGProductFindBySkinTypeQueryError(t *testing.T) {
	_, repo, mock := newMock(t)
	mock.ExpectQuery("WITH picked AS").WillReturnError(errors.New("connection reset"))

	if _, err := repo.FindBySkinType(context.Background(), "skin-oily", 10); err == nil {
		t.Fatalf("expected error")
	}
}
