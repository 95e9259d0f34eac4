package export

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/cardexhq/cardex/internal/entity"
	"github.com/cardexhq/cardex/internal/repository"
)

func newTestRepo(t *testing.T) repository.CardRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewCardRepository(db, "sqlite", slog.Default())
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return repo
}

func TestWorkbookContainsStoredCards(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cards := []*entity.Card{
		{CardHolder: "Jane Doe", CompanyName: "Acme Corp", Email: "jane@acme.com", PinCode: "123456"},
		{CardHolder: "John Roe", CompanyName: "Globex", MobileNumber: "555-0000"},
	}
	for _, c := range cards {
		if err := repo.Append(ctx, c); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	buf, err := NewService(repo, nil).Workbook(ctx)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 cards", len(rows))
	}
	if rows[0][1] != "Cardholder" {
		t.Errorf("header col 2 = %q, want Cardholder", rows[0][1])
	}

	holders := map[string]bool{}
	for _, row := range rows[1:] {
		holders[row[1]] = true
	}
	for _, c := range cards {
		if !holders[c.CardHolder] {
			t.Errorf("card %q missing from export", c.CardHolder)
		}
	}
}

func TestWorkbookEmptyStore(t *testing.T) {
	repo := newTestRepo(t)

	buf, err := NewService(repo, nil).Workbook(context.Background())
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want header only", len(rows))
	}
}
