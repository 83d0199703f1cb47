package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kitbuilder587/searchportal/internal/domain"
	pgRepo "github.com/kitbuilder587/searchportal/internal/repository/postgres"
)

var testDB *pgRepo.DB

func TestMain(m *testing.M) {
	if os.Getenv("SHORT_TESTS") == "1" {
		os.Exit(0)
	}

	ctx := context.Background()

	pgContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		panic(err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(err)
	}

	testDB, err = pgRepo.New(ctx, connStr)
	if err != nil {
		panic(err)
	}

	if err := testDB.Migrate(ctx); err != nil {
		panic(err)
	}
	// second run must be a no-op
	if err := testDB.Migrate(ctx); err != nil {
		panic(err)
	}

	code := m.Run()

	testDB.Close()
	pgContainer.Terminate(ctx)

	os.Exit(code)
}

func TestHistoryRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	repo := pgRepo.NewHistoryRepo(testDB)

	for _, q := range []string{"quantum computing", "climate", "quantum computing"} {
		if err := repo.Add(ctx, &domain.HistoryEntry{UserID: "hist-user", Query: q, Mode: domain.ModeWeb}); err != nil {
			t.Fatalf("Add(%q) error = %v", q, err)
		}
	}
	repo.Add(ctx, &domain.HistoryEntry{UserID: "other-user", Query: "climate", Mode: domain.ModeAI})

	list, err := repo.List(ctx, "hist-user", 100)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(list))
	}
	if list[0].Query != "quantum computing" {
		t.Errorf("newest entry = %q, want %q", list[0].Query, "quantum computing")
	}

	if err := repo.Delete(ctx, "other-user", list[0].ID); !errors.Is(err, domain.ErrHistoryNotFound) {
		t.Errorf("Delete() by other user error = %v, want ErrHistoryNotFound", err)
	}
	if err := repo.Delete(ctx, "hist-user", list[0].ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Clear(ctx, "hist-user"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	list, _ = repo.List(ctx, "hist-user", 100)
	if len(list) != 0 {
		t.Errorf("len(List()) after Clear = %d, want 0", len(list))
	}
	list, _ = repo.List(ctx, "other-user", 100)
	if len(list) != 1 {
		t.Errorf("Clear() removed another user's history")
	}
}

func TestSavedSearchRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	repo := pgRepo.NewSavedSearchRepo(testDB)

	saved := &domain.SavedSearch{UserID: "saved-user", Name: "ml", Query: "machine learning", Mode: domain.ModeAI}
	if err := repo.Create(ctx, saved); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if saved.ID == "" {
		t.Fatal("Create() did not set ID")
	}

	if err := repo.Rename(ctx, "saved-user", saved.ID, "deep learning"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if err := repo.Rename(ctx, "intruder", saved.ID, "mine"); !errors.Is(err, domain.ErrSavedNotFound) {
		t.Errorf("Rename() by other user error = %v, want ErrSavedNotFound", err)
	}

	list, err := repo.List(ctx, "saved-user")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].Name != "deep learning" || list[0].Mode != domain.ModeAI {
		t.Errorf("List() = %+v", list)
	}

	if err := repo.Delete(ctx, "saved-user", saved.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, "saved-user", saved.ID); !errors.Is(err, domain.ErrSavedNotFound) {
		t.Errorf("second Delete() error = %v, want ErrSavedNotFound", err)
	}
}

func TestReadingListRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	repo := pgRepo.NewReadingListRepo(testDB)

	item := &domain.ReadingItem{
		UserID:  "reader",
		PaperID: "arxiv-2401.00001",
		Title:   "Attention Is Still All You Need",
		Authors: []string{"A. Author", "B. Author"},
		URL:     "https://arxiv.org/abs/2401.00001",
		Source:  domain.PaperSourceArxiv,
	}
	if err := repo.Add(ctx, item); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	dup := *item
	if err := repo.Add(ctx, &dup); !errors.Is(err, domain.ErrDuplicateEntry) {
		t.Errorf("duplicate Add() error = %v, want ErrDuplicateEntry", err)
	}

	read := true
	color := "green"
	got, err := repo.Update(ctx, "reader", item.PaperID, domain.ReadingUpdate{IsRead: &read, HighlightColor: &color})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !got.IsRead || got.HighlightColor != "green" || len(got.Authors) != 2 {
		t.Errorf("Update() = %+v", got)
	}

	if _, err := repo.Update(ctx, "reader", "missing", domain.ReadingUpdate{IsRead: &read}); !errors.Is(err, domain.ErrReadingNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrReadingNotFound", err)
	}

	list, err := repo.List(ctx, "reader")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].Title != item.Title {
		t.Errorf("List() = %+v", list)
	}

	if err := repo.Delete(ctx, "reader", item.PaperID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, "reader", item.PaperID); !errors.Is(err, domain.ErrReadingNotFound) {
		t.Errorf("second Delete() error = %v, want ErrReadingNotFound", err)
	}
}
