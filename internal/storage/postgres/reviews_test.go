package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

var reviewColumnNames = []string{"id", "user_id", "product_id", "rating", "title", "comment", "is_approved", "created_at", "updated_at"}

func reviewRow(now time.Time, id, productID int64, rating int, approved bool) *pgxmockv3.Rows {
	return pgxmockv3.NewRows(reviewColumnNames).AddRow(id, int64(7), productID, rating, "Nice", "Works", approved, now, now)
}

func TestReviewRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &reviewRepository{storage: storage}
	now := time.Now()

	review := &model.Review{UserID: 7, ProductID: 3, Rating: 5, Title: "Nice", Comment: "Works"}
	mock.ExpectQuery("INSERT INTO reviews").WithArgs(int64(7), int64(3), 5, "Nice", "Works", false).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))
	if err := repo.Create(context.Background(), review); err != nil || review.ID != 1 {
		t.Fatalf("unexpected result: %+v err=%v", review, err)
	}

	mock.ExpectQuery("INSERT INTO reviews").WillReturnError(&pgconn.PgError{Code: "23505"})
	if err := repo.Create(context.Background(), &model.Review{}); !errors.Is(err, domainErrors.ErrAlreadyReviewed) {
		t.Fatalf("expected already reviewed, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestReviewRepositoryQueries(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &reviewRepository{storage: storage}
	now := time.Now()

	mock.ExpectQuery("FROM reviews WHERE id=").WithArgs(int64(1)).WillReturnRows(reviewRow(now, 1, 3, 4, true))
	if rv, err := repo.GetByID(context.Background(), 1); err != nil || rv.Rating != 4 {
		t.Fatalf("unexpected review: %+v err=%v", rv, err)
	}

	mock.ExpectQuery("FROM reviews WHERE id=").WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM reviews WHERE product_id=").WithArgs(int64(3), true).WillReturnRows(reviewRow(now, 1, 3, 4, true))
	if list, err := repo.ListByProduct(context.Background(), 3, true); err != nil || len(list) != 1 {
		t.Fatalf("unexpected list: %v err=%v", list, err)
	}

	mock.ExpectQuery("FROM reviews WHERE user_id=").WithArgs(int64(7)).WillReturnError(errors.New("query"))
	if _, err := repo.ListByUser(context.Background(), 7); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(7)).WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(2))
	if n, err := repo.CountByUser(context.Background(), 7); err != nil || n != 2 {
		t.Fatalf("unexpected count: %d err=%v", n, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestReviewRepositoryApproveRefreshesRating(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &reviewRepository{storage: storage}
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE reviews SET is_approved=TRUE").WithArgs(int64(1)).WillReturnRows(reviewRow(now, 1, 3, 4, true))
	mock.ExpectQuery("SELECT rating FROM reviews").WithArgs(int64(3)).WillReturnRows(
		pgxmockv3.NewRows([]string{"rating"}).AddRow(5).AddRow(4).AddRow(4))
	mock.ExpectExec("UPDATE products SET rating_rate").WithArgs(4.3, 3, int64(3)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	review, err := repo.Approve(context.Background(), 1)
	if err != nil || !review.IsApproved {
		t.Fatalf("unexpected result: %+v err=%v", review, err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE reviews SET is_approved=TRUE").WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()
	if _, err := repo.Approve(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestReviewRepositoryDeleteResetsRating(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &reviewRepository{storage: storage}

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM reviews").WithArgs(int64(1)).WillReturnRows(pgxmockv3.NewRows([]string{"product_id"}).AddRow(int64(3)))
	mock.ExpectQuery("SELECT rating FROM reviews").WithArgs(int64(3)).WillReturnRows(pgxmockv3.NewRows([]string{"rating"}))
	mock.ExpectExec("UPDATE products SET rating_rate").WithArgs(0.0, 0, int64(3)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM reviews").WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()
	if err := repo.Delete(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM reviews").WithArgs(int64(3)).WillReturnRows(pgxmockv3.NewRows([]string{"product_id"}).AddRow(int64(3)))
	mock.ExpectQuery("SELECT rating FROM reviews").WithArgs(int64(3)).WillReturnError(errors.New("ratings"))
	mock.ExpectRollback()
	if err := repo.Delete(context.Background(), 3); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestReviewRepositoryListByStatus(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &reviewRepository{storage: storage}
	now := time.Now()

	mock.ExpectQuery(`FROM reviews WHERE NOT is_approved ORDER BY`).WillReturnRows(reviewRow(now, 1, 3, 2, false))
	if list, err := repo.List(context.Background(), model.ReviewStatusPending); err != nil || len(list) != 1 || list[0].IsApproved {
		t.Fatalf("unexpected pending list: %+v err=%v", list, err)
	}

	mock.ExpectQuery(`FROM reviews WHERE is_approved ORDER BY`).WillReturnRows(reviewRow(now, 2, 3, 5, true))
	if list, err := repo.List(context.Background(), model.ReviewStatusApproved); err != nil || len(list) != 1 || !list[0].IsApproved {
		t.Fatalf("unexpected approved list: %+v err=%v", list, err)
	}

	mock.ExpectQuery(`FROM reviews ORDER BY created_at DESC`).WillReturnRows(
		pgxmockv3.NewRows(reviewColumnNames).
			AddRow(int64(2), int64(7), int64(3), 5, "", "", true, now, now).
			AddRow(int64(1), int64(8), int64(3), 2, "", "", false, now, now))
	if list, err := repo.List(context.Background(), model.ReviewStatusAny); err != nil || len(list) != 2 {
		t.Fatalf("unexpected full list: %+v err=%v", list, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestReviewRepositoryUpdate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &reviewRepository{storage: storage}
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reviews WHERE id=.* FOR UPDATE").WithArgs(int64(1)).WillReturnRows(reviewRow(now, 1, 3, 2, false))
	mock.ExpectQuery("UPDATE reviews SET rating").WithArgs(4, "Nice", "Better now", int64(1)).WillReturnRows(
		pgxmockv3.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectCommit()
	review, err := repo.Update(context.Background(), 1, func(rv *model.Review) error {
		rv.Rating = 4
		rv.Comment = "Better now"
		return nil
	})
	if err != nil || review.Rating != 4 || review.Comment != "Better now" {
		t.Fatalf("unexpected result: %+v err=%v", review, err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reviews WHERE id=.* FOR UPDATE").WithArgs(int64(2)).WillReturnRows(reviewRow(now, 2, 3, 5, true))
	mock.ExpectRollback()
	_, err = repo.Update(context.Background(), 2, func(*model.Review) error { return domainErrors.ErrReviewApproved })
	if !errors.Is(err, domainErrors.ErrReviewApproved) {
		t.Fatalf("expected mutation error, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reviews WHERE id=.* FOR UPDATE").WithArgs(int64(3)).WillReturnRows(reviewRow(now, 3, 3, 5, true))
	mock.ExpectQuery("UPDATE reviews SET rating").WithArgs(1, "Nice", "Works", int64(3)).WillReturnRows(
		pgxmockv3.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectQuery("SELECT rating FROM reviews").WithArgs(int64(3)).WillReturnRows(pgxmockv3.NewRows([]string{"rating"}).AddRow(1))
	mock.ExpectExec("UPDATE products SET rating_rate").WithArgs(1.0, 1, int64(3)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	if _, err := repo.Update(context.Background(), 3, func(rv *model.Review) error { rv.Rating = 1; return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reviews WHERE id=.* FOR UPDATE").WithArgs(int64(4)).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()
	if _, err := repo.Update(context.Background(), 4, func(*model.Review) error { return nil }); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
