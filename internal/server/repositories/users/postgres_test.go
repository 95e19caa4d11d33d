package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stevegmedia/voxceleris/internal/common"
	"github.com/stevegmedia/voxceleris/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "username", "passhash", "first_name", "last_name",
		"phone", "dob", "profile_photo", "bio", "location",
		"private_account", "active_account", "created_at",
	})
}

func addUserRow(rows *sqlmock.Rows, id int64, email, username string, private, active bool) *sqlmock.Rows {
	return rows.AddRow(id, email, username, "hash", "First", "Last",
		"", "1990-01-01", "", "", "", private, active, time.Now())
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(email,\s*username,\s*passhash,.*\)\s*VALUES\s*\(\$1,.*\$12\)\s*RETURNING\s+id\s*$`

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(42))
	mock.ExpectQuery(q).
		WithArgs("alice@example.com", "alice", "hash", "", "", "", "", "", "", "", false, false).
		WillReturnRows(rows)

	u := &models.User{Email: "alice@example.com", Username: "alice", PassHash: "hash"}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 || got.Username != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Email: "a@example.com", Username: "a"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*email,\s*username,.*FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("alice").
		WillReturnRows(addUserRow(userRows(), 1, "alice@example.com", "alice", true, true))

	got, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if got.ID != 1 || got.Username != "alice" || !got.Private {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+username\s*=\s*\$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*email,\s*username,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("bob@example.com").
		WillReturnRows(addUserRow(userRows(), 2, "bob@example.com", "bob", false, false))

	got, err := repo.GetByEmail(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != 2 || got.Active {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("db err"))

	_, err := repo.GetByID(context.Background(), 1)
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetPendingVerification_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*FROM\s+users\s+LEFT\s+JOIN\s+registration_tokens.*active_account\s*=\s*FALSE.*token\s+IS\s+NULL\s*$`

	mock.ExpectQuery(q).
		WithArgs("bob@example.com").
		WillReturnRows(addUserRow(userRows(), 2, "bob@example.com", "bob", false, false))

	got, err := repo.GetPendingVerification(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("GetPendingVerification error: %v", err)
	}
	if got.ID != 2 {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetPendingVerification_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`LEFT\s+JOIN\s+registration_tokens`).
		WithArgs("bob@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetPendingVerification(context.Background(), "bob@example.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestActivate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+users\s+SET\s+active_account\s*=\s*TRUE\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Activate(context.Background(), 7); err != nil {
		t.Fatalf("Activate error: %v", err)
	}
}

func TestActivate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+active_account`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Activate(context.Background(), 7)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListPeople_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+users\.id,.*EXISTS.*is_following,.*EXISTS.*is_followed_by\s+FROM\s+users\s+WHERE\s+users\.id\s*<>\s*\$1\s+ORDER\s+BY\s+users\.username\s*$`

	rows := sqlmock.NewRows([]string{"id", "username", "profile_photo", "location", "bio", "is_following", "is_followed_by"}).
		AddRow(int64(2), "bob", "", "Riga", "", true, false).
		AddRow(int64(3), "carol", "", "", "", false, true)

	mock.ExpectQuery(q).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	people, err := repo.ListPeople(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListPeople error: %v", err)
	}
	if len(people) != 2 {
		t.Fatalf("expected 2 people, got %d", len(people))
	}
	if people[0].Username != "bob" || !people[0].IsFollowing || people[0].IsFollowedBy {
		t.Fatalf("unexpected person: %+v", people[0])
	}
	if people[1].Username != "carol" || people[1].IsFollowing || !people[1].IsFollowedBy {
		t.Fatalf("unexpected person: %+v", people[1])
	}
}

func TestListPeople_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "profile_photo", "location", "bio", "is_following", "is_followed_by"})

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+users\.id\s*<>\s*\$1`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	people, err := repo.ListPeople(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListPeople error: %v", err)
	}
	if people == nil || len(people) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", people)
	}
}
