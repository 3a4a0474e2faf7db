package services

import (
	"testing"

	"inkwell/internal/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCreate(t *testing.T) {
	mock := newMockDB(t)
	svc := NewCommentService()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE "posts"\."id" = \$1`).
		WithArgs(5, 1).
		WillReturnRows(postRows(5, 1, "A", 0))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(7, 1).
		WillReturnRows(userRows(7, "bob", "bob@example.com", "hash"))
	mock.ExpectQuery(`INSERT INTO "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	comment, err := svc.Create(CommentRequest{PostID: 5, Message: "hello"}, 7)
	require.NoError(t, err)

	assert.Equal(t, uint(3), comment.ID)
	assert.Equal(t, uint(5), comment.PostID)
	assert.Equal(t, uint(7), comment.UserID)
	assert.Equal(t, "bob", comment.Username)
	assert.Equal(t, "hello", comment.Message)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentCreateUnknownPost(t *testing.T) {
	mock := newMockDB(t)
	svc := NewCommentService()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE "posts"\."id" = \$1`).
		WithArgs(404, 1).
		WillReturnRows(emptyPostRows())
	mock.ExpectRollback()

	_, err := svc.Create(CommentRequest{PostID: 404, Message: "hello"}, 7)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCommentCreateUnknownUser(t *testing.T) {
	mock := newMockDB(t)
	svc := NewCommentService()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE "posts"\."id" = \$1`).
		WithArgs(5, 1).
		WillReturnRows(postRows(5, 1, "A", 0))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(99, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Create(CommentRequest{PostID: 5, Message: "hello"}, 99)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCommentCreateStripsMarkup(t *testing.T) {
	mock := newMockDB(t)
	svc := NewCommentService()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE "posts"\."id" = \$1`).
		WillReturnRows(postRows(5, 1, "A", 0))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WillReturnRows(userRows(7, "bob", "bob@example.com", "hash"))
	mock.ExpectQuery(`INSERT INTO "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	comment, err := svc.Create(CommentRequest{PostID: 5, Message: `<script>x</script>hi`}, 7)
	require.NoError(t, err)
	assert.Equal(t, "hi", comment.Message)
}

func TestCommentUpdateByNonAuthorForbidden(t *testing.T) {
	mock := newMockDB(t)
	svc := NewCommentService()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "comments" WHERE "comments"\."id" = \$1`).
		WithArgs(3, 1).
		WillReturnRows(commentRows(3, 5, 7, "hello"))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WillReturnRows(userRows(7, "bob", "bob@example.com", "hash"))
	mock.ExpectRollback()

	_, err := svc.Update(3, CommentRequest{Message: "edited"}, 9)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentUpdateByAuthor(t *testing.T) {
	mock := newMockDB(t)
	svc := NewCommentService()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "comments" WHERE "comments"\."id" = \$1`).
		WithArgs(3, 1).
		WillReturnRows(commentRows(3, 5, 7, "hello"))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WillReturnRows(userRows(7, "bob", "bob@example.com", "hash"))
	mock.ExpectExec(`UPDATE "comments" SET "message"=\$1 WHERE "id" = \$2`).
		WithArgs("edited", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	comment, err := svc.Update(3, CommentRequest{Message: "edited"}, 7)
	require.NoError(t, err)
	assert.Equal(t, "edited", comment.Message)
}

func TestCommentDeleteByNonAuthorForbidden(t *testing.T) {
	mock := newMockDB(t)
	svc := NewCommentService()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "comments" WHERE "comments"\."id" = \$1`).
		WithArgs(3, 1).
		WillReturnRows(commentRows(3, 5, 7, "hello"))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WillReturnRows(userRows(7, "bob", "bob@example.com", "hash"))
	mock.ExpectRollback()

	err := svc.Delete(3, 9)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestCommentDeleteByAuthor(t *testing.T) {
	mock := newMockDB(t)
	svc := NewCommentService()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "comments" WHERE "comments"\."id" = \$1`).
		WithArgs(3, 1).
		WillReturnRows(commentRows(3, 5, 7, "hello"))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WillReturnRows(userRows(7, "bob", "bob@example.com", "hash"))
	mock.ExpectExec(`DELETE FROM "comments" WHERE "comments"\."id" = \$1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(3, 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentPageByPostID(t *testing.T) {
	mock := newMockDB(t)
	svc := NewCommentService()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "comments" WHERE post_id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`SELECT \* FROM "comments" WHERE post_id = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(5, 10, 10).
		WillReturnRows(commentRows(21, 5, 7, "last one"))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WillReturnRows(userRows(7, "bob", "bob@example.com", "hash"))

	page, err := svc.GetPageByPostID(5, 2, 10, "createdAt,desc")
	require.NoError(t, err)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, int64(11), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "last one", page.Content[0].Message)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentDeleteNotFound(t *testing.T) {
	mock := newMockDB(t)
	svc := NewCommentService()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "comments" WHERE "comments"\."id" = \$1`).
		WithArgs(404, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := svc.Delete(404, 7)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCommentPageSortFallback(t *testing.T) {
	assert.Equal(t, "created_at ASC", sortOrder("createdAt,asc"))
	assert.Equal(t, "created_at DESC", sortOrder("createdAt,desc"))
	assert.Equal(t, "created_at DESC", sortOrder("likes;DROP TABLE comments"))
	assert.Equal(t, "created_at DESC", sortOrder(""))
}
