package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"

	"userapp/internal/adapter/database/sqlite"
	"userapp/internal/core/domain"
	"userapp/internal/core/port"
	tel "userapp/internal/core/telemetry"
)

const userColumns = "id, name, email, password, created_at, updated_at"

type UserRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewUserRepository(db *sqlite.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func scanUser(row *sql.Row) (domain.User, error) {
	var user domain.User

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	return user, err
}

func (ur *UserRepository) getBy(ctx context.Context, pred sq.Eq) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("id", "name", "email", "password", "created_at", "updated_at").
		From("users").
		Where(pred).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	user, err := scanUser(ur.db.QueryRowContext(ctx, stmt, args...))

	if err != nil {
		return domain.User{}, sqlite.MapError(err)
	}

	return user, nil
}

func (ur *UserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"id": id})
}

func (ur *UserRepository) GetByName(ctx context.Context, name string) (domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"name": name})
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"email": email})
}

func (ur *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	start := time.Now()

	query := ur.db.QueryBuilder.Select("id", "name", "email", "password", "created_at", "updated_at").
		From("users").
		OrderBy("id ASC")

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := ur.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return nil, sqlite.MapError(err)
	}

	defer rows.Close()

	users := make([]domain.User, 0)

	for rows.Next() {
		var user domain.User

		err = rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Password,
			&user.CreatedAt,
			&user.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	ur.telemetry.RecordRepositoryOperation(ctx, "get_all", "users", time.Since(start), rows.Err())

	return users, rows.Err()
}

func (ur *UserRepository) getByIDTx(ctx context.Context, tx *sql.Tx, id int64) (domain.User, error) {
	query := ur.db.QueryBuilder.Select("id", "name", "email", "password", "created_at", "updated_at").
		From("users").
		Where(sq.Eq{"id": id}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	user, err := scanUser(tx.QueryRowContext(ctx, stmt, args...))

	if err != nil {
		return domain.User{}, sqlite.MapError(err)
	}

	return user, nil
}

// Create inserts the user inside a transaction. A uniqueness violation rolls
// the whole insert back and surfaces as a domain conflict error.
func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, span := ur.telemetry.StartRepositorySpan(ctx, "create", "users", []attribute.KeyValue{
		attribute.String("user.name", user.Name),
	})

	defer span.End()

	start := time.Now()

	tx, err := ur.db.BeginTx(ctx, nil)

	if err != nil {
		slog.Error("Error starting transaction", "error", err)
		return domain.User{}, err
	}

	defer tx.Rollback()

	query := ur.db.QueryBuilder.Insert("users").
		Columns("name", "email", "password", "created_at", "updated_at").
		Values(user.Name, user.Email, user.Password, user.CreatedAt, user.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	result, err := tx.ExecContext(ctx, stmt, args...)

	if err != nil {
		mapped := sqlite.MapError(err)
		ur.telemetry.RecordRepositoryOperation(ctx, "create", "users", time.Since(start), mapped)
		return domain.User{}, mapped
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.User{}, err
	}

	saved, err := ur.getByIDTx(ctx, tx, id)

	if err != nil {
		return domain.User{}, err
	}

	ur.telemetry.RecordRepositoryOperation(ctx, "create", "users", time.Since(start), nil)

	return saved, tx.Commit()
}

// UpdateFields applies the given column map inside a transaction. It returns
// ErrUserNotFound when no row matches and rolls back on any conflict, so the
// update is all-or-nothing.
func (ur *UserRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) (domain.User, error) {
	ctx, span := ur.telemetry.StartRepositorySpan(ctx, "update", "users", []attribute.KeyValue{
		attribute.Int64("user.id", id),
	})

	defer span.End()

	start := time.Now()

	tx, err := ur.db.BeginTx(ctx, nil)

	if err != nil {
		slog.Error("Error starting transaction", "error", err)
		return domain.User{}, err
	}

	defer tx.Rollback()

	query := ur.db.QueryBuilder.Update("users").
		SetMap(fields).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id})

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	result, err := tx.ExecContext(ctx, stmt, args...)

	if err != nil {
		mapped := sqlite.MapError(err)
		ur.telemetry.RecordRepositoryOperation(ctx, "update", "users", time.Since(start), mapped)
		return domain.User{}, mapped
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return domain.User{}, err
	}

	if affected == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}

	saved, err := ur.getByIDTx(ctx, tx, id)

	if err != nil {
		return domain.User{}, err
	}

	ur.telemetry.RecordRepositoryOperation(ctx, "update", "users", time.Since(start), nil)

	return saved, tx.Commit()
}

// Delete removes the row and reports whether one existed.
func (ur *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	start := time.Now()

	query := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"id": id})

	stmt, args, err := query.ToSql()

	if err != nil {
		return false, err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error deleting user", "error", err, "id", id)
		return false, sqlite.MapError(err)
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return false, err
	}

	ur.telemetry.RecordRepositoryOperation(ctx, "delete", "users", time.Since(start), nil)

	return affected > 0, nil
}
