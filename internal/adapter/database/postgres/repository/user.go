package repository

import (
	"context"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	database "userapp/internal/adapter/database/postgres"
	"userapp/internal/core/domain"
	"userapp/internal/core/port"
	tel "userapp/internal/core/telemetry"
)

type UserRepository struct {
	db        *database.DB
	telemetry port.Telemetry
}

func NewUserRepository(db *database.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{db: db, telemetry: telemetry}
}

func scanUser(row pgx.Row) (domain.User, error) {
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

	user, err := scanUser(ur.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		return domain.User{}, database.MapError(err)
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

	rows, err := ur.db.Query(ctx, stmt, args...)

	if err != nil {
		return nil, database.MapError(err)
	}

	defer rows.Close()

	users := make([]domain.User, 0)

	for rows.Next() {
		user, err := scanUser(rows)

		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	ur.telemetry.RecordRepositoryOperation(ctx, "get_all", "users", time.Since(start), rows.Err())

	return users, rows.Err()
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	start := time.Now()

	tx, err := ur.db.Begin(ctx)

	if err != nil {
		slog.Error("Error starting transaction", "error", err)
		return domain.User{}, err
	}

	defer tx.Rollback(ctx)

	query := ur.db.QueryBuilder.Insert("users").
		Columns("name", "email", "password", "created_at", "updated_at").
		Values(user.Name, user.Email, user.Password, user.CreatedAt, user.UpdatedAt).
		Suffix("RETURNING id, name, email, password, created_at, updated_at")

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	saved, err := scanUser(tx.QueryRow(ctx, stmt, args...))

	if err != nil {
		mapped := database.MapError(err)
		ur.telemetry.RecordRepositoryOperation(ctx, "create", "users", time.Since(start), mapped)
		return domain.User{}, mapped
	}

	ur.telemetry.RecordRepositoryOperation(ctx, "create", "users", time.Since(start), nil)

	return saved, tx.Commit(ctx)
}

func (ur *UserRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) (domain.User, error) {
	start := time.Now()

	tx, err := ur.db.Begin(ctx)

	if err != nil {
		slog.Error("Error starting transaction", "error", err)
		return domain.User{}, err
	}

	defer tx.Rollback(ctx)

	query := ur.db.QueryBuilder.Update("users").
		SetMap(fields).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name, email, password, created_at, updated_at")

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	saved, err := scanUser(tx.QueryRow(ctx, stmt, args...))

	if err != nil {
		mapped := database.MapError(err)
		ur.telemetry.RecordRepositoryOperation(ctx, "update", "users", time.Since(start), mapped)
		return domain.User{}, mapped
	}

	ur.telemetry.RecordRepositoryOperation(ctx, "update", "users", time.Since(start), nil)

	return saved, tx.Commit(ctx)
}

func (ur *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	start := time.Now()

	query := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"id": id})

	stmt, args, err := query.ToSql()

	if err != nil {
		return false, err
	}

	tag, err := ur.db.Exec(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error deleting user", "error", err, "id", id)
		return false, database.MapError(err)
	}

	ur.telemetry.RecordRepositoryOperation(ctx, "delete", "users", time.Since(start), nil)

	return tag.RowsAffected() > 0, nil
}
