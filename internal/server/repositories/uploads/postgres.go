package uploads

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/dbx"
	"github.com/dmitrijs2005/gallery/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, upload *models.Upload) error {
	query :=
		`INSERT INTO uploads (owner, filename, title, artist, url, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		upload.Owner, upload.Filename, upload.Title, upload.Artist, upload.Link, upload.UploadDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, owner string) ([]models.Upload, error) {
	query :=
		`SELECT owner, filename, title, artist, url, uploaded_at FROM uploads
		 WHERE owner = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	res := make([]models.Upload, 0)
	for rows.Next() {
		var u models.Upload
		if err := rows.Scan(&u.Owner, &u.Filename, &u.Title, &u.Artist, &u.Link, &u.UploadDate); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		u.UploadDate = u.UploadDate.UTC()
		res = append(res, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return res, nil
}
