package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type methodRow struct {
	ID   int16  `db:"payment_method_id"`
	Name string `db:"payment_method_name"`
}

type categoryRow struct {
	ID   int16  `db:"payment_category_id"`
	Name string `db:"payment_category_name"`
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) MethodByID(ctx context.Context, id int16) (*Method, error) {
	query := psql.Select(
		sm.Columns("payment_method_id", "payment_method_name"),
		sm.From("payment_methods"),
		sm.Where(psql.Quote("payment_method_id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[methodRow]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &Method{ID: row.ID, Name: row.Name}, nil
}

func (r *Reader) CategoryByID(ctx context.Context, id int16) (*Category, error) {
	query := psql.Select(
		sm.Columns("payment_category_id", "payment_category_name"),
		sm.From("payment_categories"),
		sm.Where(psql.Quote("payment_category_id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[categoryRow]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &Category{ID: row.ID, Name: row.Name}, nil
}

func (r *Reader) ListMethods(ctx context.Context) ([]*Method, error) {
	query := psql.Select(
		sm.Columns("payment_method_id", "payment_method_name"),
		sm.From("payment_methods"),
		sm.OrderBy("payment_method_id").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[methodRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*Method, len(rows))
	for i, row := range rows {
		result[i] = &Method{ID: row.ID, Name: row.Name}
	}
	return result, nil
}

func (r *Reader) ListCategories(ctx context.Context) ([]*Category, error) {
	query := psql.Select(
		sm.Columns("payment_category_id", "payment_category_name"),
		sm.From("payment_categories"),
		sm.OrderBy("payment_category_id").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[categoryRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*Category, len(rows))
	for i, row := range rows {
		result[i] = &Category{ID: row.ID, Name: row.Name}
	}
	return result, nil
}
