package store

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ficct.app/scrum/core/db/sqlc"
	"ficct.app/scrum/internal/model"
)

// captureDB records the statement and bind arguments handed to the
// query layer and answers QueryRow with a canned result row.
type captureDB struct {
	sql  string
	args []any
	row  scanRow
}

func (c *captureDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.sql, c.args = sql, args
	return pgconn.CommandTag{}, nil
}

func (c *captureDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.sql, c.args = sql, args
	return nil, pgx.ErrNoRows
}

func (c *captureDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	c.sql, c.args = sql, args
	return c.row
}

type scanRow []any

func (r scanRow) Scan(dest ...any) error {
	if len(dest) != len(r) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r))
	}
	for i, d := range dest {
		v := reflect.ValueOf(d).Elem()
		if r[i] == nil {
			v.Set(reflect.Zero(v.Type()))
			continue
		}
		v.Set(reflect.ValueOf(r[i]))
	}
	return nil
}

var _ = Describe("issueStore", func() {
	var (
		ctx context.Context
		db  *captureDB
		st  IssueStore
	)

	now := pgtype.Timestamptz{Time: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC), Valid: true}

	BeforeEach(func() {
		ctx = context.Background()
		db = &captureDB{}
		st = newIssueStore(sqlc.New(db))
	})

	Describe("Update", func() {
		BeforeEach(func() {
			// RETURNING row, column order matches the issues table.
			db.row = scanRow{
				int64(9), int64(100), int64(11), int64(2), nil, nil, int64(7),
				"Persisted title", "persisted body", "P2", nil, int64(5),
				nil, nil, nil, true, int32(4), now, now, pgtype.Timestamptz{}, false,
			}
		})

		It("binds every mutable column, including issue type and rank", func() {
			issue := &model.Issue{
				ID:          9,
				ProjectID:   100,
				IssueTypeID: 11,
				StatusID:    2,
				KeyNumber:   7,
				Title:       "Persisted title",
				Description: "persisted body",
				Priority:    model.PriorityP2,
				ReporterID:  5,
				IsBlocked:   true,
				Rank:        4,
			}

			Expect(st.Update(ctx, issue)).To(Succeed())

			Expect(db.sql).To(ContainSubstring("issue_type_id = $10"))
			Expect(db.sql).To(ContainSubstring("rank = $11"))
			Expect(db.args).To(HaveLen(11))
			Expect(db.args[9]).To(Equal(int64(11)))
			Expect(db.args[10]).To(Equal(int32(4)))
		})

		It("refreshes the model from the returned row", func() {
			issue := &model.Issue{ID: 9, IssueTypeID: 11, Title: "stale", Priority: model.PriorityP2, Rank: 4}

			Expect(st.Update(ctx, issue)).To(Succeed())

			Expect(issue.Title).To(Equal("Persisted title"))
			Expect(issue.UpdatedAt).To(Equal(now.Time))
		})
	})
})
