package viz

import (
	"sort"

	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"labor-dashboard/internal/model"
)

func validateTable(cfg model.TableConfig) error {
	c := newChecker("table")
	c.require(len(cfg.Columns) > 0, "at least one column is required")
	for _, col := range cfg.Columns {
		c.field(col.Field, "column")
		switch col.Kind {
		case model.KindAuto, model.KindNumeric, model.KindCategorical, model.KindBoolean:
		default:
			c.require(false, "column %q kind %q is not supported", col.Field, col.Kind)
		}
	}
	c.require(cfg.MaxRows >= 0, "max_rows must not be negative, got %d", cfg.MaxRows)
	c.require(cfg.PageSize >= 0, "page_size must not be negative, got %d", cfg.PageSize)
	return c.err()
}

type projectedRow struct {
	src model.Record
	row model.TableRow
}

// Table projects records onto the declared columns and returns the page
// q.Page (1-based, clamped) of the sorted rows. Input is capped to MaxRows
// before anything else. Sorting applies only to whitelisted declared fields;
// any other SortBy is ignored.
func Table(records []model.Record, cfg model.TableConfig, q model.TableQuery) model.Result[model.TablePage] {
	res := TableRows(records, cfg, q)
	if !res.IsReady() {
		return res
	}
	size := cfg.PageSize
	if size == 0 {
		size = DefaultPageSize
	}
	return model.Ready(Paginate(*res.Data, size, q.Page))
}

// TableRows is Table without pagination: every retained row, sorted.
func TableRows(records []model.Record, cfg model.TableConfig, q model.TableQuery) model.Result[model.TablePage] {
	if err := validateTable(cfg); err != nil {
		return model.Failed[model.TablePage](err)
	}
	if len(records) == 0 {
		return model.Empty[model.TablePage](ErrEmptyInput)
	}

	limit := cfg.MaxRows
	if limit == 0 {
		limit = DefaultTableRows
	}
	truncated := false
	if len(records) > limit {
		records = records[:limit]
		truncated = true
	}

	fields := lo.Map(cfg.Columns, func(c model.FieldSpec, _ int) string { return c.Field })
	if missing := missingFields(records[0], fields...); len(missing) == len(fields) {
		return model.Failed[model.TablePage](&SchemaError{Component: "table", Missing: missing})
	}

	f := newCellFormatter()
	rows := make([]projectedRow, len(records))
	for i, r := range records {
		row := make(model.TableRow, len(cfg.Columns))
		for _, col := range cfg.Columns {
			row[col.Field] = f.cell(r, col)
		}
		rows[i] = projectedRow{src: r, row: row}
	}

	page := model.TablePage{Columns: cfg.Columns, TotalRows: len(rows), Truncated: truncated}
	if q.SortBy != "" && lo.Contains(cfg.Sortable, q.SortBy) && lo.Contains(fields, q.SortBy) {
		sortRows(rows, q.SortBy, q.Desc)
		page.SortBy = q.SortBy
		page.Desc = q.Desc
	}
	page.Rows = lo.Map(rows, func(p projectedRow, _ int) model.TableRow { return p.row })
	page.Page = 1
	page.PageSize = len(page.Rows)
	page.PageCount = 1
	return model.Ready(page)
}

// sortRows orders rows by field. Missing cells go last in both directions;
// two numbers compare numerically, anything else by Spanish collation.
func sortRows(rows []projectedRow, field string, desc bool) {
	c := collate.New(language.Spanish, collate.IgnoreCase, collate.Numeric)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].row[field], rows[j].row[field]
		if a.Missing || b.Missing {
			return !a.Missing && b.Missing
		}
		var cmp int
		av, aok := LookupNumber(rows[i].src, field)
		bv, bok := LookupNumber(rows[j].src, field)
		if aok && bok {
			switch {
			case av < bv:
				cmp = -1
			case av > bv:
				cmp = 1
			}
		} else {
			cmp = c.CompareString(a.Text, b.Text)
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// Paginate windows an already sorted page onto page number p of the given
// size. Out of range page numbers are clamped, never wrapped.
func Paginate(all model.TablePage, size, p int) model.TablePage {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(all.Rows)
	count := (total + size - 1) / size
	if count == 0 {
		count = 1
	}
	p = max(1, min(p, count))
	start := min((p-1)*size, total)
	end := min(start+size, total)

	out := all
	out.Rows = all.Rows[start:end]
	out.Page = p
	out.PageSize = size
	out.PageCount = count
	return out
}
