package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/JaimeStill/printmg/pkg/pagination"
)

const dateLayout = "2006-01-02 15:04"

// table writes aligned rows under translated headers.
type table struct {
	w *tabwriter.Writer
}

func (e *env) table(headers ...string) *table {
	t := &table{w: tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)}
	labels := make([]string, len(headers))
	for i, h := range headers {
		labels[i] = e.tr.T(h)
	}
	t.row(labels...)
	return t
}

func (t *table) row(cells ...string) {
	fmt.Fprintln(t.w, strings.Join(cells, "\t"))
}

func (t *table) flush() error {
	return t.w.Flush()
}

// emit prints v as indented JSON.
func (e *env) emit(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// footer prints the page position of a listing.
func footer[T any](e *env, res pagination.PageResult[T]) {
	e.println("app.page", res.Page, res.TotalPages, res.Total)
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
