package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	pg := errors.New(`ERROR: duplicate key value violates unique constraint "ux_sales_store_number" (SQLSTATE 23505)`)
	lite := errors.New("UNIQUE constraint failed: sales.store_id, sales.sale_number")

	if !IsUniqueViolation(pg) || !IsUniqueViolation(lite) {
		t.Fatal("bare check should match both drivers")
	}
	if !IsUniqueViolation(pg, "ux_sales_store_number", "sales.sale_number") {
		t.Fatal("postgres message should match on the constraint name")
	}
	if !IsUniqueViolation(lite, "ux_sales_store_number", "sales.sale_number") {
		t.Fatal("sqlite message should match on the column list")
	}
	if IsUniqueViolation(lite, "ux_sales_store_idempotency", "sales.idempotency_key") {
		t.Fatal("hints for a different constraint must not match")
	}
	if IsUniqueViolation(errors.New("connection refused")) {
		t.Fatal("unrelated errors are not unique violations")
	}
	if IsUniqueViolation(nil) {
		t.Fatal("nil is not a violation")
	}
}
