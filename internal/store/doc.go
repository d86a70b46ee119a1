// Package store is the Postgres boundary of the reporting service. It owns
// the shipment_records table and exposes aggregate reads over it.
//
// Expected schema:
//
//	CREATE TABLE shipment_records (
//	    id           BIGSERIAL PRIMARY KEY,
//	    store_name   TEXT        NOT NULL,
//	    courier_name TEXT        NOT NULL,
//	    product_name TEXT        NOT NULL,
//	    quantity     NUMERIC     NOT NULL,
//	    order_date   TIMESTAMPTZ NOT NULL
//	);
package store
