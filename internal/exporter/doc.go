// Package exporter renders report tables into downloadable spreadsheet
// files. It owns the workbook layout (sheet name, column order, styling)
// so callers only hand over the data shape and receive finished bytes.
package exporter
