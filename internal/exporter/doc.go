// Package exporter writes parsed DTA results to downstream formats.
//
// CSVWriter writes one file per curve plus a header file. Each curve file
// carries a row of column names, a row of units, then the data:
//
//	w := exporter.NewCSVWriter("out", true, logger)
//	paths, err := w.ExportResult(result)
//	// out/cv_data_header.csv, out/cv_data_curve1.csv, ...
//
// XLSXWriter writes a single workbook with a Header sheet and one
// "Curve N" sheet per curve:
//
//	path, err := exporter.NewXLSXWriter("out", logger).ExportResult(result)
package exporter
