// Package dataprocessing reads Gamry EXPLAIN (.DTA) files into a
// domain.ParseResult.
//
// # Architecture
//
// A load runs two passes over one open file:
//
// 1. Header reader: typed KEY\tTYPE\tVALUE lines up to the first table start
// 2. Curve reader: column names, units and rows for every curve table
//
// The header pass records the byte offset of the first column-name line; the
// curve pass seeks there. Table starts are recognized by SentinelSet
// (CURVE, ZCURVE, VFPCURVE, EFMCURVE and any registered prefix). A
// table-shaped line with an unknown prefix fails the load.
//
// # Usage
//
//	result, err := dataprocessing.Load(ctx, "CV_sample.DTA",
//	    dataprocessing.WithLocale("de_DE.utf8"),
//	    dataprocessing.WithTimestamps(true))
//	if err != nil {
//	    return err
//	}
//	curve, err := result.Curve(0)
//
// # Numbers
//
// The instrument writes numbers in the convention of the PC it runs on. The
// convention is an explicit option (WithConvention or WithLocale) and is
// applied like C's atof after delocalizing, so reading a file with the wrong
// convention shifts values instead of failing.
//
// # OCV curve
//
// ParseResult.OCVCurve is the only open circuit curve. The loader fills it
// from the embedded OCVCURVE header table, which instrument software stopped
// writing with framework 7 and is read for older files only. The open
// circuit view in internal/experiments replaces it with its first curve.
//
// # Error Handling
//
// Failures are *errors.AppError values wrapping a sentinel from
// gamrycli/internal/errors; test them with errors.Is. An aborted experiment
// is not an error: the last curve is short and a warning is logged.
package dataprocessing
