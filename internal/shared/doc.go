// Package shared holds helpers used by more than one package of gamrycli.
//
// The testutil subpackage provides:
//
//   - DTA fixtures under testutil/testdata, located with testutil.FixturePath
//   - a buffered slog handler for asserting on log output
//
// Example:
//
//	func TestLoad(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    result, err := dataprocessing.Load(ctx, testutil.FixturePath(testutil.CVFixture),
//	        dataprocessing.WithLogger(logger))
//	    require.NoError(t, err)
//	    testutil.AssertNoErrors(t, logs)
//	}
package shared
