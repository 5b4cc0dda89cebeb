// Package shared holds helpers used across histviz packages that belong to no
// single layer.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// log output and writers for .xlsx and .csv dataset fixtures:
//
//	func TestLoad(t *testing.T) {
//	    dir := t.TempDir()
//	    testutil.WriteXLSX(t, dir, "sensors.xlsx", testutil.SensorHeader, testutil.SensorRows(10))
//	    logger, logs := testutil.NewTestLogger(t)
//	    // ...
//	    testutil.AssertNoErrors(t, logs)
//	}
package shared
