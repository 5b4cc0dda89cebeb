// Package files discovers the datasets a histviz server can summarize.
//
// The data directory holds dataset files (.xlsx or .csv) either directly or
// grouped one level deep in date directories:
//
//	data/
//	  ├── sensors.xlsx
//	  ├── 2024-03-01/
//	  │   ├── sensors.xlsx
//	  │   └── flow.csv
//	  └── 2024-03-02/
//	      └── sensors.xlsx
//
// Example usage:
//
//	discovery := files.NewDiscovery("/srv/histviz/data")
//	dates, err := discovery.ListDates()
//	datasets, err := discovery.FindDatasets("2024-03-01")
//	path, err := discovery.Resolve("2024-03-01", "sensors.xlsx")
package files
