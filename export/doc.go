// Package export writes result sets to files in csv, json, and txt form.
//
// Exports are whole-file writes: repeated saves to the same destination
// overwrite it. The csv writer emits a header record plus one record per
// row; the json writer emits a pretty-printed array of objects whose keys
// keep column order; the txt writer emits the full fixed-width table.
//
// Destinations may be plain paths, file:// URLs, or s3:// objects. Script
// sources opened through the same Exporter additionally accept http(s)://
// URLs.
//
//	exporter := export.New(osfs.New("."), export.S3Config{})
//	records, err := exporter.Save("out.csv", "csv", set)
package export
