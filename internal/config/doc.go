// Package config loads the labelprint configuration file.
//
// # Configuration Discovery
//
// Load reads the given path, or ~/.config/labelprint/config.toml when the
// path is empty. Files ending in .yaml or .yml are parsed as YAML; everything
// else is TOML. A missing file is an error: without a service endpoint there
// is nothing useful to fall back to.
//
// # Example
//
//	app_title     = "HCA label printing"
//	printers      = "d304bc, e367bc"
//	pmb_url       = "http://pmb.example.org/v1/print_jobs"
//	proxy         = "wwwcache.example.org:3128"
//	template_id   = 5
//	field_name    = "name"
//	field_barcode = "barcode"
//	field_date    = "date"
//	fields        = "name, date"
//	warm_up       = false
//
// For the SPrint GraphQL service set print_service and template_file instead
// of pmb_url and template_id. The format is inferred from print_service unless
// format = "rest" or format = "graphql" is given explicitly.
//
// Older PrintMyBarcode deployments print one free-text field per label: set
// label_mode = "single" and field_name to that field.
//
// # Validation
//
// Load rejects malformed values (unknown fields entries, invalid URLs,
// negative template ids, unknown formats). Settings that are only needed to
// print, such as the endpoint or template id, are checked later by Ready so
// the operator can still browse pasted labels with an incomplete config.
// Ready returns a *MissingError naming the key.
//
// The layout template is read once during Load and kept in Config.Template.
package config
