// Package source makes goccy/go-json the default JSON driver when imported
// for side effects:
//
//	import _ "github.com/reoring/streamskema/source"
package source

import (
	streamskema "github.com/reoring/streamskema"
	drvgojson "github.com/reoring/streamskema/source/gojson"
)

// init lives outside the root package to avoid an import cycle.
func init() { streamskema.SetJSONDriver(drvgojson.Driver()) }
