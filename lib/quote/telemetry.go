package quote

import "quantovale/lib/telemetry"

var tracer = telemetry.Tracer("quantovale.lib.quote")
var meter = telemetry.Meter("quantovale.lib.quote")
var submissions, _ = meter.Int64Counter("quote.submissions")
